package splitcast

import (
	"context"
	"testing"
	"time"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/spanrope"
)

func TestBroadcastSplits(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	bc := New[int](ctx)
	defer bc.Close()
	events, err := bc.Subscribe(ctx, 64)
	if err != nil {
		t.Fatalf("cannot subscribe: %v", err)
	}
	cfg := spanrope.OrderedConfig[int]()
	cfg.OnSplit = bc.Hook()
	rope, err := spanrope.NewWithConfig[int, int](cfg, spanrope.Unbounded[int](), spanrope.Unbounded[int]())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i <= 10; i++ {
		if err := rope.Insert(i, i); err != nil {
			t.Fatalf("insert %d failed: %v", i, err)
		}
	}
	select {
	case e := <-events:
		if e.Node != rope.ID() || e.Key != 5 {
			t.Errorf("unexpected split event %+v", e)
		}
	case <-ctx.Done():
		t.Fatalf("no split event received")
	}
}

func TestCloseReleasesStalledSubscriber(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	ctx, cancel := context.WithCancel(context.Background())
	bc := New[int](context.Background())
	events, err := bc.Subscribe(ctx, 0)
	if err != nil {
		t.Fatalf("cannot subscribe: %v", err)
	}
	hook := bc.Hook()
	go hook(spanrope.SplitEvent[int]{Key: 1}) // nobody reads events
	time.Sleep(20 * time.Millisecond)
	cancel()
	bc.Close()
	bc.Close()
	done := make(chan struct{})
	go func() {
		bc.wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("forwarding goroutine still blocked after Close")
	}
	for range events { // must be closed
	}
	if _, err := bc.Subscribe(context.Background(), 1); err != ErrClosed {
		t.Errorf("expected ErrClosed after Close, got %v", err)
	}
}
