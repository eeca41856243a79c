package spanrope

import (
	"sync"
	"testing"
)

func TestGuardedConcurrentReaders(t *testing.T) {
	g := Guard(NewRoot[int, int]())
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			if err := g.Insert(i, i); err != nil {
				t.Errorf("insert %d failed: %v", i, err)
				return
			}
		}
	}()
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				v, ok, err := g.Get(i)
				if err != nil {
					t.Errorf("get %d failed: %v", i, err)
					return
				}
				if ok && v != i {
					t.Errorf("get %d returned %d", i, v)
					return
				}
				_ = g.KeyCount()
			}
		}()
	}
	wg.Wait()
	if g.KeyCount() != 500 {
		t.Errorf("expected 500 keys, have %d", g.KeyCount())
	}
	if err := g.View(func(rope *Node[int, int]) error { return rope.Check() }); err != nil {
		t.Errorf("invariant check failed: %v", err)
	}
}

func TestGuardedAccessorsMatchNode(t *testing.T) {
	rope := NewRoot[int, int]()
	g := Guard(rope)
	for i := 0; i <= 10; i++ {
		if err := g.Insert(i, i); err != nil {
			t.Fatalf("insert %d failed: %v", i, err)
		}
	}
	if g.KeyCount() != rope.KeyCount() || g.KeyCount() != 11 {
		t.Errorf("expected 11 keys, have %d", g.KeyCount())
	}
	if g.InternalSegmentCount() != rope.InternalSegmentCount() || g.InternalSegmentCount() != 2 {
		t.Errorf("expected 2 segments, have %d", g.InternalSegmentCount())
	}
	if g.Stats() != rope.Stats() {
		t.Errorf("guarded stats %+v differ from %+v", g.Stats(), rope.Stats())
	}
}
