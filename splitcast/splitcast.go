/*
Package splitcast broadcasts split events of a spanning rope to subscribers.

Ropes report splits synchronously through spanrope.Config.OnSplit. A
Broadcaster turns this callback into channels, so that observers like
monitoring code or interactive tools may follow the segmentation of a rope
without being called from within Insert.

	bc := splitcast.New[int](ctx)
	cfg := spanrope.OrderedConfig[int]()
	cfg.OnSplit = bc.Hook()
	events, _ := bc.Subscribe(ctx, 16)

Subscribers must drain their channel; a full subscriber channel stalls
publishing and, with it, the inserting client.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.
*/
package splitcast

import (
	"context"
	"errors"
	"sync"

	"github.com/guiguan/caster"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/spanrope"
)

// tracer writes to trace with key 'spanrope'
func tracer() tracing.Trace {
	return tracing.Select("spanrope")
}

// ErrClosed is returned for subscriptions to a closed broadcaster.
var ErrClosed = errors.New("splitcast: broadcaster closed")

// Broadcaster publishes split events to any number of subscribers.
type Broadcaster[K any] struct {
	cast      *caster.Caster
	closed    chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup // forwarding goroutines of subscribers
}

// New creates a broadcaster. It is closed when ctx is done or Close is called.
// ctx may be nil.
func New[K any](ctx context.Context) *Broadcaster[K] {
	return &Broadcaster[K]{
		cast:   caster.New(ctx),
		closed: make(chan struct{}),
	}
}

// Hook returns a split callback suitable for spanrope.Config.OnSplit.
func (b *Broadcaster[K]) Hook() func(spanrope.SplitEvent[K]) {
	return func(e spanrope.SplitEvent[K]) {
		if !b.cast.Pub(e) {
			tracer().Debugf("split event for %s dropped, broadcaster closed", e.Node)
		}
	}
}

// Subscribe returns a channel of split events. The channel is closed when
// ctx is done or the broadcaster is closed, even if the subscriber stopped
// reading; undelivered events are dropped then. ctx may be nil.
func (b *Broadcaster[K]) Subscribe(ctx context.Context, capacity uint) (<-chan spanrope.SplitEvent[K], error) {
	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case <-b.closed:
		return nil, ErrClosed
	default:
	}
	ch, ok := b.cast.Sub(ctx, capacity)
	if !ok {
		return nil, ErrClosed
	}
	out := make(chan spanrope.SplitEvent[K], capacity)
	b.wg.Add(1)
	go b.forward(ctx, ch, out)
	return out, nil
}

func (b *Broadcaster[K]) forward(ctx context.Context, ch <-chan interface{}, out chan<- spanrope.SplitEvent[K]) {
	defer b.wg.Done()
	defer close(out)
	defer func() {
		// the caster may be blocked handing us a message; keep draining until
		// it unsubscribes ch or shuts down
		go func() {
			for range ch {
			}
		}()
	}()
	for {
		var msg interface{}
		select {
		case m, ok := <-ch:
			if !ok {
				return
			}
			msg = m
		case <-ctx.Done():
			return
		case <-b.closed:
			return
		}
		e, ok := msg.(spanrope.SplitEvent[K])
		if !ok {
			continue
		}
		select {
		case out <- e:
		case <-ctx.Done():
			tracer().Debugf("split event for %s dropped, subscriber gone", e.Node)
			return
		case <-b.closed:
			return
		}
	}
}

// Close stops the broadcaster and closes all subscriber channels. It is safe
// to call Close more than once.
func (b *Broadcaster[K]) Close() {
	b.closeOnce.Do(func() {
		close(b.closed)
		b.cast.Close()
	})
}

// wait blocks until every forwarding goroutine has terminated.
func (b *Broadcaster[K]) wait() {
	b.wg.Wait()
}
