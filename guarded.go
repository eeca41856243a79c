package spanrope

import "sync"

// Guarded serializes access to a rope with a single lock: inserts are
// exclusive, reads are shared.
type Guarded[K, V any] struct {
	mu   sync.RWMutex
	rope *Node[K, V]
}

// Guard wraps a root node. Clients must not access rope directly afterwards.
func Guard[K, V any](rope *Node[K, V]) *Guarded[K, V] {
	return &Guarded[K, V]{rope: rope}
}

// Insert is Node.Insert under the write lock.
func (g *Guarded[K, V]) Insert(key K, value V) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rope.Insert(key, value)
}

// Get is Node.Get under the read lock.
func (g *Guarded[K, V]) Get(key K) (V, bool, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.rope.Get(key)
}

// KeyCount is Node.KeyCount under the read lock.
func (g *Guarded[K, V]) KeyCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.rope.KeyCount()
}

// InternalSegmentCount is Node.InternalSegmentCount under the read lock.
func (g *Guarded[K, V]) InternalSegmentCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.rope.InternalSegmentCount()
}

// Stats is Node.Stats under the read lock.
func (g *Guarded[K, V]) Stats() Stats {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.rope.Stats()
}

// View calls fn with the read lock held. fn must not mutate the rope.
func (g *Guarded[K, V]) View(fn func(rope *Node[K, V]) error) error {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return fn(g.rope)
}

var _ StatsReporter = (*Guarded[int, int])(nil)
