package spanrope

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// Node is a segment of a spanning rope. It is authoritative for the keys
// within its range and stores them either directly in a leaf, or delegates
// them to child segments partitioning its range.
//
// A node created by New is a root-capable leaf. Splitting converts a leaf
// into an inner node with exactly two children; the conversion is never
// reversed.
type Node[K, V any] struct {
	id       uuid.UUID
	cfg      *Config[K]
	rng      RangeGuard[K]
	interior interior[K, V]
}

// interior is either a leaf store or a list of child segments, never both.
type interior[K, V any] struct {
	leaf     *LeafStore[K, V]
	segments []*Node[K, V]
}

// New creates an unsplit node for naturally ordered keys, authoritative for
// the keys between lower and upper (both inclusive). If lower is greater than
// upper, the node owns no key and every Get or Insert fails with ErrOutOfRange.
func New[K cmp.Ordered, V any](lower, upper Bound[K]) *Node[K, V] {
	cfg := OrderedConfig[K]().normalized()
	return newNode[K, V](&cfg, NewRangeGuard(lower, upper))
}

// NewRoot creates an unsplit node for naturally ordered keys which spans the
// whole key domain.
func NewRoot[K cmp.Ordered, V any]() *Node[K, V] {
	return New[K, V](Unbounded[K](), Unbounded[K]())
}

// NewWithConfig creates an unsplit node authoritative for the keys between
// lower and upper (both inclusive), ordered by cfg.Compare.
func NewWithConfig[K, V any](cfg Config[K], lower, upper Bound[K]) (*Node[K, V], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg = cfg.normalized()
	rng := NewRangeGuardFunc(lower, upper, cfg.Compare)
	if rng.isEmpty() {
		return nil, fmt.Errorf("%w: empty range %s", ErrInvalidConfig, rng)
	}
	return newNode[K, V](&cfg, rng), nil
}

func newNode[K, V any](cfg *Config[K], rng RangeGuard[K]) *Node[K, V] {
	return &Node[K, V]{
		id:       uuid.New(),
		cfg:      cfg,
		rng:      rng,
		interior: interior[K, V]{leaf: newLeafStore[K, V](cfg.Compare)},
	}
}

// ID identifies a node for tracing and debugging.
func (n *Node[K, V]) ID() uuid.UUID {
	return n.id
}

// Range returns the range of keys the node is authoritative for.
func (n *Node[K, V]) Range() RangeGuard[K] {
	return n.rng
}

// IsLeaf is true if the node has not been split.
func (n *Node[K, V]) IsLeaf() bool {
	return n.interior.leaf != nil
}

// Segments returns the direct child segments of an inner node, nil for a leaf.
func (n *Node[K, V]) Segments() []*Node[K, V] {
	return slices.Clone(n.interior.segments)
}

// Owns reports whether key is within the node's range.
func (n *Node[K, V]) Owns(key K) bool {
	return n.rng.Contains(key)
}

// Get looks up the value stored for key. A key within range but not stored
// is not an error and returns false. Keys outside the node's range produce
// ErrOutOfRange.
func (n *Node[K, V]) Get(key K) (V, bool, error) {
	var zero V
	if n == nil {
		return zero, false, fmt.Errorf("%w: nil node", ErrMalformed)
	}
	if !n.Owns(key) {
		return zero, false, fmt.Errorf("%w: %v not in %s", ErrOutOfRange, key, n.rng)
	}
	return n.get(key)
}

func (n *Node[K, V]) get(key K) (V, bool, error) {
	var zero V
	if err := n.interior.check(); err != nil {
		return zero, false, fmt.Errorf("%w: node %s", err, n.id)
	}
	if n.interior.leaf != nil {
		v, ok := n.interior.leaf.Get(key)
		return v, ok, nil
	}
	child, err := n.owner(key)
	if err != nil {
		return zero, false, err
	}
	return child.get(key)
}

// Insert stores value for key, overwriting a previous value. Inserting may
// split the leaf segment receiving the entry. Keys outside the node's range
// produce ErrOutOfRange.
//
// Insert requires exclusive access to the whole rope; see Guarded.
func (n *Node[K, V]) Insert(key K, value V) error {
	if n == nil {
		return fmt.Errorf("%w: nil node", ErrMalformed)
	}
	if !n.Owns(key) {
		return fmt.Errorf("%w: %v not in %s", ErrOutOfRange, key, n.rng)
	}
	return n.insert(key, value)
}

func (n *Node[K, V]) insert(key K, value V) error {
	if err := n.interior.check(); err != nil {
		return fmt.Errorf("%w: node %s", err, n.id)
	}
	if k, ok := n.shouldSplitAt(key); ok {
		if err := n.splitAt(k); err != nil {
			return err
		}
	}
	if n.interior.leaf != nil {
		T().Debugf("inserting %v into segment %s", key, n.id)
		n.interior.leaf.Insert(key, value)
		return nil
	}
	child, err := n.owner(key)
	if err != nil {
		return err
	}
	return child.insert(key, value)
}

// owner finds the child segment responsible for key.
func (n *Node[K, V]) owner(key K) (*Node[K, V], error) {
	for _, child := range n.interior.segments {
		if child.Owns(key) {
			return child, nil
		}
	}
	T().Errorf("no segment of %s owns key %v", n.id, key)
	return nil, fmt.Errorf("%w: no segment of %s owns %v", ErrOutOfRange, n.rng, key)
}

func (in interior[K, V]) check() error {
	switch {
	case in.leaf == nil && len(in.segments) == 0:
		return fmt.Errorf("%w: neither leaf nor segments", ErrMalformed)
	case in.leaf != nil && len(in.segments) > 0:
		return fmt.Errorf("%w: both leaf and segments", ErrMalformed)
	}
	for _, child := range in.segments {
		if child == nil {
			return fmt.Errorf("%w: nil segment", ErrMalformed)
		}
	}
	return nil
}
