package spanrope

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/

import (
	"fmt"

	"github.com/google/uuid"
)

// SplitEvent describes the split of a leaf segment into two children.
type SplitEvent[K any] struct {
	Node    uuid.UUID // the node converted from leaf to inner node
	Leaf    uuid.UUID // the leaf store which has been dissolved
	Key     K         // first key of the right child
	Left    uuid.UUID
	Right   uuid.UUID
	Entries int // number of entries re-distributed
}

// shouldSplitAt decides whether a leaf has to split before admitting key,
// and if so, at which key. Overwriting an existing key never splits.
//
// Inner nodes never split themselves; overflow is detected at the leaf which
// receives the entry.
func (n *Node[K, V]) shouldSplitAt(key K) (K, bool) {
	var zero K
	leaf := n.interior.leaf
	if leaf == nil || leaf.Has(key) {
		return zero, false
	}
	if leaf.Count()+1 <= n.cfg.MaxSegmentSize {
		return zero, false
	}
	return leaf.KeyAt(n.cfg.MaxSegmentSize / 2)
}

// SplitCandidate searches all segments for a leaf holding more than the
// configured maximum of entries and returns the key it should be split at.
// Ropes built by Insert never contain such a leaf.
func (n *Node[K, V]) SplitCandidate() (K, bool) {
	var zero K
	if n.interior.leaf != nil {
		if n.interior.leaf.Count() > n.cfg.MaxSegmentSize {
			return n.interior.leaf.KeyAt(n.cfg.MaxSegmentSize / 2)
		}
		return zero, false
	}
	for _, child := range n.interior.segments {
		if child == nil {
			continue
		}
		if k, ok := child.SplitCandidate(); ok {
			return k, true
		}
	}
	return zero, false
}

// splitAt converts the leaf owning k into an inner node with two children.
// For inner nodes, splitAt descends to the child segment owning k and splits
// it in place, leaving all other children untouched.
func (n *Node[K, V]) splitAt(k K) error {
	if err := n.interior.check(); err != nil {
		return fmt.Errorf("%w: node %s", err, n.id)
	}
	if n.interior.leaf == nil {
		child, err := n.owner(k)
		if err != nil {
			return err
		}
		return child.splitAt(k)
	}
	leaf := n.interior.leaf
	lrange, rrange := n.rng.splitAt(k)
	if lrange.isEmpty() || rrange.isEmpty() {
		return fmt.Errorf("%w: split key %v at border of %s", ErrMalformed, k, n.rng)
	}
	left := newNode[K, V](n.cfg, lrange)
	right := newNode[K, V](n.cfg, rrange)
	var err error
	leaf.Below(k, func(key K, value V) bool {
		err = left.insert(key, value)
		return err == nil
	})
	if err == nil {
		leaf.From(k, func(key K, value V) bool {
			err = right.insert(key, value)
			return err == nil
		})
	}
	if err != nil { // leave n untouched
		return fmt.Errorf("split of %s at %v failed: %w", n.id, k, err)
	}
	event := SplitEvent[K]{
		Node:    n.id,
		Leaf:    leaf.ID(),
		Key:     k,
		Left:    left.id,
		Right:   right.id,
		Entries: leaf.Count(),
	}
	n.interior = interior[K, V]{segments: []*Node[K, V]{left, right}}
	T().Debugf("split segment %s at %v: %s | %s", n.id, k, lrange, rrange)
	if n.cfg.OnSplit != nil {
		n.cfg.OnSplit(event)
	}
	return nil
}
