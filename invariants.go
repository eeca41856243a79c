package spanrope

import "fmt"

// Check validates the structural invariants of a rope:
//
//   - every node is either a leaf or has child segments, never both
//   - child segments partition their parent's range without gaps or overlaps
//   - every key of a leaf is within the leaf's range
//   - no leaf holds more than the configured maximum of entries.
//
// Check is intended for tests and debugging.
func (n *Node[K, V]) Check() error {
	if n == nil {
		return fmt.Errorf("%w: nil node", ErrMalformed)
	}
	if n.cfg == nil || n.cfg.Compare == nil {
		return fmt.Errorf("%w: node %s has no configuration", ErrMalformed, n.id)
	}
	_, err := n.checkNode()
	return err
}

func (n *Node[K, V]) checkNode() (keys int, err error) {
	if err = n.interior.check(); err != nil {
		return 0, fmt.Errorf("%w: node %s", err, n.id)
	}
	if n.rng.isEmpty() {
		return 0, fmt.Errorf("%w: node %s has empty range %s", ErrMalformed, n.id, n.rng)
	}
	if leaf := n.interior.leaf; leaf != nil {
		if leaf.Count() > n.cfg.MaxSegmentSize {
			return 0, fmt.Errorf("%w: leaf %s holds %d entries, max is %d",
				ErrMalformed, leaf.ID(), leaf.Count(), n.cfg.MaxSegmentSize)
		}
		leaf.Ascend(func(key K, _ V) bool {
			if !n.Owns(key) {
				err = fmt.Errorf("%w: leaf %s holds key %v outside of %s",
					ErrMalformed, leaf.ID(), key, n.rng)
			}
			return err == nil
		})
		return leaf.Count(), err
	}
	if err = n.checkPartition(); err != nil {
		return 0, err
	}
	for _, child := range n.interior.segments {
		c, cerr := child.checkNode()
		if cerr != nil {
			return 0, cerr
		}
		keys += c
	}
	return keys, nil
}

// checkPartition asserts that the children's ranges are adjacent and
// together cover exactly the range of n.
func (n *Node[K, V]) checkPartition() error {
	segs := n.interior.segments
	compare := n.cfg.Compare
	if !sameBound(segs[0].rng.lower, n.rng.lower, compare) {
		return fmt.Errorf("%w: first segment of %s starts at %s, expected %s",
			ErrMalformed, n.id, segs[0].rng.lower, n.rng.lower)
	}
	last := segs[len(segs)-1].rng
	if !sameBound(last.upper, n.rng.upper, compare) || last.UpperExclusive() != n.rng.UpperExclusive() {
		return fmt.Errorf("%w: last segment of %s ends at %s, expected %s",
			ErrMalformed, n.id, last, n.rng)
	}
	for i := 1; i < len(segs); i++ {
		prev, cur := segs[i-1].rng, segs[i].rng
		if !prev.UpperExclusive() || !sameBound(prev.upper, cur.lower, compare) {
			return fmt.Errorf("%w: segments %d and %d of %s are not adjacent: %s, %s",
				ErrMalformed, i-1, i, n.id, prev, cur)
		}
	}
	return nil
}
