package spanrope

// StatsReporter reports aggregate counts of a (sub-)rope.
type StatsReporter interface {
	KeyCount() int
	InternalSegmentCount() int
}

var _ StatsReporter = (*Node[int, int])(nil)

// KeyCount returns the number of distinct keys stored in the subtree.
func (n *Node[K, V]) KeyCount() int {
	if n == nil {
		return 0
	}
	if n.interior.leaf != nil {
		return n.interior.leaf.Count()
	}
	count := 0
	for _, child := range n.interior.segments {
		count += child.KeyCount() // nil-safe
	}
	return count
}

// InternalSegmentCount returns the number of direct child segments, 0 for a leaf.
func (n *Node[K, V]) InternalSegmentCount() int {
	if n == nil {
		return 0
	}
	return len(n.interior.segments)
}

// Stats summarizes the shape of a rope.
type Stats struct {
	Keys    int // distinct keys
	Leaves  int // unsplit segments
	Inner   int // split segments
	Depth   int // 1 for a single leaf
	MaxLeaf int // entry count of the largest leaf
}

// Stats walks the subtree and collects shape statistics.
func (n *Node[K, V]) Stats() Stats {
	var st Stats
	if n == nil {
		return st
	}
	n.collectStats(&st, 1)
	return st
}

func (n *Node[K, V]) collectStats(st *Stats, depth int) {
	st.Depth = max(st.Depth, depth)
	if n.interior.leaf != nil {
		c := n.interior.leaf.Count()
		st.Keys += c
		st.Leaves++
		st.MaxLeaf = max(st.MaxLeaf, c)
		return
	}
	st.Inner++
	for _, child := range n.interior.segments {
		if child == nil {
			continue
		}
		child.collectStats(st, depth+1)
	}
}
