package spanrope

// ForEach walks all entries in ascending key order.
//
// Iteration stops early if fn returns false.
func (n *Node[K, V]) ForEach(fn func(key K, value V) bool) {
	if n == nil || fn == nil {
		return
	}
	n.forEach(fn)
}

func (n *Node[K, V]) forEach(fn func(K, V) bool) bool {
	if n.interior.leaf != nil {
		cont := true
		n.interior.leaf.Ascend(func(k K, v V) bool {
			cont = fn(k, v)
			return cont
		})
		return cont
	}
	for _, child := range n.interior.segments {
		if child != nil && !child.forEach(fn) {
			return false
		}
	}
	return true
}

// eachNode visits n and all its descendants in pre-order, passing the depth
// of each node (0 for n).
func (n *Node[K, V]) eachNode(fn func(node *Node[K, V], depth int) error) error {
	return n.eachNodeAt(fn, 0)
}

func (n *Node[K, V]) eachNodeAt(fn func(*Node[K, V], int) error, depth int) error {
	if err := fn(n, depth); err != nil {
		return err
	}
	for _, child := range n.interior.segments {
		if err := child.eachNodeAt(fn, depth+1); err != nil {
			return err
		}
	}
	return nil
}
