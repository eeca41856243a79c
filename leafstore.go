package spanrope

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/

import (
	"github.com/google/btree"
	"github.com/google/uuid"
)

// leafDegree is the B-tree degree of leaf storage. Leafs hold only a few
// entries, so a small degree suffices.
const leafDegree = 4

type entry[K, V any] struct {
	key   K
	value V
}

// LeafStore holds the key/value entries of an unsplit segment, ordered by key.
type LeafStore[K, V any] struct {
	id uuid.UUID
	kv *btree.BTreeG[entry[K, V]]
}

func newLeafStore[K, V any](compare func(a, b K) int) *LeafStore[K, V] {
	less := func(a, b entry[K, V]) bool {
		return compare(a.key, b.key) < 0
	}
	return &LeafStore[K, V]{
		id: uuid.New(),
		kv: btree.NewG[entry[K, V]](leafDegree, less),
	}
}

// ID identifies a leaf store for tracing and debugging.
func (ls *LeafStore[K, V]) ID() uuid.UUID {
	return ls.id
}

// Get looks up the value for key.
func (ls *LeafStore[K, V]) Get(key K) (V, bool) {
	e, ok := ls.kv.Get(entry[K, V]{key: key})
	return e.value, ok
}

// Has reports whether key is present.
func (ls *LeafStore[K, V]) Has(key K) bool {
	return ls.kv.Has(entry[K, V]{key: key})
}

// Insert stores value for key, overwriting an existing value.
func (ls *LeafStore[K, V]) Insert(key K, value V) {
	ls.kv.ReplaceOrInsert(entry[K, V]{key: key, value: value})
}

// Count returns the number of distinct keys.
func (ls *LeafStore[K, V]) Count() int {
	return ls.kv.Len()
}

// KeyAt returns the key at rank i in key order.
func (ls *LeafStore[K, V]) KeyAt(i int) (K, bool) {
	var key K
	if i < 0 || i >= ls.kv.Len() {
		return key, false
	}
	rank := 0
	ls.kv.Ascend(func(e entry[K, V]) bool {
		if rank == i {
			key = e.key
			return false
		}
		rank++
		return true
	})
	return key, true
}

// Ascend calls fn for every entry in key order, until fn returns false.
func (ls *LeafStore[K, V]) Ascend(fn func(K, V) bool) {
	ls.kv.Ascend(func(e entry[K, V]) bool {
		return fn(e.key, e.value)
	})
}

// Below calls fn in key order for every entry with a key less than pivot.
func (ls *LeafStore[K, V]) Below(pivot K, fn func(K, V) bool) {
	ls.kv.AscendLessThan(entry[K, V]{key: pivot}, func(e entry[K, V]) bool {
		return fn(e.key, e.value)
	})
}

// From calls fn in key order for every entry with a key of at least pivot.
func (ls *LeafStore[K, V]) From(pivot K, fn func(K, V) bool) {
	ls.kv.AscendGreaterOrEqual(entry[K, V]{key: pivot}, func(e entry[K, V]) bool {
		return fn(e.key, e.value)
	})
}
