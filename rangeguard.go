package spanrope

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/

import (
	"cmp"
	"fmt"
)

// Bound is an optional key. An unset bound means "unbounded" in the
// direction it is used for.
type Bound[K any] struct {
	key K
	set bool
}

// Bounded returns a bound at key.
func Bounded[K any](key K) Bound[K] {
	return Bound[K]{key: key, set: true}
}

// Unbounded returns an unset bound.
func Unbounded[K any]() Bound[K] {
	return Bound[K]{}
}

// Get returns the bound's key and whether the bound is set.
func (b Bound[K]) Get() (K, bool) {
	return b.key, b.set
}

// IsSet is false for unbounded.
func (b Bound[K]) IsSet() bool {
	return b.set
}

func (b Bound[K]) String() string {
	if !b.set {
		return "∞"
	}
	return fmt.Sprintf("%v", b.key)
}

// RangeGuard is an interval over the key domain. The lower bound, if set, is
// inclusive. The upper bound, if set, is inclusive for guards created by
// clients, and exclusive for the left half of a split.
type RangeGuard[K any] struct {
	lower, upper Bound[K]
	upperOpen    bool
	cmp          func(a, b K) int
}

// NewRangeGuard creates an inclusive guard for naturally ordered keys.
func NewRangeGuard[K cmp.Ordered](lower, upper Bound[K]) RangeGuard[K] {
	return NewRangeGuardFunc(lower, upper, cmp.Compare[K])
}

// NewRangeGuardFunc creates an inclusive guard for keys ordered by compare.
// Without a compare function, a guard with any bound set contains no key.
func NewRangeGuardFunc[K any](lower, upper Bound[K], compare func(a, b K) int) RangeGuard[K] {
	return RangeGuard[K]{lower: lower, upper: upper, cmp: compare}
}

// Contains reports whether key lies within the guard.
func (g RangeGuard[K]) Contains(key K) bool {
	switch {
	case !g.lower.set && !g.upper.set:
		return true // authoritative for the entire namespace
	case g.cmp == nil:
		return false
	case !g.upper.set:
		return g.cmp(key, g.lower.key) >= 0
	case !g.lower.set:
		return g.belowUpper(key)
	default:
		return g.cmp(key, g.lower.key) >= 0 && g.belowUpper(key)
	}
}

func (g RangeGuard[K]) belowUpper(key K) bool {
	if g.upperOpen {
		return g.cmp(key, g.upper.key) < 0
	}
	return g.cmp(key, g.upper.key) <= 0
}

// Lower returns the inclusive lower bound.
func (g RangeGuard[K]) Lower() Bound[K] {
	return g.lower
}

// Upper returns the upper bound. See UpperExclusive.
func (g RangeGuard[K]) Upper() Bound[K] {
	return g.upper
}

// UpperExclusive is true if the upper bound is set and excluded from the guard.
func (g RangeGuard[K]) UpperExclusive() bool {
	return g.upper.set && g.upperOpen
}

// splitAt returns a guard for the keys below k and one for the keys from k on.
func (g RangeGuard[K]) splitAt(k K) (RangeGuard[K], RangeGuard[K]) {
	left := RangeGuard[K]{lower: g.lower, upper: Bounded(k), upperOpen: true, cmp: g.cmp}
	right := RangeGuard[K]{lower: Bounded(k), upper: g.upper, upperOpen: g.upperOpen, cmp: g.cmp}
	return left, right
}

// isEmpty is true if no key may satisfy the guard.
func (g RangeGuard[K]) isEmpty() bool {
	if !g.lower.set && !g.upper.set {
		return false
	}
	if g.cmp == nil {
		return true
	}
	if !g.lower.set || !g.upper.set {
		return false
	}
	c := g.cmp(g.lower.key, g.upper.key)
	return c > 0 || (c == 0 && g.upperOpen)
}

func (g RangeGuard[K]) String() string {
	closing := "]"
	if g.UpperExclusive() || !g.upper.set {
		closing = ")"
	}
	opening := "["
	if !g.lower.set {
		opening = "("
	}
	return fmt.Sprintf("%s%s, %s%s", opening, g.lower, g.upper, closing)
}

func sameBound[K any](a, b Bound[K], compare func(a, b K) int) bool {
	if a.set != b.set {
		return false
	}
	return !a.set || compare(a.key, b.key) == 0
}
