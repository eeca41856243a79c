package spanrope

import (
	"math/rand/v2"
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEleventhKeySplitsRoot(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	rope := NewRoot[int, int]()
	for i := 0; i < 10; i++ {
		require.NoError(t, rope.Insert(i, i*i))
	}
	assert.Equal(t, 0, rope.InternalSegmentCount())
	require.NoError(t, rope.Insert(10, 100))
	assert.Equal(t, 2, rope.InternalSegmentCount())
	assert.Equal(t, 11, rope.KeyCount())
	left, right := rope.interior.segments[0], rope.interior.segments[1]
	assert.Equal(t, 5, left.KeyCount())
	assert.Equal(t, 6, right.KeyCount())
	assert.True(t, left.Owns(4))
	assert.False(t, left.Owns(5), "split key belongs to the right segment only")
	assert.True(t, right.Owns(5))
	require.NoError(t, rope.Check())
	for i := 0; i <= 10; i++ {
		v, ok, err := rope.Get(i)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, i*i, v)
	}
}

func TestSplitPreservesEntries(t *testing.T) {
	rope := NewRoot[int, string]()
	for i := 0; i < 10; i++ {
		require.NoError(t, rope.Insert(i, "x"))
	}
	before := rope.KeyCount()
	require.NoError(t, rope.splitAt(5))
	assert.Equal(t, before, rope.KeyCount())
	assert.Equal(t, 2, rope.InternalSegmentCount())
	require.NoError(t, rope.Check())
}

func TestSplitOfInnerNodeDescends(t *testing.T) {
	rope := NewRoot[int, int]()
	for i := 0; i <= 10; i++ {
		require.NoError(t, rope.Insert(i, i))
	}
	left, right := rope.interior.segments[0], rope.interior.segments[1]
	require.True(t, right.IsLeaf())
	require.NoError(t, rope.splitAt(8))
	// the children list of the root stays untouched
	require.Equal(t, 2, rope.InternalSegmentCount())
	assert.Same(t, left, rope.interior.segments[0])
	assert.Same(t, right, rope.interior.segments[1])
	assert.True(t, left.IsLeaf())
	assert.Equal(t, 2, right.InternalSegmentCount())
	assert.Equal(t, 11, rope.KeyCount())
	require.NoError(t, rope.Check())
}

func TestSplitAtBorderFails(t *testing.T) {
	rope := New[int, int](Bounded(0), Bounded(100))
	require.NoError(t, rope.Insert(0, 0))
	assert.ErrorIs(t, rope.splitAt(0), ErrMalformed)
	assert.True(t, rope.IsLeaf())
}

func TestSplitEvents(t *testing.T) {
	var events []SplitEvent[int]
	cfg := OrderedConfig[int]()
	cfg.OnSplit = func(e SplitEvent[int]) {
		events = append(events, e)
	}
	rope, err := NewWithConfig[int, int](cfg, Unbounded[int](), Unbounded[int]())
	require.NoError(t, err)
	leafID := rope.interior.leaf.ID()
	for i := 0; i <= 10; i++ {
		require.NoError(t, rope.Insert(i, i))
	}
	require.Len(t, events, 1)
	e := events[0]
	assert.Equal(t, rope.ID(), e.Node)
	assert.Equal(t, leafID, e.Leaf)
	assert.Equal(t, 5, e.Key)
	assert.Equal(t, 10, e.Entries)
	assert.Equal(t, rope.interior.segments[0].ID(), e.Left)
	assert.Equal(t, rope.interior.segments[1].ID(), e.Right)
}

func TestSplitCandidate(t *testing.T) {
	rope := NewRoot[int, int]()
	for i := 0; i < 50; i++ {
		require.NoError(t, rope.Insert(i, i))
	}
	_, ok := rope.SplitCandidate()
	assert.False(t, ok, "ropes built by Insert have no overflowing leafs")
	rope.cfg.MaxSegmentSize = 4 // shrink the threshold below the current leaf sizes
	k, ok := rope.SplitCandidate()
	require.True(t, ok)
	assert.True(t, rope.Owns(k))
	assert.ErrorIs(t, rope.Check(), ErrMalformed)
}

func TestSmallSegmentsAndBoundedRange(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelInfo)
	//
	cfg := OrderedConfig[int]()
	cfg.MaxSegmentSize = 2
	rope, err := NewWithConfig[int, int](cfg, Bounded(0), Bounded(100))
	require.NoError(t, err)
	for _, k := range []int{100, 0, 50, 25, 75, 99, 1, 51, 49, 100} {
		require.NoError(t, rope.Insert(k, k))
		require.NoError(t, rope.Check())
	}
	assert.Equal(t, 9, rope.KeyCount())
	st := rope.Stats()
	assert.LessOrEqual(t, st.MaxLeaf, 2)
	assert.Equal(t, st.Inner+1, st.Leaves, "every split adds exactly one leaf")
	v, ok, err := rope.Get(100)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 100, v)
}

func TestRandomInsertsKeepInvariants(t *testing.T) {
	rnd := rand.New(rand.NewPCG(1, 2))
	rope := NewRoot[uint32, uint32]()
	want := make(map[uint32]uint32)
	for i := uint32(1); i < 2000; i++ {
		k := rnd.Uint32N(500)
		require.NoError(t, rope.Insert(k, i))
		want[k] = i
	}
	require.NoError(t, rope.Check())
	assert.Equal(t, len(want), rope.KeyCount())
	for k, v := range want {
		got, ok, err := rope.Get(k)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, v, got)
	}
	var prev uint32
	n := 0
	rope.ForEach(func(k, _ uint32) bool {
		if n > 0 {
			require.Greater(t, k, prev)
		}
		prev = k
		n++
		return true
	})
	assert.Equal(t, len(want), n)
}
