package heap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Free_NilIsNoop(t *testing.T) {
	a, mem := newTestAllocator(t, Level4)
	a.Free(nil)
	assert.Equal(t, 0, mem.sbrkCalls)
}

func Test_Free_BinsTheBlock(t *testing.T) {
	a, mem := newTestAllocator(t, Level4)

	p := a.Malloc(100)
	q := a.Malloc(100)
	require.NotNil(t, q)
	a.Free(p)

	b := headerOf(p)
	assert.True(t, b.free)
	assert.True(t, a.binned(b))
	assert.Equal(t, uint64(1), a.NumFreeBlocks())
	assert.Equal(t, uint64(alignUp(100)), a.NumFreeBytes())
	checkInvariants(t, a, mem)
}

func Test_Free_CoalesceForward(t *testing.T) {
	a, mem := newTestAllocator(t, Level4)

	p1 := a.Malloc(64)
	p2 := a.Malloc(64)
	p3 := a.Malloc(64)
	require.NotNil(t, p3)

	a.Free(p2)
	a.Free(p1) // successor p2 is free: absorb it

	b := headerOf(p1)
	assert.True(t, b.free)
	assert.Equal(t, uintptr(64+64)+headerSize, b.size)
	assert.Equal(t, uint64(1), a.NumFreeBlocks())
	assert.Equal(t, 1, a.OpStats().CoalesceForward)
	checkInvariants(t, a, mem)
}

func Test_Free_CoalesceBackward(t *testing.T) {
	a, mem := newTestAllocator(t, Level4)

	p1 := a.Malloc(64)
	p2 := a.Malloc(64)
	p3 := a.Malloc(64)
	require.NotNil(t, p3)

	a.Free(p1)
	a.Free(p2) // predecessor p1 is free: it absorbs us

	b := headerOf(p1)
	assert.True(t, b.free)
	assert.Equal(t, uintptr(64+64)+headerSize, b.size)
	assert.Equal(t, uint64(1), a.NumFreeBlocks())
	assert.Equal(t, 1, a.OpStats().CoalesceBackward)
	checkInvariants(t, a, mem)
}

func Test_Free_ThreeWayCoalesce(t *testing.T) {
	// Scenario: freeing the middle of three free-flanked blocks merges
	// all three into one tail block.
	a, mem := newTestAllocator(t, Level4)

	pa := a.Malloc(40)
	pb := a.Malloc(40)
	pc := a.Malloc(40)
	pd := a.Malloc(40)
	require.NotNil(t, pd)

	a.Free(pb)
	a.Free(pd)
	a.Free(pc)

	merged := headerOf(pb)
	assert.True(t, merged.free)
	assert.Equal(t, uintptr(3*40)+2*headerSize, merged.size)
	assert.Nil(t, merged.next, "merged block must be the chain tail")
	assert.Same(t, merged, lastBlock(a.head))
	assert.Equal(t, uint64(1), a.NumFreeBlocks())
	_ = pa
	checkInvariants(t, a, mem)
}

func Test_Free_RebinsUnderNewSizeClass(t *testing.T) {
	// Two adjacent ~600-byte holes merge into a >1 KB block, which must
	// move to the next kilobyte bucket.
	a, mem := newTestAllocator(t, Level4)

	p1 := a.Malloc(600)
	p2 := a.Malloc(600)
	p3 := a.Malloc(64)
	require.NotNil(t, p3)

	a.Free(p1)
	a.Free(p2)

	b := headerOf(p1)
	require.True(t, b.free)
	assert.Equal(t, uintptr(1200)+headerSize, b.size)
	assert.Equal(t, 1, bucket(b.size))
	assert.True(t, a.binned(b))
	checkInvariants(t, a, mem)
}
