package heap

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/heapkit/internal/sysmem"
)

// ============================================================================
// Test Helpers
// ============================================================================

// stubMemory is a deterministic in-process Memory implementation. The break
// lives inside a Go-allocated arena; mappings are separate buffers pinned in
// the maps table. failSbrk/failMap force the OS-exhaustion paths.
type stubMemory struct {
	arena []byte
	start uintptr // offset of the aligned initial break within arena
	brk   uintptr // current break offset within arena
	maps  map[uintptr][]byte

	failSbrk bool
	failMap  bool

	sbrkCalls int
}

func newStubMemory(size uintptr) *stubMemory {
	m := &stubMemory{
		arena: make([]byte, size+ptrAlign),
		maps:  make(map[uintptr][]byte),
	}
	if r := m.arenaBase() % ptrAlign; r != 0 {
		m.start = ptrAlign - r
	}
	m.brk = m.start
	return m
}

func (m *stubMemory) arenaBase() uintptr {
	return uintptr(unsafe.Pointer(&m.arena[0]))
}

// Break reports the current emulated break address.
func (m *stubMemory) Break() uintptr { return m.arenaBase() + m.brk }

// used reports how far the break has advanced past its initial position.
func (m *stubMemory) used() uintptr { return m.brk - m.start }

func (m *stubMemory) Sbrk(delta uintptr) (uintptr, error) {
	m.sbrkCalls++
	if m.failSbrk {
		return 0, sysmem.ErrNoMemory
	}
	if delta > uintptr(len(m.arena))-m.brk {
		return 0, sysmem.ErrNoMemory
	}
	old := m.arenaBase() + m.brk
	m.brk += delta
	return old, nil
}

func (m *stubMemory) Map(length uintptr) (uintptr, error) {
	if m.failMap {
		return 0, sysmem.ErrMapFailed
	}
	buf := make([]byte, length)
	base := uintptr(unsafe.Pointer(&buf[0]))
	m.maps[base] = buf
	return base, nil
}

func (m *stubMemory) Unmap(base, _ uintptr) error {
	delete(m.maps, base)
	return nil
}

// newTestAllocator returns an allocator over a fresh stub arena.
func newTestAllocator(t *testing.T, opts Options) (*Allocator, *stubMemory) {
	t.Helper()
	mem := newStubMemory(1 << 20)
	return New(mem, &opts), mem
}

// binned reports whether b is linked into the bucket for its size.
func (a *Allocator) binned(b *header) bool {
	for cur := a.bins[bucket(b.size)]; cur != nil; cur = cur.binNext {
		if cur == b {
			return true
		}
	}
	return false
}

// checkInvariants validates the universal invariants over the current
// allocator state: chain contiguity and backlinks, no adjacent free pairs,
// bin membership iff free, payload alignment, and the break-sum identity.
// Flag-dependent invariants are skipped when the configuration disables the
// behavior that maintains them.
func checkInvariants(t *testing.T, a *Allocator, mem *stubMemory) {
	t.Helper()
	var sum uintptr
	for b := a.head; b != nil; b = b.next {
		if b.next != nil {
			require.Equal(t, b.addr()+headerSize+b.size, b.next.addr(),
				"break chain must be physically contiguous")
			require.Same(t, b, b.next.prev, "chain backlink broken")
			if a.opts.Coalesce {
				require.False(t, b.free && b.next.free, "adjacent free blocks")
			}
		}
		if a.opts.AlignSizes {
			require.Zero(t, b.size%ptrAlign, "payload size unaligned")
			require.Zero(t, uintptr(b.payload())%ptrAlign, "payload pointer unaligned")
		}
		if a.opts.Bins {
			require.Equal(t, b.free, a.binned(b), "bin membership must match free flag")
		}
		sum += b.size + headerSize
	}
	require.Equal(t, mem.used(), sum, "chain bytes must equal break advance")
}

// fillPayload writes a recognizable pattern into the first n payload bytes.
func fillPayload(p unsafe.Pointer, n uintptr, seed byte) {
	buf := unsafe.Slice((*byte)(p), n)
	for i := range buf {
		buf[i] = seed + byte(i)
	}
}

// requirePayload asserts the first n payload bytes still carry the pattern.
func requirePayload(t *testing.T, p unsafe.Pointer, n uintptr, seed byte) {
	t.Helper()
	buf := unsafe.Slice((*byte)(p), n)
	for i, v := range buf {
		if v != seed+byte(i) {
			t.Fatalf("payload byte %d corrupted: got %#x want %#x", i, v, seed+byte(i))
		}
	}
}
