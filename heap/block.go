package heap

import "unsafe"

// header sits immediately before every payload this allocator hands out.
// A block on the heap looks like:
//
//	header   // size, free flag, chain and bin links
//	payload  // size bytes, the region returned to the caller
//
// size counts payload bytes only; the header is accounted separately.
// binNext and binPrev are meaningful only while free is true and the block
// lives in the break chain.
type header struct {
	size    uintptr
	free    bool
	next    *header
	prev    *header
	binNext *header
	binPrev *header
}

// headerSize is the per-block metadata overhead. The struct is laid out in
// whole words, so the size is a multiple of the pointer alignment by
// construction.
const headerSize = unsafe.Sizeof(header{})

// All pointer arithmetic between raw addresses, headers, and payloads is
// confined to the helpers below.

// blockAt materializes a header at a raw address obtained from sysmem.
func blockAt(base uintptr) *header {
	return (*header)(unsafe.Pointer(base)) //nolint:govet // address is outside the Go heap
}

// headerOf recovers the header from a payload pointer previously returned by
// payload.
func headerOf(p unsafe.Pointer) *header {
	return (*header)(unsafe.Add(p, -int(headerSize)))
}

// payload returns the caller-visible region of b.
func (b *header) payload() unsafe.Pointer {
	return unsafe.Add(unsafe.Pointer(b), headerSize)
}

// addr returns the base address of the block, i.e. the header start.
func (b *header) addr() uintptr {
	return uintptr(unsafe.Pointer(b))
}

// carve returns a header positioned size payload bytes into b, where the
// remainder block begins when b is split.
func (b *header) carve(size uintptr) *header {
	return (*header)(unsafe.Add(unsafe.Pointer(b), headerSize+size))
}

// moveBytes copies n bytes between payload regions. copy has memmove
// semantics, so overlapping source and destination are safe.
func moveBytes(dst, src unsafe.Pointer, n uintptr) {
	copy(unsafe.Slice((*byte)(dst), n), unsafe.Slice((*byte)(src), n))
}

// zeroBytes clears n bytes starting at a payload pointer.
func zeroBytes(p unsafe.Pointer, n uintptr) {
	clear(unsafe.Slice((*byte)(p), n))
}
