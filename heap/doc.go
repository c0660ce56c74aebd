// Package heap implements a user-space dynamic memory allocator that manages
// a process heap through program-break extension and anonymous memory
// mapping.
//
// # Overview
//
// Every allocation carries a fixed-size header immediately before its
// payload. Headers are threaded onto two lists: an address-ordered chain of
// all blocks carved from the program break, and a separate chain of blocks
// obtained from anonymous mappings. Free break-chain blocks are additionally
// indexed by 128 kilobyte-class bins for best-fit lookup.
//
// # Allocation policy
//
// A request walks a ladder, first match wins:
//
//  1. At or above LargeThreshold (128 KB) the block is anonymously mapped
//     and never enters the break chain.
//  2. Bin best-fit: buckets are scanned upward from the request's size
//     class; an oversized winner is split when the remainder would form a
//     viable free block.
//  3. Tail extension: if the last break-chain block is free, the break is
//     extended by the shortfall and the block grown in place.
//  4. Fresh growth: the break is extended by the full block size.
//
// Freeing a break-chain block re-bins it and coalesces it with free address
// neighbors; freeing a mapped block unmaps it immediately. Realloc tries a
// ladder of in-place options (reuse, left/right/three-way neighbor
// absorption, tail extension) before falling back to allocate-copy-free.
//
// # Behavior levels
//
// The allocator is parametric over its policies. Options presets Level1
// through Level4 reproduce four historically distinct allocators, from a
// bump-the-break allocator with no reuse (Level1) up to the full binned,
// splitting, coalescing, mapping, aligning allocator (Level4, the default):
//
//	a := heap.New(nil, &heap.Level3)
//	p := a.Malloc(100)
//	defer a.Free(p)
//
// # Failure surface
//
// Zero-size requests, requests above MaxRequest, and refusals from the
// operating system all surface as a nil payload pointer with no state
// change. The allocator never logs or panics on its public paths.
//
// # Thread safety
//
// Allocator instances are not thread-safe. Callers must synchronize access
// externally; the package-level entry points share one process-wide
// instance and inherit the same contract.
package heap
