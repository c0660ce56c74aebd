package heap

import (
	"fmt"
	"os"
	"unsafe"

	"github.com/joshuapare/heapkit/internal/sysmem"
)

// Runtime debug flag for allocation logging - controlled by HEAP_LOG_ALLOC
// env var. The public paths never log when it is unset.
var logAlloc = os.Getenv("HEAP_LOG_ALLOC") != ""

const (
	// LargeThreshold is the payload size at or above which requests
	// bypass the break and go straight to an anonymous mapping.
	LargeThreshold = 128 << 10

	// MaxRequest is the hard request ceiling in bytes. Larger requests
	// fail before any rounding.
	MaxRequest = 100_000_000

	// splitSlack is the minimum leftover payload that justifies carving a
	// remainder block out of an oversized winner.
	splitSlack = 128
)

// Allocator manages one heap: an address-ordered chain of blocks carved from
// the program break, a chain of anonymously mapped blocks, and the free-bin
// index. Instances are not safe for concurrent use.
type Allocator struct {
	mem  sysmem.Memory
	opts Options

	head   *header // break chain, address-ordered
	mapped *header // mapped chain
	bins   [binCount]*header

	stats OpStats
}

// New returns an allocator drawing address space from mem. A nil mem uses
// the shared process instance; nil opts means DefaultOptions.
func New(mem sysmem.Memory, opts *Options) *Allocator {
	if mem == nil {
		mem = sysmem.Default()
	}
	if opts == nil {
		opts = &DefaultOptions
	}
	return &Allocator{mem: mem, opts: *opts}
}

// Malloc allocates size payload bytes and returns the payload pointer. It
// returns nil if size is zero, above MaxRequest, or the OS refuses more
// address space. The ceiling check runs before alignment rounding, so a
// request just under the ceiling may round up past it and still proceed.
func (a *Allocator) Malloc(size uintptr) unsafe.Pointer {
	if size == 0 || size > MaxRequest {
		return nil
	}
	size = a.align(size)

	if a.opts.MapLarge && size >= LargeThreshold {
		return a.mapLarge(size)
	}

	if a.opts.Recycle {
		if b := a.takeFree(size); b != nil {
			return b.payload()
		}
		if a.opts.TailExtend {
			if last := lastBlock(a.head); last != nil && last.free {
				return a.extendTail(last, size)
			}
		}
	}

	return a.growFresh(size)
}

// Calloc allocates count*elemSize bytes and zeroes the payload. A product
// that overflows the ceiling is rejected like any oversize request.
func (a *Allocator) Calloc(count, elemSize uintptr) unsafe.Pointer {
	if elemSize != 0 && count > MaxRequest/elemSize {
		return nil
	}
	total := count * elemSize
	p := a.Malloc(total)
	if p == nil {
		return nil
	}
	zeroBytes(p, total)
	return p
}

// Free releases the block whose payload starts at p. A nil p is a no-op.
// Mapped blocks are unmapped immediately; break-chain blocks are re-binned
// and coalesced with free address neighbors. Passing a pointer that did not
// come from this allocator, or freeing twice, is undefined.
func (a *Allocator) Free(p unsafe.Pointer) {
	if p == nil {
		return
	}
	b := headerOf(p)

	if a.opts.MapLarge && b.size >= LargeThreshold {
		removeBlock(&a.mapped, b)
		_ = a.mem.Unmap(b.addr(), b.size+headerSize)
		a.stats.UnmapCalls++
		return
	}

	b.free = true
	a.insertBin(b)

	if !a.opts.Coalesce {
		return
	}
	if n := b.next; n != nil && n.free {
		a.mergeNext(b)
		a.stats.CoalesceForward++
	}
	if pv := b.prev; pv != nil && pv.free {
		a.mergeNext(pv)
		a.stats.CoalesceBackward++
	}
}

// align rounds a request up to the pointer width when the configuration
// asks for it.
func (a *Allocator) align(size uintptr) uintptr {
	if !a.opts.AlignSizes {
		return size
	}
	return alignUp(size)
}

// takeFree claims a free block able to hold size payload bytes, splitting
// off the remainder when it would form a viable block. Returns nil when
// nothing fits.
func (a *Allocator) takeFree(size uintptr) *header {
	b := a.findFit(size)
	if b == nil {
		return nil
	}
	if a.splittable(b.size, size) {
		a.split(b, size, true)
	} else {
		a.removeBin(b)
	}
	b.free = false
	return b
}

// splittable reports whether a block of have payload bytes should be split
// to serve a request for need bytes: the remainder must cover a header plus
// splitSlack payload bytes.
func (a *Allocator) splittable(have, need uintptr) bool {
	return a.opts.Split && have >= need+headerSize+splitSlack
}

// split shrinks b to exactly size and inserts the remainder immediately
// after it as a new free block, linked into the chain and binned. unbin
// unlinks b from its bucket first; pass false on realloc merge paths where b
// is already live.
func (a *Allocator) split(b *header, size uintptr, unbin bool) {
	if unbin {
		a.removeBin(b)
	}
	rest := b.size - size
	nb := b.carve(size)
	*nb = header{size: rest - headerSize, free: true, next: b.next, prev: b}
	if b.next != nil {
		b.next.prev = nb
	}
	b.next = nb
	b.size = size
	b.free = false
	b.binNext = nil
	b.binPrev = nil
	a.insertBin(nb)
	a.stats.Splits++
	if logAlloc {
		fmt.Fprintf(os.Stderr, "[HEAP] split: kept=%d remainder=%d\n", size, nb.size)
	}
}

// mergeNext absorbs b's successor into b. Both must be free break-chain
// blocks. The bucket unlinks run before the size change because buckets are
// keyed by size.
func (a *Allocator) mergeNext(b *header) {
	n := b.next
	a.removeBin(b)
	a.removeBin(n)
	b.next = n.next
	if n.next != nil {
		n.next.prev = b
	}
	b.size += n.size + headerSize
	a.insertBin(b)
}

// extendTail grows the free tail block in place to exactly size payload
// bytes. The break delta is requested before any header changes, so an OS
// failure leaves no state change.
func (a *Allocator) extendTail(last *header, size uintptr) unsafe.Pointer {
	if _, err := a.mem.Sbrk(size - last.size); err != nil {
		return nil
	}
	a.removeBin(last)
	last.free = false
	last.size = size
	a.stats.TailExtends++
	if logAlloc {
		fmt.Fprintf(os.Stderr, "[HEAP] tail extend: size=%d\n", size)
	}
	return last.payload()
}

// growFresh extends the break by a full block and appends it to the chain.
func (a *Allocator) growFresh(size uintptr) unsafe.Pointer {
	base, err := a.mem.Sbrk(size + headerSize)
	if err != nil {
		return nil
	}
	b := blockAt(base)
	*b = header{size: size}
	appendBlock(&a.head, b)
	a.stats.GrowCalls++
	a.stats.GrowBytes += uint64(size + headerSize)
	if logAlloc {
		fmt.Fprintf(os.Stderr, "[HEAP] grow: size=%d base=0x%x\n", size, base)
	}
	return b.payload()
}

// mapLarge serves a large request from a fresh anonymous mapping.
func (a *Allocator) mapLarge(size uintptr) unsafe.Pointer {
	base, err := a.mem.Map(size + headerSize)
	if err != nil {
		return nil
	}
	b := blockAt(base)
	*b = header{size: size}
	appendBlock(&a.mapped, b)
	a.stats.MapCalls++
	if logAlloc {
		fmt.Fprintf(os.Stderr, "[HEAP] map: size=%d base=0x%x\n", size, base)
	}
	return b.payload()
}
