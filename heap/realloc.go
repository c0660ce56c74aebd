package heap

import "unsafe"

// Realloc resizes the block whose payload starts at p to size payload bytes.
// It returns nil if size is zero or above MaxRequest; a nil p delegates to
// Malloc. A break-chain block is resized in place whenever possible, walking
// a ladder of options before relocating:
//
//	(a) the block already holds enough: reuse, splitting off any viable
//	    remainder
//	(b) a free left neighbor covers the shortfall: absorb it and move the
//	    payload down
//	(c) a free right neighbor covers it: absorb in place
//	(d) both neighbors together cover it: three-way absorb into the left
//	(e) the block is the chain tail: extend the break by the shortfall,
//	    absorbing a free left neighbor first
//	(f) otherwise allocate fresh, copy, free the original
//
// Mapped blocks always relocate. Copies use overlap-safe moves because
// branches (b) and (d) slide the payload within overlapping regions.
func (a *Allocator) Realloc(p unsafe.Pointer, size uintptr) unsafe.Pointer {
	if size == 0 || size > MaxRequest {
		return nil
	}
	if p == nil {
		return a.Malloc(size)
	}
	size = a.align(size)
	b := headerOf(p)

	if a.opts.MapLarge && b.size >= LargeThreshold {
		q := a.Malloc(size)
		if q == nil {
			return nil
		}
		moveBytes(q, p, min(b.size, size))
		a.Free(p)
		return q
	}

	prev, next := b.prev, b.next

	switch {
	// (a) current block already holds enough.
	case b.size >= size:
		if a.splittable(b.size, size) {
			a.split(b, size, true)
			a.coalesceAfterSplit(b)
		}
		return p

	// (b) absorb the free left neighbor and slide the payload down.
	case a.opts.Coalesce && prev != nil && prev.free && prev.size+b.size >= size:
		a.removeBin(prev)
		prev.free = false
		prev.next = next
		if next != nil {
			next.prev = prev
		}
		oldSize := b.size
		prev.size += oldSize + headerSize
		moveBytes(prev.payload(), p, min(size, oldSize))
		if a.splittable(prev.size, size) {
			a.split(prev, size, false)
			a.coalesceAfterSplit(prev)
		}
		a.stats.CoalesceBackward++
		return prev.payload()

	// (c) absorb the free right neighbor in place.
	case a.opts.Coalesce && next != nil && next.free && next.size+b.size >= size:
		a.removeBin(next)
		b.next = next.next
		if next.next != nil {
			next.next.prev = b
		}
		b.size += next.size + headerSize
		if a.splittable(b.size, size) {
			a.split(b, size, false)
			a.coalesceAfterSplit(b)
		}
		a.stats.CoalesceForward++
		return p

	// (d) three-way absorb into the left neighbor. The sum counts the two
	// reclaimed headers: the merge frees both of them for payload.
	case a.opts.Coalesce && prev != nil && prev.free && next != nil && next.free &&
		prev.size+b.size+next.size+2*headerSize >= size:
		a.removeBin(prev)
		a.removeBin(next)
		prev.free = false
		prev.next = next.next
		if next.next != nil {
			next.next.prev = prev
		}
		oldSize := b.size
		prev.size += oldSize + next.size + 2*headerSize
		moveBytes(prev.payload(), p, min(size, oldSize))
		if a.splittable(prev.size, size) {
			a.split(prev, size, false)
			a.coalesceAfterSplit(prev)
		}
		return prev.payload()

	// (e) the block is the chain tail: extend the break.
	case a.opts.TailExtend && next == nil:
		if a.opts.Coalesce && prev != nil && prev.free {
			// The merged span may already cover the request by up to
			// one reclaimed header; only then is no break call needed.
			merged := prev.size + b.size + headerSize
			if merged < size {
				if _, err := a.mem.Sbrk(size - merged); err != nil {
					return nil
				}
				merged = size
			}
			a.removeBin(prev)
			prev.free = false
			prev.next = nil
			oldSize := b.size
			prev.size = merged
			moveBytes(prev.payload(), p, oldSize)
			a.stats.TailExtends++
			return prev.payload()
		}
		if _, err := a.mem.Sbrk(size - b.size); err != nil {
			return nil
		}
		b.size = size
		a.stats.TailExtends++
		return p

	// (f) relocate.
	default:
		q := a.Malloc(size)
		if q == nil {
			return nil
		}
		moveBytes(q, p, min(size, b.size))
		a.Free(p)
		return q
	}
}

// coalesceAfterSplit merges the remainder produced by a realloc split with
// its own successor when both are free. Splits on the merge branches can
// drop a free remainder next to an existing free block; this restores the
// no-adjacent-free invariant.
func (a *Allocator) coalesceAfterSplit(b *header) {
	n := b.next
	if n != nil && n.free && n.next != nil && n.next.free {
		a.mergeNext(n)
	}
}
