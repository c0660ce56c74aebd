package heap

// Stats is a snapshot of the heap-level counters consumed by test harnesses.
// Byte counters exclude header bytes; headers are reported separately via
// MetaDataBytes. Free counters cover the break chain only: mapped blocks are
// unmapped the moment they are freed, so a free mapped block never exists.
type Stats struct {
	FreeBlocks      uint64
	FreeBytes       uint64
	AllocatedBlocks uint64
	AllocatedBytes  uint64
	MetaDataBytes   uint64
	SizeMetaData    uint64
}

// Stats walks both chains and returns the current counters.
func (a *Allocator) Stats() Stats {
	s := Stats{SizeMetaData: uint64(headerSize)}
	for b := a.head; b != nil; b = b.next {
		s.AllocatedBlocks++
		s.AllocatedBytes += uint64(b.size)
		s.MetaDataBytes += uint64(headerSize)
		if b.free {
			s.FreeBlocks++
			s.FreeBytes += uint64(b.size)
		}
	}
	for b := a.mapped; b != nil; b = b.next {
		s.AllocatedBlocks++
		s.AllocatedBytes += uint64(b.size)
		s.MetaDataBytes += uint64(headerSize)
	}
	return s
}

// NumFreeBlocks returns the number of free blocks in the break chain.
func (a *Allocator) NumFreeBlocks() uint64 { return a.Stats().FreeBlocks }

// NumFreeBytes returns the free payload bytes in the break chain.
func (a *Allocator) NumFreeBytes() uint64 { return a.Stats().FreeBytes }

// NumAllocatedBlocks returns the total block count across both chains.
func (a *Allocator) NumAllocatedBlocks() uint64 { return a.Stats().AllocatedBlocks }

// NumAllocatedBytes returns the total payload bytes across both chains.
func (a *Allocator) NumAllocatedBytes() uint64 { return a.Stats().AllocatedBytes }

// NumMetaDataBytes returns the header bytes across both chains.
func (a *Allocator) NumMetaDataBytes() uint64 { return a.Stats().MetaDataBytes }

// SizeMetaData returns the size of one block header.
func (a *Allocator) SizeMetaData() uint64 { return uint64(headerSize) }

// OpStats counts internal allocator operations. It is instrumentation for
// tests and reports, distinct from the heap-level counters above.
type OpStats struct {
	GrowCalls        int    // break extensions that appended a fresh block
	GrowBytes        uint64 // total bytes added via fresh growth
	TailExtends      int    // in-place growths of the chain tail
	Splits           int    // remainder blocks carved from winners
	CoalesceForward  int    // merges with the address successor
	CoalesceBackward int    // merges into the address predecessor
	MapCalls         int    // anonymous mappings created
	UnmapCalls       int    // anonymous mappings released
}

// OpStats returns the operation counters accumulated so far.
func (a *Allocator) OpStats() OpStats { return a.stats }
