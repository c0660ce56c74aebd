package heap

import "github.com/joshuapare/heapkit/internal/sysmem"

// NewIsolated returns an allocator with its own private emulated program
// break of the given reserve size (zero means the sysmem default). The break
// is a process-wide resource an allocator assumes sole use of, so when more
// than one allocator must coexist each needs its own.
func NewIsolated(reserve uintptr, opts *Options) *Allocator {
	return New(sysmem.NewSystem(reserve), opts)
}
