package heap

import "unsafe"

// std backs the package-level entry points so callers that want the
// classic global malloc surface get one shared heap.
var std = New(nil, nil)

// Default returns the process-wide allocator used by the package-level
// functions.
func Default() *Allocator { return std }

// Malloc allocates from the process-wide allocator.
func Malloc(size uintptr) unsafe.Pointer { return std.Malloc(size) }

// Calloc allocates zeroed memory from the process-wide allocator.
func Calloc(count, elemSize uintptr) unsafe.Pointer { return std.Calloc(count, elemSize) }

// Realloc resizes a block of the process-wide allocator.
func Realloc(p unsafe.Pointer, size uintptr) unsafe.Pointer { return std.Realloc(p, size) }

// Free releases a block of the process-wide allocator.
func Free(p unsafe.Pointer) { std.Free(p) }
