//go:build linux || darwin

package sysmem

import (
	"fmt"
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"
)

// DefaultReserve is the size of the region backing the emulated program
// break when none is specified.
const DefaultReserve = 1 << 30

// System implements Memory on top of mmap(2). The break lives inside a
// reserved anonymous region; mapNoReserve keeps the reservation cheap until
// pages are actually touched. Not safe for concurrent use, matching the
// allocator's own contract.
type System struct {
	reserve uintptr
	base    uintptr
	brk     uintptr
	limit   uintptr
}

// NewSystem returns a System whose emulated break can grow up to reserve
// bytes. Zero means DefaultReserve. The region is reserved on first use.
func NewSystem(reserve uintptr) *System {
	if reserve == 0 {
		reserve = DefaultReserve
	}
	return &System{reserve: reserve}
}

var (
	defaultOnce sync.Once
	defaultSys  *System
)

// Default returns the shared process instance backing the package-level
// allocator.
func Default() Memory {
	defaultOnce.Do(func() { defaultSys = NewSystem(0) })
	return defaultSys
}

func (s *System) ensure() error {
	if s.base != 0 {
		return nil
	}
	data, err := unix.Mmap(-1, 0, int(s.reserve),
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANONYMOUS|mapNoReserve)
	if err != nil {
		return fmt.Errorf("sysmem: reserving break region: %w", err)
	}
	s.base = uintptr(unsafe.Pointer(&data[0]))
	s.brk = s.base
	s.limit = s.base + s.reserve
	return nil
}

// Sbrk extends the emulated break by delta bytes and returns the previous
// break. The region base is page-aligned, so the initial break satisfies
// pointer-width alignment.
func (s *System) Sbrk(delta uintptr) (uintptr, error) {
	if err := s.ensure(); err != nil {
		return 0, err
	}
	if delta > s.limit-s.brk {
		return 0, ErrNoMemory
	}
	old := s.brk
	s.brk += delta
	return old, nil
}

// Break reports the current emulated break. Zero until the first Sbrk.
func (s *System) Break() uintptr { return s.brk }

// Map creates a fresh anonymous read/write mapping of length bytes.
func (s *System) Map(length uintptr) (uintptr, error) {
	data, err := unix.Mmap(-1, 0, int(length),
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMapFailed, err)
	}
	return uintptr(unsafe.Pointer(&data[0])), nil
}

// Unmap releases a mapping created by Map. The slice is reconstructed with
// the original base and length, which is what unix.Munmap keys on.
func (s *System) Unmap(base, length uintptr) error {
	return unix.Munmap(unsafe.Slice((*byte)(unsafe.Pointer(base)), length))
}

// PageSize returns the system page size.
func PageSize() int { return unix.Getpagesize() }
