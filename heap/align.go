package heap

import "unsafe"

// ptrAlign is the pointer-width alignment unit. Payload sizes are rounded up
// to a multiple of it when Options.AlignSizes is set, and returned payload
// addresses are aligned to it.
const ptrAlign = unsafe.Sizeof(uintptr(0))

// alignUp returns n rounded up to the next multiple of the pointer width.
//
// Example:
//
//	alignUp(1)  = 8
//	alignUp(8)  = 8
//	alignUp(9)  = 16
func alignUp(n uintptr) uintptr {
	return (n + ptrAlign - 1) &^ (ptrAlign - 1)
}
