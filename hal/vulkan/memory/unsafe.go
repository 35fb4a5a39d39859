package memory

import "unsafe"

// unsafeBytesAt views n bytes of host memory starting at ptr as a Go byte
// slice, for copying into a driver-mapped pool.
func unsafeBytesAt(ptr uintptr, n int) []byte {
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(ptr)), n)
}
