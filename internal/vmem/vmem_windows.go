//go:build windows

package vmem

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

func reserve(size int) ([]byte, error) {
	addr, err := windows.VirtualAlloc(0, uintptr(size), windows.MEM_RESERVE, windows.PAGE_NOACCESS)
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size), nil //nolint:gosec // unsafe is required to view the reservation
}

func commit(b []byte) error {
	addr := uintptr(unsafe.Pointer(&b[0])) //nolint:gosec // address of an existing reservation
	_, err := windows.VirtualAlloc(addr, uintptr(len(b)), windows.MEM_COMMIT, windows.PAGE_READWRITE)
	return err
}

func decommit(b []byte) error {
	addr := uintptr(unsafe.Pointer(&b[0])) //nolint:gosec // address of an existing reservation
	return windows.VirtualFree(addr, uintptr(len(b)), windows.MEM_DECOMMIT)
}

func release(b []byte) error {
	addr := uintptr(unsafe.Pointer(&b[0])) //nolint:gosec // address of an existing reservation
	// MEM_RELEASE requires size zero and frees the whole reservation.
	return windows.VirtualFree(addr, 0, windows.MEM_RELEASE)
}
