package vmem

import (
	"errors"
	"os"
	"sync"
)

var (
	// ErrInvalidSize is returned when a reservation size is not positive.
	ErrInvalidSize = errors.New("vmem: invalid size")
)

var (
	pageOnce sync.Once
	pageSize int
)

// PageSize returns the system page size, discovered once per process.
func PageSize() int {
	pageOnce.Do(func() {
		pageSize = os.Getpagesize()
	})
	return pageSize
}

// Reserve maps size bytes of address space with no access rights. The
// returned slice must not be read or written until the corresponding
// range has been passed to Commit.
func Reserve(size int) ([]byte, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	return reserve(size)
}

// Commit grants read/write access to b, which must be a page-aligned
// sub-slice of a reservation returned by Reserve.
func Commit(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	return commit(b)
}

// Decommit revokes access to b and tells the kernel its pages may be
// reclaimed. b must be a page-aligned sub-slice of a reservation.
func Decommit(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	return decommit(b)
}

// Release unmaps an entire reservation returned by Reserve.
func Release(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	return release(b)
}
