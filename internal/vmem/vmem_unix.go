//go:build !windows

package vmem

import (
	"golang.org/x/sys/unix"
)

func reserve(size int) ([]byte, error) {
	// PROT_NONE reserves address space without committing physical pages.
	return unix.Mmap(-1, 0, size, unix.PROT_NONE, unix.MAP_ANON|unix.MAP_PRIVATE)
}

func commit(b []byte) error {
	return unix.Mprotect(b, unix.PROT_READ|unix.PROT_WRITE)
}

func decommit(b []byte) error {
	// MADV_DONTNEED lets the kernel reclaim the pages; mprotect then
	// revokes access so stale pointers fault instead of reading zeros.
	if err := unix.Madvise(b, unix.MADV_DONTNEED); err != nil && err != unix.EINVAL {
		return err
	}
	return unix.Mprotect(b, unix.PROT_NONE)
}

func release(b []byte) error {
	return unix.Munmap(b)
}
