// Package vmem provides reserve/commit style virtual memory primitives.
//
// # Overview
//
// Unlike a plain heap allocation, reserved memory occupies address space
// without being backed by physical pages. Committing grants read/write
// access to a prefix of the reservation, page by page, which lets a
// growing structure keep a fixed base address for its whole lifetime.
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): mmap(2) with PROT_NONE to reserve,
//     mprotect(2) to commit and decommit
//   - Windows: VirtualAlloc with MEM_RESERVE / MEM_COMMIT, VirtualFree
//
// All functions operate on page-granular ranges. The system page size is
// discovered once per process via PageSize.
package vmem
