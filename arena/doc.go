// Package arena provides a reserve/commit virtual memory arena.
//
// # Overview
//
// An Arena reserves a large range of address space up front and grants
// read/write access to a growing prefix of it on demand. Because the base
// address never changes, pointers into the committed prefix stay valid
// across growth, unlike a heap allocation that relocates when resized.
//
// Two usage styles are supported:
//
//   - Commit-prefix: call Commit(total) to make at least total bytes
//     accessible and address them through Bytes(). This is how slotmap
//     backs its value array when configured with WithArena.
//   - Bump allocation: call Alloc(n) to carve aligned blocks off the
//     committed prefix, and Reset to recycle all of them at once.
//
// # Resource Model
//
// Reserved but uncommitted pages cost address space only. Committed pages
// count against the process until Decommit or Release. An Arena is not
// safe for concurrent use.
package arena
