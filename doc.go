// Package slotmap provides an embeddable hash table that maps keys to
// stable integer indices into a contiguous value array.
//
// Unlike a plain map, every entry is addressed by a small dense integer
// that stays valid across growth until the entry is deleted. That makes
// the index usable as a handle: store it in other data structures, hand
// it across API boundaries, or use it to index parallel arrays. Deleted
// indices are recycled in LIFO order, so the issued range stays dense.
//
// # Quick Start
//
//	m, _ := slotmap.New[string, int]()
//	defer m.Close()
//
//	i, _ := m.Set("answer", 42)   // i is stable until Delete("answer")
//	j, ok := m.Get("answer")      // j == i
//	v := m.At(i)                  // *int into the value array
//
//	for i, v := range m.All() {   // live entries in index order
//		_ = i
//		_ = v
//	}
//
// # Keys
//
// String and []byte keys are variable length. Any other key type is
// hashed over its raw in-memory bytes, so it must have a stable
// representation; struct keys with padding need WithHash and WithEqual.
// Short keys are stored inline in the table, longer ones are copied.
// With WithUserManagedKeys the map stores only references to
// caller-owned []byte keys and reports them back via WithKeyRelease.
//
// # Value Storage
//
// Values live in one contiguous array indexed by the issued indices. By
// default the array grows by reallocation, which invalidates pointers
// obtained from At and GetPtr. WithArena reserves virtual address space
// up front and commits pages as the map grows, keeping the base address
// fixed so pointers survive growth.
//
// Map is not safe for concurrent use.
package slotmap
