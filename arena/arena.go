package arena

import (
	"errors"
	"fmt"

	"github.com/hupe1980/slotmap/internal/vmem"
)

var (
	// ErrOutOfReserve is returned when a commit or allocation would exceed
	// the reserved address range.
	ErrOutOfReserve = errors.New("arena: out of reserved address space")
	// ErrReleased is returned when the arena has already been released.
	ErrReleased = errors.New("arena: released")
	// ErrInvalidSize is returned for non-positive sizes.
	ErrInvalidSize = errors.New("arena: invalid size")
)

const (
	// DefaultReserve is the reservation used when none is requested (1 GiB).
	DefaultReserve = 1 << 30
	// Alignment is the alignment of blocks returned by Alloc.
	Alignment = 16
)

// Arena is a reserve/commit virtual memory arena with a fixed base address.
type Arena struct {
	buf       []byte // whole reserved range
	committed int    // accessible prefix, page-rounded
	used      int    // bump offset for Alloc
	released  bool
}

// Reserve creates an arena backed by size bytes of reserved address
// space, rounded up to page granularity. A size of zero or less reserves
// DefaultReserve bytes. No memory is committed yet.
func Reserve(size int) (*Arena, error) {
	if size <= 0 {
		size = DefaultReserve
	}
	size = alignUp(size, vmem.PageSize())

	buf, err := vmem.Reserve(size)
	if err != nil {
		return nil, fmt.Errorf("arena: reserve %d bytes: %w", size, err)
	}
	return &Arena{buf: buf}, nil
}

// Commit ensures at least total bytes at the base of the arena are
// readable and writable. The committed range is rounded up to page
// granularity and never shrinks.
func (a *Arena) Commit(total int) error {
	if a.released {
		return ErrReleased
	}
	if total <= 0 {
		return ErrInvalidSize
	}
	if total <= a.committed {
		return nil
	}

	rounded := alignUp(total, vmem.PageSize())
	if rounded > len(a.buf) {
		return fmt.Errorf("arena: commit %d of %d reserved: %w", rounded, len(a.buf), ErrOutOfReserve)
	}
	if err := vmem.Commit(a.buf[a.committed:rounded]); err != nil {
		return fmt.Errorf("arena: commit: %w", err)
	}
	a.committed = rounded
	return nil
}

// Alloc carves an Alignment-aligned block of n bytes off the committed
// prefix, committing more pages as needed. The block stays valid until
// Reset or Release.
func (a *Arena) Alloc(n int) ([]byte, error) {
	if a.released {
		return nil, ErrReleased
	}
	if n <= 0 {
		return nil, ErrInvalidSize
	}

	aligned := alignUp(n, Alignment)
	if err := a.Commit(a.used + aligned); err != nil {
		return nil, err
	}
	b := a.buf[a.used : a.used+n : a.used+aligned]
	a.used += aligned
	return b, nil
}

// Reset rewinds the bump offset, recycling every block handed out by
// Alloc. Committed pages stay committed for reuse.
func (a *Arena) Reset() {
	a.used = 0
}

// Decommit gives back the trailing n bytes of the committed range,
// rounded to page granularity. Pointers into the decommitted range
// become invalid.
func (a *Arena) Decommit(n int) error {
	if a.released {
		return ErrReleased
	}
	if n <= 0 {
		return ErrInvalidSize
	}

	n = alignUp(n, vmem.PageSize())
	if n > a.committed {
		return ErrInvalidSize
	}
	start := a.committed - n
	if err := vmem.Decommit(a.buf[start:a.committed]); err != nil {
		return fmt.Errorf("arena: decommit: %w", err)
	}
	a.committed = start
	if a.used > a.committed {
		a.used = a.committed
	}
	return nil
}

// Release unmaps the whole reservation. The arena and every slice
// obtained from it become invalid. Release is idempotent.
func (a *Arena) Release() error {
	if a.released {
		return nil
	}
	a.released = true

	buf := a.buf
	a.buf = nil
	a.committed = 0
	a.used = 0
	if err := vmem.Release(buf); err != nil {
		return fmt.Errorf("arena: release: %w", err)
	}
	return nil
}

// Bytes returns the committed prefix of the arena. The slice header is
// re-derived on every call; its base address is fixed for the lifetime
// of the arena.
func (a *Arena) Bytes() []byte {
	if a.released {
		return nil
	}
	return a.buf[:a.committed]
}

// Committed returns the size of the accessible prefix in bytes.
func (a *Arena) Committed() int { return a.committed }

// Reserved returns the total reserved address range in bytes.
func (a *Arena) Reserved() int { return len(a.buf) }

func alignUp(n, align int) int {
	return (n + align - 1) &^ (align - 1)
}
