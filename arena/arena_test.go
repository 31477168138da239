package arena

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/slotmap/internal/vmem"
)

func TestReserve(t *testing.T) {
	t.Run("default size", func(t *testing.T) {
		a, err := Reserve(0)
		require.NoError(t, err)
		defer a.Release()

		assert.Equal(t, DefaultReserve, a.Reserved())
		assert.Equal(t, 0, a.Committed())
	})

	t.Run("rounds to page granularity", func(t *testing.T) {
		a, err := Reserve(1)
		require.NoError(t, err)
		defer a.Release()

		assert.Equal(t, vmem.PageSize(), a.Reserved())
	})
}

func TestArena_Commit(t *testing.T) {
	t.Run("grows accessible prefix", func(t *testing.T) {
		a, err := Reserve(1 << 20)
		require.NoError(t, err)
		defer a.Release()

		require.NoError(t, a.Commit(100))
		assert.Equal(t, vmem.PageSize(), a.Committed())

		b := a.Bytes()
		require.Len(t, b, a.Committed())

		// Committed memory must be writable and zero-initialized.
		for i := range b {
			require.Zero(t, b[i])
		}
		b[0] = 0xAB
		b[len(b)-1] = 0xCD
		assert.Equal(t, byte(0xAB), a.Bytes()[0])
	})

	t.Run("never shrinks", func(t *testing.T) {
		a, err := Reserve(1 << 20)
		require.NoError(t, err)
		defer a.Release()

		require.NoError(t, a.Commit(3 * vmem.PageSize()))
		require.NoError(t, a.Commit(1))
		assert.Equal(t, 3*vmem.PageSize(), a.Committed())
	})

	t.Run("base address is stable across growth", func(t *testing.T) {
		a, err := Reserve(1 << 20)
		require.NoError(t, err)
		defer a.Release()

		require.NoError(t, a.Commit(1))
		base := &a.Bytes()[0]

		require.NoError(t, a.Commit(1<<19))
		assert.Same(t, base, &a.Bytes()[0])
	})

	t.Run("out of reserve", func(t *testing.T) {
		a, err := Reserve(vmem.PageSize())
		require.NoError(t, err)
		defer a.Release()

		err = a.Commit(2 * vmem.PageSize())
		assert.ErrorIs(t, err, ErrOutOfReserve)
	})

	t.Run("invalid size", func(t *testing.T) {
		a, err := Reserve(vmem.PageSize())
		require.NoError(t, err)
		defer a.Release()

		assert.ErrorIs(t, a.Commit(0), ErrInvalidSize)
	})
}

func TestArena_Alloc(t *testing.T) {
	t.Run("aligned bump allocation", func(t *testing.T) {
		a, err := Reserve(1 << 20)
		require.NoError(t, err)
		defer a.Release()

		b1, err := a.Alloc(10)
		require.NoError(t, err)
		require.Len(t, b1, 10)

		b2, err := a.Alloc(10)
		require.NoError(t, err)

		// Blocks are carved at Alignment boundaries.
		assert.Equal(t, Alignment, cap(b1))
		assert.Zero(t, uintptr(unsafe.Pointer(&b2[0]))%Alignment)
		copy(b1, "0123456789")
		copy(b2, "abcdefghij")
		assert.Equal(t, "0123456789", string(b1))
		assert.Equal(t, "abcdefghij", string(b2))
	})

	t.Run("reset recycles blocks", func(t *testing.T) {
		a, err := Reserve(1 << 20)
		require.NoError(t, err)
		defer a.Release()

		b1, err := a.Alloc(8)
		require.NoError(t, err)

		a.Reset()

		b2, err := a.Alloc(8)
		require.NoError(t, err)
		assert.Same(t, &b1[0], &b2[0])
	})

	t.Run("exhausts reservation", func(t *testing.T) {
		a, err := Reserve(vmem.PageSize())
		require.NoError(t, err)
		defer a.Release()

		_, err = a.Alloc(vmem.PageSize())
		require.NoError(t, err)

		_, err = a.Alloc(1)
		assert.ErrorIs(t, err, ErrOutOfReserve)
	})
}

func TestArena_Decommit(t *testing.T) {
	a, err := Reserve(1 << 20)
	require.NoError(t, err)
	defer a.Release()

	page := vmem.PageSize()
	require.NoError(t, a.Commit(4*page))

	require.NoError(t, a.Decommit(2*page))
	assert.Equal(t, 2*page, a.Committed())

	// Decommitting more than committed is rejected.
	assert.ErrorIs(t, a.Decommit(3*page), ErrInvalidSize)
}

func TestArena_Release(t *testing.T) {
	a, err := Reserve(vmem.PageSize())
	require.NoError(t, err)

	require.NoError(t, a.Commit(1))
	require.NoError(t, a.Release())

	// Idempotent, and all operations fail afterwards.
	require.NoError(t, a.Release())
	assert.ErrorIs(t, a.Commit(1), ErrReleased)
	_, err = a.Alloc(1)
	assert.ErrorIs(t, err, ErrReleased)
	assert.Nil(t, a.Bytes())
}
