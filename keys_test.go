package slotmap

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreKey_Classes(t *testing.T) {
	t.Run("inline", func(t *testing.T) {
		c := newTestCore(t, defaultOptions(), true)
		_, _, err := c.insert([]byte("short"))
		require.NoError(t, err)

		ti := c.findSlot([]byte("short"))
		require.GreaterOrEqual(t, ti, 0)
		s := &c.table[ti]
		assert.Nil(t, s.ext)
		assert.Equal(t, []byte("short"), s.key())
	})

	t.Run("copied", func(t *testing.T) {
		c := newTestCore(t, defaultOptions(), true)
		key := []byte("longer than eight bytes")
		_, _, err := c.insert(key)
		require.NoError(t, err)

		ti := c.findSlot(key)
		require.GreaterOrEqual(t, ti, 0)
		s := &c.table[ti]
		require.NotNil(t, s.ext)
		assert.NotSame(t, &key[0], &s.ext[0])

		// Engine-owned copy is immune to caller mutation
		key[0] = 'X'
		_, ok := c.get([]byte("longer than eight bytes"))
		assert.True(t, ok)
	})

	t.Run("user managed aliases", func(t *testing.T) {
		opts := defaultOptions()
		opts.UserManagedKeys = true
		c := newTestCore(t, opts, true)

		key := []byte("caller owned")
		_, _, err := c.insert(key)
		require.NoError(t, err)

		ti := c.findSlot(key)
		require.GreaterOrEqual(t, ti, 0)
		assert.Same(t, &key[0], &c.table[ti].ext[0])
	})
}

func TestKeyRelease_Hook(t *testing.T) {
	var released [][]byte
	m, err := New[[]byte, int](WithKeyRelease(func(k []byte) {
		released = append(released, k)
	}))
	require.NoError(t, err)

	ka := []byte("alpha")
	kb := []byte("beta")
	kc := []byte("gamma")
	m.Set(ka, 1)
	m.Set(kb, 2)
	m.Set(kc, 3)

	m.Delete(kb)
	require.Len(t, released, 1)
	assert.Same(t, &kb[0], &released[0][0])

	// Close releases the remaining keys
	require.NoError(t, m.Close())
	assert.Len(t, released, 3)
	for _, want := range [][]byte{ka, kc} {
		found := false
		for _, got := range released {
			if bytes.Equal(got, want) {
				found = true
			}
		}
		assert.True(t, found, "key %q not released", want)
	}
}

func TestUserManagedKeys_NoCopy(t *testing.T) {
	m, err := New[[]byte, int](WithUserManagedKeys())
	require.NoError(t, err)
	defer m.Close()

	key := []byte("caller keeps this alive")
	idx, err := m.Set(key, 1)
	require.NoError(t, err)

	got, ok := m.Get(key)
	require.True(t, ok)
	assert.Equal(t, idx, got)

	// The stored key aliases the caller's bytes, so mutating them
	// changes what the entry matches.
	key[0] = 'X'
	_, ok = m.Get([]byte("caller keeps this alive"))
	assert.False(t, ok)
	_, ok = m.Get(key)
	assert.True(t, ok)
}

func TestCheckRawKeyKind(t *testing.T) {
	ok := []func() error{
		func() error { var k uint64; return checkRawKeyKindOf(&k) },
		func() error { var k [16]byte; return checkRawKeyKindOf(&k) },
		func() error {
			var k struct {
				A uint32
				B [4]int16
			}
			return checkRawKeyKindOf(&k)
		},
		func() error { var k *int; return checkRawKeyKindOf(&k) },
	}
	for _, fn := range ok {
		assert.NoError(t, fn())
	}

	bad := []func() error{
		func() error { var k map[int]int; return checkRawKeyKindOf(&k) },
		func() error { var k []int; return checkRawKeyKindOf(&k) },
		func() error { var k func(); return checkRawKeyKindOf(&k) },
		func() error { var k chan int; return checkRawKeyKindOf(&k) },
		func() error { var k struct{ S []int }; return checkRawKeyKindOf(&k) },
	}
	for _, fn := range bad {
		assert.ErrorIs(t, fn(), ErrKeyType)
	}
}

func checkRawKeyKindOf[K any](*K) error {
	return checkRawKeyKind(reflect.TypeFor[K]())
}
