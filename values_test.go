package slotmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeapValues_GrowCopies(t *testing.T) {
	h := &heapValues[int]{}
	require.NoError(t, h.grow(4))
	h.slice()[0] = 42

	require.NoError(t, h.grow(16))
	assert.Len(t, h.slice(), 16)
	assert.Equal(t, 42, h.slice()[0])

	// Never shrinks
	require.NoError(t, h.grow(4))
	assert.Len(t, h.slice(), 16)

	require.NoError(t, h.close())
	assert.Nil(t, h.slice())
}

func TestArenaValues_StableBase(t *testing.T) {
	av, err := newArenaValues[uint64](1 << 20)
	require.NoError(t, err)
	defer av.close()

	require.NoError(t, av.grow(8))
	base := &av.slice()[0]
	av.slice()[0] = 7

	require.NoError(t, av.grow(1024))
	assert.Same(t, base, &av.slice()[0])
	assert.Equal(t, uint64(7), av.slice()[0])
	assert.Len(t, av.slice(), 1024)
}

func TestMap_ArenaBacked(t *testing.T) {
	m, err := New[uint64, uint64](WithCapacity(4), WithArena(1<<22))
	require.NoError(t, err)

	i0, err := m.Set(100, 1000)
	require.NoError(t, err)
	p := m.At(i0)
	require.NotNil(t, p)

	// Pointers into the value array survive growth
	for k := uint64(1000); k < 1500; k++ {
		_, err := m.Set(k, k)
		require.NoError(t, err)
	}
	assert.Same(t, p, m.At(i0))
	assert.Equal(t, uint64(1000), *p)

	gp := m.GetPtr(100)
	assert.Same(t, p, gp)

	require.NoError(t, m.Close())
	require.NoError(t, m.Close())
}

func TestMap_ArenaOutOfReserve(t *testing.T) {
	// One page of reserve fills immediately under 8-byte values.
	m, err := New[uint64, uint64](WithCapacity(4), WithArena(4096))
	require.NoError(t, err)
	defer m.Close()

	var lastErr error
	for k := uint64(0); k < 10000; k++ {
		if _, lastErr = m.Set(k, k); lastErr != nil {
			break
		}
	}
	require.Error(t, lastErr)
}
