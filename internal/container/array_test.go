package container

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArray(t *testing.T) {
	t.Run("push pop is LIFO", func(t *testing.T) {
		a := NewArray[int32](4)

		a.Push(1)
		a.Push(2)
		a.Push(3)
		require.Equal(t, 3, a.Len())

		assert.Equal(t, int32(3), a.Peek())
		assert.Equal(t, int32(3), a.Pop())
		assert.Equal(t, int32(2), a.Pop())
		assert.Equal(t, int32(1), a.Pop())
		assert.Equal(t, 0, a.Len())
	})

	t.Run("grows past initial capacity", func(t *testing.T) {
		a := NewArray[int](1)
		for i := range 100 {
			a.Push(i)
		}
		assert.Equal(t, 100, a.Len())
		assert.GreaterOrEqual(t, a.Cap(), 100)
		assert.Equal(t, 99, a.Peek())
	})

	t.Run("clear keeps storage", func(t *testing.T) {
		a := NewArray[int](0)
		a.Push(1)
		a.Push(2)
		grown := a.Cap()

		a.Clear()
		assert.Equal(t, 0, a.Len())
		assert.Equal(t, grown, a.Cap())
	})
}
