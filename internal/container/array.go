// Package container implements container data structures.
package container

// Array is a growable sequence with amortized-doubling growth, used as a
// LIFO stack. Pop and Peek on an empty array panic; callers check Len
// first.
type Array[T any] struct {
	items []T
}

// NewArray creates an Array with the given initial capacity.
func NewArray[T any](capacity int) *Array[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &Array[T]{items: make([]T, 0, capacity)}
}

// Push appends v to the end of the array.
func (a *Array[T]) Push(v T) {
	a.items = append(a.items, v)
}

// Pop removes and returns the last item.
func (a *Array[T]) Pop() T {
	v := a.items[len(a.items)-1]
	a.items = a.items[:len(a.items)-1]
	return v
}

// Peek returns the last item without removing it.
func (a *Array[T]) Peek() T {
	return a.items[len(a.items)-1]
}

// Clear resets the length to zero, keeping the backing storage.
func (a *Array[T]) Clear() {
	a.items = a.items[:0]
}

// Len returns the number of items.
func (a *Array[T]) Len() int {
	return len(a.items)
}

// Cap returns the current capacity.
func (a *Array[T]) Cap() int {
	return cap(a.items)
}
