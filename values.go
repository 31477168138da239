package slotmap

import (
	"unsafe"

	"github.com/hupe1980/slotmap/arena"
)

// valueBacking abstracts how the value array grows: a copy-preserving
// heap reallocation, or an arena commit behind a fixed base address so
// pointers into the array survive growth.
type valueBacking[V any] interface {
	grow(n int) error
	slice() []V
	close() error
}

type heapValues[V any] struct {
	vals []V
}

func (h *heapValues[V]) grow(n int) error {
	if n <= len(h.vals) {
		return nil
	}
	next := make([]V, n)
	copy(next, h.vals)
	h.vals = next
	return nil
}

func (h *heapValues[V]) slice() []V { return h.vals }

func (h *heapValues[V]) close() error {
	h.vals = nil
	return nil
}

type arenaValues[V any] struct {
	a *arena.Arena
	n int
}

func newArenaValues[V any](reserve int) (*arenaValues[V], error) {
	a, err := arena.Reserve(reserve)
	if err != nil {
		return nil, err
	}
	return &arenaValues[V]{a: a}, nil
}

func (av *arenaValues[V]) grow(n int) error {
	elem := int(unsafe.Sizeof(*new(V)))
	if elem > 0 {
		if err := av.a.Commit(n * elem); err != nil {
			return err
		}
	}
	av.n = n
	return nil
}

func (av *arenaValues[V]) slice() []V {
	if av.n == 0 || unsafe.Sizeof(*new(V)) == 0 {
		return make([]V, av.n)
	}
	b := av.a.Bytes()
	return unsafe.Slice((*V)(unsafe.Pointer(&b[0])), av.n)
}

func (av *arenaValues[V]) close() error {
	av.n = 0
	return av.a.Release()
}
