package slotmap

import (
	"fmt"
	"iter"
	"unsafe"

	"github.com/hupe1980/slotmap/internal/conv"
)

// Map maps keys to stable integer indices into a contiguous value array.
// An index issued by Set identifies its value slot until the entry is
// deleted, across any number of growths; deleted indices are recycled in
// LIFO order. Map is not safe for concurrent use.
type Map[K any, V any] struct {
	c      core
	codec  keyCodec[K]
	vb     valueBacking[V]
	logger *Logger
	closed bool
}

// New creates an empty Map. String and []byte keys are length-tagged;
// any other key type is hashed over its in-memory bytes and must have a
// stable representation (no maps, slices, funcs, chans or interfaces)
// unless WithHash and WithEqual are supplied.
func New[K any, V any](opts ...Option) (*Map[K, V], error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.Logger == nil {
		o.Logger = NoopLogger()
	}

	codec, err := newKeyCodec[K](&o)
	if err != nil {
		return nil, err
	}

	m := &Map[K, V]{codec: codec, logger: o.Logger}
	if err := m.c.init(o, codec.variable); err != nil {
		return nil, err
	}

	if o.ArenaReserve > 0 {
		m.vb, err = newArenaValues[V](o.ArenaReserve)
		if err != nil {
			return nil, fmt.Errorf("slotmap: reserve arena: %w", err)
		}
	} else {
		m.vb = &heapValues[V]{}
	}
	if err := m.guard(m.c.cap); err != nil {
		_ = m.vb.close()
		return nil, err
	}
	if err := m.vb.grow(m.c.cap); err != nil {
		_ = m.vb.close()
		return nil, fmt.Errorf("slotmap: allocate value array: %w", err)
	}

	return m, nil
}

// Set upserts key and returns its value index. For a new key the index
// is popped from the free list, or minted as the next unissued index;
// for an existing key the value is overwritten in place and the index
// unchanged.
func (m *Map[K, V]) Set(key K, value V) (int, error) {
	if m.closed {
		return NotFound, ErrClosed
	}

	if m.c.len+1 > m.c.cap {
		if err := m.grow(); err != nil {
			return NotFound, err
		}
	} else if m.c.len+m.c.tombs+1 > m.c.cap {
		// Tombstones alone can starve the table of empty slots under
		// sustained delete/insert churn; compact in place.
		m.c.rehash(m.c.hashCap)
		m.logger.Debug("compacted tombstones", "hash_capacity", m.c.hashCap, "len", m.c.len)
	}

	idx, _, err := m.c.insert(m.codec.bytes(&key))
	if err != nil {
		return NotFound, err
	}
	m.vb.slice()[idx] = value
	return int(idx), nil
}

// Get returns the value index for key, or NotFound.
func (m *Map[K, V]) Get(key K) (int, bool) {
	if m.closed {
		return NotFound, false
	}
	idx, ok := m.c.get(m.codec.bytes(&key))
	return int(idx), ok
}

// GetPtr returns a pointer to key's value, or nil. Without an arena
// backing the pointer is invalidated by the next growth.
func (m *Map[K, V]) GetPtr(key K) *V {
	idx, ok := m.Get(key)
	if !ok {
		return nil
	}
	return &m.vb.slice()[idx]
}

// Delete removes key and returns the index it occupied, or NotFound.
// The freed index is pushed onto the free list and handed back by the
// next index-minting Set.
func (m *Map[K, V]) Delete(key K) (int, bool) {
	if m.closed {
		return NotFound, false
	}
	idx, ok := m.c.delete(m.codec.bytes(&key))
	return int(idx), ok
}

// Clear removes all entries and releases stored key payloads while
// keeping the table and value allocations for reuse. Previously issued
// indices are void: minting restarts at zero.
func (m *Map[K, V]) Clear() {
	if m.closed {
		return
	}
	m.c.clear()
}

// Close releases everything the map owns, including any arena backing.
// Further Set calls return ErrClosed; lookups report absence.
func (m *Map[K, V]) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true
	m.c.free()
	m.logger.Debug("closed map")
	return m.vb.close()
}

// Len returns the number of live entries.
func (m *Map[K, V]) Len() int { return m.c.len }

// Cap returns the current value-array capacity.
func (m *Map[K, V]) Cap() int { return m.c.cap }

// Range returns the number of issued value indices: live entries plus
// freed indices awaiting reuse. Every index ever returned by Set and not
// voided by Clear is below Range.
func (m *Map[K, V]) Range() int { return m.c.len + m.c.freeLen() }

// At returns a pointer to the value at index i, or nil when i is outside
// the issued range. The slot at a freed index holds stale data until the
// index is reissued; use Live to tell the two apart.
func (m *Map[K, V]) At(i int) *V {
	if m.closed || i < 0 || i >= m.Range() {
		return nil
	}
	return &m.vb.slice()[i]
}

// Values returns the value array truncated to the issued range. Slots at
// freed indices hold stale data. The slice aliases the map's storage and
// is invalidated by growth.
func (m *Map[K, V]) Values() []V {
	if m.closed {
		return nil
	}
	return m.vb.slice()[:m.Range()]
}

// Live reports whether index i currently belongs to a live entry.
func (m *Map[K, V]) Live(i int) bool {
	if m.closed || i < 0 {
		return false
	}
	u, err := conv.IntToUint32(i)
	if err != nil {
		return false
	}
	return m.c.live.Contains(u)
}

// All iterates over all live entries as (index, value) pairs in
// ascending index order. The map must not be mutated during iteration.
func (m *Map[K, V]) All() iter.Seq2[int, V] {
	return func(yield func(int, V) bool) {
		if m.closed {
			return
		}
		vals := m.vb.slice()
		it := m.c.live.Iterator()
		for it.HasNext() {
			i, err := conv.Uint32ToInt(it.Next())
			if err != nil || !yield(i, vals[i]) {
				return
			}
		}
	}
}

// grow doubles the table, extends the value array and rehashes every
// live entry. Issued indices are untouched.
func (m *Map[K, V]) grow() error {
	if m.c.cap >= m.c.opts.MaxCapacity {
		return fmt.Errorf("%w: at %d slots", ErrMaxCapacity, m.c.cap)
	}
	newHashCap := m.c.hashCap * 2
	newCap := newHashCap / 2
	if err := m.guard(newCap); err != nil {
		return err
	}
	if err := m.vb.grow(newCap); err != nil {
		return fmt.Errorf("slotmap: grow value array: %w", err)
	}
	m.c.rehash(newHashCap)
	m.c.cap = newCap
	m.logger.Debug("grew table", "capacity", newCap, "len", m.c.len)
	return nil
}

// guard checks the element and byte ceilings before an allocation of
// newCap value slots.
func (m *Map[K, V]) guard(newCap int) error {
	if newCap > MaxCapacity {
		return fmt.Errorf("%w: %d slots", ErrMaxCapacity, newCap)
	}
	elem := int(unsafe.Sizeof(*new(V)))
	if elem > 0 && newCap > m.c.opts.MaxBytes/elem {
		return fmt.Errorf("%w: %d bytes", ErrMaxSize, newCap*elem)
	}
	return nil
}
