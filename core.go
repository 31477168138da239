package slotmap

import (
	"bytes"
	"fmt"
	"math"
	"math/bits"
	"math/rand/v2"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/cespare/xxhash/v2"

	"github.com/hupe1980/slotmap/internal/container"
	"github.com/hupe1980/slotmap/internal/conv"
)

// NotFound is the index returned by Get and Delete when no entry matches.
const NotFound = -1

// Table sentinels. Both sit above MaxCapacity so they can never collide
// with an issued value index.
const (
	slotEmpty   int32 = math.MaxInt32
	slotDeleted int32 = math.MaxInt32 - 1
)

// variableWidth marks a core whose keys are length-tagged rather than
// fixed width.
const variableWidth = -1

// slot is one table entry: the stored hash, the key payload and the
// value-array index it resolves to. The inline/external pair is the
// tagged union of the key storage classes (see keys.go).
type slot struct {
	hash    uint64
	ikey    [8]byte // inline key bytes, zero padded
	ext     []byte  // copied (engine-owned) or aliased (user-managed) key bytes
	keyLen  int32
	dataIdx int32
}

// key returns the stored key bytes regardless of storage class.
func (s *slot) key() []byte {
	if s.ext != nil {
		return s.ext
	}
	return s.ikey[:s.keyLen]
}

// core is the byte-keyed hash table engine. It owns the slot table, the
// free list of reclaimed value indices and the live-index set; the typed
// Map front end owns the value array itself.
type core struct {
	table    []slot
	freeList *container.Array[int32] // lazily allocated on first delete
	live     *roaring.Bitmap
	opts     Options
	seed     uint64
	len      int
	cap      int
	hashCap  int
	tombs    int // tombstoned slots in the table, reset by rehash
	keyWidth int // 0 until first insert pins it; variableWidth for length-tagged keys
}

func (c *core) init(opts Options, variable bool) error {
	hashCap, err := tableCapacity(opts.Capacity, opts.MaxCapacity)
	if err != nil {
		return err
	}

	c.table = newTable(hashCap)
	c.hashCap = hashCap
	c.cap = hashCap / 2
	c.seed = rand.Uint64()
	c.live = roaring.New()
	c.opts = opts
	if variable {
		c.keyWidth = variableWidth
	}
	return nil
}

// tableCapacity picks the smallest power-of-two slot-table size whose
// half (the 0.5 load factor) covers the requested value capacity.
func tableCapacity(requested, maxCap int) (int, error) {
	if requested <= 0 {
		requested = DefaultCapacity
	}
	if requested > maxCap || requested > MaxCapacity {
		return 0, fmt.Errorf("%w: requested %d slots", ErrMaxCapacity, requested)
	}
	return 1 << bits.Len(uint(2*requested-1)), nil
}

func newTable(hashCap int) []slot {
	t := make([]slot, hashCap)
	for i := range t {
		t[i].dataIdx = slotEmpty
	}
	return t
}

func (c *core) hashKey(key []byte) uint64 {
	if c.opts.Hash != nil {
		return c.opts.Hash(key)
	}
	var d xxhash.Digest
	d.ResetWithSeed(c.seed)
	_, _ = d.Write(key)
	return d.Sum64()
}

func (c *core) checkWidth(n int) error {
	if c.keyWidth == variableWidth {
		return nil
	}
	if c.keyWidth == 0 {
		c.keyWidth = n
		return nil
	}
	if c.keyWidth != n {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrKeySize, n, c.keyWidth)
	}
	return nil
}

func (c *core) keysEqual(s *slot, key []byte) bool {
	if int(s.keyLen) != len(key) {
		return false
	}
	if c.opts.Equal != nil {
		return c.opts.Equal(s.key(), key)
	}
	return bytes.Equal(s.key(), key)
}

// findSlot locates the table slot holding key, or -1. The scan stops
// only at an empty slot: a live entry may sit past an earlier tombstone
// in the same probe chain.
func (c *core) findSlot(key []byte) int {
	h := c.hashKey(key)
	mask := uint64(c.hashCap - 1)
	i := h & mask
	for {
		s := &c.table[i]
		if s.dataIdx == slotEmpty {
			return -1
		}
		if s.dataIdx != slotDeleted && s.hash == h && c.keysEqual(s, key) {
			return int(i)
		}
		i = (i + 1) & mask
	}
}

// insert upserts key and returns its value index. If the key already has
// a live entry the existing index is returned with existed true and
// nothing changes; otherwise the first tombstone on the probe chain (or
// the terminating empty slot) is claimed, and the index is popped from
// the free list before a fresh one is minted.
func (c *core) insert(key []byte) (int32, bool, error) {
	if err := c.checkWidth(len(key)); err != nil {
		return NotFound, false, err
	}
	kl, err := conv.IntToInt32(len(key))
	if err != nil {
		return NotFound, false, fmt.Errorf("slotmap: key length: %w", err)
	}

	h := c.hashKey(key)
	mask := uint64(c.hashCap - 1)
	i := h & mask
	reuse := -1
	for {
		s := &c.table[i]
		if s.dataIdx == slotEmpty {
			break
		}
		if s.dataIdx == slotDeleted {
			// Remember the first tombstone but keep scanning: a live
			// entry for this key may sit further down the chain.
			if reuse < 0 {
				reuse = int(i)
			}
		} else if s.hash == h && c.keysEqual(s, key) {
			return s.dataIdx, true, nil
		}
		i = (i + 1) & mask
	}
	if reuse >= 0 {
		i = uint64(reuse)
		c.tombs--
	}

	var idx int32
	if c.freeList != nil && c.freeList.Len() > 0 {
		idx = c.freeList.Pop()
	} else {
		idx, err = conv.IntToInt32(c.len)
		if err != nil {
			return NotFound, false, fmt.Errorf("slotmap: mint index: %w", err)
		}
	}

	s := &c.table[i]
	s.hash = h
	s.dataIdx = idx
	s.keyLen = kl
	c.storeKey(s, key)

	c.len++
	u, _ := conv.IntToUint32(int(idx))
	c.live.Add(u)
	return idx, false, nil
}

func (c *core) get(key []byte) (int32, bool) {
	ti := c.findSlot(key)
	if ti < 0 {
		return NotFound, false
	}
	return c.table[ti].dataIdx, true
}

// delete tombstones the slot holding key, releases the key payload per
// its storage class and pushes the freed value index onto the free list.
func (c *core) delete(key []byte) (int32, bool) {
	ti := c.findSlot(key)
	if ti < 0 {
		return NotFound, false
	}

	s := &c.table[ti]
	idx := s.dataIdx
	if c.freeList == nil {
		c.freeList = container.NewArray[int32](16)
	}
	c.freeList.Push(idx)
	s.dataIdx = slotDeleted
	c.tombs++
	c.releaseKey(s)
	c.len--

	u, _ := conv.IntToUint32(int(idx))
	c.live.Remove(u)
	return idx, true
}

// rehash rebuilds the table at newHashCap by re-probing every live
// entry's stored hash. Tombstones are discarded in the process, so
// growth doubles as tombstone compaction.
func (c *core) rehash(newHashCap int) {
	nt := newTable(newHashCap)
	mask := uint64(newHashCap - 1)
	for i := range c.table {
		s := &c.table[i]
		if s.dataIdx == slotEmpty || s.dataIdx == slotDeleted {
			continue
		}
		j := s.hash & mask
		for nt[j].dataIdx != slotEmpty {
			j = (j + 1) & mask
		}
		nt[j] = *s
	}
	c.table = nt
	c.hashCap = newHashCap
	c.tombs = 0
}

// clear resets every slot to empty and empties the free list while
// keeping the table allocation for reuse. Key payloads are released per
// their storage class.
func (c *core) clear() {
	for i := range c.table {
		s := &c.table[i]
		if s.dataIdx != slotEmpty && s.dataIdx != slotDeleted {
			c.releaseKey(s)
		}
		*s = slot{dataIdx: slotEmpty}
	}
	if c.freeList != nil {
		c.freeList.Clear()
	}
	c.live.Clear()
	c.len = 0
	c.tombs = 0
}

// free releases everything the core owns and leaves it unusable.
func (c *core) free() {
	for i := range c.table {
		s := &c.table[i]
		if s.dataIdx != slotEmpty && s.dataIdx != slotDeleted {
			c.releaseKey(s)
		}
	}
	c.table = nil
	c.freeList = nil
	c.live = nil
	c.len = 0
	c.cap = 0
	c.hashCap = 0
	c.tombs = 0
}

func (c *core) freeLen() int {
	if c.freeList == nil {
		return 0
	}
	return c.freeList.Len()
}
