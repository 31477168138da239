package slotmap

import (
	"bytes"
	"fmt"
	"reflect"
	"unsafe"
)

// storeKey records the key payload for a freshly claimed slot according
// to its storage class: user-managed bytes are aliased as handed in,
// keys of at most eight bytes are inlined into the slot, anything larger
// is copied to an engine-owned buffer.
func (c *core) storeKey(s *slot, key []byte) {
	s.ikey = [8]byte{}
	s.ext = nil
	switch {
	case c.opts.UserManagedKeys:
		s.ext = key
	case len(key) <= len(s.ikey):
		copy(s.ikey[:], key)
	default:
		s.ext = bytes.Clone(key)
	}
}

// releaseKey drops the stored key payload, invoking the caller's release
// hook for user-managed keys.
func (c *core) releaseKey(s *slot) {
	if c.opts.UserManagedKeys && c.opts.KeyRelease != nil && s.ext != nil {
		c.opts.KeyRelease(s.ext)
	}
	s.ext = nil
	s.ikey = [8]byte{}
	s.keyLen = 0
}

// keyCodec turns typed keys into the raw byte view the engine hashes and
// compares. String and []byte keys are length-tagged; every other kind
// is viewed in place at its fixed width.
type keyCodec[K any] struct {
	variable bool
	isString bool
}

func newKeyCodec[K any](opts *Options) (keyCodec[K], error) {
	var kc keyCodec[K]
	var zero K
	switch any(zero).(type) {
	case string:
		kc.variable = true
		kc.isString = true
	case []byte:
		kc.variable = true
	}

	if opts.UserManagedKeys && (!kc.variable || kc.isString) {
		return kc, fmt.Errorf("%w: key type %s", ErrUnmanagedKeys, reflect.TypeFor[K]())
	}
	if !kc.variable && (opts.Hash == nil || opts.Equal == nil) {
		if err := checkRawKeyKind(reflect.TypeFor[K]()); err != nil {
			return kc, err
		}
	}
	return kc, nil
}

// checkRawKeyKind rejects key types whose in-memory representation is
// not a stable, comparable byte pattern. Callers supplying their own
// hash and equality funcs bypass the check.
func checkRawKeyKind(t reflect.Type) error {
	switch t.Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Uintptr, reflect.Float32, reflect.Float64,
		reflect.Pointer, reflect.UnsafePointer:
		return nil
	case reflect.Array:
		return checkRawKeyKind(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if err := checkRawKeyKind(t.Field(i).Type); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: %s (supply WithHash and WithEqual)", ErrKeyType, t)
	}
}

// bytes returns the raw byte view of the key at k. The view aliases k's
// memory and is only valid for the duration of the engine call.
func (kc keyCodec[K]) bytes(k *K) []byte {
	if kc.isString {
		s := *any(k).(*string)
		if len(s) == 0 {
			return nil
		}
		return unsafe.Slice(unsafe.StringData(s), len(s))
	}
	if kc.variable {
		return *any(k).(*[]byte)
	}
	size := unsafe.Sizeof(*k)
	if size == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(k)), size)
}
