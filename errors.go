package slotmap

import "errors"

var (
	// ErrMaxCapacity is returned when growth would exceed the configured
	// element capacity ceiling.
	ErrMaxCapacity = errors.New("slotmap: max capacity exceeded")
	// ErrMaxSize is returned when growth would exceed the configured
	// value-array byte-size ceiling.
	ErrMaxSize = errors.New("slotmap: max value-array size exceeded")
	// ErrKeySize is returned when a key's byte width does not match the
	// width established by the first insert.
	ErrKeySize = errors.New("slotmap: key width does not match established key width")
	// ErrClosed is returned when operating on a closed map.
	ErrClosed = errors.New("slotmap: map is closed")
	// ErrKeyType is returned when the key type cannot be viewed as raw
	// bytes and no custom hash/equal pair was supplied.
	ErrKeyType = errors.New("slotmap: unsupported key type")
	// ErrUnmanagedKeys is returned when user-managed keys are requested
	// for a key type whose memory the caller cannot own.
	ErrUnmanagedKeys = errors.New("slotmap: user-managed keys require []byte keys")
)
