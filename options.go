package slotmap

import (
	"math"

	"github.com/hupe1980/slotmap/arena"
)

const (
	// DefaultCapacity is the initial value-array capacity when none is
	// requested.
	DefaultCapacity = 16
	// MaxCapacity is the hard ceiling on value-array slots. Two values
	// below the int32 maximum are reserved as table sentinels.
	MaxCapacity = math.MaxInt32 - 2
	// DefaultMaxBytes caps the value-array allocation at 2 GiB unless
	// overridden with WithMaxBytes.
	DefaultMaxBytes = 1 << 31
)

// Options configures a Map. The zero value is usable; New applies
// defaults for unset fields.
type Options struct {
	// Capacity is the requested initial value-array capacity. The table
	// capacity is derived from it under the 0.5 load factor.
	Capacity int
	// MaxCapacity caps the number of value slots (default MaxCapacity).
	MaxCapacity int
	// MaxBytes caps the value-array allocation size in bytes
	// (default DefaultMaxBytes).
	MaxBytes int
	// Hash overrides the default seeded xxhash over raw key bytes.
	Hash func(key []byte) uint64
	// Equal overrides the default byte-wise key comparison. Supply Hash
	// and Equal together for struct keys whose layout includes padding.
	Equal func(a, b []byte) bool
	// UserManagedKeys stores the caller's key bytes without copying.
	// Only valid for []byte keys; the caller must keep each key alive
	// and unchanged for as long as its entry exists.
	UserManagedKeys bool
	// KeyRelease is invoked with the stored key bytes when an entry is
	// deleted, cleared or the map is closed. Setting it implies
	// UserManagedKeys.
	KeyRelease func(key []byte)
	// ArenaReserve, when positive, backs the value array with a
	// reserve/commit arena of that many reserved bytes. The value-array
	// base address is then fixed for the map's lifetime, so pointers
	// stay valid across growth. The value type must not contain Go
	// pointers, since arena memory is invisible to the garbage
	// collector.
	ArenaReserve int
	// Logger receives debug events (growth, rehash, close).
	// Default: NoopLogger.
	Logger *Logger
}

// Option is a configuration option for Map.
type Option func(*Options)

// WithCapacity sets the requested initial value-array capacity.
func WithCapacity(n int) Option {
	return func(o *Options) { o.Capacity = n }
}

// WithMaxCapacity sets the element-capacity ceiling checked before any
// growth allocation.
func WithMaxCapacity(n int) Option {
	return func(o *Options) { o.MaxCapacity = n }
}

// WithMaxBytes sets the value-array byte-size ceiling checked before any
// growth allocation.
func WithMaxBytes(n int) Option {
	return func(o *Options) { o.MaxBytes = n }
}

// WithHash sets a custom 64-bit hash over raw key bytes.
func WithHash(fn func(key []byte) uint64) Option {
	return func(o *Options) { o.Hash = fn }
}

// WithEqual sets a custom key equality function over raw key bytes.
func WithEqual(fn func(a, b []byte) bool) Option {
	return func(o *Options) { o.Equal = fn }
}

// WithUserManagedKeys stores only references to caller-owned key bytes.
func WithUserManagedKeys() Option {
	return func(o *Options) { o.UserManagedKeys = true }
}

// WithKeyRelease registers a hook invoked when a stored key is released.
func WithKeyRelease(fn func(key []byte)) Option {
	return func(o *Options) {
		o.KeyRelease = fn
		o.UserManagedKeys = true
	}
}

// WithArena backs the value array with a reserve/commit arena of
// reserveBytes reserved address space (0 uses arena.DefaultReserve).
func WithArena(reserveBytes int) Option {
	return func(o *Options) {
		if reserveBytes <= 0 {
			reserveBytes = arena.DefaultReserve
		}
		o.ArenaReserve = reserveBytes
	}
}

// WithLogger sets the logger for debug events.
func WithLogger(l *Logger) Option {
	return func(o *Options) { o.Logger = l }
}

func defaultOptions() Options {
	return Options{
		Capacity:    DefaultCapacity,
		MaxCapacity: MaxCapacity,
		MaxBytes:    DefaultMaxBytes,
	}
}
