package ecstore

import "fmt"

// Cache is a bounded lookup table keyed by a packed cache key. Register
// appends to the bucket for key rather than overwriting it: both
// TransitionKey and QueryKey can collide by construction (bitmask.go), so
// a bucket may hold more than one entry and callers must disambiguate
// structurally among them.
type Cache[K comparable, T any] interface {
	Lookup(key K) ([]T, bool)
	Register(key K, item T) error
	Len() int
	Clear()
}

var _ Cache[TransitionKey, *TransitionInfo] = &SimpleCache[TransitionKey, *TransitionInfo]{}

// SimpleCache is a bounded map-of-buckets cache, generalizing the
// teacher's string-keyed SimpleCache to arbitrary comparable keys and to
// collision buckets instead of a single slot per key.
type SimpleCache[K comparable, T any] struct {
	buckets     map[K][]T
	maxCapacity int
}

// NewSimpleCache returns an empty cache that rejects new keys once it
// holds maxCapacity distinct keys. Existing keys may still grow their
// bucket past that point.
func NewSimpleCache[K comparable, T any](maxCapacity int) *SimpleCache[K, T] {
	return &SimpleCache[K, T]{
		buckets:     make(map[K][]T),
		maxCapacity: maxCapacity,
	}
}

// Lookup returns the collision bucket for key.
func (c *SimpleCache[K, T]) Lookup(key K) ([]T, bool) {
	bucket, ok := c.buckets[key]
	return bucket, ok
}

// Register appends item to key's bucket, failing if key is new and the
// cache is already at maxCapacity distinct keys.
func (c *SimpleCache[K, T]) Register(key K, item T) error {
	if _, exists := c.buckets[key]; !exists && len(c.buckets) >= c.maxCapacity {
		return fmt.Errorf("cache at maximum capacity (%d)", c.maxCapacity)
	}
	c.buckets[key] = append(c.buckets[key], item)
	return nil
}

// Len returns the number of distinct keys currently registered.
func (c *SimpleCache[K, T]) Len() int {
	return len(c.buckets)
}

// Clear discards every bucket.
func (c *SimpleCache[K, T]) Clear() {
	c.buckets = make(map[K][]T)
}
