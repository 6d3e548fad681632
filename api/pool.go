// File: api/pool.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Abstract pooling APIs: scratch arenas and object reuse for job payloads.

package api

// Arena provides bump allocation from a fixed scratch region.
// Allocations are valid only until the next Reset.
type Arena interface {
	// Alloc returns a zeroed slice of n bytes, or ErrResourceExhausted
	// when the region cannot satisfy the request.
	Alloc(n int) ([]byte, error)

	// Reset discards every allocation at once.
	Reset()

	// Remaining reports the bytes left in the region.
	Remaining() int
}

// ObjectPool provides generic pooling of transiently allocated objects.
type ObjectPool[T any] interface {
	// Get returns an available instance from the pool.
	Get() T

	// Put returns an instance for reuse.
	Put(obj T)
}
