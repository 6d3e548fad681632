// File: pool/arena.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Arena is a bump allocator over a single fixed region. Each worker owns one
// as its temporary allocator: allocations are valid only for the duration of
// the currently executing job, and the worker resets the arena between jobs.
// Not safe for concurrent use; an arena belongs to exactly one worker.

package pool

import (
	"github.com/momentics/hioload-jobs/api"
)

// DefaultArenaSize is the per-worker scratch region size.
const DefaultArenaSize = 1 << 20 // 1 MiB

// Arena implements api.Arena over a preallocated byte region.
type Arena struct {
	buf    []byte
	off    int
	allocs uint64
	fails  uint64
}

var _ api.Arena = (*Arena)(nil)

// NewArena allocates an arena of size bytes.
func NewArena(size int) *Arena {
	if size <= 0 {
		size = DefaultArenaSize
	}
	return &Arena{buf: make([]byte, size)}
}

// Alloc returns a zeroed n-byte slice from the region. When the region
// cannot satisfy the request the error is api.ErrResourceExhausted; the
// caller's own error policy decides what happens next.
func (a *Arena) Alloc(n int) ([]byte, error) {
	if n < 0 {
		return nil, api.ErrInvalidArgument
	}
	if a.off+n > len(a.buf) {
		a.fails++
		return nil, api.ErrResourceExhausted
	}
	b := a.buf[a.off : a.off+n : a.off+n]
	a.off += n
	a.allocs++
	for i := range b {
		b[i] = 0
	}
	return b, nil
}

// Reset discards all allocations. Previously returned slices must not be
// used afterwards.
func (a *Arena) Reset() {
	a.off = 0
}

// Remaining reports the bytes left in the region.
func (a *Arena) Remaining() int {
	return len(a.buf) - a.off
}

// Stats returns lifetime allocation counters.
func (a *Arena) Stats() (allocs, fails uint64) {
	return a.allocs, a.fails
}
