// File: core/concurrency/ws_deque.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// WSDeque is a fixed-capacity Chase-Lev work-stealing deque. The owning
// worker pushes and pops at the bottom (LIFO, uncontended in steady state);
// thieves claim from the top (FIFO, contended). top and bottom increase
// monotonically; the live window is [top, bottom) masked into the ring.
//
// Memory ordering contract per operation (Go's sync/atomic is sequentially
// consistent, which satisfies every minimum below by strengthening):
//   Push:  store item, then release-publish bottom.
//   Pop:   decrement bottom, full fence, load top; CAS on top only for the
//          single remaining element.
//   Steal: acquire-load top, fence, acquire-load bottom, speculative read,
//          CAS top to claim.

package concurrency

import (
	"fmt"
	"sync/atomic"
)

const cacheLinePad = 64

// WSDeque is a bounded work-stealing deque. The capacity is fixed for the
// deque's lifetime: overflow is a caller contract violation, not a
// recoverable condition.
type WSDeque[T any] struct {
	_      [cacheLinePad]byte
	top    atomic.Int64
	_      [cacheLinePad - 8]byte
	bottom atomic.Int64
	_      [cacheLinePad - 8]byte

	mask int64
	ring []atomic.Pointer[T]
}

// NewWSDeque allocates a deque with the given capacity, which must be a
// power of two and at least 2. Invalid capacities panic: sizing the queue
// is an init-time decision, never a runtime one.
func NewWSDeque[T any](capacity int) *WSDeque[T] {
	if capacity < 2 || capacity&(capacity-1) != 0 {
		panic(fmt.Sprintf("concurrency: ws-deque capacity must be a power of two >= 2, got %d", capacity))
	}
	return &WSDeque[T]{
		mask: int64(capacity - 1),
		ring: make([]atomic.Pointer[T], capacity),
	}
}

// Push appends item at the bottom. Owner only. The caller must guarantee
// the deque has room; pushing past capacity panics.
func (d *WSDeque[T]) Push(item *T) {
	bottom := d.bottom.Load()
	top := d.top.Load()
	if bottom-top > d.mask {
		panic("concurrency: ws-deque overflow")
	}
	d.ring[bottom&d.mask].Store(item)
	// The atomic store of bottom publishes the slot write above; a thief
	// that acquire-loads the new bottom observes the item.
	d.bottom.Store(bottom + 1)
}

// Pop removes and returns the most recently pushed item. Owner only.
// Returns nil when the deque is empty or when a thief won the race for the
// last remaining element.
func (d *WSDeque[T]) Pop() *T {
	bottom := d.bottom.Load() - 1
	// Tentatively claim the last slot before inspecting top. The seq-cst
	// store doubles as the full fence between the claim and the top read.
	d.bottom.Store(bottom)
	top := d.top.Load()

	if top > bottom {
		// Empty. Normalize to bottom == top.
		d.bottom.Store(top)
		return nil
	}

	item := d.ring[bottom&d.mask].Load()
	if top != bottom {
		// More than one element left: no thief can reach this slot.
		return item
	}

	// Exactly one element: race a concurrent Steal for it.
	if !d.top.CompareAndSwap(top, top+1) {
		item = nil // thief won
	}
	d.bottom.Store(top + 1)
	return item
}

// Steal removes and returns the oldest item. Any non-owner goroutine.
// Returns nil when empty or when the CAS lost against the owner's Pop or
// another thief; the caller retries against a different victim.
func (d *WSDeque[T]) Steal() *T {
	top := d.top.Load()
	bottom := d.bottom.Load()
	if top >= bottom {
		return nil
	}
	// Speculative read: the slot cannot be overwritten until top advances,
	// so a successful CAS below validates it.
	item := d.ring[top&d.mask].Load()
	if !d.top.CompareAndSwap(top, top+1) {
		return nil
	}
	return item
}

// Len reports a snapshot of the number of queued items.
func (d *WSDeque[T]) Len() int {
	bottom := d.bottom.Load()
	top := d.top.Load()
	if bottom < top {
		return 0
	}
	return int(bottom - top)
}

// Cap returns the fixed capacity.
func (d *WSDeque[T]) Cap() int {
	return len(d.ring)
}
