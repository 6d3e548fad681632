// File: core/concurrency/atomic_stack.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// FreeStack is an intrusive lock-free LIFO over a fixed node arena, used as
// the free-list backing job record allocation. The head packs a 32-bit slot
// index with a 32-bit version tag in a single atomic word; the version is
// bumped on every successful CAS so a slot that is popped, reused and pushed
// back cannot satisfy a stale compare-and-swap (the ABA hazard).
//
// This is strictly a free-list: LIFO discipline, no ordering across distinct
// nodes, no growth. A slot reachable from the stack must not be reachable
// from anywhere else.

package concurrency

import (
	"fmt"
	"sync/atomic"
)

// nilSlot terminates the intrusive chain.
const nilSlot = ^uint32(0)

type freeNode[T any] struct {
	next atomic.Uint32
	data T
}

// FreeStack holds up to cap(nodes) slots of T. The zero value is not usable;
// construct with NewFreeStack.
type FreeStack[T any] struct {
	head  atomic.Uint64 // version<<32 | slot index
	nodes []freeNode[T]
}

// NewFreeStack allocates an arena of capacity slots, all initially free
// (pushed). Capacity must be positive and below the nilSlot sentinel.
func NewFreeStack[T any](capacity int) *FreeStack[T] {
	if capacity <= 0 || uint64(capacity) >= uint64(nilSlot) {
		panic(fmt.Sprintf("concurrency: free-stack capacity out of range: %d", capacity))
	}
	s := &FreeStack[T]{nodes: make([]freeNode[T], capacity)}
	for i := 0; i < capacity-1; i++ {
		s.nodes[i].next.Store(uint32(i + 1))
	}
	s.nodes[capacity-1].next.Store(nilSlot)
	s.head.Store(packHead(0, 0))
	return s
}

func packHead(version, slot uint32) uint64 {
	return uint64(version)<<32 | uint64(slot)
}

func headSlot(h uint64) uint32    { return uint32(h) }
func headVersion(h uint64) uint32 { return uint32(h >> 32) }

// Push returns slot to the stack, making it the new head. The caller must
// own slot (obtained from Pop) and must not touch its data afterwards.
func (s *FreeStack[T]) Push(slot uint32) {
	for {
		h := s.head.Load()
		s.nodes[slot].next.Store(headSlot(h))
		if s.head.CompareAndSwap(h, packHead(headVersion(h)+1, slot)) {
			return
		}
	}
}

// Pop removes and returns the head slot. ok is false when the stack is
// empty. On success the caller becomes the sole owner of the slot.
func (s *FreeStack[T]) Pop() (slot uint32, ok bool) {
	for {
		h := s.head.Load()
		slot = headSlot(h)
		if slot == nilSlot {
			return 0, false
		}
		// next may be concurrently rewritten if another goroutine pops and
		// re-pushes this slot; the version bump makes the CAS below fail in
		// that case, so the stale read is never acted on.
		next := s.nodes[slot].next.Load()
		if s.head.CompareAndSwap(h, packHead(headVersion(h)+1, next)) {
			s.nodes[slot].next.Store(nilSlot)
			return slot, true
		}
	}
}

// At returns the payload storage for slot. Valid only while the caller owns
// the slot.
func (s *FreeStack[T]) At(slot uint32) *T {
	return &s.nodes[slot].data
}

// Cap returns the arena capacity.
func (s *FreeStack[T]) Cap() int {
	return len(s.nodes)
}
