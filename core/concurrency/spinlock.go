// File: core/concurrency/spinlock.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// SpinLock and RecursiveSpinLock guard the non-lock-free shared structures
// that interact with the scheduler (submission queues, profile registries).
// Critical sections must stay short: neither lock ever blocks in the kernel,
// they spin with escalating yields.

package concurrency

import (
	"runtime"
	"sync/atomic"
)

// spinYieldThreshold is the number of failed acquisition attempts before the
// spinner starts yielding its P.
const spinYieldThreshold = 16

// SpinLock is a non-reentrant test-and-set lock. The zero value is unlocked.
type SpinLock struct {
	state atomic.Int32
}

// Lock acquires the lock, spinning until it is available.
func (l *SpinLock) Lock() {
	spins := 0
	for !l.state.CompareAndSwap(0, 1) {
		spins++
		if spins >= spinYieldThreshold {
			runtime.Gosched()
			spins = 0
		}
	}
}

// TryLock acquires the lock without spinning; reports success.
func (l *SpinLock) TryLock() bool {
	return l.state.CompareAndSwap(0, 1)
}

// Unlock releases the lock. Unlocking an unheld SpinLock is a caller bug.
func (l *SpinLock) Unlock() {
	l.state.Store(0)
}

// RecursiveSpinLock is a SpinLock that may be re-acquired by the goroutine
// already holding it. Ownership is tracked by goroutine id.
type RecursiveSpinLock struct {
	owner atomic.Int64
	depth int32
}

// Lock acquires the lock for the calling goroutine, spinning if another
// goroutine holds it. Nested acquisitions by the owner only bump the depth.
func (l *RecursiveSpinLock) Lock() {
	gid := GoroutineID()
	if l.owner.Load() == gid {
		l.depth++
		return
	}
	spins := 0
	for !l.owner.CompareAndSwap(0, gid) {
		spins++
		if spins >= spinYieldThreshold {
			runtime.Gosched()
			spins = 0
		}
	}
	l.depth = 1
}

// Unlock releases one level of acquisition; the lock is freed when the
// outermost Unlock runs. Unlocking from a non-owner panics.
func (l *RecursiveSpinLock) Unlock() {
	gid := GoroutineID()
	if l.owner.Load() != gid {
		panic("concurrency: recursive spinlock unlocked by non-owner")
	}
	l.depth--
	if l.depth == 0 {
		l.owner.Store(0)
	}
}
