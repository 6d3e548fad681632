// File: api/scheduler.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Scheduler contract for parallel job dispatch with group completion tracking.

package api

// Completion tracks a set of outstanding jobs; a waiter blocks until the
// count reaches zero.
type Completion interface {
	// Pending returns the current outstanding count (snapshot).
	Pending() int64
}

// Scheduler abstracts the work-stealing job system.
type Scheduler interface {
	// NumWorkers returns the fixed number of worker goroutines.
	NumWorkers() int

	// WorkerID returns the index of the calling worker goroutine,
	// or -1 when called from outside the pool.
	WorkerID() int
}

// NonWorker is the WorkerID sentinel for goroutines outside the pool.
const NonWorker = -1
