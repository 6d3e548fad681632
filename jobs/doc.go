// File: jobs/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package jobs is the work-stealing job system. A fixed pool of worker
// goroutines (one OS thread each) owns one work-stealing deque apiece;
// producers schedule jobs against completion groups, idle workers steal from
// random peers, and waiters either help drain queues (workers) or spin with
// backoff (external goroutines).
//
// Lifecycle: New spawns the pool, Shutdown joins it. Jobs run to completion
// exactly once on whichever worker claims them; there is no cancellation,
// only group waits. Scheduling after Shutdown, overflowing a worker deque
// and waiting on a group from inside one of its own jobs are caller
// contract violations.
package jobs
