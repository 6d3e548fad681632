// File: jobs/group.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Group is the completion barrier: an atomic outstanding-count incremented
// before a job is published and decremented after it finishes. There is no
// generation counter; reusing a Group for a second wave of jobs is safe
// only after a Wait on the first wave has returned.

package jobs

import (
	"sync/atomic"

	"github.com/momentics/hioload-jobs/api"
)

// paddedInt64 keeps the hot counter on its own cache line; groups are often
// stack-adjacent to the data their jobs write.
type paddedInt64 struct {
	atomic.Int64
	_ [56]byte
}

// Group tracks outstanding jobs. The zero value is ready to use.
type Group struct {
	pending paddedInt64
}

var _ api.Completion = (*Group)(nil)

// Pending returns a snapshot of the outstanding count.
func (g *Group) Pending() int64 {
	return g.pending.Load()
}

// add registers n more outstanding jobs. Called by Schedule before the job
// becomes visible to any queue: increment-then-publish, never the reverse,
// so a waiter can never observe a transient zero between schedule calls.
func (g *Group) add(n int64) {
	g.pending.Add(n)
}

// done signals one completed job. The seq-cst decrement pairs with the
// waiter's load: a waiter that observes zero also observes every write the
// jobs performed.
func (g *Group) done() {
	if g.pending.Add(-1) < 0 {
		panic("jobs: group completion count underflow")
	}
}
