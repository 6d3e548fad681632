// File: jobs/job.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Job is the schedulable unit: a function bound to its captured state, an
// owning group set at schedule time, and a pool slot for recycling. Records
// come from a lock-free free-list arena; when the arena is empty allocation
// falls back to the heap and the record is simply dropped after execution.

package jobs

// heapSlot marks a record that did not come from the pool arena.
const heapSlot = ^uint32(0)

// Job is a unit of work. Allocate via System.NewJob, optionally set Name
// for profiling, then hand it to System.Schedule exactly once. The record
// is owned by the system from Schedule until the job finishes.
type Job struct {
	fn    func(*Ctx)
	group *Group
	slot  uint32

	// Name keys the execution profile when profiling is enabled.
	// Empty names are not profiled.
	Name string
}

// NewJob binds fn into a schedulable record, reusing a pooled slot when one
// is free.
func (s *System) NewJob(fn func(*Ctx)) *Job {
	if fn == nil {
		panic("jobs: NewJob with nil function")
	}
	if slot, ok := s.jobPool.Pop(); ok {
		j := s.jobPool.At(slot)
		j.fn = fn
		j.slot = slot
		return j
	}
	return &Job{fn: fn, slot: heapSlot}
}

// release recycles the record. The caller must have read everything it
// needs from the job first; after the push another goroutine may own it.
func (s *System) release(j *Job) {
	slot := j.slot
	j.fn = nil
	j.group = nil
	j.Name = ""
	if slot != heapSlot {
		s.jobPool.Push(slot)
	}
}
