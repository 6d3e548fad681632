// File: jobs/parallel.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// ParallelFor: fan a counted loop out over the worker pool in batched
// range jobs.

package jobs

// ParallelFor partitions [0, count) into ceil(count/batch) ranges, creates
// one job per range invoking fn for every index in it, and schedules them
// all against g. It returns immediately; the caller must Wait(g).
// batch <= 0 is treated as 1.
func (s *System) ParallelFor(g *Group, count, batch int, fn func(i int)) {
	if fn == nil {
		panic("jobs: ParallelFor with nil function")
	}
	if batch <= 0 {
		batch = 1
	}
	for begin := 0; begin < count; begin += batch {
		end := begin + batch
		if end > count {
			end = count
		}
		lo, hi := begin, end
		s.Schedule(g, s.NewJob(func(*Ctx) {
			for i := lo; i < hi; i++ {
				fn(i)
			}
		}))
	}
}
