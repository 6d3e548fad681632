// File: jobs/system.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// System owns the worker pool, the per-worker deques, the shared job record
// arena and the spinlock-guarded global submission queue used by goroutines
// outside the pool. Workers are spawned once at New and live until
// Shutdown; the pool is fixed-size for the system's lifetime.

package jobs

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/eapache/queue"

	"github.com/momentics/hioload-jobs/api"
	"github.com/momentics/hioload-jobs/control"
	"github.com/momentics/hioload-jobs/core/concurrency"
)

// System is the work-stealing job scheduler.
type System struct {
	cfg     Config
	workers []*worker
	jobPool *concurrency.FreeStack[Job]

	// Global FIFO for submissions from goroutines that own no deque.
	// Guarded by a spinlock: submissions are rare relative to local pushes
	// and the critical section is a pointer append/remove.
	globalLock    concurrency.SpinLock
	global        *queue.Queue
	globalSubmits atomic.Uint64

	// Goroutine id -> worker index; written once before workers start,
	// read-only afterwards.
	workerIDs map[int64]int

	profiles *control.ProfileRegistry

	stop   chan struct{}
	wg     sync.WaitGroup
	closed atomic.Bool
}

var _ api.Scheduler = (*System)(nil)

// New constructs the system and spawns cfg.Workers worker goroutines, each
// locked to an OS thread with its own deque and scratch arena. New returns
// only after every worker is registered and parked at the start line.
func New(cfg *Config) (*System, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	resolved := *cfg
	if resolved.Workers <= 0 {
		resolved.Workers = runtime.NumCPU()
	}

	s := &System{
		cfg:       resolved,
		workers:   make([]*worker, resolved.Workers),
		jobPool:   concurrency.NewFreeStack[Job](resolved.JobPoolCapacity),
		global:    queue.New(),
		workerIDs: make(map[int64]int, resolved.Workers),
		stop:      make(chan struct{}),
	}
	if resolved.EnableProfiling {
		s.profiles = control.NewProfileRegistry()
	}

	start := make(chan struct{})
	ready := make(chan registration, resolved.Workers)
	for i := 0; i < resolved.Workers; i++ {
		w := newWorker(i, s)
		s.workers[i] = w
		s.wg.Add(1)
		go w.run(start, ready)
	}
	for i := 0; i < resolved.Workers; i++ {
		reg := <-ready
		s.workerIDs[reg.goid] = reg.id
	}
	close(start)
	return s, nil
}

// Schedule attaches job to group (may be nil) and publishes it. From a
// worker goroutine the job lands on that worker's own deque; from any other
// goroutine it goes through the global submission queue. The group counter
// is incremented before the job becomes visible to stealers.
func (s *System) Schedule(g *Group, j *Job) {
	if s.closed.Load() {
		panic("jobs: Schedule after Shutdown")
	}
	if j == nil || j.fn == nil {
		panic("jobs: Schedule of nil or unbound job")
	}
	if g != nil {
		j.group = g
		g.add(1)
	}
	if wid := s.WorkerID(); wid != api.NonWorker {
		s.workers[wid].deque.Push(j)
		return
	}
	s.globalLock.Lock()
	s.global.Add(j)
	s.globalLock.Unlock()
	s.globalSubmits.Add(1)
}

// Wait blocks until every job scheduled against g has finished. Worker
// goroutines help drain queues while waiting; external goroutines spin with
// escalating backoff. Waiting on a group from inside one of that group's
// own jobs deadlocks and is a caller error.
func (s *System) Wait(g *Group) {
	if g == nil {
		return
	}
	if wid := s.WorkerID(); wid != api.NonWorker {
		w := s.workers[wid]
		for g.pending.Load() > 0 {
			if !w.tryRunOne() {
				runtime.Gosched()
			}
		}
		return
	}
	spins := 0
	for g.pending.Load() > 0 {
		spins++
		if spins%256 == 0 {
			time.Sleep(50 * time.Microsecond)
		} else {
			runtime.Gosched()
		}
	}
}

// Shutdown signals termination and joins all workers. Groups must be waited
// on first: jobs still queued at shutdown are a caller error and are not
// drained. Subsequent Shutdowns are no-ops.
func (s *System) Shutdown() {
	if s.closed.CompareAndSwap(false, true) {
		close(s.stop)
		s.wg.Wait()
	}
}

// NumWorkers returns the fixed worker count.
func (s *System) NumWorkers() int {
	return len(s.workers)
}

// WorkerID returns the index of the calling worker goroutine, or
// api.NonWorker (-1) from outside the pool. Inside a job, prefer the
// explicit Ctx passed to the job function.
func (s *System) WorkerID() int {
	if id, ok := s.workerIDs[concurrency.GoroutineID()]; ok {
		return id
	}
	return api.NonWorker
}

// Profiles returns the named-job profile registry, or nil when profiling is
// disabled.
func (s *System) Profiles() *control.ProfileRegistry {
	return s.profiles
}

// Stats returns scheduler counters in the aggregate.
func (s *System) Stats() map[string]int64 {
	var executed, stolen, misses, panics uint64
	for _, w := range s.workers {
		executed += w.executed.Load()
		stolen += w.stolen.Load()
		misses += w.stealMisses.Load()
		panics += w.panics.Load()
	}
	return map[string]int64{
		"executed":       int64(executed),
		"stolen":         int64(stolen),
		"steal_misses":   int64(misses),
		"panics":         int64(panics),
		"global_submits": int64(s.globalSubmits.Load()),
		"workers":        int64(len(s.workers)),
	}
}

// PublishMetrics pushes the current Stats snapshot into a metrics registry.
func (s *System) PublishMetrics(mr *control.MetricsRegistry) {
	mr.SetAll(s.Stats())
}

// dequeueGlobal pops one externally submitted job, if any. TryLock keeps
// idle workers from convoying on the submission lock.
func (s *System) dequeueGlobal() *Job {
	if !s.globalLock.TryLock() {
		return nil
	}
	defer s.globalLock.Unlock()
	if s.global.Length() == 0 {
		return nil
	}
	return s.global.Remove().(*Job)
}
