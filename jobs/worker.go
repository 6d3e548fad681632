// File: jobs/worker.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Worker loop: local pop first (LIFO, cache-warm), then the global
// submission queue, then a steal from a random peer's deque top. Repeated
// misses back off from busy spinning to short sleeps. A panic inside a job
// is recovered and counted so the worker survives; an unhandled fault would
// otherwise take the worker down permanently.

package jobs

import (
	"log"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/momentics/hioload-jobs/affinity"
	"github.com/momentics/hioload-jobs/core/concurrency"
	"github.com/momentics/hioload-jobs/pool"
)

// backoff thresholds for the idle loop.
const (
	idleSpinLimit = 64
	idleSleep     = 100 * time.Microsecond
)

type registration struct {
	goid int64
	id   int
}

// Ctx is the per-worker context passed to every job function. It replaces
// implicit thread-local lookups: everything a job may need from its worker
// travels through here.
type Ctx struct {
	id   int
	sys  *System
	temp *pool.Arena
}

// WorkerID returns the executing worker's index.
func (c *Ctx) WorkerID() int { return c.id }

// System returns the owning job system, for scheduling follow-up jobs.
func (c *Ctx) System() *System { return c.sys }

// Temp returns the worker's scratch arena. Allocations are valid only for
// the duration of the currently executing job; the arena is reset before
// the next job runs.
func (c *Ctx) Temp() *pool.Arena { return c.temp }

type worker struct {
	id    int
	sys   *System
	deque *concurrency.WSDeque[Job]
	ctx   *Ctx
	rng   uint64

	executed    atomic.Uint64
	stolen      atomic.Uint64
	stealMisses atomic.Uint64
	panics      atomic.Uint64
}

func newWorker(id int, s *System) *worker {
	w := &worker{
		id:    id,
		sys:   s,
		deque: concurrency.NewWSDeque[Job](s.cfg.QueueCapacity),
		rng:   uint64(id)*0x9e3779b97f4a7c15 + 0x2545f4914f6cdd1d,
	}
	w.ctx = &Ctx{id: id, sys: s, temp: pool.NewArena(s.cfg.ArenaSize)}
	return w
}

// run is the worker main loop. It registers its goroutine id, waits for the
// start line, then claims jobs until shutdown.
func (w *worker) run(start <-chan struct{}, ready chan<- registration) {
	defer w.sys.wg.Done()
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if w.sys.cfg.PinWorkers {
		if err := affinity.SetAffinity(w.id % runtime.NumCPU()); err != nil {
			log.Printf("jobs: worker %d not pinned: %v", w.id, err)
		}
	}

	ready <- registration{goid: concurrency.GoroutineID(), id: w.id}
	<-start

	idle := 0
	for {
		if w.tryRunOne() {
			idle = 0
			continue
		}
		select {
		case <-w.sys.stop:
			return
		default:
		}
		idle++
		if idle < idleSpinLimit {
			runtime.Gosched()
		} else {
			time.Sleep(idleSleep)
			idle = 0
		}
	}
}

// tryRunOne claims and executes a single job from anywhere: own deque,
// global queue, then a random victim. Reports whether a job ran.
func (w *worker) tryRunOne() bool {
	if j := w.deque.Pop(); j != nil {
		w.execute(j)
		return true
	}
	if j := w.sys.dequeueGlobal(); j != nil {
		w.execute(j)
		return true
	}
	if j := w.trySteal(); j != nil {
		w.execute(j)
		return true
	}
	return false
}

// trySteal picks a pseudo-random victim other than self and raids its
// deque top. A single attempt per call: on a lost race the caller simply
// comes back with a different victim.
func (w *worker) trySteal() *Job {
	n := len(w.sys.workers)
	if n < 2 {
		return nil
	}
	victim := int(w.nextRand() % uint64(n-1))
	if victim >= w.id {
		victim++
	}
	j := w.sys.workers[victim].deque.Steal()
	if j == nil {
		w.stealMisses.Add(1)
		return nil
	}
	w.stolen.Add(1)
	return j
}

// nextRand is xorshift64: cheap, per-worker, never shared.
func (w *worker) nextRand() uint64 {
	x := w.rng
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	w.rng = x
	return x
}

// execute runs the job, records its profile, recycles the record and only
// then signals the group, so a returning Wait can never observe a live
// record. The scratch arena is reset before the next job.
func (w *worker) execute(j *Job) {
	var began time.Time
	profiled := w.sys.profiles != nil && j.Name != ""
	if profiled {
		began = time.Now()
	}

	w.invoke(j)

	if profiled {
		w.sys.profiles.Record(j.Name, time.Since(began))
	}
	w.ctx.temp.Reset()

	g := j.group
	w.sys.release(j)
	if g != nil {
		g.done()
	}
	w.executed.Add(1)
}

// invoke isolates the recover scope from the bookkeeping in execute.
func (w *worker) invoke(j *Job) {
	defer func() {
		if r := recover(); r != nil {
			w.panics.Add(1)
			log.Printf("jobs: worker %d recovered job panic: %v", w.id, r)
		}
	}()
	j.fn(w.ctx)
}
