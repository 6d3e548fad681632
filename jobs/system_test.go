// File: jobs/system_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package jobs_test

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-jobs/api"
	"github.com/momentics/hioload-jobs/jobs"
)

func newSystem(t *testing.T, cfg *jobs.Config) *jobs.System {
	t.Helper()
	s, err := jobs.New(cfg)
	require.NoError(t, err)
	t.Cleanup(s.Shutdown)
	return s
}

func TestConfigValidate(t *testing.T) {
	for _, tc := range []struct {
		name   string
		mutate func(*jobs.Config)
	}{
		{"negative workers", func(c *jobs.Config) { c.Workers = -1 }},
		{"queue capacity not power of two", func(c *jobs.Config) { c.QueueCapacity = 48 }},
		{"queue capacity too small", func(c *jobs.Config) { c.QueueCapacity = 1 }},
		{"job pool empty", func(c *jobs.Config) { c.JobPoolCapacity = 0 }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfg := jobs.DefaultConfig()
			tc.mutate(cfg)
			_, err := jobs.New(cfg)
			assert.Error(t, err)
		})
	}
}

// TestGroupCompletionVisibility checks the core memory guarantee: after
// Wait returns, every write performed by every job in the group is visible
// to the waiter. Each job writes a distinct slot without synchronization of
// its own; the group counter is the only ordering edge.
func TestGroupCompletionVisibility(t *testing.T) {
	s := newSystem(t, nil)

	const n = 4096
	results := make([]int, n)
	var g jobs.Group
	for i := 0; i < n; i++ {
		i := i
		s.Schedule(&g, s.NewJob(func(*jobs.Ctx) {
			results[i] = i * 2
		}))
	}
	s.Wait(&g)
	require.EqualValues(t, 0, g.Pending())

	sum := 0
	for _, v := range results {
		sum += v
	}
	assert.Equal(t, n*(n-1), sum, "stale or torn reads after Wait")
}

func TestGroupReuseAfterWait(t *testing.T) {
	s := newSystem(t, nil)
	var g jobs.Group
	var total atomic.Int64
	for wave := 0; wave < 3; wave++ {
		for i := 0; i < 100; i++ {
			s.Schedule(&g, s.NewJob(func(*jobs.Ctx) { total.Add(1) }))
		}
		s.Wait(&g)
	}
	assert.EqualValues(t, 300, total.Load())
}

func TestWorkerID(t *testing.T) {
	cfg := jobs.DefaultConfig()
	cfg.Workers = 4
	s := newSystem(t, cfg)

	assert.Equal(t, api.NonWorker, s.WorkerID(), "external goroutine must see the sentinel")
	assert.Equal(t, 4, s.NumWorkers())

	var g jobs.Group
	var bad atomic.Int64
	for i := 0; i < 64; i++ {
		s.Schedule(&g, s.NewJob(func(ctx *jobs.Ctx) {
			id := ctx.WorkerID()
			if id < 0 || id >= 4 || s.WorkerID() != id {
				bad.Add(1)
			}
		}))
	}
	s.Wait(&g)
	assert.Zero(t, bad.Load())
}

// Jobs scheduled from inside jobs go through the owning worker's local
// deque; the group must still account for the whole tree.
func TestNestedScheduling(t *testing.T) {
	s := newSystem(t, nil)

	var g jobs.Group
	var leaves atomic.Int64
	for i := 0; i < 32; i++ {
		s.Schedule(&g, s.NewJob(func(ctx *jobs.Ctx) {
			for c := 0; c < 8; c++ {
				ctx.System().Schedule(&g, ctx.System().NewJob(func(*jobs.Ctx) {
					leaves.Add(1)
				}))
			}
		}))
	}
	s.Wait(&g)
	assert.EqualValues(t, 32*8, leaves.Load())
}

// A job may fork its own group and wait on it from inside the worker; the
// worker help-drains instead of stalling the pool.
func TestForkJoinInsideJob(t *testing.T) {
	s := newSystem(t, nil)

	var g jobs.Group
	var sum atomic.Int64
	s.Schedule(&g, s.NewJob(func(ctx *jobs.Ctx) {
		var child jobs.Group
		for i := 1; i <= 10; i++ {
			i := i
			ctx.System().Schedule(&child, ctx.System().NewJob(func(*jobs.Ctx) {
				sum.Add(int64(i))
			}))
		}
		ctx.System().Wait(&child)
	}))
	s.Wait(&g)
	assert.EqualValues(t, 55, sum.Load())
}

func TestPanicContainment(t *testing.T) {
	s := newSystem(t, nil)

	var g jobs.Group
	s.Schedule(&g, s.NewJob(func(*jobs.Ctx) { panic("payload fault") }))
	s.Wait(&g)

	// The pool must survive the fault and keep executing.
	var ran atomic.Bool
	s.Schedule(&g, s.NewJob(func(*jobs.Ctx) { ran.Store(true) }))
	s.Wait(&g)
	assert.True(t, ran.Load())
	assert.EqualValues(t, 1, s.Stats()["panics"])
}

func TestTempArena(t *testing.T) {
	cfg := jobs.DefaultConfig()
	cfg.ArenaSize = 1 << 16
	s := newSystem(t, cfg)

	var g jobs.Group
	var failed atomic.Int64
	for i := 0; i < 256; i++ {
		s.Schedule(&g, s.NewJob(func(ctx *jobs.Ctx) {
			b, err := ctx.Temp().Alloc(1024)
			if err != nil || len(b) != 1024 || b[0] != 0 {
				failed.Add(1)
				return
			}
			b[0] = 0xAB // scribble; Alloc must zero recycled memory
		}))
	}
	s.Wait(&g)
	assert.Zero(t, failed.Load(), "scratch arena must serve every job after per-job resets")
}

func TestStatsAccounting(t *testing.T) {
	s := newSystem(t, nil)

	const n = 500
	var g jobs.Group
	for i := 0; i < n; i++ {
		s.Schedule(&g, s.NewJob(func(*jobs.Ctx) {}))
	}
	s.Wait(&g)

	stats := s.Stats()
	assert.EqualValues(t, n, stats["executed"])
	assert.EqualValues(t, n, stats["global_submits"], "external submissions route through the global queue")
	assert.EqualValues(t, s.NumWorkers(), stats["workers"])
}

func TestProfiling(t *testing.T) {
	cfg := jobs.DefaultConfig()
	cfg.EnableProfiling = true
	s := newSystem(t, cfg)

	var g jobs.Group
	for i := 0; i < 20; i++ {
		j := s.NewJob(func(*jobs.Ctx) {})
		j.Name = "unit.work"
		s.Schedule(&g, j)
	}
	s.Wait(&g)

	require.NotNil(t, s.Profiles())
	p, ok := s.Profiles().Lookup("unit.work")
	require.True(t, ok)
	assert.EqualValues(t, 20, p.Count)
}

func TestScheduleAfterShutdownPanics(t *testing.T) {
	s, err := jobs.New(nil)
	require.NoError(t, err)
	s.Shutdown()
	s.Shutdown() // second shutdown is a no-op

	assert.Panics(t, func() {
		s.Schedule(nil, s.NewJob(func(*jobs.Ctx) {}))
	})
}

func TestWaitEmptyGroup(t *testing.T) {
	s := newSystem(t, nil)
	var g jobs.Group
	s.Wait(&g) // must return immediately
	s.Wait(nil)
}

// TestNoLostJobsStress floods the system from several external producers
// while workers steal from each other; every scheduled job must run exactly
// once.
func TestNoLostJobsStress(t *testing.T) {
	perProducer := 20000
	if testing.Short() {
		perProducer = 2000
	}
	const producers = 8

	cfg := jobs.DefaultConfig()
	cfg.QueueCapacity = 8192
	s := newSystem(t, cfg)

	var g jobs.Group
	var executed atomic.Int64
	done := make(chan struct{})
	for p := 0; p < producers; p++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for i := 0; i < perProducer; i++ {
				s.Schedule(&g, s.NewJob(func(*jobs.Ctx) { executed.Add(1) }))
			}
		}()
	}
	for p := 0; p < producers; p++ {
		<-done
	}
	s.Wait(&g)
	assert.EqualValues(t, producers*perProducer, executed.Load())
}
