// File: jobs/config.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Immutable job system configuration. All fields influence initialization
// and cannot be changed for the lifetime of the System: the pool never
// resizes and the deques never grow.

package jobs

import (
	"fmt"
	"runtime"

	"github.com/momentics/hioload-jobs/api"
	"github.com/momentics/hioload-jobs/pool"
)

// Config holds parameters immutable per run.
type Config struct {
	Workers         int  // Number of worker goroutines; <=0 selects runtime.NumCPU()
	QueueCapacity   int  // Per-worker deque capacity; power of two, at least 2
	ArenaSize       int  // Per-worker scratch arena size in bytes
	JobPoolCapacity int  // Shared job record arena; overflow falls back to the heap
	PinWorkers      bool // Pin worker threads to CPUs where the platform supports it
	EnableProfiling bool // Record per-name execution profiles
}

// DefaultConfig returns defaults sized for typical engine workloads.
func DefaultConfig() *Config {
	return &Config{
		Workers:         runtime.NumCPU(),
		QueueCapacity:   1024,
		ArenaSize:       pool.DefaultArenaSize,
		JobPoolCapacity: 4096,
		PinWorkers:      false,
		EnableProfiling: false,
	}
}

// Validate reports configuration errors. Queue capacity violations are also
// enforced fatally at deque construction; Validate surfaces them as errors
// first so misconfiguration fails at init, not on a worker.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("%w: %d", api.ErrInvalidWorkerCount, c.Workers)
	}
	if c.QueueCapacity < 2 || c.QueueCapacity&(c.QueueCapacity-1) != 0 {
		return fmt.Errorf("%w: queue capacity %d must be a power of two >= 2",
			api.ErrInvalidArgument, c.QueueCapacity)
	}
	if c.JobPoolCapacity <= 0 {
		return fmt.Errorf("%w: job pool capacity %d", api.ErrInvalidArgument, c.JobPoolCapacity)
	}
	return nil
}
