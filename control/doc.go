// Package control
// Author: momentics <momentics@gmail.com>
//
// Runtime metrics and introspection layer for hioload-jobs.
//
// Provides concurrent-safe state handling primitives including:
//   - Metrics telemetry registry with snapshot reads
//   - Named-job execution profiles (counts and durations)
//   - Debug hooks and probe registration
//
// Registries here are consulted from inside running jobs; they are guarded
// by short-critical-section spinlocks rather than blocking mutexes so they
// never stall the job-claim hot path.
package control
