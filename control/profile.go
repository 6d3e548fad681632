// control/profile.go
// Author: momentics <momentics@gmail.com>
//
// Named-job execution profiles. Workers record the duration of every named
// job they execute; buckets are keyed by the xxhash of the job name so the
// hot Record path never retains the string. The registry is consulted from
// inside running jobs, so it is guarded by a recursive spinlock: a probe
// callback invoked under the lock may legitimately call back into Record.

package control

import (
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/momentics/hioload-jobs/core/concurrency"
)

// Profile accumulates execution statistics for one job name.
type Profile struct {
	Name  string
	Count uint64
	Total time.Duration
	Max   time.Duration
}

// ProfileRegistry aggregates per-name job profiles.
type ProfileRegistry struct {
	lock    concurrency.RecursiveSpinLock
	buckets map[uint64]*Profile
}

// NewProfileRegistry creates an empty profile registry.
func NewProfileRegistry() *ProfileRegistry {
	return &ProfileRegistry{buckets: make(map[uint64]*Profile)}
}

// Record adds one execution of name with the given duration.
func (pr *ProfileRegistry) Record(name string, d time.Duration) {
	key := xxhash.Sum64String(name)
	pr.lock.Lock()
	defer pr.lock.Unlock()
	p := pr.buckets[key]
	if p == nil {
		p = &Profile{Name: name}
		pr.buckets[key] = p
	}
	p.Count++
	p.Total += d
	if d > p.Max {
		p.Max = d
	}
}

// RecordBatch folds a set of samples for one name in a single acquisition.
// It reuses Record under the held lock, which is why the lock is recursive.
func (pr *ProfileRegistry) RecordBatch(name string, samples []time.Duration) {
	pr.lock.Lock()
	defer pr.lock.Unlock()
	for _, d := range samples {
		pr.Record(name, d)
	}
}

// Lookup returns a copy of the profile for name, if any.
func (pr *ProfileRegistry) Lookup(name string) (Profile, bool) {
	key := xxhash.Sum64String(name)
	pr.lock.Lock()
	defer pr.lock.Unlock()
	p, ok := pr.buckets[key]
	if !ok {
		return Profile{}, false
	}
	return *p, true
}

// Snapshot returns copies of all profiles keyed by name.
func (pr *ProfileRegistry) Snapshot() map[string]Profile {
	pr.lock.Lock()
	defer pr.lock.Unlock()
	out := make(map[string]Profile, len(pr.buckets))
	for _, p := range pr.buckets {
		out[p.Name] = *p
	}
	return out
}
