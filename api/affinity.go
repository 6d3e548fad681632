// File: api/affinity.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// CPU affinity and thread pinning definitions.

package api

// Affinity controls execution of worker threads on particular CPUs.
type Affinity interface {
	// Pin locks the current OS thread to a logical CPU.
	Pin(cpuID int) error
	// Unpin removes the affinity constraint.
	Unpin() error
}
