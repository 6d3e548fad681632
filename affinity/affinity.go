// File: affinity/affinity.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Platform-neutral API for CPU affinity of scheduler worker threads.
// Platform-specific implementations live in affinity_linux.go,
// affinity_windows.go and affinity_stub.go, guarded by build tags.
// Callers must hold runtime.LockOSThread for the pin to be meaningful.

package affinity

import "github.com/momentics/hioload-jobs/api"

// Pinner is the default Affinity implementation for this platform.
type Pinner struct{}

var _ api.Affinity = Pinner{}

// Pin locks the current OS thread to a given logical CPU.
func (Pinner) Pin(cpuID int) error {
	return setAffinityPlatform(cpuID)
}

// Unpin resets the current OS thread's affinity to all CPUs.
func (Pinner) Unpin() error {
	return clearAffinityPlatform()
}

// SetAffinity pins the current OS thread to a given logical CPU.
// On unsupported platforms it returns api.ErrAffinityNotSupported.
func SetAffinity(cpuID int) error {
	return setAffinityPlatform(cpuID)
}
