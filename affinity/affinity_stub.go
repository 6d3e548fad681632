//go:build !linux && !windows
// +build !linux,!windows

// File: affinity/affinity_stub.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Stub implementation for unsupported platforms.

package affinity

import "github.com/momentics/hioload-jobs/api"

func setAffinityPlatform(cpuID int) error {
	return api.ErrAffinityNotSupported
}

func clearAffinityPlatform() error {
	return api.ErrAffinityNotSupported
}
