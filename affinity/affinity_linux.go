//go:build linux
// +build linux

// File: affinity/affinity_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Linux implementation via sched_setaffinity on the calling thread.

package affinity

import (
	"fmt"
	"runtime"

	"golang.org/x/sys/unix"
)

// setAffinityPlatform pins the calling thread to cpuID.
func setAffinityPlatform(cpuID int) error {
	if cpuID < 0 || cpuID >= runtime.NumCPU() {
		return fmt.Errorf("affinity: cpu %d out of range", cpuID)
	}
	var set unix.CPUSet
	set.Zero()
	set.Set(cpuID)
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return fmt.Errorf("affinity: sched_setaffinity: %w", err)
	}
	return nil
}

// clearAffinityPlatform restores the full CPU mask.
func clearAffinityPlatform() error {
	var set unix.CPUSet
	set.Zero()
	for i := 0; i < runtime.NumCPU(); i++ {
		set.Set(i)
	}
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return fmt.Errorf("affinity: sched_setaffinity(unpin): %w", err)
	}
	return nil
}
