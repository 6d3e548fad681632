//go:build windows
// +build windows

// File: affinity/affinity_windows.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Windows implementation via SetThreadAffinityMask on the current thread.

package affinity

import (
	"fmt"
	"runtime"

	"golang.org/x/sys/windows"
)

var (
	modkernel32               = windows.NewLazySystemDLL("kernel32.dll")
	procSetThreadAffinityMask = modkernel32.NewProc("SetThreadAffinityMask")
	procGetCurrentThread      = modkernel32.NewProc("GetCurrentThread")
)

// setAffinityPlatform pins the calling thread to cpuID.
func setAffinityPlatform(cpuID int) error {
	if cpuID < 0 || cpuID >= runtime.NumCPU() {
		return fmt.Errorf("affinity: cpu %d out of range", cpuID)
	}
	handle, _, _ := procGetCurrentThread.Call()
	mask := uintptr(1) << uint(cpuID)
	old, _, err := procSetThreadAffinityMask.Call(handle, mask)
	if old == 0 {
		return fmt.Errorf("affinity: SetThreadAffinityMask failed: %v", err)
	}
	return nil
}

// clearAffinityPlatform restores a mask covering all logical CPUs.
func clearAffinityPlatform() error {
	handle, _, _ := procGetCurrentThread.Call()
	total := runtime.NumCPU()
	if total <= 0 {
		total = 1
	}
	mask := (uintptr(1) << uint(total)) - 1
	old, _, err := procSetThreadAffinityMask.Call(handle, mask)
	if old == 0 {
		return fmt.Errorf("affinity: SetThreadAffinityMask(unpin) failed: %v", err)
	}
	return nil
}
