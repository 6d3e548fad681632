// File: core/concurrency/goid.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Goroutine identity for lock ownership and worker registry lookups. The id
// is parsed from the runtime.Stack header ("goroutine N [running]:"), which
// is stable across Go releases. Cold paths only: worker registration at
// startup and recursive lock acquisition.

package concurrency

import (
	"bytes"
	"runtime"
	"strconv"
)

var goroutinePrefix = []byte("goroutine ")

// GoroutineID returns the runtime id of the calling goroutine.
func GoroutineID() int64 {
	buf := make([]byte, 64)
	buf = buf[:runtime.Stack(buf, false)]
	buf = bytes.TrimPrefix(buf, goroutinePrefix)
	if i := bytes.IndexByte(buf, ' '); i > 0 {
		if id, err := strconv.ParseInt(string(buf[:i]), 10, 64); err == nil {
			return id
		}
	}
	return 0
}
