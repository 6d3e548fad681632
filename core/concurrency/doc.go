// File: core/concurrency/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Lock-free primitives underlying the hioload-jobs scheduler: the Chase-Lev
// work-stealing deque, the versioned free-list stack, and the spinlocks used
// around shared registries. All structures here are fixed-capacity and
// allocation-free in steady state.
package concurrency
