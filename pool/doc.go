// Package pool
// Author: momentics <momentics@gmail.com>
//
// Memory layer for hioload-jobs. Implements the per-worker scratch arena
// (bump allocation, reset once per processed job) and a generic object pool
// for payload structs reused across jobs. Allocation-free in steady state;
// exhaustion is surfaced as an error, never a panic.
package pool
