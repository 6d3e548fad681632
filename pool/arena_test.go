// File: pool/arena_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package pool_test

import (
	"errors"
	"testing"

	"github.com/momentics/hioload-jobs/api"
	"github.com/momentics/hioload-jobs/pool"
)

func TestArenaAllocReset(t *testing.T) {
	a := pool.NewArena(128)
	b1, err := a.Alloc(100)
	if err != nil {
		t.Fatalf("Alloc(100): %v", err)
	}
	if len(b1) != 100 {
		t.Fatalf("len = %d, want 100", len(b1))
	}
	if a.Remaining() != 28 {
		t.Fatalf("Remaining = %d, want 28", a.Remaining())
	}
	a.Reset()
	if a.Remaining() != 128 {
		t.Fatalf("Remaining after Reset = %d, want 128", a.Remaining())
	}
	// Reuse must hand back zeroed memory even though the region is recycled.
	b1[0] = 0xff
	a.Reset()
	b2, _ := a.Alloc(1)
	if b2[0] != 0 {
		t.Error("recycled allocation not zeroed")
	}
}

func TestArenaExhaustion(t *testing.T) {
	a := pool.NewArena(64)
	if _, err := a.Alloc(64); err != nil {
		t.Fatalf("Alloc at exact capacity: %v", err)
	}
	_, err := a.Alloc(1)
	if !errors.Is(err, api.ErrResourceExhausted) {
		t.Fatalf("err = %v, want ErrResourceExhausted", err)
	}
	_, fails := a.Stats()
	if fails != 1 {
		t.Fatalf("fails = %d, want 1", fails)
	}
}

func TestSyncPoolReuse(t *testing.T) {
	sp := pool.NewSyncPool(func() *[]byte {
		b := make([]byte, 256)
		return &b
	})
	b := sp.Get()
	if len(*b) != 256 {
		t.Fatalf("len = %d, want 256", len(*b))
	}
	sp.Put(b)
	if got := sp.Get(); len(*got) != 256 {
		t.Fatal("pooled object lost its backing storage")
	}
}
