package alerts

import (
	"fmt"
	"testing"
)

func TestShouldDispatchIdempotent(t *testing.T) {
	set := NewProcessedSet(100)
	if !set.ShouldDispatch("k1") {
		t.Fatal("first dispatch should be allowed")
	}
	if set.ShouldDispatch("k1") {
		t.Fatal("second dispatch of same key should be suppressed")
	}
}

func TestProcessedSetBound(t *testing.T) {
	set := NewProcessedSet(100)
	for i := 0; i < 150; i++ {
		if !set.ShouldDispatch(fmt.Sprintf("key-%d", i)) {
			t.Fatalf("key-%d unexpectedly suppressed", i)
		}
		if set.Len() > 100 {
			t.Fatalf("set grew past cap: %d", set.Len())
		}
	}
	if set.Len() != 100 {
		t.Fatalf("expected 100 entries, got %d", set.Len())
	}

	// The 50 oldest keys were evicted and dispatch again.
	if !set.ShouldDispatch("key-0") {
		t.Fatal("evicted key should dispatch again")
	}
	if set.ShouldDispatch("key-120") {
		t.Fatal("recent key should still be suppressed")
	}
}

func TestProcessedSetDefaultCap(t *testing.T) {
	set := NewProcessedSet(0)
	if set.cap != DefaultProcessedCap {
		t.Fatalf("expected default cap, got %d", set.cap)
	}
}
