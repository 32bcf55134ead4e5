package ratelimit

import (
	"testing"
	"time"
)

func TestAllowWithinLimit(t *testing.T) {
	limiter := New(3, time.Minute)
	now := time.Now()

	for i := 0; i < 3; i++ {
		if !limiter.Allow("g1:u1", now.Add(time.Duration(i)*time.Second)) {
			t.Fatalf("hit %d should be allowed", i+1)
		}
	}
	if limiter.Allow("g1:u1", now.Add(5*time.Second)) {
		t.Fatal("fourth hit inside the window should be denied")
	}
}

func TestWindowExpiry(t *testing.T) {
	limiter := New(2, 10*time.Second)
	now := time.Now()

	limiter.Allow("g1:u1", now)
	limiter.Allow("g1:u1", now.Add(time.Second))
	if limiter.Allow("g1:u1", now.Add(2*time.Second)) {
		t.Fatal("limit reached, hit should be denied")
	}

	// Old hits fall out of the window.
	if !limiter.Allow("g1:u1", now.Add(15*time.Second)) {
		t.Fatal("hit after the window should be allowed")
	}
	if limiter.Count("g1:u1", now.Add(15*time.Second)) != 1 {
		t.Fatalf("expected 1 live hit, got %d", limiter.Count("g1:u1", now.Add(15*time.Second)))
	}
}

func TestKeysAreIndependent(t *testing.T) {
	limiter := New(1, time.Minute)
	now := time.Now()

	if !limiter.Allow("g1:u1", now) {
		t.Fatal("first key should be allowed")
	}
	if !limiter.Allow("g1:u2", now) {
		t.Fatal("second key should not share the first key's budget")
	}
	if limiter.Allow("g1:u1", now) {
		t.Fatal("first key should now be at its limit")
	}
}

func TestDeniedHitNotRecorded(t *testing.T) {
	limiter := New(1, 10*time.Second)
	now := time.Now()

	limiter.Allow("g1:u1", now)
	limiter.Allow("g1:u1", now.Add(time.Second))
	limiter.Allow("g1:u1", now.Add(2*time.Second))

	// Only the first hit counts, so the window clears 10s after it.
	if !limiter.Allow("g1:u1", now.Add(11*time.Second)) {
		t.Fatal("denied hits must not extend the window")
	}
}
