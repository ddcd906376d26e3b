package service

import (
	"testing"
	"time"
)

func TestLockoutPolicy_LocksAtThreshold(t *testing.T) {
	policy := NewLockoutPolicy(5, 2*time.Hour)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	st := LockState{}
	for i := 0; i < 4; i++ {
		st = policy.OnFailure(st, now)
		if policy.IsLocked(st, now) {
			t.Fatalf("Expected not locked after %d failures", i+1)
		}
	}

	st = policy.OnFailure(st, now)
	if st.FailedAttempts != 5 {
		t.Errorf("Expected 5 failed attempts, got %d", st.FailedAttempts)
	}
	if !policy.IsLocked(st, now) {
		t.Error("Expected account locked at threshold")
	}
	if st.LockUntil == nil || !st.LockUntil.Equal(now.Add(2*time.Hour)) {
		t.Errorf("Expected lock until %v, got %v", now.Add(2*time.Hour), st.LockUntil)
	}
}

func TestLockoutPolicy_LockExpires(t *testing.T) {
	policy := NewLockoutPolicy(3, time.Hour)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	st := LockState{}
	for i := 0; i < 3; i++ {
		st = policy.OnFailure(st, now)
	}
	if !policy.IsLocked(st, now) {
		t.Fatal("Expected locked after threshold")
	}

	// One instant before expiry the lock still holds.
	if !policy.IsLocked(st, now.Add(time.Hour-time.Nanosecond)) {
		t.Error("Expected still locked just before expiry")
	}

	// At the exact expiry instant the lock no longer applies.
	if policy.IsLocked(st, now.Add(time.Hour)) {
		t.Error("Expected unlocked at expiry instant")
	}
}

func TestLockoutPolicy_FailureAfterExpiredLockRestartsCount(t *testing.T) {
	policy := NewLockoutPolicy(3, time.Hour)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	st := LockState{}
	for i := 0; i < 3; i++ {
		st = policy.OnFailure(st, now)
	}

	later := now.Add(2 * time.Hour)
	st = policy.OnFailure(st, later)

	if st.FailedAttempts != 1 {
		t.Errorf("Expected count restarted at 1 after expired lock, got %d", st.FailedAttempts)
	}
	if st.LockUntil != nil {
		t.Errorf("Expected no lock after restart, got %v", st.LockUntil)
	}
}

func TestLockoutPolicy_SuccessClearsState(t *testing.T) {
	policy := NewLockoutPolicy(5, time.Hour)
	now := time.Now()

	st := policy.OnFailure(LockState{FailedAttempts: 3}, now)
	st = policy.OnSuccess()

	if st.FailedAttempts != 0 || st.LockUntil != nil {
		t.Errorf("Expected cleared state, got %+v", st)
	}
}

func TestLockoutPolicy_Remaining(t *testing.T) {
	policy := NewLockoutPolicy(2, 30*time.Minute)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	st := LockState{}
	st = policy.OnFailure(st, now)
	st = policy.OnFailure(st, now)

	if got := policy.Remaining(st, now.Add(10*time.Minute)); got != 20*time.Minute {
		t.Errorf("Expected 20m remaining, got %v", got)
	}
	if got := policy.Remaining(st, now.Add(time.Hour)); got != 0 {
		t.Errorf("Expected 0 remaining after expiry, got %v", got)
	}
	if got := policy.Remaining(LockState{}, now); got != 0 {
		t.Errorf("Expected 0 remaining for clean state, got %v", got)
	}
}
