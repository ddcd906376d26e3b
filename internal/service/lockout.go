package service

import "time"

// LockState is the persisted lockout counters for one account.
type LockState struct {
	FailedAttempts int
	LockUntil      *time.Time
}

// LockoutPolicy decides when repeated credential failures lock an
// account. It is a pure state machine; persistence belongs to callers.
type LockoutPolicy struct {
	Threshold    int
	LockDuration time.Duration
}

func NewLockoutPolicy(threshold int, lockDuration time.Duration) LockoutPolicy {
	return LockoutPolicy{Threshold: threshold, LockDuration: lockDuration}
}

// IsLocked reports whether the account is locked at now. An expired
// lock no longer counts as locked even before any state cleanup runs.
func (p LockoutPolicy) IsLocked(st LockState, now time.Time) bool {
	return st.LockUntil != nil && now.Before(*st.LockUntil)
}

// OnFailure returns the state after one more failed attempt at now.
// A failure arriving after an old lock has expired starts a fresh
// count at one rather than stacking on the stale counter. Reaching
// Threshold sets a lock for LockDuration.
func (p LockoutPolicy) OnFailure(st LockState, now time.Time) LockState {
	if st.LockUntil != nil && !now.Before(*st.LockUntil) {
		st = LockState{}
	}

	st.FailedAttempts++
	if st.FailedAttempts >= p.Threshold {
		until := now.Add(p.LockDuration)
		st.LockUntil = &until
	}
	return st
}

// OnSuccess returns the cleared state recorded after a successful
// authentication.
func (p LockoutPolicy) OnSuccess() LockState {
	return LockState{}
}

// Remaining returns how long a lock has left at now, or zero when the
// account is not locked.
func (p LockoutPolicy) Remaining(st LockState, now time.Time) time.Duration {
	if !p.IsLocked(st, now) {
		return 0
	}
	return st.LockUntil.Sub(now)
}
