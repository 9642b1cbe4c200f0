package auth

import (
	"sync"
	"time"
)

const (
	MaxAttempts     = 5
	AttemptWindow   = 5 * time.Minute
	LockoutDuration = 15 * time.Minute
)

// Snapshot is the attempt state for one client address after a recorded
// failure.
type Snapshot struct {
	Attempts     int
	LockoutUntil *time.Time
}

type record struct {
	attempts     int
	lastAttempt  time.Time
	lockoutUntil *time.Time
}

// Tracker counts consecutive failed login attempts per client address and
// locks an address out once the limit is reached. Expired lockouts are
// pruned lazily on the next lookup, so there is no background sweeper.
//
// The map is guarded by a mutex: addresses are only ever mutated under it,
// so two racing requests from the same address serialise rather than
// corrupting the map.
type Tracker struct {
	mu          sync.Mutex
	now         func() time.Time
	maxAttempts int
	window      time.Duration
	lockout     time.Duration
	records     map[string]*record
}

type TrackerOption func(*Tracker)

// WithClock substitutes the time source, so tests can drive expiry without
// waiting on real timers.
func WithClock(now func() time.Time) TrackerOption {
	return func(t *Tracker) {
		t.now = now
	}
}

func WithLimits(maxAttempts int, window, lockout time.Duration) TrackerOption {
	return func(t *Tracker) {
		t.maxAttempts = maxAttempts
		t.window = window
		t.lockout = lockout
	}
}

func NewTracker(opts ...TrackerOption) *Tracker {
	t := &Tracker{
		now:         time.Now,
		maxAttempts: MaxAttempts,
		window:      AttemptWindow,
		lockout:     LockoutDuration,
		records:     map[string]*record{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// RecordFailure counts a failed attempt for address. A failure arriving more
// than the attempt window after the previous one restarts the count at 1.
// Reaching the attempt limit sets a lockout.
func (t *Tracker) RecordFailure(address string) Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()

	rec, ok := t.records[address]
	if !ok {
		rec = &record{}
		t.records[address] = rec
	}

	if now.Sub(rec.lastAttempt) > t.window {
		rec.attempts = 1
	} else {
		rec.attempts++
	}
	rec.lastAttempt = now

	if rec.attempts >= t.maxAttempts {
		until := now.Add(t.lockout)
		rec.lockoutUntil = &until
	}

	return Snapshot{Attempts: rec.attempts, LockoutUntil: rec.lockoutUntil}
}

// IsLockedOut reports whether address is currently locked out. A lockout
// that has already expired removes the whole record as a side effect.
func (t *Tracker) IsLockedOut(address string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	rec, ok := t.records[address]
	if !ok || rec.lockoutUntil == nil {
		return false
	}
	if t.now().Before(*rec.lockoutUntil) {
		return true
	}
	delete(t.records, address)
	return false
}

// LockoutRemaining returns how long address stays locked out, zero when it
// is not.
func (t *Tracker) LockoutRemaining(address string) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	rec, ok := t.records[address]
	if !ok || rec.lockoutUntil == nil {
		return 0
	}
	remaining := rec.lockoutUntil.Sub(t.now())
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Clear drops all tracking for address, called on successful login.
func (t *Tracker) Clear(address string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.records, address)
}
