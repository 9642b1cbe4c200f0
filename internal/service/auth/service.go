package auth

import (
	"strings"
	"time"
)

const (
	MinPINLength = 3
	MaxPINLength = 10
)

type LoginStatus int

const (
	LoginSuccess LoginStatus = iota
	LoginLocked
	LoginInvalidFormat
	LoginInvalidLength
	LoginFailed
)

// LoginResult is the outcome of one login attempt. AttemptsUsed and
// AttemptsRemaining are populated on the failure paths, RetryAfter when the
// address is locked out.
type LoginResult struct {
	Status            LoginStatus
	AttemptsUsed      int
	AttemptsRemaining int
	RetryAfter        time.Duration
}

type service struct {
	pin     string
	tracker *Tracker
}

func New(pin string, tracker *Tracker) *service {
	return &service{pin: pin, tracker: tracker}
}

// NormalizePIN strips every non-digit character from the submitted value, so
// "12-34" and "1234" compare equal.
func NormalizePIN(submitted string) string {
	var sb strings.Builder
	for _, r := range submitted {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// Login validates a PIN submission from address. A locked-out address is
// rejected without consuming an attempt; malformed submissions count as
// failures.
func (s *service) Login(address, submittedPin string) LoginResult {
	if s.tracker.IsLockedOut(address) {
		return LoginResult{
			Status:     LoginLocked,
			RetryAfter: s.tracker.LockoutRemaining(address),
		}
	}

	if submittedPin == "" {
		return s.failure(address, LoginInvalidFormat)
	}

	normalized := NormalizePIN(submittedPin)
	if len(normalized) < MinPINLength || len(normalized) > MaxPINLength {
		return s.failure(address, LoginInvalidLength)
	}

	if normalized != s.pin {
		return s.failure(address, LoginFailed)
	}

	s.tracker.Clear(address)
	return LoginResult{Status: LoginSuccess}
}

func (s *service) failure(address string, status LoginStatus) LoginResult {
	snapshot := s.tracker.RecordFailure(address)
	remaining := s.tracker.maxAttempts - snapshot.Attempts
	if remaining < 0 {
		remaining = 0
	}
	result := LoginResult{
		Status:            status,
		AttemptsUsed:      snapshot.Attempts,
		AttemptsRemaining: remaining,
	}
	if snapshot.LockoutUntil != nil {
		result.RetryAfter = s.tracker.LockoutRemaining(address)
	}
	return result
}
