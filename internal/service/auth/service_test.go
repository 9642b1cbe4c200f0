package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLogin(t *testing.T) {
	assert := assert.New(t)

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	newService := func() *service {
		return New("1234", NewTracker(WithClock(func() time.Time { return now })))
	}

	t.Run("non-digit characters are stripped before comparing", func(t *testing.T) {
		service := newService()
		result := service.Login("10.0.0.1", "12-34")
		assert.Equal(LoginSuccess, result.Status)
	})

	t.Run("missing pin counts as a failed attempt", func(t *testing.T) {
		service := newService()
		result := service.Login("10.0.0.1", "")
		assert.Equal(LoginInvalidFormat, result.Status)
		assert.Equal(1, result.AttemptsUsed)
		assert.Equal(MaxAttempts-1, result.AttemptsRemaining)
	})

	t.Run("too short or too long pins are rejected and counted", func(t *testing.T) {
		service := newService()

		result := service.Login("10.0.0.1", "12")
		assert.Equal(LoginInvalidLength, result.Status)
		assert.Equal(1, result.AttemptsUsed)

		result = service.Login("10.0.0.1", "12345678901")
		assert.Equal(LoginInvalidLength, result.Status)
		assert.Equal(2, result.AttemptsUsed)
	})

	t.Run("repeated failures lock the address out", func(t *testing.T) {
		service := newService()

		var result LoginResult
		for i := 0; i < MaxAttempts; i++ {
			result = service.Login("10.0.0.1", "9999")
		}
		assert.Equal(LoginFailed, result.Status)
		assert.Equal(MaxAttempts, result.AttemptsUsed)
		assert.Equal(0, result.AttemptsRemaining)
		assert.True(result.RetryAfter > 0)

		// a locked address is rejected without consuming an attempt
		result = service.Login("10.0.0.1", "1234")
		assert.Equal(LoginLocked, result.Status)
		assert.Equal(LockoutDuration, result.RetryAfter)
	})

	t.Run("lockout expires after the lockout window", func(t *testing.T) {
		service := newService()
		for i := 0; i < MaxAttempts; i++ {
			service.Login("10.0.0.1", "9999")
		}

		now = now.Add(LockoutDuration + time.Second)
		result := service.Login("10.0.0.1", "1234")
		assert.Equal(LoginSuccess, result.Status)
	})

	t.Run("success clears the failure count", func(t *testing.T) {
		service := newService()
		service.Login("10.0.0.1", "9999")
		service.Login("10.0.0.1", "9999")

		result := service.Login("10.0.0.1", "1234")
		assert.Equal(LoginSuccess, result.Status)

		result = service.Login("10.0.0.1", "9999")
		assert.Equal(1, result.AttemptsUsed)
	})
}
