package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTracker(t *testing.T) {
	assert := assert.New(t)

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	tracker := NewTracker(WithClock(func() time.Time { return now }))

	t.Run("one attempt short of the limit leaves the address unlocked", func(t *testing.T) {
		for i := 0; i < MaxAttempts-1; i++ {
			tracker.RecordFailure("10.0.0.1")
		}
		assert.False(tracker.IsLockedOut("10.0.0.1"))
	})

	t.Run("reaching the limit locks the address out", func(t *testing.T) {
		snapshot := tracker.RecordFailure("10.0.0.1")
		assert.Equal(MaxAttempts, snapshot.Attempts)
		assert.NotNil(snapshot.LockoutUntil)
		assert.True(tracker.IsLockedOut("10.0.0.1"))
		assert.Equal(LockoutDuration, tracker.LockoutRemaining("10.0.0.1"))
	})

	t.Run("an expired lockout clears and the count restarts", func(t *testing.T) {
		now = now.Add(LockoutDuration + time.Second)
		assert.False(tracker.IsLockedOut("10.0.0.1"))

		snapshot := tracker.RecordFailure("10.0.0.1")
		assert.Equal(1, snapshot.Attempts)
		assert.Nil(snapshot.LockoutUntil)
	})

	t.Run("a failure outside the window restarts the count", func(t *testing.T) {
		tracker.RecordFailure("10.0.0.2")
		tracker.RecordFailure("10.0.0.2")

		now = now.Add(AttemptWindow + time.Minute)
		snapshot := tracker.RecordFailure("10.0.0.2")
		assert.Equal(1, snapshot.Attempts)
	})

	t.Run("clear drops all tracking for the address", func(t *testing.T) {
		for i := 0; i < MaxAttempts; i++ {
			tracker.RecordFailure("10.0.0.3")
		}
		assert.True(tracker.IsLockedOut("10.0.0.3"))

		tracker.Clear("10.0.0.3")
		assert.False(tracker.IsLockedOut("10.0.0.3"))

		snapshot := tracker.RecordFailure("10.0.0.3")
		assert.Equal(1, snapshot.Attempts)
	})

	t.Run("addresses do not contend", func(t *testing.T) {
		for i := 0; i < MaxAttempts; i++ {
			tracker.RecordFailure("10.0.0.4")
		}
		assert.True(tracker.IsLockedOut("10.0.0.4"))
		assert.False(tracker.IsLockedOut("10.0.0.5"))
	})
}
