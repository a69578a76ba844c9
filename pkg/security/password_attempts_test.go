package security

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordAttemptTracker_InMemory(t *testing.T) {
	clock := time.Unix(1_700_000_000, 0)
	tracker := NewPasswordAttemptTracker(nil, PasswordAttemptConfig{
		MaxAttempts:   3,
		AttemptWindow: time.Minute,
		BlockDuration: 10 * time.Minute,
	}, nil)
	tracker.now = func() time.Time { return clock }
	ctx := context.Background()

	t.Run("Should block on the third failure", func(t *testing.T) {
		for i := 1; i <= 2; i++ {
			blocked, attempts, err := tracker.RecordFailure(ctx, "cand-1")
			require.NoError(t, err)
			assert.False(t, blocked)
			assert.Equal(t, i, attempts)
		}
		blocked, _, err := tracker.RecordFailure(ctx, "cand-1")
		require.NoError(t, err)
		assert.True(t, blocked)

		blocked, err = tracker.IsBlocked(ctx, "cand-1")
		require.NoError(t, err)
		assert.True(t, blocked)

		blocked, err = tracker.IsBlocked(ctx, "cand-2")
		require.NoError(t, err)
		assert.False(t, blocked)
	})

	t.Run("Should lift the block after the block duration", func(t *testing.T) {
		clock = clock.Add(11 * time.Minute)
		blocked, err := tracker.IsBlocked(ctx, "cand-1")
		require.NoError(t, err)
		assert.False(t, blocked)
	})

	t.Run("Should forget failures outside the window", func(t *testing.T) {
		_, _, _ = tracker.RecordFailure(ctx, "cand-3")
		_, _, _ = tracker.RecordFailure(ctx, "cand-3")
		clock = clock.Add(2 * time.Minute)
		blocked, attempts, err := tracker.RecordFailure(ctx, "cand-3")
		require.NoError(t, err)
		assert.False(t, blocked)
		assert.Equal(t, 1, attempts)
	})

	t.Run("Should reset on success", func(t *testing.T) {
		_, _, _ = tracker.RecordFailure(ctx, "cand-4")
		_, _, _ = tracker.RecordFailure(ctx, "cand-4")
		require.NoError(t, tracker.Clear(ctx, "cand-4"))
		_, attempts, err := tracker.RecordFailure(ctx, "cand-4")
		require.NoError(t, err)
		assert.Equal(t, 1, attempts)
	})

	t.Run("Should treat a nil tracker as never blocking", func(t *testing.T) {
		var nilTracker *PasswordAttemptTracker
		blocked, err := nilTracker.IsBlocked(ctx, "x")
		require.NoError(t, err)
		assert.False(t, blocked)
		blocked, _, err = nilTracker.RecordFailure(ctx, "x")
		require.NoError(t, err)
		assert.False(t, blocked)
	})
}
