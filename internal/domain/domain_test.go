package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoomState(t *testing.T) {
	for _, raw := range []string{"idle", "prepare", "playing", "paused"} {
		state, err := ParseRoomState(raw)
		require.NoError(t, err)
		assert.Equal(t, RoomState(raw), state)
	}

	_, err := ParseRoomState("stopped")
	assert.Error(t, err)
}

func TestRoomStateIsStorable(t *testing.T) {
	assert.True(t, RoomStateIdle.IsStorable())
	assert.True(t, RoomStatePrepare.IsStorable())
	assert.True(t, RoomStatePaused.IsStorable())
	assert.False(t, RoomStatePlaying.IsStorable(), "playing is inferred by clients, never stored")
}

func TestSubmissionTransitions(t *testing.T) {
	tests := []struct {
		from    SubmissionStatus
		to      SubmissionStatus
		allowed bool
	}{
		{SubmissionStatusPending, SubmissionStatusApproved, true},
		{SubmissionStatusPending, SubmissionStatusRejected, true},
		{SubmissionStatusPending, SubmissionStatusPlayed, false},
		{SubmissionStatusApproved, SubmissionStatusPlayed, true},
		{SubmissionStatusApproved, SubmissionStatusPending, false},
		{SubmissionStatusApproved, SubmissionStatusRejected, false},
		{SubmissionStatusRejected, SubmissionStatusApproved, false},
		{SubmissionStatusRejected, SubmissionStatusPlayed, false},
		{SubmissionStatusPlayed, SubmissionStatusApproved, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestValidateClipWindow(t *testing.T) {
	assert.NoError(t, ValidateClipWindow(0, 30))
	assert.NoError(t, ValidateClipWindow(10, 70))
	assert.NoError(t, ValidateClipWindow(5, 6))

	assert.Error(t, ValidateClipWindow(-1, 30), "negative start")
	assert.Error(t, ValidateClipWindow(30, 30), "empty clip")
	assert.Error(t, ValidateClipWindow(30, 10), "end before start")
	assert.Error(t, ValidateClipWindow(0, 61), "clip longer than the maximum")
}
