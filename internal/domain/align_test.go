package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int {
	return &v
}

func TestAlignIdleRoom(t *testing.T) {
	now := time.Now()

	alignment := Align(Snapshot{State: RoomStateIdle, StartS: 0}, now)
	assert.Equal(t, float64(0), alignment.TargetOffset)
	assert.Equal(t, 0, alignment.PrepareRemaining)

	alignment = Align(Snapshot{State: RoomStateIdle, StartS: 42}, now)
	assert.Equal(t, float64(42), alignment.TargetOffset, "target must hold at start when no prepare clock is running")
}

func TestAlignPrepareCycle(t *testing.T) {
	prepareAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	snapshot := Snapshot{
		State:            RoomStatePrepare,
		StartS:           10,
		EndS:             intPtr(40),
		PrepareStartedAt: &prepareAt,
	}

	// mid-countdown
	alignment := Align(snapshot, prepareAt.Add(15*time.Second))
	assert.Equal(t, float64(10), alignment.TargetOffset)
	assert.Equal(t, 5, alignment.PrepareRemaining)

	// 5s into playback
	alignment = Align(snapshot, prepareAt.Add(25*time.Second))
	assert.Equal(t, float64(15), alignment.TargetOffset)
	assert.Equal(t, 0, alignment.PrepareRemaining)

	// clamped to the clip end
	alignment = Align(snapshot, prepareAt.Add(60*time.Second))
	assert.Equal(t, float64(40), alignment.TargetOffset)
	assert.Equal(t, 0, alignment.PrepareRemaining)
}

func TestAlignCountdownRounding(t *testing.T) {
	prepareAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	snapshot := Snapshot{
		State:            RoomStatePrepare,
		StartS:           0,
		PrepareStartedAt: &prepareAt,
	}

	// 14.2s left rounds up to 15 whole seconds
	alignment := Align(snapshot, prepareAt.Add(5800*time.Millisecond))
	assert.Equal(t, 15, alignment.PrepareRemaining)

	alignment = Align(snapshot, prepareAt.Add(20*time.Second))
	assert.Equal(t, 0, alignment.PrepareRemaining)
}

func TestAlignCountdownZeroWhenNotPrepare(t *testing.T) {
	prepareAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	// a pause mid-countdown keeps prepare_started_at but the countdown stops
	for _, state := range []RoomState{RoomStatePaused, RoomStateIdle, RoomStatePlaying} {
		snapshot := Snapshot{
			State:            state,
			StartS:           10,
			PrepareStartedAt: &prepareAt,
		}
		alignment := Align(snapshot, prepareAt.Add(5*time.Second))
		assert.Equal(t, 0, alignment.PrepareRemaining, "countdown must be 0 in state %s", state)
		assert.Equal(t, float64(10), alignment.TargetOffset)
	}
}

func TestAlignMonotonicPastPlayStart(t *testing.T) {
	prepareAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	snapshot := Snapshot{
		State:            RoomStatePrepare,
		StartS:           3,
		EndS:             intPtr(50),
		PrepareStartedAt: &prepareAt,
	}

	previous := float64(-1)
	for offset := 20 * time.Second; offset <= 80*time.Second; offset += 700 * time.Millisecond {
		alignment := Align(snapshot, prepareAt.Add(offset))
		assert.GreaterOrEqual(t, alignment.TargetOffset, previous)
		assert.LessOrEqual(t, alignment.TargetOffset, float64(50))
		previous = alignment.TargetOffset
	}
}

func TestAlignIndependentOfPollingHistory(t *testing.T) {
	prepareAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	snapshot := Snapshot{
		State:            RoomStatePrepare,
		StartS:           10,
		EndS:             intPtr(40),
		PrepareStartedAt: &prepareAt,
	}
	now := prepareAt.Add(33 * time.Second)

	// a client that polled every tick and one that just joined agree
	fresh := Align(snapshot, now)
	assert.Equal(t, fresh, Align(snapshot, now))
	assert.Equal(t, float64(23), fresh.TargetOffset)
}

func TestEffectiveState(t *testing.T) {
	prepareAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	snapshot := Snapshot{
		State:            RoomStatePrepare,
		StartS:           0,
		PrepareStartedAt: &prepareAt,
	}

	assert.Equal(t, RoomStatePrepare, EffectiveState(snapshot, prepareAt.Add(19*time.Second)))
	assert.Equal(t, RoomStatePlaying, EffectiveState(snapshot, prepareAt.Add(20*time.Second)))

	snapshot.State = RoomStatePaused
	assert.Equal(t, RoomStatePaused, EffectiveState(snapshot, prepareAt.Add(30*time.Second)))

	assert.Equal(t, RoomStateIdle, EffectiveState(Snapshot{State: RoomStateIdle}, prepareAt))
}
