package domain

import (
	"math"
	"time"
)

// Snapshot is the subset of a room record every client needs to derive its
// playback position. It carries no client-local state on purpose: two
// viewers holding the same snapshot must compute the same alignment.
type Snapshot struct {
	State            RoomState
	StartS           int
	EndS             *int
	PrepareStartedAt *time.Time
}

type Alignment struct {
	// TargetOffset is the playback position in seconds into the clip.
	TargetOffset float64
	// PrepareRemaining is the whole seconds left of the prepare countdown.
	// Always 0 unless the room state is prepare.
	PrepareRemaining int
}

// Align maps a room snapshot and the caller's wall clock to the playback
// position and prepare countdown the caller should display. The server
// timestamp inside the snapshot is the only trusted clock; callers must use
// a single now for one computation and nothing else.
func Align(snapshot Snapshot, now time.Time) Alignment {
	start := float64(snapshot.StartS)
	if snapshot.PrepareStartedAt == nil {
		return Alignment{TargetOffset: start}
	}

	playStartAt := snapshot.PrepareStartedAt.Add(PrepareWindowSeconds * time.Second)
	if now.Before(playStartAt) {
		alignment := Alignment{TargetOffset: start}
		// The countdown is only meaningful while the host has not paused or
		// stopped mid-window.
		if snapshot.State == RoomStatePrepare {
			if remaining := int(math.Ceil(playStartAt.Sub(now).Seconds())); remaining > 0 {
				alignment.PrepareRemaining = remaining
			}
		}
		return alignment
	}

	target := start + now.Sub(playStartAt).Seconds()
	if snapshot.EndS != nil && target > float64(*snapshot.EndS) {
		target = float64(*snapshot.EndS)
	}

	return Alignment{TargetOffset: target}
}

// EffectiveState resolves the state a viewer should act on: a stored
// "prepare" becomes "playing" once the prepare window has elapsed.
func EffectiveState(snapshot Snapshot, now time.Time) RoomState {
	if snapshot.State == RoomStatePrepare && snapshot.PrepareStartedAt != nil {
		if !now.Before(snapshot.PrepareStartedAt.Add(PrepareWindowSeconds * time.Second)) {
			return RoomStatePlaying
		}
	}

	return snapshot.State
}
