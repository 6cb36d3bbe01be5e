package domain

import "fmt"

type RoomState string

const (
	RoomStateIdle    RoomState = "idle"
	RoomStatePrepare RoomState = "prepare"
	RoomStatePlaying RoomState = "playing"
	RoomStatePaused  RoomState = "paused"
)

// Fixed playback constants shared by the server and every polling client.
const (
	PrepareWindowSeconds = 20
	DefaultClipSeconds   = 30
	MaxClipSeconds       = 60
)

// RoomStatePlaying is never written to the store: the record stays in
// "prepare" and clients infer playback once the prepare window elapses.
func (s RoomState) IsStorable() bool {
	switch s {
	case RoomStateIdle, RoomStatePrepare, RoomStatePaused:
		return true
	}
	return false
}

func (s RoomState) IsValid() bool {
	return s == RoomStatePlaying || s.IsStorable()
}

func ParseRoomState(raw string) (RoomState, error) {
	state := RoomState(raw)
	if !state.IsValid() {
		return "", fmt.Errorf("unknown room state %q", raw)
	}

	return state, nil
}

// ValidateClipWindow checks the shared clip constraints: offsets are
// non-negative, the clip is non-empty and no longer than MaxClipSeconds.
func ValidateClipWindow(startS, endS int) error {
	if startS < 0 || endS <= startS {
		return fmt.Errorf("must satisfy: 0 <= start < end")
	}
	if endS-startS > MaxClipSeconds {
		return fmt.Errorf("clip must not exceed %d seconds", MaxClipSeconds)
	}

	return nil
}
