package room

import "github.com/watchtogether/server/internal/domain"

// CompareAndSwapRoomParams commits Room in place of the stored record only
// if the stored seq still equals ExpectedSeq.
type CompareAndSwapRoomParams struct {
	ExpectedSeq int
	Room        Room
}

type GetSubmissionParams struct {
	SubmissionID string
	RoomID       string
}

type UpdateSubmissionStatusParams struct {
	SubmissionID string
	RoomID       string
	Status       domain.SubmissionStatus
}
