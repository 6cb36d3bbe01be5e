package room

import (
	"time"

	"github.com/watchtogether/server/internal/domain"
)

// Room is the authoritative record of one shared playback session. Nil
// pointer fields are absent in the store; Seq guards every mutation through
// the compare-and-swap contract.
type Room struct {
	ID                  string
	State               domain.RoomState
	Seq                 int
	VideoID             *string
	StartS              int
	EndS                *int
	PrepareStartedAt    *time.Time
	CurrentSubmissionID *string
	HostSecret          string
	CreatedAt           time.Time
}

type Submission struct {
	ID          string
	RoomID      string
	Status      domain.SubmissionStatus
	VideoID     string
	StartS      int
	EndS        int
	DisplayName *string
	Message     *string
	CreatedAt   time.Time
}
