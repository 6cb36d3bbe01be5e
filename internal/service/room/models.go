package room

import (
	"time"

	"github.com/watchtogether/server/internal/domain"
	"github.com/watchtogether/server/internal/repository/room"
)

// Snapshot is the public view of a room record. The host secret never
// leaves the service.
type Snapshot struct {
	ID                  string            `json:"id"`
	State               domain.RoomState  `json:"state"`
	Seq                 int               `json:"seq"`
	VideoID             *string           `json:"video_id"`
	StartS              int               `json:"start_s"`
	EndS                *int              `json:"end_s"`
	PrepareStartedAt    *time.Time        `json:"prepare_started_at"`
	CurrentSubmissionID *string           `json:"current_submission_id"`
}

// Playback extracts the fields the clock-alignment function consumes.
func (s Snapshot) Playback() domain.Snapshot {
	return domain.Snapshot{
		State:            s.State,
		StartS:           s.StartS,
		EndS:             s.EndS,
		PrepareStartedAt: s.PrepareStartedAt,
	}
}

type Submission struct {
	ID          string                  `json:"id"`
	RoomID      string                  `json:"room_id"`
	Status      domain.SubmissionStatus `json:"status"`
	VideoID     string                  `json:"video_id"`
	StartS      int                     `json:"start_s"`
	EndS        int                     `json:"end_s"`
	DisplayName *string                 `json:"display_name"`
	Message     *string                 `json:"message"`
	CreatedAt   time.Time               `json:"created_at"`
}

func snapshotFromRecord(rm *room.Room) Snapshot {
	return Snapshot{
		ID:                  rm.ID,
		State:               rm.State,
		Seq:                 rm.Seq,
		VideoID:             rm.VideoID,
		StartS:              rm.StartS,
		EndS:                rm.EndS,
		PrepareStartedAt:    rm.PrepareStartedAt,
		CurrentSubmissionID: rm.CurrentSubmissionID,
	}
}

func submissionFromRecord(sub *room.Submission) Submission {
	return Submission{
		ID:          sub.ID,
		RoomID:      sub.RoomID,
		Status:      sub.Status,
		VideoID:     sub.VideoID,
		StartS:      sub.StartS,
		EndS:        sub.EndS,
		DisplayName: sub.DisplayName,
		Message:     sub.Message,
		CreatedAt:   sub.CreatedAt,
	}
}
