package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/watchtogether/server/internal/domain"
	"github.com/watchtogether/server/internal/repository/room"
)

// Submission keys are room-scoped, so a lookup with a foreign room id simply
// misses and surfaces as not-found.
func (r repo) getSubmissionKey(roomID, submissionID string) string {
	return "room:" + roomID + ":submission:" + submissionID
}

func (r repo) getSubmissionsKey(roomID string) string {
	return "room:" + roomID + ":submissions"
}

func (r repo) submissionFields(sub *room.Submission) []interface{} {
	fields := []interface{}{
		"id", sub.ID,
		"room_id", sub.RoomID,
		"status", string(sub.Status),
		"video_id", sub.VideoID,
		"start_s", sub.StartS,
		"end_s", sub.EndS,
		"created_at", sub.CreatedAt.UnixMilli(),
	}
	if sub.DisplayName != nil {
		fields = append(fields, "display_name", *sub.DisplayName)
	}
	if sub.Message != nil {
		fields = append(fields, "message", *sub.Message)
	}

	return fields
}

func (r repo) parseSubmission(fields map[string]string) (room.Submission, error) {
	status, err := domain.ParseSubmissionStatus(fields["status"])
	if err != nil {
		return room.Submission{}, fmt.Errorf("failed to parse submission: %w", err)
	}

	return room.Submission{
		ID:          fields["id"],
		RoomID:      fields["room_id"],
		Status:      status,
		VideoID:     fields["video_id"],
		StartS:      r.fieldToInt(fields["start_s"]),
		EndS:        r.fieldToInt(fields["end_s"]),
		DisplayName: r.optionalString(fields, "display_name"),
		Message:     r.optionalString(fields, "message"),
		CreatedAt:   r.fieldToTime(fields["created_at"]),
	}, nil
}

func (r repo) CreateSubmission(ctx context.Context, sub *room.Submission) error {
	submissionKey := r.getSubmissionKey(sub.RoomID, sub.ID)
	submissionsKey := r.getSubmissionsKey(sub.RoomID)

	pipe := r.rc.TxPipeline()
	pipe.HSet(ctx, submissionKey, r.submissionFields(sub)...)
	// Creation time as the score keeps listings in FIFO order.
	pipe.ZAdd(ctx, submissionsKey, redis.Z{
		Score:  float64(sub.CreatedAt.UnixMilli()),
		Member: sub.ID,
	})
	pipe.Expire(ctx, submissionKey, r.expireDuration)
	pipe.Expire(ctx, submissionsKey, r.expireDuration)
	if err := r.executePipe(ctx, pipe); err != nil {
		return fmt.Errorf("failed to create submission: %w", err)
	}

	return nil
}

func (r repo) GetSubmission(ctx context.Context, params *room.GetSubmissionParams) (room.Submission, error) {
	submissionKey := r.getSubmissionKey(params.RoomID, params.SubmissionID)
	fields, err := r.rc.HGetAll(ctx, submissionKey).Result()
	if err != nil {
		return room.Submission{}, fmt.Errorf("failed to get submission: %w", err)
	}
	if len(fields) == 0 {
		return room.Submission{}, room.ErrSubmissionNotFound
	}

	return r.parseSubmission(fields)
}

func (r repo) ListSubmissions(ctx context.Context, roomID string) ([]room.Submission, error) {
	submissionsKey := r.getSubmissionsKey(roomID)
	ids, err := r.rc.ZRange(ctx, submissionsKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}

	submissions := make([]room.Submission, 0, len(ids))
	for _, id := range ids {
		sub, err := r.GetSubmission(ctx, &room.GetSubmissionParams{
			SubmissionID: id,
			RoomID:       roomID,
		})
		if err != nil {
			// An expired hash leaves a dangling index entry; skip it.
			if errors.Is(err, room.ErrSubmissionNotFound) {
				continue
			}
			return nil, err
		}

		submissions = append(submissions, sub)
	}

	return submissions, nil
}

func (r repo) UpdateSubmissionStatus(ctx context.Context, params *room.UpdateSubmissionStatusParams) error {
	submissionKey := r.getSubmissionKey(params.RoomID, params.SubmissionID)
	cmd := r.rc.Exists(ctx, submissionKey)
	if err := cmd.Err(); err != nil {
		return fmt.Errorf("failed to update submission status: %w", err)
	}
	if cmd.Val() == 0 {
		return room.ErrSubmissionNotFound
	}

	if err := r.rc.HSet(ctx, submissionKey, "status", string(params.Status)).Err(); err != nil {
		return fmt.Errorf("failed to update submission status: %w", err)
	}

	return nil
}
