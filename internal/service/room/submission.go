package room

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/watchtogether/server/internal/domain"
	"github.com/watchtogether/server/internal/repository/room"
)

type SubmitParams struct {
	RoomID      string
	DisplayName *string
	VideoID     string
	StartS      int
	EndS        int
	Message     *string
}

// Submit requires no authorization: anyone watching a room may propose a
// clip, which enters the moderation queue as pending.
func (s service) Submit(ctx context.Context, params *SubmitParams) (Submission, error) {
	if err := domain.ValidateClipWindow(params.StartS, params.EndS); err != nil {
		return Submission{}, newValidationError("%s", err.Error())
	}

	if _, err := s.roomRepo.GetRoom(ctx, params.RoomID); err != nil {
		if errors.Is(err, room.ErrRoomNotFound) {
			return Submission{}, ErrRoomNotFound
		}
		return Submission{}, fmt.Errorf("failed to get room: %w", err)
	}

	sub := room.Submission{
		ID:          uuid.NewString(),
		RoomID:      params.RoomID,
		Status:      domain.SubmissionStatusPending,
		VideoID:     params.VideoID,
		StartS:      params.StartS,
		EndS:        params.EndS,
		DisplayName: params.DisplayName,
		Message:     params.Message,
		CreatedAt:   s.clock.Now().UTC(),
	}
	if err := s.roomRepo.CreateSubmission(ctx, &sub); err != nil {
		return Submission{}, fmt.Errorf("failed to create submission: %w", err)
	}

	return submissionFromRecord(&sub), nil
}

type ModerateParams struct {
	RoomID       string
	Token        string
	SubmissionID string
}

func (s service) Approve(ctx context.Context, params *ModerateParams) (Submission, error) {
	return s.moderate(ctx, params, domain.SubmissionStatusApproved)
}

func (s service) Reject(ctx context.Context, params *ModerateParams) (Submission, error) {
	return s.moderate(ctx, params, domain.SubmissionStatusRejected)
}

// moderate applies a host decision to a pending submission. The lookup is
// room-scoped, so a submission id from another room surfaces as not-found
// rather than leaking that it exists.
func (s service) moderate(ctx context.Context, params *ModerateParams, next domain.SubmissionStatus) (Submission, error) {
	if err := s.authorize(ctx, params.RoomID, params.Token); err != nil {
		return Submission{}, err
	}

	sub, err := s.roomRepo.GetSubmission(ctx, &room.GetSubmissionParams{
		SubmissionID: params.SubmissionID,
		RoomID:       params.RoomID,
	})
	if err != nil {
		if errors.Is(err, room.ErrSubmissionNotFound) {
			return Submission{}, ErrSubmissionNotFound
		}
		return Submission{}, fmt.Errorf("failed to get submission: %w", err)
	}

	if !sub.Status.CanTransitionTo(next) {
		return Submission{}, newValidationError("submission is %s and cannot be %s", sub.Status, next)
	}

	if err := s.roomRepo.UpdateSubmissionStatus(ctx, &room.UpdateSubmissionStatusParams{
		SubmissionID: params.SubmissionID,
		RoomID:       params.RoomID,
		Status:       next,
	}); err != nil {
		return Submission{}, fmt.Errorf("failed to update submission status: %w", err)
	}

	sub.Status = next

	return submissionFromRecord(&sub), nil
}

type ListQueueParams struct {
	RoomID string
	Token  string
}

type ListQueueResponse struct {
	Pending  []Submission `json:"pending"`
	Approved []Submission `json:"approved"`
}

// ListQueue returns the moderation queue partitioned by status, each
// partition in submission order (oldest first). Note that a submission
// superseded by a later load stays approved until the host stops the room;
// it reappears here until then.
func (s service) ListQueue(ctx context.Context, params *ListQueueParams) (ListQueueResponse, error) {
	if err := s.authorize(ctx, params.RoomID, params.Token); err != nil {
		return ListQueueResponse{}, err
	}

	if _, err := s.roomRepo.GetRoom(ctx, params.RoomID); err != nil {
		if errors.Is(err, room.ErrRoomNotFound) {
			return ListQueueResponse{}, ErrRoomNotFound
		}
		return ListQueueResponse{}, fmt.Errorf("failed to get room: %w", err)
	}

	submissions, err := s.roomRepo.ListSubmissions(ctx, params.RoomID)
	if err != nil {
		return ListQueueResponse{}, fmt.Errorf("failed to list submissions: %w", err)
	}

	resp := ListQueueResponse{
		Pending:  make([]Submission, 0),
		Approved: make([]Submission, 0),
	}
	for i := range submissions {
		switch submissions[i].Status {
		case domain.SubmissionStatusPending:
			resp.Pending = append(resp.Pending, submissionFromRecord(&submissions[i]))
		case domain.SubmissionStatusApproved:
			resp.Approved = append(resp.Approved, submissionFromRecord(&submissions[i]))
		}
	}

	return resp, nil
}
