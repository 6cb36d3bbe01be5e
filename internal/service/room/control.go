package room

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/watchtogether/server/internal/domain"
	"github.com/watchtogether/server/internal/repository/room"
)

// Clip is an already-resolved direct load source: the video reference has
// been reduced to an id and the times to plain seconds by the caller.
type Clip struct {
	VideoID string
	StartS  int
	EndS    int
}

type LoadParams struct {
	RoomID       string
	Token        string
	SubmissionID *string
	Clip         *Clip
}

// Load starts a playback cycle from any state: the record moves to prepare,
// the prepare clock starts now, and seq advances by one.
func (s service) Load(ctx context.Context, params *LoadParams) (Snapshot, error) {
	if (params.SubmissionID == nil) == (params.Clip == nil) {
		return Snapshot{}, newValidationError("either submission_id or a clip is required")
	}

	rm, err := s.commit(ctx, params.RoomID, params.Token, func(ctx context.Context, rm *room.Room) error {
		now := s.clock.Now().UTC()

		if params.SubmissionID != nil {
			sub, err := s.roomRepo.GetSubmission(ctx, &room.GetSubmissionParams{
				SubmissionID: *params.SubmissionID,
				RoomID:       params.RoomID,
			})
			if err != nil {
				if errors.Is(err, room.ErrSubmissionNotFound) {
					return ErrSubmissionNotFound
				}
				return fmt.Errorf("failed to get submission: %w", err)
			}
			if sub.Status != domain.SubmissionStatusApproved {
				return newValidationError("only approved submissions can be loaded")
			}

			rm.VideoID = &sub.VideoID
			rm.StartS = sub.StartS
			endS := sub.EndS
			rm.EndS = &endS
			rm.CurrentSubmissionID = &sub.ID
		} else {
			if err := domain.ValidateClipWindow(params.Clip.StartS, params.Clip.EndS); err != nil {
				return newValidationError("%s", err.Error())
			}

			videoID := params.Clip.VideoID
			endS := params.Clip.EndS
			rm.VideoID = &videoID
			rm.StartS = params.Clip.StartS
			rm.EndS = &endS
			rm.CurrentSubmissionID = nil
		}

		rm.State = domain.RoomStatePrepare
		rm.PrepareStartedAt = &now

		return nil
	})
	if err != nil {
		return Snapshot{}, err
	}

	return snapshotFromRecord(&rm), nil
}

type PauseParams struct {
	RoomID string
	Token  string
}

// Pause freezes the room without touching the clip fields. A pause during
// the prepare window keeps prepare_started_at, but clients treat the
// countdown as over because the state is no longer prepare.
func (s service) Pause(ctx context.Context, params *PauseParams) (Snapshot, error) {
	rm, err := s.commit(ctx, params.RoomID, params.Token, func(ctx context.Context, rm *room.Room) error {
		rm.State = domain.RoomStatePaused
		return nil
	})
	if err != nil {
		return Snapshot{}, err
	}

	return snapshotFromRecord(&rm), nil
}

type StopParams struct {
	RoomID string
	Token  string
}

// Stop resets the room to idle and retires the current submission to
// played.
func (s service) Stop(ctx context.Context, params *StopParams) (Snapshot, error) {
	var playedSubmissionID *string

	rm, err := s.commit(ctx, params.RoomID, params.Token, func(ctx context.Context, rm *room.Room) error {
		playedSubmissionID = rm.CurrentSubmissionID

		rm.State = domain.RoomStateIdle
		rm.VideoID = nil
		rm.StartS = 0
		rm.EndS = nil
		rm.PrepareStartedAt = nil
		rm.CurrentSubmissionID = nil

		return nil
	})
	if err != nil {
		return Snapshot{}, err
	}

	if playedSubmissionID != nil {
		if err := s.markSubmissionPlayed(ctx, params.RoomID, *playedSubmissionID); err != nil {
			// The room itself committed; losing the audit transition must not
			// fail the command, but it must not go unnoticed either.
			slog.ErrorContext(ctx, "failed to mark submission played",
				"room_id", params.RoomID,
				"submission_id", *playedSubmissionID,
				"err", err,
			)
		}
	}

	return snapshotFromRecord(&rm), nil
}

func (s service) markSubmissionPlayed(ctx context.Context, roomID, submissionID string) error {
	sub, err := s.roomRepo.GetSubmission(ctx, &room.GetSubmissionParams{
		SubmissionID: submissionID,
		RoomID:       roomID,
	})
	if err != nil {
		return fmt.Errorf("failed to get submission: %w", err)
	}

	if !sub.Status.CanTransitionTo(domain.SubmissionStatusPlayed) {
		return fmt.Errorf("submission is %s and cannot be marked played", sub.Status)
	}

	if err := s.roomRepo.UpdateSubmissionStatus(ctx, &room.UpdateSubmissionStatusParams{
		SubmissionID: submissionID,
		RoomID:       roomID,
		Status:       domain.SubmissionStatusPlayed,
	}); err != nil {
		return fmt.Errorf("failed to update submission status: %w", err)
	}

	return nil
}

// commit runs one host command as a read-validate-write cycle committed with
// a compare-and-swap on seq. Losing the race re-runs the whole cycle,
// authorization included, at most casRetryLimit times; the mutate callback
// must therefore be safe to re-run against a fresh record.
func (s service) commit(ctx context.Context, roomID, token string, mutate func(ctx context.Context, rm *room.Room) error) (room.Room, error) {
	for attempt := 0; attempt < casRetryLimit; attempt++ {
		if err := s.authorize(ctx, roomID, token); err != nil {
			return room.Room{}, err
		}

		rm, err := s.roomRepo.GetRoom(ctx, roomID)
		if err != nil {
			if errors.Is(err, room.ErrRoomNotFound) {
				return room.Room{}, ErrRoomNotFound
			}
			return room.Room{}, fmt.Errorf("failed to get room: %w", err)
		}

		expectedSeq := rm.Seq
		if err := mutate(ctx, &rm); err != nil {
			return room.Room{}, err
		}
		rm.Seq = expectedSeq + 1

		err = s.roomRepo.CompareAndSwapRoom(ctx, &room.CompareAndSwapRoomParams{
			ExpectedSeq: expectedSeq,
			Room:        rm,
		})
		if err == nil {
			return rm, nil
		}
		if errors.Is(err, room.ErrSeqConflict) {
			continue
		}
		if errors.Is(err, room.ErrRoomNotFound) {
			return room.Room{}, ErrRoomNotFound
		}

		return room.Room{}, fmt.Errorf("failed to commit room: %w", err)
	}

	return room.Room{}, ErrConflict
}

func (s service) authorize(ctx context.Context, roomID, token string) error {
	ok, err := s.authorizer.Verify(ctx, roomID, token)
	if err != nil {
		return fmt.Errorf("failed to verify host token: %w", err)
	}
	if !ok {
		return ErrNotAuthorized
	}

	return nil
}
