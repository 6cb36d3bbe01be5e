package redis

import (
	"context"
	"fmt"

	"github.com/watchtogether/server/internal/domain"
	"github.com/watchtogether/server/internal/repository/room"
)

func (r repo) getRoomKey(roomID string) string {
	return "room:" + roomID
}

// roomFields flattens a record into the HSET field list. Nil pointers are
// omitted entirely so absence in the hash means null.
func (r repo) roomFields(rm *room.Room) []interface{} {
	fields := []interface{}{
		"id", rm.ID,
		"state", string(rm.State),
		"seq", rm.Seq,
		"start_s", rm.StartS,
		"host_secret", rm.HostSecret,
		"created_at", rm.CreatedAt.UnixMilli(),
	}
	if rm.VideoID != nil {
		fields = append(fields, "video_id", *rm.VideoID)
	}
	if rm.EndS != nil {
		fields = append(fields, "end_s", *rm.EndS)
	}
	if rm.PrepareStartedAt != nil {
		fields = append(fields, "prepare_started_at", rm.PrepareStartedAt.UnixMilli())
	}
	if rm.CurrentSubmissionID != nil {
		fields = append(fields, "current_submission_id", *rm.CurrentSubmissionID)
	}

	return fields
}

func (r repo) parseRoom(fields map[string]string) (room.Room, error) {
	state, err := domain.ParseRoomState(fields["state"])
	if err != nil {
		return room.Room{}, fmt.Errorf("failed to parse room: %w", err)
	}

	return room.Room{
		ID:                  fields["id"],
		State:               state,
		Seq:                 r.fieldToInt(fields["seq"]),
		VideoID:             r.optionalString(fields, "video_id"),
		StartS:              r.fieldToInt(fields["start_s"]),
		EndS:                r.optionalInt(fields, "end_s"),
		PrepareStartedAt:    r.optionalTime(fields, "prepare_started_at"),
		CurrentSubmissionID: r.optionalString(fields, "current_submission_id"),
		HostSecret:          fields["host_secret"],
		CreatedAt:           r.fieldToTime(fields["created_at"]),
	}, nil
}

func (r repo) CreateRoom(ctx context.Context, rm *room.Room) error {
	roomKey := r.getRoomKey(rm.ID)

	// Claiming the id field first makes creation atomic against a racing
	// create on the same room id.
	claimed, err := r.rc.HSetNX(ctx, roomKey, "id", rm.ID).Result()
	if err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}
	if !claimed {
		return room.ErrRoomAlreadyExists
	}

	pipe := r.rc.TxPipeline()
	pipe.HSet(ctx, roomKey, r.roomFields(rm)...)
	pipe.Expire(ctx, roomKey, r.expireDuration)
	if err := r.executePipe(ctx, pipe); err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}

	return nil
}

func (r repo) GetRoom(ctx context.Context, roomID string) (room.Room, error) {
	roomKey := r.getRoomKey(roomID)
	fields, err := r.rc.HGetAll(ctx, roomKey).Result()
	if err != nil {
		return room.Room{}, fmt.Errorf("failed to get room: %w", err)
	}
	if len(fields) == 0 {
		return room.Room{}, room.ErrRoomNotFound
	}

	r.rc.Expire(ctx, roomKey, r.expireDuration)

	return r.parseRoom(fields)
}

func (r repo) CompareAndSwapRoom(ctx context.Context, params *room.CompareAndSwapRoomParams) error {
	roomKey := r.getRoomKey(params.Room.ID)

	args := make([]interface{}, 0, 21)
	args = append(args, params.ExpectedSeq)
	args = append(args, r.roomFields(&params.Room)...)

	res, err := r.rc.EvalSha(ctx, r.casRoomScript, []string{roomKey}, args...).Int()
	if err != nil {
		return fmt.Errorf("failed to commit room: %w", err)
	}

	switch res {
	case -1:
		return room.ErrRoomNotFound
	case 0:
		return room.ErrSeqConflict
	}

	r.rc.Expire(ctx, roomKey, r.expireDuration)

	return nil
}
