package room

import (
	"context"
	"errors"
	"fmt"

	"github.com/watchtogether/server/internal/domain"
	"github.com/watchtogether/server/internal/repository/room"
)

type CreateRoomResponse struct {
	RoomID    string
	HostToken string
	Room      Snapshot
}

func (s service) CreateRoom(ctx context.Context) (CreateRoomResponse, error) {
	rm := room.Room{
		ID:         s.roomIDGenerator.GenerateRandomString(roomIDLength),
		State:      domain.RoomStateIdle,
		Seq:        0,
		StartS:     0,
		HostSecret: s.secretGenerator.GenerateRandomString(hostSecretLength),
		CreatedAt:  s.clock.Now().UTC(),
	}

	if err := s.roomRepo.CreateRoom(ctx, &rm); err != nil {
		return CreateRoomResponse{}, fmt.Errorf("failed to create room: %w", err)
	}

	token, err := s.authorizer.Issue(ctx, rm.ID, rm.HostSecret)
	if err != nil {
		return CreateRoomResponse{}, fmt.Errorf("failed to issue host token: %w", err)
	}

	return CreateRoomResponse{
		RoomID:    rm.ID,
		HostToken: token,
		Room:      snapshotFromRecord(&rm),
	}, nil
}

func (s service) GetRoom(ctx context.Context, roomID string) (Snapshot, error) {
	rm, err := s.roomRepo.GetRoom(ctx, roomID)
	if err != nil {
		if errors.Is(err, room.ErrRoomNotFound) {
			return Snapshot{}, ErrRoomNotFound
		}
		return Snapshot{}, fmt.Errorf("failed to get room: %w", err)
	}

	return snapshotFromRecord(&rm), nil
}
