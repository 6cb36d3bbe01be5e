package controller

import (
	"context"
	"log/slog"

	"github.com/watchtogether/server/internal/service/room"
	"github.com/watchtogether/server/pkg/validator"
)

type iRoomService interface {
	CreateRoom(context.Context) (room.CreateRoomResponse, error)
	GetRoom(context.Context, string) (room.Snapshot, error)
	Load(context.Context, *room.LoadParams) (room.Snapshot, error)
	Pause(context.Context, *room.PauseParams) (room.Snapshot, error)
	Stop(context.Context, *room.StopParams) (room.Snapshot, error)
	Submit(context.Context, *room.SubmitParams) (room.Submission, error)
	Approve(context.Context, *room.ModerateParams) (room.Submission, error)
	Reject(context.Context, *room.ModerateParams) (room.Submission, error)
	ListQueue(context.Context, *room.ListQueueParams) (room.ListQueueResponse, error)
}

type controller struct {
	roomService iRoomService
	validate    *validator.Validator
	logger      *slog.Logger
	appURL      string
}

func NewController(roomService iRoomService, logger *slog.Logger, appURL string) *controller {
	return &controller{
		roomService: roomService,
		validate:    validator.NewValidator(),
		logger:      logger,
		appURL:      appURL,
	}
}
