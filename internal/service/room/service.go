package room

import (
	"context"

	"github.com/jonboulle/clockwork"
	"github.com/watchtogether/server/internal/repository/room"
	"github.com/watchtogether/server/pkg/randstr"
)

const (
	roomIDLength     = 8
	hostSecretLength = 32

	// A conflicting write means another host command won the race; each
	// retry re-runs authorization and preconditions from scratch.
	casRetryLimit = 3
)

type iRoomRepo interface {
	CreateRoom(context.Context, *room.Room) error
	GetRoom(context.Context, string) (room.Room, error)
	CompareAndSwapRoom(context.Context, *room.CompareAndSwapRoomParams) error
	CreateSubmission(context.Context, *room.Submission) error
	GetSubmission(context.Context, *room.GetSubmissionParams) (room.Submission, error)
	ListSubmissions(context.Context, string) ([]room.Submission, error)
	UpdateSubmissionStatus(context.Context, *room.UpdateSubmissionStatusParams) error
}

// iHostAuthorizer turns the per-room host secret into a wire token and back.
// Verify must not reveal whether the room exists.
type iHostAuthorizer interface {
	Issue(ctx context.Context, roomID, hostSecret string) (string, error)
	Verify(ctx context.Context, roomID, token string) (bool, error)
}

type iGenerator interface {
	GenerateRandomString(length int) string
}

type service struct {
	roomRepo        iRoomRepo
	authorizer      iHostAuthorizer
	clock           clockwork.Clock
	roomIDGenerator iGenerator
	secretGenerator iGenerator
}

func NewService(roomRepo iRoomRepo, authorizer iHostAuthorizer, clock clockwork.Clock) *service {
	s := service{
		roomRepo:   roomRepo,
		authorizer: authorizer,
		clock:      clock,
	}

	s.roomIDGenerator = randstr.New([]byte("abcdefghijklmnopqrstuvwxyz0123456789"))
	s.secretGenerator = randstr.New([]byte("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"))

	return &s
}
