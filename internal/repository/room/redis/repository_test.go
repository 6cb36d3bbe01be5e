package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watchtogether/server/internal/domain"
	"github.com/watchtogether/server/internal/repository/room"
)

func newTestRepo(t *testing.T) *repo {
	t.Helper()

	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	rc := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	t.Cleanup(func() { rc.Close() })

	return NewRepo(rc, time.Hour)
}

func strPtr(v string) *string {
	return &v
}

func intPtr(v int) *int {
	return &v
}

func timePtr(v time.Time) *time.Time {
	return &v
}

func TestRoomRoundtrip(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	created := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	rm := room.Room{
		ID:         "abcd1234",
		State:      domain.RoomStateIdle,
		Seq:        0,
		StartS:     0,
		HostSecret: "secret",
		CreatedAt:  created,
	}
	require.NoError(t, r.CreateRoom(ctx, &rm))

	got, err := r.GetRoom(ctx, "abcd1234")
	require.NoError(t, err)
	assert.Equal(t, rm, got)
	assert.Nil(t, got.VideoID)
	assert.Nil(t, got.EndS)
	assert.Nil(t, got.PrepareStartedAt)
	assert.Nil(t, got.CurrentSubmissionID)
}

func TestCreateRoomAlreadyExists(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	rm := room.Room{ID: "abcd1234", State: domain.RoomStateIdle, HostSecret: "s", CreatedAt: time.Now().UTC()}
	require.NoError(t, r.CreateRoom(ctx, &rm))

	err := r.CreateRoom(ctx, &rm)
	assert.ErrorIs(t, err, room.ErrRoomAlreadyExists)
}

func TestGetRoomNotFound(t *testing.T) {
	r := newTestRepo(t)

	_, err := r.GetRoom(context.Background(), "missing")
	assert.ErrorIs(t, err, room.ErrRoomNotFound)
}

func TestCompareAndSwapRoom(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	created := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	rm := room.Room{
		ID:         "abcd1234",
		State:      domain.RoomStateIdle,
		Seq:        5,
		StartS:     0,
		HostSecret: "secret",
		CreatedAt:  created,
	}
	require.NoError(t, r.CreateRoom(ctx, &rm))

	next := rm
	next.State = domain.RoomStatePrepare
	next.Seq = 6
	next.VideoID = strPtr("dQw4w9WgXcQ")
	next.StartS = 10
	next.EndS = intPtr(40)
	next.PrepareStartedAt = timePtr(created.Add(time.Minute))
	next.CurrentSubmissionID = strPtr("sub-1")

	require.NoError(t, r.CompareAndSwapRoom(ctx, &room.CompareAndSwapRoomParams{
		ExpectedSeq: 5,
		Room:        next,
	}))

	got, err := r.GetRoom(ctx, "abcd1234")
	require.NoError(t, err)
	assert.Equal(t, next, got)
}

func TestCompareAndSwapRoomConflictLeavesRecordUntouched(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	rm := room.Room{
		ID:         "abcd1234",
		State:      domain.RoomStateIdle,
		Seq:        5,
		HostSecret: "secret",
		CreatedAt:  time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, r.CreateRoom(ctx, &rm))

	next := rm
	next.State = domain.RoomStatePaused
	next.Seq = 5

	err := r.CompareAndSwapRoom(ctx, &room.CompareAndSwapRoomParams{
		ExpectedSeq: 4,
		Room:        next,
	})
	assert.ErrorIs(t, err, room.ErrSeqConflict)

	got, err := r.GetRoom(ctx, "abcd1234")
	require.NoError(t, err)
	assert.Equal(t, rm, got, "a conflicting write must not change the record")
}

func TestCompareAndSwapRoomNotFound(t *testing.T) {
	r := newTestRepo(t)

	err := r.CompareAndSwapRoom(context.Background(), &room.CompareAndSwapRoomParams{
		ExpectedSeq: 0,
		Room:        room.Room{ID: "missing", State: domain.RoomStateIdle, CreatedAt: time.Now().UTC()},
	})
	assert.ErrorIs(t, err, room.ErrRoomNotFound)
}

func TestCompareAndSwapRoomClearsNullableFields(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	created := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	rm := room.Room{
		ID:                  "abcd1234",
		State:               domain.RoomStatePrepare,
		Seq:                 3,
		VideoID:             strPtr("dQw4w9WgXcQ"),
		StartS:              10,
		EndS:                intPtr(40),
		PrepareStartedAt:    timePtr(created),
		CurrentSubmissionID: strPtr("sub-1"),
		HostSecret:          "secret",
		CreatedAt:           created,
	}
	require.NoError(t, r.CreateRoom(ctx, &rm))

	stopped := room.Room{
		ID:         "abcd1234",
		State:      domain.RoomStateIdle,
		Seq:        4,
		StartS:     0,
		HostSecret: "secret",
		CreatedAt:  created,
	}
	require.NoError(t, r.CompareAndSwapRoom(ctx, &room.CompareAndSwapRoomParams{
		ExpectedSeq: 3,
		Room:        stopped,
	}))

	got, err := r.GetRoom(ctx, "abcd1234")
	require.NoError(t, err)
	assert.Nil(t, got.VideoID)
	assert.Nil(t, got.EndS)
	assert.Nil(t, got.PrepareStartedAt)
	assert.Nil(t, got.CurrentSubmissionID)
}

func TestSubmissionRoundtripAndListOrder(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"sub-1", "sub-2", "sub-3"} {
		sub := room.Submission{
			ID:        id,
			RoomID:    "abcd1234",
			Status:    domain.SubmissionStatusPending,
			VideoID:   "dQw4w9WgXcQ",
			StartS:    0,
			EndS:      30,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}
		if id == "sub-2" {
			sub.DisplayName = strPtr("viewer")
			sub.Message = strPtr("play this one")
		}
		require.NoError(t, r.CreateSubmission(ctx, &sub))
	}

	got, err := r.GetSubmission(ctx, &room.GetSubmissionParams{SubmissionID: "sub-2", RoomID: "abcd1234"})
	require.NoError(t, err)
	require.NotNil(t, got.DisplayName)
	assert.Equal(t, "viewer", *got.DisplayName)
	require.NotNil(t, got.Message)
	assert.Equal(t, "play this one", *got.Message)

	subs, err := r.ListSubmissions(ctx, "abcd1234")
	require.NoError(t, err)
	require.Len(t, subs, 3)
	assert.Equal(t, "sub-1", subs[0].ID)
	assert.Equal(t, "sub-2", subs[1].ID)
	assert.Equal(t, "sub-3", subs[2].ID)
}

func TestGetSubmissionIsRoomScoped(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	sub := room.Submission{
		ID:        "sub-1",
		RoomID:    "room-a",
		Status:    domain.SubmissionStatusPending,
		VideoID:   "dQw4w9WgXcQ",
		StartS:    0,
		EndS:      30,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, r.CreateSubmission(ctx, &sub))

	_, err := r.GetSubmission(ctx, &room.GetSubmissionParams{SubmissionID: "sub-1", RoomID: "room-b"})
	assert.ErrorIs(t, err, room.ErrSubmissionNotFound)
}

func TestUpdateSubmissionStatus(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	sub := room.Submission{
		ID:        "sub-1",
		RoomID:    "abcd1234",
		Status:    domain.SubmissionStatusPending,
		VideoID:   "dQw4w9WgXcQ",
		StartS:    0,
		EndS:      30,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, r.CreateSubmission(ctx, &sub))

	require.NoError(t, r.UpdateSubmissionStatus(ctx, &room.UpdateSubmissionStatusParams{
		SubmissionID: "sub-1",
		RoomID:       "abcd1234",
		Status:       domain.SubmissionStatusApproved,
	}))

	got, err := r.GetSubmission(ctx, &room.GetSubmissionParams{SubmissionID: "sub-1", RoomID: "abcd1234"})
	require.NoError(t, err)
	assert.Equal(t, domain.SubmissionStatusApproved, got.Status)

	err = r.UpdateSubmissionStatus(ctx, &room.UpdateSubmissionStatusParams{
		SubmissionID: "missing",
		RoomID:       "abcd1234",
		Status:       domain.SubmissionStatusApproved,
	})
	assert.ErrorIs(t, err, room.ErrSubmissionNotFound)
}
