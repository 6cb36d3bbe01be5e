package syncer

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/watchtogether/server/internal/domain"
	roomservice "github.com/watchtogether/server/internal/service/room"
)

const DefaultInterval = time.Second

type iRoomFetcher interface {
	FetchRoom(ctx context.Context, roomID string) (roomservice.Snapshot, error)
}

// Status is what one poll tick derives for the viewer: the latest snapshot
// plus the alignment computed from it and the local clock. It is advisory
// display state, recomputed from scratch every tick.
type Status struct {
	Room             roomservice.Snapshot
	State            domain.RoomState
	TargetOffset     float64
	PrepareRemaining int
	FetchedAt        time.Time
}

type Config struct {
	RoomID   string
	Interval time.Duration
	OnStatus func(Status)
}

// Syncer is the per-client polling loop. It never writes shared state; a
// failed poll is simply retried on the next tick.
type Syncer struct {
	fetcher  iRoomFetcher
	clock    clockwork.Clock
	logger   *slog.Logger
	roomID   string
	interval time.Duration
	onStatus func(Status)
	lastSeq  int
}

func New(fetcher iRoomFetcher, clock clockwork.Clock, logger *slog.Logger, cfg *Config) *Syncer {
	interval := cfg.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	return &Syncer{
		fetcher:  fetcher,
		clock:    clock,
		logger:   logger,
		roomID:   cfg.RoomID,
		interval: interval,
		onStatus: cfg.OnStatus,
		lastSeq:  -1,
	}
}

// Run polls until the context is cancelled. The first poll happens
// immediately so a late joiner converges without waiting a full interval.
func (s *Syncer) Run(ctx context.Context) error {
	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		s.tick(ctx)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.Chan():
		}
	}
}

func (s *Syncer) tick(ctx context.Context) {
	snapshot, err := s.fetcher.FetchRoom(ctx, s.roomID)
	if err != nil {
		s.logger.DebugContext(ctx, "poll failed, retrying next tick", "room_id", s.roomID, "err", err)
		return
	}

	// A read older than what we already saw can only come from a lagging
	// replica; the next tick self-heals.
	if snapshot.Seq < s.lastSeq {
		s.logger.DebugContext(ctx, "stale snapshot skipped", "room_id", s.roomID, "seq", snapshot.Seq, "last_seq", s.lastSeq)
		return
	}
	s.lastSeq = snapshot.Seq

	now := s.clock.Now()
	alignment := domain.Align(snapshot.Playback(), now)

	s.onStatus(Status{
		Room:             snapshot,
		State:            domain.EffectiveState(snapshot.Playback(), now),
		TargetOffset:     alignment.TargetOffset,
		PrepareRemaining: alignment.PrepareRemaining,
		FetchedAt:        now,
	})
}
