package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/watchtogether/server/internal/syncer"
)

type configVar[T any] struct {
	envKey       string
	flagKey      string
	defaultValue T
}

var (
	serverURL = configVar[string]{
		envKey:       "WATCH_SERVER_URL",
		flagKey:      "server-url",
		defaultValue: "http://localhost:80",
	}
	roomID = configVar[string]{
		envKey:       "WATCH_ROOM_ID",
		flagKey:      "room-id",
		defaultValue: "",
	}
	intervalMs = configVar[int]{
		envKey:       "WATCH_INTERVAL_MS",
		flagKey:      "interval-ms",
		defaultValue: 1000,
	}
	logLevel = configVar[string]{
		envKey:       "WATCH_LOG_LEVEL",
		flagKey:      "log-level",
		defaultValue: "INFO",
	}
)

type watchConfig struct {
	ServerURL  string
	RoomID     string
	IntervalMs int
	LogLevel   string
}

func loadWatchConfig() *watchConfig {
	pflag.String(serverURL.flagKey, serverURL.defaultValue, "Base url of the room server")
	pflag.String(roomID.flagKey, roomID.defaultValue, "Room to watch")
	pflag.Int(intervalMs.flagKey, intervalMs.defaultValue, "Poll interval in milliseconds")
	pflag.String(logLevel.flagKey, logLevel.defaultValue, "Logging level")
	pflag.Parse()

	viper.BindPFlags(pflag.CommandLine)

	viper.BindEnv(serverURL.flagKey, serverURL.envKey)
	viper.BindEnv(roomID.flagKey, roomID.envKey)
	viper.BindEnv(intervalMs.flagKey, intervalMs.envKey)
	viper.BindEnv(logLevel.flagKey, logLevel.envKey)

	viper.SetDefault(serverURL.flagKey, serverURL.defaultValue)
	viper.SetDefault(roomID.flagKey, roomID.defaultValue)
	viper.SetDefault(intervalMs.flagKey, intervalMs.defaultValue)
	viper.SetDefault(logLevel.flagKey, logLevel.defaultValue)

	return &watchConfig{
		ServerURL:  viper.GetString(serverURL.flagKey),
		RoomID:     viper.GetString(roomID.flagKey),
		IntervalMs: viper.GetInt(intervalMs.flagKey),
		LogLevel:   viper.GetString(logLevel.flagKey),
	}
}

func main() {
	cfg := loadWatchConfig()
	if cfg.RoomID == "" {
		log.Fatal("room-id is required")
	}

	level := slog.LevelInfo
	if err := level.UnmarshalText([]byte(strings.ToUpper(cfg.LogLevel))); err != nil {
		log.Fatal(err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var lastSeq int = -1
	s := syncer.New(
		syncer.NewClient(cfg.ServerURL),
		clockwork.NewRealClock(),
		logger,
		&syncer.Config{
			RoomID:   cfg.RoomID,
			Interval: time.Duration(cfg.IntervalMs) * time.Millisecond,
			OnStatus: func(status syncer.Status) {
				// One line per observed change; quiet ticks stay at debug.
				level := slog.LevelDebug
				if status.Room.Seq != lastSeq || status.PrepareRemaining > 0 {
					level = slog.LevelInfo
				}
				lastSeq = status.Room.Seq

				logger.Log(ctx, level, "room",
					"seq", status.Room.Seq,
					"state", status.State,
					"target_s", status.TargetOffset,
					"countdown_s", status.PrepareRemaining,
				)
			},
		},
	)

	if err := s.Run(ctx); err != nil && err != context.Canceled {
		log.Fatal(err)
	}
}
