package app

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/cors"

	"github.com/watchtogether/server/internal/controller"
	roomRedis "github.com/watchtogether/server/internal/repository/room/redis"
	"github.com/watchtogether/server/internal/service/room"
	"github.com/watchtogether/server/pkg/ctxlogger"
	"github.com/watchtogether/server/pkg/redisclient"
)

const (
	AuthSchemeSecret = "secret"
	AuthSchemeJWT    = "jwt"
)

type AppConfig struct {
	Secret        string `json:"-"`
	AuthScheme    string `json:"auth_scheme"`
	Host          string `json:"host"`
	Port          int    `json:"port"`
	AppURL        string `json:"app_url"`
	LogLevel      string `json:"log_level"`
	RedisPort     int    `json:"redis_port"`
	RedisHost     string `json:"redis_host"`
	RedisPassword string `json:"-"`
}

func (cfg *AppConfig) Validate() error {
	switch cfg.AuthScheme {
	case AuthSchemeSecret:
	case AuthSchemeJWT:
		if cfg.Secret == "" {
			return fmt.Errorf("secret is required for the jwt auth scheme")
		}
	default:
		return fmt.Errorf("auth scheme must be %q or %q", AuthSchemeSecret, AuthSchemeJWT)
	}
	if cfg.AppURL == "" {
		return fmt.Errorf("app url must not be empty")
	}

	return nil
}

type iHostAuthorizer interface {
	Issue(ctx context.Context, roomID, hostSecret string) (string, error)
	Verify(ctx context.Context, roomID, token string) (bool, error)
}

func Run(ctx context.Context, cfg *AppConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	logLevel := slog.LevelInfo
	if err := logLevel.UnmarshalText([]byte(strings.ToUpper(cfg.LogLevel))); err != nil {
		log.Fatal(err)
	}

	h := ctxlogger.ContextHandler{
		Handler: slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		}),
	}

	logger := slog.New(&h)
	slog.SetDefault(logger)

	rc, err := redisclient.NewRedisClient(&redisclient.Config{
		Port:     cfg.RedisPort,
		Host:     cfg.RedisHost,
		Password: cfg.RedisPassword,
	})
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}
	defer rc.Close()

	roomRepo := roomRedis.NewRepo(rc, 24*14*time.Hour)

	var authorizer iHostAuthorizer
	switch cfg.AuthScheme {
	case AuthSchemeJWT:
		authorizer = room.NewJWTAuthorizer(cfg.Secret)
	default:
		authorizer = room.NewSecretAuthorizer(roomRepo)
	}

	roomService := room.NewService(roomRepo, authorizer, clockwork.NewRealClock())
	controller := controller.NewController(roomService, logger, cfg.AppURL)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})

	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler: corsHandler.Handler(controller.Mux()),
	}

	// graceful shutdown
	serverCtx, serverStopCtx := context.WithCancel(ctx)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		<-sig

		shutdownCtx, c := context.WithTimeout(serverCtx, 30*time.Second)
		defer c()

		go func() {
			<-shutdownCtx.Done()
			if shutdownCtx.Err() == context.DeadlineExceeded {
				log.Fatal("graceful shutdown timed out.. forcing exit.")
			}
		}()

		err := server.Shutdown(shutdownCtx)
		if err != nil {
			log.Fatal(err)
		}
		serverStopCtx()
	}()

	slog.InfoContext(serverCtx, "starting server", "address", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	<-serverCtx.Done()

	return nil
}
