// Command botlaned is the hosted botlane service. It serves the
// recommendations and drafts API with drafts in Postgres and an optional
// Redis tier in front of the scoring engines.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/botlane/botlane/internal/api"
	"github.com/botlane/botlane/internal/cache"
	"github.com/botlane/botlane/internal/drafts"
	"github.com/botlane/botlane/internal/feedstore"
	"github.com/botlane/botlane/internal/platform"
	"github.com/botlane/botlane/pkg/champion"
	"github.com/botlane/botlane/pkg/config"
	"github.com/botlane/botlane/pkg/matchup"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(os.Stdout, cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	roster := champion.DefaultRoster()
	weights, err := cfg.Weights()
	if err != nil {
		return err
	}

	repo, err := loadFeed(ctx, cfg, roster, logger)
	if err != nil {
		return err
	}

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	svc := drafts.NewService(store, drafts.WithRoster(roster))
	defer svc.Close()

	rankings := cache.NewRankings(&cache.RankingsDeps{
		Size:   cfg.Cache.Size,
		TTL:    cfg.Cache.TTL,
		Redis:  connectRedis(ctx, cfg.Cache.RedisURL, logger),
		Roster: roster,
		Logger: logger,
	})

	handler := api.NewHandler(&api.HandlerDeps{
		Roster:  roster,
		Repo:    repo,
		Weights: weights,
		Drafts:  svc,
		Cache:   rankings,
		Logger:  logger,
	})

	mux := http.NewServeMux()
	mux.Handle("/api/", handler.Routes(cfg.Server.APIKey))
	mux.HandleFunc("GET /healthz", healthHandler(svc))

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting botlaned", "port", cfg.Server.Port, "feed_version", repo.Version, "patch", repo.Patch)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
	return nil
}

// loadConfig reads .botlane/config.yaml when present, then .env and the
// environment.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if cwd, err := os.Getwd(); err == nil {
		if path := config.FindConfigFile(cwd); path != "" {
			loaded, err := config.Load(path)
			if err != nil {
				return nil, err
			}
			cfg = loaded
		}
	}
	if err := cfg.LoadEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func newLogger(w io.Writer, level string) *slog.Logger {
	var l slog.Level
	switch strings.ToLower(level) {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: l}))
}

func loadFeed(ctx context.Context, cfg *config.Config, roster *champion.Roster, logger *slog.Logger) (*matchup.Repository, error) {
	if cfg.Feed.Path != "" {
		repo, err := feedstore.LoadFile(cfg.Feed.Path, roster, logger)
		if err != nil {
			return nil, fmt.Errorf("load feed: %w", err)
		}
		logger.Info("feed loaded", "path", cfg.Feed.Path, "version", repo.Version, "patch", repo.Patch)
		return repo, nil
	}

	storage, err := feedstore.NewStorage(ctx, cfg.Feed.Storage)
	if err != nil {
		return nil, fmt.Errorf("open feed storage: %w", err)
	}
	if c, ok := storage.(io.Closer); ok {
		defer c.Close()
	}
	return feedstore.NewLoader(storage, roster, logger).Load(ctx, cfg.Feed.Name)
}

// openStore connects to Postgres when a database URL is configured and
// falls back to the SQLite file otherwise.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (drafts.Store, error) {
	if cfg.Drafts.DatabaseURL == "" {
		logger.Warn("DATABASE_URL not set, storing drafts in SQLite", "path", cfg.Drafts.Path)
		return drafts.OpenSQLite(cfg.Drafts.Path)
	}

	db, err := platform.OpenPostgres(ctx, cfg.Drafts.DatabaseURL)
	if err != nil {
		return nil, err
	}
	return &postgresStore{PostgresStore: drafts.NewPostgresStore(db), db: db}, nil
}

// postgresStore closes the pool it was opened with.
type postgresStore struct {
	*drafts.PostgresStore
	db *sql.DB
}

func (s *postgresStore) Close() error { return s.db.Close() }

// connectRedis returns nil, disabling the Redis tier, when no URL is set or
// the server is unreachable.
func connectRedis(ctx context.Context, url string, logger *slog.Logger) cache.RedisClient {
	if url == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	client, err := cache.NewRedis(ctx, url)
	if err != nil {
		logger.Warn("redis unavailable, caching in memory only", "error", err)
		return nil
	}
	logger.Info("redis connected")
	return client
}

func healthHandler(svc *drafts.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := svc.Ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"status": "unavailable", "error": "draft store unreachable"})
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}
