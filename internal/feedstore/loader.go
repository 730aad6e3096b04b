package feedstore

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/botlane/botlane/pkg/champion"
	"github.com/botlane/botlane/pkg/config"
	"github.com/botlane/botlane/pkg/matchup"
)

// maxLoggedWarnings caps per-record warnings in the log; the rest are
// summarized by count.
const maxLoggedWarnings = 10

// NewStorage creates the Storage selected by cfg.
func NewStorage(ctx context.Context, cfg config.StorageConfig) (Storage, error) {
	switch cfg.Backend {
	case "", config.BackendLocal:
		return NewLocalStorage(cfg.Dir), nil
	case config.BackendS3:
		return NewS3Storage(ctx, S3Config{
			Bucket:    cfg.Bucket,
			Region:    cfg.Region,
			Endpoint:  cfg.Endpoint,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
		})
	case config.BackendGCS:
		return NewGCSStorage(ctx, cfg.Bucket)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// BuildRepository normalizes a parsed feed against roster.
func BuildRepository(feed *matchup.RawFeed, roster *champion.Roster) *matchup.Repository {
	return matchup.Build(feed, champion.NewNormalizer(roster), champion.Names(roster.BotLaners()))
}

// Loader fetches feeds from storage and builds repositories from them.
type Loader struct {
	storage Storage
	roster  *champion.Roster
	logger  *slog.Logger
}

// NewLoader creates a Loader. A nil logger discards log output.
func NewLoader(storage Storage, roster *champion.Roster, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loader{storage: storage, roster: roster, logger: logger}
}

// Load fetches the feed stored under name and builds its repository.
func (l *Loader) Load(ctx context.Context, name string) (*matchup.Repository, error) {
	data, err := l.storage.GetFeed(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("fetch feed %s: %w", name, err)
	}
	feed, err := matchup.ParseFeed(data)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", name, err)
	}
	LogWarnings(l.logger, name, feed)

	repo := BuildRepository(feed, l.roster)
	stats := repo.Stats()
	l.logger.Info("feed loaded",
		"feed", name,
		"patch", repo.Patch,
		"version", repo.Version,
		"bot_laners", stats.BotLaners,
		"supports", stats.Supports,
	)
	return repo, nil
}

// Push validates data as a feed and stores it under name. A feed that
// names its patch is also stored under the patch, so older patches stay
// addressable after "latest" moves on.
func (l *Loader) Push(ctx context.Context, name string, data []byte) (*matchup.RawFeed, error) {
	feed, err := matchup.ParseFeed(data)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	LogWarnings(l.logger, name, feed)

	names := []string{name}
	if feed.Patch != "" && feed.Patch != name {
		names = append(names, feed.Patch)
	}
	for _, n := range names {
		if err := l.storage.PutFeed(ctx, n, data); err != nil {
			return nil, fmt.Errorf("store feed %s: %w", n, err)
		}
	}
	l.logger.Info("feed stored", "names", names, "version", feed.Version)
	return feed, nil
}

// Pull returns the raw bytes of the feed stored under name.
func (l *Loader) Pull(ctx context.Context, name string) ([]byte, error) {
	data, err := l.storage.GetFeed(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("fetch feed %s: %w", name, err)
	}
	return data, nil
}

// LoadFile reads a feed from a local file and builds its repository.
func LoadFile(path string, roster *champion.Roster, logger *slog.Logger) (*matchup.Repository, error) {
	feed, err := matchup.LoadFeed(path)
	if err != nil {
		return nil, err
	}
	if logger != nil {
		LogWarnings(logger, path, feed)
	}
	return BuildRepository(feed, roster), nil
}

// LogWarnings reports the records a feed dropped while parsing.
func LogWarnings(logger *slog.Logger, name string, feed *matchup.RawFeed) {
	for i, w := range feed.Warnings {
		if i == maxLoggedWarnings {
			logger.Warn("more feed records dropped", "feed", name, "count", len(feed.Warnings)-i)
			return
		}
		logger.Warn("feed record dropped", "feed", name, "reason", w)
	}
}
