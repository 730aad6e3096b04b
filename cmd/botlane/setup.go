package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/botlane/botlane/internal/drafts"
	"github.com/botlane/botlane/internal/feedstore"
	"github.com/botlane/botlane/pkg/champion"
	"github.com/botlane/botlane/pkg/config"
	"github.com/botlane/botlane/pkg/matchup"
)

// loadConfig reads the nearest .botlane/config.yaml above the working
// directory and applies environment overrides. Problems degrade to defaults
// with a warning.
func loadConfig() *config.Config {
	cfg := config.DefaultConfig()

	if cwd, err := os.Getwd(); err == nil {
		if cfgFile := config.FindConfigFile(cwd); cfgFile != "" {
			loaded, err := config.Load(cfgFile)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
			} else {
				cfg = loaded
			}
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: ignoring environment: %v\n", err)
	}
	return cfg
}

// cliLogger reports dropped feed records and other warnings on stderr.
func cliLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

// openLoader connects to the configured feed storage. The returned func
// releases the backend.
func openLoader(ctx context.Context, cfg *config.Config) (*feedstore.Loader, func(), error) {
	storage, err := feedstore.NewStorage(ctx, cfg.Feed.Storage)
	if err != nil {
		return nil, nil, fmt.Errorf("opening feed storage: %w", err)
	}
	release := func() {
		if c, ok := storage.(io.Closer); ok {
			_ = c.Close()
		}
	}
	return feedstore.NewLoader(storage, champion.DefaultRoster(), cliLogger()), release, nil
}

// loadRepository builds the matchup repository from, in order: the --feed
// flag, feed.path in config, or the named feed in storage.
func loadRepository(ctx context.Context, cfg *config.Config, feedFlag string) (*matchup.Repository, error) {
	if path := firstNonEmpty(feedFlag, cfg.Feed.Path); path != "" {
		repo, err := feedstore.LoadFile(path, champion.DefaultRoster(), cliLogger())
		if err != nil {
			return nil, fmt.Errorf("loading feed: %w", err)
		}
		return repo, nil
	}
	return loadStoredFeed(ctx, cfg, cfg.Feed.Name)
}

func loadStoredFeed(ctx context.Context, cfg *config.Config, name string) (*matchup.Repository, error) {
	loader, release, err := openLoader(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer release()

	repo, err := loader.Load(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("loading feed %q (set --feed or feed.path for a local file): %w", name, err)
	}
	return repo, nil
}

// loadFeedRef loads a feed given either a file path or a stored feed name.
func loadFeedRef(ctx context.Context, cfg *config.Config, ref string) (*matchup.Repository, error) {
	if _, err := os.Stat(ref); err == nil {
		return feedstore.LoadFile(ref, champion.DefaultRoster(), cliLogger())
	}
	return loadStoredFeed(ctx, cfg, ref)
}

// openDrafts opens the local SQLite draft store.
func openDrafts(cfg *config.Config) (*drafts.Service, error) {
	store, err := drafts.OpenSQLite(cfg.Drafts.Path)
	if err != nil {
		return nil, fmt.Errorf("opening drafts: %w", err)
	}
	return drafts.NewService(store, drafts.WithRoster(champion.DefaultRoster())), nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
