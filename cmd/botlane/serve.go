package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/botlane/botlane/internal/api"
	"github.com/botlane/botlane/internal/cache"
	"github.com/botlane/botlane/pkg/champion"
)

func newServeCmd() *cobra.Command {
	var (
		port string
		feed string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start a local API server",
		Long: `Serves recommendations, champion and matchup lookups and the drafts API on
localhost. Drafts are stored in the same SQLite file as "botlane draft".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), port, feed)
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "Port to serve on (default: server.port from config)")
	cmd.Flags().StringVar(&feed, "feed", "", "Path to a matchup feed file (default: feed.path or stored feed)")

	return cmd
}

func runServe(ctx context.Context, port, feed string) error {
	cfg := loadConfig()
	port = firstNonEmpty(port, cfg.Server.Port)

	weights, err := cfg.Weights()
	if err != nil {
		return err
	}
	repo, err := loadRepository(ctx, cfg, feed)
	if err != nil {
		return err
	}
	svc, err := openDrafts(cfg)
	if err != nil {
		return err
	}
	defer svc.Close()

	roster := champion.DefaultRoster()
	logger := cliLogger()
	handler := api.NewHandler(&api.HandlerDeps{
		Roster:  roster,
		Repo:    repo,
		Weights: weights,
		Drafts:  svc,
		Cache: cache.NewRankings(&cache.RankingsDeps{
			Size:   cfg.Cache.Size,
			TTL:    cfg.Cache.TTL,
			Roster: roster,
			Logger: logger,
		}),
		Logger: logger,
	})

	srv := &http.Server{
		Addr:              "localhost:" + port,
		Handler:           handler.Routes(cfg.Server.APIKey),
		ReadHeaderTimeout: 10 * time.Second,
	}

	fmt.Fprintf(os.Stderr, "Botlane API server\n")
	fmt.Fprintf(os.Stderr, "  Feed:       %s (patch %s)\n", repo.Version, firstNonEmpty(repo.Patch, "unknown"))
	fmt.Fprintf(os.Stderr, "  Drafts:     %s\n", cfg.Drafts.Path)
	fmt.Fprintf(os.Stderr, "  Listening:  http://localhost:%s\n", port)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
