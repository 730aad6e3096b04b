package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/botlane/botlane/internal/feedstore"
	"github.com/botlane/botlane/pkg/champion"
	"github.com/botlane/botlane/pkg/matchup"
)

func newFeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Validate and move matchup feeds",
		Long: `Feeds are JSON documents of pairwise win-rate deltas. They live in files
or in the configured storage backend (local directory, S3 or GCS).`,
	}
	cmd.AddCommand(newFeedValidateCmd(), newFeedPushCmd(), newFeedPullCmd())
	return cmd
}

func newFeedValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Parse a feed and report what it contains",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFeedValidate(args[0])
		},
	}
}

func runFeedValidate(path string) error {
	feed, err := matchup.LoadFeed(path)
	if err != nil {
		return err
	}
	repo := feedstore.BuildRepository(feed, champion.DefaultRoster())
	printFeedSummary(repo, feed)

	for _, w := range feed.Warnings {
		fmt.Printf("  warning: %s\n", w)
	}
	return nil
}

func printFeedSummary(repo *matchup.Repository, feed *matchup.RawFeed) {
	stats := repo.Stats()
	fmt.Printf("Feed %s\n", repo.Version)
	if repo.Patch != "" {
		fmt.Printf("  Patch:           %s\n", repo.Patch)
	}
	fmt.Printf("  Bot laners:      %d (%d records)\n", stats.BotLaners, stats.BottomRecords)
	fmt.Printf("  Supports:        %d (%d records)\n", stats.Supports, stats.SupportRecords)
	fmt.Printf("  Dropped records: %d\n", len(feed.Warnings))
}

func newFeedPushCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "push <file>",
		Short: "Validate a feed and upload it to storage",
		Long: `Uploads the feed under --name. A feed that names its patch is also stored
under the patch, so it stays available to "botlane diff" after newer feeds land.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFeedPush(cmd.Context(), args[0], name)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Stored feed name (default: feed.name from config)")
	return cmd
}

func runFeedPush(ctx context.Context, path, name string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading feed: %w", err)
	}

	cfg := loadConfig()
	loader, release, err := openLoader(ctx, cfg)
	if err != nil {
		return err
	}
	defer release()

	name = firstNonEmpty(name, cfg.Feed.Name)
	fmt.Fprintf(os.Stderr, "Pushing %s to %s storage as %q...\n", path, cfg.Feed.Storage.Backend, name)
	feed, err := loader.Push(ctx, name, data)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Stored feed %s (%d dropped records)\n", feed.Version, len(feed.Warnings))
	return nil
}

func newFeedPullCmd() *cobra.Command {
	var (
		name string
		out  string
	)

	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Download a stored feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFeedPull(cmd.Context(), name, out)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Stored feed name (default: feed.name from config)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default: stdout)")
	return cmd
}

func runFeedPull(ctx context.Context, name, out string) error {
	cfg := loadConfig()
	loader, release, err := openLoader(ctx, cfg)
	if err != nil {
		return err
	}
	defer release()

	data, err := loader.Pull(ctx, firstNonEmpty(name, cfg.Feed.Name))
	if err != nil {
		return err
	}
	if out == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("writing feed: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Feed written to %s\n", out)
	return nil
}
