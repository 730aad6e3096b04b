package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/botlane/botlane/pkg/matchup"
	"github.com/botlane/botlane/pkg/surface"
)

type diffOpts struct {
	base      string
	head      string
	minShift  float64
	outputFmt string
	save      string
}

func newDiffCmd() *cobra.Command {
	var opts diffOpts

	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Compare two matchup feeds",
		Long: `Reports the records that were added, removed or moved by at least
--min-shift points between two feeds. Each side is a feed file or the name of
a stored feed, such as a patch number.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.base, "base", "", "Base feed file or stored name (required)")
	cmd.Flags().StringVar(&opts.head, "head", "latest", "Head feed file or stored name")
	cmd.Flags().Float64Var(&opts.minShift, "min-shift", 0.5, "Minimum delta change, in win-rate points, to report a shift")
	cmd.Flags().StringVar(&opts.outputFmt, "output", "text", "Output format: text, json or markdown")
	cmd.Flags().StringVar(&opts.save, "save", "", "Also write the diff as JSON to this path")
	_ = cmd.MarkFlagRequired("base")

	return cmd
}

func runDiff(ctx context.Context, opts diffOpts) error {
	renderer, err := surface.ForFormat(opts.outputFmt)
	if err != nil {
		return err
	}
	if opts.minShift < 0 {
		return fmt.Errorf("--min-shift must not be negative")
	}

	cfg := loadConfig()
	base, err := loadFeedRef(ctx, cfg, opts.base)
	if err != nil {
		return fmt.Errorf("loading base feed: %w", err)
	}
	head, err := loadFeedRef(ctx, cfg, opts.head)
	if err != nil {
		return fmt.Errorf("loading head feed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Computing diff: %s..%s\n", base.Version, head.Version)
	diff := matchup.ComputeDiff(base, head, opts.minShift)

	if opts.save != "" {
		if err := matchup.SaveDiff(opts.save, diff); err != nil {
			return fmt.Errorf("saving diff: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Diff saved to %s\n", opts.save)
	}
	return renderer.RenderDiff(os.Stdout, diff)
}
