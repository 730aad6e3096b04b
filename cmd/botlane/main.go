// Package main provides the botlane CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "botlane",
		Short: "Bot lane pick recommendations from matchup statistics",
		Long: `Botlane ranks marksmen and supports for a lane from historical win-rate
deltas, weighting every signal by its sample size.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newBottomCmd(),
		newSupportCmd(),
		newDiffCmd(),
		newFeedCmd(),
		newDraftCmd(),
		newServeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
