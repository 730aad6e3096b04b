package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/botlane/botlane/pkg/champion"
	"github.com/botlane/botlane/pkg/matchup"
	"github.com/botlane/botlane/pkg/scoring"
	"github.com/botlane/botlane/pkg/surface"
)

type recommendOpts struct {
	ally         string
	enemySupport string
	enemyBottom  string
	threat       string
	limit        int
	outputFmt    string
	feed         string
}

func newBottomCmd() *cobra.Command {
	return newRecommendCmd(champion.RoleADC, "bottom", "Rank marksmen for your lane",
		`Ranks every marksman against the picks made so far: your support,
the enemy support and bot laner, and the enemy team's main threat.`,
		"Your support (name or id)")
}

func newSupportCmd() *cobra.Command {
	return newRecommendCmd(champion.RoleSupport, "support", "Rank supports for your lane",
		`Ranks every support against the picks made so far: your bot laner,
the enemy support and bot laner, and the enemy team's main threat.`,
		"Your bot laner (name or id)")
}

func newRecommendCmd(role champion.Role, use, short, long, allyUsage string) *cobra.Command {
	var opts recommendOpts

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long:  long,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecommend(cmd.Context(), role, opts)
		},
	}

	cmd.Flags().StringVar(&opts.ally, "ally", "", allyUsage)
	cmd.Flags().StringVar(&opts.enemySupport, "enemy-support", "", "Enemy support")
	cmd.Flags().StringVar(&opts.enemyBottom, "enemy-bottom", "", "Enemy bot laner")
	cmd.Flags().StringVar(&opts.threat, "threat", "", "Enemy team threat: assassin, tank or poke")
	cmd.Flags().IntVar(&opts.limit, "limit", 10, "Number of picks to show (0 for all)")
	cmd.Flags().StringVar(&opts.outputFmt, "output", "text", "Output format: text, json or markdown")
	cmd.Flags().StringVar(&opts.feed, "feed", "", "Path to a matchup feed file (default: feed.path or stored feed)")

	return cmd
}

func runRecommend(ctx context.Context, role champion.Role, opts recommendOpts) error {
	renderer, err := surface.ForFormat(opts.outputFmt)
	if err != nil {
		return err
	}
	if opts.limit < 0 {
		return fmt.Errorf("--limit must not be negative")
	}

	cfg := loadConfig()
	weights, err := cfg.Weights()
	if err != nil {
		return err
	}
	repo, err := loadRepository(ctx, cfg, opts.feed)
	if err != nil {
		return err
	}

	engine := newEngine(role, repo, weights)
	sel, err := engine.Resolve(scoring.Query{
		Ally:         opts.ally,
		EnemySupport: opts.enemySupport,
		EnemyBottom:  opts.enemyBottom,
		Threat:       opts.threat,
	})
	if err != nil {
		return err
	}

	ranking := engine.Rank(sel).Top(opts.limit)
	return renderer.Render(os.Stdout, ranking)
}

func newEngine(role champion.Role, repo *matchup.Repository, w scoring.Weights) *scoring.Engine {
	if role == champion.RoleSupport {
		return scoring.NewSupportEngine(repo, champion.DefaultRoster(), w)
	}
	return scoring.NewBottomEngine(repo, champion.DefaultRoster(), w)
}

