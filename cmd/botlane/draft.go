package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/botlane/botlane/internal/drafts"
	"github.com/botlane/botlane/pkg/champion"
	"github.com/botlane/botlane/pkg/scoring"
	"github.com/botlane/botlane/pkg/surface"
)

func newDraftCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Manage saved drafts",
		Long:  `Drafts record a lane setup so it can be reviewed later. They are kept in a local SQLite file (drafts.path in config).`,
	}
	cmd.AddCommand(newDraftListCmd(), newDraftShowCmd(), newDraftSaveCmd(), newDraftDeleteCmd())
	return cmd
}

func newDraftListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved drafts, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDrafts(func(svc *drafts.Service) error {
				list, err := svc.List(cmd.Context())
				if err != nil {
					return err
				}
				if len(list) == 0 {
					fmt.Fprintln(os.Stderr, "No saved drafts.")
					return nil
				}
				tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tNAME\tADC\tSUPPORT\tVS\tCREATED")
				for _, d := range list {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
						d.ID, d.Name, d.ADCChampion, deref(d.AllySupport), lane(deref(d.EnemyADC), deref(d.EnemySupport)),
						d.CreatedAt.Local().Format("2006-01-02 15:04"))
				}
				return tw.Flush()
			})
		},
	}
}

func newDraftShowCmd() *cobra.Command {
	var (
		feed      string
		outputFmt string
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a draft and the picks for its lane",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDrafts(func(svc *drafts.Service) error {
				return runDraftShow(cmd.Context(), svc, args[0], feed, outputFmt, limit)
			})
		},
	}
	cmd.Flags().StringVar(&feed, "feed", "", "Path to a matchup feed file (default: feed.path or stored feed)")
	cmd.Flags().StringVar(&outputFmt, "output", "text", "Output format: text, json or markdown")
	cmd.Flags().IntVar(&limit, "limit", 10, "Number of picks to show (0 for all)")
	return cmd
}

func runDraftShow(ctx context.Context, svc *drafts.Service, id, feed, outputFmt string, limit int) error {
	renderer, err := surface.ForFormat(outputFmt)
	if err != nil {
		return err
	}
	d, ok, err := svc.Get(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("draft %s not found", id)
	}

	fmt.Fprintf(os.Stderr, "%s: %s with %s vs %s",
		d.Name, d.ADCChampion, orDash(deref(d.AllySupport)), orDash(lane(deref(d.EnemyADC), deref(d.EnemySupport))))
	if d.EnemyThreat != nil {
		fmt.Fprintf(os.Stderr, ", threat %s", *d.EnemyThreat)
	}
	fmt.Fprintln(os.Stderr)
	if d.Notes != nil {
		fmt.Fprintf(os.Stderr, "Notes: %s\n", *d.Notes)
	}
	fmt.Fprintln(os.Stderr)

	cfg := loadConfig()
	weights, err := cfg.Weights()
	if err != nil {
		return err
	}
	repo, err := loadRepository(ctx, cfg, feed)
	if err != nil {
		return err
	}

	engine := newEngine(champion.RoleADC, repo, weights)
	sel, err := engine.Resolve(draftQuery(d))
	if err != nil {
		return fmt.Errorf("draft %s: %w", id, err)
	}
	return renderer.Render(os.Stdout, engine.Rank(sel).Top(limit))
}

// draftQuery is the bottom-lane selection a draft was saved with.
func draftQuery(d drafts.Draft) scoring.Query {
	return scoring.Query{
		Ally:         deref(d.AllySupport),
		EnemySupport: deref(d.EnemySupport),
		EnemyBottom:  deref(d.EnemyADC),
		Threat:       deref(d.EnemyThreat),
	}
}

func newDraftSaveCmd() *cobra.Command {
	var in drafts.Input

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save a draft",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDrafts(func(svc *drafts.Service) error {
				d, err := svc.Create(cmd.Context(), in)
				if err != nil {
					return err
				}
				fmt.Println(d.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "Draft name (required)")
	cmd.Flags().StringVar(&in.ADCChampion, "adc", "", "Your marksman (required)")
	cmd.Flags().StringVar(&in.AllySupport, "ally", "", "Your support")
	cmd.Flags().StringVar(&in.EnemyADC, "enemy-bottom", "", "Enemy bot laner")
	cmd.Flags().StringVar(&in.EnemySupport, "enemy-support", "", "Enemy support")
	cmd.Flags().StringVar(&in.EnemyThreat, "threat", "", "Enemy team threat: assassin, tank or poke")
	cmd.Flags().StringVar(&in.Notes, "notes", "", "Free-form notes")
	return cmd
}

func newDraftDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved draft",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDrafts(func(svc *drafts.Service) error {
				ok, err := svc.Delete(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("draft %s not found", args[0])
				}
				fmt.Fprintf(os.Stderr, "Deleted draft %s\n", args[0])
				return nil
			})
		},
	}
}

func withDrafts(fn func(*drafts.Service) error) error {
	svc, err := openDrafts(loadConfig())
	if err != nil {
		return err
	}
	defer svc.Close()
	return fn(svc)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// lane joins the enemy bot laner and support as "Jinx + Thresh".
func lane(bottom, support string) string {
	switch {
	case bottom == "":
		return support
	case support == "":
		return bottom
	}
	return bottom + " + " + support
}
