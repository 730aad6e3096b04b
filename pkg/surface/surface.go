// Package surface renders rankings and feed diffs for people and tools:
// colored terminal output, JSON and Markdown.
package surface

import (
	"fmt"
	"io"
	"strings"

	"github.com/botlane/botlane/pkg/champion"
	"github.com/botlane/botlane/pkg/matchup"
	"github.com/botlane/botlane/pkg/scoring"
)

// Renderer writes rankings and diffs in one output format.
type Renderer interface {
	// Render writes a ranking to the writer.
	Render(w io.Writer, ranking *scoring.Ranking) error
	// RenderDiff writes a feed diff to the writer.
	RenderDiff(w io.Writer, diff *matchup.Diff) error
}

// Output formats accepted by ForFormat.
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// ForFormat returns the renderer for an output format name.
func ForFormat(name string) (Renderer, error) {
	switch strings.ToLower(name) {
	case "", FormatText:
		return &TerminalRenderer{}, nil
	case FormatJSON:
		return &JSONRenderer{}, nil
	case FormatMarkdown, "md":
		return &MarkdownRenderer{}, nil
	}
	return nil, fmt.Errorf("unknown output format %q (want text, json or markdown)", name)
}

func title(r *scoring.Ranking) string {
	what := "Bot lane picks"
	if r.Role == champion.RoleSupport {
		what = "Support picks"
	}
	if r.Patch != "" {
		what += " for patch " + r.Patch
	}
	return what
}

// selectionSummary describes what a ranking was computed against, e.g.
// "with Leona, vs Nautilus + Kai'Sa, threat assassin".
func selectionSummary(r *scoring.Ranking) string {
	if r.Blind || len(r.Recommendations) == 0 {
		return "blind pick"
	}
	b := r.Recommendations[0].Breakdown

	var parts []string
	if b.AllyName != "" {
		parts = append(parts, "with "+b.AllyName)
	}
	var enemies []string
	for _, n := range []string{b.EnemySupportName, b.EnemyBottomName} {
		if n != "" {
			enemies = append(enemies, n)
		}
	}
	if len(enemies) > 0 {
		parts = append(parts, "vs "+strings.Join(enemies, " + "))
	}
	if b.Threat != champion.ThreatNone {
		parts = append(parts, "threat "+string(b.Threat))
	}
	return strings.Join(parts, ", ")
}

// termSummary is the one-line explanation of a term result, or "" for a
// term that had no effect.
func termSummary(t scoring.TermResult) string {
	label := fmt.Sprintf("%s (%s)", t.Name, t.Against)
	switch {
	case t.Key == scoring.KeyThreat:
		if !t.Matched {
			return ""
		}
		return fmt.Sprintf("%s: counters it, %+.2f", label, t.Contribution)
	case t.MissingData:
		return label + ": no data"
	case t.Signal == nil:
		return ""
	}

	stat := fmt.Sprintf("%+.2f%% over %d games", t.Signal.Delta, t.Signal.Games)
	if t.Signal.Confidence != nil {
		stat = fmt.Sprintf("%+.2f%% ±%.1f over %d games", t.Signal.Delta, *t.Signal.Confidence, t.Signal.Games)
	}
	return fmt.Sprintf("%s: %s, %+.2f", label, stat, t.Contribution)
}

func formatValue(v *matchup.Value) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%+.2f (%d)", v.Delta, v.Games)
}
