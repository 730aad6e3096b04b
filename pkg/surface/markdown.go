package surface

import (
	"fmt"
	"io"
	"strings"

	"github.com/botlane/botlane/pkg/matchup"
	"github.com/botlane/botlane/pkg/scoring"
)

// MarkdownRenderer renders results as GitHub-flavored Markdown, for pasting
// into team notes and issues.
type MarkdownRenderer struct{}

func (r *MarkdownRenderer) Render(w io.Writer, ranking *scoring.Ranking) error {
	_, err := io.WriteString(w, buildRankingMarkdown(ranking))
	return err
}

func (r *MarkdownRenderer) RenderDiff(w io.Writer, diff *matchup.Diff) error {
	_, err := io.WriteString(w, buildDiffMarkdown(diff))
	return err
}

func buildRankingMarkdown(r *scoring.Ranking) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("## %s\n\n", title(r)))
	sb.WriteString(fmt.Sprintf("_%s_\n\n", selectionSummary(r)))

	sb.WriteString("| # | Champion | Score | Why |\n|---|----------|-------|-----|\n")
	for i, rec := range r.Recommendations {
		var why []string
		if !rec.HasData {
			why = append(why, "no data")
		} else if !r.Blind {
			for _, t := range rec.Breakdown.Terms {
				if s := termSummary(t); s != "" {
					why = append(why, s)
				}
			}
		}
		sb.WriteString(fmt.Sprintf("| %d | %s | %d | %s |\n",
			i+1, escapeCell(rec.Name), rec.Score, escapeCell(strings.Join(why, "<br>"))))
	}
	return sb.String()
}

func buildDiffMarkdown(d *matchup.Diff) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("## Feed diff: %s → %s\n\n",
		versionLabel(d.BaseVersion, d.BasePatch), versionLabel(d.HeadVersion, d.HeadPatch)))

	sb.WriteString("| Change | Count |\n|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Added | %d |\n", d.Stats.AddedCount))
	sb.WriteString(fmt.Sprintf("| Removed | %d |\n", d.Stats.RemovedCount))
	sb.WriteString(fmt.Sprintf("| Shifted | %d |\n", d.Stats.ShiftedCount))
	sb.WriteString("\n")

	// Shifts are what players act on, so they come first.
	if len(d.Shifted) > 0 {
		sb.WriteString("### Biggest shifts\n\n")
		sb.WriteString("| Table | Champion | Other | Base | Head | Shift |\n|---|---|---|---|---|---|\n")
		for i, c := range d.Shifted {
			if i == maxDiffRows {
				sb.WriteString(fmt.Sprintf("\n_... and %d more shifts_\n", len(d.Shifted)-maxDiffRows))
				break
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %+.2f |\n",
				c.Table, escapeCell(c.Champion), escapeCell(c.Other), formatValue(c.Base), formatValue(c.Head), c.Shift))
		}
		sb.WriteString("\n")
	}

	for _, s := range []struct {
		label   string
		changes []matchup.Change
	}{{"Added", d.Added}, {"Removed", d.Removed}} {
		if len(s.changes) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("### %s\n\n", s.label))
		for i, c := range s.changes {
			if i == maxDiffRows {
				sb.WriteString(fmt.Sprintf("- _... and %d more_\n", len(s.changes)-maxDiffRows))
				break
			}
			v := c.Head
			if v == nil {
				v = c.Base
			}
			sb.WriteString(fmt.Sprintf("- **%s / %s** `%s` %s\n", c.Champion, c.Other, c.Table, formatValue(v)))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
