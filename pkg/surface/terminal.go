package surface

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/botlane/botlane/pkg/matchup"
	"github.com/botlane/botlane/pkg/scoring"
)

// TerminalRenderer renders results as colored terminal output. Colors are
// disabled when NO_COLOR is set.
type TerminalRenderer struct{}

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

const (
	barWidth    = 20
	maxDiffRows = 15
)

func scoreColor(rec scoring.Recommendation) string {
	if noColor() || !rec.HasData {
		return ""
	}
	switch {
	case rec.Score >= 70:
		return colorGreen
	case rec.Score >= 40:
		return colorYellow
	default:
		return colorRed
	}
}

func noColor() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}

func bold(s string) string {
	if noColor() {
		return s
	}
	return colorBold + s + colorReset
}

func dim(s string) string {
	if noColor() {
		return s
	}
	return colorDim + s + colorReset
}

func colored(s, color string) string {
	if noColor() || color == "" {
		return s
	}
	return color + s + colorReset
}

func bar(score int) string {
	n := score * barWidth / 100
	return strings.Repeat("█", n) + strings.Repeat("·", barWidth-n)
}

func (r *TerminalRenderer) Render(w io.Writer, ranking *scoring.Ranking) error {
	fmt.Fprintf(w, "%s\n", bold(title(ranking)))
	fmt.Fprintf(w, "%s\n\n", dim(selectionSummary(ranking)))

	if len(ranking.Recommendations) == 0 {
		fmt.Fprintln(w, "No candidates.")
		return nil
	}

	width := 0
	for _, rec := range ranking.Recommendations {
		width = max(width, len(rec.Name))
	}

	for i, rec := range ranking.Recommendations {
		c := scoreColor(rec)
		fmt.Fprintf(w, "%3d. %-*s %s %s",
			i+1, width, rec.Name,
			colored(fmt.Sprintf("%3d", rec.Score), c),
			colored(bar(rec.Score), c))
		if !rec.HasData {
			fmt.Fprintf(w, "  %s", dim("no data"))
		}
		fmt.Fprintln(w)

		if ranking.Blind {
			continue
		}
		for _, t := range rec.Breakdown.Terms {
			if line := termSummary(t); line != "" {
				fmt.Fprintf(w, "       %s\n", dim(line))
			}
		}
	}
	fmt.Fprintln(w)
	return nil
}

func (r *TerminalRenderer) RenderDiff(w io.Writer, diff *matchup.Diff) error {
	fmt.Fprintf(w, "%s\n\n", bold(fmt.Sprintf("Feed diff: %s -> %s",
		versionLabel(diff.BaseVersion, diff.BasePatch), versionLabel(diff.HeadVersion, diff.HeadPatch))))

	fmt.Fprintf(w, "Changes: %d added / %d removed / %d shifted\n\n",
		diff.Stats.AddedCount, diff.Stats.RemovedCount, diff.Stats.ShiftedCount)

	sections := []struct {
		label   string
		color   string
		changes []matchup.Change
	}{
		{"Shifted", colorYellow, diff.Shifted},
		{"Added", colorGreen, diff.Added},
		{"Removed", colorRed, diff.Removed},
	}
	for _, s := range sections {
		if len(s.changes) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s:\n", s.label)
		for i, c := range s.changes {
			if i == maxDiffRows {
				fmt.Fprintf(w, "  %s\n", dim(fmt.Sprintf("... and %d more", len(s.changes)-maxDiffRows)))
				break
			}
			fmt.Fprintf(w, "  %s %s %s %s -> %s",
				colored("●", s.color), bold(c.Champion+" / "+c.Other), dim(c.Table),
				formatValue(c.Base), formatValue(c.Head))
			if c.Shift != 0 {
				fmt.Fprintf(w, " (%+.2f)", c.Shift)
			}
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w)
	}

	if diff.Stats.AddedCount+diff.Stats.RemovedCount+diff.Stats.ShiftedCount == 0 {
		fmt.Fprintln(w, "No changes.")
		fmt.Fprintln(w)
	}
	return nil
}

func versionLabel(version, patch string) string {
	if patch == "" {
		return version
	}
	return fmt.Sprintf("%s (%s)", patch, version)
}
