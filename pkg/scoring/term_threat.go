package scoring

import (
	"github.com/botlane/botlane/pkg/champion"
	"github.com/botlane/botlane/pkg/matchup"
)

// ThreatTerm adds a flat bonus when a candidate is strong into the selected
// enemy composition. Marksmen are matched by their counter tags, supports by
// their archetype.
type ThreatTerm struct {
	Bonus float64
	// ByArchetype switches matching to the threat-to-archetype table.
	ByArchetype bool
}

func (t *ThreatTerm) Key() string  { return KeyThreat }
func (t *ThreatTerm) Name() string { return "Composition threat" }

func (t *ThreatTerm) Evaluate(c *champion.Champion, sel Selection, _ *matchup.Repository) (TermResult, bool) {
	if sel.Threat == champion.ThreatNone {
		return TermResult{}, false
	}
	r := TermResult{
		Key:     t.Key(),
		Name:    t.Name(),
		Against: string(sel.Threat),
		Weight:  t.Bonus,
	}
	if t.ByArchetype {
		r.Matched = c.CountersThreatByArchetype(sel.Threat)
	} else {
		r.Matched = c.CountersThreat(sel.Threat)
	}
	if r.Matched {
		r.Contribution = t.Bonus
	}
	return r, true
}
