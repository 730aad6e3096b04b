package scoring

import (
	"fmt"
	"sort"
	"strings"
)

// Weights holds the multipliers applied to each term of both engines.
type Weights struct {
	// Bottom engine: ranking marksmen for a lane.
	BottomSynergy      float64
	BottomEnemySupport float64
	BottomEnemyBottom  float64

	// Support engine: ranking supports for a lane.
	SupportSynergy      float64
	SupportEnemyBottom  float64
	SupportEnemySupport float64

	// Flat bonus when a candidate counters the enemy composition.
	ThreatBonus float64
	// Sample size at which a signal keeps ~63% of its delta.
	ConfidenceDecay float64
}

// Defaults returns the default weights.
func Defaults() Weights {
	return Weights{
		BottomSynergy:      2,
		BottomEnemySupport: 0.5,
		BottomEnemyBottom:  0.2,

		SupportSynergy:      2,
		SupportEnemyBottom:  1.5,
		SupportEnemySupport: 1,

		ThreatBonus:     2,
		ConfidenceDecay: DefaultConfidenceDecay,
	}
}

func (w *Weights) fields() map[string]*float64 {
	return map[string]*float64{
		"bottom.synergy":        &w.BottomSynergy,
		"bottom.enemy_support":  &w.BottomEnemySupport,
		"bottom.enemy_bottom":   &w.BottomEnemyBottom,
		"support.synergy":       &w.SupportSynergy,
		"support.enemy_bottom":  &w.SupportEnemyBottom,
		"support.enemy_support": &w.SupportEnemySupport,
		"threat_bonus":          &w.ThreatBonus,
		"confidence_decay":      &w.ConfidenceDecay,
	}
}

// WithOverrides returns a copy of w with the named weights replaced, as read
// from the scoring.weights map of the config file.
func (w Weights) WithOverrides(overrides map[string]float64) (Weights, error) {
	fields := w.fields()
	for key, v := range overrides {
		p, ok := fields[key]
		if !ok {
			known := make([]string, 0, len(fields))
			for k := range fields {
				known = append(known, k)
			}
			sort.Strings(known)
			return w, fmt.Errorf("unknown scoring weight %q (known: %s)", key, strings.Join(known, ", "))
		}
		*p = v
	}
	if w.ConfidenceDecay <= 0 {
		return w, fmt.Errorf("confidence_decay must be positive, got %v", w.ConfidenceDecay)
	}
	return w, nil
}
