package scoring_test

import (
	"strings"
	"testing"

	"github.com/botlane/botlane/pkg/scoring"
)

func TestWithOverrides(t *testing.T) {
	w, err := scoring.Defaults().WithOverrides(map[string]float64{
		"bottom.synergy":   3,
		"threat_bonus":     0,
		"confidence_decay": 500,
	})
	if err != nil {
		t.Fatalf("WithOverrides: %v", err)
	}
	if w.BottomSynergy != 3 || w.ThreatBonus != 0 || w.ConfidenceDecay != 500 {
		t.Errorf("overrides not applied: %+v", w)
	}
	if w.SupportEnemyBottom != 1.5 {
		t.Errorf("untouched weight changed: %v", w.SupportEnemyBottom)
	}
}

func TestWithOverridesErrors(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]float64
		wantErr   string
	}{
		{"unknown key", map[string]float64{"bottom.vibes": 1}, "unknown scoring weight"},
		{"zero decay", map[string]float64{"confidence_decay": 0}, "confidence_decay"},
		{"negative decay", map[string]float64{"confidence_decay": -10}, "confidence_decay"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := scoring.Defaults().WithOverrides(tt.overrides)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultsDoNotAlias(t *testing.T) {
	base := scoring.Defaults()
	if _, err := base.WithOverrides(map[string]float64{"support.synergy": 9}); err != nil {
		t.Fatal(err)
	}
	if base.SupportSynergy != 2 {
		t.Errorf("WithOverrides mutated its receiver: %v", base.SupportSynergy)
	}
}
