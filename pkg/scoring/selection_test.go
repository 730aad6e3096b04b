package scoring_test

import (
	"errors"
	"testing"

	"github.com/botlane/botlane/pkg/champion"
	"github.com/botlane/botlane/pkg/scoring"
)

func TestSelectionMutualExclusion(t *testing.T) {
	roster := champion.DefaultRoster()
	leona, _ := roster.ByID("leona")
	lulu, _ := roster.ByID("lulu")

	var sel scoring.Selection
	sel.SelectEnemySupport(leona)
	sel.SelectAlly(leona)
	if sel.Ally != leona || sel.EnemySupport != nil {
		t.Errorf("picking the enemy support as ally should clear it: %+v", sel)
	}

	sel.SelectEnemySupport(leona)
	if sel.Ally != nil || sel.EnemySupport != leona {
		t.Errorf("picking the ally as enemy support should clear the ally: %+v", sel)
	}

	sel.SelectAlly(lulu)
	if sel.Ally != lulu || sel.EnemySupport != leona {
		t.Errorf("distinct picks should both stay: %+v", sel)
	}
}

func TestSelectionBlind(t *testing.T) {
	if !(scoring.Selection{}).Blind() {
		t.Error("empty selection should be blind")
	}
	if (scoring.Selection{Threat: champion.ThreatPoke}).Blind() {
		t.Error("a threat alone makes the selection non-blind")
	}
}

func TestResolve(t *testing.T) {
	bottom := bottomEngine(t)
	support := supportEngine(t)

	tests := []struct {
		name      string
		engine    *scoring.Engine
		query     scoring.Query
		wantField string
	}{
		{"empty query", bottom, scoring.Query{}, ""},
		{"names and ids", bottom, scoring.Query{Ally: "Tahm Kench", EnemySupport: "renata", EnemyBottom: "Kai'Sa", Threat: "tank"}, ""},
		{"unknown ally", bottom, scoring.Query{Ally: "nobody"}, "ally"},
		{"marksman as bottom ally", bottom, scoring.Query{Ally: "jinx"}, "ally"},
		{"support as support ally", support, scoring.Query{Ally: "lulu"}, "ally"},
		{"mage as support ally", support, scoring.Query{Ally: "ziggs"}, ""},
		{"marksman as enemy support", bottom, scoring.Query{EnemySupport: "jinx"}, "enemy_support"},
		{"support as enemy bottom", support, scoring.Query{EnemyBottom: "thresh"}, "enemy_bottom"},
		{"unknown threat", support, scoring.Query{Threat: "bruiser"}, "threat"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.engine.Resolve(tt.query)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var selErr *scoring.SelectionError
			if !errors.As(err, &selErr) {
				t.Fatalf("expected *SelectionError, got %v", err)
			}
			if selErr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", selErr.Field, tt.wantField)
			}
		})
	}
}

func TestResolveEnemySupportWinsOverAlly(t *testing.T) {
	e := bottomEngine(t)
	sel := mustResolve(t, e, scoring.Query{Ally: "leona", EnemySupport: "Leona"})
	if sel.Ally != nil {
		t.Errorf("ally = %v, want cleared", sel.Ally.ID)
	}
	if sel.EnemySupport == nil || sel.EnemySupport.ID != "leona" {
		t.Errorf("enemy support = %v, want leona", sel.EnemySupport)
	}
}
