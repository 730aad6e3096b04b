package scoring

import (
	"github.com/botlane/botlane/pkg/champion"
	"github.com/botlane/botlane/pkg/matchup"
)

// BottomEnemyBottomTerm scores a marksman against the enemy bot laner. A
// marksman without a profile gets a missing-data term.
type BottomEnemyBottomTerm struct {
	Weight float64
	Decay  float64
}

func (t *BottomEnemyBottomTerm) Key() string  { return KeyEnemyBottom }
func (t *BottomEnemyBottomTerm) Name() string { return "Vs enemy bot laner" }

func (t *BottomEnemyBottomTerm) Evaluate(c *champion.Champion, sel Selection, repo *matchup.Repository) (TermResult, bool) {
	if sel.EnemyBottom == nil {
		return TermResult{}, false
	}
	own, ok := repo.Bottom(c.Name)
	if !ok {
		return signalTerm(t, sel.EnemyBottom.Name, matchup.Absent(), t.Weight, t.Decay), true
	}
	enemy, _ := repo.Bottom(sel.EnemyBottom.Name)
	s := Combine(own.EnemyBottom(sel.EnemyBottom.Name), enemy.EnemyBottom(c.Name).Negate())
	return signalTerm(t, sel.EnemyBottom.Name, s, t.Weight, t.Decay), true
}

// SupportEnemyBottomTerm scores a support against the enemy bot laner. It is
// the main lane signal of the support engine.
type SupportEnemyBottomTerm struct {
	Weight float64
	Decay  float64
}

func (t *SupportEnemyBottomTerm) Key() string  { return KeyEnemyBottom }
func (t *SupportEnemyBottomTerm) Name() string { return "Vs enemy bot laner" }

func (t *SupportEnemyBottomTerm) Evaluate(c *champion.Champion, sel Selection, repo *matchup.Repository) (TermResult, bool) {
	if sel.EnemyBottom == nil {
		return TermResult{}, false
	}
	own, _ := repo.Support(c.Name)
	enemy, _ := repo.Bottom(sel.EnemyBottom.Name)
	s := Combine(own.VsBottom(sel.EnemyBottom.Name), enemy.Counter(c.Name).Negate())
	return signalTerm(t, sel.EnemyBottom.Name, s, t.Weight, t.Decay), true
}
