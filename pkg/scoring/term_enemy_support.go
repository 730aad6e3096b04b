package scoring

import (
	"github.com/botlane/botlane/pkg/champion"
	"github.com/botlane/botlane/pkg/matchup"
)

// BottomEnemySupportTerm scores a marksman against the selected enemy
// support, combining its counter record with the negated record the support
// holds against it. Marksmen without a profile are not scored.
type BottomEnemySupportTerm struct {
	Weight float64
	Decay  float64
}

func (t *BottomEnemySupportTerm) Key() string  { return KeyEnemySupport }
func (t *BottomEnemySupportTerm) Name() string { return "Vs enemy support" }

func (t *BottomEnemySupportTerm) Evaluate(c *champion.Champion, sel Selection, repo *matchup.Repository) (TermResult, bool) {
	if sel.EnemySupport == nil {
		return TermResult{}, false
	}
	own, ok := repo.Bottom(c.Name)
	if !ok {
		return TermResult{}, false
	}
	enemy, _ := repo.Support(sel.EnemySupport.Name)
	s := Combine(own.Counter(sel.EnemySupport.Name), enemy.VsBottom(c.Name).Negate())
	return signalTerm(t, sel.EnemySupport.Name, s, t.Weight, t.Decay), true
}

// SupportEnemySupportTerm scores a support against the enemy support using
// both supports' head-to-head records.
type SupportEnemySupportTerm struct {
	Weight float64
	Decay  float64
}

func (t *SupportEnemySupportTerm) Key() string  { return KeyEnemySupport }
func (t *SupportEnemySupportTerm) Name() string { return "Vs enemy support" }

func (t *SupportEnemySupportTerm) Evaluate(c *champion.Champion, sel Selection, repo *matchup.Repository) (TermResult, bool) {
	if sel.EnemySupport == nil {
		return TermResult{}, false
	}
	own, _ := repo.Support(c.Name)
	enemy, _ := repo.Support(sel.EnemySupport.Name)
	s := Combine(own.VsSupport(sel.EnemySupport.Name), enemy.VsSupport(c.Name).Negate())
	return signalTerm(t, sel.EnemySupport.Name, s, t.Weight, t.Decay), true
}
