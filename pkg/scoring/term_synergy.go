package scoring

import (
	"github.com/botlane/botlane/pkg/champion"
	"github.com/botlane/botlane/pkg/matchup"
)

// BottomSynergyTerm scores a marksman by how well it pairs with the selected
// ally support. Both sides of the pairing are read: the laner's own synergy
// record and the support's record with the laner.
type BottomSynergyTerm struct {
	Weight float64
	Decay  float64
}

func (t *BottomSynergyTerm) Key() string  { return KeySynergy }
func (t *BottomSynergyTerm) Name() string { return "Ally synergy" }

func (t *BottomSynergyTerm) Evaluate(c *champion.Champion, sel Selection, repo *matchup.Repository) (TermResult, bool) {
	if sel.Ally == nil {
		return TermResult{}, false
	}
	own, _ := repo.Bottom(c.Name)
	ally, _ := repo.Support(sel.Ally.Name)
	s := Combine(own.Synergy(sel.Ally.Name), ally.SynergyBottom(c.Name))
	return signalTerm(t, sel.Ally.Name, s, t.Weight, t.Decay), true
}

// SupportSynergyTerm is the support-side mirror of BottomSynergyTerm: it
// scores a support by its pairing with the selected ally bot laner.
type SupportSynergyTerm struct {
	Weight float64
	Decay  float64
}

func (t *SupportSynergyTerm) Key() string  { return KeySynergy }
func (t *SupportSynergyTerm) Name() string { return "Ally synergy" }

func (t *SupportSynergyTerm) Evaluate(c *champion.Champion, sel Selection, repo *matchup.Repository) (TermResult, bool) {
	if sel.Ally == nil {
		return TermResult{}, false
	}
	own, _ := repo.Support(c.Name)
	ally, _ := repo.Bottom(sel.Ally.Name)
	s := Combine(own.SynergyBottom(sel.Ally.Name), ally.Synergy(c.Name))
	return signalTerm(t, sel.Ally.Name, s, t.Weight, t.Decay), true
}

// signalTerm turns a combined signal into a weighted term result.
func signalTerm(t Term, against string, s matchup.Signal, weight, decay float64) TermResult {
	r := TermResult{
		Key:     t.Key(),
		Name:    t.Name(),
		Against: against,
		Weight:  weight,
	}
	if !s.IsPresent() {
		r.MissingData = true
		return r
	}
	r.Signal = signalInfo(s)
	r.Contribution = WeightedDelta(s, decay) * weight
	return r
}
