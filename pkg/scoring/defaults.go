package scoring

// DefaultBottomTerms returns the terms of the marksman engine.
func DefaultBottomTerms(w Weights) []Term {
	return []Term{
		&BottomSynergyTerm{Weight: w.BottomSynergy, Decay: w.ConfidenceDecay},
		&BottomEnemySupportTerm{Weight: w.BottomEnemySupport, Decay: w.ConfidenceDecay},
		&BottomEnemyBottomTerm{Weight: w.BottomEnemyBottom, Decay: w.ConfidenceDecay},
		&ThreatTerm{Bonus: w.ThreatBonus},
	}
}

// DefaultSupportTerms returns the terms of the support engine.
func DefaultSupportTerms(w Weights) []Term {
	return []Term{
		&SupportSynergyTerm{Weight: w.SupportSynergy, Decay: w.ConfidenceDecay},
		&SupportEnemyBottomTerm{Weight: w.SupportEnemyBottom, Decay: w.ConfidenceDecay},
		&SupportEnemySupportTerm{Weight: w.SupportEnemySupport, Decay: w.ConfidenceDecay},
		&ThreatTerm{Bonus: w.ThreatBonus, ByArchetype: true},
	}
}
