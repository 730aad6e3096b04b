package matchup

import "sort"

// Entry is one record of a profile listing.
type Entry struct {
	Name string `json:"name"`
	Value
	// Inferred marks enemy-bottom entries seeded from counter records.
	Inferred bool `json:"inferred,omitempty"`
}

// BottomProfile is the ranked view of a bot laner's data.
type BottomProfile struct {
	Name        string  `json:"name"`
	Counters    []Entry `json:"counters"`
	Synergy     []Entry `json:"synergy"`
	EnemyBottom []Entry `json:"enemy_bottom"`
}

// SupportProfile is the ranked view of a support's data.
type SupportProfile struct {
	Name          string  `json:"name"`
	VsSupport     []Entry `json:"vs_support"`
	VsBottom      []Entry `json:"vs_bottom"`
	SynergyBottom []Entry `json:"synergy_bottom"`
}

// BottomProfile lists a bot laner's records, best delta first.
func (r *Repository) BottomProfile(name string) (*BottomProfile, bool) {
	d, ok := r.bottom[name]
	if !ok {
		return nil, false
	}
	p := &BottomProfile{
		Name:        name,
		Counters:    ranked(d.counters, nil),
		Synergy:     ranked(d.synergy, nil),
		EnemyBottom: ranked(d.enemyBottom, d.explicitBottom),
	}
	return p, true
}

// SupportProfile lists a support's records, best delta first.
func (r *Repository) SupportProfile(name string) (*SupportProfile, bool) {
	d, ok := r.support[name]
	if !ok {
		return nil, false
	}
	p := &SupportProfile{
		Name:          name,
		VsSupport:     ranked(d.vsSupport, nil),
		VsBottom:      ranked(d.vsBottom, nil),
		SynergyBottom: ranked(d.synergyBottom, nil),
	}
	return p, true
}

// BottomNames returns the names of all bot-laner profiles, sorted.
func (r *Repository) BottomNames() []string {
	names := make([]string, 0, len(r.bottom))
	for n := range r.bottom {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// SupportNames returns the names of all support profiles, sorted.
func (r *Repository) SupportNames() []string {
	names := make([]string, 0, len(r.support))
	for n := range r.support {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ranked orders entries by delta descending, then games descending, then
// name. When explicit is non-nil, entries missing from it are marked inferred.
func ranked(m map[string]Value, explicit map[string]bool) []Entry {
	out := make([]Entry, 0, len(m))
	for name, v := range m {
		e := Entry{Name: name, Value: v}
		if explicit != nil && !explicit[name] {
			e.Inferred = true
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Delta != out[j].Delta {
			return out[i].Delta > out[j].Delta
		}
		if out[i].Games != out[j].Games {
			return out[i].Games > out[j].Games
		}
		return out[i].Name < out[j].Name
	})
	return out
}
