// Package matchup turns raw pairwise win-rate statistics into the read-only
// lookup structures consumed by the scoring engines.
// A Repository is built once per feed and never mutated afterwards.
package matchup

// Value is one observed win-rate effect and the number of games behind it.
type Value struct {
	Delta float64 `json:"delta"` // percentage points, may be negative
	Games int     `json:"games"` // always >= 0
}

// Negate returns the mirror view of v: the same sample seen from the other side.
func (v Value) Negate() Value {
	return Value{Delta: -v.Delta, Games: v.Games}
}

// Signal is an optional Value. The zero Signal is absent.
type Signal struct {
	value   Value
	present bool
}

// Present wraps v as an available signal.
func Present(v Value) Signal { return Signal{value: v, present: true} }

// Absent returns a signal that carries no data.
func Absent() Signal { return Signal{} }

// Get returns the value and whether it is present.
func (s Signal) Get() (Value, bool) { return s.value, s.present }

// IsPresent reports whether the signal carries data.
func (s Signal) IsPresent() bool { return s.present }

// Negate mirrors a present signal and leaves an absent one absent.
func (s Signal) Negate() Signal {
	if !s.present {
		return s
	}
	return Present(s.value.Negate())
}

// BotLanerData is the matchup profile of one bottom-lane champion.
type BotLanerData struct {
	counters    map[string]Value
	synergy     map[string]Value
	enemyBottom map[string]Value

	// names of enemyBottom entries that came from explicit bottom records
	explicitBottom map[string]bool
}

// SupportData is the matchup profile of one support champion.
type SupportData struct {
	vsSupport     map[string]Value
	vsBottom      map[string]Value
	synergyBottom map[string]Value
}

func newBotLanerData() *BotLanerData {
	return &BotLanerData{
		counters:       make(map[string]Value),
		synergy:        make(map[string]Value),
		enemyBottom:    make(map[string]Value),
		explicitBottom: make(map[string]bool),
	}
}

func newSupportData() *SupportData {
	return &SupportData{
		vsSupport:     make(map[string]Value),
		vsBottom:      make(map[string]Value),
		synergyBottom: make(map[string]Value),
	}
}

func lookup(m map[string]Value, name string) Signal {
	if v, ok := m[name]; ok {
		return Present(v)
	}
	return Absent()
}

// Counter returns this laner's record against an enemy support.
// All BotLanerData accessors are safe on a nil receiver.
func (d *BotLanerData) Counter(support string) Signal {
	if d == nil {
		return Absent()
	}
	return lookup(d.counters, support)
}

// Synergy returns this laner's record when paired with an ally support.
func (d *BotLanerData) Synergy(support string) Signal {
	if d == nil {
		return Absent()
	}
	return lookup(d.synergy, support)
}

// EnemyBottom returns this laner's record against an enemy bot laner.
func (d *BotLanerData) EnemyBottom(laner string) Signal {
	if d == nil {
		return Absent()
	}
	return lookup(d.enemyBottom, laner)
}

// VsSupport returns this support's record against an enemy support.
func (d *SupportData) VsSupport(support string) Signal {
	if d == nil {
		return Absent()
	}
	return lookup(d.vsSupport, support)
}

// VsBottom returns this support's record against an enemy bot laner.
func (d *SupportData) VsBottom(laner string) Signal {
	if d == nil {
		return Absent()
	}
	return lookup(d.vsBottom, laner)
}

// SynergyBottom returns this support's record when paired with an ally bot laner.
func (d *SupportData) SynergyBottom(laner string) Signal {
	if d == nil {
		return Absent()
	}
	return lookup(d.synergyBottom, laner)
}

// Repository holds the bot-laner and support profiles keyed by canonical name.
type Repository struct {
	bottom  map[string]*BotLanerData
	support map[string]*SupportData

	Patch   string
	Version string
}

// Bottom returns the profile of a bot laner. A missing profile is returned as
// nil, which every accessor treats as "no data".
func (r *Repository) Bottom(name string) (*BotLanerData, bool) {
	d, ok := r.bottom[name]
	return d, ok
}

// Support returns the profile of a support.
func (r *Repository) Support(name string) (*SupportData, bool) {
	d, ok := r.support[name]
	return d, ok
}

// Stats summarizes the size of a repository.
type Stats struct {
	BotLaners      int `json:"bot_laners"`
	Supports       int `json:"supports"`
	BottomRecords  int `json:"bottom_records"`
	SupportRecords int `json:"support_records"`
}

// Stats counts profiles and records.
func (r *Repository) Stats() Stats {
	s := Stats{BotLaners: len(r.bottom), Supports: len(r.support)}
	for _, d := range r.bottom {
		s.BottomRecords += len(d.counters) + len(d.synergy) + len(d.enemyBottom)
	}
	for _, d := range r.support {
		s.SupportRecords += len(d.vsSupport) + len(d.vsBottom) + len(d.synergyBottom)
	}
	return s
}
