// Package champion holds the static champion reference data used by the
// matchup repository and the scoring engines: the roster, role and threat
// enumerations, and the name normalizer.
package champion

import "fmt"

// Role is a lane role a champion is drafted into.
type Role string

const (
	RoleADC     Role = "adc"
	RoleSupport Role = "support"
	// RoleMage marks non-marksman champions that are played in the bottom lane.
	RoleMage Role = "mage"
)

// Threat is an enemy team composition archetype.
type Threat string

const (
	ThreatNone     Threat = ""
	ThreatAssassin Threat = "assassin"
	ThreatTank     Threat = "tank"
	ThreatPoke     Threat = "poke"
)

// Threats lists every selectable composition threat.
var Threats = []Threat{ThreatAssassin, ThreatTank, ThreatPoke}

// IsValid reports whether t is one of the known threats.
func (t Threat) IsValid() bool {
	switch t {
	case ThreatAssassin, ThreatTank, ThreatPoke:
		return true
	}
	return false
}

// ParseThreat converts user input into a Threat. The empty string parses to
// ThreatNone.
func ParseThreat(s string) (Threat, error) {
	t := Threat(s)
	if t == ThreatNone || t.IsValid() {
		return t, nil
	}
	return ThreatNone, fmt.Errorf("unknown threat %q (want assassin, tank or poke)", s)
}

// Archetype is the play pattern of a support champion.
type Archetype string

const (
	ArchetypeEnchanter Archetype = "enchanter"
	ArchetypeEngage    Archetype = "engage"
	ArchetypePoke      Archetype = "poke"
	ArchetypeWarden    Archetype = "warden"
)

// CounteringArchetypes returns the support archetypes that are favored
// against the given enemy composition.
func CounteringArchetypes(t Threat) []Archetype {
	switch t {
	case ThreatAssassin:
		return []Archetype{ArchetypeEnchanter}
	case ThreatTank:
		return []Archetype{ArchetypePoke}
	case ThreatPoke:
		return []Archetype{ArchetypeEngage}
	}
	return nil
}

// Champion is one entry of the static roster.
type Champion struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Title      string    `json:"title"`
	Difficulty string    `json:"difficulty,omitempty"`
	Roles      []Role    `json:"roles"`
	Archetype  Archetype `json:"archetype,omitempty"`
	// Counters lists the enemy compositions this champion is strong into.
	Counters  []Threat `json:"counters,omitempty"`
	Synergies []string `json:"synergies,omitempty"`
}

// HasRole reports whether c is played in role r.
func (c *Champion) HasRole(r Role) bool {
	for _, have := range c.Roles {
		if have == r {
			return true
		}
	}
	return false
}

// IsBotLaner reports whether c is played in the bottom lane, either as a
// marksman or as a mage.
func (c *Champion) IsBotLaner() bool {
	return c.HasRole(RoleADC) || c.HasRole(RoleMage)
}

// CountersThreat reports whether t is among the champion's counter tags.
func (c *Champion) CountersThreat(t Threat) bool {
	if t == ThreatNone {
		return false
	}
	for _, have := range c.Counters {
		if have == t {
			return true
		}
	}
	return false
}

// CountersThreatByArchetype reports whether the champion's archetype is one
// of the archetypes that counter t.
func (c *Champion) CountersThreatByArchetype(t Threat) bool {
	if c.Archetype == "" {
		return false
	}
	for _, a := range CounteringArchetypes(t) {
		if a == c.Archetype {
			return true
		}
	}
	return false
}
