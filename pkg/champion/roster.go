package champion

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed roster.json
var rosterJSON []byte

// Roster is an immutable set of champions with role-filtered views.
type Roster struct {
	champions []*Champion
	byID      map[string]*Champion
	byKey     map[string]*Champion
}

var (
	defaultOnce   sync.Once
	defaultRoster *Roster
)

// DefaultRoster returns the roster bundled with the binary.
func DefaultRoster() *Roster {
	defaultOnce.Do(func() {
		r, err := ParseRoster(rosterJSON)
		if err != nil {
			panic(fmt.Sprintf("champion: bundled roster is invalid: %v", err))
		}
		defaultRoster = r
	})
	return defaultRoster
}

// ParseRoster decodes a JSON array of champions.
func ParseRoster(data []byte) (*Roster, error) {
	var list []*Champion
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parsing roster: %w", err)
	}
	return NewRoster(list)
}

// NewRoster builds a Roster from the given champions. IDs must be unique and
// every champion needs a name and at least one role.
func NewRoster(list []*Champion) (*Roster, error) {
	r := &Roster{
		byID:  make(map[string]*Champion, len(list)),
		byKey: make(map[string]*Champion, len(list)*2),
	}
	for _, c := range list {
		if c.ID == "" || c.Name == "" {
			return nil, fmt.Errorf("champion %q: id and name are required", c.ID)
		}
		if len(c.Roles) == 0 {
			return nil, fmt.Errorf("champion %q: no roles", c.ID)
		}
		if _, dup := r.byID[c.ID]; dup {
			return nil, fmt.Errorf("champion %q: duplicate id", c.ID)
		}
		for _, t := range c.Counters {
			if !t.IsValid() {
				return nil, fmt.Errorf("champion %q: unknown counter tag %q", c.ID, t)
			}
		}
		r.champions = append(r.champions, c)
		r.byID[c.ID] = c
		r.byKey[Key(c.ID)] = c
		r.byKey[Key(c.Name)] = c
	}
	return r, nil
}

// All returns every champion in roster order.
func (r *Roster) All() []*Champion {
	out := make([]*Champion, len(r.champions))
	copy(out, r.champions)
	return out
}

// ADCs returns the marksman candidates in roster order.
func (r *Roster) ADCs() []*Champion { return r.filter((*Champion).HasRole, RoleADC) }

// Supports returns the support candidates in roster order.
func (r *Roster) Supports() []*Champion { return r.filter((*Champion).HasRole, RoleSupport) }

// BotLaners returns every champion played in the bottom lane.
func (r *Roster) BotLaners() []*Champion {
	var out []*Champion
	for _, c := range r.champions {
		if c.IsBotLaner() {
			out = append(out, c)
		}
	}
	return out
}

// ByRole returns the champions for a listing role. "bottom" selects bot
// laners; an empty role returns the whole roster.
func (r *Roster) ByRole(role string) ([]*Champion, error) {
	switch strings.ToLower(role) {
	case "":
		return r.All(), nil
	case string(RoleADC):
		return r.ADCs(), nil
	case string(RoleSupport):
		return r.Supports(), nil
	case "bottom":
		return r.BotLaners(), nil
	}
	return nil, fmt.Errorf("unknown role %q (want adc, support or bottom)", role)
}

// ByID looks up a champion by its exact id.
func (r *Roster) ByID(id string) (*Champion, bool) {
	c, ok := r.byID[id]
	return c, ok
}

// Find resolves an id or a display name, ignoring case and punctuation.
func (r *Roster) Find(s string) (*Champion, bool) {
	if c, ok := r.byID[s]; ok {
		return c, true
	}
	c, ok := r.byKey[Key(s)]
	return c, ok
}

func (r *Roster) filter(pred func(*Champion, Role) bool, role Role) []*Champion {
	var out []*Champion
	for _, c := range r.champions {
		if pred(c, role) {
			out = append(out, c)
		}
	}
	return out
}

// Names returns the display names of list.
func Names(list []*Champion) []string {
	out := make([]string, len(list))
	for i, c := range list {
		out[i] = c.Name
	}
	return out
}
