package scoring

import (
	"fmt"

	"github.com/botlane/botlane/pkg/champion"
)

// Selection is the draft state a ranking is computed for. Nil champions are
// blind picks.
type Selection struct {
	Ally         *champion.Champion
	EnemySupport *champion.Champion
	EnemyBottom  *champion.Champion
	Threat       champion.Threat
}

// Blind reports whether nothing is selected.
func (s Selection) Blind() bool {
	return s.Ally == nil && s.EnemySupport == nil && s.EnemyBottom == nil && s.Threat == champion.ThreatNone
}

// SelectAlly sets the ally pick. A champion cannot be on both teams, so an
// enemy support equal to the new ally is cleared.
func (s *Selection) SelectAlly(c *champion.Champion) {
	s.Ally = c
	if c != nil && s.EnemySupport != nil && s.EnemySupport.ID == c.ID {
		s.EnemySupport = nil
	}
}

// SelectEnemySupport sets the enemy support and clears an ally pick equal to it.
func (s *Selection) SelectEnemySupport(c *champion.Champion) {
	s.EnemySupport = c
	if c != nil && s.Ally != nil && s.Ally.ID == c.ID {
		s.Ally = nil
	}
}

// Query is an unresolved selection: champion ids or names as typed by a
// user, and a threat tag.
type Query struct {
	Ally         string `json:"ally,omitempty"`
	EnemySupport string `json:"enemy_support,omitempty"`
	EnemyBottom  string `json:"enemy_bottom,omitempty"`
	Threat       string `json:"threat,omitempty"`
}

// SelectionError reports a query field that does not name a champion valid
// for its slot.
type SelectionError struct {
	Field  string
	Value  string
	Reason string
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("%s %q: %s", e.Field, e.Value, e.Reason)
}

type slotCheck func(*champion.Champion) bool

func resolveSlot(roster *champion.Roster, field, value string, ok slotCheck, want string) (*champion.Champion, error) {
	if value == "" {
		return nil, nil
	}
	c, found := roster.Find(value)
	if !found {
		return nil, &SelectionError{Field: field, Value: value, Reason: "unknown champion"}
	}
	if !ok(c) {
		return nil, &SelectionError{Field: field, Value: value, Reason: "not a " + want}
	}
	return c, nil
}

func isSupport(c *champion.Champion) bool { return c.HasRole(champion.RoleSupport) }

func resolve(roster *champion.Roster, q Query, allyCheck slotCheck, allyWant string) (Selection, error) {
	var sel Selection

	ally, err := resolveSlot(roster, "ally", q.Ally, allyCheck, allyWant)
	if err != nil {
		return sel, err
	}
	enemySupport, err := resolveSlot(roster, "enemy_support", q.EnemySupport, isSupport, "support")
	if err != nil {
		return sel, err
	}
	enemyBottom, err := resolveSlot(roster, "enemy_bottom", q.EnemyBottom, (*champion.Champion).IsBotLaner, "bot laner")
	if err != nil {
		return sel, err
	}
	threat, err := champion.ParseThreat(q.Threat)
	if err != nil {
		return sel, &SelectionError{Field: "threat", Value: q.Threat, Reason: "unknown threat"}
	}

	sel.SelectAlly(ally)
	sel.SelectEnemySupport(enemySupport)
	sel.EnemyBottom = enemyBottom
	sel.Threat = threat
	return sel, nil
}
