package champion

import (
	"strings"
	"unicode"
)

// aliases maps lookup keys that do not follow from a roster id or name to
// their canonical display name.
var aliases = map[string]string{
	"renata":      "Renata Glasc",
	"renataglasc": "Renata Glasc",
	"tahmkench":   "Tahm Kench",
	"missfortune": "Miss Fortune",
	"kogmaw":      "Kog'Maw",
	"velkoz":      "Vel'Koz",
	"kaisa":       "Kai'Sa",
}

// Key reduces a champion identifier to its lookup form: lower case with
// apostrophes, hyphens and whitespace removed.
func Key(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r == '\'' || r == '-' || unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// Normalizer maps free-form champion identifiers from statistics feeds to
// canonical display names. It is read-only after construction.
type Normalizer struct {
	table map[string]string
}

// NewNormalizer builds the lookup table from every roster champion's id and
// name plus the curated aliases. Aliases win over roster-derived keys.
func NewNormalizer(r *Roster) *Normalizer {
	n := &Normalizer{table: make(map[string]string, len(aliases)+len(r.champions)*2)}
	for _, c := range r.champions {
		n.table[Key(c.ID)] = c.Name
		n.table[Key(c.Name)] = c.Name
	}
	for k, v := range aliases {
		n.table[k] = v
	}
	return n
}

// Normalize returns the canonical name for raw, or raw unchanged when it is
// not known.
func (n *Normalizer) Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	if name, ok := n.table[Key(raw)]; ok {
		return name
	}
	return raw
}
