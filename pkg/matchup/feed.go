package matchup

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

// RawFeed is the decoded statistics document before name resolution.
type RawFeed struct {
	Patch       string
	GeneratedAt string
	Version     string // content hash of the source bytes
	Bottom      map[string]RawEntry
	Support     map[string]RawEntry
	// Warnings lists the parts of the document that were dropped as malformed.
	Warnings []string
}

// RawEntry holds the record lists of one champion in the feed.
type RawEntry struct {
	CountersSupport []RawRecord
	CountersBottom  []RawRecord
	SynergySupport  []RawRecord
	SynergyBottom   []RawRecord
}

// RawRecord is a single feed record. Records without a delta never make it
// into a RawEntry.
type RawRecord struct {
	Opponent string
	Ally     string
	Delta    float64
	Games    int
}

// ParseFeed decodes a statistics document. Only a document that is not a
// JSON object is an error: malformed sections, entries and records are
// dropped and reported in Warnings.
func ParseFeed(data []byte) (*RawFeed, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("decoding feed: %w", err)
	}

	sum := sha256.Sum256(data)
	feed := &RawFeed{Version: hex.EncodeToString(sum[:])[:12]}

	if raw, ok := top["patch"]; ok {
		_ = json.Unmarshal(raw, &feed.Patch)
	}
	if raw, ok := top["generatedAt"]; ok {
		_ = json.Unmarshal(raw, &feed.GeneratedAt)
	}

	feed.Bottom = feed.decodeSection("bottom", top["bottom"])
	feed.Support = feed.decodeSection("support", top["support"])
	return feed, nil
}

func (f *RawFeed) warnf(format string, args ...any) {
	f.Warnings = append(f.Warnings, fmt.Sprintf(format, args...))
}

func (f *RawFeed) decodeSection(name string, raw json.RawMessage) map[string]RawEntry {
	out := make(map[string]RawEntry)
	if raw == nil {
		f.warnf("section %q missing", name)
		return out
	}

	var entries map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil || entries == nil {
		f.warnf("section %q is not an object", name)
		return out
	}

	for champ, rawEntry := range entries {
		var groups map[string]json.RawMessage
		if err := json.Unmarshal(rawEntry, &groups); err != nil || groups == nil {
			f.warnf("%s.%s is not an object", name, champ)
			continue
		}
		counters := f.decodeGroup(name, champ, "counters", groups["counters"])
		synergy := f.decodeGroup(name, champ, "synergy", groups["synergy"])

		out[champ] = RawEntry{
			CountersSupport: f.decodeRecords(name, champ, "counters.support", counters["support"]),
			CountersBottom:  f.decodeRecords(name, champ, "counters.bottom", counters["bottom"]),
			SynergySupport:  f.decodeRecords(name, champ, "synergy.support", synergy["support"]),
			SynergyBottom:   f.decodeRecords(name, champ, "synergy.bottom", synergy["bottom"]),
		}
	}
	return out
}

func (f *RawFeed) decodeGroup(section, champ, group string, raw json.RawMessage) map[string]json.RawMessage {
	if raw == nil {
		return nil
	}
	var lists map[string]json.RawMessage
	if err := json.Unmarshal(raw, &lists); err != nil {
		f.warnf("%s.%s.%s is not an object", section, champ, group)
		return nil
	}
	return lists
}

func (f *RawFeed) decodeRecords(section, champ, list string, raw json.RawMessage) []RawRecord {
	if raw == nil {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		f.warnf("%s.%s.%s is not an array", section, champ, list)
		return nil
	}

	var out []RawRecord
	skipped, badGames := 0, 0
	for _, item := range items {
		rec, ok, gamesOK := decodeRecord(item)
		if !ok {
			skipped++
			continue
		}
		if !gamesOK {
			badGames++
		}
		out = append(out, rec)
	}
	if skipped > 0 {
		f.warnf("%s.%s.%s: skipped %d malformed records", section, champ, list, skipped)
	}
	if badGames > 0 {
		f.warnf("%s.%s.%s: %d records have unreadable games, counted as 0", section, champ, list, badGames)
	}
	return out
}

// decodeRecord drops records without a numeric delta. An unreadable games
// value keeps the record with zero games and reports gamesOK false.
func decodeRecord(raw json.RawMessage) (rec RawRecord, ok, gamesOK bool) {
	var r struct {
		Opponent *string         `json:"opponent"`
		Ally     *string         `json:"ally"`
		Delta    *float64        `json:"delta"`
		Games    json.RawMessage `json:"games"`
	}
	if err := json.Unmarshal(raw, &r); err != nil || r.Delta == nil {
		return RawRecord{}, false, false
	}

	rec = RawRecord{Delta: *r.Delta}
	if r.Opponent != nil {
		rec.Opponent = *r.Opponent
	}
	if r.Ally != nil {
		rec.Ally = *r.Ally
	}
	games, gamesOK := decodeGames(r.Games)
	rec.Games = games
	return rec, true, gamesOK
}

// decodeGames clamps to [0, math.MaxInt]. Absent and null values are zero
// games and not an error.
func decodeGames(raw json.RawMessage) (int, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, true
	}
	var g float64
	if err := json.Unmarshal(raw, &g); err != nil {
		return 0, false
	}
	switch {
	case math.IsNaN(g) || g <= 0:
		return 0, true
	case g >= math.MaxInt:
		return math.MaxInt, true
	}
	return int(g), true
}

// NameResolver maps raw feed identifiers to canonical champion names.
type NameResolver interface {
	Normalize(raw string) string
}

// Build resolves every name in feed and assembles the repository.
// botLaners lists the canonical names of bottom-lane champions; counter
// records against one of them also seed the laner's enemy-bottom data.
func Build(feed *RawFeed, names NameResolver, botLaners []string) *Repository {
	repo := &Repository{
		bottom:  make(map[string]*BotLanerData),
		support: make(map[string]*SupportData),
	}
	if feed == nil {
		return repo
	}
	repo.Patch = feed.Patch
	repo.Version = feed.Version

	isBotLaner := make(map[string]bool, len(botLaners))
	for _, n := range botLaners {
		isBotLaner[n] = true
	}

	for _, raw := range sortedKeys(feed.Bottom) {
		entry := feed.Bottom[raw]
		name := names.Normalize(raw)
		d, ok := repo.bottom[name]
		if !ok {
			d = newBotLanerData()
			repo.bottom[name] = d
		}

		for _, rec := range entry.CountersSupport {
			other := names.Normalize(firstNonEmpty(rec.Opponent, rec.Ally))
			if other == "" {
				continue
			}
			v := Value{Delta: rec.Delta, Games: rec.Games}
			d.counters[other] = v
			if isBotLaner[other] {
				if _, exists := d.enemyBottom[other]; !exists {
					d.enemyBottom[other] = v
				}
			}
		}
		for _, rec := range entry.CountersBottom {
			other := names.Normalize(firstNonEmpty(rec.Opponent, rec.Ally))
			if other == "" {
				continue
			}
			d.enemyBottom[other] = Value{Delta: rec.Delta, Games: rec.Games}
			d.explicitBottom[other] = true
		}
		for _, rec := range entry.SynergySupport {
			other := names.Normalize(firstNonEmpty(rec.Ally, rec.Opponent))
			if other == "" {
				continue
			}
			d.synergy[other] = Value{Delta: rec.Delta, Games: rec.Games}
		}
	}

	for _, raw := range sortedKeys(feed.Support) {
		entry := feed.Support[raw]
		name := names.Normalize(raw)
		d, ok := repo.support[name]
		if !ok {
			d = newSupportData()
			repo.support[name] = d
		}

		for _, rec := range entry.CountersSupport {
			if other := names.Normalize(rec.Opponent); other != "" {
				d.vsSupport[other] = Value{Delta: rec.Delta, Games: rec.Games}
			}
		}
		for _, rec := range entry.CountersBottom {
			if other := names.Normalize(rec.Opponent); other != "" {
				d.vsBottom[other] = Value{Delta: rec.Delta, Games: rec.Games}
			}
		}
		for _, rec := range entry.SynergyBottom {
			if other := names.Normalize(firstNonEmpty(rec.Ally, rec.Opponent)); other != "" {
				d.synergyBottom[other] = Value{Delta: rec.Delta, Games: rec.Games}
			}
		}
	}

	return repo
}

func sortedKeys(m map[string]RawEntry) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
