// Package scoring ranks bot-lane and support candidates from matchup
// statistics. Every signal is discounted by its sample size and every score
// comes with a breakdown of the terms that produced it.
package scoring

import "github.com/botlane/botlane/pkg/champion"

// Ranking is the complete output of one scoring pass.
// Immutable once computed.
type Ranking struct {
	Role            champion.Role    `json:"role"` // role of the candidates
	Blind           bool             `json:"blind"`
	FeedVersion     string           `json:"feed_version,omitempty"`
	Patch           string           `json:"patch,omitempty"`
	Recommendations []Recommendation `json:"recommendations"`
}

// Top returns a ranking holding at most n recommendations. Rankings are
// shared by caches, so r itself is never cut. n <= 0 keeps everything.
func (r *Ranking) Top(n int) *Ranking {
	if n <= 0 || n >= len(r.Recommendations) {
		return r
	}
	cut := *r
	cut.Recommendations = r.Recommendations[:n:n]
	return &cut
}

// Recommendation is one ranked candidate.
type Recommendation struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Champion  *champion.Champion `json:"-"`
	Score     int                `json:"score"` // 0..100, 50 is neutral
	Raw       float64            `json:"raw"`
	HasData   bool               `json:"has_data"`
	Breakdown Breakdown          `json:"breakdown"`
}

// Breakdown explains a candidate's raw score.
type Breakdown struct {
	Terms            []TermResult    `json:"terms"`
	AllyName         string          `json:"ally_name,omitempty"`
	EnemySupportName string          `json:"enemy_support_name,omitempty"`
	EnemyBottomName  string          `json:"enemy_bottom_name,omitempty"`
	Threat           champion.Threat `json:"threat,omitempty"`
}

// Term returns the result of the term with the given key.
func (b Breakdown) Term(key string) (TermResult, bool) {
	for _, t := range b.Terms {
		if t.Key == key {
			return t, true
		}
	}
	return TermResult{}, false
}

// TermResult is the output of a single scoring term for one candidate.
type TermResult struct {
	Key          string      `json:"key"`               // machine key: "synergy"
	Name         string      `json:"name"`              // human name: "Ally synergy"
	Against      string      `json:"against,omitempty"` // champion or threat the term looked at
	Weight       float64     `json:"weight"`
	Contribution float64     `json:"contribution"`
	Signal       *SignalInfo `json:"signal,omitempty"`
	// MissingData is set when the term applied but no statistics exist.
	// A zero contribution without this flag means "no effect".
	MissingData bool `json:"missing_data,omitempty"`
	Matched     bool `json:"matched,omitempty"` // threat terms only
}

// HasData reports whether the term carried a statistical signal or a
// threat match.
func (r TermResult) HasData() bool {
	return r.Signal != nil || r.Matched
}

// SignalInfo is the combined statistic behind a term.
type SignalInfo struct {
	Delta      float64  `json:"delta"`
	Confidence *float64 `json:"confidence"` // 95% margin in points, nil without games
	Games      int      `json:"games"`
}

// Term keys.
const (
	KeySynergy      = "synergy"
	KeyEnemySupport = "enemy_support"
	KeyEnemyBottom  = "enemy_bottom"
	KeyThreat       = "threat"
)
