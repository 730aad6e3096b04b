package scoring

import (
	"math"
	"sort"

	"github.com/botlane/botlane/pkg/champion"
	"github.com/botlane/botlane/pkg/matchup"
)

// Term is the interface that all scoring terms implement.
type Term interface {
	// Key returns the machine-readable term identifier.
	Key() string
	// Name returns the human-readable term name.
	Name() string
	// Evaluate computes the term for one candidate. It reports false when
	// the term does not apply to the selection.
	Evaluate(c *champion.Champion, sel Selection, repo *matchup.Repository) (TermResult, bool)
}

// Neutral is the score of a candidate nothing is known about.
const Neutral = 50

const (
	scoreFloor = 20
	scoreSpan  = 80
)

// Engine ranks one role's candidates. It only reads its repository and is
// safe for concurrent use.
type Engine struct {
	role       champion.Role
	roster     *champion.Roster
	repo       *matchup.Repository
	candidates []*champion.Champion
	terms      []Term

	allyCheck slotCheck
	allyWant  string
}

// NewBottomEngine creates the engine that ranks marksmen for a lane, given an
// ally support and the enemy picks.
func NewBottomEngine(repo *matchup.Repository, roster *champion.Roster, w Weights) *Engine {
	return &Engine{
		role:       champion.RoleADC,
		roster:     roster,
		repo:       repo,
		candidates: roster.ADCs(),
		terms:      DefaultBottomTerms(w),
		allyCheck:  isSupport,
		allyWant:   "support",
	}
}

// NewSupportEngine creates the engine that ranks supports, given an ally bot
// laner and the enemy picks.
func NewSupportEngine(repo *matchup.Repository, roster *champion.Roster, w Weights) *Engine {
	return &Engine{
		role:       champion.RoleSupport,
		roster:     roster,
		repo:       repo,
		candidates: roster.Supports(),
		terms:      DefaultSupportTerms(w),
		allyCheck:  (*champion.Champion).IsBotLaner,
		allyWant:   "bot laner",
	}
}

// Role returns the role of the ranked candidates.
func (e *Engine) Role() champion.Role { return e.role }

// Resolve turns a query into a selection valid for this engine. An enemy
// support equal to the ally wins and clears the ally.
func (e *Engine) Resolve(q Query) (Selection, error) {
	return resolve(e.roster, q, e.allyCheck, e.allyWant)
}

// Rank scores every candidate against sel. It never fails: missing data
// yields neutral scores.
func (e *Engine) Rank(sel Selection) *Ranking {
	ranking := &Ranking{
		Role:        e.role,
		Blind:       sel.Blind(),
		FeedVersion: e.repo.Version,
		Patch:       e.repo.Patch,
	}

	recs := make([]Recommendation, 0, len(e.candidates))
	for _, c := range e.candidates {
		recs = append(recs, e.score(c, sel))
	}

	normalize(recs, ranking.Blind)

	kept := recs[:0]
	for _, r := range recs {
		if sel.Ally != nil && r.ID == sel.Ally.ID {
			continue
		}
		kept = append(kept, r)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Score > kept[j].Score
	})

	ranking.Recommendations = kept
	return ranking
}

func (e *Engine) score(c *champion.Champion, sel Selection) Recommendation {
	rec := Recommendation{
		ID:       c.ID,
		Name:     c.Name,
		Champion: c,
		Breakdown: Breakdown{
			Threat: sel.Threat,
		},
	}
	if sel.Ally != nil {
		rec.Breakdown.AllyName = sel.Ally.Name
	}
	if sel.EnemySupport != nil {
		rec.Breakdown.EnemySupportName = sel.EnemySupport.Name
	}
	if sel.EnemyBottom != nil {
		rec.Breakdown.EnemyBottomName = sel.EnemyBottom.Name
	}

	// A marksman with a profile counts as having data even when none of
	// its records match the selection.
	if e.role == champion.RoleADC {
		if _, ok := e.repo.Bottom(c.Name); ok {
			rec.HasData = true
		}
	}

	for _, t := range e.terms {
		r, ok := t.Evaluate(c, sel, e.repo)
		if !ok {
			continue
		}
		rec.Raw += r.Contribution
		if r.HasData() {
			rec.HasData = true
		}
		rec.Breakdown.Terms = append(rec.Breakdown.Terms, r)
	}
	return rec
}

// normalize maps raw scores of data-bearing candidates linearly onto
// [20, 100]. Candidates without data, and every candidate of a blind or
// flat ranking, score 50.
func normalize(recs []Recommendation, blind bool) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, r := range recs {
		if !r.HasData {
			continue
		}
		lo = math.Min(lo, r.Raw)
		hi = math.Max(hi, r.Raw)
	}

	for i := range recs {
		r := &recs[i]
		if blind || !r.HasData || hi <= lo {
			r.Score = Neutral
			continue
		}
		r.Score = int(math.Round(scoreFloor + (r.Raw-lo)/(hi-lo)*scoreSpan))
	}
}
