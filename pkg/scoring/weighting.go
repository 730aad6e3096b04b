package scoring

import (
	"math"

	"github.com/botlane/botlane/pkg/matchup"
)

// DefaultConfidenceDecay is the sample size at which a signal keeps about 63%
// of its delta.
const DefaultConfidenceDecay = 1000.0

const z95 = 1.96

// WeightedDelta discounts a signal's delta by its sample size:
// delta * (1 - e^(-games/k)). Absent signals weigh 0.
func WeightedDelta(s matchup.Signal, k float64) float64 {
	v, ok := s.Get()
	if !ok {
		return 0
	}
	if k <= 0 {
		k = DefaultConfidenceDecay
	}
	games := math.Max(0, float64(v.Games))
	return v.Delta * (1 - math.Exp(-games/k))
}

// ConfidenceMargin returns the 95% margin of error, in percentage points, of
// the win rate implied by the signal. The delta is read as a shift from a 50%
// baseline. It reports false for absent signals and signals without games.
func ConfidenceMargin(s matchup.Signal) (float64, bool) {
	v, ok := s.Get()
	if !ok || v.Games <= 0 {
		return 0, false
	}
	wr := math.Min(1, math.Max(0, 0.5+v.Delta/100))
	se := math.Sqrt(wr * (1 - wr) / float64(v.Games))
	return z95 * se * 100, true
}

// Combine merges independent reports of the same signal. With games behind
// them the deltas are averaged weighted by games; otherwise they are averaged
// plainly and the result has zero games. Absent inputs are ignored.
func Combine(signals ...matchup.Signal) matchup.Signal {
	var (
		n        int
		games    float64
		sum      float64
		weighted float64
	)
	for _, s := range signals {
		v, ok := s.Get()
		if !ok {
			continue
		}
		n++
		g := float64(max(0, v.Games))
		games += g
		sum += v.Delta
		weighted += v.Delta * g
	}

	switch {
	case n == 0:
		return matchup.Absent()
	case games > 0:
		return matchup.Present(matchup.Value{Delta: weighted / games, Games: saturate(games)})
	default:
		return matchup.Present(matchup.Value{Delta: sum / float64(n), Games: 0})
	}
}

// saturate converts a game total back to int without wrapping.
func saturate(g float64) int {
	if g >= math.MaxInt {
		return math.MaxInt
	}
	return int(g)
}

func signalInfo(s matchup.Signal) *SignalInfo {
	v, ok := s.Get()
	if !ok {
		return nil
	}
	info := &SignalInfo{Delta: v.Delta, Games: v.Games}
	if m, ok := ConfidenceMargin(s); ok {
		info.Confidence = &m
	}
	return info
}
