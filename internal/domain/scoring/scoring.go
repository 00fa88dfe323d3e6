// Package scoring maps a level's rank and a run's percent to list points.
package scoring

import "math"

// Curve constants.
const (
	// LegacyRank is the last rank that awards points.
	LegacyRank = 100

	baseScore     = 200.0
	rankDecay     = 24.9975
	rankExponent  = 0.4
	progressShare = 2.0 / 3.0
	roundScale    = 1000 // 3 decimal places
)

// Score returns the points for reaching percent on the level at rank, where
// percentToQualify is the lowest percent that earns anything.
//
// Ranks past LegacyRank and runs below the threshold give zero. A full run is
// worth the rank's base value; partial runs interpolate linearly from the
// threshold and keep two thirds of the result.
func Score(rank, percent, percentToQualify int) float64 {
	if rank < 1 || rank > LegacyRank {
		return 0
	}
	if percent < percentToQualify {
		return 0
	}

	base := baseScore - rankDecay*math.Pow(float64(rank-1), rankExponent)
	floor := float64(percentToQualify - 1)
	score := base * (float64(percent) - floor) / (100 - floor)
	if percent != 100 {
		score *= progressShare
	}
	return math.Max(score, 0)
}

// Round rounds x to three decimal places. It is applied to totals only.
func Round(x float64) float64 {
	return math.Round(x*roundScale) / roundScale
}
