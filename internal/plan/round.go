package plan

import "math"

// All rounding in the engine is round-half-away-from-zero (math.Round),
// both for whole minutes and for step rounding. One rule keeps boundary
// cases reproducible across platforms.

func round(v float64) int {
	return int(math.Round(v))
}

// roundToStep snaps v to the nearest multiple of step, e.g. 0.5-minute or
// 0.1-mph increments.
func roundToStep(v, step float64) float64 {
	return math.Round(v/step) * step
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
