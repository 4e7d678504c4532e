package plan

import "hikesim/internal/hike"

// peakTargets are the end-of-plan goals derived from the hike's demands:
// how long the longest session should get, how much sustained incline to
// work toward, and how many weekly minutes the final build should carry.
type peakTargets struct {
	LongSessionTarget      int
	SustainedInclineTarget float64
	WeeklyVolumeTarget     int
}

// buildPeakTargets scales the hike demands by how much runway the plan has.
// Longer timelines justify more ambitious targets.
func buildPeakTargets(demands hike.Demands, totalWeeks int) peakTargets {
	durationFactor := 0.70
	switch {
	case totalWeeks >= 8:
		durationFactor = 0.85
	case totalWeeks >= 4:
		durationFactor = 0.78
	}

	inclineFactor := 0.7
	if totalWeeks >= 8 {
		inclineFactor = 0.8
	}
	volumeMultiplier := 1.5
	if totalWeeks >= 8 {
		volumeMultiplier = 1.8
	}

	estimated := float64(demands.EstimatedDurationMinutes)
	return peakTargets{
		LongSessionTarget:      round(estimated * durationFactor),
		SustainedInclineTarget: clamp(demands.AverageGradePercent*inclineFactor, 2, 12),
		WeeklyVolumeTarget:     round(estimated * volumeMultiplier),
	}
}

// longSessionTarget interpolates the week's long-session minutes between a
// baseline floor and the peak target. Adaptation weeks stay flat at 15-30
// minutes regardless of the curve.
func longSessionTarget(baselineMinutes, peakLongTarget, weekNumber, totalWeeks int, isAdaptationWeek bool) int {
	if isAdaptationWeek {
		return int(clamp(float64(peakLongTarget)*0.25, 15, 30))
	}
	peakWeek := totalWeeks - 1
	if peakWeek < 1 {
		peakWeek = 1
	}
	progress := float64(weekNumber) / float64(peakWeek)
	if progress > 1 {
		progress = 1
	}
	baselineLong := float64(baselineMinutes) * 0.4
	if baselineLong < 20 {
		baselineLong = 20
	}
	return round(baselineLong + (float64(peakLongTarget)-baselineLong)*progress)
}

// weekInclineCap interpolates from a 3% floor toward the peak sustained
// incline, never exceeding the caller's treadmill limit. Adaptation weeks
// are capped at 3%.
func weekInclineCap(peakInclineTarget float64, weekNumber, totalWeeks int, isAdaptationWeek bool, maxIncline int) float64 {
	limit := float64(maxIncline)
	if isAdaptationWeek {
		if limit < 3 {
			return limit
		}
		return 3
	}
	peakWeek := totalWeeks - 1
	if peakWeek < 1 {
		peakWeek = 1
	}
	progress := float64(weekNumber) / float64(peakWeek)
	if progress > 1 {
		progress = 1
	}
	const base = 3.0
	target := base + (peakInclineTarget-base)*progress
	if target < base {
		target = base
	}
	if target > limit {
		return limit
	}
	return target
}
