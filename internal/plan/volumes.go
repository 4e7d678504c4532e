package plan

// weeklyVolumes produces the periodized per-week total-minutes curve.
//
// Single-week plans get one conservative allocation. Multi-week plans walk
// a build curve toward weeklyTarget inside a 5-10% weekly growth band, drop
// to 78% of the last build every 4th week (deload), and finish at 55% of
// the highest build (taper). Low baselines additionally cap the first two
// weeks so new trainees cannot start at the curve's pace.
func weeklyVolumes(baselineMinutes, totalWeeks, weeklyTarget int) []int {
	if totalWeeks <= 1 {
		initial := 45
		if baselineMinutes > 30 {
			initial = round(float64(baselineMinutes) * 0.85)
			if initial < 20 {
				initial = 20
			}
		}
		return []int{initial}
	}

	volumes := make([]int, 0, totalWeeks)
	lastBuild := 45
	if baselineMinutes > 30 {
		lastBuild = baselineMinutes
		if lastBuild < 30 {
			lastBuild = 30
		}
	}
	peakWeekIndex := totalWeeks - 1
	if peakWeekIndex < 1 {
		peakWeekIndex = 1
	}

	for week := 1; week <= totalWeeks; week++ {
		if week == totalWeeks {
			peak := lastBuild
			for _, v := range volumes {
				if v > peak {
					peak = v
				}
			}
			volumes = append(volumes, round(float64(peak)*0.55))
			continue
		}
		if week%4 == 0 {
			volumes = append(volumes, round(float64(lastBuild)*0.78))
			continue
		}
		remaining := peakWeekIndex - week + 1
		if remaining < 1 {
			remaining = 1
		}
		targetStep := float64(weeklyTarget-lastBuild) / float64(remaining)
		minGrowth := float64(lastBuild) * 1.05
		maxGrowth := float64(lastBuild) * 1.1
		stepTarget := float64(lastBuild) + targetStep
		next := clamp(stepTarget, minGrowth, maxGrowth)
		if next > float64(weeklyTarget) {
			next = float64(weeklyTarget)
		}
		lastBuild = round(next)
		volumes = append(volumes, lastBuild)
	}

	if baselineMinutes <= 30 {
		if volumes[0] > 60 {
			volumes[0] = 60
		}
		if len(volumes) > 1 && volumes[1] > 75 {
			volumes[1] = 75
		}
	}
	return volumes
}
