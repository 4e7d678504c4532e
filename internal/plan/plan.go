// Package plan generates multi-week hiking training schedules from a hike's
// physical profile and a user's availability. Generation is a pure function
// of its inputs: no I/O, no clock reads, no randomness. Irregular situations
// degrade into the plan's Warnings list instead of failing; the only error
// Generate returns is a date it cannot parse.
package plan

import (
	"fmt"
	"strings"

	"hikesim/internal/hike"
)

// Generate builds the full training plan for the given inputs.
func Generate(in Inputs) (*Plan, error) {
	startDate, err := parseLocalDate(in.TrainingStartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid training start date %q: %w", in.TrainingStartDate, err)
	}
	targetDate, err := parseLocalDate(in.TargetDate)
	if err != nil {
		return nil, fmt.Errorf("invalid target date %q: %w", in.TargetDate, err)
	}

	daySpan := int(targetDate.Sub(startDate).Hours()/24) + 1
	totalWeeks := (daySpan + 6) / 7
	if totalWeeks < 1 {
		totalWeeks = 1
	}

	warnings := []string{}
	if totalWeeks < 2 {
		warnings = append(warnings, "Less than two weeks to your target date. Keep sessions short and stay fresh.")
	}

	demands := hike.DeriveDemands(in.Hike)
	minPrep := minPrepWeeks(in.Hike.DistanceMiles, in.Hike.ElevationGainFt)
	if totalWeeks < minPrep {
		warnings = append(warnings, fmt.Sprintf(
			"This hike typically requires at least %d weeks of preparation. Your plan may not fully prepare you.", minPrep))
	}
	if in.BaselineMinutes <= 30 &&
		in.Constraints.TreadmillSessionsPerWeek+in.Constraints.OutdoorHikesPerWeek >= in.DaysPerWeek {
		warnings = append(warnings, "Ambitious plan: recommended only if you already train consistently.")
	}

	targets := buildPeakTargets(demands, totalWeeks)
	volumes := weeklyVolumes(in.BaselineMinutes, totalWeeks, targets.WeeklyVolumeTarget)
	pickedDays := pickTrainingDays(in.DaysPerWeek, in.PreferredDays, in.AnyDays)

	var volumeSum int
	for _, v := range volumes {
		volumeSum += v
	}
	averageWeeklyMinutes := round(float64(volumeSum) / float64(max(len(volumes), 1)))

	lastLongHikeMinutes := round(float64(in.BaselineMinutes) * 0.4)
	peakWeekIndex := 0
	if totalWeeks > 1 {
		peakWeekIndex = totalWeeks - 2
	}

	requestedStrength := 0
	if in.IncludeStrength {
		requestedStrength = in.StrengthSessionsPerWeek
	}

	weeks := make([]WeekPlan, 0, totalWeeks)
	for index, weekVolume := range volumes {
		weekNumber := index + 1
		weekStart := startDate.AddDate(0, 0, index*7)
		weekEnd := weekStart.AddDate(0, 0, 6)
		isAdaptationWeek := in.BaselineMinutes <= 30 && index < 2
		isEventPrepWeek := totalWeeks-weekNumber <= 1
		isDeloadWeek := weekNumber%4 == 0
		isTaperWeek := weekNumber == totalWeeks

		sessions := reconcileSessions(
			in.DaysPerWeek,
			in.Constraints.TreadmillSessionsPerWeek,
			in.Constraints.OutdoorHikesPerWeek,
			requestedStrength,
			in.StrengthOnCardioDays,
		)
		if sessions.Treadmill != in.Constraints.TreadmillSessionsPerWeek ||
			sessions.Outdoor != in.Constraints.OutdoorHikesPerWeek ||
			sessions.Strength != requestedStrength {
			warnings = append(warnings, "Cardio + strength sessions cannot exceed training days.")
		}

		strengthPhase := strengthPhaseFor(isAdaptationWeek, weekNumber, totalWeeks)
		slots := weekSlots(weekNumber, totalWeeks, in.DaysPerWeek, sessions,
			in.IncludeStrength, in.StrengthOnCardioDays, isEventPrepWeek, in.FillActiveRecoveryDays)

		longSession := longSessionTarget(in.BaselineMinutes, targets.LongSessionTarget, weekNumber, totalWeeks, isAdaptationWeek)
		inclineCap := weekInclineCap(targets.SustainedInclineTarget, weekNumber, totalWeeks, isAdaptationWeek, in.Constraints.TreadmillMaxInclinePercent)
		inclineCap = clamp(inclineCap, 0, float64(in.Constraints.TreadmillMaxInclinePercent))

		requiredSessions := sessions.Treadmill + sessions.Outdoor
		if in.IncludeStrength && !in.StrengthOnCardioDays {
			requiredSessions += sessions.Strength
		}
		scheduled, scheduleWarning := scheduleWeekDays(weekStart, weekEnd, in.DaysPerWeek, in.PreferredDays, in.AnyDays, requiredSessions)
		if scheduleWarning != "" {
			warnings = append(warnings, scheduleWarning)
		}

		days := make([]DayPlan, 0, len(scheduled))
		for position, dayDate := range scheduled {
			workoutType := RestDay
			if position < len(slots) {
				workoutType = slots[position]
			}
			isLongSession := workoutType == OutdoorLongHike ||
				(workoutType == Zone2InclineWalk && sessions.Outdoor == 0 && position == 0)

			workout := buildWorkout(workoutContext{
				WeekNumber:         weekNumber,
				Type:               workoutType,
				WeekVolume:         weekVolume,
				Fitness:            in.FitnessLevel,
				Hike:               in.Hike,
				Constraints:        in.Constraints,
				LongHikeMinutes:    lastLongHikeMinutes,
				IsTaperWeek:        isTaperWeek,
				IsDeloadWeek:       isDeloadWeek,
				IsAdaptationWeek:   isAdaptationWeek,
				StrengthPhase:      strengthPhase,
				LongSessionMinutes: longSession,
				InclineCap:         inclineCap,
				IsLongSession:      isLongSession,
				IsEventPrepWeek:    isEventPrepWeek,
			})
			if workout.Type == OutdoorLongHike {
				lastLongHikeMinutes = workout.DurationMinutes
			}
			days = append(days, DayPlan{
				Date:     isoDate(dayDate),
				DayName:  dayName(dayDate),
				Workouts: []Workout{workout},
			})
		}

		if in.IncludeStrength && in.StrengthOnCardioDays && sessions.Strength > 0 {
			cardioCount := sessions.Treadmill + sessions.Outdoor
			if cardioCount > 0 {
				count := min(sessions.Strength, cardioCount)
				attachStrengthAddons(days, count, strengthPhase, in.DaysPerWeek, weekVolume, isEventPrepWeek)
			}
			if hasConsecutiveHighIntensityDays(days) {
				warnings = append(warnings, "Stacked sessions create consecutive high-intensity days. Consider reducing sessions or extending your timeline.")
			}
		}

		totalMinutes := 0
		for _, day := range days {
			for _, w := range day.Workouts {
				totalMinutes += w.DurationMinutes
			}
		}

		notes := weekNotes(isAdaptationWeek, weekNumber, totalWeeks)
		if index == peakWeekIndex {
			peakLongSession := 0
			for _, day := range days {
				for _, w := range day.Workouts {
					if w.DurationMinutes > peakLongSession {
						peakLongSession = w.DurationMinutes
					}
				}
			}
			meetsLong := peakLongSession >= round(float64(demands.EstimatedDurationMinutes)*0.7)
			meetsVolume := totalMinutes >= round(float64(demands.EstimatedDurationMinutes)*1.5)
			meetsIncline := inclineCap >= demands.AverageGradePercent*0.6
			if !meetsLong || !meetsVolume || !meetsIncline {
				notes += " This plan does not fully reach hike-specific demands due to limited time or availability."
			}
		}
		if index > 0 {
			prevVolume := volumes[index-1]
			delta := 0
			if prevVolume != 0 {
				delta = round(float64(weekVolume-prevVolume) / float64(prevVolume) * 100)
			}
			if delta > 0 {
				notes += fmt.Sprintf(" Progression: +%d%% volume vs last week.", delta)
			} else if delta < 0 {
				notes += fmt.Sprintf(" Volume %d%% vs last week.", delta)
			}
		}
		if in.IncludeStrength {
			notes += fmt.Sprintf(" Strength focus: %s.", strengthPhase)
		}

		weeks = append(weeks, WeekPlan{
			WeekNumber:   weekNumber,
			StartDate:    isoDate(weekStart),
			EndDate:      isoDate(weekEnd),
			TotalMinutes: totalMinutes,
			Notes:        notes,
			Focus:        weekFocus(isAdaptationWeek, weekNumber, totalWeeks),
			Days:         days,
		})
	}

	return &Plan{
		TotalWeeks: totalWeeks,
		Warnings:   warnings,
		Summary: Summary{
			DaysPerWeek:          in.DaysPerWeek,
			PreferredDays:        pickedDays,
			AverageWeeklyMinutes: averageWeeklyMinutes,
		},
		Weeks: weeks,
	}, nil
}

// workoutContext carries everything buildWorkout needs for one session.
type workoutContext struct {
	WeekNumber         int
	Type               WorkoutType
	WeekVolume         int
	Fitness            FitnessLevel
	Hike               hike.Profile
	Constraints        Constraints
	LongHikeMinutes    int
	IsTaperWeek        bool
	IsDeloadWeek       bool
	IsAdaptationWeek   bool
	StrengthPhase      string
	LongSessionMinutes int
	InclineCap         float64
	IsLongSession      bool
	IsEventPrepWeek    bool
}

func buildWorkout(ctx workoutContext) Workout {
	duration := allocateDuration(ctx.WeekVolume, ctx.Type)
	inclineCap := ctx.InclineCap
	if ctx.IsAdaptationWeek {
		duration = clampInt(duration, 15, 25)
		inclineCap = clamp(3, 0, float64(ctx.Constraints.TreadmillMaxInclinePercent))
	}

	switch ctx.Type {
	case TreadmillIntervals:
		totalMinutes, segments := synthesizeSegments(ctx.Hike, synthSettings{
			Fitness:       ctx.Fitness,
			TargetMinutes: clampDuration(duration, ctx.Fitness),
			MinIncline:    0,
			MaxIncline:    inclineCap,
			MaxSpeedMph:   ctx.Constraints.MaxSpeedMph,
		})
		notes := "Incline intervals based on hike profile."
		if ctx.IsDeloadWeek || ctx.IsTaperWeek {
			notes = "Shorter intervals, keep effort smooth."
		}
		return Workout{
			ID:              workoutID(ctx.WeekNumber, ctx.Type),
			Type:            ctx.Type,
			DurationMinutes: totalMinutes,
			Notes:           notes,
			Segments:        applyIntervalPattern(segments, ctx.Constraints.MaxSpeedMph, inclineCap),
		}

	case Zone2InclineWalk:
		inclineTarget := clampAverageGrade(ctx.Hike.Points, 2, inclineCap)
		targetMinutes := round(float64(duration) * 0.9)
		if ctx.IsLongSession {
			targetMinutes = max(duration, ctx.LongSessionMinutes)
		}
		totalMinutes, segments := synthesizeSegments(ctx.Hike, synthSettings{
			Fitness:       ctx.Fitness,
			TargetMinutes: clampDuration(targetMinutes, ctx.Fitness),
			MinIncline:    0,
			MaxIncline:    inclineCap,
			MaxSpeedMph:   ctx.Constraints.MaxSpeedMph,
		})
		return Workout{
			ID:              workoutID(ctx.WeekNumber, ctx.Type),
			Type:            ctx.Type,
			DurationMinutes: totalMinutes,
			Notes:           "Steady state, nose-breathing effort.",
			Segments:        smoothSegmentInclines(segments, 5),
			InclineTarget:   &inclineTarget,
		}

	case Strength:
		notes := "Bodyweight squats, lunges, step-ups, core. Intensity: moderate."
		if ctx.IsEventPrepWeek {
			notes = "Reduced strength load; focus on mobility and activation. Intensity: light."
		}
		return Workout{
			ID:              workoutID(ctx.WeekNumber, ctx.Type),
			Type:            ctx.Type,
			DurationMinutes: strengthDurationForWeek(ctx.WeekVolume, ctx.StrengthPhase, ctx.IsEventPrepWeek),
			Notes:           notes,
		}

	case OutdoorLongHike:
		target := max(ctx.LongSessionMinutes, ctx.LongHikeMinutes)
		capped := min(target, ctx.LongHikeMinutes+20)
		longMinutes := capped
		if ctx.IsEventPrepWeek && longMinutes < 60 {
			longMinutes = 60
		}
		notes := fmt.Sprintf("Focus on time-on-feet with %d ft of climbing.", round(float64(ctx.Hike.ElevationGainFt)*0.3))
		if ctx.IsEventPrepWeek {
			notes = "Long outdoor hike with a light weighted pack. Keep effort steady."
		}
		return Workout{
			ID:              workoutID(ctx.WeekNumber, ctx.Type),
			Type:            ctx.Type,
			DurationMinutes: longMinutes,
			Notes:           notes,
		}

	case RestDay:
		return Workout{
			ID:              workoutID(ctx.WeekNumber, ctx.Type),
			Type:            ctx.Type,
			DurationMinutes: 0,
			Notes:           "Rest day.",
		}

	case RecoveryMobility:
		return Workout{
			ID:              workoutID(ctx.WeekNumber, ctx.Type),
			Type:            ctx.Type,
			DurationMinutes: 25,
			Notes:           "Active recovery: 30-60% max HR. Mobility, stretching, easy walk.",
		}
	}

	// Unreachable: WorkoutType is a closed set produced only by weekSlots.
	return Workout{ID: workoutID(ctx.WeekNumber, ctx.Type), Type: ctx.Type}
}

func allocateDuration(weekVolume int, t WorkoutType) int {
	var weight float64
	switch t {
	case OutdoorLongHike:
		weight = 0.35
	case TreadmillIntervals, Zone2InclineWalk:
		weight = 0.25
	case Strength:
		weight = 0.15
	case RecoveryMobility:
		weight = 0.1
	case RestDay:
		weight = 0
	}
	return max(20, round(float64(weekVolume)*weight))
}

func clampDuration(duration int, level FitnessLevel) int {
	maxByLevel := 60
	switch level {
	case Intermediate:
		maxByLevel = 75
	case Advanced:
		maxByLevel = 90
	}
	return min(max(duration, 25), maxByLevel)
}

// clampAverageGrade returns the profile's mean grade bounded to the given
// range; with fewer than two points the minimum applies.
func clampAverageGrade(points []hike.ProfilePoint, minGrade, maxGrade float64) float64 {
	if len(points) < 2 {
		return minGrade
	}
	average, _ := hike.GradeStats(points)
	return clamp(average, minGrade, maxGrade)
}

func strengthDurationForWeek(weekVolume int, phase string, isEventPrepWeek bool) int {
	base := allocateDuration(weekVolume, Strength)
	multiplier := 1.0
	switch {
	case strings.Contains(phase, "mobility") || strings.Contains(phase, "recovery"):
		multiplier = 0.7
	case strings.Contains(phase, "maintenance"):
		multiplier = 0.85
	}
	if isEventPrepWeek && multiplier > 0.7 {
		multiplier = 0.7
	}
	duration := max(12, round(float64(base)*multiplier))
	if isEventPrepWeek && duration > 15 {
		duration = 15
	}
	return duration
}

func strengthPhaseFor(isAdaptation bool, weekNumber, totalWeeks int) string {
	switch {
	case weekNumber == totalWeeks:
		return "light mobility for recovery"
	case isAdaptation && weekNumber <= 2:
		return "movement prep & injury prevention"
	case weekNumber == totalWeeks-1:
		return "maintenance strength"
	}
	return "leg strength + core"
}

func strengthNotesForPhase(phase string) string {
	switch {
	case strings.Contains(phase, "mobility"):
		return "Movement prep & injury prevention. Intensity: light."
	case strings.Contains(phase, "maintenance"):
		return "Maintain strength, avoid fatigue. Intensity: moderate."
	case strings.Contains(phase, "recovery"):
		return "Strength reduced for recovery. Intensity: light."
	}
	return "Strength to support climbing endurance. Intensity: moderate."
}

// attachStrengthAddons prepends up to two strength sessions onto existing
// cardio days. Add-ons never create new training days.
func attachStrengthAddons(days []DayPlan, count int, phase string, trainingDaysPerWeek, weekVolume int, isEventPrepWeek bool) {
	var cardioIdx []int
	for i, day := range days {
		for _, w := range day.Workouts {
			if w.Type == OutdoorLongHike || w.Type == TreadmillIntervals || w.Type == Zone2InclineWalk {
				cardioIdx = append(cardioIdx, i)
				break
			}
		}
	}

	remaining := min(count, 2, len(cardioIdx))
	if trainingDaysPerWeek <= 2 {
		remaining = min(2, len(cardioIdx))
	}

	for _, i := range cardioIdx {
		if remaining <= 0 {
			break
		}
		addon := Workout{
			ID:              days[i].Date + "-strength-addon",
			Type:            Strength,
			DurationMinutes: strengthDurationForWeek(weekVolume, phase, isEventPrepWeek),
			Notes:           strengthNotesForPhase(phase) + " Do strength first, then cardio 6+ hours later.",
		}
		days[i].Workouts = append([]Workout{addon}, days[i].Workouts...)
		remaining--
	}
}

func hasConsecutiveHighIntensityDays(days []DayPlan) bool {
	for i := 0; i+1 < len(days); i++ {
		if isHighIntensityDay(days[i]) && isHighIntensityDay(days[i+1]) {
			return true
		}
	}
	return false
}

func isHighIntensityDay(day DayPlan) bool {
	for _, w := range day.Workouts {
		if w.Type == OutdoorLongHike || w.Type == TreadmillIntervals {
			return true
		}
	}
	return false
}

func weekNotes(isAdaptation bool, weekNumber, totalWeeks int) string {
	switch {
	case isAdaptation && weekNumber <= 2:
		return "Adaptation week: focus on consistency and easy effort."
	case weekNumber == totalWeeks:
		return "Taper week: reduce volume, keep a little intensity."
	case weekNumber%4 == 0:
		return "Deload week: reduce volume and focus on recovery."
	}
	return "Build week: small volume increase."
}

func weekFocus(isAdaptation bool, weekNumber, totalWeeks int) string {
	switch {
	case isAdaptation && weekNumber <= 2:
		return "Adaptation: building consistency"
	case weekNumber == totalWeeks:
		return "Taper: reduce volume, stay sharp"
	case weekNumber%4 == 0:
		return "Deload: emphasize recovery"
	case weekNumber == totalWeeks-1:
		return "Peak: hike-specific endurance"
	}
	return "Build: increasing time-on-feet"
}

// minPrepWeeks is a coarse lookup of how many weeks a hike of this size
// usually needs.
func minPrepWeeks(distanceMiles float64, elevationGainFt int) int {
	switch {
	case distanceMiles <= 5 && elevationGainFt <= 1000:
		return 4
	case distanceMiles <= 8 || elevationGainFt <= 3000:
		return 6
	case distanceMiles >= 12 || elevationGainFt >= 4500:
		return 12
	}
	return 8
}

func workoutID(weekNumber int, t WorkoutType) string {
	return fmt.Sprintf("%d-%s", weekNumber, strings.ToLower(strings.ReplaceAll(string(t), " ", "-")))
}
