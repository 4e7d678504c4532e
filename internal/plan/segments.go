package plan

import (
	"strconv"

	"hikesim/internal/hike"
)

const (
	warmUpMinutes   = 5.0
	coolDownMinutes = 5.0
	minBodySegments = 10
	maxBodySegments = 30
)

// synthSettings bound the synthesized segments for one workout.
type synthSettings struct {
	Fitness       FitnessLevel
	TargetMinutes int
	PackWeightLbs float64
	MinIncline    float64
	MaxIncline    float64
	MaxSpeedMph   float64
}

type speedBand struct {
	Min float64
	Max float64
}

func fitnessSpeeds(level FitnessLevel) speedBand {
	switch level {
	case Beginner:
		return speedBand{Min: 2.0, Max: 3.2}
	case Intermediate:
		return speedBand{Min: 2.8, Max: 4.2}
	case Advanced:
		return speedBand{Min: 3.2, Max: 5.0}
	}
	return speedBand{Min: 2.0, Max: 3.2}
}

func warmUpSpeed(level FitnessLevel) float64 {
	switch level {
	case Beginner:
		return 2.0
	case Intermediate:
		return 2.6
	case Advanced:
		return 3.0
	}
	return 2.0
}

// computeSpeed derives treadmill speed from incline: a penalty going up, a
// bounded boost going down, and a small deduction per pound of pack weight,
// clamped to the fitness band and the caller's speed limit.
func computeSpeed(incline float64, level FitnessLevel, maxSpeed, packWeightLbs float64) float64 {
	band := fitnessSpeeds(level)
	speedRange := band.Max - band.Min
	speed := band.Max
	if incline > 0 {
		speed -= incline * 0.08
	}
	if incline < 0 {
		boost := -incline * 0.03
		if boost > speedRange*0.3 {
			boost = speedRange * 0.3
		}
		speed += boost
	}
	if packWeightLbs > 0 {
		speed -= packWeightLbs * 0.01
	}
	upper := band.Max
	if maxSpeed < upper {
		upper = maxSpeed
	}
	return clamp(speed, band.Min, upper)
}

// normalizeSegmentCount rescales a grade-segment sequence into the 10..30
// band: short sequences are repeatedly bisected (equal distance/elevation
// halves at the same grade), long ones are grouped into equal-size buckets
// whose aggregate grade is recomputed from the summed rise and run.
func normalizeSegmentCount(segments []hike.GradeSegment) []hike.GradeSegment {
	if len(segments) == 0 {
		return nil
	}
	normalized := make([]hike.GradeSegment, len(segments))
	copy(normalized, segments)

	for len(normalized) < minBodySegments {
		expanded := make([]hike.GradeSegment, 0, len(normalized)*2)
		for _, seg := range normalized {
			half := hike.GradeSegment{
				DistanceMiles:    seg.DistanceMiles / 2,
				ElevationDeltaFt: seg.ElevationDeltaFt / 2,
				GradePercent:     seg.GradePercent,
			}
			expanded = append(expanded, half, half)
		}
		normalized = expanded
	}

	for len(normalized) > maxBodySegments {
		groupSize := (len(normalized) + maxBodySegments - 1) / maxBodySegments
		grouped := make([]hike.GradeSegment, 0, maxBodySegments)
		for i := 0; i < len(normalized); i += groupSize {
			end := i + groupSize
			if end > len(normalized) {
				end = len(normalized)
			}
			var distance, elevation float64
			for _, seg := range normalized[i:end] {
				distance += seg.DistanceMiles
				elevation += seg.ElevationDeltaFt
			}
			grade := 0.0
			if distance != 0 {
				grade = (elevation / (distance * 5280)) * 100
			}
			grouped = append(grouped, hike.GradeSegment{
				DistanceMiles:    distance,
				ElevationDeltaFt: elevation,
				GradePercent:     grade,
			})
		}
		normalized = grouped
	}
	return normalized
}

// smoothGrades applies a symmetric 3-element moving average.
func smoothGrades(grades []float64) []float64 {
	if len(grades) == 0 {
		return nil
	}
	smoothed := make([]float64, len(grades))
	for i := range grades {
		start := i - 1
		if start < 0 {
			start = 0
		}
		end := i + 2
		if end > len(grades) {
			end = len(grades)
		}
		var sum float64
		for _, g := range grades[start:end] {
			sum += g
		}
		smoothed[i] = sum / float64(end-start)
	}
	return smoothed
}

// synthesizeSegments turns a hike profile into a warm-up, a terrain-shaped
// main body, and a cool-down. Main-body minutes are distributed in
// proportion to each segment's effort score (distance plus weighted climb),
// with the final segment absorbing the rounding remainder. All values are
// rounded to fixed steps (0.5 min, 0.5% incline, 0.1 mph) after clamping,
// then re-clamped.
func synthesizeSegments(profile hike.Profile, s synthSettings) (totalMinutes int, segments []Segment) {
	totalMinutes = s.TargetMinutes
	if totalMinutes < 20 {
		totalMinutes = 20
	}
	mainDuration := float64(totalMinutes) - warmUpMinutes - coolDownMinutes
	if mainDuration < 5 {
		mainDuration = 5
	}

	normalized := normalizeSegmentCount(profile.GradeSegments())
	grades := make([]float64, len(normalized))
	for i, seg := range normalized {
		grades[i] = seg.GradePercent
	}
	smoothed := smoothGrades(grades)

	effortScores := make([]float64, len(normalized))
	var totalEffort float64
	for i, seg := range normalized {
		climb := seg.ElevationDeltaFt
		if climb < 0 {
			climb = 0
		}
		effortScores[i] = seg.DistanceMiles + climb/1000*1.4
		totalEffort += effortScores[i]
	}
	if totalEffort == 0 {
		totalEffort = 1
	}

	packNote := ""
	if s.PackWeightLbs > 0 {
		packNote = "Pack weight " + formatPounds(s.PackWeightLbs) + " lbs"
	}

	var body []Segment
	accumulated := 0.0
	for i := range normalized {
		var raw float64
		if i == len(normalized)-1 {
			raw = mainDuration - accumulated
		} else {
			raw = mainDuration * (effortScores[i] / totalEffort)
		}
		minutes := roundToStep(raw, 0.5)
		accumulated += minutes

		incline := clamp(smoothed[i], s.MinIncline, s.MaxIncline)
		speed := computeSpeed(incline, s.Fitness, s.MaxSpeedMph, s.PackWeightLbs)
		body = append(body, Segment{
			Index:          i + 1,
			Minutes:        minutes,
			InclinePercent: clamp(roundToStep(incline, 0.5), s.MinIncline, s.MaxIncline),
			SpeedMph:       clamp(round1(speed), 0, s.MaxSpeedMph),
			Note:           packNote,
		})
	}

	rawWarmSpeed := warmUpSpeed(s.Fitness)
	rawCoolSpeed := rawWarmSpeed - 0.2
	if floor := fitnessSpeeds(s.Fitness).Min; rawCoolSpeed < floor {
		rawCoolSpeed = floor
	}

	warmUp := Segment{
		Index:          0,
		Minutes:        warmUpMinutes,
		InclinePercent: clamp(roundToStep(clamp(1, s.MinIncline, s.MaxIncline), 0.5), s.MinIncline, s.MaxIncline),
		SpeedMph:       clamp(round1(clamp(rawWarmSpeed, 1.8, s.MaxSpeedMph)), 0, s.MaxSpeedMph),
		Note:           "Warm-up",
	}
	coolDown := Segment{
		Index:          len(body) + 1,
		Minutes:        coolDownMinutes,
		InclinePercent: clamp(roundToStep(clamp(0.5, s.MinIncline, s.MaxIncline), 0.5), s.MinIncline, s.MaxIncline),
		SpeedMph:       clamp(round1(clamp(rawCoolSpeed, 1.6, s.MaxSpeedMph)), 0, s.MaxSpeedMph),
		Note:           "Cool-down",
	}

	segments = make([]Segment, 0, len(body)+2)
	segments = append(segments, warmUp)
	segments = append(segments, body...)
	segments = append(segments, coolDown)
	return totalMinutes, segments
}

func formatPounds(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
