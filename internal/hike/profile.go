package hike

import "math"

// feetPerMile converts horizontal miles to feet when computing grades.
const feetPerMile = 5280

// minSegmentMiles is the floor applied to the distance between two profile
// points so a repeated distance sample cannot divide by zero.
const minSegmentMiles = 0.01

// ProfilePoint is one elevation sample along a hike, measured from the
// trailhead. Points are ordered by distance by convention; the order is not
// enforced here.
type ProfilePoint struct {
	DistanceMiles float64 `json:"distanceMiles"`
	ElevationFt   float64 `json:"elevationFt"`
}

// Profile describes the physical shape of a hike. It is read-only input to
// the plan engine; callers own the data.
type Profile struct {
	DistanceMiles   float64
	ElevationGainFt int
	Points          []ProfilePoint
}

// GradeSegment is the stretch between two consecutive profile points.
type GradeSegment struct {
	DistanceMiles    float64
	ElevationDeltaFt float64
	GradePercent     float64
}

// GradeSegments converts the profile points into per-pair grade segments.
// Fewer than two points yields nil.
func (p Profile) GradeSegments() []GradeSegment {
	if len(p.Points) < 2 {
		return nil
	}
	segments := make([]GradeSegment, 0, len(p.Points)-1)
	for i := 1; i < len(p.Points); i++ {
		distance := math.Max(p.Points[i].DistanceMiles-p.Points[i-1].DistanceMiles, minSegmentMiles)
		delta := p.Points[i].ElevationFt - p.Points[i-1].ElevationFt
		segments = append(segments, GradeSegment{
			DistanceMiles:    distance,
			ElevationDeltaFt: delta,
			GradePercent:     (delta / (distance * feetPerMile)) * 100,
		})
	}
	return segments
}

// Demands summarizes what a hike asks of the hiker: how long it likely
// takes and how steep it is on average and at its most sustained.
type Demands struct {
	EstimatedDurationMinutes int
	TotalElevationGainFt     int
	AverageGradePercent      float64
	MaxSustainedGradePercent float64
}

// DeriveDemands estimates completion time from distance and gain (3 mph
// flat pace plus half an hour per 1000 ft of climbing) and computes grade
// statistics from the profile points.
func DeriveDemands(p Profile) Demands {
	estimated := math.Round((p.DistanceMiles/3 + float64(p.ElevationGainFt)/1000*0.5) * 60)
	average, maxSustained := GradeStats(p.Points)
	return Demands{
		EstimatedDurationMinutes: int(estimated),
		TotalElevationGainFt:     p.ElevationGainFt,
		AverageGradePercent:      average,
		MaxSustainedGradePercent: maxSustained,
	}
}

// GradeStats returns the mean grade across consecutive point pairs and the
// maximum 3-segment moving average. The sustained figure is never below the
// simple average. With fewer than two points both are zero.
func GradeStats(points []ProfilePoint) (average, maxSustained float64) {
	if len(points) < 2 {
		return 0, 0
	}
	grades := make([]float64, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		distance := math.Max(points[i].DistanceMiles-points[i-1].DistanceMiles, minSegmentMiles)
		delta := points[i].ElevationFt - points[i-1].ElevationFt
		grades = append(grades, (delta/(distance*feetPerMile))*100)
	}

	var total float64
	for _, g := range grades {
		total += g
	}
	average = total / float64(len(grades))

	const window = 3
	maxSustained = average
	for i := range grades {
		end := i + window
		if end > len(grades) {
			end = len(grades)
		}
		var sum float64
		for _, g := range grades[i:end] {
			sum += g
		}
		avg := sum / float64(end-i)
		if avg > maxSustained {
			maxSustained = avg
		}
	}
	return average, maxSustained
}
