package importer

import (
	"math"

	"hikesim/internal/hike"
)

// LatLon is a geographic coordinate from trail geometry.
type LatLon struct {
	Lat float64
	Lon float64
}

const earthRadiusMiles = 3958.8

// haversineMiles returns the great-circle distance between two coordinates.
func haversineMiles(a, b LatLon) float64 {
	phi1 := a.Lat * math.Pi / 180
	phi2 := b.Lat * math.Pi / 180
	dPhi := (b.Lat - a.Lat) * math.Pi / 180
	dLambda := (b.Lon - a.Lon) * math.Pi / 180
	h := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	return earthRadiusMiles * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// downsample thins a point sequence to roughly the target size, always
// keeping the final point.
func downsample(points []LatLon, target int) []LatLon {
	if len(points) <= target {
		return points
	}
	step := len(points) / target
	if step < 1 {
		step = 1
	}
	var sampled []LatLon
	for i := 0; i < len(points); i += step {
		sampled = append(sampled, points[i])
	}
	if sampled[len(sampled)-1] != points[len(points)-1] {
		sampled = append(sampled, points[len(points)-1])
	}
	return sampled
}

// buildProfile pairs coordinates with elevations (meters, nil for lookup
// gaps) into cumulative-distance profile points in miles and feet. A nil
// elevation reuses the previous point's value.
func buildProfile(points []LatLon, elevations []*float64) []hike.ProfilePoint {
	const feetPerMeter = 3.28084
	profile := make([]hike.ProfilePoint, 0, len(points))
	distance := 0.0
	lastElevation := 0.0
	for i, p := range points {
		if i > 0 {
			distance += haversineMiles(points[i-1], p)
		}
		elevation := lastElevation
		if elevations[i] != nil {
			elevation = *elevations[i]
		}
		lastElevation = elevation
		profile = append(profile, hike.ProfilePoint{
			DistanceMiles: math.Round(distance*100) / 100,
			ElevationFt:   math.Round(elevation * feetPerMeter),
		})
	}
	return profile
}
