package importer

import (
	"math"
	"testing"
)

func TestHaversineMiles(t *testing.T) {
	// One degree of longitude at the equator is about 69.1 miles.
	got := haversineMiles(LatLon{Lat: 0, Lon: 0}, LatLon{Lat: 0, Lon: 1})
	if math.Abs(got-69.1) > 0.5 {
		t.Errorf("Expected roughly 69.1 miles, got %g", got)
	}

	if d := haversineMiles(LatLon{Lat: 47.5, Lon: -121.7}, LatLon{Lat: 47.5, Lon: -121.7}); d != 0 {
		t.Errorf("Expected zero distance for identical points, got %g", d)
	}
}

func TestDownsample(t *testing.T) {
	points := make([]LatLon, 100)
	for i := range points {
		points[i] = LatLon{Lat: float64(i), Lon: float64(i)}
	}

	sampled := downsample(points, 10)
	if len(sampled) != 11 {
		t.Fatalf("Expected 11 points (10 strided plus the final one), got %d", len(sampled))
	}
	if sampled[0] != points[0] {
		t.Errorf("Expected first point kept, got %+v", sampled[0])
	}
	if sampled[len(sampled)-1] != points[len(points)-1] {
		t.Errorf("Expected final point kept, got %+v", sampled[len(sampled)-1])
	}

	short := []LatLon{{Lat: 1}, {Lat: 2}}
	if got := downsample(short, 10); len(got) != 2 {
		t.Errorf("Expected short input returned unchanged, got %d points", len(got))
	}
}

func TestBuildProfile(t *testing.T) {
	points := []LatLon{{Lat: 0, Lon: 0}, {Lat: 0, Lon: 1}}
	meters := 1000.0
	profile := buildProfile(points, []*float64{&meters, nil})

	if len(profile) != 2 {
		t.Fatalf("Expected 2 profile points, got %d", len(profile))
	}
	if profile[0].DistanceMiles != 0 {
		t.Errorf("Expected first point at distance 0, got %g", profile[0].DistanceMiles)
	}
	if profile[0].ElevationFt != 3281 {
		t.Errorf("Expected 1000 m converted to 3281 ft, got %g", profile[0].ElevationFt)
	}
	if math.Abs(profile[1].DistanceMiles-69.1) > 0.5 {
		t.Errorf("Expected cumulative distance near 69.1, got %g", profile[1].DistanceMiles)
	}
	// A nil elevation reuses the previous sample.
	if profile[1].ElevationFt != profile[0].ElevationFt {
		t.Errorf("Expected gap filled with previous elevation, got %g", profile[1].ElevationFt)
	}
}
