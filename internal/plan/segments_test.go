package plan

import (
	"math"
	"testing"

	"hikesim/internal/hike"
)

func steadyClimbProfile() hike.Profile {
	return hike.Profile{
		DistanceMiles:   4,
		ElevationGainFt: 2000,
		Points: []hike.ProfilePoint{
			{DistanceMiles: 0, ElevationFt: 0},
			{DistanceMiles: 4, ElevationFt: 2000},
		},
	}
}

func TestFitnessSpeeds(t *testing.T) {
	beginner := fitnessSpeeds(Beginner)
	advanced := fitnessSpeeds(Advanced)
	if beginner.Max > advanced.Min {
		t.Errorf("Expected beginner max %g at or below advanced min %g", beginner.Max, advanced.Min)
	}
	if beginner.Max >= advanced.Max {
		t.Errorf("Expected beginner max %g below advanced max %g", beginner.Max, advanced.Max)
	}
	if band := fitnessSpeeds(FitnessLevel("unknown")); band != beginner {
		t.Errorf("Unknown level should fall back to beginner band, got %+v", band)
	}
}

func TestComputeSpeed(t *testing.T) {
	t.Run("UphillSlowsDown", func(t *testing.T) {
		flat := computeSpeed(0, Intermediate, 10, 0)
		steep := computeSpeed(8, Intermediate, 10, 0)
		if steep >= flat {
			t.Errorf("Expected uphill speed %g below flat speed %g", steep, flat)
		}
	})

	t.Run("StaysWithinBand", func(t *testing.T) {
		band := fitnessSpeeds(Beginner)
		speed := computeSpeed(20, Beginner, 10, 50)
		if speed < band.Min {
			t.Errorf("Speed %g below band minimum %g", speed, band.Min)
		}
	})

	t.Run("RespectsSpeedLimit", func(t *testing.T) {
		speed := computeSpeed(-5, Advanced, 3.5, 0)
		if speed > 3.5 {
			t.Errorf("Speed %g exceeds limit 3.5", speed)
		}
	})
}

func TestNormalizeSegmentCount(t *testing.T) {
	t.Run("ExpandsShortProfiles", func(t *testing.T) {
		segments := normalizeSegmentCount(steadyClimbProfile().GradeSegments())
		if len(segments) < minBodySegments || len(segments) > maxBodySegments {
			t.Fatalf("Expected %d..%d segments, got %d", minBodySegments, maxBodySegments, len(segments))
		}
		var distance float64
		for _, seg := range segments {
			distance += seg.DistanceMiles
		}
		if math.Abs(distance-4) > 1e-9 {
			t.Errorf("Expected total distance preserved at 4 miles, got %g", distance)
		}
	})

	t.Run("GroupsLongProfiles", func(t *testing.T) {
		points := make([]hike.ProfilePoint, 101)
		for i := range points {
			points[i] = hike.ProfilePoint{DistanceMiles: float64(i) * 0.1, ElevationFt: float64(i * 20)}
		}
		segments := normalizeSegmentCount(hike.Profile{Points: points}.GradeSegments())
		if len(segments) < minBodySegments || len(segments) > maxBodySegments {
			t.Fatalf("Expected %d..%d segments, got %d", minBodySegments, maxBodySegments, len(segments))
		}
	})

	t.Run("EmptyInput", func(t *testing.T) {
		if got := normalizeSegmentCount(nil); got != nil {
			t.Errorf("Expected nil, got %v", got)
		}
	})
}

func TestSmoothGrades(t *testing.T) {
	smoothed := smoothGrades([]float64{0, 6, 0, 6, 0})
	if len(smoothed) != 5 {
		t.Fatalf("Expected 5 values, got %d", len(smoothed))
	}
	if math.Abs(smoothed[1]-2) > 1e-9 {
		t.Errorf("Expected middle average 2, got %g", smoothed[1])
	}
	if math.Abs(smoothed[0]-3) > 1e-9 {
		t.Errorf("Expected edge average 3, got %g", smoothed[0])
	}
}

func TestSynthesizeSegments(t *testing.T) {
	settings := synthSettings{
		Fitness:       Intermediate,
		TargetMinutes: 45,
		MinIncline:    0,
		MaxIncline:    12,
		MaxSpeedMph:   4.0,
	}
	total, segments := synthesizeSegments(steadyClimbProfile(), settings)

	if total != 45 {
		t.Errorf("Expected total 45 minutes, got %d", total)
	}
	if len(segments) < minBodySegments+2 {
		t.Fatalf("Expected at least %d segments with warm-up and cool-down, got %d", minBodySegments+2, len(segments))
	}

	warm := segments[0]
	if warm.Index != 0 || warm.Note != "Warm-up" || warm.Minutes != 5 {
		t.Errorf("Unexpected warm-up segment %+v", warm)
	}
	cool := segments[len(segments)-1]
	if cool.Note != "Cool-down" || cool.Minutes != 5 {
		t.Errorf("Unexpected cool-down segment %+v", cool)
	}
	if cool.Index != len(segments)-1 {
		t.Errorf("Expected cool-down index %d, got %d", len(segments)-1, cool.Index)
	}

	var bodyMinutes float64
	for i, seg := range segments {
		if seg.Index != i {
			t.Errorf("Segment %d has index %d", i, seg.Index)
		}
		if seg.InclinePercent < 0 || seg.InclinePercent > settings.MaxIncline {
			t.Errorf("Segment %d incline %g outside 0..%g", i, seg.InclinePercent, settings.MaxIncline)
		}
		if seg.SpeedMph <= 0 || seg.SpeedMph > settings.MaxSpeedMph {
			t.Errorf("Segment %d speed %g outside (0, %g]", i, seg.SpeedMph, settings.MaxSpeedMph)
		}
		if rounded := roundToStep(seg.Minutes, 0.5); rounded != seg.Minutes {
			t.Errorf("Segment %d minutes %g not on a 0.5 step", i, seg.Minutes)
		}
		if i > 0 && i < len(segments)-1 {
			bodyMinutes += seg.Minutes
		}
	}

	// The body absorbs everything between warm-up and cool-down, with at
	// most half a minute of rounding slack on the final segment.
	if main := float64(total) - warmUpMinutes - coolDownMinutes; math.Abs(bodyMinutes-main) > 0.5 {
		t.Errorf("Body minutes %g too far from %g", bodyMinutes, main)
	}
}

func TestSynthesizeSegmentsEnforcesMinimumDuration(t *testing.T) {
	total, _ := synthesizeSegments(steadyClimbProfile(), synthSettings{
		Fitness:       Beginner,
		TargetMinutes: 5,
		MaxIncline:    10,
		MaxSpeedMph:   3.5,
	})
	if total != 20 {
		t.Errorf("Expected 20-minute floor, got %d", total)
	}
}

func TestSynthesizeSegmentsPackWeightNote(t *testing.T) {
	_, segments := synthesizeSegments(steadyClimbProfile(), synthSettings{
		Fitness:       Intermediate,
		TargetMinutes: 40,
		PackWeightLbs: 15,
		MaxIncline:    12,
		MaxSpeedMph:   4.0,
	})
	if note := segments[1].Note; note != "Pack weight 15 lbs" {
		t.Errorf("Expected pack weight note on body segment, got %q", note)
	}
}
