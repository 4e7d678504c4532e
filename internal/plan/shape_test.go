package plan

import (
	"math"
	"testing"
)

func intervalFixture() []Segment {
	return []Segment{
		{Index: 0, Minutes: 5, InclinePercent: 1, SpeedMph: 2.6, Note: "Warm-up"},
		{Index: 1, Minutes: 8, InclinePercent: 6, SpeedMph: 3.4},
		{Index: 2, Minutes: 8, InclinePercent: 6, SpeedMph: 3.4},
		{Index: 3, Minutes: 8, InclinePercent: 6, SpeedMph: 3.4},
		{Index: 4, Minutes: 5, InclinePercent: 0.5, SpeedMph: 2.4, Note: "Cool-down"},
	}
}

func TestApplyIntervalPattern(t *testing.T) {
	updated := applyIntervalPattern(intervalFixture(), 4.0, 12)

	if updated[0].Note != "Warm-up" || updated[0].InclinePercent != 1 {
		t.Errorf("Warm-up should be untouched, got %+v", updated[0])
	}
	if last := updated[len(updated)-1]; last.Note != "Cool-down" || last.SpeedMph != 2.4 {
		t.Errorf("Cool-down should be untouched, got %+v", last)
	}

	hard := updated[1]
	if hard.Note != "Hard interval" {
		t.Errorf("Expected hard interval at position 1, got %q", hard.Note)
	}
	if hard.InclinePercent <= 6 {
		t.Errorf("Hard interval incline %g should exceed base 6", hard.InclinePercent)
	}
	if hard.SpeedMph >= 3.4 {
		t.Errorf("Hard interval speed %g should drop below base 3.4", hard.SpeedMph)
	}

	easy := updated[2]
	if easy.Note != "Recovery" {
		t.Errorf("Expected recovery at position 2, got %q", easy.Note)
	}
	if easy.InclinePercent >= 6 {
		t.Errorf("Recovery incline %g should drop below base 6", easy.InclinePercent)
	}
	if easy.SpeedMph <= 3.4 {
		t.Errorf("Recovery speed %g should exceed base 3.4", easy.SpeedMph)
	}
}

func TestApplyIntervalPatternRespectsCaps(t *testing.T) {
	updated := applyIntervalPattern(intervalFixture(), 3.4, 6)
	for i, seg := range updated {
		if seg.InclinePercent > 6 {
			t.Errorf("Segment %d incline %g exceeds cap 6", i, seg.InclinePercent)
		}
		if i > 0 && i < len(updated)-1 && seg.SpeedMph > 3.4 {
			t.Errorf("Segment %d speed %g exceeds cap 3.4", i, seg.SpeedMph)
		}
	}
}

func TestApplyIntervalPatternShortBody(t *testing.T) {
	short := intervalFixture()[:2]
	updated := applyIntervalPattern(short, 4.0, 12)
	if updated[1].Note != "" {
		t.Errorf("Two segments or fewer should be left as-is, got %q", updated[1].Note)
	}
}

func TestSmoothSegmentInclines(t *testing.T) {
	segments := []Segment{
		{Index: 0, InclinePercent: 0},
		{Index: 1, InclinePercent: 10},
		{Index: 2, InclinePercent: 0},
		{Index: 3, InclinePercent: 10},
		{Index: 4, InclinePercent: 0},
	}
	smoothed := smoothSegmentInclines(segments, 5)

	if got := smoothed[2].InclinePercent; math.Abs(got-4) > 1e-9 {
		t.Errorf("Expected center incline 4, got %g", got)
	}
	if segments[2].InclinePercent != 0 {
		t.Error("Input slice should not be modified")
	}
	for i, seg := range smoothed {
		if r := round1(seg.InclinePercent); r != seg.InclinePercent {
			t.Errorf("Segment %d incline %g not rounded to one decimal", i, seg.InclinePercent)
		}
	}
}
