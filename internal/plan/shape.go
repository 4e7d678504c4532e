package plan

import "strings"

// applyIntervalPattern alternates the synthesized body between hard and
// recovery efforts: odd positions get more incline and less speed, even
// positions the reverse. Warm-up and cool-down are untouched, and a body of
// two or fewer segments is left as-is.
func applyIntervalPattern(segments []Segment, maxSpeed, inclineCap float64) []Segment {
	if len(segments) <= 2 {
		return segments
	}
	updated := make([]Segment, 0, len(segments))
	for idx, seg := range segments {
		if seg.Index == 0 || strings.Contains(seg.Note, "Cool-down") {
			updated = append(updated, seg)
			continue
		}
		isHard := idx%2 == 1
		inclineFactor := 0.85
		speedFactor := 1.05
		note := "Recovery"
		if isHard {
			inclineFactor = 1.15
			speedFactor = 0.92
			note = "Hard interval"
		}
		if seg.Note != "" {
			note = seg.Note
		}
		updated = append(updated, Segment{
			Index:          seg.Index,
			Minutes:        seg.Minutes,
			InclinePercent: clamp(roundToStep(clamp(seg.InclinePercent*inclineFactor, 0, inclineCap), 0.5), 0, inclineCap),
			SpeedMph:       clamp(round1(clamp(seg.SpeedMph*speedFactor, 1.8, maxSpeed)), 0, maxSpeed),
			Note:           note,
		})
	}
	return updated
}

// smoothSegmentInclines re-averages incline over a centered window across
// all segments so a zone-2 walk feels steady instead of terrain-chasing.
func smoothSegmentInclines(segments []Segment, windowSize int) []Segment {
	if len(segments) == 0 {
		return segments
	}
	grades := make([]float64, len(segments))
	for i, seg := range segments {
		grades[i] = seg.InclinePercent
	}
	smoothed := make([]Segment, len(segments))
	copy(smoothed, segments)
	for i := range smoothed {
		start := i - windowSize/2
		if start < 0 {
			start = 0
		}
		end := i + (windowSize+1)/2
		if end > len(grades) {
			end = len(grades)
		}
		var sum float64
		for _, g := range grades[start:end] {
			sum += g
		}
		smoothed[i].InclinePercent = round1(sum / float64(end-start))
	}
	return smoothed
}
