package plan

import (
	"reflect"
	"testing"
)

func TestWeeklyVolumes(t *testing.T) {
	t.Run("SingleWeekLowBaseline", func(t *testing.T) {
		volumes := weeklyVolumes(30, 1, 300)
		if !reflect.DeepEqual(volumes, []int{45}) {
			t.Errorf("Expected [45], got %v", volumes)
		}
	})

	t.Run("SingleWeekHighBaseline", func(t *testing.T) {
		volumes := weeklyVolumes(60, 1, 300)
		if !reflect.DeepEqual(volumes, []int{51}) {
			t.Errorf("Expected [51], got %v", volumes)
		}
	})

	t.Run("TwoWeeks", func(t *testing.T) {
		volumes := weeklyVolumes(30, 2, 100)
		if !reflect.DeepEqual(volumes, []int{50, 28}) {
			t.Errorf("Expected [50 28], got %v", volumes)
		}
	})

	t.Run("EightWeekCurve", func(t *testing.T) {
		volumes := weeklyVolumes(30, 8, 400)
		expected := []int{50, 55, 61, 48, 67, 74, 81, 45}
		if !reflect.DeepEqual(volumes, expected) {
			t.Fatalf("Expected %v, got %v", expected, volumes)
		}

		// Week 4 is a deload off the last build, the final week a taper off
		// the highest build.
		if volumes[3] != round(float64(volumes[2])*0.78) {
			t.Errorf("Deload week %d is not 78%% of last build %d", volumes[3], volumes[2])
		}
		peak := 0
		for _, v := range volumes[:7] {
			if v > peak {
				peak = v
			}
		}
		if volumes[7] != round(float64(peak)*0.55) {
			t.Errorf("Taper week %d is not 55%% of peak %d", volumes[7], peak)
		}
	})

	t.Run("GrowthBand", func(t *testing.T) {
		volumes := weeklyVolumes(100, 6, 500)
		last := 100
		for week, v := range volumes[:4] {
			if week > 0 && (week+1)%4 == 0 {
				last = v
				continue
			}
			lo := float64(last) * 1.04
			hi := float64(last) * 1.11
			if float64(v) < lo || float64(v) > hi {
				t.Errorf("Week %d volume %d outside growth band of %d", week+1, v, last)
			}
			last = v
		}
	})

	t.Run("LowBaselineEarlyCaps", func(t *testing.T) {
		volumes := weeklyVolumes(20, 10, 2000)
		if volumes[0] > 60 {
			t.Errorf("Week 1 volume %d exceeds 60-minute cap", volumes[0])
		}
		if volumes[1] > 75 {
			t.Errorf("Week 2 volume %d exceeds 75-minute cap", volumes[1])
		}
	})
}
