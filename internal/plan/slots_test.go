package plan

import (
	"reflect"
	"testing"
)

func TestWeekSlots(t *testing.T) {
	t.Run("BuildWeekMix", func(t *testing.T) {
		slots := weekSlots(3, 8, 4, sessionCounts{Treadmill: 2, Outdoor: 1, Strength: 1}, true, false, false, false)
		want := []WorkoutType{Strength, TreadmillIntervals, OutdoorLongHike, Zone2InclineWalk}
		if !reflect.DeepEqual(slots, want) {
			t.Errorf("Expected %v, got %v", want, slots)
		}
	})

	t.Run("EventPrepRewritesTreadmillToOutdoor", func(t *testing.T) {
		slots := weekSlots(7, 8, 3, sessionCounts{Treadmill: 2, Outdoor: 0}, false, false, true, false)
		for i, slot := range slots {
			if slot != OutdoorLongHike {
				t.Errorf("Slot %d: expected outdoor long hike, got %q", i, slot)
			}
		}
	})

	t.Run("EarlyWeekIsZone2Only", func(t *testing.T) {
		slots := weekSlots(1, 8, 3, sessionCounts{Treadmill: 2}, false, false, false, true)
		want := []WorkoutType{Zone2InclineWalk, RecoveryMobility, Zone2InclineWalk}
		if !reflect.DeepEqual(slots, want) {
			t.Errorf("Expected %v, got %v", want, slots)
		}
	})

	t.Run("DeloadWeekHasNoIntervals", func(t *testing.T) {
		slots := weekSlots(4, 8, 4, sessionCounts{Treadmill: 2, Outdoor: 1}, false, false, false, false)
		for i, slot := range slots {
			if slot == TreadmillIntervals {
				t.Errorf("Slot %d: intervals should not appear during a deload week", i)
			}
		}
	})

	t.Run("EmptySlotsBecomeRest", func(t *testing.T) {
		slots := weekSlots(3, 8, 4, sessionCounts{Treadmill: 1}, false, false, false, false)
		rest := 0
		for _, slot := range slots {
			if slot == RestDay {
				rest++
			}
		}
		if rest != 3 {
			t.Errorf("Expected 3 rest days, got %d in %v", rest, slots)
		}
	})
}

func TestAlternatingOrder(t *testing.T) {
	got := alternatingOrder(5)
	want := []int{0, 2, 4, 1, 3}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestPlaceWorkoutsAvoidsAdjacency(t *testing.T) {
	slots := make([]WorkoutType, 5)
	workouts := []WorkoutType{OutdoorLongHike, TreadmillIntervals}
	placeWorkouts(slots, workouts, isHighVolumeCardio)

	if slots[0] != OutdoorLongHike {
		t.Errorf("Expected first placement at slot 0, got %v", slots)
	}
	if slots[2] != TreadmillIntervals {
		t.Errorf("Expected second placement at slot 2, got %v", slots)
	}
}

func TestPlaceWorkoutsFallsBackWhenCrowded(t *testing.T) {
	slots := make([]WorkoutType, 2)
	workouts := []WorkoutType{OutdoorLongHike, TreadmillIntervals}
	placeWorkouts(slots, workouts, isHighVolumeCardio)

	for i, slot := range slots {
		if slot == "" {
			t.Errorf("Slot %d left empty: %v", i, slots)
		}
	}
}
