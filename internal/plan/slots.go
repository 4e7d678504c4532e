package plan

// weekSlots assigns one workout type per training-day slot for a week.
//
// Outdoor long hikes come from the reconciled outdoor count. Treadmill
// sessions are rewritten to outdoor long hikes during event-prep weeks
// (dress rehearsal), and the mix otherwise depends on phase: zone-2 only
// during deload/taper/early weeks, one interval session leading the rest of
// a build week. Strength fills first using an alternating even-then-odd
// order, then high-volume cardio with the same order avoiding adjacency,
// then low-volume cardio in order. Leftover slots become recovery or rest.
func weekSlots(weekNumber, totalWeeks, daysPerWeek int, sessions sessionCounts, includeStrength, strengthOnCardioDays, isEventPrepWeek, fillActiveRecovery bool) []WorkoutType {
	dayCount := daysPerWeek
	if dayCount < 1 {
		dayCount = 1
	}
	outdoorCount := min(sessions.Outdoor, dayCount)
	treadmillCount := min(sessions.Treadmill, dayCount)
	strengthCount := 0
	if includeStrength && !strengthOnCardioDays {
		strengthCount = min(sessions.Strength, dayCount)
	}

	isDeloadWeek := weekNumber%4 == 0
	isTaperWeek := weekNumber == totalWeeks
	isEarlyWeek := weekNumber <= 2
	requiresTreadmillLong := outdoorCount == 0 && treadmillCount > 0

	slots := make([]WorkoutType, dayCount)
	var cardio []WorkoutType

	for i := 0; i < outdoorCount; i++ {
		cardio = append(cardio, OutdoorLongHike)
	}
	for i := 0; i < treadmillCount; i++ {
		switch {
		case isEventPrepWeek:
			cardio = append(cardio, OutdoorLongHike)
		case requiresTreadmillLong && i == 0:
			// Guarantee one long aerobic session when no outdoor hike exists.
			cardio = append(cardio, Zone2InclineWalk)
		case isDeloadWeek || isTaperWeek || isEarlyWeek:
			cardio = append(cardio, Zone2InclineWalk)
		case i == 0:
			cardio = append(cardio, TreadmillIntervals)
		default:
			cardio = append(cardio, Zone2InclineWalk)
		}
	}
	if isEventPrepWeek && outdoorCount == 0 && treadmillCount > 0 {
		cardio = append([]WorkoutType{OutdoorLongHike}, cardio...)
	}

	strength := make([]WorkoutType, strengthCount)
	for i := range strength {
		strength[i] = Strength
	}
	placeWorkouts(slots, strength, func(t WorkoutType) bool { return t == Strength })

	var highVolume, lowVolume []WorkoutType
	for _, t := range cardio {
		if isHighVolumeCardio(t) {
			highVolume = append(highVolume, t)
		} else {
			lowVolume = append(lowVolume, t)
		}
	}
	placeWorkouts(slots, highVolume, isHighVolumeCardio)
	placeWorkouts(slots, lowVolume, func(WorkoutType) bool { return false })

	fallback := RestDay
	if fillActiveRecovery {
		fallback = RecoveryMobility
	}
	for i, slot := range slots {
		if slot == "" {
			slots[i] = fallback
		}
	}
	return slots
}

func isHighVolumeCardio(t WorkoutType) bool {
	return t == OutdoorLongHike || t == TreadmillIntervals
}

// alternatingOrder visits even indices before odd ones so placements spread
// out instead of stacking at the front of the week.
func alternatingOrder(length int) []int {
	order := make([]int, 0, length)
	for i := 0; i < length; i += 2 {
		order = append(order, i)
	}
	for i := 1; i < length; i += 2 {
		order = append(order, i)
	}
	return order
}

func hasAdjacentMatch(index int, slots []WorkoutType, shouldAvoid func(WorkoutType) bool) bool {
	if index > 0 && slots[index-1] != "" && shouldAvoid(slots[index-1]) {
		return true
	}
	if index < len(slots)-1 && slots[index+1] != "" && shouldAvoid(slots[index+1]) {
		return true
	}
	return false
}

// placeWorkouts fills empty slots in alternating order, preferring slots
// not adjacent to a type the caller wants kept apart. Adjacency is a soft
// preference: when no non-adjacent slot exists the first open slot in the
// order is used.
func placeWorkouts(slots []WorkoutType, workouts []WorkoutType, shouldAvoid func(WorkoutType) bool) {
	order := alternatingOrder(len(slots))
	for _, workout := range workouts {
		placed := false
		for _, index := range order {
			if slots[index] != "" {
				continue
			}
			if hasAdjacentMatch(index, slots, shouldAvoid) {
				continue
			}
			slots[index] = workout
			placed = true
			break
		}
		if placed {
			continue
		}
		for _, index := range order {
			if slots[index] == "" {
				slots[index] = workout
				break
			}
		}
	}
}
