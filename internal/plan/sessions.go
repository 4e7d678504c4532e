package plan

// sessionCounts is the reconciled weekly session allocation.
type sessionCounts struct {
	Treadmill int
	Outdoor   int
	Strength  int
}

// reconcileSessions clamps the requested session counts so their sum never
// exceeds the available training days. Reduction runs in strict priority:
// strength first, then outdoor, then treadmill, never below zero.
//
// When strengthOnCardioDays is set, strength sessions ride along on cardio
// days instead of consuming a slot, so they contribute zero to the invariant
// check; the returned Strength still reflects the original request so the
// assembler can attach the add-ons.
func reconcileSessions(daysPerWeek, treadmill, outdoor, strength int, strengthOnCardioDays bool) sessionCounts {
	if treadmill < 0 {
		treadmill = 0
	}
	if outdoor < 0 {
		outdoor = 0
	}
	strengthAddons := strength
	if strengthAddons < 0 {
		strengthAddons = 0
	}
	strengthSlots := strengthAddons
	if strengthOnCardioDays {
		strengthSlots = 0
	}
	maxSessions := daysPerWeek
	if maxSessions < 0 {
		maxSessions = 0
	}

	total := treadmill + outdoor + strengthSlots
	if total <= maxSessions {
		return sessionCounts{Treadmill: treadmill, Outdoor: outdoor, Strength: strengthAddons}
	}

	overage := total - maxSessions
	if strengthSlots > 0 {
		reduction := min(strengthSlots, overage)
		strengthSlots -= reduction
		overage -= reduction
	}
	if outdoor > 0 && overage > 0 {
		reduction := min(outdoor, overage)
		outdoor -= reduction
		overage -= reduction
	}
	if overage > 0 {
		treadmill -= overage
		if treadmill < 0 {
			treadmill = 0
		}
	}

	result := sessionCounts{Treadmill: treadmill, Outdoor: outdoor, Strength: strengthSlots}
	if strengthOnCardioDays {
		result.Strength = strengthAddons
	}
	return result
}
