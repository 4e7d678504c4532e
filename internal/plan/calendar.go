package plan

import "time"

// weekdayIndex maps a date to the 0=Mon..6=Sun convention used by
// preferred-day inputs.
func weekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

func dayName(t time.Time) string {
	return t.Format("Mon")
}

func isoDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// parseLocalDate accepts YYYY-MM-DD, falling back to a full RFC 3339 stamp.
func parseLocalDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

func weekDates(start, end time.Time) []time.Time {
	var dates []time.Time
	for cursor := start; !cursor.After(end); cursor = cursor.AddDate(0, 0, 1) {
		dates = append(dates, cursor)
	}
	return dates
}

func dedupeDates(dates []time.Time) []time.Time {
	seen := make(map[string]bool, len(dates))
	var result []time.Time
	for _, d := range dates {
		key := isoDate(d)
		if seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, d)
	}
	return result
}

// scheduleWeekDays maps the week's sessions onto calendar dates.
//
// With anyDays (or no preferred days) the dates spread evenly across the
// 7-day window by fixed stride. Otherwise preferred weekdays are collected
// in date order; too few for the required sessions yields the partial list
// plus a warning, and a shortfall against daysPerWeek that still covers the
// required sessions is topped up with non-preferred dates.
func scheduleWeekDays(weekStart, weekEnd time.Time, daysPerWeek int, preferredDays []int, anyDays bool, requiredSessions int) (days []time.Time, warning string) {
	var preferred []int
	for _, day := range preferredDays {
		if day >= 0 && day <= 6 {
			preferred = append(preferred, day)
		}
	}
	dates := weekDates(weekStart, weekEnd)

	if anyDays || len(preferred) == 0 {
		step := len(dates) / daysPerWeek
		if step < 1 {
			step = 1
		}
		for i := 0; i < daysPerWeek; i++ {
			idx := i * step
			if idx > len(dates)-1 {
				idx = len(dates) - 1
			}
			days = append(days, dates[idx])
		}
		return dedupeDates(days), ""
	}

	preferredSet := make(map[int]bool, len(preferred))
	for _, day := range preferred {
		preferredSet[day] = true
	}
	for _, current := range dates {
		if preferredSet[weekdayIndex(current)] {
			days = append(days, current)
		}
		if len(days) >= daysPerWeek {
			break
		}
	}

	if len(days) < requiredSessions {
		return days, "Not enough preferred days this week; some sessions may be skipped."
	}

	if len(days) < daysPerWeek {
		for _, current := range dates {
			if len(days) >= daysPerWeek {
				break
			}
			if !preferredSet[weekdayIndex(current)] {
				days = append(days, current)
			}
		}
	}
	return days, ""
}

// pickTrainingDays selects the weekday indices reported in the plan
// summary: preferred days first when honored, then a sensible default
// rotation that spaces sessions through the week.
func pickTrainingDays(daysPerWeek int, preferredDays []int, anyDays bool) []int {
	ordered := []int{0, 2, 4, 5, 1, 3, 6}
	var safePreferred []int
	for _, day := range preferredDays {
		if day >= 0 && day <= 6 {
			safePreferred = append(safePreferred, day)
		}
	}
	selection := make([]int, 0, daysPerWeek)
	contains := func(day int) bool {
		for _, d := range selection {
			if d == day {
				return true
			}
		}
		return false
	}
	if !anyDays && len(safePreferred) > 0 {
		for _, day := range safePreferred {
			if !contains(day) {
				selection = append(selection, day)
			}
			if len(selection) >= daysPerWeek {
				break
			}
		}
	}
	for _, day := range ordered {
		if len(selection) >= daysPerWeek {
			break
		}
		if !contains(day) {
			selection = append(selection, day)
		}
	}
	if len(selection) > daysPerWeek {
		selection = selection[:daysPerWeek]
	}
	return selection
}
