package plan

import (
	"fmt"

	"hikesim/internal/hike"
)

// FitnessLevel is the user's self-reported training level.
type FitnessLevel string

const (
	Beginner     FitnessLevel = "Beginner"
	Intermediate FitnessLevel = "Intermediate"
	Advanced     FitnessLevel = "Advanced"
)

// Valid reports whether the level is one of the three known values.
func (l FitnessLevel) Valid() bool {
	switch l {
	case Beginner, Intermediate, Advanced:
		return true
	}
	return false
}

// WorkoutType is the closed set of workout labels the engine schedules.
// Every downstream builder switches on these exact values; an unknown type
// cannot enter the engine because the slot scheduler is the only producer.
type WorkoutType string

const (
	TreadmillIntervals WorkoutType = "Treadmill intervals"
	Zone2InclineWalk   WorkoutType = "Zone 2 incline walk"
	Strength           WorkoutType = "Strength"
	OutdoorLongHike    WorkoutType = "Outdoor long hike"
	RecoveryMobility   WorkoutType = "Recovery / mobility"
	RestDay            WorkoutType = "Rest day"
)

// Constraints carries the treadmill-related caps from the plan request.
type Constraints struct {
	TreadmillMaxInclinePercent int
	TreadmillSessionsPerWeek   int
	OutdoorHikesPerWeek        int
	MaxSpeedMph                float64
}

// Inputs is everything Generate needs: the hike being trained for plus the
// user's availability and quotas. Dates are strings in YYYY-MM-DD form (an
// RFC 3339 stamp is accepted as a fallback).
type Inputs struct {
	Hike hike.Profile

	FitnessLevel      FitnessLevel
	TrainingStartDate string
	TargetDate        string

	DaysPerWeek     int
	PreferredDays   []int
	AnyDays         bool
	BaselineMinutes int

	Constraints Constraints

	StrengthSessionsPerWeek int
	IncludeStrength         bool
	StrengthOnCardioDays    bool
	FillActiveRecoveryDays  bool
}

// Validate checks the numeric ranges a request must satisfy before plan
// generation. Generate itself only fails on unparseable dates; range
// problems are caught here so the transport layer can reject them up front.
func (in Inputs) Validate() error {
	if !in.FitnessLevel.Valid() {
		return fmt.Errorf("unknown fitness level %q", string(in.FitnessLevel))
	}
	if in.DaysPerWeek < 1 {
		return fmt.Errorf("days_per_week must be at least 1, got %d", in.DaysPerWeek)
	}
	for _, day := range in.PreferredDays {
		if day < 0 || day > 6 {
			return fmt.Errorf("preferred day index %d out of range 0..6", day)
		}
	}
	if in.Constraints.TreadmillSessionsPerWeek < 0 ||
		in.Constraints.OutdoorHikesPerWeek < 0 ||
		in.StrengthSessionsPerWeek < 0 {
		return fmt.Errorf("session counts must not be negative")
	}
	if in.Constraints.MaxSpeedMph <= 0 {
		return fmt.Errorf("max_speed_mph must be positive, got %g", in.Constraints.MaxSpeedMph)
	}
	if in.Constraints.TreadmillMaxInclinePercent < 0 {
		return fmt.Errorf("treadmill_max_incline_percent must not be negative, got %d", in.Constraints.TreadmillMaxInclinePercent)
	}
	return nil
}

// Segment is one treadmill interval: index 0 is always the warm-up and the
// highest index the cool-down.
type Segment struct {
	Index          int     `json:"index"`
	Minutes        float64 `json:"minutes"`
	InclinePercent float64 `json:"inclinePercent"`
	SpeedMph       float64 `json:"speedMph"`
	Note           string  `json:"note,omitempty"`
}

// Workout is a single prescribed session.
type Workout struct {
	ID              string      `json:"id"`
	Type            WorkoutType `json:"type"`
	DurationMinutes int         `json:"durationMinutes"`
	Notes           string      `json:"notes"`
	Segments        []Segment   `json:"segments,omitempty"`
	InclineTarget   *float64    `json:"inclineTarget,omitempty"`
}

// DayPlan is one calendar day. Strength add-ons may prepend a second
// workout before the day's cardio session.
type DayPlan struct {
	Date     string    `json:"date"`
	DayName  string    `json:"dayName"`
	Workouts []Workout `json:"workouts"`
}

// WeekPlan is one training week, Monday-agnostic: StartDate is the plan
// start plus a whole number of weeks and EndDate is six days later.
type WeekPlan struct {
	WeekNumber   int       `json:"weekNumber"`
	StartDate    string    `json:"startDate"`
	EndDate      string    `json:"endDate"`
	TotalMinutes int       `json:"totalMinutes"`
	Notes        string    `json:"notes"`
	Focus        string    `json:"focus"`
	Days         []DayPlan `json:"days"`
}

// Summary is the plan-level digest shown alongside the weeks.
type Summary struct {
	DaysPerWeek          int   `json:"daysPerWeek"`
	PreferredDays        []int `json:"preferredDays"`
	AverageWeeklyMinutes int   `json:"averageWeeklyMinutes"`
}

// Plan is the fully materialized training schedule.
type Plan struct {
	TotalWeeks int        `json:"totalWeeks"`
	Warnings   []string   `json:"warnings"`
	Summary    Summary    `json:"summary"`
	Weeks      []WeekPlan `json:"weeks"`
}
