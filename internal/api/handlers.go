package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"hikesim/internal/hike"
	"hikesim/internal/plan"
	"hikesim/internal/trail"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, detail string) {
	respondJSON(w, status, map[string]string{"detail": detail})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// trailOut is the catalog entry shape returned by the trails endpoints.
type trailOut struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	CountryCode     string  `json:"country_code"`
	StateCode       *string `json:"state_code"`
	DistanceMiles   float64 `json:"distance_miles"`
	ElevationGainFt int     `json:"elevation_gain_ft"`
	IsSeed          bool    `json:"is_seed"`
}

func toTrailOut(t trail.Trail) trailOut {
	out := trailOut{
		ID:              t.ID,
		Name:            t.Name,
		CountryCode:     t.CountryCode,
		DistanceMiles:   t.DistanceMiles,
		ElevationGainFt: t.ElevationGainFt,
		IsSeed:          t.IsSeed,
	}
	if t.StateCode != "" {
		state := t.StateCode
		out.StateCode = &state
	}
	return out
}

func (s *Server) handleListTrails(w http.ResponseWriter, r *http.Request) {
	country := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("country")))
	if len(country) != 2 {
		respondError(w, http.StatusBadRequest, "country must be a two-letter code.")
		return
	}
	state := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("state")))

	trails, err := s.trails.ListByCountry(r.Context(), country, state)
	if err != nil {
		log.Printf("failed to list trails: %v", err)
		respondError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}

	items := make([]trailOut, 0, len(trails))
	for _, t := range trails {
		items = append(items, toTrailOut(t))
	}
	respondJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleGetTrail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid trail id.")
		return
	}
	t, err := s.trails.Get(r.Context(), id)
	if err != nil {
		log.Printf("failed to load trail %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "Internal server error.")
		return
	}
	if t == nil {
		respondError(w, http.StatusNotFound, "Trail not found.")
		return
	}
	respondJSON(w, http.StatusOK, toTrailOut(*t))
}

// planHike is the optional inline hike in a plan request.
type planHike struct {
	DistanceMiles   float64             `json:"distance_miles"`
	ElevationGainFt int                 `json:"elevation_gain_ft"`
	ProfilePoints   []hike.ProfilePoint `json:"profile_points"`
}

// planRequest is the plan generation payload. Optional fields carry their
// defaults, set on the struct before decoding so absent keys keep them.
type planRequest struct {
	HikeID *int64    `json:"hike_id"`
	Hike   *planHike `json:"hike"`

	TrainingStartDate string `json:"training_start_date"`
	TargetDate        string `json:"target_date"`
	DaysPerWeek       int    `json:"days_per_week"`
	FitnessLevel      string `json:"fitness_level"`

	TreadmillSessionsPerWeek   int     `json:"treadmill_sessions_per_week"`
	OutdoorHikesPerWeek        int     `json:"outdoor_hikes_per_week"`
	StrengthSessionsPerWeek    int     `json:"strength_sessions_per_week"`
	TreadmillMaxInclinePercent int     `json:"treadmill_max_incline_percent"`
	MaxSpeedMph                float64 `json:"max_speed_mph"`

	IncludeStrength        bool  `json:"include_strength"`
	StrengthOnCardioDays   bool  `json:"strength_on_cardio_days"`
	BaselineMinutes        int   `json:"baseline_minutes"`
	FillActiveRecoveryDays bool  `json:"fill_active_recovery_days"`
	PreferredDays          []int `json:"preferred_days"`
	AnyDays                bool  `json:"any_days"`
}

func (s *Server) handleGeneratePlan(w http.ResponseWriter, r *http.Request) {
	req := planRequest{
		IncludeStrength: true,
		BaselineMinutes: 30,
		AnyDays:         true,
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	// An inline hike takes precedence over a catalog reference.
	var profile hike.Profile
	switch {
	case req.Hike != nil:
		profile = hike.Profile{
			DistanceMiles:   req.Hike.DistanceMiles,
			ElevationGainFt: req.Hike.ElevationGainFt,
			Points:          req.Hike.ProfilePoints,
		}
	case req.HikeID != nil:
		t, err := s.trails.Get(r.Context(), *req.HikeID)
		if err != nil {
			log.Printf("failed to load trail %d: %v", *req.HikeID, err)
			respondError(w, http.StatusInternalServerError, "Internal server error.")
			return
		}
		if t == nil {
			respondError(w, http.StatusNotFound, "Trail not found.")
			return
		}
		profile = t.Profile()
	default:
		respondError(w, http.StatusBadRequest, "Missing hike data.")
		return
	}

	inputs := plan.Inputs{
		Hike:              profile,
		FitnessLevel:      plan.FitnessLevel(req.FitnessLevel),
		TrainingStartDate: req.TrainingStartDate,
		TargetDate:        req.TargetDate,
		DaysPerWeek:       req.DaysPerWeek,
		PreferredDays:     req.PreferredDays,
		AnyDays:           req.AnyDays,
		BaselineMinutes:   req.BaselineMinutes,
		Constraints: plan.Constraints{
			TreadmillMaxInclinePercent: req.TreadmillMaxInclinePercent,
			TreadmillSessionsPerWeek:   req.TreadmillSessionsPerWeek,
			OutdoorHikesPerWeek:        req.OutdoorHikesPerWeek,
			MaxSpeedMph:                req.MaxSpeedMph,
		},
		StrengthSessionsPerWeek: req.StrengthSessionsPerWeek,
		IncludeStrength:         req.IncludeStrength,
		StrengthOnCardioDays:    req.StrengthOnCardioDays,
		FillActiveRecoveryDays:  req.FillActiveRecoveryDays,
	}
	if err := inputs.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	generated, err := plan.Generate(inputs)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Persist best effort when the plan came from a catalog trail; a
	// storage failure must not block the response.
	if req.Hike == nil && req.HikeID != nil {
		if data, err := json.Marshal(generated); err == nil {
			if _, err := s.plans.Save(r.Context(), nil, *req.HikeID, data); err != nil {
				log.Printf("failed to save plan for trail %d: %v", *req.HikeID, err)
			}
		}
	}

	respondJSON(w, http.StatusOK, map[string]any{"plan": generated})
}
