// Package trail is the relational catalog of hikes: names, locations,
// headline stats, and optional elevation profiles imported from mapping
// services.
package trail

import "hikesim/internal/hike"

// Trail is one catalog entry. ProfilePoints is nil until an importer has
// attached an elevation profile.
type Trail struct {
	ID              int64
	Name            string
	CountryCode     string
	StateCode       string
	DistanceMiles   float64
	ElevationGainFt int
	ProfilePoints   []hike.ProfilePoint
	IsSeed          bool
}

// Profile converts the catalog row into the engine's read-only hike input.
func (t Trail) Profile() hike.Profile {
	return hike.Profile{
		DistanceMiles:   t.DistanceMiles,
		ElevationGainFt: t.ElevationGainFt,
		Points:          t.ProfilePoints,
	}
}
