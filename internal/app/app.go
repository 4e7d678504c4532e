// Package app wires the repositories and services behind the CLI and the
// HTTP server.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"hikesim/internal/config"
	"hikesim/internal/database"
	"hikesim/internal/importer"
	"hikesim/internal/plan"
	"hikesim/internal/trail"
)

// App holds the application's dependencies.
type App struct {
	cfg *config.Config
	db  *database.DB

	Trails *trail.Repository
	Plans  *plan.Repository
}

// New opens the database, runs migrations, and builds the repositories.
func New(cfg *config.Config) (*App, error) {
	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return &App{
		cfg:    cfg,
		db:     db,
		Trails: trail.NewRepository(db.SQL),
		Plans:  plan.NewRepository(db.SQL),
	}, nil
}

// Close releases the database connection.
func (a *App) Close() error {
	return a.db.Close()
}

// seedFile is the shape of the bundled trail catalog.
type seedFile struct {
	Hikes []struct {
		Name            string  `json:"name"`
		CountryCode     string  `json:"countryCode"`
		StateCode       string  `json:"stateCode"`
		DistanceMiles   float64 `json:"distanceMiles"`
		ElevationGainFt int     `json:"elevationGainFt"`
	} `json:"hikes"`
}

// SeedTrails loads the bundled catalog into the database. Existing rows
// matched by name and location get their stats refreshed; reset deletes
// everything first.
func (a *App) SeedTrails(ctx context.Context, path string, reset bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}
	var seed seedFile
	if err := json.Unmarshal(data, &seed); err != nil {
		return fmt.Errorf("failed to parse seed file: %w", err)
	}

	if reset {
		if err := a.Trails.DeleteAll(ctx); err != nil {
			return err
		}
	}

	before, err := a.Trails.Count(ctx)
	if err != nil {
		return err
	}
	for _, h := range seed.Hikes {
		t := trail.Trail{
			Name:            h.Name,
			CountryCode:     h.CountryCode,
			StateCode:       h.StateCode,
			DistanceMiles:   h.DistanceMiles,
			ElevationGainFt: h.ElevationGainFt,
			IsSeed:          true,
		}
		if _, err := a.Trails.Upsert(ctx, t); err != nil {
			return err
		}
	}
	after, err := a.Trails.Count(ctx)
	if err != nil {
		return err
	}

	created := after - before
	log.Printf("Seeded trails: %d created, %d updated.", created, len(seed.Hikes)-created)
	return nil
}

// ImportProfiles backfills elevation profiles for trails missing one.
func (a *App) ImportProfiles(ctx context.Context, countryCode string, limit int) error {
	im := importer.New(a.Trails, a.cfg.OverpassURL, a.cfg.OpenTopoURL)
	_, err := im.Run(ctx, countryCode, limit)
	return err
}

// ClipTrail scrapes a trail page and adds it to the catalog.
func (a *App) ClipTrail(ctx context.Context, pageURL, countryCode, stateCode string) error {
	c := importer.NewClipper(a.Trails)
	t, err := c.ClipURL(ctx, pageURL, countryCode, stateCode)
	if err != nil {
		return err
	}
	log.Printf("Clipped trail %q: %.1f mi, %d ft gain (id %d).", t.Name, t.DistanceMiles, t.ElevationGainFt, t.ID)
	return nil
}
