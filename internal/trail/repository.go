package trail

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"hikesim/internal/hike"
)

// Repository is a database-backed repository for trails.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{db: d}
}

// ListByCountry returns trails in a country, optionally filtered by state,
// ordered by name.
func (r *Repository) ListByCountry(ctx context.Context, countryCode, stateCode string) ([]Trail, error) {
	query := `SELECT id, name, country_code, state_code, distance_miles, elevation_gain_ft, profile_points, is_seed
	          FROM trails WHERE country_code = ?`
	args := []any{countryCode}
	if stateCode != "" {
		query += ` AND state_code = ?`
		args = append(args, stateCode)
	}
	query += ` ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list trails: %w", err)
	}
	defer rows.Close()

	var trails []Trail
	for rows.Next() {
		t, err := scanTrail(rows)
		if err != nil {
			return nil, err
		}
		trails = append(trails, t)
	}
	return trails, rows.Err()
}

// Get retrieves a trail by its ID. A missing trail returns (nil, nil).
func (r *Repository) Get(ctx context.Context, id int64) (*Trail, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, country_code, state_code, distance_miles, elevation_gain_ft, profile_points, is_seed
		 FROM trails WHERE id = ?`, id)
	t, err := scanTrail(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Upsert inserts a trail or, when a row with the same name, country, and
// state exists, updates its headline stats. Returns the row ID.
func (r *Repository) Upsert(ctx context.Context, t Trail) (int64, error) {
	var existing int64
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM trails WHERE name = ? AND country_code = ? AND state_code IS ?`,
		t.Name, t.CountryCode, nullableState(t.StateCode)).Scan(&existing)
	switch {
	case err == sql.ErrNoRows:
		points, err := marshalPoints(t.ProfilePoints)
		if err != nil {
			return 0, err
		}
		result, err := r.db.ExecContext(ctx,
			`INSERT INTO trails (name, country_code, state_code, distance_miles, elevation_gain_ft, profile_points, is_seed)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			t.Name, t.CountryCode, nullableState(t.StateCode), t.DistanceMiles, t.ElevationGainFt, points, t.IsSeed)
		if err != nil {
			return 0, fmt.Errorf("failed to insert trail %q: %w", t.Name, err)
		}
		return result.LastInsertId()
	case err != nil:
		return 0, fmt.Errorf("failed to look up trail %q: %w", t.Name, err)
	}

	_, err = r.db.ExecContext(ctx,
		`UPDATE trails SET distance_miles = ?, elevation_gain_ft = ? WHERE id = ?`,
		t.DistanceMiles, t.ElevationGainFt, existing)
	if err != nil {
		return 0, fmt.Errorf("failed to update trail %q: %w", t.Name, err)
	}
	return existing, nil
}

// SaveProfile attaches an elevation profile to an existing trail.
func (r *Repository) SaveProfile(ctx context.Context, id int64, points []hike.ProfilePoint) error {
	data, err := marshalPoints(points)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `UPDATE trails SET profile_points = ? WHERE id = ?`, data, id)
	if err != nil {
		return fmt.Errorf("failed to save profile for trail %d: %w", id, err)
	}
	return nil
}

// ListWithoutProfile returns a country's trails that have no elevation
// profile yet, oldest rows first.
func (r *Repository) ListWithoutProfile(ctx context.Context, countryCode string) ([]Trail, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, country_code, state_code, distance_miles, elevation_gain_ft, profile_points, is_seed
		 FROM trails WHERE country_code = ? AND profile_points IS NULL ORDER BY id ASC`, countryCode)
	if err != nil {
		return nil, fmt.Errorf("failed to list trails without profile: %w", err)
	}
	defer rows.Close()

	var trails []Trail
	for rows.Next() {
		t, err := scanTrail(rows)
		if err != nil {
			return nil, err
		}
		trails = append(trails, t)
	}
	return trails, rows.Err()
}

// DeleteAll removes every trail. Used by the seeder's --reset flag.
func (r *Repository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM trails`); err != nil {
		return fmt.Errorf("failed to delete trails: %w", err)
	}
	return nil
}

// Count returns the number of trails in the catalog.
func (r *Repository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM trails`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count trails: %w", err)
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrail(row rowScanner) (Trail, error) {
	var t Trail
	var state sql.NullString
	var points sql.NullString
	if err := row.Scan(&t.ID, &t.Name, &t.CountryCode, &state, &t.DistanceMiles, &t.ElevationGainFt, &points, &t.IsSeed); err != nil {
		if err == sql.ErrNoRows {
			return Trail{}, err
		}
		return Trail{}, fmt.Errorf("failed to scan trail row: %w", err)
	}
	t.StateCode = state.String
	if points.Valid && points.String != "" {
		if err := json.Unmarshal([]byte(points.String), &t.ProfilePoints); err != nil {
			return Trail{}, fmt.Errorf("failed to unmarshal profile points for trail %d: %w", t.ID, err)
		}
	}
	return t, nil
}

func marshalPoints(points []hike.ProfilePoint) (any, error) {
	if len(points) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(points)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal profile points: %w", err)
	}
	return string(data), nil
}

func nullableState(state string) any {
	if state == "" {
		return nil
	}
	return state
}
