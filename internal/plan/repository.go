package plan

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// StoredPlan is a persisted training plan row.
type StoredPlan struct {
	ID        int64
	UserID    *int64
	HikeID    int64
	PlanJSON  []byte
	CreatedAt time.Time
}

// Repository is a database-backed repository for generated plans.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{db: d}
}

// Save inserts a generated plan for a catalog hike.
func (r *Repository) Save(ctx context.Context, userID *int64, hikeID int64, planJSON []byte) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO training_plans (user_id, hike_id, plan_json, created_at) VALUES (?, ?, ?, ?)`,
		userID, hikeID, planJSON, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to save training plan for hike %d: %w", hikeID, err)
	}
	return result.LastInsertId()
}

// ListRecentByHike retrieves the N most recent plans generated for a hike.
func (r *Repository) ListRecentByHike(ctx context.Context, hikeID int64, limit int) ([]StoredPlan, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, hike_id, plan_json, created_at
		 FROM training_plans WHERE hike_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`,
		hikeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans for hike %d: %w", hikeID, err)
	}
	defer rows.Close()

	var plans []StoredPlan
	for rows.Next() {
		var p StoredPlan
		var userID sql.NullInt64
		if err := rows.Scan(&p.ID, &userID, &p.HikeID, &p.PlanJSON, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan plan row: %w", err)
		}
		if userID.Valid {
			id := userID.Int64
			p.UserID = &id
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}
