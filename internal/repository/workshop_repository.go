package repository

import (
	"context"
	"database/sql"

	"github.com/greenwave/conference-ticketing/internal/model"
)

// WorkshopRepo provides access to the workshop catalog and its
// remaining capacities.
type WorkshopRepo struct {
	db *sql.DB
}

// NewWorkshopRepo returns a WorkshopRepo bound to the given database.
func NewWorkshopRepo(db *sql.DB) *WorkshopRepo { return &WorkshopRepo{db: db} }

const workshopColumns = "id,title,exhibition,capacity,created_at"

// GetByTitle fetches a workshop by its title.
func (r *WorkshopRepo) GetByTitle(ctx context.Context, title string) (model.Workshop, error) {
	var w model.Workshop
	err := r.db.QueryRowContext(ctx,
		"SELECT "+workshopColumns+" FROM workshops WHERE title=? LIMIT 1",
		title).Scan(&w.ID, &w.Title, &w.Exhibition, &w.Capacity, &w.CreatedAt)
	if err == sql.ErrNoRows {
		return model.Workshop{}, ErrWorkshopNotFound
	}
	return w, err
}

// List returns every workshop ordered by exhibition then title, which
// is the order the admin occupancy view displays them in.
func (r *WorkshopRepo) List(ctx context.Context) ([]model.Workshop, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+workshopColumns+" FROM workshops ORDER BY exhibition, title")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	workshops := make([]model.Workshop, 0)
	for rows.Next() {
		var w model.Workshop
		if err := rows.Scan(&w.ID, &w.Title, &w.Exhibition, &w.Capacity, &w.CreatedAt); err != nil {
			return nil, err
		}
		workshops = append(workshops, w)
	}
	return workshops, rows.Err()
}

// DecrementCapacity takes one seat from the workshop. The WHERE guard
// refuses the update once capacity reaches zero, so capacity can never
// go negative regardless of interleaving; ErrNoCapacity is returned in
// that case.
func (r *WorkshopRepo) DecrementCapacity(ctx context.Context, workshopID uint64) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE workshops SET capacity=capacity-1 WHERE id=? AND capacity>0",
		workshopID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNoCapacity
	}
	return nil
}
