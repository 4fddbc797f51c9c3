package repository

import (
	"context"
	"database/sql"

	"github.com/greenwave/conference-ticketing/internal/model"
)

// ReservationRepo persists workshop reservations. Reservations only
// grow: rows are appended one at a time as seats are taken and the
// whole set for an attendee is cleared when a fresh ticket purchase
// replaces their entitlement. There is no per-reservation delete.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// Append records a reservation for the attendee.
func (r *ReservationRepo) Append(ctx context.Context, attendeeID, workshopID uint64) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO reservations (attendee_id, workshop_id) VALUES (?,?)",
		attendeeID, workshopID)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ListByAttendee returns the attendee's reservations in the order they
// were made, with workshop titles joined in for display.
func (r *ReservationRepo) ListByAttendee(ctx context.Context, attendeeID uint64) ([]model.Reservation, error) {
	const q = `SELECT r.id, r.attendee_id, r.workshop_id, w.title, r.created_at
	           FROM reservations r
	           JOIN workshops w ON w.id = r.workshop_id
	           WHERE r.attendee_id = ?
	           ORDER BY r.id`
	rows, err := r.db.QueryContext(ctx, q, attendeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	reservations := make([]model.Reservation, 0)
	for rows.Next() {
		var rv model.Reservation
		if err := rows.Scan(&rv.ID, &rv.AttendeeID, &rv.WorkshopID, &rv.WorkshopTitle, &rv.CreatedAt); err != nil {
			return nil, err
		}
		reservations = append(reservations, rv)
	}
	return reservations, rows.Err()
}

// ClearForAttendee removes every reservation the attendee holds. The
// workshop capacities consumed by those reservations are not restored.
func (r *ReservationRepo) ClearForAttendee(ctx context.Context, attendeeID uint64) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM reservations WHERE attendee_id=?", attendeeID)
	return err
}
