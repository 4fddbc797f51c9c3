package repository

import (
	"context"
	"database/sql"

	"github.com/greenwave/conference-ticketing/internal/model"
)

// PassRepo persists the single live pass per attendee. The table is
// keyed by attendee_id, so the at-most-one invariant is enforced by
// the schema rather than by application logic.
type PassRepo struct{ DB *sql.DB }

func NewPassRepo(db *sql.DB) *PassRepo { return &PassRepo{DB: db} }

// Get returns the attendee's active pass or ErrPassNotFound.
func (r *PassRepo) Get(ctx context.Context, attendeeID uint64) (model.Pass, error) {
	var p model.Pass
	err := r.DB.QueryRowContext(ctx,
		"SELECT attendee_id,ticket_type,ticket_id,created_at,updated_at FROM passes WHERE attendee_id=? LIMIT 1",
		attendeeID).Scan(&p.AttendeeID, &p.TicketType, &p.TicketID, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.Pass{}, ErrPassNotFound
	}
	return p, err
}

// Replace installs a new pass for the attendee, overwriting any
// existing one. Used by fresh purchases, where the previous
// entitlement is discarded wholesale.
func (r *PassRepo) Replace(ctx context.Context, attendeeID uint64, ticketType string, ticketID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO passes (attendee_id, ticket_type, ticket_id) VALUES (?,?,?)
		 ON DUPLICATE KEY UPDATE ticket_type=VALUES(ticket_type), ticket_id=VALUES(ticket_id)`,
		attendeeID, ticketType, ticketID)
	return err
}

// UpdateType swaps the ticket type of an existing pass in place,
// leaving the originating ticket reference untouched. Used by
// upgrades. Returns ErrPassNotFound when the attendee has no pass.
func (r *PassRepo) UpdateType(ctx context.Context, attendeeID uint64, ticketType string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE passes SET ticket_type=? WHERE attendee_id=?",
		ticketType, attendeeID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		if _, err := r.Get(ctx, attendeeID); err != nil {
			return err
		}
	}
	return nil
}

// Delete clears the attendee's pass. Returns ErrPassNotFound when
// there was nothing to clear.
func (r *PassRepo) Delete(ctx context.Context, attendeeID uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM passes WHERE attendee_id=?", attendeeID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrPassNotFound
	}
	return nil
}
