package repository

import (
	"context"
	"database/sql"

	"github.com/greenwave/conference-ticketing/internal/model"
)

// LedgerRepo owns the append-only financial history: the payments and
// tickets tables. Rows are only ever inserted; there is no update or
// delete path, which is what makes the ledger usable as an audit
// trail.
type LedgerRepo struct {
	db *sql.DB
}

// NewLedgerRepo returns a LedgerRepo bound to the given database.
func NewLedgerRepo(db *sql.DB) *LedgerRepo { return &LedgerRepo{db: db} }

// AppendPurchase records a payment and the ticket it covered inside a
// single transaction, so the ledger never contains a payment without
// its ticket or vice versa. It returns both rows with generated IDs
// and timestamps populated.
func (r *LedgerRepo) AppendPurchase(ctx context.Context, attendeeID uint64, ticketType, method string, amountCents uint32) (model.Ticket, model.Payment, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Ticket{}, model.Payment{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO payments (attendee_id, method, amount_cents) VALUES (?,?,?)",
		attendeeID, method, amountCents)
	if err != nil {
		return model.Ticket{}, model.Payment{}, err
	}
	paymentID, err := res.LastInsertId()
	if err != nil {
		return model.Ticket{}, model.Payment{}, err
	}

	res, err = tx.ExecContext(ctx,
		"INSERT INTO tickets (attendee_id, ticket_type, payment_id) VALUES (?,?,?)",
		attendeeID, ticketType, paymentID)
	if err != nil {
		return model.Ticket{}, model.Payment{}, err
	}
	ticketID, err := res.LastInsertId()
	if err != nil {
		return model.Ticket{}, model.Payment{}, err
	}

	// Query back both rows so callers see DB-assigned timestamps.
	var p model.Payment
	err = tx.QueryRowContext(ctx,
		"SELECT id,attendee_id,method,amount_cents,created_at FROM payments WHERE id=?",
		paymentID).Scan(&p.ID, &p.AttendeeID, &p.Method, &p.AmountCents, &p.CreatedAt)
	if err != nil {
		return model.Ticket{}, model.Payment{}, err
	}
	var t model.Ticket
	err = tx.QueryRowContext(ctx,
		"SELECT id,attendee_id,ticket_type,payment_id,created_at FROM tickets WHERE id=?",
		ticketID).Scan(&t.ID, &t.AttendeeID, &t.TicketType, &t.PaymentID, &t.CreatedAt)
	if err != nil {
		return model.Ticket{}, model.Payment{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.Ticket{}, model.Payment{}, err
	}
	committed = true
	return t, p, nil
}

// ListTicketsByAttendee returns an attendee's full purchase history in
// insertion order. Deleted accounts keep their history; the rows are
// simply no longer reachable through an attendee profile.
func (r *LedgerRepo) ListTicketsByAttendee(ctx context.Context, attendeeID uint64) ([]model.Ticket, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id,attendee_id,ticket_type,payment_id,created_at FROM tickets WHERE attendee_id=? ORDER BY id",
		attendeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	tickets := make([]model.Ticket, 0)
	for rows.Next() {
		var t model.Ticket
		if err := rows.Scan(&t.ID, &t.AttendeeID, &t.TicketType, &t.PaymentID, &t.CreatedAt); err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

// ListPaymentsByAttendee returns an attendee's payments in insertion
// order.
func (r *LedgerRepo) ListPaymentsByAttendee(ctx context.Context, attendeeID uint64) ([]model.Payment, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id,attendee_id,method,amount_cents,created_at FROM payments WHERE attendee_id=? ORDER BY id",
		attendeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	payments := make([]model.Payment, 0)
	for rows.Next() {
		var p model.Payment
		if err := rows.Scan(&p.ID, &p.AttendeeID, &p.Method, &p.AmountCents, &p.CreatedAt); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
