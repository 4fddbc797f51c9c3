package model

import "time"

// TicketType defines the rules of a ticket: its price and which
// exhibitions it grants access to. Ticket types form a static catalog
// constructed at startup; they are never persisted or mutated.
//
// Fields:
//  Name        – catalog name of the ticket (Single, Double, Full).
//  PriceCents  – price in cents (AED).
//  Exhibitions – exhibition codes this ticket grants access to.
type TicketType struct {
	Name        string
	PriceCents  uint32
	Exhibitions []string
}

// Grants reports whether the ticket type allows access to the given
// exhibition code.
func (t TicketType) Grants(exhibition string) bool {
	for _, e := range t.Exhibitions {
		if e == exhibition {
			return true
		}
	}
	return false
}

// Payment records how a ticket purchase or upgrade was paid for. Rows
// in the `payments` table are append-only: they survive pass
// cancellation and account deletion as a financial audit trail.
//
// Fields:
//  ID          – primary key identifier.
//  AttendeeID  – attendee the payment was collected from.
//  Method      – payment method (card, credit, debit, apple-pay, cash).
//  AmountCents – amount collected in cents; the full ticket price on
//                purchase, the price delta on upgrade.
//  CreatedAt   – timestamp of the payment.
type Payment struct {
	ID          uint64    // payments.id
	AttendeeID  uint64    // payments.attendee_id
	Method      string    // payments.method
	AmountCents uint32    // payments.amount_cents
	CreatedAt   time.Time // payments.created_at
}

// Payment methods accepted at the conference desk.
const (
	PaymentCard     = "card"
	PaymentCredit   = "credit"
	PaymentDebit    = "debit"
	PaymentApplePay = "apple-pay"
	PaymentCash     = "cash"
)

// ValidPaymentMethod reports whether m is one of the accepted payment
// methods.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCard, PaymentCredit, PaymentDebit, PaymentApplePay, PaymentCash:
		return true
	}
	return false
}

// Ticket is an immutable purchase record linking a ticket type with
// its payment. Like payments, tickets are append-only history and are
// never deleted, even when the pass they produced is cancelled or
// replaced.
//
// Fields:
//  ID         – primary key identifier.
//  AttendeeID – attendee who bought the ticket.
//  TicketType – catalog name of the purchased type.
//  PaymentID  – payment that covered this ticket.
//  CreatedAt  – timestamp of the purchase.
type Ticket struct {
	ID         uint64    // tickets.id
	AttendeeID uint64    // tickets.attendee_id
	TicketType string    // tickets.ticket_type
	PaymentID  uint64    // tickets.payment_id
	CreatedAt  time.Time // tickets.created_at
}

// Pass is an attendee's current ticket entitlement. At most one pass
// exists per attendee (`passes.attendee_id` is the primary key). A
// fresh purchase replaces the row, an upgrade swaps the ticket type in
// place and a cancellation deletes the row; the underlying tickets and
// payments are untouched in all three cases.
//
// Fields:
//  AttendeeID – attendee holding the pass.
//  TicketType – catalog name of the current entitlement tier.
//  TicketID   – ticket that produced this pass.
//  CreatedAt  – when the pass was first issued.
//  UpdatedAt  – last replacement or upgrade.
type Pass struct {
	AttendeeID uint64    // passes.attendee_id
	TicketType string    // passes.ticket_type
	TicketID   uint64    // passes.ticket_id
	CreatedAt  time.Time // passes.created_at
	UpdatedAt  time.Time // passes.updated_at
}
