// Package service implements the ticketing rules of the GreenWave
// conference: account management, pass purchase/upgrade/cancellation,
// workshop reservation and sales reporting. All state transitions are
// validated here; repositories only move rows and handlers only
// translate HTTP.
package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"log"
	"time"

	"github.com/greenwave/conference-ticketing/internal/clock"
	"github.com/greenwave/conference-ticketing/internal/model"
	"github.com/greenwave/conference-ticketing/internal/queue"
	"github.com/greenwave/conference-ticketing/internal/repository"
	"github.com/greenwave/conference-ticketing/internal/utils"
)

// AttendeeStore is the slice of attendee persistence the service needs.
type AttendeeStore interface {
	Create(ctx context.Context, username, passwordHash, email string) (uint64, error)
	GetByUsername(ctx context.Context, username string) (model.Attendee, error)
	GetByID(ctx context.Context, id uint64) (model.Attendee, error)
	UpdateCredentials(ctx context.Context, id uint64, email, passwordHash *string) error
	Delete(ctx context.Context, id uint64) error
}

// PassStore persists the single live pass per attendee.
type PassStore interface {
	Get(ctx context.Context, attendeeID uint64) (model.Pass, error)
	Replace(ctx context.Context, attendeeID uint64, ticketType string, ticketID uint64) error
	UpdateType(ctx context.Context, attendeeID uint64, ticketType string) error
	Delete(ctx context.Context, attendeeID uint64) error
}

// LedgerStore appends to and reads the immutable ticket/payment history.
type LedgerStore interface {
	AppendPurchase(ctx context.Context, attendeeID uint64, ticketType, method string, amountCents uint32) (model.Ticket, model.Payment, error)
	ListTicketsByAttendee(ctx context.Context, attendeeID uint64) ([]model.Ticket, error)
	ListPaymentsByAttendee(ctx context.Context, attendeeID uint64) ([]model.Payment, error)
}

// WorkshopStore reads the workshop catalog and takes seats from it.
type WorkshopStore interface {
	GetByTitle(ctx context.Context, title string) (model.Workshop, error)
	List(ctx context.Context) ([]model.Workshop, error)
	DecrementCapacity(ctx context.Context, workshopID uint64) error
}

// ReservationStore persists workshop reservations.
type ReservationStore interface {
	Append(ctx context.Context, attendeeID, workshopID uint64) (uint64, error)
	ListByAttendee(ctx context.Context, attendeeID uint64) ([]model.Reservation, error)
	ClearForAttendee(ctx context.Context, attendeeID uint64) error
}

// SalesReportStore maintains per-date revenue aggregates.
type SalesReportStore interface {
	AddSale(ctx context.Context, date string, amountCents uint32) error
	List(ctx context.Context) ([]model.SalesReport, error)
}

// EventPublisher pushes domain events to the message broker. A nil
// publisher disables publishing; publish errors never fail the
// operation that produced the event.
type EventPublisher interface {
	SaleRecorded(ctx context.Context, ev queue.SaleRecordedEvent) error
	WorkshopReserved(ctx context.Context, ev queue.WorkshopReservedEvent) error
}

// AdminCredentials is the configuration-supplied administrator
// identity. There is exactly one; it is not a registered account and
// is never persisted.
type AdminCredentials struct {
	Username string
	Password string
}

// Ticketing is the ticketing service. Construct it with NewTicketing;
// the zero value is not usable.
type Ticketing struct {
	attendees    AttendeeStore
	passes       PassStore
	ledger       LedgerStore
	workshops    WorkshopStore
	reservations ReservationStore
	reports      SalesReportStore
	publisher    EventPublisher
	clock        clock.Clock
	admin        AdminCredentials
	bcryptCost   int
}

// NewTicketing wires a Ticketing service. publisher may be nil.
func NewTicketing(
	attendees AttendeeStore,
	passes PassStore,
	ledger LedgerStore,
	workshops WorkshopStore,
	reservations ReservationStore,
	reports SalesReportStore,
	publisher EventPublisher,
	clk clock.Clock,
	admin AdminCredentials,
	bcryptCost int,
) *Ticketing {
	if attendees == nil || passes == nil || ledger == nil || workshops == nil || reservations == nil || reports == nil {
		panic("nil store passed to NewTicketing")
	}
	return &Ticketing{
		attendees:    attendees,
		passes:       passes,
		ledger:       ledger,
		workshops:    workshops,
		reservations: reservations,
		reports:      reports,
		publisher:    publisher,
		clock:        clk,
		admin:        admin,
		bcryptCost:   bcryptCost,
	}
}

// Register creates a new attendee account. The username must be unique
// (exact, case-sensitive match); repository.ErrUsernameExists is
// returned otherwise. Email format and password strength are not
// validated.
func (s *Ticketing) Register(ctx context.Context, username, password, email string) (model.Attendee, error) {
	hash, err := utils.HashPassword(password, s.bcryptCost)
	if err != nil {
		return model.Attendee{}, err
	}
	id, err := s.attendees.Create(ctx, username, hash, email)
	if err != nil {
		return model.Attendee{}, err
	}
	return s.attendees.GetByID(ctx, id)
}

// Authenticate verifies a username/password pair and returns the
// matching attendee, or ErrInvalidCredentials. Issuing the session
// token for the authenticated identity is the transport layer's job.
func (s *Ticketing) Authenticate(ctx context.Context, username, password string) (model.Attendee, error) {
	a, err := s.attendees.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrAttendeeNotFound) {
			return model.Attendee{}, ErrInvalidCredentials
		}
		return model.Attendee{}, err
	}
	if !utils.VerifyPassword(a.PasswordHash, password) {
		return model.Attendee{}, ErrInvalidCredentials
	}
	return a, nil
}

// UpdateCredentials changes only the provided fields of the attendee's
// account. Nil pointers leave the corresponding field untouched.
func (s *Ticketing) UpdateCredentials(ctx context.Context, attendeeID uint64, email, password *string) error {
	if attendeeID == 0 {
		return ErrNotAuthenticated
	}
	var hash *string
	if password != nil {
		h, err := utils.HashPassword(*password, s.bcryptCost)
		if err != nil {
			return err
		}
		hash = &h
	}
	return s.attendees.UpdateCredentials(ctx, attendeeID, email, hash)
}

// DeleteAccount removes the attendee. The pass and reservations go
// with the account; the ticket/payment ledger is retained as an audit
// trail.
func (s *Ticketing) DeleteAccount(ctx context.Context, attendeeID uint64) error {
	if attendeeID == 0 {
		return ErrNotAuthenticated
	}
	return s.attendees.Delete(ctx, attendeeID)
}

// PurchaseResult carries everything a fresh purchase produced.
type PurchaseResult struct {
	Ticket  model.Ticket
	Payment model.Payment
	Pass    model.Pass
}

// Purchase sells a ticket of the named type to the attendee: it
// appends a payment for the full price and a ticket to the ledger,
// replaces the attendee's pass and resets their reservation list, then
// folds the revenue into today's sales report. Reservations are tied
// to the entitlement that produced them, which is why a fresh purchase
// clears them while an upgrade does not.
func (s *Ticketing) Purchase(ctx context.Context, attendeeID uint64, typeName, method string) (PurchaseResult, error) {
	if attendeeID == 0 {
		return PurchaseResult{}, ErrNotAuthenticated
	}
	tt, ok := model.TicketTypeByName(typeName)
	if !ok {
		return PurchaseResult{}, ErrUnknownTicketType
	}
	if !model.ValidPaymentMethod(method) {
		return PurchaseResult{}, ErrUnknownPaymentMethod
	}
	attendee, err := s.attendees.GetByID(ctx, attendeeID)
	if err != nil {
		return PurchaseResult{}, err
	}

	ticket, payment, err := s.ledger.AppendPurchase(ctx, attendeeID, tt.Name, method, tt.PriceCents)
	if err != nil {
		return PurchaseResult{}, err
	}
	if err := s.passes.Replace(ctx, attendeeID, tt.Name, ticket.ID); err != nil {
		return PurchaseResult{}, err
	}
	if err := s.reservations.ClearForAttendee(ctx, attendeeID); err != nil {
		return PurchaseResult{}, err
	}
	if err := s.recordSale(ctx, tt.PriceCents); err != nil {
		return PurchaseResult{}, err
	}
	s.publishSale(ctx, attendee.Username, tt.Name, method, payment.AmountCents, false)

	pass, err := s.passes.Get(ctx, attendeeID)
	if err != nil {
		return PurchaseResult{}, err
	}
	return PurchaseResult{Ticket: ticket, Payment: payment, Pass: pass}, nil
}

// Upgrade moves the attendee's pass to a strictly higher tier,
// charging only the price difference. The pass's ticket type is
// swapped in place and existing reservations survive. Fails with
// ErrNoActivePass without a pass and ErrInvalidUpgrade when the target
// price is not strictly above the current one; neither failure writes
// anything.
func (s *Ticketing) Upgrade(ctx context.Context, attendeeID uint64, typeName string) (PurchaseResult, error) {
	if attendeeID == 0 {
		return PurchaseResult{}, ErrNotAuthenticated
	}
	tt, ok := model.TicketTypeByName(typeName)
	if !ok {
		return PurchaseResult{}, ErrUnknownTicketType
	}
	pass, err := s.passes.Get(ctx, attendeeID)
	if err != nil {
		if errors.Is(err, repository.ErrPassNotFound) {
			return PurchaseResult{}, ErrNoActivePass
		}
		return PurchaseResult{}, err
	}
	current, ok := model.TicketTypeByName(pass.TicketType)
	if !ok {
		return PurchaseResult{}, ErrUnknownTicketType
	}
	if tt.PriceCents <= current.PriceCents {
		return PurchaseResult{}, ErrInvalidUpgrade
	}
	delta := tt.PriceCents - current.PriceCents

	attendee, err := s.attendees.GetByID(ctx, attendeeID)
	if err != nil {
		return PurchaseResult{}, err
	}
	// Upgrades are always settled against the card on file.
	ticket, payment, err := s.ledger.AppendPurchase(ctx, attendeeID, tt.Name, model.PaymentCard, delta)
	if err != nil {
		return PurchaseResult{}, err
	}
	if err := s.passes.UpdateType(ctx, attendeeID, tt.Name); err != nil {
		return PurchaseResult{}, err
	}
	if err := s.recordSale(ctx, delta); err != nil {
		return PurchaseResult{}, err
	}
	s.publishSale(ctx, attendee.Username, tt.Name, model.PaymentCard, delta, true)

	updated, err := s.passes.Get(ctx, attendeeID)
	if err != nil {
		return PurchaseResult{}, err
	}
	return PurchaseResult{Ticket: ticket, Payment: payment, Pass: updated}, nil
}

// Cancel clears the attendee's pass. Ticket and payment history is
// retained, and reservations already made are neither removed nor
// released back to workshop capacity.
func (s *Ticketing) Cancel(ctx context.Context, attendeeID uint64) error {
	if attendeeID == 0 {
		return ErrNotAuthenticated
	}
	err := s.passes.Delete(ctx, attendeeID)
	if errors.Is(err, repository.ErrPassNotFound) {
		return ErrNoActivePass
	}
	return err
}

// Reserve books seats in the named workshops, in the order given. Each
// workshop is validated and applied independently: the workshop must
// exist, its exhibition must be granted by the attendee's current pass
// and it must have remaining capacity. A failure on the N-th workshop
// aborts the call with a *ReservationError; the N-1 reservations
// already applied are kept. The successfully applied reservations are
// returned in both cases.
func (s *Ticketing) Reserve(ctx context.Context, attendeeID uint64, titles []string) ([]model.Reservation, error) {
	if attendeeID == 0 {
		return nil, ErrNotAuthenticated
	}
	pass, err := s.passes.Get(ctx, attendeeID)
	if err != nil {
		if errors.Is(err, repository.ErrPassNotFound) {
			return nil, ErrNoActivePass
		}
		return nil, err
	}
	granted, ok := model.TicketTypeByName(pass.TicketType)
	if !ok {
		return nil, ErrUnknownTicketType
	}

	applied := make([]model.Reservation, 0, len(titles))
	fail := func(title string, cause error) ([]model.Reservation, error) {
		return applied, &ReservationError{WorkshopTitle: title, Applied: len(applied), Err: cause}
	}
	for _, title := range titles {
		ws, err := s.workshops.GetByTitle(ctx, title)
		if err != nil {
			return fail(title, err)
		}
		if !granted.Grants(ws.Exhibition) {
			return fail(title, ErrExhibitionNotGranted)
		}
		if ws.Capacity == 0 {
			return fail(title, ErrWorkshopFull)
		}
		if err := s.workshops.DecrementCapacity(ctx, ws.ID); err != nil {
			if errors.Is(err, repository.ErrNoCapacity) {
				return fail(title, ErrWorkshopFull)
			}
			return fail(title, err)
		}
		id, err := s.reservations.Append(ctx, attendeeID, ws.ID)
		if err != nil {
			return fail(title, err)
		}
		applied = append(applied, model.Reservation{
			ID:            id,
			AttendeeID:    attendeeID,
			WorkshopID:    ws.ID,
			WorkshopTitle: ws.Title,
			CreatedAt:     s.clock.Now(),
		})
	}

	if s.publisher != nil && len(applied) > 0 {
		names := make([]string, len(applied))
		for i, rv := range applied {
			names[i] = rv.WorkshopTitle
		}
		ev := queue.WorkshopReservedEvent{
			AttendeeID: attendeeID,
			Workshops:  names,
			ReservedAt: s.clock.Now().Format(time.RFC3339),
		}
		if err := s.publisher.WorkshopReserved(ctx, ev); err != nil {
			log.Printf("ticketing: publish workshop.reserved failed: %v", err)
		}
	}
	return applied, nil
}

// Profile is the attendee-facing account overview: the account itself,
// the current pass if any, and the full reservation and ledger
// history.
type Profile struct {
	Attendee     model.Attendee
	Pass         *model.Pass
	Reservations []model.Reservation
	Tickets      []model.Ticket
	Payments     []model.Payment
}

// GetProfile assembles the attendee's profile.
func (s *Ticketing) GetProfile(ctx context.Context, attendeeID uint64) (Profile, error) {
	if attendeeID == 0 {
		return Profile{}, ErrNotAuthenticated
	}
	attendee, err := s.attendees.GetByID(ctx, attendeeID)
	if err != nil {
		return Profile{}, err
	}
	p := Profile{Attendee: attendee}
	pass, err := s.passes.Get(ctx, attendeeID)
	switch {
	case err == nil:
		p.Pass = &pass
	case errors.Is(err, repository.ErrPassNotFound):
		// no live pass, profile simply shows none
	default:
		return Profile{}, err
	}
	if p.Reservations, err = s.reservations.ListByAttendee(ctx, attendeeID); err != nil {
		return Profile{}, err
	}
	if p.Tickets, err = s.ledger.ListTicketsByAttendee(ctx, attendeeID); err != nil {
		return Profile{}, err
	}
	if p.Payments, err = s.ledger.ListPaymentsByAttendee(ctx, attendeeID); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// ValidateAdmin checks the supplied pair against the single
// configured administrator identity. The comparison is constant-time;
// the error is the same ErrInvalidCredentials attendees get so the
// response does not leak which field was wrong.
func (s *Ticketing) ValidateAdmin(username, password string) error {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.admin.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.admin.Password)) == 1
	if !userOK || !passOK {
		return ErrInvalidCredentials
	}
	return nil
}

// SalesReports returns all daily reports in chronological order.
func (s *Ticketing) SalesReports(ctx context.Context) ([]model.SalesReport, error) {
	return s.reports.List(ctx)
}

// WorkshopOccupancy returns every workshop with its remaining
// capacity, for the admin occupancy view.
func (s *Ticketing) WorkshopOccupancy(ctx context.Context) ([]model.Workshop, error) {
	return s.workshops.List(ctx)
}

// TicketTypes returns the static catalog.
func (s *Ticketing) TicketTypes() []model.TicketType {
	return model.Catalog()
}

// recordSale folds one revenue event into today's report. "Today" is
// the service clock's UTC date.
func (s *Ticketing) recordSale(ctx context.Context, amountCents uint32) error {
	return s.reports.AddSale(ctx, s.clock.Now().Format("2006-01-02"), amountCents)
}

func (s *Ticketing) publishSale(ctx context.Context, username, ticketType, method string, amountCents uint32, upgrade bool) {
	if s.publisher == nil {
		return
	}
	ev := queue.SaleRecordedEvent{
		Username:    username,
		TicketType:  ticketType,
		Method:      method,
		AmountCents: amountCents,
		Upgrade:     upgrade,
		RecordedAt:  s.clock.Now().Format(time.RFC3339),
	}
	if err := s.publisher.SaleRecorded(ctx, ev); err != nil {
		log.Printf("ticketing: publish sale.recorded failed: %v", err)
	}
}
