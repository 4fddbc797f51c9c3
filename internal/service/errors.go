package service

import (
	"errors"
	"fmt"
)

// Business-rule failures. Handlers translate these into HTTP status
// codes; none of them leave previously committed state modified,
// except for the partial-apply behavior of Reserve documented on
// ReservationError.
var (
	ErrNotAuthenticated     = errors.New("not authenticated")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrUnknownTicketType    = errors.New("unknown ticket type")
	ErrUnknownPaymentMethod = errors.New("unknown payment method")
	ErrNoActivePass         = errors.New("no active pass")
	ErrInvalidUpgrade       = errors.New("upgrade must be to a strictly higher tier")
	ErrExhibitionNotGranted = errors.New("exhibition not granted by current pass")
	ErrWorkshopFull         = errors.New("workshop is full")
)

// ReservationError reports which workshop a multi-item Reserve call
// failed on and how many earlier reservations in the same call had
// already been applied. Reservations applied before the failure are
// kept; the call performs no rollback.
type ReservationError struct {
	WorkshopTitle string
	Applied       int
	Err           error
}

func (e *ReservationError) Error() string {
	return fmt.Sprintf("reserve %q: %v (%d earlier reservations in this request were applied)",
		e.WorkshopTitle, e.Err, e.Applied)
}

func (e *ReservationError) Unwrap() error { return e.Err }
