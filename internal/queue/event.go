// Package queue defines message payloads exchanged over the message broker.
package queue

// SaleRecordedEvent is published once per revenue event (a fresh
// purchase or an upgrade delta). It carries enough information for
// downstream consumers to log or feed analytics without querying the
// primary database.
type SaleRecordedEvent struct {
	Username    string `json:"username"`
	TicketType  string `json:"ticket_type"`
	Method      string `json:"method"`
	AmountCents uint32 `json:"amount_cents"`
	Upgrade     bool   `json:"upgrade"`
	RecordedAt  string `json:"recorded_at"`
}

// WorkshopReservedEvent is published when a reservation request
// completes successfully, listing every workshop booked in the call.
type WorkshopReservedEvent struct {
	AttendeeID uint64   `json:"attendee_id"`
	Workshops  []string `json:"workshops"`
	ReservedAt string   `json:"reserved_at"`
}
