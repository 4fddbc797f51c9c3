package model

import "time"

// Workshop represents a capacity-limited event belonging to one
// exhibition. Capacity is decremented on every successful reservation
// and is never restored; there is no cancellation path for workshop
// seats.
//
// Fields:
//  ID         – primary key identifier.
//  Title      – workshop name, unique within its exhibition.
//  Exhibition – exhibition code the workshop belongs to (A, B or C).
//  Capacity   – remaining seats; never negative.
//  CreatedAt  – timestamp of creation (seeding).
type Workshop struct {
	ID         uint64    // workshops.id
	Title      string    // workshops.title
	Exhibition string    // workshops.exhibition
	Capacity   uint32    // workshops.capacity
	CreatedAt  time.Time // workshops.created_at
}

// Reservation links an attendee to a workshop seat. Reservations are
// appended in the order they are made and are only ever removed as a
// whole when a fresh ticket purchase resets the attendee's
// entitlement.
//
// Fields:
//  ID            – primary key identifier.
//  AttendeeID    – attendee holding the seat.
//  WorkshopID    – reserved workshop.
//  WorkshopTitle – denormalized title, populated on reads that join
//                  the workshops table.
//  CreatedAt     – timestamp of the reservation.
type Reservation struct {
	ID            uint64    // reservations.id
	AttendeeID    uint64    // reservations.attendee_id
	WorkshopID    uint64    // reservations.workshop_id
	WorkshopTitle string    // workshops.title (join)
	CreatedAt     time.Time // reservations.created_at
}
