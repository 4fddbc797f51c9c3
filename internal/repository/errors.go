// Package repository defines error types that are reused across
// multiple repositories. These sentinel values allow higher layers
// such as the ticketing service and handlers to distinguish between
// different failure scenarios without inspecting driver errors.
package repository

import "errors"

// ErrUsernameExists is returned when an attendee registration collides
// with an existing username. The `attendees.username` column carries a
// unique index with a binary collation, so the match is exact and
// case-sensitive.
var ErrUsernameExists = errors.New("username already exists")

// ErrAttendeeNotFound is returned when an attendee row does not exist
// for the given identifier.
var ErrAttendeeNotFound = errors.New("attendee not found")

// ErrPassNotFound is returned when an attendee holds no active pass.
var ErrPassNotFound = errors.New("pass not found")

// ErrWorkshopNotFound is returned when no workshop with the requested
// title exists in the catalog.
var ErrWorkshopNotFound = errors.New("workshop not found")

// ErrNoCapacity is returned by a guarded capacity decrement when the
// workshop has no seats left. The guard keeps capacity from ever going
// negative at the database level.
var ErrNoCapacity = errors.New("no remaining capacity")
