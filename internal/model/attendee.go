package model

import "time"

// Attendee represents a registered conference user as stored in the
// `attendees` table. The account fields (username, password, email)
// are inlined because every attendee owns exactly one account and the
// username doubles as the attendee's identity. The json tags are
// omitted here because these structs are primarily used internally by
// the repository layer; handlers define separate response types with
// appropriate JSON tags.
//
// Fields:
//  ID           – primary key identifier of the attendee.
//  Username     – unique login name (case-sensitive).
//  PasswordHash – bcrypt hashed password.
//  Email        – contact email address (free-form, not validated).
//  CreatedAt    – timestamp of registration.
//  UpdatedAt    – timestamp of last credential change.
type Attendee struct {
	ID           uint64    // attendees.id
	Username     string    // attendees.username
	PasswordHash string    // attendees.password_hash
	Email        string    // attendees.email
	CreatedAt    time.Time // attendees.created_at
	UpdatedAt    time.Time // attendees.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table. Each
// refresh token belongs to an attendee and contains metadata for
// expiry and revocation. The plain token is not stored; only its
// SHA-256 hash.
//
// Fields:
//  ID         – primary key identifier.
//  AttendeeID – owner of the token.
//  TokenHash  – SHA-256 hex digest of the token value.
//  ExpiresAt  – expiration timestamp of the token.
//  RevokedAt  – when the token was revoked (null if still active).
//  CreatedAt  – timestamp of creation.
type RefreshToken struct {
	ID         uint64     // refresh_tokens.id
	AttendeeID uint64     // refresh_tokens.attendee_id
	TokenHash  string     // refresh_tokens.token_hash
	ExpiresAt  time.Time  // refresh_tokens.expires_at
	RevokedAt  *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt  time.Time  // refresh_tokens.created_at
}
