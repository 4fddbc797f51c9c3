package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/greenwave/conference-ticketing/internal/model"
)

// AttendeeRepo provides persistence for attendee accounts.
type AttendeeRepo struct{ DB *sql.DB }

func NewAttendeeRepo(db *sql.DB) *AttendeeRepo { return &AttendeeRepo{DB: db} }

const attendeeColumns = "id,username,password_hash,email,created_at,updated_at"

// Create inserts an attendee and returns its ID. The username is
// stored exactly as given; MySQL error 1062 (duplicate key on the
// unique username index) is mapped to ErrUsernameExists.
func (r *AttendeeRepo) Create(ctx context.Context, username, passwordHash, email string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO attendees (username, password_hash, email) VALUES (?,?,?)",
		username, passwordHash, email)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrUsernameExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByUsername fetches an attendee by exact username.
func (r *AttendeeRepo) GetByUsername(ctx context.Context, username string) (model.Attendee, error) {
	var a model.Attendee
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+attendeeColumns+" FROM attendees WHERE username=? LIMIT 1",
		username).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.Email, &a.CreatedAt, &a.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.Attendee{}, ErrAttendeeNotFound
	}
	return a, err
}

// GetByID fetches an attendee by id.
func (r *AttendeeRepo) GetByID(ctx context.Context, id uint64) (model.Attendee, error) {
	var a model.Attendee
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+attendeeColumns+" FROM attendees WHERE id=? LIMIT 1",
		id).Scan(&a.ID, &a.Username, &a.PasswordHash, &a.Email, &a.CreatedAt, &a.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.Attendee{}, ErrAttendeeNotFound
	}
	return a, err
}

// UpdateCredentials updates only the provided fields. A nil pointer
// leaves the corresponding column unchanged. Email format and password
// strength are not validated anywhere in the system.
func (r *AttendeeRepo) UpdateCredentials(ctx context.Context, id uint64, email, passwordHash *string) error {
	if email == nil && passwordHash == nil {
		return nil
	}
	sets := make([]string, 0, 2)
	args := make([]interface{}, 0, 3)
	if email != nil {
		sets = append(sets, "email=?")
		args = append(args, *email)
	}
	if passwordHash != nil {
		sets = append(sets, "password_hash=?")
		args = append(args, *passwordHash)
	}
	args = append(args, id)
	res, err := r.DB.ExecContext(ctx,
		"UPDATE attendees SET "+strings.Join(sets, ",")+" WHERE id=?", args...)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// RowsAffected is 0 both for a missing row and for a no-op
		// update, so confirm existence before reporting not found.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes an attendee row. The pass, reservations and refresh
// tokens of the attendee are removed through ON DELETE CASCADE;
// tickets and payments intentionally carry no foreign key so the
// financial audit trail survives account deletion.
func (r *AttendeeRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM attendees WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAttendeeNotFound
	}
	return nil
}
