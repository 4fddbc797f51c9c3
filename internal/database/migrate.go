package database

import (
	"context"
	"database/sql"
)

// Schema statements, applied in order on startup. Everything is
// IF NOT EXISTS so a first run against an empty database bootstraps
// itself and later runs are no-ops; starting with no prior data must
// never fail.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS attendees (
		id            BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		username      VARCHAR(64) COLLATE utf8mb4_bin NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		email         VARCHAR(255) NOT NULL,
		created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_attendees_username (username)
	)`,
	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id          BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		attendee_id BIGINT UNSIGNED NOT NULL,
		token_hash  CHAR(64) NOT NULL,
		expires_at  DATETIME NOT NULL,
		revoked_at  DATETIME NULL,
		created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_refresh_tokens_hash (token_hash),
		CONSTRAINT fk_refresh_tokens_attendee FOREIGN KEY (attendee_id)
			REFERENCES attendees(id) ON DELETE CASCADE
	)`,
	// payments and tickets deliberately carry no foreign key to
	// attendees: the financial audit trail must survive account
	// deletion.
	`CREATE TABLE IF NOT EXISTS payments (
		id           BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		attendee_id  BIGINT UNSIGNED NOT NULL,
		method       VARCHAR(16) NOT NULL,
		amount_cents INT UNSIGNED NOT NULL,
		created_at   DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_payments_attendee (attendee_id)
	)`,
	`CREATE TABLE IF NOT EXISTS tickets (
		id          BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		attendee_id BIGINT UNSIGNED NOT NULL,
		ticket_type VARCHAR(32) NOT NULL,
		payment_id  BIGINT UNSIGNED NOT NULL,
		created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_tickets_attendee (attendee_id)
	)`,
	`CREATE TABLE IF NOT EXISTS passes (
		attendee_id BIGINT UNSIGNED PRIMARY KEY,
		ticket_type VARCHAR(32) NOT NULL,
		ticket_id   BIGINT UNSIGNED NOT NULL,
		created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		CONSTRAINT fk_passes_attendee FOREIGN KEY (attendee_id)
			REFERENCES attendees(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS workshops (
		id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		title      VARCHAR(128) NOT NULL,
		exhibition CHAR(1) NOT NULL,
		capacity   INT UNSIGNED NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_workshops_exhibition_title (exhibition, title)
	)`,
	`CREATE TABLE IF NOT EXISTS reservations (
		id          BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		attendee_id BIGINT UNSIGNED NOT NULL,
		workshop_id BIGINT UNSIGNED NOT NULL,
		created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY idx_reservations_attendee (attendee_id),
		CONSTRAINT fk_reservations_attendee FOREIGN KEY (attendee_id)
			REFERENCES attendees(id) ON DELETE CASCADE,
		CONSTRAINT fk_reservations_workshop FOREIGN KEY (workshop_id)
			REFERENCES workshops(id)
	)`,
	`CREATE TABLE IF NOT EXISTS sales_reports (
		report_date       DATE PRIMARY KEY,
		tickets_sold      INT UNSIGNED NOT NULL DEFAULT 0,
		total_sales_cents BIGINT UNSIGNED NOT NULL DEFAULT 0
	)`,
}

// seedWorkshops is the initial workshop catalog, inserted only when
// the workshops table is empty so operator edits survive restarts.
var seedWorkshops = []struct {
	Title      string
	Exhibition string
	Capacity   uint32
}{
	{"Solar Energy", "A", 10},
	{"Wind Power Basics", "A", 12},
	{"Hydrogen Futures", "B", 8},
	{"Urban Recycling", "B", 10},
	{"Carbon Capture", "C", 6},
	{"Ocean Cleanup", "C", 8},
}

// Migrate creates the schema and seeds the workshop catalog.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return seed(ctx, db)
}

func seed(ctx context.Context, db *sql.DB) error {
	var n int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM workshops").Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	for _, w := range seedWorkshops {
		if _, err := db.ExecContext(ctx,
			"INSERT INTO workshops (title, exhibition, capacity) VALUES (?,?,?)",
			w.Title, w.Exhibition, w.Capacity); err != nil {
			return err
		}
	}
	return nil
}
