package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS clients (
		id            BIGSERIAL PRIMARY KEY,
		name          TEXT NOT NULL,
		address       TEXT NOT NULL,
		workplace     TEXT,
		phone         TEXT NOT NULL,
		dni           TEXT NOT NULL UNIQUE,
		photo_path    TEXT,
		registered_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS loans (
		id            BIGSERIAL PRIMARY KEY,
		client_id     BIGINT NOT NULL REFERENCES clients(id),
		principal     DOUBLE PRECISION NOT NULL,
		factor        DOUBLE PRECISION NOT NULL,
		total_payable DOUBLE PRECISION NOT NULL,
		term_length   DOUBLE PRECISION NOT NULL,
		frequency     TEXT NOT NULL,
		installment   DOUBLE PRECISION NOT NULL,
		start_date    DATE NOT NULL,
		recharges     DOUBLE PRECISION NOT NULL DEFAULT 0,
		active        BOOLEAN NOT NULL DEFAULT TRUE,
		created_at    TIMESTAMPTZ NOT NULL,
		updated_at    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_loans_client_id ON loans(client_id)`,
	`CREATE TABLE IF NOT EXISTS payments (
		id      BIGSERIAL PRIMARY KEY,
		loan_id BIGINT NOT NULL REFERENCES loans(id),
		amount  DOUBLE PRECISION NOT NULL,
		paid_on DATE NOT NULL,
		note    TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_payments_loan_id ON payments(loan_id)`,
	`CREATE TABLE IF NOT EXISTS notes (
		id         BIGSERIAL PRIMARY KEY,
		client_id  BIGINT NOT NULL REFERENCES clients(id),
		text       TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS clients (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		name          TEXT NOT NULL,
		address       TEXT NOT NULL,
		workplace     TEXT,
		phone         TEXT NOT NULL,
		dni           TEXT NOT NULL UNIQUE,
		photo_path    TEXT,
		registered_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS loans (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		client_id     INTEGER NOT NULL REFERENCES clients(id),
		principal     REAL NOT NULL,
		factor        REAL NOT NULL,
		total_payable REAL NOT NULL,
		term_length   REAL NOT NULL,
		frequency     TEXT NOT NULL,
		installment   REAL NOT NULL,
		start_date    DATE NOT NULL,
		recharges     REAL NOT NULL DEFAULT 0,
		active        BOOLEAN NOT NULL DEFAULT 1,
		created_at    TIMESTAMP NOT NULL,
		updated_at    TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_loans_client_id ON loans(client_id)`,
	`CREATE TABLE IF NOT EXISTS payments (
		id      INTEGER PRIMARY KEY AUTOINCREMENT,
		loan_id INTEGER NOT NULL REFERENCES loans(id),
		amount  REAL NOT NULL,
		paid_on DATE NOT NULL,
		note    TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_payments_loan_id ON payments(loan_id)`,
	`CREATE TABLE IF NOT EXISTS notes (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		client_id  INTEGER NOT NULL REFERENCES clients(id),
		text       TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,
}

// Migrate creates the tables for the connected driver. It is idempotent.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	var statements []string
	switch db.DriverName() {
	case "postgres":
		statements = postgresSchema
	case "sqlite3":
		statements = sqliteSchema
	default:
		return fmt.Errorf("no schema for driver %q", db.DriverName())
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
