package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// schema is applied in order by EnsureSchema. Every statement is idempotent.
// The exclusion constraint rejects two reservations of one destination whose
// closed date ranges share a day.
var schema = []string{
	`CREATE EXTENSION IF NOT EXISTS btree_gist`,
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGSERIAL PRIMARY KEY,
		name          TEXT        NOT NULL,
		username      TEXT        NOT NULL UNIQUE,
		password_hash TEXT        NOT NULL,
		role          TEXT        NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS destinations (
		id          BIGSERIAL PRIMARY KEY,
		title       TEXT             NOT NULL,
		location    TEXT             NOT NULL,
		description TEXT             NOT NULL DEFAULT '',
		price       DOUBLE PRECISION NOT NULL CHECK (price >= 0),
		discount    INTEGER          NOT NULL DEFAULT 0 CHECK (discount BETWEEN 0 AND 100)
	)`,
	`CREATE TABLE IF NOT EXISTS reservations (
		id             BIGSERIAL PRIMARY KEY,
		user_id        BIGINT           NOT NULL REFERENCES users (id),
		destination_id BIGINT           NOT NULL REFERENCES destinations (id),
		check_in_date  DATE             NOT NULL,
		check_out_date DATE             NOT NULL,
		total_price    DOUBLE PRECISION NOT NULL DEFAULT 0,
		created_at     TIMESTAMPTZ      NOT NULL DEFAULT now(),
		CHECK (check_in_date <= check_out_date),
		CONSTRAINT reservations_no_overlap EXCLUDE USING gist (
			destination_id WITH =,
			daterange(check_in_date, check_out_date, '[]') WITH &&
		)
	)`,
	`CREATE INDEX IF NOT EXISTS reservations_dates_idx ON reservations (check_in_date, check_out_date)`,
}

// EnsureSchema creates the tables, constraints and indexes.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i+1, err)
		}
	}
	return nil
}
