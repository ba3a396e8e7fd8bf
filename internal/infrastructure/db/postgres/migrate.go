package postgres

import (
	"context"
	"database/sql"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS user_ratings (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL,
		course_id BIGINT NOT NULL,
		rating INT NOT NULL,
		comment TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (user_id, course_id)
	)`,
	`CREATE TABLE IF NOT EXISTS recommendations (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL,
		course_id BIGINT NOT NULL,
		score DOUBLE PRECISION NOT NULL,
		reason TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_recommendations_user ON recommendations (user_id)`,
	`CREATE TABLE IF NOT EXISTS course_categories (
		id BIGSERIAL PRIMARY KEY,
		course_id BIGINT NOT NULL UNIQUE,
		category VARCHAR(255) NOT NULL,
		average_rating DOUBLE PRECISION NOT NULL DEFAULT 0,
		total_ratings INT NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_course_categories_category ON course_categories (category)`,
}

// Migrate bootstraps the schema at startup, mirroring what the service
// expects from its stores. Every statement is idempotent.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
