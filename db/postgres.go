package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"
)

var DB *sql.DB

func Connect(connStr string) error {
	if connStr == "" {
		slog.Warn("DATABASE_URL environment variable is not set")
	}

	var err error
	DB, err = sql.Open("postgres", connStr)
	if err != nil {
		return err
	}

	DB.SetMaxOpenConns(25)
	DB.SetMaxIdleConns(25)
	DB.SetConnMaxLifetime(5 * time.Minute)

	return DB.Ping()
}

// Migrate creates the thread_summary table and its (hash, length) unique
// index if they do not exist yet.
func Migrate(ctx context.Context, conn *sql.DB) error {
	_, err := conn.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS thread_summary (
			id SERIAL PRIMARY KEY,
			hash VARCHAR(255) NOT NULL,
			length VARCHAR(50) NOT NULL,
			summary_text TEXT NOT NULL,
			last_update TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("create thread_summary: %w", err)
	}

	_, err = conn.ExecContext(ctx, `
		CREATE UNIQUE INDEX IF NOT EXISTS thread_summary_hash_length_idx
		ON thread_summary (hash, length)
	`)
	if err != nil {
		return fmt.Errorf("create thread_summary index: %w", err)
	}

	return nil
}

func Close() {
	if DB != nil {
		DB.Close()
	}
}
