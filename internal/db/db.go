package db

import (
	"context"
	"fmt"
	"log/slog"

	_ "github.com/glebarez/go-sqlite"
	"github.com/jmoiron/sqlx"
)

const snapshotSchema = `
CREATE TABLE IF NOT EXISTS snapshots (
	id TEXT PRIMARY KEY,
	mode TEXT NOT NULL,
	ai TEXT NOT NULL,
	current_player TEXT NOT NULL,
	taken_at TEXT NOT NULL,
	payload TEXT NOT NULL
);`

// Connect opens the SQLite database at dsn. Use ":memory:" for a throwaway database.
func Connect(ctx context.Context, dsn string) (*sqlx.DB, error) {
	pool, err := sqlx.ConnectContext(ctx, "sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared across queries.
	pool.SetMaxOpenConns(1)
	return pool, nil
}

// InitializeDB creates the snapshot archive table if it doesn't exist.
func InitializeDB(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, snapshotSchema); err != nil {
		return fmt.Errorf("failed to create snapshots table: %w", err)
	}

	slog.InfoContext(ctx, "DB connection initialized and schema verified.")
	return nil
}
