package repository

import (
	"context"
	"ctchen222/Themed-Tic-Tac-Toe/internal/export"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type snapshotRow struct {
	ID            string `db:"id"`
	Mode          string `db:"mode"`
	AI            string `db:"ai"`
	CurrentPlayer string `db:"current_player"`
	TakenAt       string `db:"taken_at"`
	Payload       string `db:"payload"`
}

type sqliteSnapshotRepository struct {
	db *sqlx.DB
}

// NewSQLiteSnapshotRepository creates a SQLite-based SnapshotRepository.
// The schema is created by db.InitializeDB.
func NewSQLiteSnapshotRepository(db *sqlx.DB) SnapshotRepository {
	return &sqliteSnapshotRepository{db: db}
}

func (r *sqliteSnapshotRepository) Name() string { return "sqlite" }

// Save inserts one archived snapshot.
func (r *sqliteSnapshotRepository) Save(ctx context.Context, id string, snap export.Snapshot, payload []byte) error {
	ctx, span := tracer.Start(ctx, "SnapshotRepository.Save", trace.WithAttributes(
		attribute.String("snapshot.id", id),
		attribute.String("repository", "sqlite"),
	))
	defer span.End()

	row := snapshotRow{
		ID:            id,
		Mode:          snap.Mode,
		AI:            snap.AI,
		CurrentPlayer: string(snap.CurrentPlayer),
		TakenAt:       snap.Time,
		Payload:       string(payload),
	}
	query := `INSERT INTO snapshots (id, mode, ai, current_player, taken_at, payload)
		VALUES (:id, :mode, :ai, :current_player, :taken_at, :payload)`
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to save snapshot")
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// FindByID returns the encoded snapshot.
func (r *sqliteSnapshotRepository) FindByID(ctx context.Context, id string) ([]byte, error) {
	var payload string
	err := r.db.GetContext(ctx, &payload, `SELECT payload FROM snapshots WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot by id: %w", err)
	}
	return []byte(payload), nil
}

// Recent returns the IDs of the latest snapshots, newest first.
func (r *sqliteSnapshotRepository) Recent(ctx context.Context, limit int) ([]string, error) {
	ids := []string{}
	query := `SELECT id FROM snapshots ORDER BY taken_at DESC, rowid DESC LIMIT ?`
	if err := r.db.SelectContext(ctx, &ids, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return ids, nil
}
