package repository

import (
	"context"
	"ctchen222/Themed-Tic-Tac-Toe/internal/export"
	"errors"
)

// ErrSnapshotNotFound is returned when no archived snapshot has the given ID.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotRepository archives exported snapshots. It satisfies export.Sink.
type SnapshotRepository interface {
	Name() string
	Save(ctx context.Context, id string, snap export.Snapshot, payload []byte) error
	FindByID(ctx context.Context, id string) ([]byte, error)
	Recent(ctx context.Context, limit int) ([]string, error)
}

var (
	_ export.Sink = (SnapshotRepository)(nil)
)
