package service

import (
	"context"
	"ctchen222/Themed-Tic-Tac-Toe/internal/bot"
	"ctchen222/Themed-Tic-Tac-Toe/internal/export"
	"ctchen222/Themed-Tic-Tac-Toe/internal/session"
	"ctchen222/Themed-Tic-Tac-Toe/pkg/proto"
	"errors"
	"fmt"
	"log/slog"
)

//go:generate mockgen -destination=mocks/mock_game_service.go -package=mocks . GameService

var (
	// ErrInvalidArgument wraps user input the game cannot act on.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrArchiveDisabled is returned by archive lookups when no readable store is configured.
	ErrArchiveDisabled = errors.New("snapshot archive is not configured")
)

// GameService defines the interface for the game's business logic.
type GameService interface {
	State(ctx context.Context) (proto.GameView, error)
	Move(ctx context.Context, index int) (proto.GameView, bool, error)
	Undo(ctx context.Context) (proto.GameView, bool, error)
	Reset(ctx context.Context) (proto.GameView, error)
	SetMode(ctx context.Context, mode string) (proto.GameView, error)
	SetDifficulty(ctx context.Context, difficulty string) (proto.GameView, error)
	Export(ctx context.Context) (ExportResult, error)
	FindSnapshot(ctx context.Context, id string) ([]byte, error)
	RecentSnapshots(ctx context.Context, limit int) ([]string, error)
}

// ExportResult is an encoded snapshot ready for download.
type ExportResult struct {
	Payload    []byte
	SnapshotID string
}

// Session is the part of session.Session the service drives.
type Session interface {
	State(ctx context.Context) (proto.GameView, error)
	Move(ctx context.Context, index int) (proto.GameView, bool, error)
	Undo(ctx context.Context) (proto.GameView, bool, error)
	Reset(ctx context.Context) (proto.GameView, error)
	SetMode(ctx context.Context, mode session.Mode) (proto.GameView, error)
	SetDifficulty(ctx context.Context, difficulty bot.Difficulty) (proto.GameView, error)
	Snapshot(ctx context.Context) (export.Snapshot, error)
}

// SnapshotReader reads back archived snapshots.
type SnapshotReader interface {
	FindByID(ctx context.Context, id string) ([]byte, error)
	Recent(ctx context.Context, limit int) ([]string, error)
}

type gameService struct {
	session  Session
	archiver *export.Archiver
	reader   SnapshotReader
}

// NewGameService creates a new GameService. archiver and reader may be nil.
func NewGameService(s Session, archiver *export.Archiver, reader SnapshotReader) GameService {
	if archiver == nil {
		archiver = export.NewArchiver()
	}
	return &gameService{session: s, archiver: archiver, reader: reader}
}

func (s *gameService) State(ctx context.Context) (proto.GameView, error) {
	return s.session.State(ctx)
}

func (s *gameService) Move(ctx context.Context, index int) (proto.GameView, bool, error) {
	return s.session.Move(ctx, index)
}

func (s *gameService) Undo(ctx context.Context) (proto.GameView, bool, error) {
	return s.session.Undo(ctx)
}

func (s *gameService) Reset(ctx context.Context) (proto.GameView, error) {
	return s.session.Reset(ctx)
}

// SetMode handles switching between pvp and pve.
func (s *gameService) SetMode(ctx context.Context, mode string) (proto.GameView, error) {
	m, err := session.ParseMode(mode)
	if err != nil {
		return proto.GameView{}, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return s.session.SetMode(ctx, m)
}

// SetDifficulty handles switching the computer strategy.
func (s *gameService) SetDifficulty(ctx context.Context, difficulty string) (proto.GameView, error) {
	d, err := bot.ParseDifficulty(difficulty)
	if err != nil {
		return proto.GameView{}, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return s.session.SetDifficulty(ctx, d)
}

// Export encodes the current snapshot for download and archives it when
// sinks are configured. Archive failures are logged, the download still succeeds.
func (s *gameService) Export(ctx context.Context) (ExportResult, error) {
	snap, err := s.session.Snapshot(ctx)
	if err != nil {
		return ExportResult{}, err
	}
	payload, err := export.Encode(snap)
	if err != nil {
		return ExportResult{}, err
	}

	res := ExportResult{Payload: payload}
	if !s.archiver.Enabled() {
		return res, nil
	}
	id, err := s.archiver.Archive(ctx, snap)
	if err != nil {
		slog.WarnContext(ctx, "snapshot exported but not fully archived", "snapshot.id", id, "error", err)
	}
	res.SnapshotID = id
	return res, nil
}

func (s *gameService) FindSnapshot(ctx context.Context, id string) ([]byte, error) {
	if s.reader == nil {
		return nil, ErrArchiveDisabled
	}
	return s.reader.FindByID(ctx, id)
}

func (s *gameService) RecentSnapshots(ctx context.Context, limit int) ([]string, error) {
	if s.reader == nil {
		return nil, ErrArchiveDisabled
	}
	return s.reader.Recent(ctx, limit)
}
