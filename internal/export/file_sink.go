package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DirSink writes each snapshot to its own file in a directory.
type DirSink struct {
	dir string
}

// NewDirSink creates a DirSink rooted at dir.
func NewDirSink(dir string) *DirSink {
	return &DirSink{dir: dir}
}

func (s *DirSink) Name() string { return "dir" }

// Path returns the file a snapshot with the given id is written to.
func (s *DirSink) Path(id string) string {
	return filepath.Join(s.dir, "tic-tac-toe-board-"+id+".json")
}

func (s *DirSink) Save(ctx context.Context, id string, _ Snapshot, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	if err := os.WriteFile(s.Path(id), payload, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}
