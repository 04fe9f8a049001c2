package main

import (
	"context"
	"ctchen222/Themed-Tic-Tac-Toe/internal/config"
	"errors"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingCloser struct {
	closed int
	err    error
}

func (c *recordingCloser) Close() error {
	c.closed++
	return c.err
}

func TestCloseAll(t *testing.T) {
	a, b := &recordingCloser{err: errors.New("already closed")}, &recordingCloser{}

	closeAll([]io.Closer{a, b})

	assert.Equal(t, 1, a.closed)
	assert.Equal(t, 1, b.closed, "a failing closer must not stop the rest")
}

func TestBuildArchive(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	t.Run("Nothing configured", func(t *testing.T) {
		sinks, reader, closers, err := buildArchive(ctx, config.Export{})
		require.NoError(t, err)
		assert.Empty(t, sinks)
		assert.Nil(t, reader)
		assert.Empty(t, closers)
	})

	t.Run("Directory and SQLite", func(t *testing.T) {
		dir := t.TempDir()
		sinks, reader, closers, err := buildArchive(ctx, config.Export{
			Dir:        filepath.Join(dir, "exports"),
			SQLitePath: filepath.Join(dir, "snapshots.db"),
		})
		require.NoError(t, err)
		defer closeAll(closers)

		require.Len(t, sinks, 2)
		assert.Equal(t, "sqlite", sinks[0].Name())
		assert.Equal(t, "dir", sinks[1].Name())
		assert.NotNil(t, reader)
		assert.Len(t, closers, 1)
	})

	t.Run("Failure after SQLite opened releases it", func(t *testing.T) {
		dir := t.TempDir()
		sinks, reader, closers, err := buildArchive(ctx, config.Export{
			SQLitePath: filepath.Join(dir, "snapshots.db"),
			RedisAddr:  "127.0.0.1:1",
		})
		require.Error(t, err)
		assert.Nil(t, sinks)
		assert.Nil(t, reader)
		assert.Nil(t, closers)
	})
}
