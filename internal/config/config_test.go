package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	conf, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

	require.NoError(t, err)
	assert.Equal(t, "info", conf.LogLevel)
	assert.Equal(t, ":8080", conf.HTTPAddr)
	assert.Equal(t, "pvp", conf.Game.Mode)
	assert.Equal(t, "optimal", conf.Game.Difficulty)
	assert.Equal(t, 150*time.Millisecond, conf.Game.ComputerDelay)
	assert.Empty(t, conf.Export.RedisAddr)
	assert.Empty(t, conf.Telemetry.OTLPEndpoint)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := `
log-level: debug
http-addr: ":9090"
game:
  mode: pve
  difficulty: random
  computer-delay: 10ms
export:
  dir: /tmp/exports
  sqlite-path: ./snapshots.db
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	conf, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "debug", conf.LogLevel)
	assert.Equal(t, ":9090", conf.HTTPAddr)
	assert.Equal(t, "pve", conf.Game.Mode)
	assert.Equal(t, "random", conf.Game.Difficulty)
	assert.Equal(t, 10*time.Millisecond, conf.Game.ComputerDelay)
	assert.Equal(t, "/tmp/exports", conf.Export.Dir)
	assert.Equal(t, "./snapshots.db", conf.Export.SQLitePath)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("GAME_MODE", "pve")
	t.Setenv("EXPORT_REDIS_ADDR", "localhost:6379")

	conf, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, "pve", conf.Game.Mode)
	assert.Equal(t, "localhost:6379", conf.Export.RedisAddr)
}

func TestLoad_InvalidMode(t *testing.T) {
	t.Setenv("GAME_MODE", "online")

	_, err := Load("")

	assert.ErrorContains(t, err, "invalid game mode")
}

func TestMustLoad_Panics(t *testing.T) {
	t.Setenv("GAME_DIFFICULTY", "hard")

	assert.Panics(t, func() { MustLoad("") })
}
