package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberline/server/internal/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "server.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func Test_Load_Overlays_Defaults(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
[server]
name = "testserver"

[sim]
tick_rate = 100000000
width = 64
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "testserver", cfg.Server.Name)
	assert.Equal(t, 100*time.Millisecond, cfg.Sim.TickRate)
	assert.Equal(t, int32(64), cfg.Sim.Width)

	// Untouched keys keep their defaults.
	assert.Equal(t, 1, cfg.Server.ID)
	assert.Equal(t, int32(128), cfg.Sim.Height)
	assert.Equal(t, "data/archetypes.yaml", cfg.Sim.ArchetypeFile)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func Test_Load_Empty_File_Is_All_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, "emberline", cfg.Server.Name)
	assert.Equal(t, 200*time.Millisecond, cfg.Sim.TickRate)
	assert.Equal(t, int64(0), cfg.Sim.Seed)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func Test_Load_Missing_File(t *testing.T) {
	t.Parallel()

	_, err := config.Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func Test_Load_Malformed_Toml(t *testing.T) {
	t.Parallel()

	_, err := config.Load(writeConfig(t, "[server\nname ="))
	assert.Error(t, err)
}
