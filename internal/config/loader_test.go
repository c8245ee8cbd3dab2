package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockfall/internal/engine"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blockfall.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestEmbeddedDefaultsMatchDefault(t *testing.T) {
	cfg, err := parse(DefaultYAML())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadCustomPath(t *testing.T) {
	path := writeConfig(t, `
timing:
  line_clear_ms: 300
sprint:
  lines: 20
controls:
  hard_drop: x
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 300, cfg.Timing.LineClearMS)
	assert.Equal(t, 200, cfg.Timing.HardDropMS, "unset fields keep defaults")
	assert.Equal(t, 20, cfg.Sprint.Lines)
	assert.Equal(t, "x", cfg.Controls.HardDrop)
	assert.Equal(t, "left", cfg.Controls.MoveLeft)
}

func TestLoadCustomPathErrors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{"missing file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.yaml") }},
		{"bad yaml", func(t *testing.T) string { return writeConfig(t, "timing: [") }},
		{"invalid values", func(t *testing.T) string { return writeConfig(t, "sprint:\n  lines: 0\n") }},
		{"duplicate key", func(t *testing.T) string { return writeConfig(t, "controls:\n  hold_piece: left\n") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(tt.path(t))
			require.Error(t, err)
			assert.Equal(t, Default(), cfg, "failed load should still return defaults")
		})
	}
}

func TestLoadFallsBackToLocalConfigs(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(dir)

	require.NoError(t, os.MkdirAll("configs", 0o755))
	require.NoError(t, os.WriteFile(filepath.Join("configs", fileName), []byte("preview:\n  queue_size: 5\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Preview.QueueSize)
}

func TestLoadEmbeddedWhenNothingFound(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Timing.AnimationWatchdogMS = 100
	cfg.Preview.QueueSize = 9

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "animation_watchdog_ms")
	assert.Contains(t, err.Error(), "queue_size")
}

func TestWithBinding(t *testing.T) {
	s := WithBinding(engine.DefaultSettings(), "rotate_left", "q")
	assert.Equal(t, "q", s.RotateLeft)
	assert.Equal(t, engine.DefaultSettings(), WithBinding(engine.DefaultSettings(), "bogus", "q"))

	for _, b := range Bindings(s) {
		assert.NotEmpty(t, b.Key, b.Name)
	}
	assert.NoError(t, ValidateControls(s))
}
