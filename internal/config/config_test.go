package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height)
	assert.Equal(t, 4*time.Second, cfg.Arena.TerminalDuration)
	assert.Equal(t, 5, cfg.Arena.PlayerBulletLimit)
}

func TestParse_OverlaysDefaults(t *testing.T) {
	data := []byte(`
window:
  title: Test Arena
  show_fps: false
arena:
  bullet_speed: 300
  terminal_duration: 2s
log:
  level: debug
  format: json
`)
	cfg, err := Parse(data, Default())
	require.NoError(t, err)

	assert.Equal(t, "Test Arena", cfg.Window.Title)
	assert.False(t, cfg.Window.ShowFPS)
	assert.Equal(t, 1280, cfg.Window.Width, "unset fields keep defaults")
	assert.Equal(t, 300.0, cfg.Arena.BulletSpeed)
	assert.Equal(t, 2*time.Second, cfg.Arena.TerminalDuration)
	assert.Equal(t, 100.0, cfg.Arena.PlayerSpeed)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestParse_RejectsInvalid(t *testing.T) {
	_, err := Parse([]byte("arena:\n  ricochet_limit: 0\n  bullet_speed: -1\n"), Default())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "ricochet_limit")
	assert.Contains(t, err.Error(), "bullet_speed")
}

func TestParse_RejectsUnknownLogSettings(t *testing.T) {
	_, err := Parse([]byte("log:\n  level: loud\n"), Default())
	assert.ErrorIs(t, err, ErrUnknownLog)

	_, err = Parse([]byte("log:\n  format: xml\n"), Default())
	assert.ErrorIs(t, err, ErrUnknownForm)
}

func TestParse_MalformedYAML(t *testing.T) {
	_, err := Parse([]byte("window: [1, 2"), Default())
	require.Error(t, err)
}

func TestLoad_FromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "arena.yaml")
	require.NoError(t, os.WriteFile(path, []byte("window:\n  width: 800\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Window.Width)

	t.Setenv(EnvPath, path)
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Window.Width)
}

func TestLoad_NoPathUsesDefaults(t *testing.T) {
	t.Setenv(EnvPath, "")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewLogger(&buf, Log{Level: "warn", Format: "json"})
	require.NoError(t, err)

	l.Info("hidden")
	l.Warn("shown", "k", 1)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
}
