// Package config loads the game's YAML configuration and builds its logger.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Garsondee/ricochet-arena/internal/arena"
)

// EnvPath names the environment variable consulted when no path is given.
const EnvPath = "ARENA_CONFIG"

var (
	ErrInvalid     = errors.New("config: invalid value")
	ErrUnknownLog  = errors.New("config: unknown log level")
	ErrUnknownForm = errors.New("config: unknown log format")
)

type Window struct {
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	Title   string `yaml:"title"`
	ShowFPS bool   `yaml:"show_fps"`
	Scale   int    `yaml:"hud_scale"`
}

type Log struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

type Config struct {
	Window Window       `yaml:"window"`
	Arena  arena.Tuning `yaml:"arena"`
	Log    Log          `yaml:"log"`
}

// Default returns the built-in configuration. The window starts at the arena's
// size; frontends scale their full layout into it.
func Default() Config {
	t := arena.DefaultTuning()
	return Config{
		Window: Window{
			Width:   int(2 * t.ArenaHalfWidth),
			Height:  int(2 * t.ArenaHalfHeight),
			Title:   "Ricochet Arena",
			ShowFPS: true,
			Scale:   1,
		},
		Arena: t,
		Log:   Log{Level: "info", Format: "text"},
	}
}

// Load reads path and overlays it on Default. An empty path falls back to
// $ARENA_CONFIG; with neither set the defaults are returned as is.
func Load(path string) (Config, error) {
	if path == "" {
		path = os.Getenv(EnvPath)
	}
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data, cfg)
}

// Parse overlays YAML data on base and validates the result.
func Parse(data []byte, base Config) (Config, error) {
	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the simulation cannot run with.
func (c Config) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%w: %s must be positive, got %v", ErrInvalid, name, v))
		}
	}
	positive("window.width", float64(c.Window.Width))
	positive("window.height", float64(c.Window.Height))
	positive("window.hud_scale", float64(c.Window.Scale))

	a := c.Arena
	positive("arena.arena_half_width", a.ArenaHalfWidth)
	positive("arena.arena_half_height", a.ArenaHalfHeight)
	positive("arena.player_speed", a.PlayerSpeed)
	positive("arena.player_bullet_limit", float64(a.PlayerBulletLimit))
	positive("arena.enemy_bullet_limit", float64(a.EnemyBulletLimit))
	positive("arena.bullet_speed", a.BulletSpeed)
	positive("arena.ricochet_limit", float64(a.RicochetLimit))
	positive("arena.terminal_duration", a.TerminalDuration.Seconds())
	positive("arena.player_half", a.PlayerHalf)
	positive("arena.enemy_half", a.EnemyHalf)
	positive("arena.wall_half", a.WallHalf)
	positive("arena.bullet_half", a.BulletHalf)

	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownForm, c.Log.Format))
	}
	return errors.Join(errs...)
}

// ParseLevel maps a level name to its slog level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownLog, s)
	}
	return l, nil
}

// NewLogger builds a slog logger writing to w per the Log section.
func NewLogger(w io.Writer, l Log) (*slog.Logger, error) {
	level, err := ParseLevel(l.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(l.Format) {
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "text", "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownForm, l.Format)
	}
}
