// Package config loads the board settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"PollockBoard/internal/input"
	"PollockBoard/internal/logging"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds every setting the board reads at startup. Zero values are
// never used directly; start from Default.
type Config struct {
	// Seed fixes the random source. Zero picks a fresh one per run.
	Seed uint64 `toml:"seed"`

	Canvas   Canvas   `toml:"canvas"`
	Sequence Sequence `toml:"sequence"`
	Frames   Frames   `toml:"frames"`
	Input    Input    `toml:"input"`
	Feed     Feed     `toml:"feed"`
	Log      Log      `toml:"log"`
}

type Canvas struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

type Sequence struct {
	Delay time.Duration `toml:"delay"`
}

type Frames struct {
	FPS int `toml:"fps"`
}

type Input struct {
	Brush string `toml:"brush"`
}

// Feed configures the remote command feed.
type Feed struct {
	Enabled   bool   `toml:"enabled"`
	Addr      string `toml:"addr"`
	Advertise bool   `toml:"advertise"`
}

type Log struct {
	Level string `toml:"level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Canvas:   Canvas{Width: 1024, Height: 768},
		Sequence: Sequence{Delay: input.DefaultDelay},
		Frames:   Frames{FPS: 60},
		Input:    Input{Brush: string(input.BrushEffect)},
		Feed:     Feed{Addr: ":8765", Advertise: true},
		Log:      Log{Level: "info"},
	}
}

// Load reads path over the defaults. Keys the file sets that Config does not
// know are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := checkUndecoded(md); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML text over the defaults.
func Parse(text string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(text, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := checkUndecoded(md); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func checkUndecoded(md toml.MetaData) error {
	und := md.Undecoded()
	if len(und) == 0 {
		return nil
	}
	keys := make([]string, len(und))
	for i, k := range und {
		keys[i] = k.String()
	}
	return fmt.Errorf("%w: unknown keys %s", ErrInvalid, strings.Join(keys, ", "))
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	switch {
	case c.Canvas.Width <= 0 || c.Canvas.Height <= 0:
		return fmt.Errorf("%w: canvas size %dx%d", ErrInvalid, c.Canvas.Width, c.Canvas.Height)
	case c.Sequence.Delay <= 0:
		return fmt.Errorf("%w: sequence delay %s", ErrInvalid, c.Sequence.Delay)
	case c.Frames.FPS <= 0 || c.Frames.FPS > 240:
		return fmt.Errorf("%w: fps %d", ErrInvalid, c.Frames.FPS)
	case c.Feed.Enabled && c.Feed.Addr == "":
		return fmt.Errorf("%w: feed enabled without an address", ErrInvalid)
	}
	if _, err := input.ParseBrush(c.Input.Brush); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}
