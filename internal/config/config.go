// Package config holds the user settings of the terp editor and player.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"

	"github.com/rectalogic/terp/internal/state"
)

// DefaultPath is where the config is looked up when no path is given.
const DefaultPath = "~/.config/terp/config.toml"

// Duration is a time.Duration written as "2.5s" in TOML.
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

type Brush struct {
	// hex "#rrggbb"
	Color  string  `toml:"color"`
	Radius float32 `toml:"radius"`
}

type Animation struct {
	// one leg of the ping-pong, source to target
	Period Duration `toml:"period"`
}

type Window struct {
	Width  float32 `toml:"width"`
	Height float32 `toml:"height"`
}

type Share struct {
	Port    int    `toml:"port"`
	Service string `toml:"service"`
}

// Config is the whole settings file.
type Config struct {
	SourceBrush Brush     `toml:"source_brush"`
	TargetBrush Brush     `toml:"target_brush"`
	Animation   Animation `toml:"animation"`
	Editor      Window    `toml:"editor"`
	Player      Window    `toml:"player"`
	Share       Share     `toml:"share"`
}

// Default returns the built in settings.
func Default() Config {
	return Config{
		SourceBrush: Brush{Color: "#3f7fff", Radius: 20},
		TargetBrush: Brush{Color: "#ffffff", Radius: 5},
		Animation:   Animation{Period: Duration{2500 * time.Millisecond}},
		Editor:      Window{Width: 1200, Height: 600},
		Player:      Window{Width: 600, Height: 600},
		Share:       Share{Port: 8888, Service: "_terp._tcp"},
	}
}

// Appearance converts b to a stroke brush.
func (b Brush) Appearance() (state.Appearance, error) {
	c, err := state.ColorFromHex(b.Color)
	if err != nil {
		return state.Appearance{}, fmt.Errorf("brush color %q: %w", b.Color, err)
	}
	return state.Appearance{Color: c, Radius: b.Radius}, nil
}

// Validate reports settings that cannot be used.
func (c Config) Validate() error {
	var errs []error
	for name, b := range map[string]Brush{"source_brush": c.SourceBrush, "target_brush": c.TargetBrush} {
		if _, err := b.Appearance(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
		if b.Radius <= 0 {
			errs = append(errs, fmt.Errorf("%s: radius must be positive", name))
		}
	}
	if c.Animation.Period.Duration <= 0 {
		errs = append(errs, errors.New("animation: period must be positive"))
	}
	if c.Share.Port <= 0 || c.Share.Port > 65535 {
		errs = append(errs, fmt.Errorf("share: invalid port %d", c.Share.Port))
	}
	return errors.Join(errs...)
}

// Load reads the config at path over the defaults. A missing file yields
// the defaults. An empty path means DefaultPath.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath
	}
	path, err := homedir.Expand(path)
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes c to path, creating parent directories.
func (c Config) Save(path string) error {
	path, err := homedir.Expand(path)
	if err != nil {
		return err
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
