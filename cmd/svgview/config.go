package main

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"os"

	"github.com/benoitkugler/giosvg/svgdraw"
	"github.com/benoitkugler/giosvg/svgtree"
	"github.com/pelletier/go-toml/v2"
)

// Config holds the defaults read from the --config file.
// Command line flags take precedence.
type Config struct {
	Window struct {
		Width  int `toml:"width"`
		Height int `toml:"height"`
	} `toml:"window"`
	Background string `toml:"background"`
	ErrorMode  string `toml:"error_mode"`
	LogLevel   string `toml:"log_level"`

	background color.NRGBA
	errorMode  svgdraw.ErrorMode
	level      slog.Level
}

// DefaultConfig matches a window of 320x240 on a white background.
func DefaultConfig() Config {
	var cfg Config
	cfg.Window.Width, cfg.Window.Height = 320, 240
	cfg.Background = "white"
	cfg.ErrorMode = "warn"
	cfg.LogLevel = "info"
	return cfg
}

// ParseConfig reads a TOML document on top of the default values.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.resolve(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadConfig reads the file at path, or returns the default
// configuration if path is empty.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		cfg := DefaultConfig()
		err := cfg.resolve()
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return ParseConfig(data)
}

func (cfg *Config) resolve() (err error) {
	if cfg.Window.Width <= 0 || cfg.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	cfg.background, err = svgtree.ParseColor(cfg.Background)
	if err != nil {
		return fmt.Errorf("background: %w", err)
	}
	cfg.errorMode, err = svgtree.ParseErrorMode(cfg.ErrorMode)
	if err != nil {
		return err
	}
	if err := cfg.level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

// renderErr drops the unsupported node errors, already logged
// by the view, unless the strict mode is active.
func (cfg Config) renderErr(err error) error {
	if errors.Is(err, svgdraw.ErrUnsupported) && cfg.errorMode != svgdraw.StrictErrorMode {
		return nil
	}
	return err
}
