// Package config loads the softwin demo configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// WindowConfig describes the demo window.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	VSync  bool   `yaml:"vsync"`
}

// Config is the demo configuration.
type Config struct {
	Window WindowConfig `yaml:"window"`

	// Backend names a registered presentation backend. Empty selects the
	// highest priority one.
	Backend string `yaml:"backend"`

	// Frames bounds the run. Zero runs until the window is closed, or
	// DefaultHeadlessFrames for headless backends.
	Frames int `yaml:"frames"`

	// OutDir is where the file backend writes frames.
	OutDir string `yaml:"out_dir"`

	// ShmPath is the file the shm backend maps.
	ShmPath string `yaml:"shm_path"`

	SymmetricClamp bool   `yaml:"symmetric_clamp"`
	LogLevel       string `yaml:"log_level"`

	// HistorySize is how many frames the summary is computed over.
	HistorySize int `yaml:"history_size"`
}

// DefaultHeadlessFrames is the frame count of headless runs without an
// explicit bound.
const DefaultHeadlessFrames = 120

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "softwin demo",
			Width:  800,
			Height: 600,
			VSync:  true,
		},
		OutDir:      "frames",
		ShmPath:     "softwin.shm",
		LogLevel:    "info",
		HistorySize: 240,
	}
}

// Load reads a YAML file over the defaults and validates the result.
// Unknown keys are an error. An empty file yields the defaults.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode reads YAML from r over the defaults and validates the result.
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width < 1 || c.Window.Width > math.MaxUint16 {
		errs = append(errs, fmt.Errorf("window.width %d out of range [1, %d]", c.Window.Width, math.MaxUint16))
	}
	if c.Window.Height < 1 || c.Window.Height > math.MaxUint16 {
		errs = append(errs, fmt.Errorf("window.height %d out of range [1, %d]", c.Window.Height, math.MaxUint16))
	}
	if c.Frames < 0 {
		errs = append(errs, fmt.Errorf("frames %d is negative", c.Frames))
	}
	if c.HistorySize < 1 {
		errs = append(errs, fmt.Errorf("history_size %d must be at least 1", c.HistorySize))
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Level returns the configured log level. Invalid levels fall back to Info;
// Validate reports them.
func (c *Config) Level() slog.Level {
	l, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return l
}

func parseLevel(s string) (slog.Level, error) {
	if s == "" {
		return slog.LevelInfo, nil
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}
