// Package config loads and persists the viewer settings file.
//
// Settings live in a TOML file next to the executable, named after it.
// Every failure mode degrades to the built-in defaults so a broken
// settings file can never keep the viewer from starting.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// DisplayMode selects how a freshly opened image is scaled.
type DisplayMode string

const (
	// DisplayFit scales the image to fill the window.
	DisplayFit DisplayMode = "fit"
	// DisplayOriginal shows the image at 100%.
	DisplayOriginal DisplayMode = "original"
)

// Defaults applied when a setting is absent or unusable.
const (
	DefaultWheelZoomFactor   = 0.001
	DefaultWindowWidth       = 800
	DefaultWindowHeight      = 600
	DefaultSlideshowInterval = 3

	// minWindowDim matches the live resize limit enforced on the window.
	minWindowDim = 200
)

// Config holds the viewer settings.
type Config struct {
	InitialDisplayMode       DisplayMode `toml:"initial_display_mode"`
	EnableDebugLog           bool        `toml:"enable_debug_log"`
	WheelZoomFactor          float64     `toml:"wheel_zoom_factor"`
	WindowWidth              int         `toml:"window_width"`
	WindowHeight             int         `toml:"window_height"`
	SlideshowIntervalSeconds int         `toml:"slideshow_interval_seconds"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		InitialDisplayMode:       DisplayFit,
		EnableDebugLog:           false,
		WheelZoomFactor:          DefaultWheelZoomFactor,
		WindowWidth:              DefaultWindowWidth,
		WindowHeight:             DefaultWindowHeight,
		SlideshowIntervalSeconds: DefaultSlideshowInterval,
	}
}

// SlideshowInterval returns the slideshow period as a duration.
func (c Config) SlideshowInterval() time.Duration {
	return time.Duration(c.SlideshowIntervalSeconds) * time.Second
}

// DefaultPath derives the settings path from the running binary: the
// executable path with its extension swapped for ".toml".
func DefaultPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locating executable: %w", err)
	}
	return strings.TrimSuffix(exe, filepath.Ext(exe)) + ".toml", nil
}

// Load reads the settings at path. The returned Config is always
// usable: a missing file yields the defaults (and writes a commented
// template for the user to edit), a bad file yields the defaults
// alongside the error, and out-of-range values are corrected
// field by field with a warning each.
func Load(path string) (Config, []string, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if werr := Save(path, cfg); werr != nil {
				return cfg, []string{fmt.Sprintf("could not write default settings: %v", werr)}, nil
			}
			return cfg, nil, nil
		}
		return cfg, nil, fmt.Errorf("reading settings %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), nil, fmt.Errorf("parsing settings %s: %w", path, err)
	}
	return cfg, cfg.normalize(), nil
}

func (c *Config) normalize() []string {
	var warnings []string
	switch c.InitialDisplayMode {
	case DisplayFit, DisplayOriginal:
	default:
		warnings = append(warnings, fmt.Sprintf("unknown initial_display_mode %q, using %q", c.InitialDisplayMode, DisplayFit))
		c.InitialDisplayMode = DisplayFit
	}
	if c.WheelZoomFactor <= 0 {
		warnings = append(warnings, fmt.Sprintf("wheel_zoom_factor %g is not positive, using %g", c.WheelZoomFactor, DefaultWheelZoomFactor))
		c.WheelZoomFactor = DefaultWheelZoomFactor
	}
	if c.WindowWidth < minWindowDim || c.WindowHeight < minWindowDim {
		warnings = append(warnings, fmt.Sprintf("window size %dx%d is too small, using %dx%d", c.WindowWidth, c.WindowHeight, DefaultWindowWidth, DefaultWindowHeight))
		c.WindowWidth = DefaultWindowWidth
		c.WindowHeight = DefaultWindowHeight
	}
	if c.SlideshowIntervalSeconds < 1 {
		warnings = append(warnings, fmt.Sprintf("slideshow_interval_seconds %d is too short, using %d", c.SlideshowIntervalSeconds, DefaultSlideshowInterval))
		c.SlideshowIntervalSeconds = DefaultSlideshowInterval
	}
	return warnings
}

// Save writes cfg to path as a commented TOML file.
func Save(path string, cfg Config) error {
	if err := os.WriteFile(path, []byte(Template(cfg)), 0o644); err != nil {
		return fmt.Errorf("writing settings %s: %w", path, err)
	}
	return nil
}

// Template renders cfg as the commented settings file written on first
// run.
func Template(cfg Config) string {
	return fmt.Sprintf(`# MSBT-yuina settings.
# This file is read once at startup.

# How a freshly opened image is scaled: "fit" or "original".
initial_display_mode = %q

# Write debug-level entries to the log file.
enable_debug_log = %t

# Zoom speed per mouse wheel unit.
wheel_zoom_factor = %g

# Window size in pixels at startup.
window_width = %d
window_height = %d

# Seconds each image stays up while the slideshow runs.
slideshow_interval_seconds = %d
`,
		string(cfg.InitialDisplayMode),
		cfg.EnableDebugLog,
		cfg.WheelZoomFactor,
		cfg.WindowWidth,
		cfg.WindowHeight,
		cfg.SlideshowIntervalSeconds,
	)
}
