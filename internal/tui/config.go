package tui

import (
	"github.com/Veraticus/scanfield/internal/scanner"
	"github.com/Veraticus/scanfield/internal/service"
	"github.com/Veraticus/scanfield/internal/tui/components"
	"github.com/Veraticus/scanfield/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme       themes.Theme
	Storage     service.ScanStore
	Tracer      components.Tracer
	Scanner     []scanner.Option
	Width       int
	Height      int
	HistorySize int
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:       themes.Default,
		Width:       80,
		Height:      24,
		HistorySize: 10,
	}
}

// WithStorage sets where detected scans are saved.
func WithStorage(storage service.ScanStore) Option {
	return func(c *Config) {
		c.Storage = storage
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithScannerOptions configures the scan field.
func WithScannerOptions(opts ...scanner.Option) Option {
	return func(c *Config) {
		c.Scanner = append(c.Scanner, opts...)
	}
}

// WithTracer records every edit of the scan field.
func WithTracer(tracer components.Tracer) Option {
	return func(c *Config) {
		c.Tracer = tracer
	}
}

// WithHistorySize sets how many recent scans are shown.
func WithHistorySize(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.HistorySize = n
		}
	}
}
