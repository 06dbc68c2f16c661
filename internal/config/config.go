// Package config loads and validates scanfield settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Veraticus/scanfield/internal/common"
	"github.com/Veraticus/scanfield/internal/scanner"
	"github.com/spf13/viper"
)

// Keys used in the config file, flags and SCANFIELD_ environment variables.
const (
	KeyBarcodeLength = "scanner.barcode_length"
	KeyInputDelay    = "scanner.input_delay"
	KeyFieldName     = "scanner.field_name"
	KeyStoragePath   = "storage.path"
	KeyLogLevel      = "logging.level"
	KeyLogFormat     = "logging.format"
	KeyLogFile       = "logging.file"
	KeyTheme         = "ui.theme"
)

// Config holds the application settings.
type Config struct {
	FieldName     string
	StoragePath   string
	LogLevel      string
	LogFormat     string
	LogFile       string
	Theme         string
	InputDelay    time.Duration
	BarcodeLength int
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		BarcodeLength: scanner.DefaultBarcodeLength,
		InputDelay:    scanner.DefaultInputDelay,
		FieldName:     "barcode",
		StoragePath:   "~/.config/scanfield/scans.db",
		LogLevel:      "info",
		LogFormat:     "console",
		LogFile:       "~/.config/scanfield/scanfield.log",
		Theme:         "default",
	}
}

// SetDefaults registers Default() on v so unset keys resolve.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault(KeyBarcodeLength, d.BarcodeLength)
	v.SetDefault(KeyInputDelay, d.InputDelay.Milliseconds())
	v.SetDefault(KeyFieldName, d.FieldName)
	v.SetDefault(KeyStoragePath, d.StoragePath)
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyLogFormat, d.LogFormat)
	v.SetDefault(KeyLogFile, d.LogFile)
	v.SetDefault(KeyTheme, d.Theme)
}

// Load reads settings from v, falling back to Default for unset keys, and
// validates them. The input delay is configured in milliseconds.
func Load(v *viper.Viper) (Config, error) {
	cfg := Default()

	if v.IsSet(KeyBarcodeLength) {
		cfg.BarcodeLength = v.GetInt(KeyBarcodeLength)
	}
	if v.IsSet(KeyInputDelay) {
		cfg.InputDelay = time.Duration(v.GetInt64(KeyInputDelay)) * time.Millisecond
	}
	if s := v.GetString(KeyFieldName); s != "" {
		cfg.FieldName = s
	}
	if s := v.GetString(KeyStoragePath); s != "" {
		cfg.StoragePath = s
	}
	if s := v.GetString(KeyLogLevel); s != "" {
		cfg.LogLevel = s
	}
	if s := v.GetString(KeyLogFormat); s != "" {
		cfg.LogFormat = s
	}
	if s := v.GetString(KeyTheme); s != "" {
		cfg.Theme = s
	}
	if v.IsSet(KeyLogFile) {
		cfg.LogFile = v.GetString(KeyLogFile)
	}

	cfg.StoragePath = ExpandPath(cfg.StoragePath)
	cfg.LogFile = ExpandPath(cfg.LogFile)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects settings the scanner cannot work with.
func (c Config) Validate() error {
	if c.BarcodeLength <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %d", common.ErrInvalidConfig, KeyBarcodeLength, c.BarcodeLength)
	}
	if c.InputDelay < 0 {
		return fmt.Errorf("%w: %s cannot be negative, got %dms", common.ErrInvalidConfig, KeyInputDelay, c.InputDelay.Milliseconds())
	}
	if strings.TrimSpace(c.StoragePath) == "" {
		return fmt.Errorf("%w: %s", common.ErrMissingConfig, KeyStoragePath)
	}
	if _, err := common.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("%w: invalid log format: %s", common.ErrInvalidConfig, c.LogFormat)
	}
	return nil
}

// ScannerOptions converts the settings into field options.
func (c Config) ScannerOptions() []scanner.Option {
	return []scanner.Option{
		scanner.WithName(c.FieldName),
		scanner.WithBarcodeLength(c.BarcodeLength),
		scanner.WithInputDelay(c.InputDelay),
	}
}

// ExpandPath expands a leading ~ and environment variables in path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}

	return os.ExpandEnv(path)
}
