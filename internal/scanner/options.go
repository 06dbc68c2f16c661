package scanner

import (
	"fmt"
	"time"

	"github.com/Veraticus/scanfield/internal/common"
)

const (
	// DefaultBarcodeLength is the number of characters in a scan.
	DefaultBarcodeLength = 8
	// DefaultInputDelay is the longest time a scanner may take between the
	// first and the last character of a scan.
	DefaultInputDelay = 50 * time.Millisecond
)

type settings struct {
	now           func() time.Time
	name          string
	barcodeLength int
	inputDelay    time.Duration
}

// Option configures a Classifier or a Field.
type Option func(*settings)

func defaultSettings() settings {
	return settings{
		now:           time.Now,
		name:          "barcode",
		barcodeLength: DefaultBarcodeLength,
		inputDelay:    DefaultInputDelay,
	}
}

func applyOptions(opts []Option) (settings, error) {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	if err := validateBarcodeLength(s.barcodeLength); err != nil {
		return s, err
	}
	if err := validateInputDelay(s.inputDelay); err != nil {
		return s, err
	}
	if s.now == nil {
		return s, fmt.Errorf("%w: clock cannot be nil", common.ErrInvalidConfig)
	}
	return s, nil
}

// WithBarcodeLength sets the expected scan length.
func WithBarcodeLength(n int) Option {
	return func(s *settings) {
		s.barcodeLength = n
	}
}

// WithInputDelay sets the timing window between the first and last character.
func WithInputDelay(d time.Duration) Option {
	return func(s *settings) {
		s.inputDelay = d
	}
}

// WithClock replaces time.Now, mainly for tests and trace replay.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		s.now = now
	}
}

// WithName labels the field in logs and events.
func WithName(name string) Option {
	return func(s *settings) {
		s.name = name
	}
}

func validateBarcodeLength(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: barcode length must be positive, got %d", common.ErrInvalidConfig, n)
	}
	return nil
}

func validateInputDelay(d time.Duration) error {
	if d < 0 {
		return fmt.Errorf("%w: input delay cannot be negative, got %s", common.ErrInvalidConfig, d)
	}
	return nil
}
