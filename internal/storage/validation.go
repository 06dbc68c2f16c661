package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/scanfield/internal/model"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrInvalidScan  = errors.New("invalid scan")
	ErrInvalidLimit = errors.New("limit must be positive")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

func validateScan(scan *model.Scan) error {
	if scan.Value == "" {
		return fmt.Errorf("%w: value cannot be empty", ErrInvalidScan)
	}
	if strings.TrimSpace(scan.Field) == "" {
		return fmt.Errorf("%w: field cannot be empty", ErrInvalidScan)
	}
	if scan.ScannedAt.IsZero() {
		return fmt.Errorf("%w: scanned_at cannot be zero", ErrInvalidScan)
	}
	if !scan.Source.Valid() {
		return fmt.Errorf("%w: unknown source %q", ErrInvalidScan, scan.Source)
	}
	return nil
}
