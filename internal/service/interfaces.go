// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/Veraticus/scanfield/internal/model"
)

// ScanStore is the part of storage the scan terminal needs.
type ScanStore interface {
	// SaveScan stores scan and returns it with its ID assigned.
	SaveScan(ctx context.Context, scan model.Scan) (model.Scan, error)
	// RecentScans returns up to limit scans, newest first.
	RecentScans(ctx context.Context, limit int) ([]model.Scan, error)
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	ScanStore

	CountScans(ctx context.Context) (int, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}
