package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/Veraticus/scanfield/internal/model"
	"github.com/google/uuid"
)

// SaveScan stores scan, assigning an ID when it has none. It returns the
// stored record.
func (s *SQLiteStorage) SaveScan(ctx context.Context, scan model.Scan) (model.Scan, error) {
	if err := validateContext(ctx); err != nil {
		return model.Scan{}, err
	}
	if err := validateScan(&scan); err != nil {
		return model.Scan{}, err
	}
	if scan.ID == "" {
		scan.ID = uuid.NewString()
	}
	scan.ScannedAt = scan.ScannedAt.UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO scans (id, field, value, scanned_at, source)
		VALUES (?, ?, ?, ?, ?)`,
		scan.ID, scan.Field, scan.Value, scan.ScannedAt, string(scan.Source))
	if err != nil {
		return model.Scan{}, fmt.Errorf("failed to save scan: %w", err)
	}
	return scan, nil
}

// RecentScans returns up to limit scans, newest first.
func (s *SQLiteStorage) RecentScans(ctx context.Context, limit int) ([]model.Scan, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, limit)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, field, value, scanned_at, source
		FROM scans
		ORDER BY scanned_at DESC, rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query scans: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var scans []model.Scan
	for rows.Next() {
		var (
			scan      model.Scan
			source    string
			scannedAt time.Time
		)
		if err := rows.Scan(&scan.ID, &scan.Field, &scan.Value, &scannedAt, &source); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		scan.ScannedAt = scannedAt
		scan.Source = model.ScanSource(source)
		scans = append(scans, scan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate scans: %w", err)
	}
	return scans, nil
}

// CountScans returns how many scans are stored.
func (s *SQLiteStorage) CountScans(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM scans`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count scans: %w", err)
	}
	return n, nil
}
