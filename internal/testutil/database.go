// Package testutil provides test helpers for code that needs a real scan
// database.
package testutil

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/scanfield/internal/model"
	"github.com/Veraticus/scanfield/internal/storage"
)

// TestDB is a migrated database in a temporary directory.
type TestDB struct {
	Storage *storage.SQLiteStorage
	t       *testing.T
	Path    string
}

// SetupTestDB creates a migrated database that is closed when the test ends.
// The file lives in t.TempDir, so commands can open it by Path.
//
// Example:
//
//	db := testutil.SetupTestDB(t)
//	db.SeedScans("12345678", "87654321")
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "scans.db")
	store, err := storage.NewSQLiteStorage(path)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close test database: %v", err)
		}
	})

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return &TestDB{Storage: store, t: t, Path: path}
}

// SeedScans saves one terminal scan per value, a second apart in the given
// order, and returns them as stored.
func (db *TestDB) SeedScans(values ...string) []model.Scan {
	db.t.Helper()

	start := time.Now().Add(-time.Duration(len(values)) * time.Second)
	scans := make([]model.Scan, 0, len(values))
	for i, value := range values {
		saved, err := db.Storage.SaveScan(context.Background(), model.Scan{
			ScannedAt: start.Add(time.Duration(i) * time.Second),
			Field:     "barcode",
			Value:     value,
			Source:    model.SourceTerminal,
		})
		if err != nil {
			db.t.Fatalf("failed to seed scan %q: %v", value, err)
		}
		scans = append(scans, saved)
	}
	return scans
}

// Count returns the number of stored scans.
func (db *TestDB) Count() int {
	db.t.Helper()

	n, err := db.Storage.CountScans(context.Background())
	if err != nil {
		db.t.Fatalf("failed to count scans: %v", err)
	}
	return n
}
