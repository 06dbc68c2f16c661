package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/scanfield/internal/common"
	"github.com/Veraticus/scanfield/internal/config"
	"github.com/Veraticus/scanfield/internal/service"
	"github.com/Veraticus/scanfield/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// addScannerFlags registers the flags that override the scanner settings.
func addScannerFlags(cmd *cobra.Command) {
	cmd.Flags().Int("barcode-length", 0, "characters in a barcode (default from config, 8)")
	cmd.Flags().Int("input-delay", 0, "maximum milliseconds from the first to the last character (default from config, 50)")
	cmd.Flags().String("name", "", "name reported with each scan (default from config, barcode)")
	cmd.Flags().String("db", "", "scan database path (default from config)")
}

// loadConfig loads the settings and applies the flags the user set.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return cfg, common.NewUserError("Invalid configuration", err)
	}

	flags := cmd.Flags()
	if flags.Changed("barcode-length") {
		cfg.BarcodeLength, _ = flags.GetInt("barcode-length")
	}
	if flags.Changed("input-delay") {
		ms, _ := flags.GetInt("input-delay")
		cfg.InputDelay = time.Duration(ms) * time.Millisecond
	}
	if flags.Changed("name") {
		cfg.FieldName, _ = flags.GetString("name")
	}
	if flags.Changed("db") {
		path, _ := flags.GetString("db")
		cfg.StoragePath = config.ExpandPath(path)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, common.NewUserError("Invalid flags", err)
	}
	return cfg, nil
}

// initStorage opens the scan database and brings its schema up to date.
func initStorage(ctx context.Context, dbPath string) (service.Storage, error) {
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, unreadable(dbPath, err)
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, unreadable(dbPath, fmt.Errorf("failed to run migrations: %w", err))
	}

	return store, nil
}

func unreadable(dbPath string, err error) error {
	if errors.Is(err, common.ErrDatabaseCorrupted) {
		return common.NewUserError(fmt.Sprintf("Scan database %s is not readable", dbPath), err)
	}
	return err
}
