package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/scanfield/internal/common"
	"github.com/Veraticus/scanfield/internal/config"
	"github.com/Veraticus/scanfield/internal/tui"
	"github.com/Veraticus/scanfield/internal/tui/themes"
	"github.com/spf13/cobra"
)

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the scan terminal",
		Long: `Open an interactive terminal with a scan field.

Type or scan into the field. Bursts that look like a barcode are converted
and listed; everything else is left as typed. Press Enter to clear the
field and Esc to quit.`,
		Args: cobra.NoArgs,
		RunE: runTerminal,
	}

	addScannerFlags(cmd)
	cmd.Flags().String("record", "", "write every edit to this trace file for later replay")
	cmd.Flags().String("theme", "", "color theme (default, catppuccin)")
	cmd.Flags().Bool("no-save", false, "do not save scans to the database")

	return cmd
}

func runTerminal(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// The terminal belongs to the TUI; logs go to a file instead
	closeLog, err := redirectLogs(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	themeName := cfg.Theme
	if name, _ := cmd.Flags().GetString("theme"); name != "" {
		themeName = name
	}
	theme, err := themes.ByName(themeName)
	if err != nil {
		return common.NewUserError("Unknown theme", err)
	}

	opts := []tui.Option{
		tui.WithTheme(theme),
		tui.WithScannerOptions(cfg.ScannerOptions()...),
	}

	if noSave, _ := cmd.Flags().GetBool("no-save"); !noSave {
		store, storeErr := initStorage(cmd.Context(), cfg.StoragePath)
		if storeErr != nil {
			return fmt.Errorf("failed to open scan database: %w", storeErr)
		}
		defer func() {
			if closeErr := store.Close(); closeErr != nil {
				slog.Warn("Failed to close scan database", "error", closeErr)
			}
		}()
		opts = append(opts, tui.WithStorage(store))
	}

	if path, _ := cmd.Flags().GetString("record"); path != "" {
		recorder, recErr := tui.NewRecorder(config.ExpandPath(path))
		if recErr != nil {
			return recErr
		}
		defer func() {
			if closeErr := recorder.Close(); closeErr != nil {
				slog.Error("Trace is incomplete", "error", closeErr)
				return
			}
			slog.Info("Trace recorded", "path", path, "steps", recorder.Steps())
		}()
		opts = append(opts, tui.WithTracer(recorder))
	}

	slog.Info("Starting scan terminal",
		"field", cfg.FieldName,
		"barcode_length", cfg.BarcodeLength,
		"input_delay", cfg.InputDelay)

	return tui.Run(cmd.Context(), opts...)
}

// redirectLogs sends logging to the configured log file, or discards it when
// none is set.
func redirectLogs(cfg config.Config) (func(), error) {
	level, err := common.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	if cfg.LogFile == "" {
		if err := common.SetupLoggerTo(io.Discard, level, cfg.LogFormat); err != nil {
			return nil, err
		}
		return func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(filepath.Clean(cfg.LogFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600) // #nosec G304 -- configured log path
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	if err := common.SetupLoggerTo(file, level, cfg.LogFormat); err != nil {
		_ = file.Close()
		return nil, err
	}

	return func() {
		// Logs after this point go back to stderr
		_ = common.SetupLogger(level, cfg.LogFormat)
		_ = file.Close()
	}, nil
}
