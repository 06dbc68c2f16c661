package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/scanfield/internal/cli"
	"github.com/Veraticus/scanfield/internal/common"
	"github.com/Veraticus/scanfield/internal/replay"
	"github.com/spf13/cobra"
)

func replayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay <trace>",
		Short: "Replay a recorded keystroke trace",
		Long: `Feed a trace recorded with 'scanfield run --record' through a scan field
with a virtual clock and list the scans it detects.

Use the scanner flags to try other barcode lengths or timing windows against
the same keystrokes. Pass - to read the trace from stdin.`,
		Example: `  scanfield replay session.jsonl
  scanfield replay --input-delay 80 session.jsonl
  scanfield replay --save session.jsonl`,
		Args: cobra.ExactArgs(1),
		RunE: runReplay,
	}

	addScannerFlags(cmd)
	cmd.Flags().Bool("save", false, "save detected scans to the database")
	cmd.Flags().Bool("quiet", false, "do not show progress")

	return cmd
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	steps, err := readTrace(cmd, args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	handler := cli.NewInterruptHandler(cmd.ErrOrStderr())
	ctx := handler.HandleInterrupts(cmd.Context())
	defer handler.Stop()

	opts := replay.Options{Scanner: cfg.ScannerOptions()}
	if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet && len(steps) > 0 {
		bar := cli.NewProgressBar(cmd.ErrOrStderr(), len(steps), "Replaying trace...")
		opts.Progress = cli.ProgressFunc(bar)
	}

	slog.Debug("Replaying trace",
		"trace", args[0],
		"steps", len(steps),
		"barcode_length", cfg.BarcodeLength,
		"input_delay", cfg.InputDelay)

	result, err := replay.Run(ctx, steps, opts)
	if err != nil {
		if handler.WasInterrupted() {
			return nil
		}
		return fmt.Errorf("replay failed: %w", err)
	}

	saved := 0
	if save, _ := cmd.Flags().GetBool("save"); save && len(result.Scans) > 0 {
		store, storeErr := initStorage(ctx, cfg.StoragePath)
		if storeErr != nil {
			return fmt.Errorf("failed to open scan database: %w", storeErr)
		}
		defer func() { _ = store.Close() }()

		for _, scan := range result.Scans {
			if _, err := store.SaveScan(ctx, scan); err != nil {
				if handler.WasInterrupted() {
					break
				}
				return fmt.Errorf("failed to save scan %s: %w", scan.Value, err)
			}
			saved++
			handler.SetNote(fmt.Sprintf("%d of %d scans saved", saved, len(result.Scans)))
		}
	}

	if _, err := fmt.Fprintln(out, cli.RenderScans(result.Scans)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(out, cli.RenderReplaySummary(result, saved)); err != nil {
		return err
	}
	return nil
}

// readTrace parses the trace at path, or stdin for "-".
func readTrace(cmd *cobra.Command, path string) ([]replay.Step, error) {
	var r io.Reader = cmd.InOrStdin()
	if path != "-" {
		file, err := os.Open(filepath.Clean(path)) // #nosec G304 -- user supplied trace path
		if err != nil {
			return nil, common.NewUserError("Cannot open trace", err)
		}
		defer func() { _ = file.Close() }()
		r = file
	}

	steps, err := replay.Parse(r)
	if err != nil {
		return nil, common.NewUserError("Cannot read trace", err)
	}
	return steps, nil
}
