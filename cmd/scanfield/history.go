package main

import (
	"fmt"
	"slices"

	"github.com/Veraticus/scanfield/internal/cli"
	"github.com/spf13/cobra"
)

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved scans",
		Args:  cobra.NoArgs,
		RunE:  runHistory,
	}

	cmd.Flags().IntP("limit", "n", 20, "number of recent scans to show")
	cmd.Flags().String("db", "", "scan database path (default from config)")

	return cmd
}

func runHistory(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("limit")

	ctx := cmd.Context()
	store, err := initStorage(ctx, cfg.StoragePath)
	if err != nil {
		return fmt.Errorf("failed to open scan database: %w", err)
	}
	defer func() { _ = store.Close() }()

	scans, err := store.RecentScans(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to load scans: %w", err)
	}
	total, err := store.CountScans(ctx)
	if err != nil {
		return fmt.Errorf("failed to count scans: %w", err)
	}

	slices.Reverse(scans)

	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintln(out, cli.FormatTitle("Scan history")); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(out, cli.RenderScans(scans)); err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, cli.SubtleStyle.Render(fmt.Sprintf("\nShowing %d of %d scans", len(scans), total)))
	return err
}
