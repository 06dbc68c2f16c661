package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/scanfield/internal/model"
	"github.com/Veraticus/scanfield/internal/replay"
	"github.com/charmbracelet/lipgloss"
)

// RenderScans renders scans as a table, oldest first.
func RenderScans(scans []model.Scan) string {
	if len(scans) == 0 {
		return SubtleStyle.Render("No scans.")
	}

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		TableHeaderStyle.Width(26).Render("Scanned at"),
		TableHeaderStyle.Width(12).Render("Field"),
		TableHeaderStyle.Width(10).Render("Source"),
		TableHeaderStyle.Render("Value"),
	)

	rows := make([]string, 0, len(scans)+1)
	rows = append(rows, header)
	for _, scan := range scans {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top,
			TableCellStyle.Width(26).Render(scan.ScannedAt.Local().Format(time.DateTime+".000")),
			TableCellStyle.Width(12).Render(scan.Field),
			TableCellStyle.Width(10).Render(strings.ToLower(string(scan.Source))),
			ValueStyle.Render(scan.Value),
		))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// RenderReplaySummary renders the box printed after a replay.
func RenderReplaySummary(result replay.Result, saved int) string {
	summary := fmt.Sprintf("  • Steps replayed: %d\n", result.Steps) +
		fmt.Sprintf("  • Trace span: %s\n", result.Span) +
		fmt.Sprintf("  • Scans detected: %d", len(result.Scans))
	if saved > 0 {
		summary += fmt.Sprintf("\n  • Scans saved: %d", saved)
	}
	return RenderBox("Replay Complete", summary)
}
