package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/scanfield/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// View renders the scan terminal.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		m.theme.Title.Render("scanfield"),
		m.input.View(),
		"",
		m.renderHistory(),
		"",
		m.renderStatus(),
		m.help.View(m.keymap),
	)

	return lipgloss.NewStyle().
		Padding(1, 2).
		MaxWidth(m.width).
		Render(content)
}

// renderHistory renders the most recent scans, newest first.
func (m Model) renderHistory() string {
	muted := lipgloss.NewStyle().Foreground(m.theme.Muted)

	var b strings.Builder
	b.WriteString(m.theme.Subtitle.Render("Recent scans"))
	b.WriteString("\n")

	if len(m.history) == 0 {
		b.WriteString(muted.Render("No scans yet"))
		return b.String()
	}

	lines := make([]string, 0, len(m.history))
	for _, scan := range m.history {
		lines = append(lines, m.renderScan(scan))
	}
	b.WriteString(strings.Join(lines, "\n"))
	return b.String()
}

func (m Model) renderScan(scan model.Scan) string {
	muted := lipgloss.NewStyle().Foreground(m.theme.Muted)
	return fmt.Sprintf("%s  %s  %s",
		muted.Render(scan.ScannedAt.Local().Format("15:04:05")),
		m.theme.ScanValue.Render(scan.Value),
		muted.Render(strings.ToLower(string(scan.Source))),
	)
}

// renderStatus renders the status bar.
func (m Model) renderStatus() string {
	count := fmt.Sprintf("%d scanned this session", m.scanCount)

	var status string
	switch {
	case m.lastError != nil:
		status = m.theme.StatusError.Render("✗ " + m.lastError.Error())
	case m.status != "":
		status = m.theme.StatusSuccess.Render("✓ " + m.status)
	default:
		status = m.theme.StatusPending.Render("Waiting for scanner...")
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, status, "  ",
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render(count))
}
