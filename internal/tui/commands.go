package tui

import (
	"context"
	"time"

	"github.com/Veraticus/scanfield/internal/model"
	tea "github.com/charmbracelet/bubbletea"
)

const storageTimeout = 5 * time.Second

// loadHistory loads the most recent scans from storage.
func (m Model) loadHistory() tea.Cmd {
	store, limit := m.storage, m.config.HistorySize
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
		defer cancel()

		scans, err := store.RecentScans(ctx, limit)
		return historyLoadedMsg{scans: scans, err: err}
	}
}

// saveScan persists a detected scan.
func (m Model) saveScan(scan model.Scan) tea.Cmd {
	store := m.storage
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
		defer cancel()

		saved, err := store.SaveScan(ctx, scan)
		if err != nil {
			return scanSavedMsg{scan: scan, err: err}
		}
		return scanSavedMsg{scan: saved}
	}
}
