package tui

import "github.com/Veraticus/scanfield/internal/model"

// Async operation messages.
type scanSavedMsg struct {
	err  error
	scan model.Scan
}

type historyLoadedMsg struct {
	err   error
	scans []model.Scan
}
