// Package model holds the records shared between the UI, storage and CLI.
package model

import "time"

// ScanSource indicates where a completed scan came from.
type ScanSource string

const (
	// SourceTerminal indicates a scan captured by the interactive field.
	SourceTerminal ScanSource = "TERMINAL"
	// SourceReplay indicates a scan detected while replaying a keystroke trace.
	SourceReplay ScanSource = "REPLAY"
)

// Scan is one completed barcode scan.
type Scan struct {
	ScannedAt time.Time
	ID        string
	Field     string // Name of the field that captured it
	Value     string // Converted text
	Source    ScanSource
}

// Valid reports whether the source is known.
func (s ScanSource) Valid() bool {
	switch s {
	case SourceTerminal, SourceReplay:
		return true
	default:
		return false
	}
}
