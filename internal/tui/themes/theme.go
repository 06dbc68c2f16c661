// Package themes defines the visual styles of the scan terminal.
package themes

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the visual style for the TUI.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Code          lipgloss.Style
	ScanValue     lipgloss.Style
	BorderedBox   lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusError   lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusPending lipgloss.Style
	Primary       lipgloss.Color
	Muted         lipgloss.Color
	Border        lipgloss.Color
	Success       lipgloss.Color
	Error         lipgloss.Color
}

type palette struct {
	primary, success, errorColor, info, foreground, subtle, border, muted, codeBackground string
}

func newTheme(p palette) Theme {
	return Theme{
		Primary: lipgloss.Color(p.primary),
		Success: lipgloss.Color(p.success),
		Error:   lipgloss.Color(p.errorColor),
		Border:  lipgloss.Color(p.border),
		Muted:   lipgloss.Color(p.muted),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.foreground)).
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.subtle)),
		Normal: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.foreground)),
		Code: lipgloss.NewStyle().
			Background(lipgloss.Color(p.codeBackground)).
			Foreground(lipgloss.Color(p.foreground)).
			Padding(0, 1),
		ScanValue: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.primary)).
			Bold(true),
		BorderedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.border)).
			Padding(0, 1),

		StatusSuccess: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.success)).
			Bold(true),
		StatusError: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.errorColor)).
			Bold(true),
		StatusInfo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.info)).
			Bold(true),
		StatusPending: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.muted)).
			Italic(true),
	}
}

// Default is the default theme.
var Default = newTheme(palette{
	primary:        "#7c3aed",
	success:        "#10b981",
	errorColor:     "#ef4444",
	info:           "#3b82f6",
	foreground:     "#fafafa",
	subtle:         "#a3a3a3",
	border:         "#404040",
	muted:          "#737373",
	codeBackground: "#262626",
})

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = newTheme(palette{
	primary:        "#cba6f7",
	success:        "#a6e3a1",
	errorColor:     "#f38ba8",
	info:           "#89dceb",
	foreground:     "#cdd6f4",
	subtle:         "#a6adc8",
	border:         "#45475a",
	muted:          "#6c7086",
	codeBackground: "#313244",
})

// ByName returns a theme by its configuration name.
func ByName(name string) (Theme, error) {
	switch name {
	case "", "default":
		return Default, nil
	case "catppuccin", "catppuccin-mocha":
		return CatppuccinMocha, nil
	default:
		return Theme{}, fmt.Errorf("unknown theme %q", name)
	}
}
