// Package styles holds the terminal palette shared by the CLI and the TUI.
package styles

import "github.com/charmbracelet/lipgloss"

// Palette
const (
	Foreground = "#FCFCFA"
	Red        = "#FF6188"
	Orange     = "#FC9867"
	Yellow     = "#FFD866"
	Green      = "#A9DC76"
	Cyan       = "#78DCE8"
	Comment    = "#727072"
)

func fg(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

var (
	// SuccessStyle marks converted files and a clean summary
	SuccessStyle = fg(Green)
	ErrorStyle   = fg(Red)
	// WarningStyle marks pending sources and skipped work
	WarningStyle = fg(Orange)
	DimStyle     = fg(Comment)
	HelpStyle    = fg(Comment)
	TextStyle    = fg(Foreground)
	// PathStyle renders source and output paths
	PathStyle    = fg(Cyan)
	TitleStyle   = fg(Red).Bold(true)
	SpinnerStyle = fg(Yellow)
)
