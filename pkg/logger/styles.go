package logger

import (
	"github.com/charmbracelet/lipgloss"
	charm "github.com/charmbracelet/log"
)

const (
	colorGray   = "#808080"
	colorBlue   = "#00A3E0"
	colorGreen  = "#2ECC71"
	colorOrange = "#F39C12"
	colorRed    = "#E74C3C"
	colorPurple = "#9B59B6"
)

func levelStyle(label, color string) lipgloss.Style {
	return lipgloss.NewStyle().
		SetString(label).
		Bold(true).
		Foreground(lipgloss.Color(color))
}

// getLogStyles returns the level labels and key highlights used by tfmatrix.
func getLogStyles() *charm.Styles {
	styles := charm.DefaultStyles()

	styles.Levels[TraceLevel] = levelStyle("TRCE", colorPurple)
	styles.Levels[DebugLevel] = levelStyle("DEBU", colorBlue)
	styles.Levels[InfoLevel] = levelStyle("INFO", colorGreen)
	styles.Levels[WarnLevel] = levelStyle("WARN", colorOrange)
	styles.Levels[ErrorLevel] = levelStyle("ERRO", colorRed)
	styles.Levels[charm.FatalLevel] = levelStyle("FATA", colorRed)

	styles.Keys["err"] = lipgloss.NewStyle().Foreground(lipgloss.Color(colorRed))
	styles.Values["err"] = lipgloss.NewStyle().Bold(true)
	styles.Keys["environment"] = lipgloss.NewStyle().Foreground(lipgloss.Color(colorBlue))
	styles.Keys["taxonomy_root"] = lipgloss.NewStyle().Foreground(lipgloss.Color(colorGray))

	return styles
}
