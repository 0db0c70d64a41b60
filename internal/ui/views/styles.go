package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"logscout/internal/domain"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Dim           lipgloss.Style
	Label         lipgloss.Style
	LabelFocused  lipgloss.Style
	Results       lipgloss.Style
	ResultsActive lipgloss.Style
	InfoBox       lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Scroll        lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusLoading lipgloss.Style
	StatusSuccess lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Dim:          lipgloss.NewStyle().Faint(true),
		Label:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		LabelFocused: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		Results: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")),
		ResultsActive: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")),
		InfoBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(1).
			BorderForeground(lipgloss.Color("241")),
		Help: lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(0, 1),
		Scroll:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
	}
}

// LevelColor returns the colour used for a record's level
func LevelColor(level string) string {
	switch strings.ToLower(level) {
	case "error", "fatal", "panic":
		return "203" // red
	case "warn", "warning":
		return "214" // yellow
	case "info":
		return "78" // green
	case "debug", "trace":
		return "33" // blue
	default:
		return "252"
	}
}

// LevelStyle returns the style for a record
func LevelStyle(r domain.Record) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(LevelColor(r.Level())))
}
