package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// clearStatusMsg clears the status bar message
type clearStatusMsg struct{}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return clearStatusMsg{} })
}
