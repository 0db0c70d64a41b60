package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type helpEntry struct {
	keys string
	desc string
}

type helpSection struct {
	title   string
	entries []helpEntry
}

var helpSections = []helpSection{
	{"Search form", []helpEntry{
		{"Tab/Shift+Tab", "Next/previous field (results pane sits after the last filter)"},
		{"Enter", "Search (query field) or submit (filter field)"},
		{"Ctrl+S", "Submit the query and filters"},
		{"Ctrl+K", "Clear the focused field"},
		{"Esc", "Move focus to the results"},
	}},
	{"Results", []helpEntry{
		{"↑/↓, j/k", "Scroll one line"},
		{"PgUp/PgDn", "Scroll one page"},
		{"Ctrl+U/D", "Scroll half a page"},
		{"gg/G", "Go to top/bottom"},
		{"/, i", "Edit the query"},
		{"Enter", "Submit again"},
		{"v", "Open records in the pager"},
	}},
	{"Other", []helpEntry{
		{"?", "Toggle this help"},
		{"H", "Open this help in the pager"},
		{"q, Ctrl+C", "Quit"},
	}},
}

func (r *Renderer) helpText() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220")).
		Width(15)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder
	help.WriteString(titleStyle.Render("logscout Help"))
	help.WriteString("\n")

	for i, section := range helpSections {
		help.WriteString(sectionStyle.Render(section.title))
		help.WriteString("\n")
		for j, e := range section.entries {
			fmt.Fprintf(&help, "  %s %s", keyStyle.Render(e.keys), descStyle.Render(e.desc))
			if i < len(helpSections)-1 || j < len(section.entries)-1 {
				help.WriteString("\n")
			}
		}
	}

	help.WriteString("\n")
	help.WriteString(lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")).
		Render("  More results load as you scroll near the end of the list"))
	return help.String()
}

// HelpDocument returns the full help text for the pager
func (r *Renderer) HelpDocument() string {
	return r.helpText()
}

// renderHelpContent renders the help information
func (r *Renderer) renderHelpContent(height int, scrollOffset int) string {
	lines := strings.Split(r.helpText(), "\n")
	totalLines := len(lines)

	// Calculate visible window (popup border and padding take four lines, the margin four more)
	visibleHeight := height - 8
	if visibleHeight < 5 {
		visibleHeight = 5
	}

	if totalLines > visibleHeight {
		maxOffset := totalLines - visibleHeight
		if scrollOffset > maxOffset {
			scrollOffset = maxOffset
		}
		if scrollOffset < 0 {
			scrollOffset = 0
		}

		endLine := scrollOffset + visibleHeight
		lines = lines[scrollOffset:endLine]

		if scrollOffset > 0 {
			lines[0] = r.styles.Scroll.Render("↑ (more above)")
		}
		if endLine < totalLines {
			lines[len(lines)-1] = r.styles.Scroll.Render("↓ (more below)")
		}
	}

	return strings.Join(lines, "\n")
}

// HelpLines returns the number of lines in the help text
func (r *Renderer) HelpLines() int {
	return strings.Count(r.helpText(), "\n") + 1
}
