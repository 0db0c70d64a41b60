package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
	dim    lipgloss.Style
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
		dim:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// RenderPopupOverlay renders a popup centred on top of the main content.
// The main content is greyed out and stays visible left and right of the box.
func (pr *PopupRenderer) RenderPopupOverlay(mainContent, popupContent string, height, width int, popupStyle lipgloss.Style) string {
	styledPopup := popupStyle.Render(popupContent)

	popupLines := strings.Split(styledPopup, "\n")
	modalW := lipgloss.Width(styledPopup)
	if width > 6 && modalW > width-6 {
		modalW = width - 6
	}
	if height > 4 && len(popupLines) > height-4 {
		popupLines = popupLines[:height-4]
	}
	x := (width - modalW) / 2
	y := (height - len(popupLines)) / 2
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}

	base := strings.Split(ansi.Strip(mainContent), "\n")
	for len(base) < y+len(popupLines) {
		base = append(base, "")
	}

	out := make([]string, len(base))
	for i, line := range base {
		row := i - y
		if row < 0 || row >= len(popupLines) {
			out[i] = pr.dim.Render(line)
			continue
		}
		left := ansi.Truncate(line, x, "")
		if pad := x - ansi.StringWidth(left); pad > 0 {
			left += strings.Repeat(" ", pad)
		}
		box := ansi.Truncate(popupLines[row], modalW, "")
		right := ansi.TruncateLeft(line, x+modalW, "")
		out[i] = pr.dim.Render(left) + box + pr.dim.Render(right)
	}
	return strings.Join(out, "\n")
}
