package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// FieldView is one form field ready for rendering
type FieldView struct {
	Label   string
	Input   string // rendered textinput
	Focused bool
}

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width            int
	Height           int
	Query            FieldView
	Filters          []FieldView
	ResultsFocused   bool
	ResultsView      string // rendered viewport
	ResultCount      int
	ScrollPercent    float64
	Pending          bool
	Spinner          string
	Page             int
	Phase            string
	LastError        string
	StatusMessage    string
	ShowHelp         bool
	ShowFooter       bool // key hints on the last line
	HelpScrollOffset int
	HelpModel        help.Model
	HelpKeys         help.KeyMap
}

const (
	titleLines      = 1
	queryLines      = 1
	filterRows      = 4
	statusLines     = 1
	footerLines     = 1
	resultsBorder   = 2
	labelWidth      = 20
	formColumns     = 2
	emptyLoading    = "Loading..."
	emptyNoRecords  = "No Records Found"
	minResultsLines = 3
)

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	records     *RecordRenderer
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		records:     NewRecordRenderer(styles),
		popupRender: NewPopupRenderer(styles),
	}
}

// Records returns the record line renderer
func (r *Renderer) Records() *RecordRenderer {
	return r.records
}

// ResultsSize returns the inner size of the results pane for a terminal
func ResultsSize(width, height int) (int, int) {
	w := width - 2 - resultsBorder // main padding and border
	h := height - titleLines - queryLines - filterRows - statusLines - footerLines - resultsBorder
	if w < 10 {
		w = 10
	}
	if h < minResultsLines {
		h = minResultsLines
	}
	return w, h
}

// FieldWidth returns the input width for form fields
func FieldWidth(width int, filter bool) int {
	inner := width - 2
	if !filter {
		return max(1, inner-labelWidth-1)
	}
	return max(1, inner/formColumns-labelWidth-2)
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	width := state.Width
	if width <= 0 {
		width = 80
	}
	height := state.Height
	if height <= 0 {
		height = 24
	}

	content := &strings.Builder{}
	content.WriteString(r.renderTitle(state, width))
	content.WriteString("\n")
	content.WriteString(r.renderField(state.Query))
	content.WriteString("\n")
	content.WriteString(r.renderFilters(state.Filters, width))
	content.WriteString("\n")
	content.WriteString(r.renderResults(state, width, height))
	content.WriteString("\n")
	content.WriteString(r.renderStatus(state))

	// Pad so the help footer sits on the last line
	if !state.ShowHelp {
		footer := 0
		if state.ShowFooter {
			footer = footerLines
		}
		currentLines := strings.Count(content.String(), "\n") + 1
		if pad := height - currentLines - footer; pad > 0 {
			content.WriteString(strings.Repeat("\n", pad))
		}
		if state.ShowFooter {
			content.WriteString("\n")
			content.WriteString(r.renderFooter(state))
		}
	}

	mainStyle := r.styles.Main.MaxHeight(height)
	finalContent := mainStyle.Render(content.String())

	if state.ShowHelp {
		helpContent := r.renderHelpContent(height, state.HelpScrollOffset)
		return r.popupRender.RenderPopupOverlay(finalContent, helpContent, height, width, r.styles.InfoBox)
	}

	return finalContent
}

func (r *Renderer) renderTitle(state ViewState, width int) string {
	logo := r.styles.Title.Render("logscout")

	var indicators []string
	if state.Pending {
		indicators = append(indicators, r.styles.StatusWarning.Render(fmt.Sprintf("%s Fetching page %d", state.Spinner, state.Page)))
	}
	if state.ResultCount > 0 {
		indicators = append(indicators, r.styles.Dim.Render(fmt.Sprintf("%d records", state.ResultCount)))
	}
	if state.Phase != "" {
		indicators = append(indicators, r.styles.Dim.Render(state.Phase))
	}
	if len(indicators) == 0 {
		return logo
	}

	rightContent := strings.Join(indicators, r.styles.Dim.Render(" | "))
	availableWidth := width - 2
	paddingWidth := availableWidth - lipgloss.Width(logo) - lipgloss.Width(rightContent)
	if paddingWidth > 0 {
		return logo + strings.Repeat(" ", paddingWidth) + rightContent
	}
	return logo + "  " + rightContent
}

func (r *Renderer) renderField(f FieldView) string {
	labelStyle := r.styles.Label
	if f.Focused {
		labelStyle = r.styles.LabelFocused
	}
	label := labelStyle.Width(labelWidth).Render(f.Label)
	return label + " " + f.Input
}

func (r *Renderer) renderFilters(fields []FieldView, width int) string {
	colWidth := (width - 2) / formColumns
	rows := make([]string, 0, filterRows)
	for row := 0; row < filterRows; row++ {
		var cols []string
		for col := 0; col < formColumns; col++ {
			i := col*filterRows + row
			if i >= len(fields) {
				continue
			}
			cell := lipgloss.NewStyle().Width(colWidth).MaxWidth(colWidth).Render(r.renderField(fields[i]))
			cols = append(cols, cell)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cols...))
	}
	return strings.Join(rows, "\n")
}

func (r *Renderer) renderResults(state ViewState, width, height int) string {
	innerW, innerH := ResultsSize(width, height)
	box := r.styles.Results
	if state.ResultsFocused {
		box = r.styles.ResultsActive
	}

	body := state.ResultsView
	if state.ResultCount == 0 {
		msg := emptyNoRecords
		if state.Pending {
			msg = emptyLoading
		}
		body = lipgloss.Place(innerW, innerH, lipgloss.Center, lipgloss.Center, r.styles.Dim.Render(msg))
	}
	return box.Width(innerW).Height(innerH).Render(body)
}

func (r *Renderer) renderStatus(state ViewState) string {
	switch {
	case state.LastError != "":
		return r.styles.StatusError.Render("✗ " + state.LastError)
	case state.StatusMessage != "":
		return r.styles.StatusLoading.Render(state.StatusMessage)
	case state.Phase == "exhausted" && state.ResultCount > 0:
		return r.styles.StatusSuccess.Render(fmt.Sprintf("✓ all %d records loaded", state.ResultCount))
	case state.ResultCount > 0:
		return r.styles.Scroll.Render(fmt.Sprintf("%3.f%%  scroll for more", state.ScrollPercent*100))
	default:
		return ""
	}
}

func (r *Renderer) renderFooter(state ViewState) string {
	if state.HelpKeys == nil {
		return r.styles.Help.Render("Press ? for help")
	}
	return state.HelpModel.View(state.HelpKeys)
}
