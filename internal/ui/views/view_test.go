package views

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"logscout/internal/domain"
)

func TestCompactAndPretty(t *testing.T) {
	r := domain.Record("{\n  \"level\": \"error\",\n  \"message\": \"boom\"\n}")
	assert.Equal(t, `{"level":"error","message":"boom"}`, Compact(r))
	assert.Contains(t, Pretty(r), "\n  \"message\": \"boom\"")
	assert.Equal(t, "null", Compact(nil))
}

func TestMalformedRecordIsSanitized(t *testing.T) {
	r := domain.Record("not json \x1b[2J\x1b]0;pwned\x07 line\nnext\r\x00")
	for _, out := range []string{Compact(r), Pretty(r)} {
		assert.NotContains(t, out, "\x1b")
		assert.NotContains(t, out, "\x07")
		assert.NotContains(t, out, "\r")
		assert.NotContains(t, out, "\x00")
		assert.NotContains(t, out, "pwned")
		assert.Contains(t, out, "not json")
		assert.Contains(t, out, "next")
	}
	assert.NotContains(t, Compact(r), "\n")
}

func TestRenderLineTruncates(t *testing.T) {
	rr := NewRecordRenderer(NewStyles())
	r := domain.Record(`{"level":"info","message":"` + strings.Repeat("x", 200) + `"}`)
	line := rr.RenderLine(r, 40)
	assert.LessOrEqual(t, ansi.StringWidth(line), 40)
	assert.True(t, strings.HasSuffix(ansi.Strip(line), "…"))
}

func TestLevelColor(t *testing.T) {
	assert.Equal(t, "203", LevelColor("ERROR"))
	assert.Equal(t, "214", LevelColor("warn"))
	assert.Equal(t, "252", LevelColor(""))
}

func TestPagerDocument(t *testing.T) {
	id := domain.NewIdentity("db", domain.Filters{domain.FilterLevel: "error"})
	doc := PagerDocument(id, []domain.Record{domain.Record(`{"a":1}`), domain.Record(`{"b":2}`)})
	assert.Contains(t, doc, "(2 records)")
	assert.Contains(t, doc, "--- 2 ---")
	assert.Contains(t, doc, `"b": 2`)
}

func baseState() ViewState {
	return ViewState{
		Width:  100,
		Height: 30,
		Query:  FieldView{Label: "Query", Input: "db", Focused: true},
		Filters: []FieldView{
			{Label: "Level"}, {Label: "Message"}, {Label: "Resource ID"}, {Label: "Timestamp"},
			{Label: "Trace ID"}, {Label: "Span ID"}, {Label: "Commit"}, {Label: "Parent Resource ID"},
		},
	}
}

func TestRenderEmptyStates(t *testing.T) {
	r := NewRenderer()

	s := baseState()
	out := r.Render(s)
	assert.Contains(t, out, "No Records Found")
	assert.NotContains(t, out, "Loading...")
	assert.Contains(t, out, "Parent Resource ID")

	s.Pending = true
	s.Page = 1
	out = r.Render(s)
	assert.Contains(t, out, "Loading...")
	assert.Contains(t, out, "Fetching page 1")
}

func TestRenderFitsHeight(t *testing.T) {
	r := NewRenderer()
	s := baseState()
	s.ResultCount = 3
	s.ResultsView = "a\nb\nc"
	s.Phase = "exhausted"
	out := r.Render(s)
	assert.Equal(t, s.Height, lipgloss.Height(out))
	assert.Contains(t, out, "all 3 records loaded")
}

func TestRenderError(t *testing.T) {
	r := NewRenderer()
	s := baseState()
	s.LastError = "transport error: unexpected status 502 Bad Gateway"
	assert.Contains(t, r.Render(s), "502 Bad Gateway")
}

func TestHelpPopupOverlay(t *testing.T) {
	r := NewRenderer()
	s := baseState()
	s.ShowHelp = true
	out := r.Render(s)
	assert.Contains(t, out, "logscout Help")
	// Base content stays visible around the popup
	assert.Contains(t, ansi.Strip(out), "logscout")
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, ansi.StringWidth(line), s.Width)
	}
}

func TestPopupOverlayPlacement(t *testing.T) {
	pr := NewPopupRenderer(NewStyles())
	base := strings.Repeat(strings.Repeat(".", 20)+"\n", 9) + strings.Repeat(".", 20)
	out := pr.RenderPopupOverlay(base, "XX", 10, 20, lipgloss.NewStyle())
	lines := strings.Split(ansi.Strip(out), "\n")
	assert.Len(t, lines, 10)
	assert.Equal(t, ".........XX.........", lines[4])
	assert.Equal(t, strings.Repeat(".", 20), lines[0])
}

func TestHelpScrollIndicators(t *testing.T) {
	r := NewRenderer()
	content := r.renderHelpContent(10, 2)
	assert.Contains(t, content, "more above")
	assert.Contains(t, content, "more below")
	assert.Greater(t, r.HelpLines(), 10)
}

type footerKeys struct{}

func (footerKeys) ShortHelp() []key.Binding {
	return []key.Binding{key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "submit"))}
}

func (k footerKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

func TestFooterFollowsShowFooter(t *testing.T) {
	r := NewRenderer()
	s := baseState()
	s.HelpModel = help.New()
	s.HelpKeys = footerKeys{}

	s.ShowFooter = true
	out := r.Render(s)
	assert.Contains(t, ansi.Strip(out), "ctrl+s")
	assert.Equal(t, s.Height, lipgloss.Height(out))

	s.ShowFooter = false
	out = r.Render(s)
	assert.NotContains(t, ansi.Strip(out), "ctrl+s")
	assert.Equal(t, s.Height, lipgloss.Height(out))
}
