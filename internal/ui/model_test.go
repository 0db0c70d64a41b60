package ui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logscout/internal/config"
	"logscout/internal/domain"
	"logscout/internal/query"
	"logscout/internal/search"
	"logscout/internal/search/searchtest"
	"logscout/internal/ui/commands"
	inputtypes "logscout/internal/ui/input/types"
)

type harness struct {
	t      *testing.T
	m      *Model
	fake   *searchtest.Server
	client *search.Client
}

func newHarness(t *testing.T, entries int) *harness {
	t.Helper()
	return newHarnessWithConfig(t, entries, config.DefaultConfig())
}

func newHarnessWithConfig(t *testing.T, entries int, cfg *config.Config) *harness {
	t.Helper()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	fake := searchtest.New(
		searchtest.WithEntries(searchtest.Generate(entries, 7, base)...),
		searchtest.WithNullForEmpty(false),
	)
	ts := httptest.NewServer(fake.Handler())
	t.Cleanup(ts.Close)

	client, err := search.NewClient(ts.URL)
	require.NoError(t, err)

	m := NewModel(context.Background(), cfg, client, nil, zerolog.Nop())
	m.Init()
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return &harness{t: t, m: m, fake: fake, client: client}
}

func (h *harness) key(msg tea.KeyMsg) tea.Cmd {
	_, cmd := h.m.Update(msg)
	return cmd
}

func (h *harness) typeText(s string) {
	for _, r := range s {
		h.key(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func (h *harness) runes(s string) tea.Cmd {
	return h.key(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

// resolve answers the outstanding request through the real client
func (h *harness) resolve() domain.FetchRequest {
	h.t.Helper()
	req, ok := h.m.Coordinator().InFlight()
	require.True(h.t, ok, "expected a request in flight")
	resp, err := h.client.Search(context.Background(), req)
	h.m.Update(commands.FetchResultMsg{Request: req, Response: resp, Err: err})
	return req
}

func (h *harness) inFlight() bool {
	_, ok := h.m.Coordinator().InFlight()
	return ok
}

func TestViewBeforeSize(t *testing.T) {
	m := NewModel(context.Background(), nil, nil, nil, zerolog.Nop())
	assert.Equal(t, "Loading...", m.View())
}

func TestEmptyQueryNeverFetches(t *testing.T) {
	h := newHarness(t, 10)
	h.key(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, h.inFlight())
	assert.Contains(t, h.m.View(), "No Records Found")
	assert.Empty(t, h.fake.Requests())
}

func TestEnterFetchesFirstPage(t *testing.T) {
	h := newHarness(t, 120)
	h.typeText("o")
	h.key(tea.KeyMsg{Type: tea.KeyEnter})

	require.True(t, h.inFlight())
	assert.Contains(t, h.m.View(), "Loading...")

	req := h.resolve()
	assert.Equal(t, 1, req.Page)
	assert.Equal(t, "o", req.Identity.Term)
	assert.Equal(t, domain.PageSize, h.m.query.Len())
	assert.Equal(t, 2, h.m.query.Page())
	assert.Contains(t, h.m.View(), "50 records")
}

func TestScrollLoadsUntilExhausted(t *testing.T) {
	h := newHarness(t, 200)
	h.key(tea.KeyMsg{Type: tea.KeyTab}) // level filter
	h.typeText("info")
	h.key(tea.KeyMsg{Type: tea.KeyCtrlS})

	want := 0
	for _, e := range searchtest.Generate(200, 7, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)) {
		if e.Level == "info" {
			want++
		}
	}
	require.Greater(t, want, domain.PageSize)

	h.resolve()
	h.key(tea.KeyMsg{Type: tea.KeyEsc})

	for i := 0; i < 10 && h.m.coordinator.Phase() != query.PhaseExhausted; i++ {
		h.runes("G")
		if h.inFlight() {
			h.resolve()
		}
	}

	assert.Equal(t, query.PhaseExhausted, h.m.coordinator.Phase())
	assert.Equal(t, want, h.m.query.Len())

	// Exhausted: more scrolling sends nothing
	n := len(h.fake.Requests())
	h.runes("G")
	h.runes("j")
	assert.False(t, h.inFlight())
	assert.Len(t, h.fake.Requests(), n)
	assert.Contains(t, h.m.View(), "all")
}

func TestTriggersIgnoredWhileFetching(t *testing.T) {
	h := newHarness(t, 120)
	h.typeText("o")
	h.key(tea.KeyMsg{Type: tea.KeyEnter})
	first, _ := h.m.Coordinator().InFlight()

	h.key(tea.KeyMsg{Type: tea.KeyCtrlS})
	h.key(tea.KeyMsg{Type: tea.KeyEsc})
	h.runes("j")

	again, ok := h.m.Coordinator().InFlight()
	require.True(t, ok)
	assert.Equal(t, first.Seq, again.Seq)
}

func TestFailureShowsErrorAndClears(t *testing.T) {
	h := newHarness(t, 120)
	h.typeText("o")
	h.key(tea.KeyMsg{Type: tea.KeyEnter})
	h.resolve()
	require.Equal(t, domain.PageSize, h.m.query.Len())

	h.fake.FailWith(http.StatusInternalServerError)
	h.key(tea.KeyMsg{Type: tea.KeyEnter})
	h.resolve()

	assert.Equal(t, 0, h.m.query.Len())
	assert.Equal(t, 1, h.m.query.Page())
	assert.False(t, h.m.query.Pending())
	view := h.m.View()
	assert.Contains(t, view, "500")
	assert.Contains(t, view, "No Records Found")
}

func TestScrollSubscriptionLifecycle(t *testing.T) {
	h := newHarness(t, 10)
	assert.Equal(t, 1, h.m.scroll.Len())

	// Remounting keeps a single subscription
	h.m.Init()
	assert.Equal(t, 1, h.m.scroll.Len())

	h.key(tea.KeyMsg{Type: tea.KeyEsc})
	cmd := h.runes("q")
	require.NotNil(t, cmd)
	assert.Equal(t, 0, h.m.scroll.Len())

	h.m.Close()
	assert.Equal(t, 0, h.m.scroll.Len())
}

func TestHelpPopup(t *testing.T) {
	h := newHarness(t, 10)
	h.key(tea.KeyMsg{Type: tea.KeyEsc})
	h.runes("?")
	assert.True(t, h.m.state.ShowHelp)
	assert.Contains(t, h.m.View(), "logscout Help")

	h.key(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, h.m.state.ShowHelp)
	assert.Equal(t, inputtypes.ModeBrowse, h.m.inputHandler.CurrentMode())
}

type recordingPager struct {
	title, content string
}

func (p *recordingPager) Show(title, content string) error {
	p.title, p.content = title, content
	return nil
}

func TestPagerShowsRecords(t *testing.T) {
	h := newHarness(t, 10)
	pager := &recordingPager{}
	h.m.cmdExecutor.SetPager(pager)

	h.typeText(".")
	h.key(tea.KeyMsg{Type: tea.KeyEnter})
	h.resolve()
	h.key(tea.KeyMsg{Type: tea.KeyEsc})

	cmd := h.runes("v")
	require.NotNil(t, cmd)
	assert.True(t, h.m.state.PagerOpen)
	assert.Equal(t, "", h.m.View())

	h.m.Update(findMsg[commands.PagerClosedMsg](t, cmd))
	assert.False(t, h.m.state.PagerOpen)
	assert.Equal(t, "records", pager.title)
	assert.Contains(t, pager.content, `"level"`)
}

// findMsg runs cmd, unpacking batches, and returns the first T it yields
func findMsg[T tea.Msg](t *testing.T, cmd tea.Cmd) T {
	t.Helper()
	var zero T
	if cmd == nil {
		require.Fail(t, "nil command")
		return zero
	}
	switch msg := cmd().(type) {
	case T:
		return msg
	case tea.BatchMsg:
		for _, c := range msg {
			if c == nil {
				continue
			}
			if m, ok := c().(T); ok {
				return m
			}
		}
	}
	require.Fail(t, "message not produced")
	return zero
}

func TestShowHelpConfigHidesFooter(t *testing.T) {
	cfg := config.DefaultConfig()
	m := NewModel(context.Background(), cfg, nil, nil, zerolog.Nop())
	m.Init()
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Contains(t, m.View(), "ctrl+s")

	cfg = config.DefaultConfig()
	cfg.UISettings.ShowHelp = false
	m = NewModel(context.Background(), cfg, nil, nil, zerolog.Nop())
	m.Init()
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	view := m.View()
	assert.NotContains(t, view, "ctrl+s")
	assert.Contains(t, view, "No Records Found")
}

func TestDefaultThresholdPrefetchesAhead(t *testing.T) {
	h := newHarness(t, 300)
	h.typeText("o")
	h.key(tea.KeyMsg{Type: tea.KeyEnter})
	h.resolve()
	h.key(tea.KeyMsg{Type: tea.KeyEsc})

	// 50 rows loaded, fewer than 100 left below the viewport
	h.runes("j")
	require.True(t, h.inFlight())
	req := h.resolve()
	assert.Equal(t, 2, req.Page)
	assert.Equal(t, 1, h.m.viewport.YOffset)
}

func TestSmallThresholdWaitsForEnd(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ScrollThreshold = 5
	h := newHarnessWithConfig(t, 300, cfg)
	h.typeText("o")
	h.key(tea.KeyMsg{Type: tea.KeyEnter})
	h.resolve()
	h.key(tea.KeyMsg{Type: tea.KeyEsc})

	h.runes("j")
	assert.False(t, h.inFlight())

	h.runes("G")
	require.True(t, h.inFlight())
	assert.Equal(t, 2, h.resolve().Page)
}
