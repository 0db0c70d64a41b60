package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logscout/internal/domain"
	"logscout/internal/ui/input/types"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(h *Handler, msg tea.KeyMsg) []types.Action {
	actions, _ := h.HandleKey(msg, &ModelContext{Form: h.Form()})
	return actions
}

func typeText(h *Handler, s string) []types.Action {
	var out []types.Action
	for _, r := range s {
		out = append(out, press(h, runes(string(r)))...)
	}
	return out
}

func TestHandlerStartsInEditOnQuery(t *testing.T) {
	h := New()
	assert.Equal(t, types.ModeEdit, h.CurrentMode())
	assert.Equal(t, QueryField, h.Form().Focused())
	assert.Equal(t, 1+len(domain.FilterKeys), h.Form().Len())
}

func TestTypingEmitsUpdateText(t *testing.T) {
	h := New()
	actions := typeText(h, "err")
	require.Len(t, actions, 3)

	last, ok := actions[2].(types.UpdateTextAction)
	require.True(t, ok)
	assert.Equal(t, QueryField, last.Field)
	assert.Equal(t, "", last.Key)
	assert.Equal(t, "err", last.Text)
}

func TestEnterInQueryFieldIsEnterIntent(t *testing.T) {
	h := New()
	actions := press(h, tea.KeyMsg{Type: tea.KeyEnter})
	require.Len(t, actions, 1)
	assert.Equal(t, types.SubmitAction{Enter: true}, actions[0])

	press(h, tea.KeyMsg{Type: tea.KeyTab})
	actions = press(h, tea.KeyMsg{Type: tea.KeyEnter})
	require.Len(t, actions, 1)
	assert.Equal(t, types.SubmitAction{}, actions[0])
}

func TestTabWalksFieldsThenResults(t *testing.T) {
	h := New()
	for i := 1; i < h.Form().Len(); i++ {
		press(h, tea.KeyMsg{Type: tea.KeyTab})
		assert.Equal(t, i, h.Form().Focused())
		assert.Equal(t, types.ModeEdit, h.CurrentMode())
	}

	press(h, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, -1, h.Form().Focused())
	assert.Equal(t, types.ModeBrowse, h.CurrentMode())

	press(h, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, QueryField, h.Form().Focused())
	assert.Equal(t, types.ModeEdit, h.CurrentMode())

	press(h, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, types.ModeBrowse, h.CurrentMode())
}

func TestFilterFieldCarriesKey(t *testing.T) {
	h := New()
	press(h, tea.KeyMsg{Type: tea.KeyTab})
	actions := typeText(h, "e")
	require.Len(t, actions, 1)
	upd := actions[0].(types.UpdateTextAction)
	assert.Equal(t, domain.FilterLevel, upd.Key)
	assert.Equal(t, "e", upd.Text)
}

func TestClearFieldOnlyEmitsWhenChanged(t *testing.T) {
	h := New()
	assert.Empty(t, press(h, tea.KeyMsg{Type: tea.KeyCtrlK}))

	typeText(h, "abc")
	actions := press(h, tea.KeyMsg{Type: tea.KeyCtrlK})
	require.Len(t, actions, 1)
	assert.Equal(t, "", actions[0].(types.UpdateTextAction).Text)
	assert.Equal(t, "", h.Form().Value(QueryField))
}

func TestBrowseModeKeys(t *testing.T) {
	h := New()
	press(h, tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, types.ModeBrowse, h.CurrentMode())

	// Letters do not reach the form while browsing
	assert.Equal(t, []types.Action{types.NavigateAction{Direction: "down"}}, press(h, runes("j")))
	assert.Equal(t, "", h.Form().Value(QueryField))

	assert.Equal(t, []types.Action{types.NavigateAction{Direction: "end"}}, press(h, runes("G")))

	assert.Empty(t, press(h, runes("g")))
	assert.Equal(t, []types.Action{types.NavigateAction{Direction: "home"}}, press(h, runes("g")))

	assert.Equal(t, []types.Action{types.QuitAction{}}, press(h, runes("q")))

	press(h, runes("/"))
	assert.Equal(t, types.ModeEdit, h.CurrentMode())
	assert.Equal(t, QueryField, h.Form().Focused())
}

func TestEditReturnsToLastField(t *testing.T) {
	h := New()
	press(h, tea.KeyMsg{Type: tea.KeyTab})
	press(h, tea.KeyMsg{Type: tea.KeyTab})
	press(h, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, -1, h.Form().Focused())

	press(h, runes("i"))
	assert.Equal(t, 2, h.Form().Focused())
}

func TestPagerNeedsResults(t *testing.T) {
	h := New()
	press(h, tea.KeyMsg{Type: tea.KeyEsc})

	actions, _ := h.HandleKey(runes("v"), &ModelContext{Form: h.Form()})
	assert.Empty(t, actions)

	actions, _ = h.HandleKey(runes("v"), &ModelContext{Form: h.Form(), Results: 3})
	assert.Equal(t, []types.Action{types.OpenPagerAction{}}, actions)
}

func TestHelpModeRoundTrip(t *testing.T) {
	h := New()
	press(h, tea.KeyMsg{Type: tea.KeyEsc})

	actions := press(h, runes("?"))
	assert.Equal(t, []types.Action{types.ToggleHelpAction{}}, actions)
	assert.Equal(t, types.ModeHelp, h.CurrentMode())

	assert.Equal(t, []types.Action{types.HelpScrollAction{Delta: 1}}, press(h, runes("j")))
	assert.Empty(t, press(h, runes("x")))

	actions = press(h, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, []types.Action{types.ToggleHelpAction{}}, actions)
	assert.Equal(t, types.ModeBrowse, h.CurrentMode())
}

func TestForceQuitFromEdit(t *testing.T) {
	h := New()
	assert.Equal(t, []types.Action{types.QuitAction{Force: true}}, press(h, tea.KeyMsg{Type: tea.KeyCtrlC}))
	// q is text while editing
	actions := press(h, runes("q"))
	require.Len(t, actions, 1)
	assert.Equal(t, "q", actions[0].(types.UpdateTextAction).Text)
}
