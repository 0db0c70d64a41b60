package modes

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"logscout/internal/ui/input/types"
)

// BrowseMode handles keys while the results pane has focus
type BrowseMode struct {
	keys        types.KeyMap
	lastKeyWasG bool
	lastGTime   time.Time
}

func NewBrowseMode(keys types.KeyMap) *BrowseMode {
	return &BrowseMode{keys: keys}
}

func (m *BrowseMode) Name() string {
	return "browse"
}

func (m *BrowseMode) Enter(ctx types.Context) []types.Action {
	m.lastKeyWasG = false
	return nil
}

func (m *BrowseMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *BrowseMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	if msg.String() == "g" {
		if m.lastKeyWasG && time.Since(m.lastGTime) < 500*time.Millisecond {
			// gg - go to top
			m.lastKeyWasG = false
			return []types.Action{types.NavigateAction{Direction: "home"}}, true
		}
		m.lastKeyWasG = true
		m.lastGTime = time.Now()
		return nil, true
	}
	// Any other key cancels the 'g' prefix
	m.lastKeyWasG = false

	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return []types.Action{types.QuitAction{Force: true}}, true
	case key.Matches(msg, m.keys.Quit):
		return []types.Action{types.QuitAction{}}, true

	case key.Matches(msg, m.keys.Up):
		return []types.Action{types.NavigateAction{Direction: "up"}}, true
	case key.Matches(msg, m.keys.Down):
		return []types.Action{types.NavigateAction{Direction: "down"}}, true
	case key.Matches(msg, m.keys.PageUp):
		return []types.Action{types.NavigateAction{Direction: "pageup"}}, true
	case key.Matches(msg, m.keys.PageDown):
		return []types.Action{types.NavigateAction{Direction: "pagedown"}}, true
	case key.Matches(msg, m.keys.HalfUp):
		return []types.Action{types.NavigateAction{Direction: "halfup"}}, true
	case key.Matches(msg, m.keys.HalfDown):
		return []types.Action{types.NavigateAction{Direction: "halfdown"}}, true
	case msg.Type == tea.KeyHome:
		return []types.Action{types.NavigateAction{Direction: "home"}}, true
	case key.Matches(msg, m.keys.Bottom):
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case key.Matches(msg, m.keys.Edit):
		return []types.Action{types.ChangeModeAction{Mode: types.ModeEdit}}, true
	case key.Matches(msg, m.keys.NextField):
		return []types.Action{types.FocusAction{}}, true
	case key.Matches(msg, m.keys.PrevField):
		return []types.Action{types.FocusAction{Reverse: true}}, true

	case key.Matches(msg, m.keys.Submit), key.Matches(msg, m.keys.Enter):
		return []types.Action{types.SubmitAction{}}, true

	case key.Matches(msg, m.keys.Pager):
		if ctx.HasResults() {
			return []types.Action{types.OpenPagerAction{}}, true
		}
		return nil, true
	case key.Matches(msg, m.keys.Help):
		return []types.Action{types.ToggleHelpAction{}, types.ChangeModeAction{Mode: types.ModeHelp}}, true
	case key.Matches(msg, m.keys.HelpPager):
		return []types.Action{types.OpenHelpPagerAction{}}, true
	}

	return nil, false
}
