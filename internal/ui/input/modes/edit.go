package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"logscout/internal/ui/input/types"
)

// EditMode handles keys while a form field has focus. Keys it does not
// consume are typed into the focused field by the input handler.
type EditMode struct {
	keys types.KeyMap
}

func NewEditMode(keys types.KeyMap) *EditMode {
	return &EditMode{keys: keys}
}

func (m *EditMode) Name() string {
	return "edit"
}

func (m *EditMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *EditMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *EditMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return []types.Action{types.QuitAction{Force: true}}, true

	case key.Matches(msg, m.keys.Browse):
		return []types.Action{types.ChangeModeAction{Mode: types.ModeBrowse}}, true

	case key.Matches(msg, m.keys.NextField), msg.Type == tea.KeyDown:
		return []types.Action{types.FocusAction{}}, true

	case key.Matches(msg, m.keys.PrevField), msg.Type == tea.KeyUp:
		return []types.Action{types.FocusAction{Reverse: true}}, true

	case key.Matches(msg, m.keys.Submit):
		return []types.Action{types.SubmitAction{}}, true

	case key.Matches(msg, m.keys.Enter):
		// Enter in the query field is its own intent; in a filter field it submits
		return []types.Action{types.SubmitAction{Enter: ctx.FocusedField() == 0}}, true

	case key.Matches(msg, m.keys.ClearField):
		return []types.Action{types.ClearFieldAction{}}, true
	}

	// Let the main handler update the text input
	return nil, false
}
