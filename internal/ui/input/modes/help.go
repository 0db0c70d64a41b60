package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"logscout/internal/ui/input/types"
)

// HelpMode is active while the help popup covers the screen
type HelpMode struct {
	returnTo types.Mode
}

func NewHelpMode() *HelpMode {
	return &HelpMode{returnTo: types.ModeBrowse}
}

func (m *HelpMode) Name() string {
	return "help"
}

// ReturnTo sets the mode restored when the popup closes
func (m *HelpMode) ReturnTo(mode types.Mode) {
	m.returnTo = mode
}

func (m *HelpMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *HelpMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *HelpMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "ctrl+c":
		return []types.Action{types.QuitAction{Force: true}}, true
	case "esc", "?", "q":
		return []types.Action{
			types.ToggleHelpAction{},
			types.ChangeModeAction{Mode: m.returnTo},
		}, true
	case "j", "down":
		return []types.Action{types.HelpScrollAction{Delta: 1}}, true
	case "k", "up":
		return []types.Action{types.HelpScrollAction{Delta: -1}}, true
	case "H":
		return []types.Action{
			types.ToggleHelpAction{},
			types.ChangeModeAction{Mode: m.returnTo},
			types.OpenHelpPagerAction{},
		}, true
	}

	// The popup swallows everything else
	return nil, true
}
