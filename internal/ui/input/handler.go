package input

import (
	tea "github.com/charmbracelet/bubbletea"

	"logscout/internal/ui/input/modes"
	"logscout/internal/ui/input/types"
)

type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	help        *modes.HelpMode
	form        *Form
	lastField   int
	keys        types.KeyMap
}

func New() *Handler {
	keys := types.DefaultKeyMap()

	h := &Handler{
		currentMode: types.ModeEdit,
		modes:       make(map[types.Mode]types.ModeHandler),
		help:        modes.NewHelpMode(),
		form:        NewForm(),
		keys:        keys,
	}

	// Register all mode handlers
	h.modes[types.ModeEdit] = modes.NewEditMode(keys)
	h.modes[types.ModeBrowse] = modes.NewBrowseMode(keys)
	h.modes[types.ModeHelp] = h.help

	return h
}

func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, tea.Cmd) {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil, nil
	}

	actions, consumed := handler.HandleKey(msg, ctx)

	if !consumed && h.currentMode != types.ModeEdit {
		return nil, nil
	}

	var cmds []tea.Cmd
	var allActions []types.Action

	for _, action := range actions {
		switch a := action.(type) {
		case types.ChangeModeAction:
			allActions = append(allActions, h.switchMode(a.Mode, ctx)...)
			cmds = append(cmds, h.focusForMode())
		case types.FocusAction:
			cmds = append(cmds, h.moveFocus(a.Reverse, ctx, &allActions))
		case types.ClearFieldAction:
			if h.form.Clear() {
				allActions = append(allActions, h.textAction(h.form.Focused()))
			}
		default:
			allActions = append(allActions, action)
		}
	}

	// Keys the edit mode leaves alone are typed into the focused field
	if !consumed && h.currentMode == types.ModeEdit {
		cmd, changed := h.form.Update(msg)
		cmds = append(cmds, cmd)
		if changed {
			allActions = append(allActions, h.textAction(h.form.Focused()))
		}
	}

	return allActions, tea.Batch(cmds...)
}

func (h *Handler) switchMode(mode types.Mode, ctx types.Context) []types.Action {
	var out []types.Action
	if mode == h.currentMode {
		return nil
	}
	if h.modes[h.currentMode] != nil {
		out = append(out, h.modes[h.currentMode].Exit(ctx)...)
	}
	if mode == types.ModeHelp {
		h.help.ReturnTo(h.currentMode)
	}
	h.currentMode = mode
	if h.modes[mode] != nil {
		out = append(out, h.modes[mode].Enter(ctx)...)
	}
	return out
}

func (h *Handler) focusForMode() tea.Cmd {
	switch h.currentMode {
	case types.ModeEdit:
		return h.form.Focus(h.lastField)
	case types.ModeBrowse:
		if f := h.form.Focused(); f >= 0 {
			h.lastField = f
		}
		return h.form.Focus(-1)
	default:
		h.form.Blur()
		return nil
	}
}

func (h *Handler) moveFocus(reverse bool, ctx types.Context, actions *[]types.Action) tea.Cmd {
	next := h.form.Next(reverse)
	if next < 0 {
		*actions = append(*actions, h.switchMode(types.ModeBrowse, ctx)...)
		return h.focusForMode()
	}
	h.lastField = next
	*actions = append(*actions, h.switchMode(types.ModeEdit, ctx)...)
	return h.form.Focus(next)
}

func (h *Handler) textAction(i int) types.UpdateTextAction {
	f := h.form.Field(i)
	return types.UpdateTextAction{Field: i, Key: f.Key, Text: f.Input.Value()}
}

func (h *Handler) CurrentMode() types.Mode {
	if h == nil {
		return types.ModeEdit
	}
	return h.currentMode
}

// Form returns the search form
func (h *Handler) Form() *Form {
	return h.form
}

// Keys returns the active key bindings
func (h *Handler) Keys() types.KeyMap {
	return h.keys
}

// Update handles non-keyboard messages for the focused text input
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	if h.currentMode != types.ModeEdit {
		return nil
	}
	cmd, _ := h.form.Update(msg)
	return cmd
}

// Init returns the initial command for the handler
func (h *Handler) Init() tea.Cmd {
	return h.form.Focus(QueryField)
}
