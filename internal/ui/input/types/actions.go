package types

// Results pane scrolling
type NavigateAction struct {
	Direction string // "up", "down", "pageup", "pagedown", "halfup", "halfdown", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// FocusAction moves focus through the form fields and the results pane
type FocusAction struct {
	Reverse bool
}

func (a FocusAction) Type() string { return "focus" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// UpdateTextAction carries the new value of one form field
type UpdateTextAction struct {
	Field int
	Key   string
	Text  string
}

func (a UpdateTextAction) Type() string { return "update_text" }

// SubmitAction asks for a search. Enter is set when it came from the Enter
// key in the query field; otherwise it is the explicit submit control.
type SubmitAction struct {
	Enter bool
}

func (a SubmitAction) Type() string { return "submit" }

// ClearFieldAction empties the focused form field
type ClearFieldAction struct{}

func (a ClearFieldAction) Type() string { return "clear_field" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type HelpScrollAction struct {
	Delta int
}

func (a HelpScrollAction) Type() string { return "help_scroll" }

// OpenPagerAction shows the accumulated records in the external pager
type OpenPagerAction struct{}

func (a OpenPagerAction) Type() string { return "open_pager" }

// OpenHelpPagerAction shows the key reference in the external pager
type OpenHelpPagerAction struct{}

func (a OpenHelpPagerAction) Type() string { return "open_help_pager" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }
