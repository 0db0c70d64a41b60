package types

import tea "github.com/charmbracelet/bubbletea"

// Mode represents an input mode
type Mode int

const (
	// ModeEdit routes keys to the focused form field
	ModeEdit Mode = iota
	// ModeBrowse routes keys to the results pane
	ModeBrowse
	// ModeHelp is active while the help popup is open
	ModeHelp
)

func (m Mode) String() string {
	switch m {
	case ModeEdit:
		return "edit"
	case ModeBrowse:
		return "browse"
	case ModeHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Action represents a command the model should execute
type Action interface {
	Type() string
}

// Context provides read-only access to model state needed for input handling
type Context interface {
	// FocusedField is the focused form field, or -1 when the results pane has focus
	FocusedField() int
	FieldCount() int
	HasResults() bool
	Pending() bool
}

// ModeHandler handles input for a specific mode
type ModeHandler interface {
	// HandleKey processes a key message and returns actions and whether to consume the event
	HandleKey(msg tea.KeyMsg, ctx Context) ([]Action, bool)

	// Enter is called when entering this mode
	Enter(ctx Context) []Action

	// Exit is called when leaving this mode
	Exit(ctx Context) []Action

	// Name returns the mode name for display
	Name() string
}
