package state

// AppState holds the UI-only state. Query state and fetch progress live in
// the coordinator; this covers what the screen needs on top of it.
type AppState struct {
	// Terminal size
	Width  int
	Height int

	// Popups
	ShowHelp         bool
	HelpScrollOffset int
	HelpLines        int // total help lines, bounds HelpScrollOffset

	// Status bar message, cleared on the next submit
	StatusMessage string

	// Pager state; rendering pauses while ov owns the terminal
	PagerOpen bool
}

// NewAppState creates a new application state
func NewAppState() *AppState {
	return &AppState{
		Width:  80,
		Height: 24,
	}
}

// SetSize records the terminal dimensions
func (s *AppState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// ToggleHelp opens or closes the help popup
func (s *AppState) ToggleHelp() {
	s.ShowHelp = !s.ShowHelp
	s.HelpScrollOffset = 0
}

// ScrollHelp moves the help popup by delta lines, clamped to its content
func (s *AppState) ScrollHelp(delta, visible int) {
	s.HelpScrollOffset += delta
	maxOffset := s.HelpLines - visible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if s.HelpScrollOffset > maxOffset {
		s.HelpScrollOffset = maxOffset
	}
	if s.HelpScrollOffset < 0 {
		s.HelpScrollOffset = 0
	}
}

// SetStatus sets the status bar message
func (s *AppState) SetStatus(msg string) {
	s.StatusMessage = msg
}
