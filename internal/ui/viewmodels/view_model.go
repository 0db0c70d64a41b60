package viewmodels

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"

	"logscout/internal/query"
	"logscout/internal/ui/input"
	"logscout/internal/ui/input/types"
	"logscout/internal/ui/state"
	"logscout/internal/ui/views"
)

// ViewModel transforms application state into view-ready data
type ViewModel struct {
	state           *state.AppState
	coordinator     *query.Coordinator
	query           *query.State
	formTransformer *FormTransformer
	help            help.Model
	keys            types.KeyMap
	showFooter      bool
}

// NewViewModel creates a new view model
func NewViewModel(appState *state.AppState, coordinator *query.Coordinator, qs *query.State, form *input.Form, keys types.KeyMap) *ViewModel {
	return &ViewModel{
		state:           appState,
		coordinator:     coordinator,
		query:           qs,
		formTransformer: NewFormTransformer(form),
		help:            help.New(),
		keys:            keys,
		showFooter:      true,
	}
}

// SetFooter turns the key hint footer on or off
func (vm *ViewModel) SetFooter(show bool) {
	vm.showFooter = show
}

// SetDimensions sets the current terminal dimensions
func (vm *ViewModel) SetDimensions(width, height int) {
	vm.state.SetSize(width, height)
	vm.help.Width = width
	vm.formTransformer.Resize(width)
}

// BuildViewState creates a ViewState for rendering
func (vm *ViewModel) BuildViewState(mode types.Mode, vp viewport.Model, spin spinner.Model) views.ViewState {
	vs := views.ViewState{
		Width:            vm.state.Width,
		Height:           vm.state.Height,
		Query:            vm.formTransformer.Query(),
		Filters:          vm.formTransformer.Filters(),
		ResultsFocused:   mode == types.ModeBrowse,
		ResultsView:      vp.View(),
		ResultCount:      vm.query.Len(),
		ScrollPercent:    vp.ScrollPercent(),
		Pending:          vm.query.Pending(),
		Spinner:          spin.View(),
		Page:             vm.query.Page(),
		StatusMessage:    vm.state.StatusMessage,
		ShowHelp:         vm.state.ShowHelp,
		ShowFooter:       vm.showFooter,
		HelpScrollOffset: vm.state.HelpScrollOffset,
		HelpModel:        vm.help,
	}
	if phase := vm.coordinator.Phase(); phase != query.PhaseIdle {
		vs.Phase = phase.String()
	}
	if err := vm.coordinator.LastError(); err != nil {
		vs.LastError = err.Error()
	}

	switch mode {
	case types.ModeEdit:
		vs.HelpKeys = types.EditHelp{KeyMap: vm.keys}
	case types.ModeBrowse:
		vs.HelpKeys = types.BrowseHelp{KeyMap: vm.keys}
	}
	return vs
}
