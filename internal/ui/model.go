package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"logscout/internal/config"
	"logscout/internal/eventbus"
	"logscout/internal/query"
	"logscout/internal/search"
	"logscout/internal/ui/commands"
	"logscout/internal/ui/input"
	inputtypes "logscout/internal/ui/input/types"
	"logscout/internal/ui/scroll"
	"logscout/internal/ui/state"
	"logscout/internal/ui/viewmodels"
	"logscout/internal/ui/views"
)

// Model represents the UI state
type Model struct {
	config *config.Config
	logger zerolog.Logger
	state  *state.AppState

	// Search state and the fetch state machine driving it
	query       *query.State
	coordinator *query.Coordinator

	viewport     viewport.Model
	spinner      spinner.Model
	spinning     bool
	contentDirty bool
	ready        bool

	// Scroll positions reach the coordinator through a scoped subscription
	scroll        *scroll.Watcher
	releaseScroll func()
	intents       []query.Intent

	renderer     *views.Renderer
	viewModel    *viewmodels.ViewModel
	cmdExecutor  *commands.Executor
	inputHandler *input.Handler

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model
func NewModel(ctx context.Context, cfg *config.Config, searcher search.Searcher, bus eventbus.EventBus, logger zerolog.Logger) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger = logger.With().Str("component", "ui").Logger()

	m := &Model{
		config:       cfg,
		logger:       logger,
		state:        state.NewAppState(),
		query:        query.NewState(),
		scroll:       scroll.NewWatcher(),
		renderer:     views.NewRenderer(),
		inputHandler: input.New(),
	}

	// Any change to the result set invalidates the rendered lines
	m.query.Observe(func(t query.Transition, _ *query.State) {
		switch t {
		case query.TransitionAppendResults, query.TransitionResetResults:
			m.contentDirty = true
		}
	})

	opts := []query.Option{query.WithState(m.query), query.WithLogger(logger)}
	if bus != nil {
		opts = append(opts, query.WithEventBus(bus))
	}
	m.coordinator = query.NewCoordinator(opts...)

	m.viewport = viewport.New(views.ResultsSize(m.state.Width, m.state.Height))
	m.viewport.MouseWheelEnabled = cfg.UISettings.Mouse

	m.spinner = spinner.New()
	m.spinner.Spinner = spinner.Dot

	m.cmdExecutor = commands.NewExecutor(ctx, searcher, nil, logger)
	m.viewModel = viewmodels.NewViewModel(m.state, m.coordinator, m.query, m.inputHandler.Form(), m.inputHandler.Keys())
	m.viewModel.SetFooter(cfg.UISettings.ShowHelp)
	m.state.HelpLines = m.renderer.HelpLines()

	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.cmdExecutor.SetPager(NewPagerOps(p, m.logger))
}

// Coordinator exposes the fetch coordinator for inspection
func (m *Model) Coordinator() *query.Coordinator {
	return m.coordinator
}

func (m *Model) Init() tea.Cmd {
	m.subscribeScroll()
	return m.inputHandler.Init()
}

// subscribeScroll acquires the scroll subscription, dropping any earlier one
func (m *Model) subscribeScroll() {
	if m.releaseScroll != nil {
		m.releaseScroll()
	}
	threshold := m.config.ScrollThreshold
	m.releaseScroll = m.scroll.Subscribe(func(p scroll.Position) {
		if p.NearEnd(threshold) {
			m.intents = append(m.intents, query.ScrollNearEnd{})
		}
	})
}

// Close releases the scroll subscription. Safe to call more than once.
func (m *Model) Close() {
	if m.releaseScroll != nil {
		m.releaseScroll()
		m.releaseScroll = nil
	}
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		m.viewModel.SetDimensions(msg.Width, msg.Height)
		m.viewport.Width, m.viewport.Height = views.ResultsSize(msg.Width, msg.Height)
		m.contentDirty = true

	case tea.KeyMsg:
		if m.state.PagerOpen {
			return m, nil
		}

		ctx := &input.ModelContext{
			Form:    m.inputHandler.Form(),
			Results: m.query.Len(),
			Busy:    m.query.Pending(),
		}

		actions, cmd := m.inputHandler.HandleKey(msg, ctx)
		cmds = append(cmds, cmd)
		for _, action := range actions {
			cmds = append(cmds, m.processAction(action))
		}

	case tea.MouseMsg:
		if tea.MouseEvent(msg).IsWheel() && m.viewport.MouseWheelEnabled {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			cmds = append(cmds, cmd)
			m.reportScroll()
		}

	case spinner.TickMsg:
		if !m.query.Pending() {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case commands.FetchResultMsg:
		outcome := m.coordinator.Resolve(msg.Request, msg.Response, msg.Err)
		m.logger.Debug().
			Uint64("seq", msg.Request.Seq).
			Int("page", msg.Request.Page).
			Stringer("outcome", outcome).
			Dur("elapsed", msg.Elapsed).
			Msg("fetch resolved")

	case commands.PagerClosedMsg:
		m.state.PagerOpen = false
		if msg.Err != nil {
			m.logger.Error().Err(msg.Err).Str("title", msg.Title).Msg("pager failed")
			m.state.SetStatus(fmt.Sprintf("Pager failed: %v", msg.Err))
			cmds = append(cmds, clearStatusAfter(3*time.Second))
		}

	case clearStatusMsg:
		m.state.SetStatus("")

	default:
		cmds = append(cmds, m.inputHandler.Update(msg))
	}

	cmds = append(cmds, m.drainIntents())
	m.refreshContent()
	return m, tea.Batch(cmds...)
}

func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.UpdateTextAction:
		if a.Field == input.QueryField {
			return m.dispatch(query.TermChanged{Text: a.Text})
		}
		return m.dispatch(query.FilterChanged{Name: a.Key, Value: a.Text})

	case inputtypes.SubmitAction:
		m.state.SetStatus("")
		var intent query.Intent = query.SubmitPressed{}
		if a.Enter {
			intent = query.EnterPressed{}
		}
		return m.dispatch(intent)

	case inputtypes.NavigateAction:
		switch a.Direction {
		case "up":
			m.viewport.LineUp(1)
		case "down":
			m.viewport.LineDown(1)
		case "pageup":
			m.viewport.ViewUp()
		case "pagedown":
			m.viewport.ViewDown()
		case "halfup":
			m.viewport.HalfViewUp()
		case "halfdown":
			m.viewport.HalfViewDown()
		case "home":
			m.viewport.GotoTop()
		case "end":
			m.viewport.GotoBottom()
		}
		m.reportScroll()

	case inputtypes.ToggleHelpAction:
		m.state.ToggleHelp()

	case inputtypes.HelpScrollAction:
		m.state.ScrollHelp(a.Delta, m.helpVisibleLines())

	case inputtypes.OpenPagerAction:
		if m.query.Len() == 0 {
			return nil
		}
		m.state.PagerOpen = true
		doc := views.PagerDocument(m.query.Identity(), m.query.Results())
		return m.cmdExecutor.ExecutePager("records", doc)

	case inputtypes.OpenHelpPagerAction:
		m.state.PagerOpen = true
		return m.cmdExecutor.ExecutePager("help", m.renderer.HelpDocument())

	case inputtypes.QuitAction:
		m.Close()
		return tea.Quit
	}
	return nil
}

// dispatch hands an intent to the coordinator and starts the fetch it asks for
func (m *Model) dispatch(intent query.Intent) tea.Cmd {
	req, err := m.coordinator.Dispatch(intent)
	if err != nil {
		m.logger.Warn().Err(err).Str("intent", intent.Type()).Msg("intent rejected")
		return nil
	}
	if req == nil {
		return nil
	}
	if req.Page == 1 {
		m.viewport.GotoTop()
	}

	cmds := []tea.Cmd{m.cmdExecutor.ExecuteFetch(*req)}
	if !m.spinning {
		m.spinning = true
		cmds = append(cmds, m.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

// drainIntents dispatches intents queued by scroll listeners
func (m *Model) drainIntents() tea.Cmd {
	if len(m.intents) == 0 {
		return nil
	}
	pending := m.intents
	m.intents = nil

	var cmds []tea.Cmd
	for _, intent := range pending {
		cmds = append(cmds, m.dispatch(intent))
	}
	return tea.Batch(cmds...)
}

func (m *Model) reportScroll() {
	m.scroll.Report(scroll.Position{
		ContentHeight:  m.viewport.TotalLineCount(),
		ViewportHeight: m.viewport.Height,
		Offset:         m.viewport.YOffset,
	})
}

// refreshContent re-renders the result lines when the result set changed
func (m *Model) refreshContent() {
	if !m.contentDirty {
		return
	}
	m.contentDirty = false
	offset := m.viewport.YOffset
	m.viewport.SetContent(m.renderer.Records().RenderLines(m.query.Results(), m.viewport.Width))
	m.viewport.SetYOffset(offset)
}

func (m *Model) helpVisibleLines() int {
	return max(5, m.state.Height-8)
}

// View renders the UI
func (m *Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.state.PagerOpen {
		return ""
	}
	vs := m.viewModel.BuildViewState(m.inputHandler.CurrentMode(), m.viewport, m.spinner)
	return m.renderer.Render(vs)
}
