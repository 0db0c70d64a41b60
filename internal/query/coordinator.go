package query

import (
	"fmt"

	"github.com/rs/zerolog"

	"logscout/internal/domain"
	"logscout/internal/eventbus"
)

// Phase is the coordinator's fetch state
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseFetching
	// PhaseExhausted means the last page was short; scroll triggers are
	// ignored until the query identity changes or the user submits again.
	PhaseExhausted
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseFetching:
		return "fetching"
	case PhaseExhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Outcome describes what Resolve did with a response
type Outcome int

const (
	// OutcomeIgnored: the response did not belong to the outstanding request
	OutcomeIgnored Outcome = iota
	OutcomeAppended
	OutcomeExhausted
	OutcomeFailed
	OutcomeStale
)

func (o Outcome) String() string {
	switch o {
	case OutcomeIgnored:
		return "ignored"
	case OutcomeAppended:
		return "appended"
	case OutcomeExhausted:
		return "exhausted"
	case OutcomeFailed:
		return "failed"
	case OutcomeStale:
		return "stale"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Coordinator decides when to fetch, which page to ask for, and folds the
// responses into its State. It performs no I/O: Dispatch hands back the
// request to send and Resolve takes the result. Callers must serialize calls.
type Coordinator struct {
	state *State
	phase Phase

	// identity used by the most recent fetch
	last    domain.Identity
	hasLast bool

	seq      uint64
	inflight *domain.FetchRequest
	lastErr  error

	bus    eventbus.EventBus
	logger zerolog.Logger
}

// Option configures a Coordinator
type Option func(*Coordinator)

// WithEventBus publishes lifecycle events on bus
func WithEventBus(bus eventbus.EventBus) Option {
	return func(c *Coordinator) { c.bus = bus }
}

// WithLogger sets the coordinator's logger
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Coordinator) {
		c.logger = logger.With().Str("component", "coordinator").Logger()
	}
}

// WithState lets the caller supply the State, e.g. one with an observer installed
func WithState(s *State) Option {
	return func(c *Coordinator) { c.state = s }
}

// NewCoordinator creates an idle coordinator with a fresh State
func NewCoordinator(opts ...Option) *Coordinator {
	c := &Coordinator{
		state:  NewState(),
		phase:  PhaseIdle,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Phase returns the current fetch phase
func (c *Coordinator) Phase() Phase { return c.phase }

// InFlight returns the outstanding request, if any
func (c *Coordinator) InFlight() (domain.FetchRequest, bool) {
	if c.inflight == nil {
		return domain.FetchRequest{}, false
	}
	return *c.inflight, true
}

// LastError returns the error of the most recent failed fetch, cleared by the next fetch
func (c *Coordinator) LastError() error { return c.lastErr }

// Dispatch applies an intent. When the intent warrants a fetch the request
// to send is returned; otherwise the request is nil. The only error is
// ErrInvalidFilterKey from a FilterChanged intent.
func (c *Coordinator) Dispatch(intent Intent) (*domain.FetchRequest, error) {
	switch i := intent.(type) {
	case TermChanged:
		c.state.SetTerm(i.Text)
		return nil, nil
	case FilterChanged:
		if err := c.state.SetFilter(i.Name, i.Value); err != nil {
			return nil, err
		}
		return nil, nil
	}

	switch TriggerOf(intent) {
	case TriggerSubmit:
		return c.submit(), nil
	case TriggerScrollNearEnd:
		return c.scrollNearEnd(), nil
	}
	return nil, nil
}

func (c *Coordinator) submit() *domain.FetchRequest {
	if c.phase == PhaseFetching {
		c.logger.Debug().Msg("submit ignored while fetching")
		return nil
	}

	id := c.state.Identity()
	c.publish(domain.QuerySubmittedEvent{Identity: id, Empty: id.Empty()})

	c.clearResults("submit")
	if id.Empty() {
		// An all-empty query means "no query"
		c.last = id
		c.hasLast = true
		c.phase = PhaseIdle
		return nil
	}

	return c.issue(id, 1, TriggerSubmit)
}

func (c *Coordinator) scrollNearEnd() *domain.FetchRequest {
	if c.phase == PhaseFetching {
		return nil
	}

	id := c.state.Identity()
	changed := c.hasLast && !id.Equal(c.last)

	if c.phase == PhaseExhausted && !changed {
		return nil
	}

	if changed {
		c.clearResults("query changed")
		c.phase = PhaseIdle
	}

	if id.Empty() {
		if changed {
			c.last = id
		}
		return nil
	}

	return c.issue(id, c.state.Page(), TriggerScrollNearEnd)
}

func (c *Coordinator) issue(id domain.Identity, page int, trigger Trigger) *domain.FetchRequest {
	c.seq++
	req := domain.FetchRequest{Seq: c.seq, Identity: id, Page: page}

	c.inflight = &req
	c.last = id
	c.hasLast = true
	c.lastErr = nil
	c.phase = PhaseFetching
	c.state.SetPending(true)

	c.logger.Debug().
		Uint64("seq", req.Seq).
		Int("page", page).
		Str("trigger", trigger.String()).
		Str("query", id.String()).
		Msg("fetch issued")
	c.publish(domain.FetchIssuedEvent{Request: req, Trigger: trigger.String()})

	out := req
	return &out
}

// Resolve folds the result of a request previously returned by Dispatch.
// err non-nil covers both transport failures and malformed responses.
func (c *Coordinator) Resolve(req domain.FetchRequest, resp domain.FetchResponse, err error) Outcome {
	if c.inflight == nil || c.inflight.Seq != req.Seq {
		c.logger.Warn().Uint64("seq", req.Seq).Msg("response for unknown request ignored")
		return OutcomeIgnored
	}
	c.inflight = nil

	if !req.Identity.Equal(c.state.Identity()) {
		c.state.SetPending(false)
		c.phase = PhaseIdle
		c.logger.Debug().Uint64("seq", req.Seq).Msg("stale response discarded")
		c.publish(domain.StaleResponseDiscardedEvent{Request: req})
		return OutcomeStale
	}

	if err != nil {
		c.lastErr = err
		c.clearResults("fetch failed")
		c.state.SetPending(false)
		c.phase = PhaseIdle
		c.logger.Error().Err(err).Uint64("seq", req.Seq).Int("page", req.Page).Msg("fetch failed")
		c.publish(domain.FetchFailedEvent{Request: req, Err: err})
		return OutcomeFailed
	}

	c.state.AppendResults(resp.Records)
	k := len(resp.Records)
	outcome := OutcomeAppended
	if k >= domain.PageSize {
		c.state.advancePage(req.Page)
		c.phase = PhaseIdle
	} else {
		c.phase = PhaseExhausted
		outcome = OutcomeExhausted
	}
	c.state.SetPending(false)

	c.publish(domain.PageFoldedEvent{Request: req, Count: k, Total: c.state.Len()})
	if outcome == OutcomeExhausted {
		c.publish(domain.QueryExhaustedEvent{Identity: req.Identity, Total: c.state.Len()})
	}
	return outcome
}

func (c *Coordinator) clearResults(reason string) {
	c.state.ResetResults()
	c.publish(domain.ResultsClearedEvent{Reason: reason})
}

func (c *Coordinator) publish(e domain.DomainEvent) {
	if c.bus != nil {
		c.bus.Publish(e)
	}
}

// Snapshot is a read-only, serializable view of the coordinator and its State
type Snapshot struct {
	Term      string          `json:"term"`
	Filters   domain.Filters  `json:"filters"`
	Page      int             `json:"page"`
	Results   []domain.Record `json:"results"`
	Pending   bool            `json:"pending"`
	Phase     string          `json:"phase"`
	LastError string          `json:"lastError,omitempty"`
}

// Snapshot copies the current state for rendering
func (c *Coordinator) Snapshot() Snapshot {
	s := Snapshot{
		Term:    c.state.Term(),
		Filters: c.state.Filters(),
		Page:    c.state.Page(),
		Results: c.state.Results(),
		Pending: c.state.Pending(),
		Phase:   c.phase.String(),
	}
	if c.lastErr != nil {
		s.LastError = c.lastErr.Error()
	}
	return s
}
