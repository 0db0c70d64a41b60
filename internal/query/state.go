package query

import (
	"errors"
	"fmt"

	"logscout/internal/domain"
)

// ErrInvalidFilterKey is returned when a filter name is not in the recognised set
var ErrInvalidFilterKey = errors.New("invalid filter key")

// Transition names one State mutation
type Transition string

const (
	TransitionSetTerm       Transition = "SetTerm"
	TransitionSetFilter     Transition = "SetFilter"
	TransitionAppendResults Transition = "AppendResults"
	TransitionResetResults  Transition = "ResetResults"
	TransitionSetPending    Transition = "SetPending"
	TransitionAdvancePage   Transition = "AdvancePage"
)

// Observer is told about every State transition after it is applied
type Observer func(t Transition, s *State)

// State is the record of the current search intent and the accumulated
// result set. Term and filters are edited by the user; page, results and
// pending are only changed by the Coordinator.
type State struct {
	term     string
	filters  domain.Filters
	page     int
	results  []domain.Record
	pending  bool
	observer Observer
}

// NewState creates a State with every field at its default
func NewState() *State {
	return &State{
		filters: domain.NewFilters(),
		page:    1,
		results: []domain.Record{},
	}
}

// Observe installs the transition observer. nil removes it.
func (s *State) Observe(fn Observer) {
	s.observer = fn
}

func (s *State) notify(t Transition) {
	if s.observer != nil {
		s.observer(t, s)
	}
}

// SetTerm replaces the free-text term
func (s *State) SetTerm(value string) {
	s.term = value
	s.notify(TransitionSetTerm)
}

// SetFilter merges one filter value
func (s *State) SetFilter(name, value string) error {
	if !domain.IsFilterKey(name) {
		return fmt.Errorf("%w: %q", ErrInvalidFilterKey, name)
	}
	s.filters[name] = value
	s.notify(TransitionSetFilter)
	return nil
}

// AppendResults appends a batch in order. Duplicates are kept.
func (s *State) AppendResults(batch []domain.Record) {
	s.results = append(s.results, batch...)
	s.notify(TransitionAppendResults)
}

// ResetResults clears the results and rewinds the page cursor
func (s *State) ResetResults() {
	s.results = []domain.Record{}
	s.page = 1
	s.notify(TransitionResetResults)
}

// SetPending sets the outstanding-fetch flag
func (s *State) SetPending(flag bool) {
	s.pending = flag
	s.notify(TransitionSetPending)
}

// advancePage moves the cursor to the page after p
func (s *State) advancePage(p int) {
	s.page = p + 1
	s.notify(TransitionAdvancePage)
}

func (s *State) Term() string { return s.term }

// Filter returns one filter value
func (s *State) Filter(name string) string { return s.filters[name] }

func (s *State) Page() int { return s.page }

func (s *State) Pending() bool { return s.pending }

func (s *State) Len() int { return len(s.results) }

// Filters returns a copy of the filter values
func (s *State) Filters() domain.Filters { return s.filters.Clone() }

// Results returns a copy of the accumulated records
func (s *State) Results() []domain.Record {
	out := make([]domain.Record, len(s.results))
	copy(out, s.results)
	return out
}

// Identity snapshots the current (term, filters) pair
func (s *State) Identity() domain.Identity {
	return domain.NewIdentity(s.term, s.filters)
}
