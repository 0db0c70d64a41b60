package commands

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"logscout/internal/domain"
	"logscout/internal/search"
)

// ErrNoPager is returned when a pager command runs without a pager
var ErrNoPager = errors.New("no pager available")

// Executor handles command execution
type Executor struct {
	ctx *CommandContext
}

// NewExecutor creates a new command executor
func NewExecutor(ctx context.Context, searcher search.Searcher, pager Pager, logger zerolog.Logger) *Executor {
	return &Executor{
		ctx: &CommandContext{
			Ctx:      ctx,
			Searcher: searcher,
			Pager:    pager,
			Logger:   logger.With().Str("component", "commands").Logger(),
		},
	}
}

// SetPager replaces the pager, e.g. once the tea.Program exists
func (e *Executor) SetPager(p Pager) {
	e.ctx.Pager = p
}

// ExecuteFetch creates and executes a fetch command
func (e *Executor) ExecuteFetch(req domain.FetchRequest) tea.Cmd {
	return NewFetchCommand(e.ctx, req).Execute()
}

// ExecutePager creates and executes a pager command
func (e *Executor) ExecutePager(title, content string) tea.Cmd {
	return NewPagerCommand(e.ctx, title, content).Execute()
}
