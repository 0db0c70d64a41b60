package commands

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"logscout/internal/domain"
	"logscout/internal/search"
)

// Command represents an executable action
type Command interface {
	Execute() tea.Cmd
}

// Pager shows a document while the TUI is suspended
type Pager interface {
	Show(title, content string) error
}

// CommandContext provides context for command execution
type CommandContext struct {
	Ctx      context.Context
	Searcher search.Searcher
	Pager    Pager
	Logger   zerolog.Logger
}

// FetchResultMsg carries the outcome of one search request back to Update
type FetchResultMsg struct {
	Request  domain.FetchRequest
	Response domain.FetchResponse
	Err      error
	Elapsed  time.Duration
}

// PagerClosedMsg is sent when the pager exits
type PagerClosedMsg struct {
	Title string
	Err   error
}

// FetchCommand sends one search request
type FetchCommand struct {
	ctx *CommandContext
	req domain.FetchRequest
}

// NewFetchCommand creates a new fetch command
func NewFetchCommand(ctx *CommandContext, req domain.FetchRequest) *FetchCommand {
	return &FetchCommand{ctx: ctx, req: req}
}

// Execute returns a tea.Cmd performing the request off the update loop
func (c *FetchCommand) Execute() tea.Cmd {
	sctx := c.ctx
	req := c.req
	return func() tea.Msg {
		ctx := sctx.Ctx
		if ctx == nil {
			ctx = context.Background()
		}
		start := time.Now()
		resp, err := sctx.Searcher.Search(ctx, req)
		elapsed := time.Since(start)
		if err != nil {
			sctx.Logger.Error().Err(err).Uint64("seq", req.Seq).Int("page", req.Page).
				Str("identity", req.Identity.String()).Msg("search request failed")
		} else {
			sctx.Logger.Debug().Uint64("seq", req.Seq).Int("page", req.Page).
				Int("records", len(resp.Records)).Dur("elapsed", elapsed).Msg("search request done")
		}
		return FetchResultMsg{Request: req, Response: resp, Err: err, Elapsed: elapsed}
	}
}

// PagerCommand opens a document in the pager
type PagerCommand struct {
	ctx     *CommandContext
	title   string
	content string
}

// NewPagerCommand creates a new pager command
func NewPagerCommand(ctx *CommandContext, title, content string) *PagerCommand {
	return &PagerCommand{ctx: ctx, title: title, content: content}
}

// Execute runs the pager and reports when it closes
func (c *PagerCommand) Execute() tea.Cmd {
	pager := c.ctx.Pager
	title, content := c.title, c.content
	return func() tea.Msg {
		if pager == nil {
			return PagerClosedMsg{Title: title, Err: ErrNoPager}
		}
		return PagerClosedMsg{Title: title, Err: pager.Show(title, content)}
	}
}
