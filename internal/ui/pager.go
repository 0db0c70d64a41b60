package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"
	"github.com/rs/zerolog"
)

// PagerOps shows documents in the ov pager while the TUI is suspended
type PagerOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
	logger  zerolog.Logger
}

// NewPagerOps creates a new pager operations instance
func NewPagerOps(program *tea.Program, logger zerolog.Logger) *PagerOps {
	return &PagerOps{
		program: program,
		logger:  logger.With().Str("component", "pager").Logger(),
	}
}

// Show displays content using the ov pager
func (p *PagerOps) Show(title, content string) error {
	if p.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		if err := p.program.RestoreTerminal(); err != nil {
			p.logger.Error().Err(err).Msg("restore terminal")
		}
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	p.logger.Debug().Str("title", title).Int("bytes", len(content)).Msg("opening pager")
	return root.Run()
}
