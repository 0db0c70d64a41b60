package views

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"

	"logscout/internal/domain"
)

// RecordRenderer turns records into result pane lines
type RecordRenderer struct {
	styles *Styles
}

func NewRecordRenderer(styles *Styles) *RecordRenderer {
	return &RecordRenderer{styles: styles}
}

// Compact renders a record as one line of compact JSON
func Compact(r domain.Record) string {
	if len(r) == 0 {
		return "null"
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, r); err != nil {
		return sanitize(string(r), false)
	}
	return buf.String()
}

// Pretty renders a record as indented JSON
func Pretty(r domain.Record) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, r, "", "  "); err != nil {
		return sanitize(string(r), true)
	}
	return buf.String()
}

// sanitize makes a record that is not valid JSON safe to print: escape
// sequences and control bytes are dropped, line breaks kept only if multiline.
func sanitize(s string, multiline bool) string {
	return strings.Map(func(c rune) rune {
		switch {
		case c == '\n' || c == '\t':
			if multiline {
				return c
			}
			return ' '
		case unicode.IsControl(c):
			return -1
		}
		return c
	}, ansi.Strip(s))
}

// RenderLine renders one record, cut to width and coloured by level
func (rr *RecordRenderer) RenderLine(r domain.Record, width int) string {
	line := Compact(r)
	if width > 0 && ansi.StringWidth(line) > width {
		line = ansi.Truncate(line, width, "…")
	}
	return LevelStyle(r).Render(line)
}

// RenderLines renders the accumulated results, one line each
func (rr *RecordRenderer) RenderLines(records []domain.Record, width int) string {
	lines := make([]string, len(records))
	for i, r := range records {
		lines[i] = rr.RenderLine(r, width)
	}
	return strings.Join(lines, "\n")
}

// PagerDocument renders every record pretty-printed for the pager
func PagerDocument(identity domain.Identity, records []domain.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s  (%d records)\n\n", identity.String(), len(records))
	for i, r := range records {
		fmt.Fprintf(&b, "--- %d ---\n", i+1)
		b.WriteString(Pretty(r))
		b.WriteString("\n")
	}
	return b.String()
}
