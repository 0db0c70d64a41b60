package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"logscout/internal/domain"
)

// QueryField is the index of the free-text query field
const QueryField = 0

// Field is one labelled text input of the search form
type Field struct {
	Key   string // filter key, empty for the query field
	Label string
	Input textinput.Model
}

// Form holds the query field followed by one field per filter key
type Form struct {
	fields []Field
	focus  int // -1 when the results pane has focus
}

func NewForm() *Form {
	f := &Form{focus: QueryField}

	q := textinput.New()
	q.Placeholder = "search messages (regex)"
	q.Prompt = ""
	q.CharLimit = 256
	f.fields = append(f.fields, Field{Label: "Query", Input: q})

	for _, k := range domain.FilterKeys {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 256
		f.fields = append(f.fields, Field{Key: k, Label: domain.FilterLabels[k], Input: ti})
	}

	f.fields[QueryField].Input.Focus()
	return f
}

func (f *Form) Len() int {
	return len(f.fields)
}

func (f *Form) Focused() int {
	return f.focus
}

func (f *Form) Field(i int) Field {
	return f.fields[i]
}

func (f *Form) Value(i int) string {
	if i < 0 || i >= len(f.fields) {
		return ""
	}
	return f.fields[i].Input.Value()
}

// Focus moves focus to field i, or to the results pane for i < 0
func (f *Form) Focus(i int) tea.Cmd {
	if f.focus >= 0 {
		f.fields[f.focus].Input.Blur()
	}
	if i < 0 || i >= len(f.fields) {
		f.focus = -1
		return nil
	}
	f.focus = i
	return f.fields[i].Input.Focus()
}

// Blur removes focus from the form without forgetting which field had it
func (f *Form) Blur() {
	if f.focus >= 0 {
		f.fields[f.focus].Input.Blur()
	}
}

// Next returns the index after the focused one in tab order. The results
// pane (-1) sits between the last field and the first.
func (f *Form) Next(reverse bool) int {
	n := len(f.fields) + 1
	pos := f.focus + 1 // results pane maps to 0
	if reverse {
		pos = (pos - 1 + n) % n
	} else {
		pos = (pos + 1) % n
	}
	return pos - 1
}

// Update feeds msg to the focused field and reports whether its value changed
func (f *Form) Update(msg tea.Msg) (tea.Cmd, bool) {
	if f.focus < 0 {
		return nil, false
	}
	field := &f.fields[f.focus]
	before := field.Input.Value()
	var cmd tea.Cmd
	field.Input, cmd = field.Input.Update(msg)
	return cmd, field.Input.Value() != before
}

// Clear empties the focused field and reports whether it had a value
func (f *Form) Clear() bool {
	if f.focus < 0 {
		return false
	}
	field := &f.fields[f.focus]
	if field.Input.Value() == "" {
		return false
	}
	field.Input.SetValue("")
	return true
}

// SetWidths sizes the query input and the filter inputs
func (f *Form) SetWidths(query, filter int) {
	for i := range f.fields {
		w := filter
		if i == QueryField {
			w = query
		}
		f.fields[i].Input.Width = max(1, w)
	}
}
