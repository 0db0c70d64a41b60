package viewmodels

import (
	"logscout/internal/ui/input"
	"logscout/internal/ui/views"
)

// FormTransformer turns the search form into renderable fields
type FormTransformer struct {
	form *input.Form
}

// NewFormTransformer creates a new form transformer
func NewFormTransformer(form *input.Form) *FormTransformer {
	return &FormTransformer{form: form}
}

// Query returns the query field
func (ft *FormTransformer) Query() views.FieldView {
	return ft.field(input.QueryField)
}

// Filters returns the filter fields in form order
func (ft *FormTransformer) Filters() []views.FieldView {
	out := make([]views.FieldView, 0, ft.form.Len()-1)
	for i := input.QueryField + 1; i < ft.form.Len(); i++ {
		out = append(out, ft.field(i))
	}
	return out
}

// Resize sets the input widths for a terminal width
func (ft *FormTransformer) Resize(width int) {
	ft.form.SetWidths(views.FieldWidth(width, false), views.FieldWidth(width, true))
}

func (ft *FormTransformer) field(i int) views.FieldView {
	f := ft.form.Field(i)
	return views.FieldView{
		Label:   f.Label,
		Input:   f.Input.View(),
		Focused: ft.form.Focused() == i,
	}
}
