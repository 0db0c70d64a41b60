package input

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	Form    *Form
	Results int
	Busy    bool
}

func (c *ModelContext) FocusedField() int {
	if c.Form == nil {
		return -1
	}
	return c.Form.Focused()
}

func (c *ModelContext) FieldCount() int {
	if c.Form == nil {
		return 0
	}
	return c.Form.Len()
}

func (c *ModelContext) HasResults() bool {
	return c.Results > 0
}

func (c *ModelContext) Pending() bool {
	return c.Busy
}
