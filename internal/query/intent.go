package query

// Intent is a user action the coordinator consumes
type Intent interface {
	Type() string
}

// TermChanged carries a new free-text term
type TermChanged struct {
	Text string
}

func (TermChanged) Type() string { return "TermChanged" }

// FilterChanged carries a new value for one named filter
type FilterChanged struct {
	Name  string
	Value string
}

func (FilterChanged) Type() string { return "FilterChanged" }

// SubmitPressed is the submit control being activated
type SubmitPressed struct{}

func (SubmitPressed) Type() string { return "SubmitPressed" }

// EnterPressed is the Enter key in the query field
type EnterPressed struct{}

func (EnterPressed) Type() string { return "EnterPressed" }

// ScrollNearEnd fires when the result list is scrolled close to its end
type ScrollNearEnd struct{}

func (ScrollNearEnd) Type() string { return "ScrollNearEnd" }

// Trigger is the fetch-relevant reading of an intent
type Trigger int

const (
	TriggerNone Trigger = iota
	TriggerSubmit
	TriggerScrollNearEnd
)

func (t Trigger) String() string {
	switch t {
	case TriggerSubmit:
		return "submit"
	case TriggerScrollNearEnd:
		return "scroll"
	default:
		return "none"
	}
}

// TriggerOf maps an intent to the fetch trigger it stands for
func TriggerOf(i Intent) Trigger {
	switch i.(type) {
	case SubmitPressed, EnterPressed:
		return TriggerSubmit
	case ScrollNearEnd:
		return TriggerScrollNearEnd
	default:
		return TriggerNone
	}
}

// NearEnd reports whether the remaining scrollable distance is below threshold
func NearEnd(contentHeight, viewportHeight, offset, threshold int) bool {
	return contentHeight-viewportHeight-offset < threshold
}
