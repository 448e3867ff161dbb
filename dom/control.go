package dom

import "strings"

// ControlKind says how a control's value is read.
// It is decided once, when a control is registered.
type ControlKind int

const (
	// TextLike controls have free text values: inputs, textareas, and the like.
	TextLike ControlKind = iota
	// SingleChoice is a radio button; its value comes from whichever member
	// of its group is checked.
	SingleChoice
	// MultiChoice is a checkbox; its value is its checked state.
	MultiChoice
	// ListChoice is a select; its value is the selected option's.
	ListChoice
)

func (k ControlKind) String() string {
	switch k {
	case SingleChoice:
		return "single-choice"
	case MultiChoice:
		return "multi-choice"
	case ListChoice:
		return "list-choice"
	default:
		return "text"
	}
}

func Classify(el Element) ControlKind {
	switch el.Tag() {
	case "select":
		return ListChoice
	case "input":
		t, _ := el.Attr("type")
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "radio":
			return SingleChoice
		case "checkbox":
			return MultiChoice
		}
	}
	return TextLike
}
