/*
Package dom is the boundary between form validation and the host document.

Validation code never touches a concrete document model; it reads attributes
and values, writes message text, and listens for events through these
interfaces. See package htmldom for an in-memory implementation.
*/
package dom

import "strings"

type EventType string

const (
	Change   EventType = "change"
	Blur     EventType = "blur"
	Input    EventType = "input"
	KeyPress EventType = "keypress"
	Submit   EventType = "submit"
)

type Event struct {
	Type      EventType
	Target    Element
	prevented bool
}

func NewEvent(t EventType, target Element) *Event {
	return &Event{Type: t, Target: target}
}

// PreventDefault cancels the default action, like submitting a form.
func (e *Event) PreventDefault() {
	e.prevented = true
}

func (e *Event) DefaultPrevented() bool {
	return e.prevented
}

type Listener func(*Event)

// Release undoes a registration, like removing an event listener.
// Calling it more than once is harmless.
type Release func()

type Element interface {
	// Tag is the lower-case element name, like "input" or "select".
	Tag() string
	Attr(name string) (string, bool)
	SetAttr(name, value string)
	RemoveAttr(name string)
	// Value is the live value of a control.
	// For a select, it is the value of the selected option.
	Value() string
	SetValue(v string)
	Checked() bool
	// Form is the form that owns a control, or nil.
	Form() Element
	Focus()
	// QueryAll returns matching descendants in document order.
	QueryAll(selector string) []Element
	AddListener(t EventType, l Listener) Release
}

// Slot is a text display node the validator owns, like an error message.
type Slot interface {
	Text() string
	SetText(s string)
}

// SlotSpec locates a Slot.
// A slot is the element carrying Attr=Key; if there is none,
// a span with that attribute and Class is inserted right after the anchor.
type SlotSpec struct {
	Attr  string
	Key   string
	Class string
}

type Document interface {
	QueryAll(selector string) []Element
	Slot(anchor Element, spec SlotSpec) Slot
}

// AttrOr returns the attribute value, or def if it is absent or empty.
func AttrOr(el Element, name, def string) string {
	if v, ok := el.Attr(name); ok && v != "" {
		return v
	}
	return def
}

// AttrSelector builds a CSS selector matching elements whose attribute equals value.
func AttrSelector(attr, value string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return "[" + attr + `="` + r.Replace(value) + `"]`
}

// SameName returns the controls in el's form (or under el, if it has no form)
// sharing el's name attribute, including el itself.
func SameName(el Element) []Element {
	name, ok := el.Attr("name")
	if !ok || name == "" {
		return []Element{el}
	}
	scope := el.Form()
	if scope == nil {
		return []Element{el}
	}
	return scope.QueryAll(AttrSelector("name", name))
}
