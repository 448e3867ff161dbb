/*
Package registry tracks which form controls have validation callbacks.

A Registry owns three maps: field identity to binding, form to the number of
registered fields it holds, and group key to members. Whoever creates a Registry
owns its lifecycle; there is no package-level state.

Registries are not safe for concurrent use. Like the document they serve,
they are driven from one event loop.
*/
package registry

import (
	"sort"
	"strconv"

	"github.com/lithictech/go-formsubmit/dom"
)

// FieldID identifies a registered control. It is cached on the element,
// so re-registering a control keeps its identity.
type FieldID int

// Value is the effective value of a control at evaluation time.
type Value struct {
	Kind dom.ControlKind
	// Text is the value of text-like and list controls,
	// and of the checked member of a single-choice group.
	Text string
	// Checked is the state of a multi-choice control.
	Checked bool
	// Missing is set for a single-choice group with nothing checked.
	Missing bool
}

// Present reports whether the user supplied anything.
func (v Value) Present() bool {
	switch v.Kind {
	case dom.MultiChoice:
		return v.Checked
	case dom.SingleChoice:
		return !v.Missing
	default:
		return v.Text != ""
	}
}

func (v Value) String() string {
	if v.Kind == dom.MultiChoice {
		return strconv.FormatBool(v.Checked)
	}
	return v.Text
}

// Callback returns "" when the control is valid, or a message describing the problem.
type Callback func(v Value, el dom.Element) string

// Hooks connect a Registry to event handling.
// Any hook may be nil.
type Hooks struct {
	// BindField starts listening for changes on a newly registered control.
	BindField func(el dom.Element) dom.Release
	// BindForm installs the submit-time check on a form.
	// It is called when the form gets its first registered field,
	// and released when it loses its last.
	BindForm func(form dom.Element) dom.Release
	// ClearError removes any message displayed for an unregistered control.
	ClearError func(el dom.Element)
}

type binding struct {
	id      FieldID
	el      dom.Element
	kind    dom.ControlKind
	form    dom.Element
	cb      Callback
	group   string
	release dom.Release
}

type formState struct {
	active  int
	release dom.Release
}

type Registry struct {
	idAttr string
	hooks  Hooks
	last   FieldID
	byID   map[FieldID]*binding
	byEl   map[dom.Element]*binding
	forms  map[dom.Element]*formState
	groups map[string][]dom.Element
}

// New returns an empty Registry.
// idAttr is the attribute field identities are cached in, like "data-form-submit-id".
func New(idAttr string, hooks Hooks) *Registry {
	r := &Registry{idAttr: idAttr, hooks: hooks}
	r.init()
	return r
}

func (r *Registry) init() {
	r.byID = make(map[FieldID]*binding)
	r.byEl = make(map[dom.Element]*binding)
	r.forms = make(map[dom.Element]*formState)
	r.groups = make(map[string][]dom.Element)
}

// ID returns el's identity, assigning one if it has none.
// An identity already on the element (from an earlier Registry, or the page author)
// is kept, and later assignments skip past it.
// An identity bound to another element, like one copied with cloned markup, is replaced.
func (r *Registry) ID(el dom.Element) FieldID {
	if s, ok := el.Attr(r.idAttr); ok {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			id := FieldID(n)
			if id > r.last {
				r.last = id
			}
			if b, taken := r.byID[id]; !taken || b.el == el {
				return id
			}
		}
	}
	r.last++
	el.SetAttr(r.idAttr, strconv.Itoa(int(r.last)))
	return r.last
}

// owner is the form a control belongs to.
// A form registered for whole-form validation owns itself.
func owner(el dom.Element) dom.Element {
	if el.Tag() == "form" {
		return el
	}
	return el.Form()
}

// Register sets el's callback, first unregistering any existing one.
func (r *Registry) Register(el dom.Element, cb Callback) FieldID {
	r.Unregister(el)
	b := &binding{
		id:   r.ID(el),
		el:   el,
		kind: dom.Classify(el),
		form: owner(el),
		cb:   cb,
	}
	if r.hooks.BindField != nil {
		b.release = r.hooks.BindField(el)
	}
	r.byID[b.id] = b
	r.byEl[el] = b
	if b.form != nil {
		fs, ok := r.forms[b.form]
		if !ok {
			fs = &formState{}
			r.forms[b.form] = fs
			if r.hooks.BindForm != nil {
				fs.release = r.hooks.BindForm(b.form)
			}
		}
		fs.active++
	}
	return b.id
}

// RegisterGroup registers cb on every element, and records them as a group
// under key. Evaluating any member runs the same callback, which is expected
// to read all the members.
func (r *Registry) RegisterGroup(key string, els []dom.Element, cb Callback) {
	r.UnregisterGroup(key)
	for _, el := range els {
		r.Register(el, cb)
		r.byEl[el].group = key
	}
	r.groups[key] = append([]dom.Element(nil), els...)
}

// Unregister removes el's callback and reports whether it had one.
func (r *Registry) Unregister(el dom.Element) bool {
	b, ok := r.byEl[el]
	if !ok {
		return false
	}
	if b.release != nil {
		b.release()
	}
	// ClearError runs while el is still registered, so it can find el's group.
	if r.hooks.ClearError != nil {
		r.hooks.ClearError(el)
	}
	delete(r.byEl, el)
	delete(r.byID, b.id)
	if b.group != "" {
		r.removeFromGroup(b.group, el)
	}
	if b.form != nil {
		if fs, ok := r.forms[b.form]; ok {
			fs.active--
			if fs.active <= 0 {
				if fs.release != nil {
					fs.release()
				}
				delete(r.forms, b.form)
			}
		}
	}
	return true
}

func (r *Registry) UnregisterGroup(key string) {
	for _, el := range append([]dom.Element(nil), r.groups[key]...) {
		r.Unregister(el)
	}
	delete(r.groups, key)
}

func (r *Registry) removeFromGroup(key string, el dom.Element) {
	members := r.groups[key]
	for i, m := range members {
		if m == el {
			members = append(members[:i:i], members[i+1:]...)
			break
		}
	}
	if len(members) == 0 {
		delete(r.groups, key)
		return
	}
	r.groups[key] = members
}

// Evaluate runs el's callback against its effective value.
// ok is false when el has no callback, which callers should treat as valid.
func (r *Registry) Evaluate(el dom.Element) (msg string, ok bool) {
	b, ok := r.byEl[el]
	if !ok {
		return "", false
	}
	return b.cb(effectiveValue(b), el), true
}

func effectiveValue(b *binding) Value {
	v := Value{Kind: b.kind}
	switch b.kind {
	case dom.SingleChoice:
		v.Missing = true
		for _, member := range dom.SameName(b.el) {
			if member.Checked() {
				v.Text = member.Value()
				v.Missing = false
				break
			}
		}
	case dom.MultiChoice:
		v.Checked = b.el.Checked()
		v.Text = b.el.Value()
	default:
		v.Text = b.el.Value()
	}
	return v
}

func (r *Registry) Registered(el dom.Element) bool {
	_, ok := r.byEl[el]
	return ok
}

// Lookup returns the element registered under id.
func (r *Registry) Lookup(id FieldID) (dom.Element, bool) {
	b, ok := r.byID[id]
	if !ok {
		return nil, false
	}
	return b.el, true
}

// Kind is the control kind decided when el was registered.
func (r *Registry) Kind(el dom.Element) (dom.ControlKind, bool) {
	b, ok := r.byEl[el]
	if !ok {
		return dom.TextLike, false
	}
	return b.kind, true
}

// GroupKey returns the group el was registered in, if any.
func (r *Registry) GroupKey(el dom.Element) (string, bool) {
	b, ok := r.byEl[el]
	if !ok || b.group == "" {
		return "", false
	}
	return b.group, true
}

func (r *Registry) Members(key string) []dom.Element {
	return append([]dom.Element(nil), r.groups[key]...)
}

// ActiveFields is the number of registered controls owned by form.
func (r *Registry) ActiveFields(form dom.Element) int {
	if fs, ok := r.forms[form]; ok {
		return fs.active
	}
	return 0
}

// Forms is the number of forms with a submit-time check installed.
func (r *Registry) Forms() int {
	return len(r.forms)
}

// Elements returns every registered control, in registration order.
func (r *Registry) Elements() []dom.Element {
	bs := make([]*binding, 0, len(r.byID))
	for _, b := range r.byID {
		bs = append(bs, b)
	}
	sort.Slice(bs, func(i, j int) bool { return bs[i].id < bs[j].id })
	els := make([]dom.Element, len(bs))
	for i, b := range bs {
		els[i] = b.el
	}
	return els
}

// Reset unregisters everything, releasing every listener and submit hook.
// Identities stay cached on their elements.
func (r *Registry) Reset() {
	for _, el := range r.Elements() {
		r.Unregister(el)
	}
	r.init()
}
