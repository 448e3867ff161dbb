/*
Package htmldom is an in-memory dom.Document over a parsed HTML page.

Events are dispatched synchronously to listeners on the target element only;
they do not bubble. Values live in attributes (or, for textareas, in the text
content), so rendering the document shows the current state of every control.
*/
package htmldom

import (
	"bytes"
	"io"
	"strings"
	"sync"

	"github.com/andybalholm/cascadia"
	"github.com/lithictech/go-formsubmit/dom"
	"github.com/pkg/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type listenerEntry struct {
	id int
	t  dom.EventType
	l  dom.Listener
}

type Document struct {
	root      *html.Node
	elements  map[*html.Node]*Element
	listeners map[*html.Node][]listenerEntry
	focused   *html.Node
	nextID    int
}

var _ dom.Document = &Document{}

func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, errors.Wrap(err, "parsing html")
	}
	return &Document{
		root:      root,
		elements:  make(map[*html.Node]*Element),
		listeners: make(map[*html.Node][]listenerEntry),
	}, nil
}

func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// MustParse is ParseString for fixtures.
func MustParse(s string) *Document {
	d, err := ParseString(s)
	if err != nil {
		panic(err)
	}
	return d
}

var selectors sync.Map

// Compile parses a CSS selector, caching the result.
func Compile(selector string) (cascadia.Selector, error) {
	if s, ok := selectors.Load(selector); ok {
		return s.(cascadia.Selector), nil
	}
	s, err := cascadia.Compile(selector)
	if err != nil {
		return nil, errors.Wrapf(err, "selector %q", selector)
	}
	selectors.Store(selector, s)
	return s, nil
}

// Select returns every element under the document matching selector.
func (d *Document) Select(selector string) ([]*Element, error) {
	return d.selectUnder(d.root, selector)
}

// Find returns the first element matching selector.
func (d *Document) Find(selector string) (*Element, error) {
	els, err := d.Select(selector)
	if err != nil {
		return nil, err
	}
	if len(els) == 0 {
		return nil, errors.Errorf("no element matches %q", selector)
	}
	return els[0], nil
}

// MustFind is Find for fixtures.
func (d *Document) MustFind(selector string) *Element {
	el, err := d.Find(selector)
	if err != nil {
		panic(err)
	}
	return el
}

func (d *Document) selectUnder(n *html.Node, selector string) ([]*Element, error) {
	sel, err := Compile(selector)
	if err != nil {
		return nil, err
	}
	var res []*Element
	for _, m := range sel.MatchAll(n) {
		if m != n {
			res = append(res, d.wrap(m))
		}
	}
	return res, nil
}

// QueryAll is Select with invalid selectors matching nothing.
func (d *Document) QueryAll(selector string) []dom.Element {
	els, _ := d.Select(selector)
	return asDOM(els)
}

func asDOM(els []*Element) []dom.Element {
	res := make([]dom.Element, len(els))
	for i, e := range els {
		res[i] = e
	}
	return res
}

func (d *Document) wrap(n *html.Node) *Element {
	if n == nil {
		return nil
	}
	if e, ok := d.elements[n]; ok {
		return e
	}
	e := &Element{doc: d, n: n}
	d.elements[n] = e
	return e
}

func (d *Document) Slot(anchor dom.Element, spec dom.SlotSpec) dom.Slot {
	if els := d.QueryAll(dom.AttrSelector(spec.Attr, spec.Key)); len(els) > 0 {
		return slot{els[0].(*Element)}
	}
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     "span",
		DataAtom: atom.Span,
		Attr: []html.Attribute{
			{Key: "class", Val: spec.Class},
			{Key: spec.Attr, Val: spec.Key},
		},
	}
	if a, ok := anchor.(*Element); ok && a.n.Parent != nil {
		a.n.Parent.InsertBefore(n, a.n.NextSibling)
	}
	return slot{d.wrap(n)}
}

// Dispatch delivers an event to el's listeners, in the order they were added,
// and reports whether the default action should proceed.
func (d *Document) Dispatch(el dom.Element, t dom.EventType) bool {
	e := el.(*Element)
	ev := dom.NewEvent(t, el)
	entries := append([]listenerEntry(nil), d.listeners[e.n]...)
	for _, le := range entries {
		if le.t == t {
			le.l(ev)
		}
	}
	return !ev.DefaultPrevented()
}

// ListenerCount returns how many listeners el has, for asserting on cleanup.
func (d *Document) ListenerCount(el dom.Element) int {
	return len(d.listeners[el.(*Element).n])
}

// Focused returns the element that last received focus, or nil.
func (d *Document) Focused() *Element {
	if d.focused == nil {
		return nil
	}
	return d.wrap(d.focused)
}

func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

func (d *Document) String() string {
	buf := bytes.NewBuffer(nil)
	_ = d.Render(buf)
	return buf.String()
}

type slot struct {
	el *Element
}

func (s slot) Text() string {
	return s.el.Text()
}

func (s slot) SetText(t string) {
	s.el.SetText(t)
}
