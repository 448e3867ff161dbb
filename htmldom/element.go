package htmldom

import (
	"strings"

	"github.com/lithictech/go-formsubmit/dom"
	"golang.org/x/net/html"
)

type Element struct {
	doc *Document
	n   *html.Node
}

var _ dom.Element = &Element{}

func (e *Element) Node() *html.Node {
	return e.n
}

func (e *Element) Tag() string {
	return strings.ToLower(e.n.Data)
}

func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func (e *Element) SetAttr(name, value string) {
	for i, a := range e.n.Attr {
		if a.Namespace == "" && a.Key == name {
			e.n.Attr[i].Val = value
			return
		}
	}
	e.n.Attr = append(e.n.Attr, html.Attribute{Key: name, Val: value})
}

func (e *Element) RemoveAttr(name string) {
	attrs := e.n.Attr[:0]
	for _, a := range e.n.Attr {
		if a.Namespace != "" || a.Key != name {
			attrs = append(attrs, a)
		}
	}
	e.n.Attr = attrs
}

func (e *Element) Value() string {
	switch e.Tag() {
	case "textarea":
		return e.Text()
	case "select":
		if opt := e.selected(); opt != nil {
			return opt.optionValue()
		}
		return ""
	case "option":
		return e.optionValue()
	}
	v, _ := e.Attr("value")
	return v
}

func (e *Element) SetValue(v string) {
	switch e.Tag() {
	case "textarea":
		e.SetText(v)
	case "select":
		for _, opt := range e.options() {
			if opt.optionValue() == v {
				opt.SetAttr("selected", "")
			} else {
				opt.RemoveAttr("selected")
			}
		}
	default:
		e.SetAttr("value", v)
	}
}

func (e *Element) options() []*Element {
	els, _ := e.doc.selectUnder(e.n, "option")
	return els
}

func (e *Element) selected() *Element {
	opts := e.options()
	for _, o := range opts {
		if _, ok := o.Attr("selected"); ok {
			return o
		}
	}
	if len(opts) > 0 {
		return opts[0]
	}
	return nil
}

func (e *Element) optionValue() string {
	if v, ok := e.Attr("value"); ok {
		return v
	}
	return strings.TrimSpace(e.Text())
}

func (e *Element) Checked() bool {
	_, ok := e.Attr("checked")
	return ok
}

// SetChecked checks or unchecks a radio or checkbox.
// Checking a radio unchecks the others sharing its name.
func (e *Element) SetChecked(checked bool) {
	if !checked {
		e.RemoveAttr("checked")
		return
	}
	if dom.Classify(e) == dom.SingleChoice {
		for _, other := range dom.SameName(e) {
			other.RemoveAttr("checked")
		}
	}
	e.SetAttr("checked", "")
}

func (e *Element) Form() dom.Element {
	for p := e.n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && p.Data == "form" {
			return e.doc.wrap(p)
		}
	}
	return nil
}

func (e *Element) Focus() {
	e.doc.focused = e.n
}

func (e *Element) QueryAll(selector string) []dom.Element {
	els, _ := e.doc.selectUnder(e.n, selector)
	return asDOM(els)
}

func (e *Element) AddListener(t dom.EventType, l dom.Listener) dom.Release {
	d := e.doc
	d.nextID++
	id := d.nextID
	d.listeners[e.n] = append(d.listeners[e.n], listenerEntry{id: id, t: t, l: l})
	return func() {
		entries := d.listeners[e.n]
		for i, le := range entries {
			if le.id == id {
				d.listeners[e.n] = append(entries[:i:i], entries[i+1:]...)
				break
			}
		}
		if len(d.listeners[e.n]) == 0 {
			delete(d.listeners, e.n)
		}
	}
}

// Text is the concatenated text content of the element.
func (e *Element) Text() string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(e.n)
	return b.String()
}

// SetText replaces the element's children with a single text node.
func (e *Element) SetText(s string) {
	for c := e.n.FirstChild; c != nil; {
		next := c.NextSibling
		e.n.RemoveChild(c)
		c = next
	}
	if s != "" {
		e.n.AppendChild(&html.Node{Type: html.TextNode, Data: s})
	}
}
