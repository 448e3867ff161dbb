package formsubmit

import (
	"strconv"

	"github.com/lithictech/go-formsubmit/dom"
)

// ErrorMessage evaluates el and returns its message, or "" if it is valid
// or has no callback. Like any evaluation, it may reformat el's value.
func (c *Controller) ErrorMessage(el dom.Element) string {
	msg, _ := c.reg.Evaluate(el)
	return msg
}

func (c *Controller) IsValid(el dom.Element) bool {
	return c.ErrorMessage(el) == ""
}

// DisplayError shows msg in el's error slot, creating the slot if needed.
func (c *Controller) DisplayError(el dom.Element, msg string) {
	spec := c.errorSpec(el)
	c.doc.Slot(c.errorAnchor(el), spec).SetText(msg)
}

// RemoveError clears el's error slot. It does not create one.
func (c *Controller) RemoveError(el dom.Element) {
	c.clearSlot(c.errorSpec(el))
}

func (c *Controller) clearSlot(spec dom.SlotSpec) {
	existing := c.doc.QueryAll(dom.AttrSelector(spec.Attr, spec.Key))
	if len(existing) == 0 {
		return
	}
	c.doc.Slot(existing[0], spec).SetText("")
}

func (c *Controller) errorSpec(el dom.Element) dom.SlotSpec {
	return dom.SlotSpec{
		Attr:  c.opts.Attr("error-for"),
		Key:   c.errorKey(el),
		Class: c.opts.ErrorClass,
	}
}

// errorKey is the group key, then the declared group, then the field's own key.
// Radios sharing a name share a key.
func (c *Controller) errorKey(el dom.Element) string {
	if key, ok := c.reg.GroupKey(el); ok {
		return key
	}
	if g := dom.AttrOr(el, c.opts.Attr("group"), ""); g != "" {
		return g
	}
	if dom.Classify(el) == dom.SingleChoice {
		if name := dom.AttrOr(el, "name", ""); name != "" {
			return name
		}
	}
	return c.fieldKey(el)
}

// fieldKey is el's id, then its name, then its registry identity.
func (c *Controller) fieldKey(el dom.Element) string {
	if id := dom.AttrOr(el, "id", ""); id != "" {
		return id
	}
	if name := dom.AttrOr(el, "name", ""); name != "" {
		return name
	}
	return "field-" + strconv.Itoa(int(c.reg.ID(el)))
}

// errorAnchor is the element a new error slot goes after:
// the last member of a group, or the last radio of a set.
func (c *Controller) errorAnchor(el dom.Element) dom.Element {
	if key, ok := c.reg.GroupKey(el); ok {
		if members := c.reg.Members(key); len(members) > 0 {
			return members[len(members)-1]
		}
	}
	if dom.Classify(el) == dom.SingleChoice {
		radios := dom.SameName(el)
		return radios[len(radios)-1]
	}
	return el
}
