package formsubmit

import (
	"strconv"
	"unicode/utf8"

	"github.com/lithictech/go-formsubmit/convext"
	"github.com/lithictech/go-formsubmit/dom"
	"github.com/pkg/errors"
)

type counter struct {
	max     int
	release dom.Release
}

// AddCounter limits el to max characters, and shows "current/max" after it
// whenever it is typed in, changed, or loses focus.
// When max is not positive, the limit comes from el's count attribute,
// or its maxlength if the count is empty or "true".
// The limit is written back to the count attribute.
func (c *Controller) AddCounter(el dom.Element, max int) error {
	c.RemoveCounter(el)
	if max <= 0 {
		n, err := c.counterLimit(el)
		if err != nil {
			return err
		}
		max = n
	}
	el.SetAttr(c.opts.Attr("count"), strconv.Itoa(max))
	update := func(*dom.Event) { c.updateCounter(el) }
	c.counters[el] = &counter{
		max: max,
		release: releaseAll(
			el.AddListener(dom.Input, update),
			el.AddListener(dom.KeyPress, update),
			el.AddListener(dom.Change, update),
			el.AddListener(dom.Blur, update),
		),
	}
	c.updateCounter(el)
	return nil
}

// RemoveCounter stops counting el and clears its display.
func (c *Controller) RemoveCounter(el dom.Element) bool {
	cnt, ok := c.counters[el]
	if !ok {
		return false
	}
	cnt.release()
	delete(c.counters, el)
	c.clearSlot(c.counterSpec(el))
	return true
}

func (c *Controller) counterLimit(el dom.Element) (int, error) {
	attr := c.opts.Attr("count")
	raw, _ := el.Attr(attr)
	n, err := convext.ParseCount(raw)
	if err == nil {
		return n, nil
	}
	if !errors.Is(err, convext.ErrNoCount) {
		return 0, &ConfigError{Attr: attr, Value: raw, Err: err}
	}
	ml, ok := el.Attr("maxlength")
	if !ok {
		return 0, &ConfigError{Attr: attr, Value: raw, Err: errors.New("no count or maxlength")}
	}
	n, err = convext.ParseCount(ml)
	if err != nil {
		return 0, &ConfigError{Attr: "maxlength", Value: ml, Err: err}
	}
	return n, nil
}

func (c *Controller) updateCounter(el dom.Element) {
	cnt, ok := c.counters[el]
	if !ok {
		return
	}
	v := el.Value()
	if utf8.RuneCountInString(v) > cnt.max {
		v = string([]rune(v)[:cnt.max])
		el.SetValue(v)
	}
	text := strconv.Itoa(utf8.RuneCountInString(v)) + "/" + strconv.Itoa(cnt.max)
	c.doc.Slot(el, c.counterSpec(el)).SetText(text)
}

func (c *Controller) counterSpec(el dom.Element) dom.SlotSpec {
	return dom.SlotSpec{
		Attr:  c.opts.Attr("counter-for"),
		Key:   c.fieldKey(el),
		Class: c.opts.CounterClass,
	}
}
