package formsubmit

import (
	"regexp"
	"strings"

	"github.com/lithictech/go-formsubmit/catalog"
	"github.com/lithictech/go-formsubmit/dom"
	"github.com/lithictech/go-formsubmit/registry"
	"github.com/pkg/errors"
)

// Message returns el's own error message, or the fallback.
func (c *Controller) Message(el dom.Element) string {
	return dom.AttrOr(el, c.opts.Attr("error-msg"), c.opts.FallbackMessage)
}

// radioMessage is the message of whichever radio in el's set declares one.
func (c *Controller) radioMessage(el dom.Element) string {
	for _, radio := range dom.SameName(el) {
		if msg := dom.AttrOr(radio, c.opts.Attr("error-msg"), ""); msg != "" {
			return msg
		}
	}
	return c.opts.FallbackMessage
}

// Presence returns a callback that only requires a value:
// some text, a checked checkbox, or a selected radio.
func (c *Controller) Presence() registry.Callback {
	return func(v registry.Value, el dom.Element) string {
		if v.Present() {
			return ""
		}
		if v.Kind == dom.SingleChoice {
			return c.radioMessage(el)
		}
		return c.Message(el)
	}
}

// EntryCallback returns a callback that formats text values with e,
// writes the result back into the control, and validates it.
// When required is false, an empty value is valid.
// format overrides e.DefaultFormat when non-empty.
// Disabled entries return nil.
func (c *Controller) EntryCallback(e catalog.Entry, required bool, format string) registry.Callback {
	switch {
	case e.Behavior == catalog.Disabled:
		return nil
	case e.Behavior == catalog.Choice, e.Validate == nil:
		presence := c.Presence()
		if required {
			return presence
		}
		return func(registry.Value, dom.Element) string { return "" }
	}
	return func(v registry.Value, el dom.Element) string {
		if v.Kind == dom.MultiChoice {
			if v.Checked || !required {
				return ""
			}
			return c.Message(el)
		}
		if v.Kind == dom.SingleChoice && v.Missing {
			if required {
				return c.radioMessage(el)
			}
			return ""
		}
		formatted, ok := e.Check(v.Text, format)
		if v.Kind == dom.TextLike && formatted != v.Text {
			el.SetValue(formatted)
		}
		if ok || (!required && formatted == "") {
			return ""
		}
		return c.Message(el)
	}
}

// CompileRegex anchors expr so it must match a whole value.
// Any leading ^ and unescaped trailing $ in expr are dropped first.
func CompileRegex(expr string) (*regexp.Regexp, error) {
	body := trimEndAnchors(strings.TrimLeft(expr, "^"))
	re, err := regexp.Compile("^(?:" + body + ")$")
	if err != nil {
		return nil, errors.Wrap(ErrInvalidRegex, err.Error())
	}
	return re, nil
}

// trimEndAnchors drops trailing $ anchors, leaving a literal \$ in place.
func trimEndAnchors(expr string) string {
	for strings.HasSuffix(expr, "$") {
		escapes := 0
		for i := len(expr) - 2; i >= 0 && expr[i] == '\\'; i-- {
			escapes++
		}
		if escapes%2 == 1 {
			break
		}
		expr = expr[:len(expr)-1]
	}
	return expr
}

// RegexCallback requires the value to match re.
// When required is false, an empty value is valid.
func (c *Controller) RegexCallback(re *regexp.Regexp, required bool) registry.Callback {
	return func(v registry.Value, el dom.Element) string {
		if v.Text == "" && !required {
			return ""
		}
		if re.MatchString(v.Text) {
			return ""
		}
		return c.Message(el)
	}
}

// Chain runs callbacks in order and returns the first message.
// Nil callbacks are skipped. A text value is re-read between callbacks,
// so each sees whatever formatting the one before it wrote.
func Chain(cbs ...registry.Callback) registry.Callback {
	return func(v registry.Value, el dom.Element) string {
		for i, cb := range cbs {
			if cb == nil {
				continue
			}
			if i > 0 && v.Kind == dom.TextLike {
				v.Text = el.Value()
			}
			if msg := cb(v, el); msg != "" {
				return msg
			}
		}
		return ""
	}
}
