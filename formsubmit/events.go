package formsubmit

import (
	"context"

	"github.com/hashicorp/go-multierror"
	"github.com/lithictech/go-formsubmit/convext"
	"github.com/lithictech/go-formsubmit/dom"
	"github.com/lithictech/go-formsubmit/logctx"
	"github.com/lithictech/go-formsubmit/stopwatch"
)

func releaseAll(rs ...dom.Release) dom.Release {
	return func() {
		for _, r := range rs {
			r()
		}
	}
}

// bindField listens for changes to a control.
// Whole-form callbacks only run on submit.
func (c *Controller) bindField(el dom.Element) dom.Release {
	if el.Tag() == "form" {
		return nil
	}
	return releaseAll(
		el.AddListener(dom.Change, c.onFieldEvent),
		el.AddListener(dom.Blur, c.onFieldEvent),
	)
}

func (c *Controller) bindForm(form dom.Element) dom.Release {
	return form.AddListener(dom.Submit, c.onSubmit)
}

func (c *Controller) onFieldEvent(ev *dom.Event) {
	c.refresh(ev.Target)
}

// refresh evaluates el and shows or clears its message.
func (c *Controller) refresh(el dom.Element) string {
	msg := c.ErrorMessage(el)
	if msg == "" {
		c.RemoveError(el)
	} else {
		c.DisplayError(el, msg)
	}
	return msg
}

func (c *Controller) onSubmit(ev *dom.Event) {
	form := ev.Target
	ctx := logctx.WithTracingLogger(logctx.WithTraceId(c.ctx, logctx.SubmitTraceIdKey))
	if convext.AttrBool(form.Attr(c.opts.Attr("always-allow"))) {
		logctx.Logger(ctx).DebugContext(ctx, "submit_always_allowed", "form", c.fieldKey(form))
		return
	}
	if err := c.validateForm(ctx, form); err != nil {
		ev.PreventDefault()
	}
}

// ValidateForm does what submitting form does, apart from the always-allow check:
// it evaluates every named control in form and then form itself,
// shows every message, and focuses the first invalid control.
// The result is nil, or a *multierror.Error of *FieldError.
func (c *Controller) ValidateForm(ctx context.Context, form dom.Element) error {
	ctx = logctx.WithTracingLogger(logctx.WithTraceId(c.contextFor(ctx), logctx.SubmitTraceIdKey))
	return c.validateForm(ctx, form)
}

func (c *Controller) validateForm(ctx context.Context, form dom.Element) error {
	ctx, logger := logctx.AddToR(ctx, "form", c.fieldKey(form))
	sw := stopwatch.Start(ctx, logger, "validate_form")
	var result *multierror.Error
	checked := 0
	check := func(el dom.Element) {
		if !c.reg.Registered(el) {
			return
		}
		checked++
		msg := c.refresh(el)
		if msg == "" {
			return
		}
		if result == nil {
			el.Focus()
		}
		fe := &FieldError{Field: el, Key: c.errorKey(el), Message: msg}
		logger.DebugContext(ctx, "field_invalid", "field", fe.Key, "message", msg)
		result = multierror.Append(result, fe)
	}
	for _, el := range form.QueryAll("[name]") {
		check(el)
	}
	check(form)
	invalid := 0
	if result != nil {
		invalid = len(result.Errors)
	}
	sw.FinishWith(stopwatch.FinishOpts{Fields: []any{"checked", checked, "invalid", invalid}})
	return result.ErrorOrNil()
}
