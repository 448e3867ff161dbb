package formsubmit

import (
	"context"
	"log/slog"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/lithictech/go-formsubmit/catalog"
	"github.com/lithictech/go-formsubmit/dom"
	"github.com/lithictech/go-formsubmit/logctx"
	"github.com/lithictech/go-formsubmit/registry"
	"github.com/lithictech/go-formsubmit/stopwatch"
	"github.com/pkg/errors"
)

// Bootstrap registers callbacks and counters for every control in the document
// carrying declarative attributes (shown with the default prefix):
//
//   - data-form-submit-required="<kind>": the control must hold a valid value of kind.
//     An unknown kind only requires a value, "radio" requires one radio of the set
//     to be checked, and "false" turns validation off.
//   - data-form-submit-optional="<kind>": like required, but an empty value is valid.
//     Unknown and choice kinds are configuration errors.
//   - data-form-submit-format: replaces the kind's default format or template.
//   - data-form-submit-regex: the value must match, after any kind formatting.
//   - data-form-submit-error-msg: the message shown when the control is invalid.
//   - data-form-submit-group: controls with the same group share one error slot.
//   - data-form-submit-count: a counter limit, or empty or "true" to use maxlength.
//
// Controls also get the kind's placeholder if they have none.
//
// Every unusable attribute is logged and returned as a *ConfigError
// inside a *multierror.Error. Bootstrap carries on past them,
// but callers should stop if IsFatal(err).
// Calling Bootstrap again re-reads the document, replacing earlier registrations.
func (c *Controller) Bootstrap(ctx context.Context) error {
	ctx = logctx.WithTracingLogger(logctx.WithTraceId(c.contextFor(ctx), logctx.BootstrapTraceIdKey))
	logger := logctx.Logger(ctx)
	sw := stopwatch.Start(ctx, logger, "bootstrap")
	b := &bootstrap{
		c:      c,
		ctx:    ctx,
		logger: logger,
		checks: make(map[dom.Element][]registry.Callback),
	}
	b.readKinds(c.opts.Attr("required"), true)
	b.readKinds(c.opts.Attr("optional"), false)
	b.readRegexes()
	registered := b.register()
	counters := b.readCounters()
	invalid := 0
	if b.result != nil {
		invalid = len(b.result.Errors)
	}
	sw.FinishWith(stopwatch.FinishOpts{Fields: []any{
		"registered", registered,
		"counters", counters,
		"invalid_attributes", invalid,
	}})
	return b.result.ErrorOrNil()
}

type bootstrap struct {
	c      *Controller
	ctx    context.Context
	logger *slog.Logger
	result *multierror.Error
	// order keeps registration in document order.
	order  []dom.Element
	checks map[dom.Element][]registry.Callback
}

func (b *bootstrap) fail(el dom.Element, attr, value string, err error) {
	cerr := &ConfigError{Attr: attr, Value: value, Err: err}
	b.logger.WarnContext(b.ctx, "invalid_form_attribute",
		"field", b.c.fieldKey(el),
		"attribute", attr,
		"value", value,
		"error", err.Error(),
	)
	b.result = multierror.Append(b.result, cerr)
}

func (b *bootstrap) add(el dom.Element, cb registry.Callback) {
	if _, ok := b.checks[el]; !ok {
		b.order = append(b.order, el)
	}
	b.checks[el] = append(b.checks[el], cb)
}

func (b *bootstrap) declared(el dom.Element, name string) (string, bool) {
	v, ok := el.Attr(b.c.opts.Attr(name))
	return strings.ToLower(strings.TrimSpace(v)), ok && strings.TrimSpace(v) != ""
}

func (b *bootstrap) readKinds(attr string, required bool) {
	for _, el := range b.c.doc.QueryAll("[" + attr + "]") {
		raw, _ := el.Attr(attr)
		kind := strings.ToLower(strings.TrimSpace(raw))
		if kind == "" {
			continue
		}
		if !required {
			if _, ok := b.declared(el, "required"); ok {
				b.fail(el, attr, raw, errors.New("field is already required"))
				continue
			}
		}
		e, ok := b.c.catalog.Lookup(kind)
		if !ok {
			if !required {
				b.fail(el, attr, raw, errors.New("unknown kind"))
				continue
			}
			b.logger.DebugContext(b.ctx, "unknown_kind_requires_presence", "field", b.c.fieldKey(el), "kind", kind)
			b.add(el, b.c.Presence())
			continue
		}
		if e.Behavior == catalog.Choice {
			if !required {
				b.fail(el, attr, raw, errors.New("choice kinds cannot be optional"))
				continue
			}
			for _, radio := range dom.SameName(el) {
				b.add(radio, b.c.Presence())
			}
			continue
		}
		if !required && e.Validate == nil && e.Behavior != catalog.Disabled {
			b.fail(el, attr, raw, errors.New("presence kinds cannot be optional"))
			continue
		}
		format := dom.AttrOr(el, b.c.opts.Attr("format"), "")
		cb := b.c.EntryCallback(e, required, format)
		if cb == nil {
			continue
		}
		if _, ok := el.Attr("placeholder"); !ok && e.Placeholder != "" && dom.Classify(el) == dom.TextLike {
			placeholder := e.Placeholder
			if format != "" && placeholder == e.DefaultFormat {
				placeholder = format
			}
			el.SetAttr("placeholder", placeholder)
		}
		b.add(el, cb)
	}
}

func (b *bootstrap) readRegexes() {
	attr := b.c.opts.Attr("regex")
	for _, el := range b.c.doc.QueryAll("[" + attr + "]") {
		raw, _ := el.Attr(attr)
		re, err := CompileRegex(raw)
		if err != nil {
			b.fail(el, attr, raw, err)
			continue
		}
		_, optional := b.declared(el, "optional")
		b.add(el, b.c.RegexCallback(re, !optional))
	}
}

func (b *bootstrap) register() int {
	for _, el := range b.order {
		cbs := b.checks[el]
		if len(cbs) == 1 {
			b.c.reg.Register(el, cbs[0])
		} else {
			b.c.reg.Register(el, Chain(cbs...))
		}
	}
	return len(b.order)
}

func (b *bootstrap) readCounters() int {
	attr := b.c.opts.Attr("count")
	n := 0
	for _, el := range b.c.doc.QueryAll("[" + attr + "]") {
		if err := b.c.AddCounter(el, 0); err != nil {
			var cerr *ConfigError
			if errors.As(err, &cerr) {
				b.fail(el, cerr.Attr, cerr.Value, cerr.Err)
			} else {
				raw, _ := el.Attr(attr)
				b.fail(el, attr, raw, err)
			}
			continue
		}
		n++
	}
	return n
}
