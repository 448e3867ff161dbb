/*
Package formsubmit validates and formats form controls.

A Controller ties a registry.Registry to a dom.Document:

  - Controls with a callback are evaluated when they change or lose focus,
    and their message is shown (or cleared) in an error slot next to them.
  - Submitting a form evaluates every named control in it, in document order,
    plus the form itself if it has a whole-form callback.
    The first invalid control gets focus, every message is shown,
    and the submission is cancelled.
  - Counters truncate a control's text to its limit and show "current/max".

Callbacks can be added directly (AddValidation and friends),
or read from declarative attributes with Bootstrap:

	<input data-form-submit-required="phone">
	<input data-form-submit-optional="date-mmddyyyy" data-form-submit-format="yyyy-mm-dd">
	<input data-form-submit-regex="[a-z]+" data-form-submit-error-msg="Lower case only">
	<textarea data-form-submit-count="140"></textarea>
	<form data-form-submit-always-allow>

Controllers are not safe for concurrent use.
*/
package formsubmit

import (
	"context"
	"log/slog"

	"github.com/lithictech/go-formsubmit/catalog"
	"github.com/lithictech/go-formsubmit/config"
	"github.com/lithictech/go-formsubmit/dom"
	"github.com/lithictech/go-formsubmit/logctx"
	"github.com/lithictech/go-formsubmit/registry"
	"github.com/pkg/errors"
)

type Config struct {
	Document dom.Document
	// Options default to config.Defaults for every empty setting.
	Options config.Options
	// Catalog defaults to catalog.New.
	// Options.Formats are applied on top of it either way.
	Catalog *catalog.Catalog
	// Logger is used for anything not done under a caller's context.
	// Defaults to logctx.UnconfiguredLogger.
	Logger *slog.Logger
}

type Controller struct {
	ctx      context.Context
	doc      dom.Document
	opts     config.Options
	catalog  *catalog.Catalog
	reg      *registry.Registry
	counters map[dom.Element]*counter
}

func New(cfg Config) (*Controller, error) {
	if cfg.Document == nil {
		return nil, errors.New("formsubmit: Document is required")
	}
	opts := cfg.Options.OrDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	cat := cfg.Catalog
	if cat == nil {
		cat = catalog.New()
	}
	cat, err := cat.WithFormats(opts.Formats)
	if err != nil {
		return nil, errors.Wrap(err, "formsubmit")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logctx.UnconfiguredLogger()
	}
	c := &Controller{
		ctx:      logctx.WithLogger(context.Background(), logger),
		doc:      cfg.Document,
		opts:     opts,
		catalog:  cat,
		counters: make(map[dom.Element]*counter),
	}
	c.reg = registry.New(opts.Attr("id"), registry.Hooks{
		BindField:  c.bindField,
		BindForm:   c.bindForm,
		ClearError: c.RemoveError,
	})
	return c, nil
}

func (c *Controller) Registry() *registry.Registry {
	return c.reg
}

func (c *Controller) Catalog() *catalog.Catalog {
	return c.catalog
}

func (c *Controller) Options() config.Options {
	return c.opts
}

func (c *Controller) logger() *slog.Logger {
	return logctx.Logger(c.ctx)
}

// contextFor makes sure ctx carries a logger, borrowing the controller's if not.
func (c *Controller) contextFor(ctx context.Context) context.Context {
	if ctx == nil {
		return c.ctx
	}
	if logctx.LoggerOrNil(ctx) == nil {
		return logctx.WithLogger(ctx, c.logger())
	}
	return ctx
}

// AddValidation registers cb on every element matching selector,
// and returns the elements.
func (c *Controller) AddValidation(selector string, cb registry.Callback) []dom.Element {
	els := c.doc.QueryAll(selector)
	for _, el := range els {
		c.reg.Register(el, cb)
	}
	return els
}

func (c *Controller) AddValidationElement(el dom.Element, cb registry.Callback) {
	c.reg.Register(el, cb)
}

// RemoveValidation unregisters every element matching selector,
// clearing any message shown for them.
func (c *Controller) RemoveValidation(selector string) {
	for _, el := range c.doc.QueryAll(selector) {
		c.reg.Unregister(el)
	}
}

func (c *Controller) RemoveValidationElement(el dom.Element) bool {
	return c.reg.Unregister(el)
}

// AddRadioValidation registers cb on every radio button sharing el's name.
func (c *Controller) AddRadioValidation(el dom.Element, cb registry.Callback) {
	for _, radio := range dom.SameName(el) {
		c.reg.Register(radio, cb)
	}
}

func (c *Controller) RemoveRadioValidation(el dom.Element) {
	for _, radio := range dom.SameName(el) {
		c.reg.Unregister(radio)
	}
}

// AddGroupValidation registers cb on every element in els.
// The members share one error slot, keyed by key, shown after the last member.
// cb receives the member that triggered it, and reads its siblings itself.
func (c *Controller) AddGroupValidation(key string, els []dom.Element, cb registry.Callback) {
	c.reg.RegisterGroup(key, els, cb)
}

func (c *Controller) RemoveGroupValidation(key string) {
	c.reg.UnregisterGroup(key)
}

// AddFormValidation registers a whole-form callback, run after every field on submit.
func (c *Controller) AddFormValidation(form dom.Element, cb registry.Callback) error {
	if form.Tag() != "form" {
		return errors.Errorf("formsubmit: cannot add form validation to <%s>", form.Tag())
	}
	c.reg.Register(form, cb)
	return nil
}

// Unload removes every callback, listener and counter the controller added,
// and clears their messages.
func (c *Controller) Unload() {
	c.reg.Reset()
	for el := range c.counters {
		c.RemoveCounter(el)
	}
}
