package formsubmit_test

import (
	"context"

	"github.com/hashicorp/go-multierror"
	"github.com/lithictech/go-formsubmit/config"
	"github.com/lithictech/go-formsubmit/dom"
	"github.com/lithictech/go-formsubmit/formsubmit"
	"github.com/lithictech/go-formsubmit/htmldom"
	"github.com/lithictech/go-formsubmit/logctx"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/rgalanakis/golangal"
)

const kindsPage = `<html><body><form id="k">
<input id="phone" name="phone" data-form-submit-required="phone" value="555 123 4567">
<input id="ph2" name="ph2" data-form-submit-required="phone" data-form-submit-format="000-000-0000" placeholder="Call me" value="5551234567">
<input id="when" name="when" data-form-submit-optional="date-mmddyyyy" value="">
<input id="ymd" name="ymd" data-form-submit-required="date-mmddyyyy" data-form-submit-format="yyyy-mm-dd" value="2/29/2024">
<input id="stamp" name="stamp" data-form-submit-required="timestamp" value="2/29/2024 1:5 pm">
<input id="red" type="radio" name="color" value="red" data-form-submit-required="radio" data-form-submit-error-msg="Pick a color">
<input id="blue" type="radio" name="color" value="blue">
<input id="agree" type="checkbox" name="agree" data-form-submit-required="true">
<input id="nick" name="nick" data-form-submit-required="Favorite-Thing">
<input id="off" name="off" data-form-submit-required="false">
<input id="zip" name="zip" data-form-submit-required="zip" data-form-submit-regex="^9\d+$" value="90 210">
<input id="code" name="code" data-form-submit-optional="digits" data-form-submit-regex="\d{3}" value="">
<input id="card" name="card" data-form-submit-required="credit-card" value="4111111111111111">
</form></body></html>`

var _ = Describe("Bootstrap", func() {
	var doc *htmldom.Document
	var c *formsubmit.Controller
	var hook *logctx.Hook

	el := func(sel string) *htmldom.Element { return doc.MustFind(sel) }
	attr := func(sel, name string) string {
		v, _ := el(sel).Attr(name)
		return v
	}

	Describe("with valid attributes", func() {
		BeforeEach(func() {
			doc = htmldom.MustParse(kindsPage)
			c, hook = newController(doc, config.Options{})
			Expect(c.Bootstrap(context.Background())).To(Succeed())
		})

		It("formats and validates catalog kinds", func() {
			Expect(c.ErrorMessage(el("#phone"))).To(Equal(""))
			Expect(el("#phone").Value()).To(Equal("(555)123-4567"))
			Expect(c.ErrorMessage(el("#ph2"))).To(Equal(""))
			Expect(el("#ph2").Value()).To(Equal("555-123-4567"))
			Expect(c.ErrorMessage(el("#ymd"))).To(Equal(""))
			Expect(el("#ymd").Value()).To(Equal("2024-02-29"))
			Expect(c.ErrorMessage(el("#card"))).To(Equal(""))
			Expect(el("#card").Value()).To(Equal("4111 1111 1111 1111"))
		})

		It("merges a single-digit minute into the hour of a timestamp", func() {
			Expect(c.ErrorMessage(el("#stamp"))).To(Equal(""))
			Expect(el("#stamp").Value()).To(Equal("02/29/2024 13:05:00.000000"))
		})

		It("seeds placeholders the field does not have", func() {
			Expect(attr("#phone", "placeholder")).To(Equal("(000)000-0000"))
			Expect(attr("#ph2", "placeholder")).To(Equal("Call me"))
			Expect(attr("#when", "placeholder")).To(Equal("mm/dd/yyyy"))
			Expect(attr("#ymd", "placeholder")).To(Equal("yyyy-mm-dd"))
			_, ok := el("#agree").Attr("placeholder")
			Expect(ok).To(BeFalse())
		})

		It("accepts an empty optional field but not a bad one", func() {
			Expect(c.ErrorMessage(el("#when"))).To(Equal(""))
			el("#when").SetValue("hello")
			Expect(c.ErrorMessage(el("#when"))).To(Equal("Invalid input"))
			el("#when").SetValue("1/2/49")
			Expect(c.ErrorMessage(el("#when"))).To(Equal(""))
			Expect(el("#when").Value()).To(Equal("01/02/2049"))
		})

		It("requires one radio of a set, with the message any of them declares", func() {
			Expect(c.ErrorMessage(el("#blue"))).To(Equal("Pick a color"))
			Expect(c.ErrorMessage(el("#red"))).To(Equal("Pick a color"))
			el("#blue").SetChecked(true)
			Expect(c.IsValid(el("#red"))).To(BeTrue())
		})

		It("requires presence for true and unknown kinds", func() {
			Expect(c.ErrorMessage(el("#agree"))).To(Equal("Invalid input"))
			el("#agree").SetChecked(true)
			Expect(c.IsValid(el("#agree"))).To(BeTrue())

			Expect(c.ErrorMessage(el("#nick"))).To(Equal("Invalid input"))
			el("#nick").SetValue("Bob")
			Expect(c.IsValid(el("#nick"))).To(BeTrue())
			Expect(hook.Messages()).To(ContainElement("unknown_kind_requires_presence"))
		})

		It("does not register explicitly disabled fields", func() {
			Expect(c.Registry().Registered(el("#off"))).To(BeFalse())
		})

		It("checks a regex against the formatted value", func() {
			Expect(c.ErrorMessage(el("#zip"))).To(Equal(""))
			Expect(el("#zip").Value()).To(Equal("90210"))
			el("#zip").SetValue("10210")
			Expect(c.ErrorMessage(el("#zip"))).To(Equal("Invalid input"))
		})

		It("skips the regex of an empty optional field", func() {
			Expect(c.ErrorMessage(el("#code"))).To(Equal(""))
			el("#code").SetValue("12")
			Expect(c.ErrorMessage(el("#code"))).To(Equal("Invalid input"))
			el("#code").SetValue("123")
			Expect(c.ErrorMessage(el("#code"))).To(Equal(""))
		})

		It("logs under a bootstrap trace", func() {
			rec := findRecord(hook, "bootstrap_finished")
			Expect(rec).ToNot(BeNil())
			Expect(rec.AttrMap()).To(HaveKey("bootstrap_trace_id"))
			Expect(rec.AttrMap()).To(HaveKeyWithValue("invalid_attributes", int64(0)))
		})

		It("can run again without doubling up listeners", func() {
			before := doc.ListenerCount(el("#phone"))
			Expect(c.Bootstrap(context.Background())).To(Succeed())
			Expect(doc.ListenerCount(el("#phone"))).To(Equal(before))
			Expect(doc.ListenerCount(el("#k"))).To(Equal(1))
		})
	})

	It("uses format overrides from options", func() {
		doc = htmldom.MustParse(`<form><input id="t" name="t" data-form-submit-required="time" value="13:05"></form>`)
		c, hook = newController(doc, config.Options{Formats: map[string]string{"time": "H:MM"}})
		Expect(c.Bootstrap(context.Background())).To(Succeed())
		Expect(c.ErrorMessage(el("#t"))).To(Equal(""))
		Expect(el("#t").Value()).To(Equal("1:05"))
	})

	It("reads attributes under a custom prefix", func() {
		doc = htmldom.MustParse(`<form id="f" data-v-always-allow><input id="z" name="z" data-v-required="zip"></form>`)
		c, hook = newController(doc, config.Options{AttributePrefix: "data-v"})
		Expect(c.Bootstrap(context.Background())).To(Succeed())
		Expect(c.ErrorMessage(el("#z"))).To(Equal("Invalid input"))
		Expect(doc.Dispatch(el("#f"), dom.Submit)).To(BeTrue())
		_, ok := el("#z").Attr("data-v-id")
		Expect(ok).To(BeTrue())
	})

	Describe("with invalid attributes", func() {
		BeforeEach(func() {
			doc = htmldom.MustParse(`<form>
<input id="o1" name="o1" data-form-submit-optional="favorite-thing">
<input id="o2" type="radio" name="o2" data-form-submit-optional="radio">
<input id="o3" name="o3" data-form-submit-optional="true">
<input id="both" name="both" data-form-submit-required="zip" data-form-submit-optional="phone">
<input id="n" name="n" data-form-submit-count="many">
</form>`)
			c, hook = newController(doc, config.Options{})
		})

		It("reports each one, and carries on", func() {
			err := c.Bootstrap(context.Background())
			Expect(err).To(HaveOccurred())
			Expect(formsubmit.IsFatal(err)).To(BeFalse())
			Expect(err).To(MatchError(ContainSubstring(`data-form-submit-optional="favorite-thing": unknown kind`)))
			Expect(err).To(MatchError(ContainSubstring("choice kinds cannot be optional")))
			Expect(err).To(MatchError(ContainSubstring("presence kinds cannot be optional")))
			Expect(err).To(MatchError(ContainSubstring("field is already required")))
			Expect(err).To(MatchError(ContainSubstring(`data-form-submit-count="many"`)))
			Expect(c.Registry().Registered(el("#both"))).To(BeTrue())
			Expect(c.Registry().Registered(el("#o1"))).To(BeFalse())
		})

		It("returns the attribute and value of each", func() {
			err := c.Bootstrap(context.Background())
			merr, ok := err.(*multierror.Error)
			Expect(ok).To(BeTrue())
			var cerrs []formsubmit.ConfigError
			for _, e := range merr.Errors {
				cerr, ok := e.(*formsubmit.ConfigError)
				Expect(ok).To(BeTrue())
				cerrs = append(cerrs, *cerr)
			}
			Expect(cerrs).To(HaveLen(5))
			Expect(cerrs).To(ContainElement(And(
				MatchField("Attr", "data-form-submit-optional"),
				MatchField("Value", "favorite-thing"),
			)))
			Expect(cerrs).To(ContainElement(And(
				MatchField("Attr", "data-form-submit-optional"),
				MatchField("Value", "phone"),
			)))
			Expect(cerrs).To(ContainElement(And(
				MatchField("Attr", "data-form-submit-count"),
				MatchField("Value", "many"),
			)))
		})

		It("logs a warning for each", func() {
			_ = c.Bootstrap(context.Background())
			warnings := 0
			for _, r := range hook.Records() {
				if r.Record.Message == "invalid_form_attribute" {
					warnings++
					Expect(r.AttrMap()).To(HaveKey("bootstrap_trace_id"))
				}
			}
			Expect(warnings).To(Equal(5))
		})
	})

	It("treats a malformed regex as fatal", func() {
		doc = htmldom.MustParse(`<form><input id="r" name="r" data-form-submit-regex="(abc"></form>`)
		c, hook = newController(doc, config.Options{})
		err := c.Bootstrap(context.Background())
		Expect(err).To(MatchError(ContainSubstring("invalid regex")))
		Expect(formsubmit.IsFatal(err)).To(BeTrue())
		Expect(c.Registry().Registered(el("#r"))).To(BeFalse())
		rec := findRecord(hook, "invalid_form_attribute")
		Expect(rec).ToNot(BeNil())
		Expect(rec.AttrMap()).To(HaveKeyWithValue("attribute", "data-form-submit-regex"))
	})
})

var _ = Describe("CompileRegex", func() {
	It("anchors the whole expression", func() {
		re, err := formsubmit.CompileRegex("^a|b$")
		Expect(err).ToNot(HaveOccurred())
		Expect(re.MatchString("a")).To(BeTrue())
		Expect(re.MatchString("b")).To(BeTrue())
		Expect(re.MatchString("ab")).To(BeFalse())
		Expect(re.MatchString("xa")).To(BeFalse())
	})

	It("keeps an escaped trailing dollar sign", func() {
		re, err := formsubmit.CompileRegex(`^\d+\$$`)
		Expect(err).ToNot(HaveOccurred())
		Expect(re.MatchString("12$")).To(BeTrue())
		Expect(re.MatchString("12")).To(BeFalse())
		re, err = formsubmit.CompileRegex(`\d+\$`)
		Expect(err).ToNot(HaveOccurred())
		Expect(re.MatchString("12$")).To(BeTrue())
		re, err = formsubmit.CompileRegex(`a\\$`)
		Expect(err).ToNot(HaveOccurred())
		Expect(re.MatchString(`a\`)).To(BeTrue())
	})

	It("wraps compile errors", func() {
		_, err := formsubmit.CompileRegex("[")
		Expect(formsubmit.IsFatal(err)).To(BeTrue())
	})
})
