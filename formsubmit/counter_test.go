package formsubmit_test

import (
	"context"

	"github.com/lithictech/go-formsubmit/config"
	"github.com/lithictech/go-formsubmit/dom"
	"github.com/lithictech/go-formsubmit/formsubmit"
	"github.com/lithictech/go-formsubmit/htmldom"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("counters", func() {
	var doc *htmldom.Document
	var c *formsubmit.Controller

	el := func(sel string) *htmldom.Element { return doc.MustFind(sel) }
	counterText := func(key string) string {
		return slotText(doc, "data-form-submit-counter-for", key)
	}

	BeforeEach(func() {
		doc = htmldom.MustParse(`<form>
<textarea id="bio" name="bio" data-form-submit-count="5">hello world</textarea>
<input id="tweet" name="tweet" maxlength="3" data-form-submit-count>
<input id="note" name="note" value="héllo wörld">
<input id="bare" name="bare">
</form>`)
		c, _ = newController(doc, config.Options{})
	})

	It("truncates to the limit and shows the count right away", func() {
		Expect(c.Bootstrap(context.Background())).To(Succeed())
		Expect(el("#bio").Value()).To(Equal("hello"))
		Expect(counterText("bio")).To(Equal("5/5"))
	})

	It("updates as the field is typed in", func() {
		Expect(c.Bootstrap(context.Background())).To(Succeed())
		el("#bio").SetValue("hi")
		doc.Dispatch(el("#bio"), dom.Input)
		Expect(counterText("bio")).To(Equal("2/5"))
		el("#bio").SetValue("abcdefgh")
		doc.Dispatch(el("#bio"), dom.KeyPress)
		Expect(counterText("bio")).To(Equal("5/5"))
		Expect(el("#bio").Value()).To(Equal("abcde"))
	})

	It("falls back to maxlength and records the limit", func() {
		Expect(c.Bootstrap(context.Background())).To(Succeed())
		Expect(counterText("tweet")).To(Equal("0/3"))
		v, _ := el("#tweet").Attr("data-form-submit-count")
		Expect(v).To(Equal("3"))
	})

	It("counts characters rather than bytes", func() {
		Expect(c.AddCounter(el("#note"), 5)).To(Succeed())
		Expect(el("#note").Value()).To(Equal("héllo"))
		Expect(counterText("note")).To(Equal("5/5"))
	})

	It("errors when there is no limit to use", func() {
		err := c.AddCounter(el("#bare"), 0)
		Expect(err).To(MatchError(ContainSubstring("no count or maxlength")))
		Expect(doc.ListenerCount(el("#bare"))).To(Equal(0))
	})

	It("stops counting when removed", func() {
		Expect(c.AddCounter(el("#bare"), 10)).To(Succeed())
		Expect(doc.ListenerCount(el("#bare"))).To(Equal(4))
		Expect(counterText("bare")).To(Equal("0/10"))
		Expect(c.RemoveCounter(el("#bare"))).To(BeTrue())
		Expect(counterText("bare")).To(Equal(""))
		Expect(doc.ListenerCount(el("#bare"))).To(Equal(0))
		Expect(c.RemoveCounter(el("#bare"))).To(BeFalse())
	})

	It("replaces an earlier counter on the same field", func() {
		Expect(c.AddCounter(el("#bare"), 10)).To(Succeed())
		Expect(c.AddCounter(el("#bare"), 20)).To(Succeed())
		Expect(doc.ListenerCount(el("#bare"))).To(Equal(4))
		Expect(counterText("bare")).To(Equal("0/20"))
	})
})
