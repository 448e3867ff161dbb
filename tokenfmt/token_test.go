package tokenfmt_test

import (
	"github.com/lithictech/go-formsubmit/tokenfmt"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func segmentStrings(format string) []string {
	var res []string
	for _, s := range tokenfmt.Tokenize(format) {
		res = append(res, s.String())
	}
	return res
}

var _ = Describe("Tokenize", func() {
	It("splits a timestamp format", func() {
		Expect(segmentStrings("mm/dd/yyyy HH24:MM:SS.MS")).To(Equal([]string{
			"mm", "/", "dd", "/", "yyyy", " ", "HH24", ":", "MM", ":", "SS", ".", "MS",
		}))
	})

	It("marks which segments are tokens", func() {
		segs := tokenfmt.Tokenize("HH24:MM")
		Expect(segs).To(HaveLen(3))
		Expect(segs[0].Token).To(Equal(tokenfmt.Hour24Padded))
		Expect(segs[1].IsToken()).To(BeFalse())
		Expect(segs[1].Literal).To(Equal(":"))
		Expect(segs[2].Token).To(Equal(tokenfmt.MinutePadded))
	})

	DescribeTable("takes the longest token name at each position",
		func(format string, expected []string) {
			Expect(segmentStrings(format)).To(Equal(expected))
		},
		Entry("MM then S", "MMS", []string{"MM", "S"}),
		Entry("MS is a single token", "MS", []string{"MS"}),
		Entry("three ys", "yyy", []string{"yy", "y"}),
		Entry("H without 24", "H2", []string{"H", "2"}),
		Entry("single letters", "d-m", []string{"d", "-", "m"}),
		Entry("merges literals", "at: H", []string{"at: ", "H"}),
	)

	It("lists only tokens", func() {
		Expect(tokenfmt.Tokens("yyyy-mm-dd")).To(Equal([]tokenfmt.Token{
			tokenfmt.Year, tokenfmt.MonthPadded, tokenfmt.DayPadded,
		}))
	})
})

var _ = Describe("Compile", func() {
	It("escapes literals and anchors the pattern", func() {
		p := tokenfmt.Compile("mm/dd", tokenfmt.CompileOptions{})
		Expect(p.Regexp.String()).To(Equal(`^\D*(0[1-9]|1[0-2])/(0[1-9]|[12]\d|3[01])\D*$`))
		Expect(p.Tokens).To(Equal([]tokenfmt.Token{tokenfmt.MonthPadded, tokenfmt.DayPadded}))
	})

	It("can accept any separators", func() {
		p := tokenfmt.Compile("mm.dd", tokenfmt.CompileOptions{GeneralSeparators: true})
		Expect(p.Regexp.String()).To(Equal(`^\D*(0[1-9]|1[0-2])\D*(0[1-9]|[12]\d|3[01])\D*$`))
	})

	It("can make trailing tokens optional", func() {
		p := tokenfmt.Compile("mm/dd", tokenfmt.CompileOptions{OptionalTrailing: true})
		Expect(p.Regexp.String()).To(Equal(`^\D*(?:(0[1-9]|1[0-2])/(?:(0[1-9]|[12]\d|3[01]))?)?\D*$`))
		Expect(p.Regexp.MatchString("02/")).To(BeTrue())
		Expect(p.Regexp.MatchString("02/29")).To(BeTrue())
		Expect(p.Regexp.MatchString("02-29")).To(BeFalse())
	})
})

var _ = Describe("Matches", func() {
	const timestamp = "mm/dd/yyyy HH24:MM:SS.MS"

	DescribeTable("checks exact widths",
		func(value, format string, general, expected bool) {
			Expect(tokenfmt.Matches(value, format, general)).To(Equal(expected))
		},
		Entry("padded date", "02/29/2024", "mm/dd/yyyy", false, true),
		Entry("unpadded month", "2/29/2024", "mm/dd/yyyy", false, false),
		Entry("other separators", "02-29-2024", "mm/dd/yyyy", false, false),
		Entry("other separators when general", "02-29-2024", "mm/dd/yyyy", true, true),
		Entry("iso date", "2024-02-29", "yyyy-mm-dd", false, true),
		Entry("time", "13:05", "HH24:MM", false, true),
		Entry("hour out of range", "24:00", "HH24:MM", false, false),
		Entry("minute out of range", "13:60", "HH24:MM", false, false),
		Entry("full timestamp", "12/25/2024 10:30:00.000000", timestamp, false, true),
		Entry("too many fraction digits", "12/25/2024 10:30:00.1234567", timestamp, false, false),
		Entry("missing time", "12/25/2024", timestamp, false, false),
		Entry("surrounding non-digits", "on 02/29/2024.", "mm/dd/yyyy", false, true),
	)
})
