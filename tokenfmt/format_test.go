package tokenfmt_test

import (
	"fmt"

	"github.com/lithictech/go-formsubmit/quiz"
	"github.com/lithictech/go-formsubmit/tokenfmt"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const (
	timestamp = "mm/dd/yyyy HH24:MM:SS.MS"
	usDate    = "mm/dd/yyyy"
	isoDate   = "yyyy-mm-dd"
	clock     = "HH24:MM"
)

var _ = Describe("Extract", func() {
	It("populates every width of each component it finds", func() {
		vals, ok := tokenfmt.Extract("2/9/2024 3:07:08.5", timestamp)
		Expect(ok).To(BeTrue())
		Expect(vals).To(Equal(tokenfmt.Values{
			tokenfmt.Month:        "2",
			tokenfmt.MonthPadded:  "02",
			tokenfmt.Day:          "9",
			tokenfmt.DayPadded:    "09",
			tokenfmt.Year:         "2024",
			tokenfmt.YearShort:    "24",
			tokenfmt.Hour24:       "3",
			tokenfmt.Hour24Padded: "03",
			tokenfmt.Hour12:       "3",
			tokenfmt.Hour12Padded: "03",
			tokenfmt.Minute:       "7",
			tokenfmt.MinutePadded: "07",
			tokenfmt.Second:       "8",
			tokenfmt.SecondPadded: "08",
			tokenfmt.Fraction:     "500000",
		}))
	})

	It("fails when nothing looks like a date or time", func() {
		_, ok := tokenfmt.Extract("hello", timestamp)
		Expect(ok).To(BeFalse())
	})

	It("defaults seconds once a minute is found", func() {
		vals, ok := tokenfmt.Extract("10:30", clock)
		Expect(ok).To(BeTrue())
		Expect(vals[tokenfmt.SecondPadded]).To(Equal("00"))
		Expect(vals[tokenfmt.Fraction]).To(Equal("000000"))
	})

	It("gives the trailing hour digit to a single-digit minute", func() {
		vals, ok := tokenfmt.Extract("130", clock)
		Expect(ok).To(BeTrue())
		Expect(vals[tokenfmt.Hour24Padded]).To(Equal("01"))
		Expect(vals[tokenfmt.MinutePadded]).To(Equal("30"))
	})

	It("requires both date separators to agree", func() {
		vals, ok := tokenfmt.Extract("1/2-24", clock)
		Expect(ok).To(BeTrue())
		Expect(vals.Has(tokenfmt.Month)).To(BeFalse())
		Expect(vals.Has(tokenfmt.Year)).To(BeFalse())

		vals, ok = tokenfmt.Extract("1-2-24", clock)
		Expect(ok).To(BeTrue())
		Expect(vals[tokenfmt.Month]).To(Equal("1"))
		Expect(vals[tokenfmt.Day]).To(Equal("2"))
		Expect(vals[tokenfmt.Year]).To(Equal("2024"))
		Expect(vals.Has(tokenfmt.Hour24)).To(BeFalse())
	})

	It("looks for a time only after the date", func() {
		vals, ok := tokenfmt.Extract("on 2024-02-29 at 9:45", clock)
		Expect(ok).To(BeTrue())
		Expect(vals[tokenfmt.Year]).To(Equal("2024"))
		Expect(vals[tokenfmt.Hour24Padded]).To(Equal("09"))
		Expect(vals[tokenfmt.MinutePadded]).To(Equal("45"))
	})
})

var _ = Describe("Format", func() {
	DescribeTable("normalizes into the same format",
		func(value, format, expected string) {
			Expect(tokenfmt.Format(value, format, format)).To(Equal(expected))
		},
		Entry("pads a one-digit minute and moves a pm hour to the 24-hour clock", "2/29/2024 1:5 pm", timestamp, "02/29/2024 13:05:00.000000"),
		Entry("am hour stays", "12/25/2024 10:30 am", timestamp, "12/25/2024 10:30:00.000000"),
		Entry("12 am is midnight", "12/25/2024 12:15 am", timestamp, "12/25/2024 00:15:00.000000"),
		Entry("12 pm is noon", "12/25/2024 12:15 PM", timestamp, "12/25/2024 12:15:00.000000"),
		Entry("dotted marker", "10:30 p.m.", clock, "22:30"),
		Entry("a word starting with a is not a marker", "10:30 April", clock, "10:30"),
		Entry("pads the date", "2/9/2024", usDate, "02/09/2024"),
		Entry("expands a two-digit year below the pivot", "1/2/49", usDate, "01/02/2049"),
		Entry("expands a two-digit year at the pivot", "1/2/50", usDate, "01/02/1950"),
		Entry("leap day with a short year", "2/29/24", usDate, "02/29/2024"),
		Entry("iso date", "2024-2-29", isoDate, "2024-02-29"),
		Entry("us date into iso", "2/29/2024", isoDate, "2024-02-29"),
		Entry("time alone", "3:15", clock, "03:15"),
		Entry("compact time", "1030", clock, "10:30"),
		Entry("time alone is not a partial date", "3:15", timestamp, "3:15"),
		Entry("keeps the separator before the first missing token", "2/29/2024", timestamp, "02/29/2024 "),
		Entry("junk is left alone", "soon", usDate, "soon"),
		Entry("empty stays empty", "", usDate, ""),
	)

	DescribeTable("renders hours on both clocks",
		func(value, expected string) {
			Expect(tokenfmt.Format(value, "mm/dd/yyyy HH24:MM", "m/d/yy H:MM HH24")).To(Equal(expected))
		},
		Entry("midnight", "1/2/2024 0:30", "1/2/24 12:30 00"),
		Entry("noon", "1/2/2024 12:00", "1/2/24 12:00 12"),
		Entry("last hour", "1/2/2024 23:15", "1/2/24 11:15 23"),
	)

	It("is idempotent", func() {
		for _, v := range []string{"2/29/2024 1:5 pm", "12/25/24 10:30", "2024-2-29", "3:15", "1030", "soon"} {
			for _, f := range []string{timestamp, usDate, isoDate, clock} {
				once := tokenfmt.Format(v, f, f)
				Expect(tokenfmt.Format(once, f, f)).To(Equal(once), "%q in %q", v, f)
			}
		}
	})

	It("leaves canonical timestamps unchanged", func() {
		for i := 0; i < 200; i++ {
			v := fmt.Sprintf("%02d/%02d/%04d %02d:%02d:%02d.%s",
				quiz.Between(1, 12), quiz.Between(1, 28), quiz.Between(1950, 2049),
				quiz.Between(0, 23), quiz.Between(0, 59), quiz.Between(0, 59), quiz.Digits(6))
			Expect(tokenfmt.Format(v, timestamp, timestamp)).To(Equal(v), "seed %d", quiz.Seed)
			Expect(tokenfmt.Matches(v, timestamp, false)).To(BeTrue())
		}
	})
})

var _ = Describe("Render", func() {
	It("returns the original when nothing renders", func() {
		Expect(tokenfmt.Render(tokenfmt.Values{}, usDate, "orig")).To(Equal("orig"))
	})

	It("stops at the first missing token", func() {
		vals := tokenfmt.Values{tokenfmt.Year: "2024", tokenfmt.DayPadded: "09"}
		Expect(tokenfmt.Render(vals, isoDate, "x")).To(Equal("2024-"))
	})
})
