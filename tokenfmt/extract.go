package tokenfmt

import (
	"regexp"
	"strconv"

	"github.com/lithictech/go-formsubmit/kronos"
	"github.com/lithictech/go-formsubmit/stringutil"
)

// Values holds extracted components keyed by the token (and so the width) they render as.
// After Extract, a component that was found is present at every width.
type Values map[Token]string

func (v Values) Has(t Token) bool {
	return v[t] != ""
}

const fractionWidth = 6

var (
	looseMDY = regexp.MustCompile(`\b(1[0-2]|0?[1-9])([/\\-]?)([12]\d|3[01]|0?[1-9])([/\\-]?)((?:19|20)?\d\d)\b`)
	looseYMD = regexp.MustCompile(`\b((?:19|20)?\d\d)([/\\-]?)(1[0-2]|0?[1-9])([/\\-]?)([12]\d|3[01]|0?[1-9])\b`)
	looseHMS = regexp.MustCompile(`\b(1\d|2[0-3]|0?\d)[.:]?((?:0|[1-5])?\d)(?:[.:]?((?:0|[1-5])?\d)(?:[.:]?(\d{1,6})\d*)?)?\b`)
	meridiem = regexp.MustCompile(`(?i)\d\s*([ap])\.?(?:m\.?)?(?:[^a-z]|$)`)
)

// capture is the raw text found for each component, before normalization.
type capture struct {
	month, day, year, hour, minute, second, fraction string
}

func (c *capture) set(t Token, v string) {
	switch t.component() {
	case compMonth:
		c.month = v
	case compDay:
		c.day = v
	case compYear:
		c.year = v
	case compHour:
		c.hour = v
	case compMinute:
		c.minute = v
	case compSecond:
		c.second = v
	case compFraction:
		c.fraction = v
	}
}

func (c *capture) get(t Token) string {
	switch t.component() {
	case compMonth:
		return c.month
	case compDay:
		return c.day
	case compYear:
		return c.year
	case compHour:
		return c.hour
	case compMinute:
		return c.minute
	case compSecond:
		return c.second
	default:
		return c.fraction
	}
}

func (c *capture) empty() bool {
	return *c == capture{}
}

// Extract finds date and time components in raw.
// It first tries to read raw as parseFormat, accepting any separators and any
// prefix of the format. Failing that it looks for a month/day/year date, then a
// year-month-day date, then a time after the date (or anywhere, when no date was found).
// The result is normalized: single-digit minutes borrow the hour's trailing digit,
// a minute implies a zero second, an AM/PM marker in raw moves the hour onto the
// 24-hour clock, and two-digit years are expanded around kronos.PivotYear.
// ok is false when no component could be found.
func Extract(raw, parseFormat string) (vals Values, ok bool) {
	c, ok := extractStrict(raw, parseFormat)
	if !ok {
		c, ok = extractLoose(raw)
	}
	if !ok {
		return nil, false
	}
	present, pm := findMeridiem(raw)
	return c.normalize(present, pm), true
}

func extractStrict(raw, parseFormat string) (capture, bool) {
	var c capture
	p := cachedPattern(parseFormat, CompileOptions{GeneralSeparators: true, OptionalTrailing: true}, true)
	m := p.Regexp.FindStringSubmatch(raw)
	if m == nil {
		return c, false
	}
	for i, t := range p.Tokens {
		v := m[i+1]
		if v == "" {
			break
		}
		c.set(t, v)
	}
	if c.empty() {
		return c, false
	}
	// A partial date is more likely a time read into the wrong slots,
	// so leave it to the loose matchers.
	for _, t := range p.Tokens {
		if t.isDate() && c.get(t) == "" {
			return c, false
		}
	}
	return c, true
}

func extractLoose(raw string) (capture, bool) {
	var c capture
	rest := raw
	if y, m, d, end, ok := findDate(raw); ok {
		c.year, c.month, c.day = y, m, d
		rest = raw[end:]
	}
	if t := looseHMS.FindStringSubmatch(rest); t != nil {
		c.hour, c.minute, c.second, c.fraction = t[1], t[2], t[3], t[4]
	}
	return c, !c.empty()
}

// findDate returns the first loose date in s whose two separators agree,
// trying month/day/year before year-month-day.
func findDate(s string) (year, month, day string, end int, ok bool) {
	if m := firstConsistent(looseMDY, s); m != nil {
		return s[m[10]:m[11]], s[m[2]:m[3]], s[m[6]:m[7]], m[1], true
	}
	if m := firstConsistent(looseYMD, s); m != nil {
		return s[m[2]:m[3]], s[m[6]:m[7]], s[m[10]:m[11]], m[1], true
	}
	return "", "", "", 0, false
}

func firstConsistent(re *regexp.Regexp, s string) []int {
	for _, m := range re.FindAllStringSubmatchIndex(s, -1) {
		if s[m[4]:m[5]] == s[m[8]:m[9]] {
			return m
		}
	}
	return nil
}

func findMeridiem(raw string) (present, pm bool) {
	m := meridiem.FindStringSubmatch(raw)
	if m == nil {
		return false, false
	}
	return true, m[1] == "p" || m[1] == "P"
}

func (c capture) normalize(hasMeridiem, pm bool) Values {
	if c.hour != "" && len(c.minute) == 1 {
		c.minute = c.hour[1:] + c.minute
		c.hour = c.hour[:1]
	}
	if c.minute != "" && c.second == "" {
		c.second = "0"
	}
	if c.second != "" {
		c.fraction = stringutil.PadRight(c.fraction, fractionWidth)
	}
	v := Values{}
	putNumber(v, c.month, Month, MonthPadded)
	putNumber(v, c.day, Day, DayPadded)
	putNumber(v, c.minute, Minute, MinutePadded)
	putNumber(v, c.second, Second, SecondPadded)
	if c.fraction != "" {
		v[Fraction] = c.fraction
	}
	switch len(c.year) {
	case 4:
		v[Year] = c.year
		v[YearShort] = c.year[2:]
	case 2:
		yy, _ := strconv.Atoi(c.year)
		v[Year] = strconv.Itoa(kronos.ExpandYear(yy))
		v[YearShort] = c.year
	}
	if c.hour != "" {
		h, _ := strconv.Atoi(c.hour)
		if hasMeridiem {
			h = kronos.Hour24(h, pm)
		}
		putNumber(v, strconv.Itoa(h), Hour24, Hour24Padded)
		putNumber(v, strconv.Itoa(kronos.Hour12(h)), Hour12, Hour12Padded)
	}
	return v
}

func putNumber(v Values, s string, bare, padded Token) {
	if s == "" {
		return
	}
	v[bare] = stringutil.TrimZeros(s)
	v[padded] = stringutil.PadLeft(s, 2)
}
