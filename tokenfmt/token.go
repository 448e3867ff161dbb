/*
Package tokenfmt recognizes and rewrites date and time strings described by a
small token grammar.

A format is a run of literal characters and tokens:

	m, mm      month, 1-12 (mm is zero-padded)
	d, dd      day of month, 1-31
	yy, yyyy   year, two or four digits
	H, HH      hour on the 12-hour clock
	H24, HH24  hour on the 24-hour clock
	M, MM      minute
	S, SS      second
	MS         fractional seconds, six digits

so "mm/dd/yyyy HH24:MM:SS.MS" renders as "02/29/2024 13:05:00.000000".
Token names share prefixes (m and mm, M and MS), so formats are always split
longest-match-first.

Formatting is a best-effort normalizer: Extract pulls whatever date and time
components it can find out of free-form input, and Render writes them back out
in a canonical format, stopping at the first component that was not found.
*/
package tokenfmt

import (
	"sort"
	"strings"
)

// Token is one date/time component at a specific display width.
type Token int

const (
	Month        Token = iota + 1 // m
	MonthPadded                   // mm
	Day                           // d
	DayPadded                     // dd
	YearShort                     // yy
	Year                          // yyyy
	Hour12                        // H
	Hour12Padded                  // HH
	Hour24                        // H24
	Hour24Padded                  // HH24
	Minute                        // M
	MinutePadded                  // MM
	Second                        // S
	SecondPadded                  // SS
	Fraction                      // MS
)

type component int

const (
	compMonth component = iota
	compDay
	compYear
	compHour
	compMinute
	compSecond
	compFraction
)

type tokenInfo struct {
	name    string
	pattern string
	// loose is the variant of the same component that accepts the most input;
	// extraction parses with it regardless of the width asked for.
	loose Token
	comp  component
}

var tokenTable = map[Token]tokenInfo{
	Month:        {"m", `1[0-2]|0?[1-9]`, Month, compMonth},
	MonthPadded:  {"mm", `0[1-9]|1[0-2]`, Month, compMonth},
	Day:          {"d", `[12]\d|3[01]|0?[1-9]`, Day, compDay},
	DayPadded:    {"dd", `0[1-9]|[12]\d|3[01]`, Day, compDay},
	YearShort:    {"yy", `\d\d`, YearShort, compYear},
	Year:         {"yyyy", `(?:19|20)\d\d`, Year, compYear},
	Hour12:       {"H", `1[0-2]|0?[1-9]`, Hour12, compHour},
	Hour12Padded: {"HH", `0[1-9]|1[0-2]`, Hour12, compHour},
	Hour24:       {"H24", `1\d|2[0-3]|0?\d`, Hour24, compHour},
	Hour24Padded: {"HH24", `0\d|1\d|2[0-3]`, Hour24, compHour},
	Minute:       {"M", `(?:0|[1-5])?\d`, Minute, compMinute},
	MinutePadded: {"MM", `[0-5]\d`, Minute, compMinute},
	Second:       {"S", `(?:0|[1-5])?\d`, Second, compSecond},
	SecondPadded: {"SS", `[0-5]\d`, Second, compSecond},
	Fraction:     {"MS", `\d{0,6}?`, Fraction, compFraction},
}

// byLength lists tokens longest name first, so the tokenizer never splits
// "mm" into two "m" or "MS" into "M" and a literal.
var byLength = func() []Token {
	toks := make([]Token, 0, len(tokenTable))
	for t := range tokenTable {
		toks = append(toks, t)
	}
	sort.Slice(toks, func(i, j int) bool {
		a, b := tokenTable[toks[i]].name, tokenTable[toks[j]].name
		if len(a) != len(b) {
			return len(a) > len(b)
		}
		return a < b
	})
	return toks
}()

func (t Token) String() string {
	if info, ok := tokenTable[t]; ok {
		return info.name
	}
	return "Token(?)"
}

// Pattern returns the regular expression (without a capturing group) that the token matches.
func (t Token) Pattern() string {
	return tokenTable[t].pattern
}

func (t Token) loose() Token {
	return tokenTable[t].loose
}

func (t Token) component() component {
	return tokenTable[t].comp
}

func (t Token) isDate() bool {
	c := t.component()
	return c == compMonth || c == compDay || c == compYear
}

// Segment is either a literal run of characters or a single token.
type Segment struct {
	Token   Token
	Literal string
}

func (s Segment) IsToken() bool {
	return s.Token != 0
}

func (s Segment) String() string {
	if s.IsToken() {
		return s.Token.String()
	}
	return s.Literal
}

// Tokenize splits format into literal and token segments, scanning left to right
// and taking the longest token name that matches at each position.
// Adjacent literal characters are merged into one segment.
func Tokenize(format string) []Segment {
	var segs []Segment
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			segs = append(segs, Segment{Literal: lit.String()})
			lit.Reset()
		}
	}
	for i := 0; i < len(format); {
		if t, n := matchToken(format[i:]); n > 0 {
			flush()
			segs = append(segs, Segment{Token: t})
			i += n
			continue
		}
		lit.WriteByte(format[i])
		i++
	}
	flush()
	return segs
}

func matchToken(s string) (Token, int) {
	for _, t := range byLength {
		name := tokenTable[t].name
		if strings.HasPrefix(s, name) {
			return t, len(name)
		}
	}
	return 0, 0
}

// Tokens returns only the token segments of format, in order.
func Tokens(format string) []Token {
	var toks []Token
	for _, seg := range Tokenize(format) {
		if seg.IsToken() {
			toks = append(toks, seg.Token)
		}
	}
	return toks
}
