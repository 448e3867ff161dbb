package tokenfmt

import (
	"regexp"
	"strings"
	"sync"
)

type CompileOptions struct {
	// GeneralSeparators replaces every literal with a run of any non-digits,
	// so "mm/dd/yyyy" also accepts "02-29-2024" and "02 29 2024".
	GeneralSeparators bool
	// OptionalTrailing makes each token, and everything after it, optional,
	// so a prefix of the format still matches.
	OptionalTrailing bool
}

// Pattern is a compiled format.
// Capture group i+1 of Regexp holds the value of Tokens[i].
type Pattern struct {
	Regexp *regexp.Regexp
	Tokens []Token
}

// Compile builds an anchored pattern for format.
// The whole input must match, apart from leading and trailing non-digits.
func Compile(format string, opts CompileOptions) *Pattern {
	return CompileSegments(Tokenize(format), opts)
}

func CompileSegments(segs []Segment, opts CompileOptions) *Pattern {
	var b strings.Builder
	toks := make([]Token, 0, len(segs))
	b.WriteString(`^\D*`)
	open := 0
	for _, seg := range segs {
		if !seg.IsToken() {
			if opts.GeneralSeparators {
				b.WriteString(`\D*`)
			} else {
				b.WriteString(regexp.QuoteMeta(seg.Literal))
			}
			continue
		}
		if opts.OptionalTrailing {
			b.WriteString("(?:")
			open++
		}
		b.WriteString("(")
		b.WriteString(seg.Token.Pattern())
		b.WriteString(")")
		toks = append(toks, seg.Token)
	}
	b.WriteString(strings.Repeat(")?", open))
	b.WriteString(`\D*$`)
	return &Pattern{Regexp: regexp.MustCompile(b.String()), Tokens: toks}
}

type cacheKey struct {
	format string
	opts   CompileOptions
	widen  bool
}

var patternCache sync.Map

func cachedPattern(format string, opts CompileOptions, widen bool) *Pattern {
	key := cacheKey{format, opts, widen}
	if p, ok := patternCache.Load(key); ok {
		return p.(*Pattern)
	}
	segs := Tokenize(format)
	if widen {
		for i, seg := range segs {
			if seg.IsToken() {
				segs[i].Token = seg.Token.loose()
			}
		}
	}
	p, _ := patternCache.LoadOrStore(key, CompileSegments(segs, opts))
	return p.(*Pattern)
}

// Matches reports whether value is written exactly in format.
// Each token must appear at its own width; literals must match verbatim
// unless generalSeparators is set.
func Matches(value, format string, generalSeparators bool) bool {
	return cachedPattern(format, CompileOptions{GeneralSeparators: generalSeparators}, false).Regexp.MatchString(value)
}
