package tokenfmt

import "strings"

// Render writes values out in renderFormat.
// Output stops just before the first token with no value, so a missing time
// never leaves dangling separators behind. If nothing at all could be written,
// original is returned unchanged.
func Render(values Values, renderFormat, original string) string {
	var b strings.Builder
	for _, seg := range Tokenize(renderFormat) {
		if !seg.IsToken() {
			b.WriteString(seg.Literal)
			continue
		}
		v := values[seg.Token]
		if v == "" {
			break
		}
		b.WriteString(v)
	}
	if b.Len() == 0 {
		return original
	}
	return b.String()
}

// Format rewrites value from parseFormat into renderFormat.
// Input with no recognizable components is returned as-is.
func Format(value, parseFormat, renderFormat string) string {
	if value == "" {
		return ""
	}
	vals, ok := Extract(value, parseFormat)
	if !ok {
		return value
	}
	return Render(vals, renderFormat, value)
}
