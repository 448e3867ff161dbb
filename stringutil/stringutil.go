// Package stringutil holds small string helpers shared by the validators and the
// format-token engine.
package stringutil

import "strings"

// Map applies f to each string in in.
func Map(in []string, f func(string) string) []string {
	res := make([]string, 0, len(in))
	for _, s := range in {
		res = append(res, f(s))
	}
	return res
}

// Contains returns true if in contains element,
// false if not.
func Contains(in []string, element string) bool {
	for _, a := range in {
		if a == element {
			return true
		}
	}
	return false
}

// Digits returns only the ASCII digits of s, in order.
func Digits(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if IsDigit(s[i]) {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// IsDigit reports whether c is an ASCII digit.
func IsDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// TrimZeros strips leading zeros from a digit string,
// always leaving at least one digit ("007" -> "7", "00" -> "0").
func TrimZeros(s string) string {
	t := strings.TrimLeft(s, "0")
	if t == "" && s != "" {
		return "0"
	}
	return t
}

// PadLeft left-pads s with zeros to width, then keeps the rightmost width characters,
// so PadLeft("7", 2) is "07" and PadLeft("123", 2) is "23".
func PadLeft(s string, width int) string {
	if len(s) < width {
		s = strings.Repeat("0", width-len(s)) + s
	}
	return s[len(s)-width:]
}

// PadRight right-pads s with zeros and truncates it to exactly width characters.
func PadRight(s string, width int) string {
	if len(s) < width {
		s += strings.Repeat("0", width-len(s))
	}
	return s[:width]
}

// FirstNonEmpty returns the first argument that is not the empty string.
func FirstNonEmpty(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}
	return ""
}
