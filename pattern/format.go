package pattern

import (
	"strconv"
	"strings"

	"github.com/lithictech/go-formsubmit/stringutil"
)

// FormatNumber normalizes free-form numeric input: digits and the first decimal
// point are kept, everything else is dropped, a minus sign anywhere makes the
// result negative, and thousands separators are inserted.
func FormatNumber(value string) string {
	var b strings.Builder
	if strings.Contains(value, "-") {
		b.WriteByte('-')
	}
	sawPoint := false
	for i := 0; i < len(value); i++ {
		c := value[i]
		switch {
		case stringutil.IsDigit(c):
			b.WriteByte(c)
		case c == '.' && !sawPoint:
			sawPoint = true
			b.WriteByte(c)
		}
	}
	return addCommas(b.String())
}

// FormatCurrency formats like FormatNumber, then fixes two decimal places.
// Input that does not survive as a number is returned in its FormatNumber form.
func FormatCurrency(value string) string {
	n := FormatNumber(value)
	if n == "" {
		return n
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(n, ",", ""), 64)
	if err != nil {
		return n
	}
	return addCommas(strconv.FormatFloat(f, 'f', 2, 64))
}

// addCommas groups the integer digits of a number string by thousands.
func addCommas(num string) string {
	intPart, frac, hasPoint := strings.Cut(num, ".")
	sign := ""
	if strings.HasPrefix(intPart, "-") {
		sign, intPart = "-", intPart[1:]
	}
	if len(intPart) > 3 {
		var b strings.Builder
		lead := len(intPart) % 3
		if lead > 0 {
			b.WriteString(intPart[:lead])
		}
		for i := lead; i < len(intPart); i += 3 {
			if b.Len() > 0 {
				b.WriteByte(',')
			}
			b.WriteString(intPart[i : i+3])
		}
		intPart = b.String()
	}
	if hasPoint {
		return sign + intPart + "." + frac
	}
	return sign + intPart
}
