// Package kronos are civil clock and calendar helpers.
package kronos

// PivotYear splits two-digit years between centuries:
// values below it belong to the 2000s, the rest to the 1900s.
const PivotYear = 50

// Hour12 converts an hour on the 24-hour clock to the 12-hour clock,
// where midnight and noon both display as 12.
func Hour12(h24 int) int {
	h := h24 % 12
	if h == 0 {
		return 12
	}
	return h
}

// Hour24 converts an hour on the 12-hour clock to the 24-hour clock.
// Any hour is reduced mod 12 first, so 12 AM is 0 and 12 PM is 12.
func Hour24(h12 int, pm bool) int {
	h := h12 % 12
	if pm {
		h += 12
	}
	return h
}

// ExpandYear turns a two-digit year into a four-digit one around PivotYear.
// Years that already have more than two digits are returned as-is.
func ExpandYear(yy int) int {
	if yy >= 100 {
		return yy
	}
	if yy < PivotYear {
		return 2000 + yy
	}
	return 1900 + yy
}
