// Package pattern holds the fixed-shape predicates and formatters used for form
// input: anchored regular expressions for numbers, currency, email, URLs and
// network names, plus the digit-template grammar used for phone, zip and card
// numbers.
//
// A digit template is a string where '0' stands for any digit, '9' for a nonzero
// digit, and every other character is a literal, like "(000)000-0000".
package pattern

import (
	"regexp"
	"strings"

	"github.com/lithictech/go-formsubmit/checksum"
	"github.com/lithictech/go-formsubmit/stringutil"
)

const (
	// DefaultPhoneTemplate is the North American phone shape.
	DefaultPhoneTemplate = "(000)000-0000"
	// DefaultSSNTemplate is the dashed social security number shape.
	DefaultSSNTemplate = "000-00-0000"

	DefaultZipTemplate  = "00000"
	DefaultZip4Template = "00000-0000"
)

func IsDigits(value string) bool {
	return digitsRegex.MatchString(value)
}

// IsNumber accepts an optional leading minus, optional thousands commas,
// and either an integer or a fractional part.
func IsNumber(value string) bool {
	return numberRegex.MatchString(value)
}

// IsCurrency is like IsNumber but requires exactly two fractional digits.
func IsCurrency(value string) bool {
	return currencyRegex.MatchString(value)
}

func IsEmail(value string) bool {
	return emailRegex.MatchString(value)
}

// IsURL accepts an absolute URL with any scheme.
func IsURL(value string) bool {
	return urlRegex.MatchString(value)
}

// IsHTTPURL accepts an absolute http or https URL.
func IsHTTPURL(value string) bool {
	m := urlRegex.FindStringSubmatch(value)
	if m == nil {
		return false
	}
	scheme := strings.ToLower(m[1])
	return scheme == "http" || scheme == "https"
}

// IsURLPath accepts an absolute path with optional query and fragment.
func IsURLPath(value string) bool {
	return urlPathRegex.MatchString(value)
}

func IsHostname(value string) bool {
	return len(value) <= 253 && hostnameRegex.MatchString(value)
}

// IsDomain is a hostname with at least two labels and an alphabetic top level.
func IsDomain(value string) bool {
	return len(value) <= 253 && domainRegex.MatchString(value)
}

// IsIPAddress accepts four dot-separated octets, each 0-255, without leading zeros.
func IsIPAddress(value string) bool {
	return ipv4Regex.MatchString(value)
}

// IsSSN accepts nine digits, optionally dashed as 000-00-0000.
// Numbers that are never issued (area 000, 666 or 9xx, group 00, serial 0000) fail.
func IsSSN(value string) bool {
	m := ssnRegex.FindStringSubmatch(value)
	if m == nil {
		return false
	}
	area, group, serial := m[1], m[2], m[3]
	if area == "000" || area == "666" || area[0] == '9' {
		return false
	}
	return group != "00" && serial != "0000"
}

func IsZip(value string) bool {
	return zipRegex.MatchString(value)
}

func IsZip4(value string) bool {
	return zip4Regex.MatchString(value)
}

// IsZipFull accepts either a five-digit or a ZIP+4 code.
func IsZipFull(value string) bool {
	return zipFullRegex.MatchString(value)
}

func IsCVV(value string) bool {
	return cvvRegex.MatchString(value)
}

// IsABARouting validates a nine-digit bank routing number.
func IsABARouting(value string) bool {
	return checksum.ABARouting(value)
}

// IsCreditCard accepts 8 to 19 digits passing the Luhn check.
// Digits may be grouped with single spaces or dashes in runs of at least four;
// only the final run may be shorter.
func IsCreditCard(value string) bool {
	if !cardRegex.MatchString(value) {
		return false
	}
	runs := strings.FieldsFunc(value, func(r rune) bool { return r == ' ' || r == '-' })
	for _, run := range runs[:len(runs)-1] {
		if len(run) < 4 {
			return false
		}
	}
	digits := stringutil.Digits(value)
	if len(digits) < 8 || len(digits) > 19 {
		return false
	}
	return checksum.Luhn(digits)
}

// DigitsTemplateRegexp compiles a digit template into an anchored expression.
// When relaxSeparators is set, every literal matches any run of non-digits
// (including none), so "555.123.4567" satisfies "(000)000-0000".
func DigitsTemplateRegexp(template string, relaxSeparators bool) *regexp.Regexp {
	var b strings.Builder
	b.WriteString("^")
	for _, r := range template {
		switch r {
		case '0':
			b.WriteString(`\d`)
		case '9':
			b.WriteString(`[1-9]`)
		default:
			if relaxSeparators {
				b.WriteString(`\D*?`)
			} else {
				b.WriteString(regexp.QuoteMeta(string(r)))
			}
		}
	}
	b.WriteString("$")
	return regexp.MustCompile(b.String())
}

// IsDigitsTemplate reports whether value has exactly the shape of template.
func IsDigitsTemplate(value, template string, relaxSeparators bool) bool {
	return DigitsTemplateRegexp(template, relaxSeparators).MatchString(value)
}

// FormatDigitsTemplate pours the digits of value, left to right, into the digit
// slots of template. If the digits run out, the result is truncated just before
// the first unfilled slot; surplus digits are dropped.
// An empty template or empty value yields the bare digits.
func FormatDigitsTemplate(value, template string) string {
	digits := stringutil.Digits(value)
	if template == "" || value == "" {
		return digits
	}
	out := make([]byte, 0, len(template))
	next := 0
	for i := 0; i < len(template); i++ {
		c := template[i]
		if !stringutil.IsDigit(c) {
			out = append(out, c)
			continue
		}
		if next >= len(digits) {
			break
		}
		out = append(out, digits[next])
		next++
	}
	return string(out)
}

// CountSlots returns the number of digit slots in a template.
func CountSlots(template string) int {
	return len(stringutil.Digits(template))
}
