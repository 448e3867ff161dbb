/*
Package catalog maps field kinds, like "phone" or "timestamp",
to the functions that validate and normalize them.

Most kinds pair a formatter with a validator: the formatter rewrites what the
user typed into canonical form, and the validator checks the rewritten value.
Both receive the same format string, which is the entry's DefaultFormat unless
the field supplies its own.
*/
package catalog

import (
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/lithictech/go-formsubmit/pattern"
	"github.com/lithictech/go-formsubmit/stringutil"
	"github.com/lithictech/go-formsubmit/tokenfmt"
)

type Validator func(value, format string) bool

type Formatter func(value, format string) string

// Behavior distinguishes the kinds that do not validate a text value.
type Behavior int

const (
	// Checked kinds run Validate (or require a non-empty value when Validate is nil).
	Checked Behavior = iota
	// Choice kinds are satisfied when any option in a single-choice group is selected.
	Choice
	// Disabled kinds explicitly turn validation off.
	Disabled
)

type Entry struct {
	Kind          string
	Behavior      Behavior
	Validate      Validator
	Format        Formatter
	DefaultFormat string
	Placeholder   string
}

// Check formats value and validates the result.
// format overrides DefaultFormat when non-empty.
// A nil Validate means any non-empty value is acceptable.
func (e Entry) Check(value, format string) (formatted string, ok bool) {
	format = stringutil.FirstNonEmpty(format, e.DefaultFormat)
	formatted = value
	if e.Format != nil {
		formatted = e.Format(value, format)
	}
	if e.Validate == nil {
		return formatted, formatted != ""
	}
	return formatted, e.Validate(formatted, format)
}

// Catalog is an immutable set of entries keyed by lower-case kind.
type Catalog struct {
	entries map[string]Entry
}

// New returns a catalog of the built-in kinds.
// Entries in extra are added, replacing any built-in of the same kind.
func New(extra ...Entry) *Catalog {
	c := &Catalog{entries: make(map[string]Entry, len(builtins)+len(extra))}
	for _, e := range builtins {
		c.entries[e.Kind] = e
	}
	for _, e := range extra {
		e.Kind = strings.ToLower(e.Kind)
		c.entries[e.Kind] = e
	}
	return c
}

// Lookup finds the entry for kind, ignoring case and surrounding space.
func (c *Catalog) Lookup(kind string) (Entry, bool) {
	e, ok := c.entries[strings.ToLower(strings.TrimSpace(kind))]
	return e, ok
}

// WithFormats returns a copy of c with the DefaultFormat of each named kind replaced.
// A placeholder that showed the old format shows the new one.
func (c *Catalog) WithFormats(formats map[string]string) (*Catalog, error) {
	extra := make([]Entry, 0, len(formats))
	for kind, format := range formats {
		e, ok := c.Lookup(kind)
		if !ok {
			return nil, errors.Errorf("no kind %q to set format %q on", kind, format)
		}
		if e.Placeholder == e.DefaultFormat {
			e.Placeholder = format
		}
		e.DefaultFormat = format
		extra = append(extra, e)
	}
	out := &Catalog{entries: make(map[string]Entry, len(c.entries))}
	for k, e := range c.entries {
		out.entries[k] = e
	}
	for _, e := range extra {
		out.entries[e.Kind] = e
	}
	return out, nil
}

func (c *Catalog) Kinds() []string {
	kinds := make([]string, 0, len(c.entries))
	for k := range c.entries {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

func ignoreFormat(f func(string) bool) Validator {
	return func(value, _ string) bool { return f(value) }
}

func template(value, format string) bool {
	return pattern.IsDigitsTemplate(value, format, false)
}

func digits(value, format string) bool {
	if format == "" {
		return pattern.IsDigits(value)
	}
	return template(value, format)
}

func timestamp(value, format string) bool {
	return tokenfmt.Matches(value, format, false)
}

func formatTimestamp(value, format string) string {
	return tokenfmt.Format(value, format, format)
}

func formatDigits(value, format string) string {
	return pattern.FormatDigitsTemplate(value, format)
}

func formatZipFull(value, format string) string {
	if format == "" {
		format = pattern.DefaultZipTemplate
		if len(stringutil.Digits(value)) > 5 {
			format = pattern.DefaultZip4Template
		}
	}
	return pattern.FormatDigitsTemplate(value, format)
}

// CreditCardTemplate picks a grouping for a card number with the given digits.
// Fifteen-digit numbers and American Express prefixes group 4-6-5,
// numbers longer than sixteen digits group 8-11, and everything else 4-4-4-4.
func CreditCardTemplate(digits string) string {
	switch {
	case len(digits) == 15 || strings.HasPrefix(digits, "34") || strings.HasPrefix(digits, "37"):
		return "0000 000000 00000"
	case len(digits) > 16:
		return "00000000 00000000000"
	default:
		return "0000 0000 0000 0000"
	}
}

func formatCreditCard(value, format string) string {
	if format == "" {
		format = CreditCardTemplate(stringutil.Digits(value))
	}
	return pattern.FormatDigitsTemplate(value, format)
}

func trim(value, _ string) string {
	return strings.TrimSpace(value)
}

var builtins = []Entry{
	{Kind: "digits", Validate: digits, Format: formatDigits, Placeholder: "0"},
	{Kind: "number", Validate: ignoreFormat(pattern.IsNumber), Format: func(v, _ string) string { return pattern.FormatNumber(v) }, Placeholder: "0.0"},
	{Kind: "currency", Validate: ignoreFormat(pattern.IsCurrency), Format: func(v, _ string) string { return pattern.FormatCurrency(v) }, Placeholder: "0.00"},
	{Kind: "phone", Validate: template, Format: formatDigits, DefaultFormat: pattern.DefaultPhoneTemplate, Placeholder: pattern.DefaultPhoneTemplate},
	{Kind: "zip", Validate: template, Format: formatDigits, DefaultFormat: pattern.DefaultZipTemplate, Placeholder: pattern.DefaultZipTemplate},
	{Kind: "zip+4", Validate: template, Format: formatDigits, DefaultFormat: pattern.DefaultZip4Template, Placeholder: pattern.DefaultZip4Template},
	{Kind: "zip-full", Validate: ignoreFormat(pattern.IsZipFull), Format: formatZipFull, Placeholder: pattern.DefaultZipTemplate},
	{Kind: "email", Validate: ignoreFormat(pattern.IsEmail), Format: trim, Placeholder: "user@domain.com"},
	{Kind: "url", Validate: ignoreFormat(pattern.IsURL), Format: trim, Placeholder: "https://domain.com"},
	{Kind: "url-http", Validate: ignoreFormat(pattern.IsHTTPURL), Format: trim, Placeholder: "https://domain.com"},
	{Kind: "url-path", Validate: ignoreFormat(pattern.IsURLPath), Format: trim, Placeholder: "/path"},
	{Kind: "hostname", Validate: ignoreFormat(pattern.IsHostname), Format: trim, Placeholder: "host"},
	{Kind: "domain", Validate: ignoreFormat(pattern.IsDomain), Format: trim, Placeholder: "domain.com"},
	{Kind: "ip-address", Validate: ignoreFormat(pattern.IsIPAddress), Format: trim, Placeholder: "0.0.0.0"},
	{Kind: "timestamp", Validate: timestamp, Format: formatTimestamp, DefaultFormat: "mm/dd/yyyy HH24:MM:SS.MS", Placeholder: "mm/dd/yyyy hh:mm:ss.ms"},
	{Kind: "date-mmddyyyy", Validate: timestamp, Format: formatTimestamp, DefaultFormat: "mm/dd/yyyy", Placeholder: "mm/dd/yyyy"},
	{Kind: "date-yyyymmdd", Validate: timestamp, Format: formatTimestamp, DefaultFormat: "yyyy-mm-dd", Placeholder: "yyyy-mm-dd"},
	{Kind: "time", Validate: timestamp, Format: formatTimestamp, DefaultFormat: "HH24:MM", Placeholder: "hh:mm"},
	{Kind: "ssn", Validate: ignoreFormat(pattern.IsSSN), Format: formatDigits, DefaultFormat: pattern.DefaultSSNTemplate, Placeholder: pattern.DefaultSSNTemplate},
	{Kind: "aba-routing", Validate: ignoreFormat(pattern.IsABARouting), Format: formatDigits, Placeholder: "000000000"},
	{Kind: "credit-card", Validate: ignoreFormat(pattern.IsCreditCard), Format: formatCreditCard, Placeholder: "0000 0000 0000 0000"},
	{Kind: "cvv", Validate: ignoreFormat(pattern.IsCVV), Format: formatDigits, Placeholder: "000"},
	{Kind: "true"},
	{Kind: "radio", Behavior: Choice},
	{Kind: "false", Behavior: Disabled},
}
