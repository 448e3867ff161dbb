// Package convext (convert extensions) are helpers for converting
// attribute strings into typed values.
package convext

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// AttrBool reports whether a marker attribute is switched on.
// A present attribute is on unless its value is "false" or "0",
// so <form data-x-always-allow> and data-x-always-allow="true" both count.
func AttrBool(value string, present bool) bool {
	if !present {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "false", "0":
		return false
	}
	return true
}

// ErrNoCount is returned by ParseCount for a value that defers to another limit.
var ErrNoCount = errors.New("no count given")

// ParseCount parses a counter limit.
// The empty string and "true" return ErrNoCount,
// meaning the caller should fall back to another limit, like maxlength.
func ParseCount(value string) (int, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" || v == "true" {
		return 0, ErrNoCount
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.Wrapf(err, "count %q", value)
	}
	if n <= 0 {
		return 0, errors.Errorf("count %q must be positive", value)
	}
	return n, nil
}

func MustParseInt(s string) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		panic(err)
	}
	return i
}
