package formsubmit

import (
	"fmt"

	"github.com/lithictech/go-formsubmit/dom"
	"github.com/pkg/errors"
)

// ErrInvalidRegex is the cause of a ConfigError for a pattern that does not compile.
// Unlike other configuration errors, it means a control would accept anything,
// so hosts should treat it as fatal. See IsFatal.
var ErrInvalidRegex = errors.New("invalid regex")

// ConfigError describes a declarative attribute that could not be used.
type ConfigError struct {
	Attr  string
	Value string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s=%q: %v", e.Attr, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func (e *ConfigError) Cause() error {
	return e.Err
}

// IsFatal reports whether err, or any error it wraps, is an invalid regex.
func IsFatal(err error) bool {
	return errors.Is(err, ErrInvalidRegex)
}

// FieldError is the message for one invalid control, as returned from ValidateForm.
type FieldError struct {
	Field dom.Element
	// Key names the field, the same way its error slot is keyed.
	Key     string
	Message string
}

func (e *FieldError) Error() string {
	return e.Key + ": " + e.Message
}
