package validator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgalanakis/validator"
)

// ErrorMap is a map which contains all errors from validating a struct.
type ErrorMap map[string]ErrorArray

// Error renders every field's errors, sorted by field name.
func (err ErrorMap) Error() string {
	keys := make([]string, 0, len(err))
	for k := range err {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	lines := make([]string, 0, len(err))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s: %s", k, err[k].Error()))
	}
	return strings.Join(lines, " | ")
}

// ErrorArray is a slice of errors returned by the Validate function.
type ErrorArray []error

func (err ErrorArray) Error() string {
	errs := make([]string, 0, len(err))
	for _, e := range err {
		errs = append(errs, e.Error())
	}
	return strings.Join(errs, ", ")
}

// Registry is a registry of all available validation functions.
// In general, clients should use the global instance available through
// the Validate function; instances are generally only used for testing.
type Registry struct {
	validator *validator.Validator
}

// Init initializes a registry (registers all validators).
func (r *Registry) Init() {
	v := validator.NewValidator()
	v.SetValidationFunc("enum", validateCaseInsensitiveEnum)
	v.SetValidationFunc("cenum", validateCaseSensitiveEnum)
	v.SetValidationFunc("attrname", validateAttrName)
	v.SetValidationFunc("cssclass", validateCSSClass)
	r.validator = v
}

// Validate validates using all registered validators.
func (r *Registry) Validate(v interface{}) error {
	err := r.validator.Validate(v)
	return coerceValidatorPkgError(err)
}

func NewRegistry() *Registry {
	r := new(Registry)
	r.Init()
	return r
}

var globalRegistry = NewRegistry()

// Validate validates the fields of a struct based
// on 'validate' tags and returns errors found indexed
// by the field name.
func Validate(v interface{}) error {
	return globalRegistry.Validate(v)
}

// coerceValidatorPkgError converts the underlying package's error types
// into ours, so they are not exposed.
func coerceValidatorPkgError(err error) error {
	switch realErr := err.(type) {
	case validator.ErrorMap:
		return coerceValidatorPkgErrorMap(realErr)
	case validator.ErrorArray:
		return coerceValidatorPkgErrorArray(realErr)
	default:
		return realErr
	}
}

func coerceValidatorPkgErrorMap(err validator.ErrorMap) ErrorMap {
	result := make(ErrorMap, len(err))
	for k, v := range err {
		result[k] = coerceValidatorPkgErrorArray(v)
	}
	return result
}

func coerceValidatorPkgErrorArray(err validator.ErrorArray) ErrorArray {
	result := make(ErrorArray, 0, len(err))
	for _, e := range err {
		result = append(result, e)
	}
	return result
}
