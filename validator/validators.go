package validator

import (
	"errors"
	"regexp"
	"strings"

	"github.com/lithictech/go-formsubmit/stringutil"
	"github.com/rgalanakis/validator"
)

func newError(s string) validator.TextErr {
	return validator.TextErr{Err: errors.New(s)}
}

var (
	// ErrInvalidAttrName is returned for a string that cannot prefix an HTML attribute name.
	ErrInvalidAttrName = newError("not a valid attribute name")
	// ErrInvalidCSSClass is returned for a string that is not a single CSS class name.
	ErrInvalidCSSClass = newError("not a valid css class")
)

const optional = "opt"

// Split the param string on |,
// and return a type of (other args, if param ends in |opt, error in the case of empty args).
// Examples:
//
//	"a|b" -> (["a", "b"], false, nil)
//	"a|opt" -> (["a"], true, nil)
//	"|opt" -> ([], false, <error>)
func splitOptionalVal(param string) ([]string, bool, error) {
	params := strings.Split(param, "|")
	optional := params[len(params)-1] == optional
	if optional {
		params = params[:len(params)-1]
	}
	if len(params) == 0 || (len(params) == 1 && params[0] == "") {
		return nil, false, validator.ErrBadParameter
	}
	return params, optional, nil
}

// go-validator dereferences non-nil pointer fields before calling us,
// so the only pointer case to handle is nil, which is valid.

func validateCaseInsensitiveEnum(v interface{}, param string) error {
	return validateEnumImpl(v, param, strings.ToLower)
}

func validateCaseSensitiveEnum(v interface{}, param string) error {
	return validateEnumImpl(v, param, nil)
}

func validateEnumImpl(v interface{}, param string, mapper func(string) string) error {
	choices, optional, err := splitOptionalVal(param)
	if err != nil {
		return err
	}
	if mapper != nil {
		choices = stringutil.Map(choices, mapper)
	}

	if s, ok := v.(string); ok {
		if mapper != nil {
			s = mapper(s)
		}
		return validateEnumImplStr(s, choices, optional)
	}
	if ptr, ok := v.(*string); ok && ptr == nil {
		return nil
	}
	return validator.ErrUnsupported
}

func validateEnumImplStr(s string, choices []string, optional bool) error {
	if s == "" {
		if optional {
			return nil
		}
		return newError("empty string")
	}
	if stringutil.Contains(choices, s) {
		return nil
	}
	return newError("is not one of " + strings.Join(choices, "|"))
}

func makeStringValidator(malformed error, validate func(string) bool) validator.ValidationFunc {
	return func(v interface{}, param string) error {
		s, ok := v.(string)
		if !ok {
			if ptr, ok := v.(*string); ok && ptr == nil {
				return nil
			}
			return validator.ErrUnsupported
		}
		if s == "" {
			if param == optional {
				return nil
			}
			return malformed
		}
		if !validate(s) {
			return malformed
		}
		return nil
	}
}

// Lower-case only, since HTML parsers lower-case attribute names.
var attrNameRegexp = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*$`)

var validateAttrName = makeStringValidator(ErrInvalidAttrName, attrNameRegexp.MatchString)

var cssClassRegexp = regexp.MustCompile(`^-?[_a-zA-Z][_a-zA-Z0-9-]*$`)

var validateCSSClass = makeStringValidator(ErrInvalidCSSClass, cssClassRegexp.MatchString)
