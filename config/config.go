/*
Package config holds the settings shared by every form on a page:
the attribute prefix declarative hints use, the fallback message,
the CSS classes of generated nodes, and logging.

Options are built from Defaults, then an optional YAML file,
then FORMSUBMIT_-prefixed environment variables, and finally validated.
*/
package config

import (
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/lithictech/go-formsubmit/stringutil"
	"github.com/lithictech/go-formsubmit/validator"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable Options reads.
const EnvPrefix = "FORMSUBMIT_"

type Options struct {
	// AttributePrefix starts every declarative attribute,
	// so "data-form-submit" reads data-form-submit-required and friends.
	AttributePrefix string `yaml:"attribute_prefix" env:"ATTRIBUTE_PREFIX" validate:"attrname"`
	// FallbackMessage is shown for an invalid field with no message of its own.
	FallbackMessage string `yaml:"fallback_message" env:"FALLBACK_MESSAGE" validate:"nonzero"`
	ErrorClass      string `yaml:"error_class" env:"ERROR_CLASS" validate:"cssclass"`
	CounterClass    string `yaml:"counter_class" env:"COUNTER_CLASS" validate:"cssclass"`
	LogLevel        string `yaml:"log_level" env:"LOG_LEVEL" validate:"enum=debug|info|warn|error|opt"`
	LogFormat       string `yaml:"log_format" env:"LOG_FORMAT" validate:"enum=json|text|console|opt"`

	// Formats replaces the default format of catalog kinds, like {"time": "H:MM"}.
	// In the environment, use FORMSUBMIT_FORMATS=time=H:MM,date-mmddyyyy=m/d/yyyy.
	Formats map[string]string `yaml:"formats" env:"FORMATS" envKeyValSeparator:"="`
}

func Defaults() Options {
	return Options{
		AttributePrefix: "data-form-submit",
		FallbackMessage: "Invalid input",
		ErrorClass:      "form-submit-error",
		CounterClass:    "form-submit-counter",
		LogLevel:        "info",
	}
}

// OrDefaults fills every empty setting from Defaults.
func (o Options) OrDefaults() Options {
	d := Defaults()
	o.AttributePrefix = stringutil.FirstNonEmpty(o.AttributePrefix, d.AttributePrefix)
	o.FallbackMessage = stringutil.FirstNonEmpty(o.FallbackMessage, d.FallbackMessage)
	o.ErrorClass = stringutil.FirstNonEmpty(o.ErrorClass, d.ErrorClass)
	o.CounterClass = stringutil.FirstNonEmpty(o.CounterClass, d.CounterClass)
	o.LogLevel = stringutil.FirstNonEmpty(o.LogLevel, d.LogLevel)
	return o
}

// Attr returns the full name of a declarative attribute, like Attr("required").
func (o Options) Attr(name string) string {
	return o.AttributePrefix + "-" + name
}

func (o Options) Validate() error {
	if err := validator.Validate(o); err != nil {
		return errors.Wrap(err, "invalid options")
	}
	return nil
}

// FromYAML overlays YAML onto o. Keys missing from data keep their current values.
func (o Options) FromYAML(data []byte) (Options, error) {
	if err := yaml.Unmarshal(data, &o); err != nil {
		return o, errors.Wrap(err, "parsing options yaml")
	}
	return o, nil
}

// FromEnv overlays environment variables onto o.
// When environ is nil, the process environment is used.
func (o Options) FromEnv(environ map[string]string) (Options, error) {
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&o, opts); err != nil {
		return o, errors.Wrap(err, "parsing options environment")
	}
	return o, nil
}

// Load builds validated Options from the YAML file at path (skipped when empty)
// and the process environment.
func Load(path string) (Options, error) {
	o := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return o, errors.Wrap(err, "reading options")
		}
		if o, err = o.FromYAML(data); err != nil {
			return o, err
		}
	}
	o, err := o.FromEnv(nil)
	if err != nil {
		return o, err
	}
	return o, o.Validate()
}

// LoadDotenv loads .env files into the process environment without overriding
// variables that are already set. A missing file is only an error when named explicitly.
func LoadDotenv(paths ...string) error {
	if len(paths) == 0 {
		if _, err := os.Stat(".env"); err != nil {
			return nil
		}
	}
	return errors.Wrap(godotenv.Load(paths...), "loading dotenv")
}
