// Package logctx keeps a *slog.Logger and trace ids in a context.Context,
// so bootstrap and form submission logs can be correlated.
package logctx

import (
	"context"
	"fmt"
	"github.com/google/uuid"
	"github.com/phsym/console-slog"
	"golang.org/x/crypto/ssh/terminal"
	"io"
	"log/slog"
	"os"
	"reflect"
	"strings"
)

type IdProviderT func() string

func DefaultIdProvider() string {
	return uuid.New().String()
}

var IdProvider IdProviderT = DefaultIdProvider

const LoggerKey = "logger"

type TraceIdKey string

// SubmitTraceIdKey identifies one form submission and every field evaluated for it.
const SubmitTraceIdKey TraceIdKey = "submit_trace_id"

// BootstrapTraceIdKey identifies one pass over a document's declarative attributes.
const BootstrapTraceIdKey TraceIdKey = "bootstrap_trace_id"

// ProcessTraceIdKey is the trace ID key for the overall process, like a CLI invocation.
const ProcessTraceIdKey TraceIdKey = "process_trace_id"

// MissingTraceIdKey is the key that will be present to indicate tracing is misconfigured.
const MissingTraceIdKey TraceIdKey = "missing_trace_id"

// traceKeyPrecedence is the order ActiveTraceId searches, narrowest first.
var traceKeyPrecedence = []TraceIdKey{SubmitTraceIdKey, BootstrapTraceIdKey, ProcessTraceIdKey}

func UnconfiguredLogger() *slog.Logger {
	return slog.Default().With("unconfigured_logger", "true")
}

// WithLogger returns a new context that adds a logger which
// can be retrieved with Logger(Context).
func WithLogger(c context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(c, LoggerKey, logger)
}

// WithTracingLogger adds the ActiveTraceId to the context logger.
// Use WithTracingLogger(WithTraceId(ctx, key)) to start a traced operation.
func WithTracingLogger(c context.Context) context.Context {
	logger := Logger(c)
	tkey, trace := ActiveTraceId(c)
	logger = logger.With(string(tkey), trace)
	return context.WithValue(c, LoggerKey, logger)
}

func WithTraceId(c context.Context, key TraceIdKey) context.Context {
	return context.WithValue(c, key, IdProvider())
}

func LoggerOrNil(c context.Context) *slog.Logger {
	logger, _ := c.Value(LoggerKey).(*slog.Logger)
	return logger
}

func Logger(c context.Context) *slog.Logger {
	if logger, ok := c.Value(LoggerKey).(*slog.Logger); ok {
		return logger
	}
	logger := UnconfiguredLogger()
	logger.Warn(
		"Logger called with no logger in context. " +
			"It should always be there to ensure consistent logs from a single logger")
	return logger
}

// ActiveTraceId returns the narrowest trace in the context
// (submission, then bootstrap, then process),
// or MissingTraceIdKey if there is none.
// Values that are not string-like have '!BADVALUE-' prepended.
func ActiveTraceId(c context.Context) (TraceIdKey, string) {
	for _, k := range traceKeyPrecedence {
		if tv := c.Value(k); tv != nil {
			return k, toTraceVal(tv)
		}
	}
	return MissingTraceIdKey, "no-trace-id-in-context"
}

func toTraceVal(v any) string {
	s, ok := AsString(v)
	if ok {
		return s
	}
	return fmt.Sprintf("!BADVALUE-%v", v)
}

// AsString returns o as a string and true if o is a string,
// a fmt.Stringer, or a reflect.String kind (subtype of string).
// Otherwise, return "" and false.
func AsString(o any) (string, bool) {
	if o == nil {
		return "", false
	} else if s, ok := o.(string); ok {
		return s, true
	} else if s, ok := o.(fmt.Stringer); ok {
		return s.String(), true
	}
	r := reflect.ValueOf(o)
	if r.Kind() == reflect.String {
		return r.String(), true
	}
	return "", false
}

func ActiveTraceIdValue(c context.Context) string {
	_, v := ActiveTraceId(c)
	return v
}

func AddTo(c context.Context, args ...any) context.Context {
	ctx, _ := AddToR(c, args...)
	return ctx
}

func AddToR(c context.Context, args ...any) (context.Context, *slog.Logger) {
	logger := Logger(c)
	logger = logger.With(args...)
	return WithLogger(c, logger), logger
}

type NewLoggerInput struct {
	// Level is the logging level name ('debug', 'info', 'warn', 'error').
	// Case independent. Empty means info.
	Level string
	// Format should be empty, 'json', 'text', or 'console'.
	// If empty, use colored console output if IsTty, or 'json' otherwise.
	Format string
	// Out specifies the stream to log to.
	// Defaults to os.Stderr, so CLI output on stdout stays clean.
	Out io.Writer
	// MakeHandler can wrap or replace the derived handler,
	// like with NewTracingHandler.
	MakeHandler func(*slog.HandlerOptions, slog.Handler) slog.Handler
	// Fields are additional fields to add to the logger.
	Fields []any
}

func NewLogger(cfg NewLoggerInput) (*slog.Logger, error) {
	out := cfg.Out
	if out == nil {
		out = os.Stderr
	}

	hopts := &slog.HandlerOptions{}
	lvl, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	hopts.Level = lvl

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		handler = slog.NewJSONHandler(out, hopts)
	case "text":
		handler = slog.NewTextHandler(out, hopts)
	case "console":
		handler = newConsoleHandler(out, hopts)
	case "":
		if IsTty() {
			handler = newConsoleHandler(out, hopts)
		} else {
			handler = slog.NewJSONHandler(out, hopts)
		}
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}
	if cfg.MakeHandler != nil {
		handler = cfg.MakeHandler(hopts, handler)
	}

	logger := slog.New(handler)
	if len(cfg.Fields) > 0 {
		logger = logger.With(cfg.Fields...)
	}
	return logger, nil
}

func newConsoleHandler(out io.Writer, hopts *slog.HandlerOptions) slog.Handler {
	return console.NewHandler(out, &console.HandlerOptions{
		AddSource: hopts.AddSource,
		Level:     hopts.Level,
	})
}

func IsTty() bool {
	return terminal.IsTerminal(int(os.Stderr.Fd()))
}

// WithNullLogger adds the logger from NewNullLogger into the given context
// (default c to context.Background). Use the hook to get the log messages.
func WithNullLogger(c context.Context) (context.Context, *Hook) {
	if c == nil {
		c = context.Background()
	}
	logger, hook := NewNullLogger()
	c2 := WithLogger(c, logger.With("testlogger", true))
	return c2, hook
}

// ParseLevel parses a slog level name. The empty string is info.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return level, nil
	}
	var err = level.UnmarshalText([]byte(s))
	return level, err
}

func NewNullLogger() (*slog.Logger, *Hook) {
	hook := NewHook()
	logger := slog.New(hook)
	return logger, hook
}
