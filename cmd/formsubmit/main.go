// Command formsubmit checks pages that use declarative form validation,
// and tries out kinds and formats from the command line.
//
//	formsubmit lint [-j 4] page.html|dir...
//	formsubmit format -kind timestamp [-format "yyyy-mm-dd HH24:MM"] "2/29/24 1:05pm"...
//	formsubmit submit -form "#signup" -set email=x@y.com -set plan=pro page.html
//
// Options come from -config (YAML) and FORMSUBMIT_ environment variables,
// after loading any .env file.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/lithictech/go-formsubmit/config"
	"github.com/lithictech/go-formsubmit/convext"
	"github.com/lithictech/go-formsubmit/dom"
	"github.com/lithictech/go-formsubmit/formsubmit"
	"github.com/lithictech/go-formsubmit/htmldom"
	"github.com/lithictech/go-formsubmit/logctx"
	"github.com/lithictech/go-formsubmit/parallel"
	"github.com/lithictech/go-formsubmit/pathutils"
	"github.com/pkg/errors"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type app struct {
	ctx    context.Context
	opts   config.Options
	stdout io.Writer
	stderr io.Writer
}

func usage(w io.Writer) {
	fmt.Fprintf(w, "Usage: %s [-config file.yml] [-env .env] <lint|format|submit> [args...]\n", filepath.Base(os.Args[0]))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("formsubmit", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { usage(stderr) }
	configPath := fs.String("config", "", "YAML options file")
	var dotenvs stringsFlag
	fs.Var(&dotenvs, "env", "dotenv file to load (repeatable; default .env if present)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		usage(stderr)
		return 2
	}
	a, err := newApp(*configPath, dotenvs, stdout, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "lint":
		return a.lint(rest)
	case "format":
		return a.format(rest)
	case "submit":
		return a.submit(rest)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", cmd)
		usage(stderr)
		return 2
	}
}

func newApp(configPath string, dotenvs []string, stdout, stderr io.Writer) (*app, error) {
	if err := config.LoadDotenv(dotenvs...); err != nil {
		return nil, err
	}
	opts, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logger, err := logctx.NewLogger(logctx.NewLoggerInput{
		Level:  opts.LogLevel,
		Format: opts.LogFormat,
		Out:    stderr,
	})
	if err != nil {
		return nil, errors.Wrap(err, "configuring logger")
	}
	ctx := logctx.WithLogger(context.Background(), logger)
	ctx = logctx.WithTracingLogger(logctx.WithTraceId(ctx, logctx.ProcessTraceIdKey))
	return &app{ctx: ctx, opts: opts, stdout: stdout, stderr: stderr}, nil
}

func (a *app) logger() *slog.Logger {
	return logctx.Logger(a.ctx)
}

// load parses the page at path and bootstraps it.
func (a *app) load(path string) (*htmldom.Document, *formsubmit.Controller, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	doc, err := htmldom.Parse(f)
	if err != nil {
		return nil, nil, err
	}
	c, err := formsubmit.New(formsubmit.Config{Document: doc, Options: a.opts, Logger: a.logger()})
	if err != nil {
		return nil, nil, err
	}
	return doc, c, c.Bootstrap(a.ctx)
}

func (a *app) lint(args []string) int {
	fs := flag.NewFlagSet("lint", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	workers := fs.Int("j", 4, "pages to lint at once")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(a.stderr, "lint: no pages given")
		return 2
	}
	pages, err := pathutils.FindPages(fs.Args())
	if err != nil {
		fmt.Fprintln(a.stderr, err)
		return 1
	}
	reports, err := parallel.Map(pages, *workers, a.lintPage)
	if err != nil {
		fmt.Fprintln(a.stderr, err)
		return 2
	}
	problems := 0
	for i, report := range reports {
		for _, p := range report {
			fmt.Fprintf(a.stdout, "%s: %s\n", pages[i], p)
			problems++
		}
	}
	if problems > 0 {
		return 1
	}
	return 0
}

// lintPage returns a line for each problem with the page at path.
func (a *app) lintPage(path string) ([]string, error) {
	_, _, err := a.load(path)
	if err == nil {
		return nil, nil
	}
	var merr *multierror.Error
	if errors.As(err, &merr) {
		lines := make([]string, len(merr.Errors))
		for i, e := range merr.Errors {
			lines[i] = e.Error()
		}
		return lines, nil
	}
	if pathutils.IsPathError(err) {
		return []string{"cannot read page: " + err.Error()}, nil
	}
	return []string{err.Error()}, nil
}

func (a *app) format(args []string) int {
	fs := flag.NewFlagSet("format", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	kind := fs.String("kind", "", "catalog kind, like phone or timestamp")
	format := fs.String("format", "", "format or template replacing the kind's default")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	c, err := formsubmit.New(formsubmit.Config{Document: htmldom.MustParse(""), Options: a.opts, Logger: a.logger()})
	if err != nil {
		fmt.Fprintln(a.stderr, err)
		return 1
	}
	e, ok := c.Catalog().Lookup(*kind)
	if !ok {
		fmt.Fprintf(a.stderr, "format: unknown kind %q; try one of %s\n", *kind, strings.Join(c.Catalog().Kinds(), ", "))
		return 2
	}
	code := 0
	for _, value := range fs.Args() {
		formatted, valid := e.Check(value, *format)
		status := "ok"
		if !valid {
			status = c.Options().FallbackMessage
			code = 1
		}
		fmt.Fprintf(a.stdout, "%s\t%s\n", formatted, status)
	}
	return code
}

func (a *app) submit(args []string) int {
	fs := flag.NewFlagSet("submit", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	formSel := fs.String("form", "form", "selector of the form to submit")
	var sets stringsFlag
	fs.Var(&sets, "set", "name=value to enter before submitting (repeatable)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(a.stderr, "submit: give exactly one page")
		return 2
	}
	doc, _, err := a.load(fs.Arg(0))
	if err != nil && (formsubmit.IsFatal(err) || !isConfigErrors(err)) {
		fmt.Fprintln(a.stderr, err)
		return 1
	}
	form, err := doc.Find(*formSel)
	if err != nil {
		fmt.Fprintln(a.stderr, err)
		return 1
	}
	for _, s := range sets {
		name, value, ok := strings.Cut(s, "=")
		if !ok {
			fmt.Fprintf(a.stderr, "submit: -set %q is not name=value\n", s)
			return 2
		}
		if err := enter(form, name, value); err != nil {
			fmt.Fprintln(a.stderr, err)
			return 1
		}
	}
	proceed := doc.Dispatch(form, dom.Submit)
	slots, _ := doc.Select("[" + a.opts.Attr("error-for") + "]")
	for _, slot := range slots {
		if msg := slot.Text(); msg != "" {
			key, _ := slot.Attr(a.opts.Attr("error-for"))
			fmt.Fprintf(a.stdout, "%s: %s\n", key, msg)
		}
	}
	if proceed {
		fmt.Fprintln(a.stdout, "submitted")
		return 0
	}
	if focused := doc.Focused(); focused != nil {
		fmt.Fprintf(a.stdout, "focused: %s\n", dom.AttrOr(focused, "id", dom.AttrOr(focused, "name", focused.Tag())))
	}
	fmt.Fprintln(a.stdout, "blocked")
	return 1
}

// enter sets the named control in form the way a user would:
// radios check the member with the value, checkboxes check unless the value is false.
func enter(form *htmldom.Element, name, value string) error {
	els := form.QueryAll(dom.AttrSelector("name", name))
	if len(els) == 0 {
		return errors.Errorf("submit: no field named %q", name)
	}
	for _, el := range els {
		he := el.(*htmldom.Element)
		switch dom.Classify(el) {
		case dom.SingleChoice:
			if el.Value() == value {
				he.SetChecked(true)
				return nil
			}
		case dom.MultiChoice:
			he.SetChecked(convext.AttrBool(value, true))
			return nil
		default:
			el.SetValue(value)
			return nil
		}
	}
	return errors.Errorf("submit: no %q option with value %q", name, value)
}

func isConfigErrors(err error) bool {
	var cerr *formsubmit.ConfigError
	return errors.As(err, &cerr)
}

type stringsFlag []string

func (s *stringsFlag) String() string {
	return strings.Join(*s, ",")
}

func (s *stringsFlag) Set(v string) error {
	*s = append(*s, v)
	return nil
}
