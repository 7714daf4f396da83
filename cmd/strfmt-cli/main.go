package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-strfmt/internal/logging"
	"github.com/goliatone/go-strfmt/internal/prompt"
	"github.com/goliatone/go-strfmt/pkg/config"
	"github.com/goliatone/go-strfmt/pkg/render"
	"github.com/goliatone/go-strfmt/pkg/template"
)

type pairFlag []string

func (p *pairFlag) String() string { return strings.Join(*p, ",") }

func (p *pairFlag) Set(v string) error {
	if !strings.Contains(v, "=") {
		return fmt.Errorf("expected key=value, got %q", v)
	}
	*p = append(*p, v)
	return nil
}

type options struct {
	template    string
	argsFile    string
	pairs       pairFlag
	locale      string
	html        bool
	interactive bool
	logLevel    string
	logFormat   string
	configPath  string
	output      string
	positional  []string
}

func main() {
	err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, prompt.NewSurveyDriver())
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("strfmt: %v", err)
	}
}

func parseFlags(argv []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("strfmt-cli", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.template, "template", "", "template to format, e.g. \"{name:>10}\"")
	fs.StringVar(&opts.argsFile, "args", "", "JSON or YAML file with the arguments (a list or a map of named values)")
	fs.Var(&opts.pairs, "arg", "named argument as key=value; keys may be paths such as user.name (repeatable)")
	fs.StringVar(&opts.locale, "locale", "", "locale for the n presentation type, e.g. de-DE")
	fs.BoolVar(&opts.html, "html", false, "sanitize the output as inline HTML")
	fs.BoolVar(&opts.interactive, "interactive", false, "prompt for the template and any missing argument")
	fs.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")
	fs.StringVar(&opts.logFormat, "log-format", "", "log format: text or json")
	fs.StringVar(&opts.configPath, "config", "", "configuration file (defaults to .strfmt.yaml, .strfmt.yml or .strfmt.json in the working directory)")
	fs.StringVar(&opts.output, "output", "", "output file (stdout if empty)")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: strfmt-cli -template TEMPLATE [flags] [positional args...]\n\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(argv); err != nil {
		return options{}, err
	}
	opts.positional = fs.Args()
	return opts, nil
}

func run(ctx context.Context, argv []string, stdout, stderr io.Writer, driver prompt.Driver) error {
	opts, err := parseFlags(argv, stderr)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	cfg = cfg.Merge(config.Config{
		Locale:    opts.locale,
		LogLevel:  opts.logLevel,
		LogFormat: opts.logFormat,
		HTML:      opts.html,
	})

	logger := logging.New(cfg.LogLevel, cfg.LogFormat, stderr)
	ctx = logging.WithLogger(ctx, logger)

	engineOpts, err := cfg.EngineOptions()
	if err != nil {
		return err
	}
	engine := template.New(append(engineOpts, template.WithLogger(logger))...)

	args, err := collectArguments(cfg, opts)
	if err != nil {
		return err
	}

	tpl := opts.template
	if opts.interactive {
		if tpl, err = interact(ctx, driver, tpl, &args); err != nil {
			return err
		}
	}
	if tpl == "" {
		return errors.New("missing -template")
	}

	logging.FromContext(ctx).Debug("formatting", "template", tpl, "args", len(args.List()), "html", cfg.HTML)

	var out string
	if cfg.HTML {
		out, err = render.HTML(engine, tpl, args.List())
	} else {
		out, err = engine.VFormat(tpl, args.List())
	}
	if err != nil {
		return err
	}

	if opts.output != "" {
		if err := os.WriteFile(opts.output, []byte(out+"\n"), 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		logger.Info("output written", "file", opts.output)
		return nil
	}
	_, err = fmt.Fprintln(stdout, out)
	return err
}

var getwd = os.Getwd

func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	wd, err := getwd()
	if err != nil {
		return config.Config{}, fmt.Errorf("strfmt-cli: working directory: %w", err)
	}
	cfg, _, err := config.Discover(wd)
	return cfg, err
}

// collectArguments layers the config arguments, the -args file, the
// positional command line values and finally the -arg pairs.
func collectArguments(cfg config.Config, opts options) (prompt.Arguments, error) {
	args := prompt.Arguments{Positional: append([]any(nil), cfg.Args...)}

	if opts.argsFile != "" {
		loaded, err := loadArgsFile(opts.argsFile)
		if err != nil {
			return prompt.Arguments{}, err
		}
		switch v := loaded.(type) {
		case []any:
			args.Positional = append(args.Positional, v...)
		case map[string]any:
			for key, value := range v {
				if err := args.SetNamed(key, value); err != nil {
					return prompt.Arguments{}, fmt.Errorf("args %s: key %q: %w", opts.argsFile, key, err)
				}
			}
		default:
			args.Positional = append(args.Positional, v)
		}
	}

	for _, raw := range opts.positional {
		args.Positional = append(args.Positional, prompt.ParseValue(raw))
	}

	for _, pair := range opts.pairs {
		key, value, _ := strings.Cut(pair, "=")
		if err := args.SetNamed(strings.TrimSpace(key), prompt.ParseValue(value)); err != nil {
			return prompt.Arguments{}, fmt.Errorf("-arg %s: %w", pair, err)
		}
	}
	return args, nil
}

func loadArgsFile(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read args: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("args file %s is empty", path)
	}

	var out any
	if err := json.Unmarshal(data, &out); err == nil {
		return out, nil
	}
	if err := yaml.Unmarshal(data, &out); err == nil {
		return out, nil
	}
	return nil, fmt.Errorf("parse %s: invalid JSON or YAML", path)
}

func interact(ctx context.Context, driver prompt.Driver, tpl string, args *prompt.Arguments) (string, error) {
	if driver == nil {
		return "", errors.New("interactive mode needs a terminal")
	}
	if tpl == "" {
		entered, err := driver.TextArea(ctx, prompt.TextAreaConfig{
			Message: "Template:",
			Help:    "Fields look like {name:>10} or {}; double braces for literals.",
		})
		if err != nil {
			return "", err
		}
		tpl = strings.TrimRight(entered, "\r\n")
	}

	fields, err := template.Fields(tpl)
	if err != nil {
		return "", err
	}
	if err := prompt.Fill(ctx, driver, fields, args); err != nil {
		return "", err
	}
	return tpl, nil
}
