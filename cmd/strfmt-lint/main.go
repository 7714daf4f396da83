package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/goliatone/go-strfmt/internal/openapi"
	"github.com/goliatone/go-strfmt/pkg/diag"
	"github.com/goliatone/go-strfmt/pkg/path"
	"github.com/goliatone/go-strfmt/pkg/template"
)

type violation struct {
	file     string
	location string
	message  string
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stderr))
}

func run(ctx context.Context, argv []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("strfmt-lint", flag.ContinueOnError)
	fs.SetOutput(stderr)
	externalRefs := fs.Bool("external-refs", false, "follow $ref links to other files")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [paths...]\n", filepath.Base(os.Args[0]))
		fmt.Fprintf(fs.Output(), "\nLint x-strfmt templates and property paths embedded in OpenAPI documents.\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(argv); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	paths := fs.Args()
	if len(paths) == 0 {
		paths = []string{"examples/openapi/invoices.yaml"}
	}

	var violations []violation
	for _, p := range paths {
		linted, err := lintFile(ctx, p, openapi.Options{AllowExternalRefs: *externalRefs})
		if err != nil {
			fmt.Fprintf(stderr, "lint %s: %v\n", p, err)
			return 1
		}
		violations = append(violations, linted...)
	}

	if len(violations) == 0 {
		return 0
	}
	sort.Slice(violations, func(i, j int) bool {
		if violations[i].file == violations[j].file {
			if violations[i].location == violations[j].location {
				return violations[i].message < violations[j].message
			}
			return violations[i].location < violations[j].location
		}
		return violations[i].file < violations[j].file
	})
	for _, v := range violations {
		fmt.Fprintf(stderr, "%s: %s -> %s\n", v.file, v.location, v.message)
	}
	return 1
}

func lintFile(ctx context.Context, file string, opts openapi.Options) ([]violation, error) {
	raw, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	entries, err := openapi.Collect(ctx, raw, opts)
	if err != nil {
		return nil, err
	}

	var result []violation
	for _, entry := range entries {
		if msg := validateEntry(entry); msg != "" {
			result = append(result, violation{
				file:     file,
				location: openapi.FormatLocation(append(append([]string(nil), entry.Location...), entry.Key)),
				message:  msg,
			})
		}
	}
	return result, nil
}

// validateEntry returns a one-line message for an invalid entry, or "".
func validateEntry(entry openapi.Entry) string {
	if entry.Kind == openapi.KindUnknown {
		return fmt.Sprintf("unsupported extension key %q (supported: %s, %s)", entry.Key, openapi.KindTemplate, openapi.KindPath)
	}

	value, ok := entry.Value.(string)
	if !ok {
		return fmt.Sprintf("value must be a string (got %T)", entry.Value)
	}

	switch entry.Kind {
	case openapi.KindTemplate:
		if _, err := template.Fields(value); err != nil {
			return describe(err)
		}
	case openapi.KindPath:
		if _, err := path.Tokenize(value); err != nil {
			return describe(err)
		}
	}
	return ""
}

func describe(err error) string {
	var tplErr *diag.MalformedTemplateError
	if errors.As(err, &tplErr) {
		reason := tplErr.Reason
		var pathErr *diag.MalformedPathError
		if reason == "" && errors.As(tplErr.Err, &pathErr) {
			reason = pathErr.Detail()
		}
		return fmt.Sprintf("malformed template %q at offset %d: %s", tplErr.Template, tplErr.Offset, reason)
	}
	var pathErr *diag.MalformedPathError
	if errors.As(err, &pathErr) {
		return fmt.Sprintf("malformed path %q at offset %d: %s", pathErr.Path, pathErr.Offset, pathErr.Detail())
	}
	return err.Error()
}
