package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-strfmt/internal/prompt"
	"github.com/goliatone/go-strfmt/pkg/testsupport"
)

type scriptedDriver struct {
	template string
	inputs   []string
}

func (d *scriptedDriver) Input(context.Context, prompt.InputConfig) (string, error) {
	if len(d.inputs) == 0 {
		return "", errors.New("no scripted input left")
	}
	out := d.inputs[0]
	d.inputs = d.inputs[1:]
	return out, nil
}

func (d *scriptedDriver) Confirm(context.Context, prompt.ConfirmConfig) (bool, error) {
	return true, nil
}

func (d *scriptedDriver) TextArea(context.Context, prompt.TextAreaConfig) (string, error) {
	return d.template, nil
}

func runCLI(t *testing.T, driver prompt.Driver, argv ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), argv, &stdout, &stderr, driver)
	return stdout.String(), stderr.String(), err
}

func TestRunInvoiceGolden(t *testing.T) {
	tpl := strings.TrimRight(testsupport.MustReadGoldenString(t, filepath.Join("testdata", "invoice.tpl")), "\n")
	golden := filepath.Join("testdata", "invoice.golden")

	out, _, err := runCLI(t, nil, "-template", tpl, "-args", filepath.Join("testdata", "invoice.yaml"))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if testsupport.WriteMaybeGolden(t, golden, []byte(out)) {
		return
	}
	if diff := testsupport.CompareGolden(testsupport.MustReadGoldenString(t, golden), out); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestRunPositionalAndPairs(t *testing.T) {
	out, _, err := runCLI(t, nil, "-template", "{} {:>5.1f}", "total", "2.25")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out != "total   2.3\n" {
		t.Fatalf("unexpected output %q", out)
	}

	out, _, err = runCLI(t, nil, "-template", "{user.name} ({user.age:d})", "-arg", "user.name=Ada", "-arg", "user.age=36")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out != "Ada (36)\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRunConfigLocaleAndHTML(t *testing.T) {
	out, _, err := runCLI(t, nil,
		"-config", filepath.Join("testdata", "strfmt.yaml"),
		"-template", "<b>{:n}</b><script>x</script>",
		"-html",
		"1234567",
	)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out != "<b>1.234.567</b>\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRunInteractive(t *testing.T) {
	driver := &scriptedDriver{template: "{greeting}, {name}!\n", inputs: []string{"Hello", "world"}}
	out, _, err := runCLI(t, driver, "-interactive")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out != "Hello, world!\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRunWritesOutputFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "out.txt")
	out, _, err := runCLI(t, nil, "-template", "{:^7}", "-output", target, "mid")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out != "" {
		t.Fatalf("expected nothing on stdout, got %q", out)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != "  mid  \n" {
		t.Fatalf("unexpected file content %q", data)
	}
}

func TestRunErrors(t *testing.T) {
	cases := []struct {
		name string
		argv []string
		want string
	}{
		{name: "missing template", argv: nil, want: "missing -template"},
		{name: "malformed template", argv: []string{"-template", "{"}, want: "Unmatched opening brace."},
		{name: "bad pair", argv: []string{"-template", "{}", "-arg", "novalue"}, want: "expected key=value"},
		{name: "missing args file", argv: []string{"-template", "{}", "-args", "testdata/nope.yaml"}, want: "read args"},
		{name: "interactive without terminal", argv: []string{"-interactive"}, want: "interactive mode needs a terminal"},
	}
	for _, tc := range cases {
		_, _, err := runCLI(t, nil, tc.argv...)
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: expected error containing %q, got %v", tc.name, tc.want, err)
		}
	}
}

func TestRunWorkingDirectoryError(t *testing.T) {
	gone := errors.New("getwd: no such file or directory")
	prev := getwd
	getwd = func() (string, error) { return "", gone }
	t.Cleanup(func() { getwd = prev })

	_, _, err := runCLI(t, nil, "-template", "{}", "x")
	if !errors.Is(err, gone) || !strings.Contains(err.Error(), "strfmt-cli: working directory") {
		t.Fatalf("expected working directory error, got %v", err)
	}
}

func TestRunHelp(t *testing.T) {
	_, stderr, err := runCLI(t, nil, "-h")
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("expected flag.ErrHelp, got %v", err)
	}
	if !strings.Contains(stderr, "Usage: strfmt-cli") {
		t.Fatalf("expected usage text, got %q", stderr)
	}
}
