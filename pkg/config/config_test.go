package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-strfmt/pkg/config"
	"github.com/goliatone/go-strfmt/pkg/template"
)

const yamlDoc = `
locale: de-DE
logLevel: debug
logFormat: json
html: true
days: [Sonntag, Montag, Dienstag, Mittwoch, Donnerstag, Freitag, Samstag]
args:
  - name: Ada
    total: 1234567
  - 3
`

func TestParseYAML(t *testing.T) {
	t.Parallel()

	cfg, err := config.Parse([]byte(yamlDoc), "strfmt.yaml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	want := config.Config{
		Locale:    "de-DE",
		LogLevel:  "debug",
		LogFormat: "json",
		HTML:      true,
		Days:      []string{"Sonntag", "Montag", "Dienstag", "Mittwoch", "Donnerstag", "Freitag", "Samstag"},
		Args: []any{
			map[string]any{"name": "Ada", "total": 1234567},
			3,
		},
		Source: "strfmt.yaml",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestParseJSON(t *testing.T) {
	t.Parallel()

	cfg, err := config.Parse([]byte(`{"locale":"fr","args":[1.5,"x"]}`), "strfmt.json")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Locale != "fr" {
		t.Fatalf("locale mismatch: %q", cfg.Locale)
	}
	if diff := cmp.Diff([]any{1.5, "x"}, cfg.Args); diff != "" {
		t.Fatalf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		data string
		want string
	}{
		{name: "empty", data: "  \n", want: "config: file doc is empty"},
		{name: "garbage", data: "locale: [unterminated", want: "config: parse doc: invalid JSON or YAML"},
		{name: "locale", data: `{"locale":"not a locale!"}`, want: `config: doc: locale "not a locale!"`},
		{name: "days", data: `{"days":["Mon"]}`, want: "config: doc: days must list 7 names, got 1"},
		{name: "months", data: `{"months":["Jan","Feb"]}`, want: "config: doc: months must list 12 names, got 2"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := config.Parse([]byte(tc.data), "doc")
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.HasPrefix(err.Error(), tc.want) {
				t.Fatalf("error %q does not start with %q", err, tc.want)
			}
		})
	}
}

func TestEngineOptions(t *testing.T) {
	t.Parallel()

	cfg, err := config.Parse([]byte(yamlDoc), "strfmt.yaml")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	opts, err := cfg.EngineOptions()
	if err != nil {
		t.Fatalf("engine options: %v", err)
	}

	engine := template.New(opts...)
	when := time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC)
	got, err := engine.Format("{:n} am {:A}", 1234567, when)
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if want := "1.234.567 am Sonntag"; got != want {
		t.Fatalf("format mismatch: got %q want %q", got, want)
	}
}

func TestEngineOptionsEmpty(t *testing.T) {
	t.Parallel()

	opts, err := config.Config{}.EngineOptions()
	if err != nil {
		t.Fatalf("engine options: %v", err)
	}
	if len(opts) != 0 {
		t.Fatalf("expected no options for an empty config, got %d", len(opts))
	}
}

func TestLoadFS(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"conf/.strfmt.json": {Data: []byte(`{"logLevel":"warn"}`)},
	}
	cfg, err := config.LoadFS(fsys, "conf/.strfmt.json")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LogLevel != "warn" || cfg.Source != "conf/.strfmt.json" {
		t.Fatalf("unexpected config: %#v", cfg)
	}

	if _, err := config.LoadFS(fsys, "missing.json"); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if _, ok, err := config.Discover(dir); err != nil || ok {
		t.Fatalf("expected nothing discovered, got ok=%v err=%v", ok, err)
	}

	if err := os.WriteFile(filepath.Join(dir, ".strfmt.yml"), []byte("locale: en-GB\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, ok, err := config.Discover(dir)
	if err != nil || !ok {
		t.Fatalf("expected discovery, got ok=%v err=%v", ok, err)
	}
	if cfg.Locale != "en-GB" {
		t.Fatalf("locale mismatch: %q", cfg.Locale)
	}
}

func TestMerge(t *testing.T) {
	t.Parallel()

	base := config.Config{Locale: "en", LogLevel: "info", Args: []any{1}}
	got := base.Merge(config.Config{LogLevel: "debug", HTML: true})

	want := config.Config{Locale: "en", LogLevel: "debug", HTML: true, Args: []any{1}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("merge mismatch (-want +got):\n%s", diff)
	}
}
