package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-strfmt/pkg/format"
	"github.com/goliatone/go-strfmt/pkg/template"
)

// DefaultNames lists the file names Discover looks for, in order.
var DefaultNames = []string{".strfmt.yaml", ".strfmt.yml", ".strfmt.json"}

// Config mirrors a `.strfmt` document.
type Config struct {
	Locale    string   `json:"locale,omitempty" yaml:"locale,omitempty"`
	Days      []string `json:"days,omitempty" yaml:"days,omitempty"`
	Months    []string `json:"months,omitempty" yaml:"months,omitempty"`
	LogLevel  string   `json:"logLevel,omitempty" yaml:"logLevel,omitempty"`
	LogFormat string   `json:"logFormat,omitempty" yaml:"logFormat,omitempty"`
	HTML      bool     `json:"html,omitempty" yaml:"html,omitempty"`
	Args      []any    `json:"args,omitempty" yaml:"args,omitempty"`

	// Source records where the document was read from.
	Source string `json:"-" yaml:"-"`
}

// Load reads and parses the document at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data, path)
}

// LoadFS reads and parses name from fsys.
func LoadFS(fsys fs.FS, name string) (Config, error) {
	if fsys == nil {
		return Config{}, fmt.Errorf("config: filesystem is nil")
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", name, err)
	}
	return Parse(data, name)
}

// Discover loads the first of DefaultNames present in dir. ok is false when
// none exists.
func Discover(dir string) (cfg Config, ok bool, err error) {
	for _, name := range DefaultNames {
		candidate := filepath.Join(dir, name)
		if _, statErr := os.Stat(candidate); statErr != nil {
			if errors.Is(statErr, fs.ErrNotExist) {
				continue
			}
			return Config{}, false, fmt.Errorf("config: stat %s: %w", candidate, statErr)
		}
		cfg, err = Load(candidate)
		if err != nil {
			return Config{}, false, err
		}
		return cfg, true, nil
	}
	return Config{}, false, nil
}

// Parse decodes data as JSON, falling back to YAML.
func Parse(data []byte, source string) (Config, error) {
	var cfg Config
	if len(strings.TrimSpace(string(data))) == 0 {
		return Config{}, fmt.Errorf("config: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		cfg = Config{}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: invalid JSON or YAML", source)
		}
	}
	cfg.Source = source

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the locale tag and the name tables.
func (c Config) Validate() error {
	if _, err := c.LanguageTag(); err != nil {
		return err
	}
	if n := len(c.Days); n != 0 && n != 7 {
		return fmt.Errorf("config: %s: days must list 7 names, got %d", c.sourceName(), n)
	}
	if n := len(c.Months); n != 0 && n != 12 {
		return fmt.Errorf("config: %s: months must list 12 names, got %d", c.sourceName(), n)
	}
	return nil
}

// LanguageTag parses Locale. An empty locale yields language.Und.
func (c Config) LanguageTag() (language.Tag, error) {
	if strings.TrimSpace(c.Locale) == "" {
		return language.Und, nil
	}
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.Und, fmt.Errorf("config: %s: locale %q: %w", c.sourceName(), c.Locale, err)
	}
	return tag, nil
}

// TimeNames overlays the configured names on the defaults.
func (c Config) TimeNames() format.TimeNames {
	names := format.DefaultTimeNames()
	if len(c.Days) == len(names.Days) {
		copy(names.Days[:], c.Days)
	}
	if len(c.Months) == len(names.Months) {
		copy(names.Months[:], c.Months)
	}
	return names
}

// EngineOptions converts the document into template engine options.
func (c Config) EngineOptions() ([]template.Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	var opts []template.Option
	tag, _ := c.LanguageTag()
	if tag != language.Und {
		opts = append(opts, template.WithLocale(tag))
	}
	if len(c.Days) > 0 || len(c.Months) > 0 {
		opts = append(opts, template.WithTimeNames(c.TimeNames()))
	}
	return opts, nil
}

// Merge returns c with every non-zero field of override applied on top.
func (c Config) Merge(override Config) Config {
	out := c
	if override.Locale != "" {
		out.Locale = override.Locale
	}
	if len(override.Days) > 0 {
		out.Days = append([]string(nil), override.Days...)
	}
	if len(override.Months) > 0 {
		out.Months = append([]string(nil), override.Months...)
	}
	if override.LogLevel != "" {
		out.LogLevel = override.LogLevel
	}
	if override.LogFormat != "" {
		out.LogFormat = override.LogFormat
	}
	if override.HTML {
		out.HTML = true
	}
	if len(override.Args) > 0 {
		out.Args = append([]any(nil), override.Args...)
	}
	if override.Source != "" {
		out.Source = override.Source
	}
	return out
}

func (c Config) sourceName() string {
	if c.Source == "" {
		return "<inline>"
	}
	return c.Source
}
