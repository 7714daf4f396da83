// Package strfmt formats `{}` templates, Python str.format style:
//
//	out, err := strfmt.Format("{:>8.2f} {name}", 3.5, map[string]any{"name": "tea"})
//
// The root package re-exports the pieces most callers need. The engine lives
// in pkg/template, the value formatter in pkg/format, specifier parsing in
// pkg/specifier, property paths in pkg/path and the error types in pkg/diag.
package strfmt

import (
	"github.com/goliatone/go-strfmt/pkg/diag"
	"github.com/goliatone/go-strfmt/pkg/format"
	"github.com/goliatone/go-strfmt/pkg/path"
	"github.com/goliatone/go-strfmt/pkg/specifier"
	"github.com/goliatone/go-strfmt/pkg/template"
)

// Engine formats templates; see template.Engine.
type Engine = template.Engine

// Option customises an Engine.
type Option = template.Option

// Field describes one substitution found in a template.
type Field = template.Field

// Specifier is a parsed format specifier.
type Specifier = specifier.Specifier

// Formattable is implemented by values that render their own specifiers.
type Formattable = format.Formattable

// FormatterFunc adapts a function to Formattable.
type FormatterFunc = format.FormatterFunc

// TimeNames holds the day and month names used for time values.
type TimeNames = format.TimeNames

// Error types.
type (
	MalformedTemplateError      = diag.MalformedTemplateError
	MalformedPathError          = diag.MalformedPathError
	UnrecognizedFormatTypeError = diag.UnrecognizedFormatTypeError
	NotCallableError            = diag.NotCallableError
	SpecifierRangeError         = diag.SpecifierRangeError
)

// Sentinels matched by the error types through errors.Is.
var (
	ErrMalformedTemplate = diag.ErrMalformedTemplate
	ErrMalformedPath     = diag.ErrMalformedPath
	ErrUnrecognizedType  = diag.ErrUnrecognizedType
	ErrNotCallable       = diag.ErrNotCallable
	ErrSpecifierRange    = diag.ErrSpecifierRange
)

// Undefined stands for a missing value; it displays as "undefined".
var Undefined = format.Undefined

// Engine options.
var (
	WithLogger    = template.WithLogger
	WithLocale    = template.WithLocale
	WithTimeNames = template.WithTimeNames
	WithResolver  = template.WithResolver
)

var defaultEngine = template.New()

// New constructs an Engine.
func New(opts ...Option) *Engine {
	return template.New(opts...)
}

// Format renders tpl with args using the default engine.
func Format(tpl string, args ...any) (string, error) {
	return defaultEngine.VFormat(tpl, args)
}

// VFormat renders tpl against an argument slice using the default engine.
func VFormat(tpl string, args []any) (string, error) {
	return defaultEngine.VFormat(tpl, args)
}

// Fields lists the substitutions of tpl without rendering it.
func Fields(tpl string) ([]Field, error) {
	return template.Fields(tpl)
}

// FormatValue renders a single value under a raw specifier such as ">10.2f".
func FormatValue(v any, spec string) (string, error) {
	return format.Value(v, spec)
}

// ParseSpecifier parses a format specifier. It never fails; unknown input
// ends up in the presentation type.
func ParseSpecifier(spec string) Specifier {
	return specifier.Parse(spec)
}

// Tokenize splits a property path into its segments.
func Tokenize(p string) ([]string, error) {
	return path.Tokenize(p)
}

// GetPath resolves a property path against obj. Missing values yield
// Undefined.
func GetPath(obj any, p string) (any, error) {
	return path.Get(obj, p)
}

// SetPath assigns value at a property path. Missing intermediate values make
// it a no-op.
func SetPath(obj any, p string, value any) error {
	return path.Set(obj, p, value)
}
