package template

import (
	"fmt"
	"io"
	"log/slog"
	"reflect"

	"golang.org/x/text/language"

	"github.com/goliatone/go-strfmt/pkg/format"
	"github.com/goliatone/go-strfmt/pkg/path"
)

// Resolver looks up tokenized references. It reports false when the value is
// missing.
type Resolver func(root any, tokens []string) (any, bool)

// Option customises an Engine.
type Option func(*Engine)

// WithLogger routes debug events (argument fallbacks, custom formatters) to
// logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLocale sets the locale used by the `n` presentation type.
func WithLocale(tag language.Tag) Option {
	return func(e *Engine) {
		e.formatOptions = append(e.formatOptions, format.WithLocale(tag))
	}
}

// WithTimeNames replaces the day and month names used for time values.
func WithTimeNames(names format.TimeNames) Option {
	return func(e *Engine) {
		e.formatOptions = append(e.formatOptions, format.WithTimeNames(names))
	}
}

// WithResolver swaps the reference lookup. The default walks maps, slices,
// structs and cty values.
func WithResolver(resolver Resolver) Option {
	return func(e *Engine) {
		if resolver != nil {
			e.resolver = resolver
		}
	}
}

// Engine formats `{}` templates. It holds no per-call state and is safe for
// concurrent use once built.
type Engine struct {
	logger        *slog.Logger
	formatOptions []format.Option
	resolver      Resolver
}

// New constructs an Engine applying opts over the defaults.
func New(opts ...Option) *Engine {
	e := &Engine{
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		resolver: path.LookupTokens,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(e)
	}
	return e
}

// Format renders tpl with args.
func (e *Engine) Format(tpl string, args ...any) (string, error) {
	return e.VFormat(tpl, args)
}

// VFormat renders tpl against an argument slice. Empty references consume
// arguments from the front; named references resolve against the arguments
// that remain, and against the only remaining argument when that fails.
func (e *Engine) VFormat(tpl string, args []any) (string, error) {
	r := &render{
		engine:  e,
		scanner: scanner{template: tpl},
		args:    &argQueue{items: args},
	}
	return r.scan(0, len(tpl), r.field)
}

// render carries the state of one VFormat call.
type render struct {
	scanner
	engine *Engine
	args   *argQueue
}

func (r *render) field(sp span) (string, error) {
	spec := ""
	if raw := sp.rawSpec(r.template); raw != "" {
		nested, err := r.scan(sp.specStart, sp.specEnd, r.field)
		if err != nil {
			return "", err
		}
		spec = nested
	}

	value := r.resolve(sp)
	if spec == "" {
		return format.Display(value), nil
	}

	if _, ok := value.(format.Formattable); ok {
		r.engine.logger.Debug("template: custom formatter", "ref", sp.ref(r.template), "spec", spec, "type", fmt.Sprintf("%T", value))
	}
	out, err := format.Value(value, spec, r.engine.formatOptions...)
	if err != nil {
		return "", fmt.Errorf("template: field %q: %w", r.template[sp.open:sp.specEnd+1], err)
	}
	return out, nil
}

func (r *render) resolve(sp span) any {
	if sp.tokens == nil {
		return r.args.shift()
	}

	remaining := r.args.items
	if v, ok := r.engine.resolver(remaining, sp.tokens); ok {
		return v
	}
	if len(remaining) == 1 && !isNil(remaining[0]) {
		if v, ok := r.engine.resolver(remaining[0], sp.tokens); ok {
			r.engine.logger.Debug("template: resolved against single argument", "ref", sp.ref(r.template))
			return v
		}
	}
	return format.Undefined
}

// argQueue is the positional cursor shared by a call and its nested fields.
type argQueue struct {
	items []any
}

func (q *argQueue) shift() any {
	if len(q.items) == 0 {
		return format.Undefined
	}
	head := q.items[0]
	q.items = q.items[1:]
	return head
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
