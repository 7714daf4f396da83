package prompt

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-strfmt/pkg/path"
	"github.com/goliatone/go-strfmt/pkg/template"
)

// Arguments is the argument set assembled for one template: the positional
// values followed, when present, by a map of named values.
type Arguments struct {
	Positional []any
	Named      map[string]any
}

// List returns the argument slice handed to the formatter.
func (a Arguments) List() []any {
	out := append([]any(nil), a.Positional...)
	if len(a.Named) > 0 {
		out = append(out, a.Named)
	}
	return out
}

// SetNamed stores value under ref, creating intermediate maps as needed.
func (a *Arguments) SetNamed(ref string, value any) error {
	tokens, err := path.Tokenize(ref)
	if err != nil {
		return err
	}
	if a.Named == nil {
		a.Named = map[string]any{}
	}
	node := a.Named
	for _, token := range tokens[:len(tokens)-1] {
		next, ok := node[token].(map[string]any)
		if !ok {
			next = map[string]any{}
			node[token] = next
		}
		node = next
	}
	node[tokens[len(tokens)-1]] = value
	return nil
}

// Fill asks for every value the template's fields need that args does not
// already supply: positional arguments up to the highest index referenced
// and named references missing from args.Named.
func Fill(ctx context.Context, d Driver, fields []template.Field, args *Arguments) error {
	needed := 0
	for _, f := range fields {
		if f.Positional() {
			needed++
			continue
		}
		if i, err := strconv.Atoi(f.Name()); err == nil && i+1 > needed {
			needed = i + 1
		}
	}

	for i := len(args.Positional); i < needed; i++ {
		raw, err := d.Input(ctx, InputConfig{
			Message: fmt.Sprintf("Argument #%d:", i),
			Help:    "YAML scalars are typed: 42, 1.5, true, null. Anything else is text.",
		})
		if err != nil {
			return err
		}
		args.Positional = append(args.Positional, ParseValue(raw))
	}

	seen := map[string]struct{}{}
	for _, f := range fields {
		if f.Positional() || isIndex(f.Name()) {
			continue
		}
		if _, dup := seen[f.Ref]; dup {
			continue
		}
		seen[f.Ref] = struct{}{}

		if _, ok := path.LookupTokens(args.Named, f.Tokens); ok {
			continue
		}
		raw, err := d.Input(ctx, InputConfig{
			Message: fmt.Sprintf("Value for %s:", f.Ref),
		})
		if err != nil {
			return err
		}
		if err := args.SetNamed(f.Ref, ParseValue(raw)); err != nil {
			return fmt.Errorf("prompt: set %s: %w", f.Ref, err)
		}
	}
	return nil
}

// ParseValue decodes raw as a YAML scalar or flow collection so numbers and
// booleans keep their type. Undecodable input is returned as text.
func ParseValue(raw string) any {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return raw
	}
	var out any
	if err := yaml.Unmarshal([]byte(trimmed), &out); err != nil {
		return raw
	}
	switch out.(type) {
	case map[string]any, []any, nil, bool, int, float64:
		return out
	default:
		return raw
	}
}

func isIndex(name string) bool {
	_, err := strconv.Atoi(name)
	return err == nil
}
