// Package openapi collects the x-strfmt extensions embedded in OpenAPI
// documents so they can be validated before they reach the formatter.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// Extension keys. The namespace form nests the same keys in an object:
// `x-strfmt: {template: "...", path: "..."}`.
const (
	Namespace         = "x-strfmt"
	TemplateExtension = Namespace + "-template"
	PathExtension     = Namespace + "-path"
)

// Kind tells which validator an Entry needs.
type Kind string

const (
	KindTemplate Kind = "template"
	KindPath     Kind = "path"
	// KindUnknown marks keys under the namespace this tool does not know.
	KindUnknown Kind = "unknown"
)

// Entry is one extension value found in a document.
type Entry struct {
	Location []string
	Key      string
	Kind     Kind
	Value    any
}

// Options configure Collect.
type Options struct {
	// AllowExternalRefs lets the loader follow references to other files.
	AllowExternalRefs bool
}

// Collect loads raw (JSON or YAML) and returns every x-strfmt extension in
// document order: root, info, components, then paths sorted by key.
func Collect(ctx context.Context, raw []byte, opts Options) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: opts.AllowExternalRefs,
	}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}

	c := &collector{seen: map[*openapi3.Schema]struct{}{}}
	c.extensions([]string{"document"}, doc.Extensions)
	if doc.Info != nil {
		c.extensions([]string{"info"}, doc.Info.Extensions)
	}
	if doc.Components != nil {
		base := []string{"components"}
		c.extensions(base, doc.Components.Extensions)
		for _, name := range sortedKeys(doc.Components.Schemas) {
			c.schema(appendPath(base, "schemas", name), doc.Components.Schemas[name])
		}
	}
	if doc.Paths != nil {
		paths := doc.Paths.Map()
		for _, p := range sortedKeys(paths) {
			c.pathItem([]string{"paths", p}, paths[p])
		}
	}
	return c.entries, nil
}

type collector struct {
	entries []Entry
	seen    map[*openapi3.Schema]struct{}
}

func (c *collector) pathItem(loc []string, item *openapi3.PathItem) {
	if item == nil {
		return
	}
	c.extensions(loc, item.Extensions)
	c.parameters(loc, item.Parameters)

	ops := item.Operations()
	for _, method := range sortedKeys(ops) {
		op := ops[method]
		base := appendPath(loc, strings.ToUpper(method))
		if op.OperationID != "" {
			base = []string{"operation", op.OperationID}
		}
		c.extensions(base, op.Extensions)
		c.parameters(base, op.Parameters)
		if op.RequestBody != nil && op.RequestBody.Value != nil {
			body := op.RequestBody.Value
			c.extensions(appendPath(base, "requestBody"), body.Extensions)
			c.content(appendPath(base, "requestBody"), body.Content)
		}
		if op.Responses != nil {
			responses := op.Responses.Map()
			for _, code := range sortedKeys(responses) {
				ref := responses[code]
				if ref == nil || ref.Value == nil {
					continue
				}
				respLoc := appendPath(base, "responses", code)
				c.extensions(respLoc, ref.Value.Extensions)
				c.content(respLoc, ref.Value.Content)
			}
		}
	}
}

func (c *collector) parameters(loc []string, params openapi3.Parameters) {
	for _, ref := range params {
		if ref == nil || ref.Value == nil {
			continue
		}
		p := ref.Value
		paramLoc := appendPath(loc, "parameters", p.In+"."+p.Name)
		c.extensions(paramLoc, p.Extensions)
		c.schema(appendPath(paramLoc, "schema"), p.Schema)
		c.content(paramLoc, p.Content)
	}
}

func (c *collector) content(loc []string, content openapi3.Content) {
	for _, mime := range sortedKeys(content) {
		mt := content[mime]
		if mt == nil {
			continue
		}
		mtLoc := appendPath(loc, "content", mime)
		c.extensions(mtLoc, mt.Extensions)
		c.schema(mtLoc, mt.Schema)
	}
}

func (c *collector) schema(loc []string, ref *openapi3.SchemaRef) {
	if ref == nil || ref.Value == nil {
		return
	}
	s := ref.Value
	if _, ok := c.seen[s]; ok {
		return
	}
	c.seen[s] = struct{}{}
	defer delete(c.seen, s)

	c.extensions(loc, s.Extensions)
	for _, name := range sortedKeys(s.Properties) {
		c.schema(appendPath(loc, "properties."+name), s.Properties[name])
	}
	c.schema(appendPath(loc, "items"), s.Items)
	c.schema(appendPath(loc, "additionalProperties"), s.AdditionalProperties.Schema)
	for i, sub := range s.AllOf {
		c.schema(appendPath(loc, fmt.Sprintf("allOf[%d]", i)), sub)
	}
	for i, sub := range s.OneOf {
		c.schema(appendPath(loc, fmt.Sprintf("oneOf[%d]", i)), sub)
	}
	for i, sub := range s.AnyOf {
		c.schema(appendPath(loc, fmt.Sprintf("anyOf[%d]", i)), sub)
	}
}

func (c *collector) extensions(loc []string, extensions map[string]any) {
	for _, key := range sortedKeys(extensions) {
		value := extensions[key]
		switch {
		case key == Namespace:
			nested, ok := value.(map[string]any)
			if !ok {
				c.add(loc, key, KindUnknown, value)
				continue
			}
			for _, nestedKey := range sortedKeys(nested) {
				c.add(appendPath(loc, Namespace), nestedKey, kindOf(nestedKey), nested[nestedKey])
			}
		case key == TemplateExtension:
			c.add(loc, key, KindTemplate, value)
		case key == PathExtension:
			c.add(loc, key, KindPath, value)
		case strings.HasPrefix(key, Namespace+"-"):
			c.add(loc, key, KindUnknown, value)
		}
	}
}

func (c *collector) add(loc []string, key string, kind Kind, value any) {
	c.entries = append(c.entries, Entry{
		Location: append([]string(nil), loc...),
		Key:      key,
		Kind:     kind,
		Value:    value,
	})
}

func kindOf(key string) Kind {
	switch key {
	case string(KindTemplate):
		return KindTemplate
	case string(KindPath):
		return KindPath
	default:
		return KindUnknown
	}
}

func appendPath(path []string, segments ...string) []string {
	next := append([]string(nil), path...)
	return append(next, segments...)
}

// FormatLocation renders a location for diagnostics.
func FormatLocation(path []string) string {
	return strings.Join(path, " > ")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
