package template

// Field describes one substitution found in a template.
type Field struct {
	// Ref is the reference before the colon; empty for positional fields.
	Ref string
	// Tokens holds the tokenized Ref.
	Tokens []string
	// Spec is the raw specifier, nested fields included.
	Spec string
	// Offset is the 0-based character offset of the opening brace.
	Offset int
	// Depth is 0 for top-level fields and grows for fields nested in a
	// specifier.
	Depth int
}

// Positional reports whether the field consumes the next argument.
func (f Field) Positional() bool {
	return f.Ref == ""
}

// Name returns the first path segment, the key a caller has to supply.
func (f Field) Name() string {
	if len(f.Tokens) == 0 {
		return ""
	}
	return f.Tokens[0]
}

// Fields scans tpl without resolving anything and lists its fields in the
// order they would be evaluated: nested specifier fields come before the
// field that contains them. Malformed templates fail exactly as VFormat would.
func Fields(tpl string) ([]Field, error) {
	s := &scanner{template: tpl}
	var fields []Field

	var visit func(depth int) fieldFunc
	visit = func(depth int) fieldFunc {
		return func(sp span) (string, error) {
			if sp.hasSpec && sp.specEnd > sp.specStart {
				if _, err := s.scan(sp.specStart, sp.specEnd, visit(depth+1)); err != nil {
					return "", err
				}
			}
			fields = append(fields, Field{
				Ref:    sp.ref(tpl),
				Tokens: sp.tokens,
				Spec:   sp.rawSpec(tpl),
				Offset: s.runeOffset(sp.open),
				Depth:  depth,
			})
			return "", nil
		}
	}

	if _, err := s.scan(0, len(tpl), visit(0)); err != nil {
		return nil, err
	}
	return fields, nil
}
