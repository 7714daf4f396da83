package template

import (
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-strfmt/pkg/diag"
	"github.com/goliatone/go-strfmt/pkg/path"
)

const (
	openingBrace       = '{'
	closingBrace       = '}'
	specifierSeparator = ':'
)

// span locates one `{ref:spec}` field inside the template. All positions are
// byte offsets into the full template.
type span struct {
	open      int
	refStart  int
	refEnd    int
	specStart int
	specEnd   int
	hasSpec   bool
	tokens    []string
}

func (s span) ref(tpl string) string {
	return tpl[s.refStart:s.refEnd]
}

func (s span) rawSpec(tpl string) string {
	if !s.hasSpec {
		return ""
	}
	return tpl[s.specStart:s.specEnd]
}

// scanner walks a template. Nested specifiers are scanned over sub-ranges of
// the same template so every diagnostic reports outer-template offsets.
type scanner struct {
	template string
}

// fieldFunc produces the text that replaces a field.
type fieldFunc func(span) (string, error)

// scan renders template[start:end], handing every field to field.
func (s *scanner) scan(start, end int, field fieldFunc) (string, error) {
	tpl := s.template
	var sb strings.Builder
	sb.Grow(end - start)

	for i := start; i < end; {
		switch tpl[i] {
		case openingBrace:
			if i+1 < end && tpl[i+1] == openingBrace {
				sb.WriteByte(openingBrace)
				i += 2
				continue
			}
			sp, next, err := s.field(i, end)
			if err != nil {
				return "", err
			}
			out, err := field(sp)
			if err != nil {
				return "", err
			}
			sb.WriteString(out)
			i = next
		case closingBrace:
			if i+1 < end && tpl[i+1] == closingBrace {
				sb.WriteByte(closingBrace)
				i += 2
				continue
			}
			return "", s.fail(i, diag.ReasonUnmatchedClosing)
		default:
			sb.WriteByte(tpl[i])
			i++
		}
	}
	return sb.String(), nil
}

// field reads the field opened at open and returns it together with the
// offset just past its closing brace.
func (s *scanner) field(open, end int) (span, int, error) {
	tpl := s.template
	sp := span{open: open, refStart: open + 1}
	depth := 0

	for j := open + 1; j < end; j++ {
		c := tpl[j]
		if !sp.hasSpec {
			switch c {
			case specifierSeparator:
				sp.hasSpec = true
				sp.refEnd = j
				sp.specStart = j + 1
			case openingBrace:
				return span{}, 0, s.fail(open, diag.ReasonUnmatchedOpening)
			case closingBrace:
				sp.refEnd = j
				return s.tokenize(sp, j+1)
			}
			continue
		}

		switch c {
		case openingBrace:
			depth++
		case closingBrace:
			depth--
			if depth < 0 {
				sp.specEnd = j
				return s.tokenize(sp, j+1)
			}
		}
	}
	return span{}, 0, s.fail(open, diag.ReasonUnmatchedOpening)
}

func (s *scanner) tokenize(sp span, next int) (span, int, error) {
	ref := sp.ref(s.template)
	if ref == "" {
		return sp, next, nil
	}
	tokens, err := path.Tokenize(ref)
	if err != nil {
		return span{}, 0, s.wrapPathError(sp.refStart, err)
	}
	sp.tokens = tokens
	return sp, next, nil
}

func (s *scanner) wrapPathError(refStart int, err error) error {
	tplErr := &diag.MalformedTemplateError{Template: s.template, Err: err}
	if pathErr, ok := err.(*diag.MalformedPathError); ok {
		tplErr.Offset = pathErr.Shift(s.runeOffset(refStart)).Offset
	}
	return tplErr
}

func (s *scanner) fail(at int, reason string) error {
	return &diag.MalformedTemplateError{
		Template: s.template,
		Offset:   s.runeOffset(at),
		Reason:   reason,
	}
}

func (s *scanner) runeOffset(at int) int {
	return utf8.RuneCountInString(s.template[:at])
}
