package path

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-strfmt/pkg/diag"
)

var (
	leadingSegment = regexp.MustCompile(`^[a-zA-Z0-9_$]+$`)
	dotSegment     = regexp.MustCompile(`^[a-zA-Z_$][a-zA-Z0-9_$]*$`)
	indexSegment   = regexp.MustCompile(`^\[-?\d+\]`)
)

const delimiters = "[]."

// tokenizer holds the state of a single Tokenize call. idx is the byte offset
// of the unconsumed remainder inside full.
type tokenizer struct {
	full string
	idx  int
}

// Tokenize splits a property path into its segments:
//
//	foo.bar[0]['baz qux']  ->  foo, bar, 0, baz qux
//
// The leading segment may start with a digit. Dot segments must be
// identifiers; anything else goes in brackets, either as a whole number or
// quoted with escaped quotes allowed inside.
func Tokenize(path string) ([]string, error) {
	tz := &tokenizer{full: path}
	return tz.run()
}

func (tz *tokenizer) run() ([]string, error) {
	rest := tz.full
	next := nextDelimiter(rest, 0)

	first := rest
	if next >= 0 {
		first = rest[:next]
		rest = rest[next:]
		tz.idx = next
	}
	if !leadingSegment.MatchString(first) {
		actual := first
		if actual == "" {
			actual = charAt(rest, 0)
		}
		return nil, tz.fail(0, "property", actual)
	}

	tokens := []string{first}
	for next >= 0 {
		var (
			token    string
			consumed int
			err      error
		)
		if rest[0] == '[' || rest[0] == ']' {
			token, consumed, err = tz.indexed(rest)
		} else {
			token, consumed, err = tz.property(rest)
		}
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
		rest = rest[consumed:]
		tz.idx += consumed
		next = nextDelimiter(rest, 0)
	}
	return tokens, nil
}

// property reads a `.name` segment.
func (tz *tokenizer) property(rest string) (string, int, error) {
	end := nextDelimiter(rest, 1)
	if end < 0 {
		end = len(rest)
	}
	name := rest[1:end]
	if !dotSegment.MatchString(name) {
		return "", 0, tz.fail(tz.idx+1, "a string", charAt(tz.full, tz.idx+1))
	}
	return name, end, nil
}

// indexed reads a `[0]`, `['name']` or `["name"]` segment.
func (tz *tokenizer) indexed(rest string) (string, int, error) {
	if rest[0] == ']' {
		return "", 0, tz.fail(tz.idx, "'['", "]")
	}

	start := 1
	quote := ""
	if !indexSegment.MatchString(rest) {
		quote = charAt(rest, 1)
		if quote != `"` && quote != "'" {
			return "", 0, tz.fail(tz.idx+1, `''', '"', or a number`, quote)
		}
		start = 2
	}

	var end int
	if quote != "" {
		end = indexFrom(rest, quote, start)
		for end > 0 && rest[end-1] == '\\' {
			end = indexFrom(rest, quote, end+1)
		}
		if end < 0 {
			return "", 0, tz.fail(tz.idx+2, "closing "+quote, rest[2:])
		}
		if c := charAt(rest, end+1); c != "]" {
			return "", 0, tz.fail(tz.idx+end+1, "']'", c)
		}
	} else {
		end = indexFrom(rest, "]", start)
	}

	consumed := end + len(quote) + 1
	if c := charAt(rest, consumed); c != "" && c != "[" && c != "." {
		return "", 0, tz.fail(tz.idx+consumed, "'[', '.', or EOS", c)
	}

	token := rest[start:end]
	if quote != "" {
		token = strings.ReplaceAll(token, `\`+quote, quote)
	}
	return token, consumed, nil
}

// fail builds the error for a byte offset into the full path; the reported
// offset counts runes so the caret lines up under the printed path.
func (tz *tokenizer) fail(offset int, expected, actual string) error {
	if offset > len(tz.full) {
		offset = len(tz.full)
	}
	return &diag.MalformedPathError{
		Path:     tz.full,
		Offset:   utf8.RuneCountInString(tz.full[:offset]),
		Expected: expected,
		Actual:   actual,
	}
}

func nextDelimiter(s string, from int) int {
	if from >= len(s) {
		return -1
	}
	i := strings.IndexAny(s[from:], delimiters)
	if i < 0 {
		return -1
	}
	return from + i
}

func indexFrom(s, sub string, from int) int {
	if from > len(s) {
		return -1
	}
	i := strings.Index(s[from:], sub)
	if i < 0 {
		return -1
	}
	return from + i
}

// charAt returns the rune starting at byte offset i, or "" past the end.
func charAt(s string, i int) string {
	if i < 0 || i >= len(s) {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s[i:])
	if r == utf8.RuneError && size <= 1 {
		return s[i : i+1]
	}
	return s[i : i+size]
}
