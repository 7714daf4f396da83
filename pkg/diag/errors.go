package diag

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels matched through errors.Is by the typed errors below.
var (
	ErrMalformedTemplate = errors.New("malformed format template")
	ErrMalformedPath     = errors.New("malformed property path")
	ErrUnrecognizedType  = errors.New("unrecognized format type")
	ErrNotCallable       = errors.New("not callable")
	ErrSpecifierRange    = errors.New("format specifier out of range")
)

// Template failure reasons.
const (
	ReasonUnmatchedOpening = "Unmatched opening brace."
	ReasonUnmatchedClosing = "Unmatched closing brace."
)

// Caret returns a marker line of dashes ending in a caret that points at the
// 0-based offset of the line printed above it.
func Caret(offset int) string {
	if offset < 0 {
		offset = 0
	}
	return strings.Repeat("-", offset) + "^"
}

// MalformedTemplateError reports an unbalanced brace (or a malformed field
// reference) in a format template. Offset is relative to Template.
type MalformedTemplateError struct {
	Template string
	Offset   int
	Reason   string
	// Err holds the underlying path error when the field reference could not
	// be tokenized.
	Err error
}

func (e *MalformedTemplateError) Error() string {
	reason := e.Reason
	if reason == "" && e.Err != nil {
		var pathErr *MalformedPathError
		if errors.As(e.Err, &pathErr) {
			reason = pathErr.Detail()
		} else {
			reason = e.Err.Error()
		}
	}
	return fmt.Sprintf("Malformed format template:\n%s\n%s\n%s", e.Template, Caret(e.Offset), reason)
}

func (e *MalformedTemplateError) Is(target error) bool {
	return target == ErrMalformedTemplate
}

func (e *MalformedTemplateError) Unwrap() error {
	return e.Err
}

// MalformedPathError reports a lexical violation in a property path.
type MalformedPathError struct {
	Path     string
	Offset   int
	Expected string
	Actual   string
}

// Detail renders the expectation line without the path and caret.
func (e *MalformedPathError) Detail() string {
	return fmt.Sprintf("Expected %s as the next token, but got '%s'.", e.Expected, e.Actual)
}

func (e *MalformedPathError) Error() string {
	return fmt.Sprintf("Malformed property path:\n%s\n%s\n%s", e.Path, Caret(e.Offset), e.Detail())
}

func (e *MalformedPathError) Is(target error) bool {
	return target == ErrMalformedPath
}

// Shift returns a copy of the error with the offset moved by delta, used when
// a path was cut out of a larger source such as a template field.
func (e *MalformedPathError) Shift(delta int) *MalformedPathError {
	out := *e
	out.Offset += delta
	return &out
}

// UnrecognizedFormatTypeError is returned when a numeric specifier names a
// presentation type without a renderer.
type UnrecognizedFormatTypeError struct {
	Type string
}

func (e *UnrecognizedFormatTypeError) Error() string {
	return fmt.Sprintf("Unrecognized format type: %q", e.Type)
}

func (e *UnrecognizedFormatTypeError) Is(target error) bool {
	return target == ErrUnrecognizedType
}

// NotCallableError is raised by collaborators that expected a function value.
type NotCallableError struct {
	Value any
}

func (e *NotCallableError) Error() string {
	return fmt.Sprintf("%v is not callable.", e.Value)
}

func (e *NotCallableError) Is(target error) bool {
	return target == ErrNotCallable
}

// SpecifierRangeError is returned when a specifier asks for a width or
// precision above Limit.
type SpecifierRangeError struct {
	Specifier string
	Field     string
	Limit     int
}

func (e *SpecifierRangeError) Error() string {
	return fmt.Sprintf("Format specifier %q: %s exceeds %d.", e.Specifier, e.Field, e.Limit)
}

func (e *SpecifierRangeError) Is(target error) bool {
	return target == ErrSpecifierRange
}
