package specifier

import (
	"strconv"
	"strings"
)

// MaxWidth is the largest minimum width or precision the formatter accepts.
const MaxWidth = 1 << 16

// Align selects where padding goes inside the minimum width.
type Align rune

const (
	AlignNone      Align = 0
	AlignLeft      Align = '<'
	AlignRight     Align = '>'
	AlignCenter    Align = '^'
	AlignSignAware Align = '='
)

// Sign controls how the sign of numeric values is rendered.
type Sign rune

const (
	// SignDefault only marks negative numbers.
	SignDefault Sign = '-'
	SignAlways  Sign = '+'
	SignSpace   Sign = ' '
)

// Type is the presentation type, the last component of a specifier.
type Type rune

const (
	TypeNone          Type = 0
	TypeBinary        Type = 'b'
	TypeChar          Type = 'c'
	TypeDecimal       Type = 'd'
	TypeOctal         Type = 'o'
	TypeHexLower      Type = 'x'
	TypeHexUpper      Type = 'X'
	TypeExponentLower Type = 'e'
	TypeExponentUpper Type = 'E'
	TypeFixedLower    Type = 'f'
	TypeFixedUpper    Type = 'F'
	TypeGeneral       Type = 'g'
	TypeGeneralUpper  Type = 'G'
	TypePercent       Type = '%'
	TypeNumber        Type = 'n'
	TypeString        Type = 's'
)

// Known reports whether t has a renderer.
func (t Type) Known() bool {
	switch t {
	case TypeNone, TypeBinary, TypeChar, TypeDecimal, TypeOctal, TypeHexLower,
		TypeHexUpper, TypeExponentLower, TypeExponentUpper, TypeFixedLower,
		TypeFixedUpper, TypeGeneral, TypeGeneralUpper, TypePercent, TypeNumber,
		TypeString:
		return true
	default:
		return false
	}
}

// Integer reports whether t renders integers, where precision is ignored.
func (t Type) Integer() bool {
	switch t {
	case TypeBinary, TypeChar, TypeDecimal, TypeOctal, TypeHexLower, TypeHexUpper, TypeNumber:
		return true
	default:
		return false
	}
}

func (t Type) String() string {
	if t == TypeNone {
		return ""
	}
	return string(rune(t))
}

// Specifier is the structured form of `[[fill]align][sign][#][0][width][.precision][type]`.
type Specifier struct {
	Fill         rune
	HasFill      bool
	Align        Align
	Sign         Sign
	Alternate    bool
	ZeroPad      bool
	MinWidth     int
	Precision    int
	HasPrecision bool
	Type         Type
}

// Parse reads a format specifier. Every component is optional, so Parse never
// fails: components that do not match leave their field at its default and an
// unknown character in the type position is kept for the renderer to reject.
func Parse(raw string) Specifier {
	src := []rune(raw)
	i := 0

	peek := func(offset int) rune {
		if i+offset >= len(src) {
			return 0
		}
		return src[i+offset]
	}
	digits := func() (int, bool) {
		start := i
		for i < len(src) && src[i] >= '0' && src[i] <= '9' {
			i++
		}
		if i == start {
			return 0, false
		}
		n, err := strconv.Atoi(string(src[start:i]))
		if err != nil {
			// overflow saturates; the formatter rejects anything above MaxWidth
			return int(^uint(0) >> 1), true
		}
		return n, true
	}

	spec := Specifier{Fill: ' ', Sign: SignDefault}

	switch {
	case len(src) >= 2 && isAlign(peek(1)):
		spec.Fill, spec.HasFill = peek(0), true
		spec.Align = Align(peek(1))
		i += 2
	case isAlign(peek(0)):
		spec.Align = Align(peek(0))
		i++
	}

	switch peek(0) {
	case '+', '-', ' ':
		spec.Sign = Sign(peek(0))
		i++
	}

	if peek(0) == '#' {
		spec.Alternate = true
		i++
	}

	if peek(0) == '0' {
		spec.ZeroPad = true
		i++
	}

	if width, ok := digits(); ok {
		spec.MinWidth = width
	}

	if peek(0) == '.' && isDigit(peek(1)) {
		i++
		spec.Precision, _ = digits()
		spec.HasPrecision = true
	}

	if i < len(src) {
		spec.Type = Type(src[i])
	}

	if spec.ZeroPad && !spec.HasFill {
		spec.Fill, spec.HasFill = '0', true
		if spec.Align == AlignNone {
			spec.Align = AlignSignAware
		}
	}

	return spec
}

// String renders the specifier back into its textual form.
func (s Specifier) String() string {
	var sb strings.Builder
	if s.Align != AlignNone {
		if s.HasFill {
			sb.WriteRune(s.Fill)
		}
		sb.WriteRune(rune(s.Align))
	}
	if s.Sign != SignDefault && s.Sign != 0 {
		sb.WriteRune(rune(s.Sign))
	}
	if s.Alternate {
		sb.WriteByte('#')
	}
	if s.ZeroPad {
		sb.WriteByte('0')
	}
	if s.MinWidth > 0 {
		sb.WriteString(strconv.Itoa(s.MinWidth))
	}
	if s.HasPrecision {
		sb.WriteByte('.')
		sb.WriteString(strconv.Itoa(s.Precision))
	}
	sb.WriteString(s.Type.String())
	return sb.String()
}

func isAlign(r rune) bool {
	switch Align(r) {
	case AlignLeft, AlignRight, AlignCenter, AlignSignAware:
		return true
	default:
		return false
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
