package format

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/goliatone/go-strfmt/pkg/diag"
	"github.com/goliatone/go-strfmt/pkg/specifier"
)

// Number renders value under spec. Infinities and NaN are returned as is,
// without padding. Numbers align right unless the specifier says otherwise;
// with `=` the padding goes between the sign and the digits. Widths or
// precisions above specifier.MaxWidth fail with a SpecifierRangeError.
func Number(value float64, spec specifier.Specifier, opts ...Option) (string, error) {
	if err := checkRange(spec, spec.String()); err != nil {
		return "", err
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return numberText(value), nil
	}

	sign := signText(spec.Sign, value)

	v := value
	precision := 0
	if spec.HasPrecision {
		v, _ = strconv.ParseFloat(toFixed(v, spec.Precision), 64)
		precision = spec.Precision + 1
	}
	v = math.Abs(v)

	digits, err := numberDigits(value, v, precision, spec, opts)
	if err != nil {
		return "", err
	}

	if spec.HasPrecision && !spec.Type.Integer() {
		digits = truncateRunes(digits, spec.Precision+2)
	}

	pad := specifier.Specifier{
		Fill:     spec.Fill,
		HasFill:  spec.HasFill,
		Align:    spec.Align,
		MinWidth: spec.MinWidth,
	}
	if pad.Align == specifier.AlignNone {
		pad.Align = specifier.AlignRight
	}

	if spec.Align == specifier.AlignSignAware {
		return sign + String(digits, pad), nil
	}
	return String(sign+digits, pad), nil
}

func signText(sign specifier.Sign, value float64) string {
	if value < 0 {
		return "-"
	}
	switch sign {
	case specifier.SignAlways:
		return "+"
	case specifier.SignSpace:
		return " "
	default:
		return ""
	}
}

// numberDigits renders the unsigned digits. source is the original signed
// value, v the rounded magnitude.
func numberDigits(source, v float64, precision int, spec specifier.Specifier, opts []Option) (string, error) {
	switch spec.Type {
	case specifier.TypeDecimal:
		return numberText(math.Abs(math.Floor(source))), nil
	case specifier.TypeBinary:
		return prefixed(spec, "0b", radixText(v, 2)), nil
	case specifier.TypeOctal:
		return prefixed(spec, "0o", radixText(v, 8)), nil
	case specifier.TypeHexLower:
		return prefixed(spec, "0x", radixText(v, 16)), nil
	case specifier.TypeHexUpper:
		return prefixed(spec, "0x", strings.ToUpper(radixText(v, 16))), nil
	case specifier.TypeChar:
		return codePoint(v), nil
	case specifier.TypeExponentLower:
		return toExponential(v), nil
	case specifier.TypeExponentUpper:
		return strings.ToUpper(toExponential(v)), nil
	case specifier.TypeFixedLower, specifier.TypeFixedUpper:
		if precision == 0 {
			precision = 7
		}
		text := toPrecision(v, precision)
		if spec.Type == specifier.TypeFixedUpper {
			text = strings.ToUpper(text)
		}
		return text, nil
	case specifier.TypePercent:
		scaled, _ := strconv.ParseFloat(toPrecision(v, 7), 64)
		return numberText(scaled*100) + "%", nil
	case specifier.TypeNumber:
		o := NewOptions(opts...)
		p := message.NewPrinter(o.Locale)
		return p.Sprint(number.Decimal(v, number.MaxFractionDigits(3))), nil
	case specifier.TypeGeneralUpper:
		return strings.ToUpper(numberText(v)), nil
	case specifier.TypeNone, specifier.TypeGeneral, specifier.TypeString:
		return strings.ToLower(numberText(v)), nil
	default:
		return "", &diag.UnrecognizedFormatTypeError{Type: spec.Type.String()}
	}
}

func prefixed(spec specifier.Specifier, prefix, digits string) string {
	if spec.Alternate {
		return prefix + digits
	}
	return digits
}

func codePoint(v float64) string {
	r := rune(math.Trunc(v))
	if v > math.MaxInt32 || !utf8.ValidRune(r) {
		return string(utf8.RuneError)
	}
	return string(r)
}
