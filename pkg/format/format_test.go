package format

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/zclconf/go-cty/cty"
	"golang.org/x/text/language"

	"github.com/goliatone/go-strfmt/pkg/diag"
	"github.com/goliatone/go-strfmt/pkg/specifier"
)

func TestString(t *testing.T) {
	t.Parallel()

	cases := []struct {
		value string
		spec  string
		want  string
	}{
		{"x", "5", "x    "},
		{"x", "<5", "x    "},
		{"x", ">5", "    x"},
		{"abc", "*^8", "**abc***"},
		{"abc", "^4", "abc "},
		{"hello", ".2", "he"},
		{"hello", ">8.3", "     hel"},
		{"hello", "3", "hello"},
		{"żółw", "_>6", "__żółw"},
		{"ab", "→<4", "ab→→"},
	}

	for _, tc := range cases {
		if got := String(tc.value, specifier.Parse(tc.spec)); got != tc.want {
			t.Fatalf("String(%q, %q) = %q, want %q", tc.value, tc.spec, got, tc.want)
		}
	}
}

func TestNumber(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		value float64
		spec  string
		want  string
	}{
		{"plain", 42, "", "42"},
		{"right aligned by default", 42, "5", "   42"},
		{"left aligned", 42, "<5", "42   "},
		{"negative", -42, "+", "-42"},
		{"always sign", 42, "+", "+42"},
		{"space sign", 42, " ", " 42"},
		{"fixed precision", 3.14159, ".2f", "3.14"},
		{"fixed precision width", 3.14159, "8.2f", "    3.14"},
		{"fixed precision negative keeps digits", -3.14159, ".2f", "-3.14"},
		{"sign aware width excludes sign", -42, "=+8", "-      42"},
		{"fixed default significance", 1234.5678, "f", "1234.568"},
		{"fixed upper", 1e21, "F", "1.000000E+21"},
		{"rounds below half", 1.005, ".2f", "1.00"},
		{"rounds tie up", 2.5, ".0f", "3"},
		{"hex", 255, "x", "ff"},
		{"hex alternate", 255, "#x", "0xff"},
		{"hex upper", 255, "X", "FF"},
		{"hex upper alternate", 255, "#X", "0xFF"},
		{"binary", 5, "b", "101"},
		{"binary fraction", 0.5, "b", "0.1"},
		{"octal alternate", 8, "#o", "0o10"},
		{"char", 65, "c", "A"},
		{"invalid char", 0x110000, "c", "�"},
		{"exponent", 1.5, "e", "1.5e+0"},
		{"exponent upper", 12345, "E", "1.2345E+4"},
		{"percent", 0.5, "%", "50%"},
		{"decimal floors", -42.7, "d", "-43"},
		{"decimal positive", 42.7, "d", "42"},
		{"locale grouping", 1234567, "n", "1,234,567"},
		{"general upper", 1e21, "G", "1E+21"},
		{"general", 1e-7, "g", "1e-7"},
		{"sign aware", 42, "=+6", "+    42"},
		{"zero padded", 42, "+08d", "+00000042"},
		{"zero padded negative", -5, "05", "-00005"},
		{"custom fill", 7, "*>4", "***7"},
		{"centered", 7, "^5", "  7  "},
		{"infinity is not padded", math.Inf(1), "10", "Infinity"},
		{"negative infinity", math.Inf(-1), "+10", "-Infinity"},
		{"nan", math.NaN(), "x", "NaN"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := Number(tc.value, specifier.Parse(tc.spec))
			if err != nil {
				t.Fatalf("Number(%v, %q): %v", tc.value, tc.spec, err)
			}
			if got != tc.want {
				t.Fatalf("Number(%v, %q) = %q, want %q", tc.value, tc.spec, got, tc.want)
			}
		})
	}
}

func TestNumberLocale(t *testing.T) {
	t.Parallel()

	got, err := Number(1234567, specifier.Parse("n"), WithLocale(language.German))
	if err != nil {
		t.Fatalf("Number: %v", err)
	}
	if got != "1.234.567" {
		t.Fatalf("expected german grouping, got %q", got)
	}
}

func TestNumberUnrecognizedType(t *testing.T) {
	t.Parallel()

	_, err := Number(42, specifier.Parse("q"))
	var typeErr *diag.UnrecognizedFormatTypeError
	if !errors.As(err, &typeErr) {
		t.Fatalf("expected UnrecognizedFormatTypeError, got %v", err)
	}
	if typeErr.Type != "q" || !errors.Is(err, diag.ErrUnrecognizedType) {
		t.Fatalf("unexpected error: %+v", typeErr)
	}
}

func TestNumberText(t *testing.T) {
	t.Parallel()

	a, b := 0.1, 0.2
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{100, "100"},
		{-1.5, "-1.5"},
		{a + b, "0.30000000000000004"},
		{1e-6, "0.000001"},
		{1.5e-7, "1.5e-7"},
		{123456789012, "123456789012"},
		{1e21, "1e+21"},
		{-2.5e25, "-2.5e+25"},
	}
	for _, tc := range cases {
		if got := numberText(tc.in); got != tc.want {
			t.Fatalf("numberText(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRoundingHelpers(t *testing.T) {
	t.Parallel()

	fixed := []struct {
		in   float64
		p    int
		want string
	}{
		{1.25, 1, "1.3"},
		{-1.5, 0, "-2"},
		{0.000001, 3, "0.000"},
		{1e21, 2, "1e+21"},
		{9.995, 2, "9.99"},
		{99.5, 0, "100"},
	}
	for _, tc := range fixed {
		if got := toFixed(tc.in, tc.p); got != tc.want {
			t.Fatalf("toFixed(%v, %d) = %q, want %q", tc.in, tc.p, got, tc.want)
		}
	}

	precision := []struct {
		in   float64
		p    int
		want string
	}{
		{3.14, 3, "3.14"},
		{0.5, 7, "0.5000000"},
		{0.000001234, 2, "0.0000012"},
		{123456, 2, "1.2e+5"},
		{0, 3, "0.00"},
		{9.99, 2, "10"},
		{1e-7, 1, "1e-7"},
	}
	for _, tc := range precision {
		if got := toPrecision(tc.in, tc.p); got != tc.want {
			t.Fatalf("toPrecision(%v, %d) = %q, want %q", tc.in, tc.p, got, tc.want)
		}
	}

	radix := []struct {
		in    float64
		radix int
		want  string
	}{
		{255, 16, "ff"},
		{3.75, 2, "11.11"},
		{0, 8, "0"},
		{0.5, 16, "0.8"},
	}
	for _, tc := range radix {
		if got := radixText(tc.in, tc.radix); got != tc.want {
			t.Fatalf("radixText(%v, %d) = %q, want %q", tc.in, tc.radix, got, tc.want)
		}
	}
}

func TestTime(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC)
	names := DefaultTimeNames()

	cases := map[string]string{
		"Y-m-d H:M:S": "2024-03-05 14:07:09",
		"a A b B":     "Tue Tuesday Mar March",
		"I p":         "02 PM",
		"c":           "Tue Mar  5 14:07:09 2024",
		"x":           "03/05/24",
		"X":           "2:07:09 PM",
		"j":           "065",
		"w":           "2",
		"U":           "09",
		"W":           "10",
		"y":           "24",
		"[%Y]":        "[%2024]",
	}
	for spec, want := range cases {
		if got := Time(ts, spec, names); got != want {
			t.Fatalf("Time(%q) = %q, want %q", spec, got, want)
		}
	}

	midnight := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	if got := Time(midnight, "I p", names); got != "12 AM" {
		t.Fatalf("expected 12 AM at midnight, got %q", got)
	}
}

func TestTimeCustomNames(t *testing.T) {
	t.Parallel()

	names := DefaultTimeNames()
	names.Days[2] = "martes"
	names.Months[2] = "marzo"

	ts := time.Date(2024, time.March, 5, 9, 0, 0, 0, time.UTC)
	if got := Time(ts, "A, d B", names); got != "martes, 05 marzo" {
		t.Fatalf("unexpected rendering %q", got)
	}
}

func TestValue(t *testing.T) {
	t.Parallel()

	upper := FormatterFunc(func(spec string) (string, error) {
		return strings.ToUpper(spec), nil
	})
	ts := time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC)

	cases := []struct {
		name  string
		value any
		spec  string
		want  string
	}{
		{"number without spec", 42, "", "42"},
		{"nil", nil, "", "null"},
		{"undefined", Undefined, "", "undefined"},
		{"undefined padded", Undefined, ">11", "  undefined"},
		{"string aligned", "x", ">3", "  x"},
		{"bool padded", true, "6", "true  "},
		{"custom formatter", upper, "abc", "ABC"},
		{"cty number", cty.NumberIntVal(7), "03", "007"},
		{"cty string", cty.StringVal("hi"), "^4", " hi "},
		{"time", ts, "Y", "2024"},
		{"int64 hex", int64(255), "#x", "0xff"},
		{"uint8", uint8(9), "02", "09"},
		{"slice", []any{1, "a", nil}, "", "1,a,"},
		{"float display", 1.5, "", "1.5"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := Value(tc.value, tc.spec)
			if err != nil {
				t.Fatalf("Value: %v", err)
			}
			if got != tc.want {
				t.Fatalf("Value(%v, %q) = %q, want %q", tc.value, tc.spec, got, tc.want)
			}
		})
	}
}

func TestValuePropagatesFormatterErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	failing := FormatterFunc(func(string) (string, error) { return "", boom })
	if _, err := Value(failing, "x"); !errors.Is(err, boom) {
		t.Fatalf("expected formatter error, got %v", err)
	}
	if _, err := Value(3, "q"); !errors.Is(err, diag.ErrUnrecognizedType) {
		t.Fatalf("expected unrecognized type, got %v", err)
	}
}

func TestValueRejectsOversizedSpecifiers(t *testing.T) {
	t.Parallel()

	cases := []struct {
		value any
		spec  string
		field string
	}{
		{"x", "9999999999999999999", "width"},
		{42, ">99999999999999999999", "width"},
		{"x", "65537", "width"},
		{1.5, ".70000f", "precision"},
		{"x", ".9999999999999999999", "precision"},
	}
	for _, tc := range cases {
		_, err := Value(tc.value, tc.spec)
		var rangeErr *diag.SpecifierRangeError
		if !errors.As(err, &rangeErr) {
			t.Fatalf("Value(%v, %q): expected SpecifierRangeError, got %v", tc.value, tc.spec, err)
		}
		if rangeErr.Field != tc.field || rangeErr.Specifier != tc.spec || !errors.Is(err, diag.ErrSpecifierRange) {
			t.Fatalf("Value(%v, %q): unexpected error %+v", tc.value, tc.spec, rangeErr)
		}
	}

	if _, err := Number(1, specifier.Specifier{MinWidth: specifier.MaxWidth + 1}); !errors.Is(err, diag.ErrSpecifierRange) {
		t.Fatalf("Number: expected range error, got %v", err)
	}

	out, err := Value("x", "65536")
	if err != nil {
		t.Fatalf("Value at the limit: %v", err)
	}
	if len(out) != specifier.MaxWidth {
		t.Fatalf("expected %d characters, got %d", specifier.MaxWidth, len(out))
	}

	if got := String("x", specifier.Specifier{MinWidth: int(^uint(0) >> 1)}); len(got) != specifier.MaxWidth {
		t.Fatalf("String: expected padding capped at %d, got %d", specifier.MaxWidth, len(got))
	}
}

func TestDisplay(t *testing.T) {
	t.Parallel()

	n := 5
	var nilPtr *int
	cases := []struct {
		value any
		want  string
	}{
		{&n, "5"},
		{nilPtr, "null"},
		{[]int{1, 2}, "1,2"},
		{errors.New("bad"), "bad"},
		{[]byte("raw"), "raw"},
	}
	for _, tc := range cases {
		if got := Display(tc.value); got != tc.want {
			t.Fatalf("Display(%#v) = %q, want %q", tc.value, got, tc.want)
		}
	}
}

func TestFromCty(t *testing.T) {
	t.Parallel()

	val := cty.ObjectVal(map[string]cty.Value{
		"name": cty.StringVal("ada"),
		"tags": cty.ListVal([]cty.Value{cty.StringVal("x"), cty.StringVal("y")}),
		"ok":   cty.True,
		"none": cty.NullVal(cty.String),
	})

	want := map[string]any{
		"name": "ada",
		"tags": []any{"x", "y"},
		"ok":   true,
		"none": nil,
	}
	if diff := cmp.Diff(want, FromCty(val)); diff != "" {
		t.Fatalf("FromCty mismatch (-want +got):\n%s", diff)
	}
	if !IsUndefined(FromCty(cty.UnknownVal(cty.String))) {
		t.Fatalf("expected unknown values to be undefined")
	}
}
