package format

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/zclconf/go-cty/cty"

	"github.com/goliatone/go-strfmt/pkg/diag"
	"github.com/goliatone/go-strfmt/pkg/specifier"
)

type undefined struct{}

func (undefined) String() string { return "undefined" }

// Undefined marks a value that could not be resolved. It displays as
// "undefined", while an explicit nil displays as "null".
var Undefined any = undefined{}

// IsUndefined reports whether v is the Undefined marker.
func IsUndefined(v any) bool {
	_, ok := v.(undefined)
	return ok
}

// Formattable is implemented by values that render their own specifiers.
type Formattable interface {
	FormatSpec(spec string) (string, error)
}

// FormatterFunc adapts a function to Formattable.
type FormatterFunc func(spec string) (string, error)

func (f FormatterFunc) FormatSpec(spec string) (string, error) {
	return f(spec)
}

// Value renders v under rawSpec. An empty specifier yields the display
// string. Otherwise Formattable values render themselves, numbers go through
// Number, times through Time and everything else through String applied to
// the display string.
func Value(v any, rawSpec string, opts ...Option) (string, error) {
	if rawSpec == "" {
		return Display(v), nil
	}
	if f, ok := v.(Formattable); ok {
		return f.FormatSpec(rawSpec)
	}
	if cv, ok := v.(cty.Value); ok {
		v = FromCty(cv)
	}

	switch val := v.(type) {
	case time.Time:
		return Time(val, rawSpec, NewOptions(opts...).TimeNames), nil
	case *time.Time:
		if val != nil {
			return Time(*val, rawSpec, NewOptions(opts...).TimeNames), nil
		}
	}

	spec := specifier.Parse(rawSpec)
	if err := checkRange(spec, rawSpec); err != nil {
		return "", err
	}
	if f, ok := toFloat(v); ok {
		return Number(f, spec, opts...)
	}
	return String(Display(v), spec), nil
}

func checkRange(spec specifier.Specifier, raw string) error {
	switch {
	case spec.MinWidth > specifier.MaxWidth:
		return &diag.SpecifierRangeError{Specifier: raw, Field: "width", Limit: specifier.MaxWidth}
	case spec.HasPrecision && spec.Precision > specifier.MaxWidth:
		return &diag.SpecifierRangeError{Specifier: raw, Field: "precision", Limit: specifier.MaxWidth}
	}
	return nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// Display renders v without a specifier. Numbers use their shortest form,
// slices join their elements with commas.
func Display(v any) string {
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return "null"
	}

	switch val := v.(type) {
	case nil:
		return "null"
	case undefined:
		return val.String()
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case []byte:
		return string(val)
	case json.Number:
		return val.String()
	case cty.Value:
		return Display(FromCty(val))
	case fmt.Stringer:
		return val.String()
	case error:
		return val.Error()
	}

	if f, ok := toFloat(v); ok {
		return numberText(f)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer:
		return Display(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		parts := make([]string, rv.Len())
		for i := range parts {
			elem := rv.Index(i).Interface()
			if elem == nil || IsUndefined(elem) {
				continue
			}
			parts[i] = Display(elem)
		}
		return strings.Join(parts, ",")
	}
	return fmt.Sprint(v)
}
