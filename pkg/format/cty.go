package format

import (
	"github.com/zclconf/go-cty/cty"
)

// FromCty converts a cty value into the plain Go value the formatter knows how
// to render. Unknown values become Undefined and nulls become nil.
func FromCty(v cty.Value) any {
	if !v.IsKnown() {
		return Undefined
	}
	if v.IsNull() {
		return nil
	}
	v, _ = v.UnmarkDeep()

	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString()
	case ty == cty.Number:
		f, _ := v.AsBigFloat().Float64()
		return f
	case ty == cty.Bool:
		return v.True()
	case ty.IsListType() || ty.IsSetType() || ty.IsTupleType():
		out := make([]any, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			out = append(out, FromCty(elem))
		}
		return out
	case ty.IsMapType() || ty.IsObjectType():
		out := make(map[string]any, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			key, elem := it.Element()
			out[key.AsString()] = FromCty(elem)
		}
		return out
	default:
		return Undefined
	}
}
