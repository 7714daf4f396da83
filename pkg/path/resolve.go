package path

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/zclconf/go-cty/cty"

	"github.com/goliatone/go-strfmt/pkg/format"
)

// Undefined is returned by Get when a segment cannot be resolved.
var Undefined = format.Undefined

// ErrNotSettable is wrapped by Set when the parent value cannot take the key.
var ErrNotSettable = errors.New("path: value is not settable")

// UnknownPropertyHandler is consulted when a key is missing from a value.
type UnknownPropertyHandler interface {
	UnknownProperty(key string) (any, bool)
}

// UnknownPropertySetter receives assignments to keys a value does not have.
// It reports whether it handled the assignment.
type UnknownPropertySetter interface {
	SetUnknownProperty(key string, value any) bool
}

// Get resolves path against root, returning Undefined when a segment is
// missing.
func Get(root any, path string) (any, error) {
	tokens, err := Tokenize(path)
	if err != nil {
		return nil, err
	}
	return GetTokens(root, tokens), nil
}

// GetTokens resolves already tokenized segments.
func GetTokens(root any, tokens []string) any {
	v, ok := LookupTokens(root, tokens)
	if !ok {
		return Undefined
	}
	return v
}

// Lookup is Get with an explicit found flag instead of the Undefined marker.
func Lookup(root any, path string) (any, bool, error) {
	tokens, err := Tokenize(path)
	if err != nil {
		return nil, false, err
	}
	v, ok := LookupTokens(root, tokens)
	return v, ok, nil
}

// LookupTokens walks tokens from root. A nil value or a missing key anywhere
// along the way stops the walk.
func LookupTokens(root any, tokens []string) (any, bool) {
	current := root
	for _, token := range tokens {
		next, ok := property(current, token)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

// Set assigns value at path inside root. A missing or nil intermediate value
// makes Set a no-op.
func Set(root any, path string, value any) error {
	tokens, err := Tokenize(path)
	if err != nil {
		return err
	}

	parent := root
	for _, token := range tokens[:len(tokens)-1] {
		next, ok := property(parent, token)
		if !ok || isNil(next) {
			return nil
		}
		parent = next
	}
	if isNil(parent) {
		return nil
	}
	return setProperty(parent, tokens[len(tokens)-1], value)
}

func property(obj any, key string) (any, bool) {
	if isNil(obj) || format.IsUndefined(obj) {
		return nil, false
	}

	switch typed := obj.(type) {
	case map[string]any:
		if v, ok := typed[key]; ok {
			return v, true
		}
	case []any:
		if i, ok := index(key, len(typed)); ok {
			return typed[i], true
		}
		return nil, false
	case cty.Value:
		return ctyProperty(typed, key)
	default:
		if v, ok := reflectProperty(reflect.ValueOf(obj), key); ok {
			return v, true
		}
	}

	if handler, ok := obj.(UnknownPropertyHandler); ok {
		return handler.UnknownProperty(key)
	}
	return nil, false
}

func reflectProperty(rv reflect.Value, key string) (any, bool) {
	rv = indirect(rv)
	if !rv.IsValid() {
		return nil, false
	}

	switch rv.Kind() {
	case reflect.Map:
		mk, ok := mapKey(rv.Type().Key(), key)
		if !ok {
			return nil, false
		}
		v := rv.MapIndex(mk)
		if !v.IsValid() {
			return nil, false
		}
		return v.Interface(), true
	case reflect.Slice, reflect.Array:
		i, ok := index(key, rv.Len())
		if !ok {
			return nil, false
		}
		return rv.Index(i).Interface(), true
	case reflect.Struct:
		f, ok := structField(rv, key)
		if !ok {
			return nil, false
		}
		return f.Interface(), true
	}
	return nil, false
}

func ctyProperty(v cty.Value, key string) (any, bool) {
	if !v.IsKnown() || v.IsNull() {
		return nil, false
	}
	v, _ = v.Unmark()

	ty := v.Type()
	switch {
	case ty.IsObjectType():
		if !ty.HasAttribute(key) {
			return nil, false
		}
		return v.GetAttr(key), true
	case ty.IsMapType():
		k := cty.StringVal(key)
		if has := v.HasIndex(k); has.IsKnown() && has.True() {
			return v.Index(k), true
		}
	case ty.IsListType() || ty.IsTupleType():
		if i, ok := index(key, v.LengthInt()); ok {
			return v.Index(cty.NumberIntVal(int64(i))), true
		}
	}
	return nil, false
}

func setProperty(obj any, key string, value any) error {
	if setter, ok := obj.(UnknownPropertySetter); ok {
		if _, exists := reflectProperty(reflect.ValueOf(obj), key); !exists && setter.SetUnknownProperty(key, value) {
			return nil
		}
	}

	if _, ok := obj.(cty.Value); ok {
		return fmt.Errorf("%w: cty values are immutable (key %q)", ErrNotSettable, key)
	}

	rv := reflect.ValueOf(obj)
	target := indirect(rv)
	if !target.IsValid() {
		return nil
	}

	switch target.Kind() {
	case reflect.Map:
		if target.IsNil() {
			return fmt.Errorf("%w: nil map for key %q", ErrNotSettable, key)
		}
		mk, ok := mapKey(target.Type().Key(), key)
		if !ok {
			return fmt.Errorf("%w: key %q does not fit %s", ErrNotSettable, key, target.Type().Key())
		}
		val, err := assignable(value, target.Type().Elem())
		if err != nil {
			return fmt.Errorf("%w: key %q: %v", ErrNotSettable, key, err)
		}
		target.SetMapIndex(mk, val)
		return nil
	case reflect.Slice, reflect.Array:
		i, ok := index(key, target.Len())
		if !ok {
			return fmt.Errorf("%w: index %q out of range", ErrNotSettable, key)
		}
		return assign(target.Index(i), key, value)
	case reflect.Struct:
		f, ok := structField(target, key)
		if !ok {
			return fmt.Errorf("%w: %s has no field %q", ErrNotSettable, target.Type(), key)
		}
		return assign(f, key, value)
	}
	return fmt.Errorf("%w: cannot set %q on %T", ErrNotSettable, key, obj)
}

func assign(dst reflect.Value, key string, value any) error {
	if !dst.CanSet() {
		return fmt.Errorf("%w: %q is not addressable, pass a pointer", ErrNotSettable, key)
	}
	val, err := assignable(value, dst.Type())
	if err != nil {
		return fmt.Errorf("%w: key %q: %v", ErrNotSettable, key, err)
	}
	dst.Set(val)
	return nil
}

func assignable(value any, to reflect.Type) (reflect.Value, error) {
	if value == nil {
		return reflect.Zero(to), nil
	}
	v := reflect.ValueOf(value)
	switch {
	case v.Type().AssignableTo(to):
		return v, nil
	case v.Type().ConvertibleTo(to) && v.Kind() != reflect.String && to.Kind() != reflect.String:
		return v.Convert(to), nil
	}
	return reflect.Value{}, fmt.Errorf("cannot use %T as %s", value, to)
}

func mapKey(keyType reflect.Type, key string) (reflect.Value, bool) {
	switch keyType.Kind() {
	case reflect.String:
		return reflect.ValueOf(key).Convert(keyType), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(key, 10, keyType.Bits())
		if err != nil {
			return reflect.Value{}, false
		}
		return reflect.ValueOf(n).Convert(keyType), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(key, 10, keyType.Bits())
		if err != nil {
			return reflect.Value{}, false
		}
		return reflect.ValueOf(n).Convert(keyType), true
	case reflect.Interface:
		return reflect.ValueOf(key), true
	}
	return reflect.Value{}, false
}

// structField finds an exported field by name, then by json tag.
func structField(rv reflect.Value, key string) (reflect.Value, bool) {
	rt := rv.Type()
	if f, ok := rt.FieldByName(key); ok && f.IsExported() {
		if v, err := rv.FieldByIndexErr(f.Index); err == nil {
			return v, true
		}
		return reflect.Value{}, false
	}
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == key {
			return rv.Field(i), true
		}
	}
	return reflect.Value{}, false
}

func index(key string, length int) (int, bool) {
	i, err := strconv.Atoi(key)
	if err != nil || i < 0 || i >= length {
		return 0, false
	}
	return i, true
}

func indirect(rv reflect.Value) reflect.Value {
	for rv.IsValid() && (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) {
		if rv.IsNil() {
			return reflect.Value{}
		}
		rv = rv.Elem()
	}
	return rv
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
