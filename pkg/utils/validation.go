package utils

import (
	"reflect"
	"strconv"
)

// IsNil reports whether v is nil, including typed nils hidden in an interface
// (a nil *int, []string or map stored in an any).
//
// Examples:
//   - nil -> true
//   - (*int)(nil) -> true
//   - []int(nil) -> true
//   - 0 -> false
//   - "" -> false
func IsNil(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

// ToSlice flattens a slice or array held in an any into []any. The second return value
// is false when v is neither.
//
// Examples:
//   - []int{1, 2} -> []any{1, 2}, true
//   - "abc" -> nil, false
func ToSlice(v any) ([]any, bool) {
	if v == nil {
		return nil, false
	}
	if vs, ok := v.([]any); ok {
		return vs, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	if rv.Kind() == reflect.Slice && rv.IsNil() {
		return nil, true
	}

	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// IsIntegerValue checks if a string is a base 10 integer that fits in an int64.
func IsIntegerValue(value string) bool {
	_, err := strconv.ParseInt(value, 10, 64)
	return err == nil
}
