package sofa

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"sofar/internal/ndarray"
)

// normalize converts a value to its stored form. Strings and arrays are
// kept; other values become arrays with at least two dimensions, collapsed
// to a scalar if they hold one element. Values that cannot be converted are
// stored as they are and reported by the type check.
func normalize(v any) any {
	switch v.(type) {
	case string, *ndarray.Array:
		return v
	}

	arr, err := ndarray.FromValue(v)
	if err != nil {
		return v
	}

	arr = arr.AtLeast2D()
	if item, ok := arr.Item(); ok {
		return item
	}

	return arr
}

// asArray returns the value as an array; scalars become 0-d arrays.
func asArray(v any) (*ndarray.Array, bool) {
	arr, err := ndarray.FromValue(v)
	if err != nil {
		return nil, false
	}

	return arr, true
}

// typeName describes the type of a stored value in messages.
func typeName(v any) string {
	if arr, ok := v.(*ndarray.Array); ok {
		return arr.Kind().String() + " array"
	}

	return fmt.Sprintf("%T", v)
}

// isNumber reports whether v is a real scalar number.
func isNumber(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return true
	}

	return false
}

// stringShape returns the length of the longest string and the shape of a
// string field. A single string counts as a (1, 1) array.
func stringShape(v any) (int, []int, bool) {
	switch x := v.(type) {
	case string:
		return utf8.RuneCountInString(x), []int{1, 1}, true
	case []string:
		n := 0
		for _, s := range x {
			n = max(n, utf8.RuneCountInString(s))
		}

		return n, []int{len(x)}, true
	case *ndarray.Array:
		return x.MaxStringLen(), x.Shape(), true
	}

	return 0, nil, false
}

// formatValue renders a value for messages and summaries.
func formatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case *ndarray.Array:
		return x.String()
	}

	return fmt.Sprint(v)
}
