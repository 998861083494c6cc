package sofa

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"sofar/internal/common"
	"sofar/internal/convention"
	"sofar/internal/ndarray"
)

// Exclude selects fields that are skipped when comparing objects.
type Exclude int

const (
	ExcludeNone Exclude = iota
	// ExcludeGlobal skips all GLOBAL_ attributes.
	ExcludeGlobal
	// ExcludeDate skips fields with "Date" in their name.
	ExcludeDate
	// ExcludeAttr skips all attributes.
	ExcludeAttr
)

func (e Exclude) String() string {
	switch e {
	case ExcludeNone:
		return ""
	case ExcludeGlobal:
		return "GLOBAL"
	case ExcludeDate:
		return "DATE"
	case ExcludeAttr:
		return "ATTR"
	default:
		return common.UnknownStr
	}
}

// ParseExclude parses "", "GLOBAL", "DATE" or "ATTR".
func ParseExclude(s string) (Exclude, error) {
	switch s {
	case "":
		return ExcludeNone, nil
	case "GLOBAL":
		return ExcludeGlobal, nil
	case "DATE":
		return ExcludeDate, nil
	case "ATTR":
		return ExcludeAttr, nil
	default:
		return ExcludeNone, errorf(ErrInvalidArgument, "exclude is %s but must be GLOBAL, DATE, or ATTR", s)
	}
}

const (
	approxFraction = 1e-7
	approxMargin   = 0
)

// Equals reports whether a and b hold the same data. With verbose every
// difference is logged at warn level through the logger of a.
func Equals(a, b *Object, exclude Exclude, verbose bool) bool {
	diffs := Differences(a, b, exclude)

	if verbose {
		for _, d := range diffs {
			a.logger().Warn(d)
		}
	}

	return len(diffs) == 0
}

// Differences lists why a and b are not identical. Numeric data is
// compared approximately and after removing singleton dimensions.
func Differences(a, b *Object, exclude Exclude) []string {
	keysA := a.comparable(exclude)
	keysB := b.comparable(exclude)

	if len(keysA) != len(keysB) {
		return []string{fmt.Sprintf("not identical: a has %d attributes for comparison and b has %d.",
			len(keysA), len(keysB))}
	}

	sortedA := slices.Sorted(slices.Values(keysA))
	if !slices.Equal(sortedA, slices.Sorted(slices.Values(keysB))) {
		return []string{"not identical: a and b do not have the same attributes"}
	}

	var diffs []string

	for _, key := range keysA {
		if msg := compareField(key, a, b); msg != "" {
			diffs = append(diffs, msg)
		}
	}

	return diffs
}

// comparable returns the field names that remain after applying exclude.
func (o *Object) comparable(exclude Exclude) []string {
	keys := make([]string, 0, len(o.names))

	for _, name := range o.names {
		switch exclude {
		case ExcludeGlobal:
			if strings.HasPrefix(name, common.GlobalPrefix) {
				continue
			}
		case ExcludeDate:
			if strings.Contains(name, "Date") {
				continue
			}
		case ExcludeAttr:
			if e, ok := o.Entry(name); ok && e.Type == convention.Attribute {
				continue
			}
		}

		keys = append(keys, name)
	}

	return keys
}

func fieldType(o *Object, name string) string {
	if e, ok := o.Entry(name); ok {
		return e.Type.String()
	}

	return common.UnknownStr
}

func compareField(key string, a, b *Object) string {
	ta, tb := fieldType(a, key), fieldType(b, key)
	if ta != tb {
		return fmt.Sprintf("not identical: %s has different data types (%s, %s)", key, ta, tb)
	}

	va, vb := a.values[key], b.values[key]

	switch ta {
	case convention.Attribute.String():
		if formatValue(va) != formatValue(vb) {
			return fmt.Sprintf("not identical: different values for %s", key)
		}
	case convention.Double.String():
		return compareNumeric(key, va, vb)
	case convention.String.String():
		return compareStrings(key, va, vb)
	default:
		return fmt.Sprintf("not identical: %s has different data types (%s, %s)", key, ta, tb)
	}

	return ""
}

func squeezed(v any) (*ndarray.Array, bool) {
	arr, ok := asArray(v)
	if !ok {
		return nil, false
	}

	return arr.Squeeze(), true
}

func compareNumeric(key string, va, vb any) string {
	arrA, okA := squeezed(va)
	arrB, okB := squeezed(vb)

	if !okA || !okB || arrA.Kind() == ndarray.String || arrB.Kind() == ndarray.String {
		return fmt.Sprintf("not identical: %s has different data types (%s, %s)", key, typeName(va), typeName(vb))
	}

	if !slices.Equal(arrA.Shape(), arrB.Shape()) {
		return fmt.Sprintf("not identical: %s has different shapes (%s, %s)",
			key, ndarray.FormatShape(arrA.Shape()), ndarray.FormatShape(arrB.Shape()))
	}

	opts := cmp.Options{cmpopts.EquateApprox(approxFraction, approxMargin), cmpopts.EquateNaNs()}
	if !cmp.Equal(interleaved(arrA), interleaved(arrB), opts) {
		return fmt.Sprintf("not identical: different values for %s", key)
	}

	return ""
}

// interleaved returns the data as floats; complex values contribute their
// real and imaginary parts.
func interleaved(a *ndarray.Array) []float64 {
	if a.Kind() != ndarray.Complex {
		return a.Floats()
	}

	c := a.Complexes()

	out := make([]float64, 0, 2*len(c))
	for _, v := range c {
		out = append(out, real(v), imag(v))
	}

	return out
}

func compareStrings(key string, va, vb any) string {
	arrA, okA := squeezed(va)
	arrB, okB := squeezed(vb)

	if !okA || !okB || arrA.Kind() != ndarray.String || arrB.Kind() != ndarray.String {
		return fmt.Sprintf("not identical: %s has different data types (%s, %s)", key, typeName(va), typeName(vb))
	}

	if !slices.Equal(arrA.Shape(), arrB.Shape()) || !slices.Equal(arrA.Strings(), arrB.Strings()) {
		return fmt.Sprintf("not identical: different values for %s", key)
	}

	return ""
}
