package ndarray

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrUnsupported is returned by FromValue for values that cannot be
// represented as an Array.
var ErrUnsupported = errors.New("unsupported value")

// FromValue converts Go scalars and (nested) slices into an Array. Numbers
// become 0-d arrays; []any literals as produced by YAML decoding are
// accepted as long as they are rectangular. Mixed int and float elements
// promote to float, numbers mixed with complex values to complex. Strings
// cannot be mixed with numbers.
func FromValue(v any) (*Array, error) {
	if a, ok := v.(*Array); ok {
		return a, nil
	}

	if v == nil {
		return nil, fmt.Errorf("%w: nil", ErrUnsupported)
	}

	b := &builder{leafDepth: -1}
	if err := b.walk(reflect.ValueOf(v), 0); err != nil {
		return nil, err
	}

	return b.array()
}

type leaf struct {
	kind Kind
	num  complex128
	str  string
}

type builder struct {
	shape     []int
	leafDepth int
	leaves    []leaf
}

func (b *builder) walk(v reflect.Value, depth int) error {
	for v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return fmt.Errorf("%w: nil element", ErrUnsupported)
		}

		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		if b.leafDepth >= 0 && depth >= b.leafDepth {
			return fmt.Errorf("%w: ragged nested sequence", ErrShape)
		}

		n := v.Len()

		switch {
		case depth == len(b.shape):
			b.shape = append(b.shape, n)
		case b.shape[depth] != n:
			return fmt.Errorf("%w: ragged nested sequence", ErrShape)
		}

		for i := 0; i < n; i++ {
			if err := b.walk(v.Index(i), depth+1); err != nil {
				return err
			}
		}

		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return b.add(depth, leaf{kind: Int, num: complex(float64(v.Int()), 0)})
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return b.add(depth, leaf{kind: Int, num: complex(float64(v.Uint()), 0)})
	case reflect.Float32, reflect.Float64:
		return b.add(depth, leaf{kind: Float, num: complex(v.Float(), 0)})
	case reflect.Complex64, reflect.Complex128:
		return b.add(depth, leaf{kind: Complex, num: v.Complex()})
	case reflect.String:
		return b.add(depth, leaf{kind: String, str: v.String()})
	default:
		return fmt.Errorf("%w: %s", ErrUnsupported, v.Type())
	}
}

func (b *builder) add(depth int, l leaf) error {
	switch {
	case b.leafDepth < 0:
		if depth != len(b.shape) {
			return fmt.Errorf("%w: ragged nested sequence", ErrShape)
		}

		b.leafDepth = depth
	case depth != b.leafDepth:
		return fmt.Errorf("%w: ragged nested sequence", ErrShape)
	}

	b.leaves = append(b.leaves, l)

	return nil
}

func (b *builder) array() (*Array, error) {
	kind := Float
	if len(b.leaves) > 0 {
		kind = b.leaves[0].kind
	}

	for _, l := range b.leaves[min(1, len(b.leaves)):] {
		switch {
		case l.kind == kind:
		case l.kind == String || kind == String:
			return nil, fmt.Errorf("%w: strings mixed with numbers", ErrUnsupported)
		case l.kind == Complex || kind == Complex:
			kind = Complex
		default:
			kind = Float
		}
	}

	a := &Array{kind: kind, shape: b.shape}
	if a.shape == nil {
		a.shape = []int{}
	}

	switch kind {
	case String:
		a.strs = make([]string, len(b.leaves))
		for i, l := range b.leaves {
			a.strs[i] = l.str
		}
	case Complex:
		a.cplx = make([]complex128, len(b.leaves))
		for i, l := range b.leaves {
			a.cplx[i] = l.num
		}
	default:
		a.nums = make([]float64, len(b.leaves))
		for i, l := range b.leaves {
			a.nums[i] = real(l.num)
		}
	}

	return a, nil
}
