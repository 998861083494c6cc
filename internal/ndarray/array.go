package ndarray

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"sofar/internal/common"
)

// Kind is the element kind of an Array.
type Kind int

const (
	Float Kind = iota
	Int
	Complex
	String
)

// String returns the element kind name.
func (k Kind) String() string {
	switch k {
	case Float:
		return "float"
	case Int:
		return "int"
	case Complex:
		return "complex"
	case String:
		return "string"
	default:
		return common.UnknownStr
	}
}

// ErrShape is returned when data and shape do not agree.
var ErrShape = errors.New("invalid shape")

// Array is an immutable n-dimensional array in row-major order.
type Array struct {
	kind  Kind
	shape []int
	nums  []float64
	cplx  []complex128
	strs  []string
}

// FromFloats returns a 1-D float array.
func FromFloats(data ...float64) *Array {
	return &Array{kind: Float, shape: []int{len(data)}, nums: append([]float64(nil), data...)}
}

// FromInts returns a 1-D int array.
func FromInts(data ...int) *Array {
	nums := make([]float64, len(data))
	for i, v := range data {
		nums[i] = float64(v)
	}

	return &Array{kind: Int, shape: []int{len(data)}, nums: nums}
}

// FromComplex returns a 1-D complex array.
func FromComplex(data ...complex128) *Array {
	return &Array{kind: Complex, shape: []int{len(data)}, cplx: append([]complex128(nil), data...)}
}

// FromStrings returns a 1-D string array.
func FromStrings(data ...string) *Array {
	return &Array{kind: String, shape: []int{len(data)}, strs: append([]string(nil), data...)}
}

// Zeros returns a float array of the given shape filled with zeros.
func Zeros(shape ...int) *Array {
	return &Array{kind: Float, shape: append([]int{}, shape...), nums: make([]float64, common.Product(shape))}
}

// Kind returns the element kind.
func (a *Array) Kind() Kind { return a.kind }

// IsNumeric reports whether the elements are float or int.
func (a *Array) IsNumeric() bool { return a.kind == Float || a.kind == Int }

// Shape returns a copy of the shape.
func (a *Array) Shape() []int { return append([]int{}, a.shape...) }

// NDim returns the number of dimensions.
func (a *Array) NDim() int { return len(a.shape) }

// Size returns the number of elements.
func (a *Array) Size() int { return common.Product(a.shape) }

// Floats returns a copy of the data of a float or int array, nil otherwise.
func (a *Array) Floats() []float64 {
	if !a.IsNumeric() {
		return nil
	}

	return append([]float64(nil), a.nums...)
}

// Complexes returns a copy of the data of a complex array, nil otherwise.
func (a *Array) Complexes() []complex128 {
	if a.kind != Complex {
		return nil
	}

	return append([]complex128(nil), a.cplx...)
}

// Strings returns a copy of the data of a string array, nil otherwise.
func (a *Array) Strings() []string {
	if a.kind != String {
		return nil
	}

	return append([]string(nil), a.strs...)
}

// element returns the i-th flat element as a Go scalar.
func (a *Array) element(i int) any {
	switch a.kind {
	case Int:
		return int(a.nums[i])
	case Complex:
		return a.cplx[i]
	case String:
		return a.strs[i]
	default:
		return a.nums[i]
	}
}

// Item returns the single element of a one-element array as a Go scalar
// (int, float64, complex128 or string).
func (a *Array) Item() (any, bool) {
	if a.Size() != 1 {
		return nil, false
	}

	return a.element(0), true
}

// At returns the element at the given index.
func (a *Array) At(index ...int) (any, error) {
	if len(index) != len(a.shape) {
		return nil, fmt.Errorf("%w: index of length %d for %d dimensions", ErrShape, len(index), len(a.shape))
	}

	flat := 0

	for i, idx := range index {
		if idx < 0 || idx >= a.shape[i] {
			return nil, fmt.Errorf("index %d is out of bounds for axis %d with size %d", idx, i, a.shape[i])
		}

		flat = flat*a.shape[i] + idx
	}

	return a.element(flat), nil
}

// MaxStringLen returns the length in characters of the longest string of a
// string array, 0 for other kinds.
func (a *Array) MaxStringLen() int {
	n := 0
	for _, s := range a.strs {
		n = max(n, utf8.RuneCountInString(s))
	}

	return n
}

// withShape returns a view with a new shape of the same size. Data slices
// are shared since arrays are never mutated.
func (a *Array) withShape(shape []int) *Array {
	return &Array{kind: a.kind, shape: shape, nums: a.nums, cplx: a.cplx, strs: a.strs}
}

// Clone returns a deep copy.
func (a *Array) Clone() *Array {
	return &Array{
		kind:  a.kind,
		shape: a.Shape(),
		nums:  append([]float64(nil), a.nums...),
		cplx:  append([]complex128(nil), a.cplx...),
		strs:  append([]string(nil), a.strs...),
	}
}

// Reshape returns the array with a new shape holding the same number of elements.
// Dimensions must not be negative.
func (a *Array) Reshape(shape ...int) (*Array, error) {
	for _, n := range shape {
		if n < 0 {
			return nil, fmt.Errorf("%w: negative dimension in shape %s", ErrShape, FormatShape(shape))
		}
	}

	if common.Product(shape) != a.Size() {
		return nil, fmt.Errorf("%w: cannot reshape array of size %d into shape %s",
			ErrShape, a.Size(), FormatShape(shape))
	}

	return a.withShape(append([]int{}, shape...)), nil
}

// MustReshape is like Reshape but panics on a size mismatch.
func (a *Array) MustReshape(shape ...int) *Array {
	out, err := a.Reshape(shape...)
	if err != nil {
		panic(err)
	}

	return out
}

// String formats the array in nested bracket notation, e.g. "[[0 0.09 0]]".
func (a *Array) String() string {
	if len(a.shape) == 0 {
		return a.formatElement(0)
	}

	var b strings.Builder

	a.format(&b, 0, 0)

	return b.String()
}

func (a *Array) format(b *strings.Builder, dim, offset int) {
	stride := common.Product(a.shape[dim+1:])

	b.WriteString("[")

	for i := 0; i < a.shape[dim]; i++ {
		if i > 0 {
			b.WriteString(" ")
		}

		if dim == len(a.shape)-1 {
			b.WriteString(a.formatElement(offset + i))
		} else {
			a.format(b, dim+1, offset+i*stride)
		}
	}

	b.WriteString("]")
}

func (a *Array) formatElement(i int) string {
	switch a.kind {
	case String:
		return strconv.Quote(a.strs[i])
	case Complex:
		return strconv.FormatComplex(a.cplx[i], 'g', -1, 128)
	default:
		return strconv.FormatFloat(a.nums[i], 'g', -1, 64)
	}
}

// FormatShape formats a shape as a tuple, e.g. "(1, 2, 3)".
func FormatShape(shape []int) string {
	parts := make([]string, len(shape))
	for i, s := range shape {
		parts[i] = strconv.Itoa(s)
	}

	return "(" + strings.Join(parts, ", ") + ")"
}
