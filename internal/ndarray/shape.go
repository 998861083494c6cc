package ndarray

import "fmt"

// AtLeastND returns the array with at least ndim dimensions. Promotion
// follows the 1-D/2-D/3-D rules of numerical array libraries: a 1-D array of
// length n becomes (1, n) in 2-D and (1, n, 1) in 3-D, a 2-D array (a, b)
// becomes (a, b, 1) in 3-D. Beyond three dimensions, singleton dimensions
// are appended at the end.
func (a *Array) AtLeastND(ndim int) *Array {
	shape := a.Shape()

	switch {
	case ndim == 1 && len(shape) == 0:
		shape = []int{1}
	case ndim == 2:
		switch len(shape) {
		case 0:
			shape = []int{1, 1}
		case 1:
			shape = []int{1, shape[0]}
		}
	case ndim >= 3:
		switch len(shape) {
		case 0:
			shape = []int{1, 1, 1}
		case 1:
			shape = []int{1, shape[0], 1}
		case 2:
			shape = []int{shape[0], shape[1], 1}
		}
	}

	return a.withShape(PadShape(shape, ndim))
}

// AtLeast2D is AtLeastND(2).
func (a *Array) AtLeast2D() *Array {
	return a.AtLeastND(2)
}

// PadTrailing appends singleton dimensions until the array has ndim
// dimensions.
func (a *Array) PadTrailing(ndim int) *Array {
	return a.withShape(PadShape(a.Shape(), ndim))
}

// Squeeze removes all singleton dimensions.
func (a *Array) Squeeze() *Array {
	shape := make([]int, 0, len(a.shape))
	for _, s := range a.shape {
		if s != 1 {
			shape = append(shape, s)
		}
	}

	return a.withShape(shape)
}

// MoveAxis moves axis src to position dst keeping the order of the other
// axes. Negative axes count from the end.
func (a *Array) MoveAxis(src, dst int) (*Array, error) {
	n := len(a.shape)
	if src < 0 {
		src += n
	}

	if dst < 0 {
		dst += n
	}

	if src < 0 || src >= n || dst < 0 || dst >= n {
		return nil, fmt.Errorf("%w: axis out of bounds for array of dimension %d", ErrShape, n)
	}

	// perm[i] is the source axis of result axis i
	perm := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if i != src {
			perm = append(perm, i)
		}
	}

	perm = append(perm[:dst], append([]int{src}, perm[dst:]...)...)

	shape := make([]int, n)
	for i, p := range perm {
		shape[i] = a.shape[p]
	}

	out := &Array{kind: a.kind, shape: shape}

	size := a.Size()
	switch a.kind {
	case String:
		out.strs = make([]string, size)
	case Complex:
		out.cplx = make([]complex128, size)
	default:
		out.nums = make([]float64, size)
	}

	srcStrides := strides(a.shape)
	index := make([]int, n)

	for flat := 0; flat < size; flat++ {
		// index walks result positions in row-major order
		from := 0
		for i, p := range perm {
			from += index[i] * srcStrides[p]
		}

		switch a.kind {
		case String:
			out.strs[flat] = a.strs[from]
		case Complex:
			out.cplx[flat] = a.cplx[from]
		default:
			out.nums[flat] = a.nums[from]
		}

		for i := n - 1; i >= 0; i-- {
			index[i]++
			if index[i] < shape[i] {
				break
			}

			index[i] = 0
		}
	}

	return out, nil
}

func strides(shape []int) []int {
	out := make([]int, len(shape))
	step := 1

	for i := len(shape) - 1; i >= 0; i-- {
		out[i] = step
		step *= shape[i]
	}

	return out
}

// PadShape appends ones to shape until it has ndim entries. Longer shapes
// are returned unchanged.
func PadShape(shape []int, ndim int) []int {
	out := append([]int{}, shape...)
	for len(out) < ndim {
		out = append(out, 1)
	}

	return out
}
