package sofa

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	"sofar/internal/convention"
	"sofar/internal/diagnostic"
	"sofar/internal/ndarray"
)

// Sizes of the fixed dimensions.
const (
	sizeC = 3
	sizeI = 1
)

// inferDimensions derives the dimension sizes from the first dimension
// alternative of every shaped field. Lower-case letters take their size
// from the field shape padded to four dimensions; S is the length of the
// longest string. The first field that sets a letter wins; a different size
// set by a later field is reported.
func (v *verifier) inferDimensions() {
	o := v.o
	api := newSizeTable()
	setters := map[string]string{}
	longest := 0

	for _, name := range o.names {
		e, ok := o.Entry(name)
		if !ok || len(e.Dimensions) == 0 {
			continue
		}

		v.shaped = append(v.shaped, name)
		value := o.values[name]

		var shape []int
		if arr, ok := asArray(value); ok {
			shape = ndarray.PadShape(arr.Shape(), 4)
		}

		for i, r := range e.Dimensions.First() {
			if r == 'S' {
				if n, _, ok := stringShape(value); ok {
					longest = max(longest, n)
				}

				continue
			}

			if !unicode.IsLower(r) || i >= len(shape) {
				continue
			}

			letter := string(unicode.ToUpper(r))
			size := shape[i]

			prev, seen := api.get(letter)
			switch {
			case !seen:
				api.put(letter, size)
				setters[letter] = name
			case prev != size && setters[letter] != name:
				v.diag.AddError(diagnostic.KindShapeMismatch, sectionConflicts, name,
					fmt.Sprintf("%s sets dimension %s to %d but %s set it to %d", name, letter, size, setters[letter], prev))
			}
		}
	}

	api.put("C", sizeC)
	api.put("I", sizeI)
	api.put("S", longest)

	o.api = api
	o.dimensions = map[string]string{}
}

// checkShapes matches every shaped field against its dimension
// alternatives in declared order and records the first match.
func (v *verifier) checkShapes() {
	o := v.o

	for _, name := range v.shaped {
		e, _ := o.Entry(name)

		actual, ok := actualShape(e, o.values[name])
		if !ok {
			continue
		}

		var compare []int

		matched := false

		for _, alt := range e.Dimensions {
			ref, known := v.referenceShape(alt)
			compare = ndarray.PadShape(actual[:min(len(actual), len(ref))], len(ref))

			if known && slices.Equal(compare, ref) {
				o.dimensions[name] = strings.ToUpper(alt)
				matched = true

				break
			}
		}

		if matched {
			continue
		}

		verbose := make([]string, len(e.Dimensions))
		for i, alt := range e.Dimensions {
			verbose[i] = v.describe(alt)
		}

		v.diag.AddError(diagnostic.KindShapeMismatch, sectionShape, name,
			fmt.Sprintf("%s has shape %s but must have %s", name, ndarray.FormatShape(compare), strings.Join(verbose, ", ")))
	}
}

// actualShape returns the shape a field is matched with: the array shape
// of string data, the shape padded to four dimensions of multidimensional
// numeric data, and the number of elements otherwise.
func actualShape(e convention.Entry, value any) ([]int, bool) {
	if e.Type == convention.Attribute || e.Type == convention.String {
		_, shape, ok := stringShape(value)

		return shape, ok
	}

	arr, ok := asArray(value)
	if !ok {
		return nil, false
	}

	if len(e.Dimensions.First()) > 1 {
		return arr.AtLeastND(4).Shape(), true
	}

	return []int{arr.Size()}, true
}

// referenceShape returns the sizes of the letters of one alternative. S
// contributes 1 since string arrays do not store the string length in
// their shape. known is false if a letter has no inferred size.
func (v *verifier) referenceShape(alt string) (ref []int, known bool) {
	known = true

	for _, r := range alt {
		if r == 'S' {
			ref = append(ref, 1)

			continue
		}

		size, ok := v.o.api.get(string(unicode.ToUpper(r)))
		if !ok {
			known = false
		}

		ref = append(ref, size)
	}

	return ref, known
}

// describe formats an alternative with its sizes, e.g. "(M=2, C=3)".
func (v *verifier) describe(alt string) string {
	parts := make([]string, 0, len(alt))

	for _, r := range strings.ToUpper(alt) {
		letter := string(r)

		if size, ok := v.o.api.get(letter); ok {
			parts = append(parts, fmt.Sprintf("%s=%d", letter, size))
		} else {
			parts = append(parts, letter+"=?")
		}
	}

	return "(" + strings.Join(parts, ", ") + ")"
}
