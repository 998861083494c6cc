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

// Info filters.
const (
	InfoAll       = "all"
	InfoMandatory = "mandatory"
	InfoOptional  = "optional"
	InfoReadOnly  = "read only"
	InfoData      = "data"
)

// inspectMaxSize is the largest number of elements Inspect prints.
const inspectMaxSize = 6

func (o *Object) header() string {
	line := fmt.Sprintf("%s %s (SOFA version %s)\n", o.Convention(), o.ConventionVersion(), o.attribute(FieldVersion))

	return line + strings.Repeat("-", len(line)) + "\n"
}

// Info describes the convention entries of the fields in the object.
// filter is one of the Info constants or the name of a field; a field name
// lists the details of every field whose name contains it.
func (o *Object) Info(filter string) (string, error) {
	if err := o.UpdateConvention(VersionMatch); err != nil {
		return "", err
	}

	var b strings.Builder

	b.WriteString(o.header())

	switch {
	case slices.Contains([]string{InfoAll, InfoMandatory, InfoOptional, InfoReadOnly, InfoData}, filter):
		fmt.Fprintf(&b, "showing %s entries : type (shape), flags\n\n", filter)

		for _, name := range o.names {
			e, ok := o.Entry(name)
			if !ok || !infoSelects(filter, e) {
				continue
			}

			fmt.Fprintf(&b, "%s : %s", name, e.Type)

			if len(e.Dimensions) > 0 {
				fmt.Fprintf(&b, " (%s)", strings.ToUpper(e.Dimensions.String()))
			}

			b.WriteString(", " + mandatoryLabel(e.Flags))

			if e.Flags.IsReadOnly() {
				b.WriteString(", read only")
			}

			if e.Comment != "" {
				fmt.Fprintf(&b, "\n    %s\n", e.Comment)
			} else {
				b.WriteString("\n")
			}
		}
	case o.Has(filter):
		for _, name := range o.names {
			if !strings.Contains(name, filter) {
				continue
			}

			e, _ := o.Entry(name)
			fmt.Fprintf(&b, "%s\n    type: %s\n    mandatory: %t\n    read only: %t\n"+
				"    default: %v\n    shape: %s\n    comment: %s\n",
				name, e.Type, e.Flags.IsMandatory(), e.Flags.IsReadOnly(),
				e.Default, strings.ToUpper(e.Dimensions.String()), e.Comment)
		}
	default:
		return "", errorf(ErrInvalidArgument, "info='%s' is invalid", filter)
	}

	return b.String(), nil
}

func infoSelects(filter string, e convention.Entry) bool {
	switch filter {
	case InfoMandatory:
		return e.Flags.IsMandatory()
	case InfoOptional:
		return !e.Flags.IsMandatory()
	case InfoReadOnly:
		return e.Flags.IsReadOnly()
	case InfoData:
		return e.Type != convention.Attribute
	default:
		return true
	}
}

// Inspect verifies the object, printing issues to Config.Out, and
// summarizes its data. Attributes and scalars are shown with their value,
// arrays with their shape in dimension letters and, if they hold at most
// six elements, with their value.
func (o *Object) Inspect() (string, error) {
	if _, err := o.Verify(OnIssuePrint, ModeWrite); err != nil {
		return "", err
	}

	var b strings.Builder

	b.WriteString(o.header())

	for _, name := range o.names {
		value := o.values[name]
		e, _ := o.Entry(name)

		arr, isArray := value.(*ndarray.Array)
		if e.Type == convention.Attribute || !isArray || arr.Size() == 1 {
			fmt.Fprintf(&b, "%s : %s\n", name, formatValue(value))

			continue
		}

		dims := o.dimensions[name]
		shape := ndarray.PadShape(arr.Shape(), len(dims))

		parts := make([]string, 0, len(shape))
		for i, s := range shape {
			letter := "?"
			if i < len(dims) {
				letter = string(dims[i])
			}

			parts = append(parts, fmt.Sprintf("%s=%d", letter, s))
		}

		fmt.Fprintf(&b, "%s : (%s)\n", name, strings.Join(parts, ", "))

		if arr.Size() <= inspectMaxSize {
			b.WriteString("  " + strings.ReplaceAll(arr.Squeeze().String(), "\n", "\n  ") + "\n")
		}
	}

	return b.String(), nil
}

// updateDimensions verifies the object and fails if the dimension sizes
// could not be inferred.
func (o *Object) updateDimensions() error {
	d, err := o.verify(OnIssueCollect, ModeWrite)
	if err != nil {
		return err
	}

	if d.HasKind(diagnostic.KindTypeMismatch) || d.HasKind(diagnostic.KindShapeMismatch) || len(o.api.list()) == 0 {
		return errorf(ErrDimensionsUnavailable, "Dimensions can not be shown because variables of wrong "+
			"type or shape were detected. Call Verify() for more information.")
	}

	return nil
}

// GetDimension returns the size of a dimension such as "N".
func (o *Object) GetDimension(letter string) (int, error) {
	if err := o.updateDimensions(); err != nil {
		return 0, err
	}

	size, ok := o.api.get(letter)
	if !ok {
		return 0, errorf(ErrUnknownDimension,
			"%s is not a valid dimension. See ListDimensions for a list of valid dimensions.", letter)
	}

	return size, nil
}

// ListDimensions describes every dimension with its size and the field
// that sets it.
func (o *Object) ListDimensions() (string, error) {
	if err := o.updateDimensions(); err != nil {
		return "", err
	}

	var b strings.Builder

	for _, d := range o.api.list() {
		fmt.Fprintf(&b, "%s = %d %s", d.Letter, d.Size, o.dimensionDescription(d.Letter))

		lower := unicode.ToLower([]rune(d.Letter)[0])
		for _, e := range o.entries() {
			dims := e.Dimensions.String()
			if strings.ContainsRune(dims, lower) {
				fmt.Fprintf(&b, " (set by %s of dimension %s)", e.Name, strings.ToUpper(dims))

				break
			}
		}

		b.WriteString("\n")
	}

	return b.String(), nil
}

func (o *Object) dimensionDescription(letter string) string {
	switch letter {
	case "M":
		return "measurements"
	case "N":
		dataType := o.attribute(FieldDataType)

		switch {
		case strings.HasPrefix(dataType, "FIR"):
			return "samples"
		case strings.HasPrefix(dataType, "TF"):
			return "frequencies"
		case strings.HasPrefix(dataType, "SOS"):
			return "SOS coefficients"
		default:
			return "samples, frequencies, or SOS coefficients"
		}
	case "R":
		if strings.Contains(o.attribute("ReceiverPosition_Type"), "harmonic") {
			return "receiver spherical harmonics coefficients"
		}

		return "receiver"
	case "E":
		if strings.Contains(o.attribute("EmitterPosition_Type"), "harmonic") {
			return "emitter spherical harmonics coefficients"
		}

		return "emitter"
	case "S":
		return "maximum string length"
	case "C":
		return "coordinate dimensions, fixed"
	case "I":
		return "single dimension, fixed"
	default:
		return "custom dimension"
	}
}
