package sofa

import (
	"strings"

	"sofar/internal/common"
	"sofar/internal/convention"
)

// standardLetters are the dimension letters defined by SOFA.
const standardLetters = "ERMNCIS"

// AddVariable adds a custom numeric ("double") or string ("string")
// variable with the given dimension string, e.g. "MI". Letters outside
// E, R, M, N, C, I and S define custom dimensions.
func (o *Object) AddVariable(name string, value any, dtype, dims string) error {
	return o.addEntry(name, value, dtype, dims)
}

// AddAttribute adds a custom attribute. Attribute names have the form
// Variable_Attribute, GLOBAL_Attribute or Data_Variable_Attribute.
func (o *Object) AddAttribute(name, value string) error {
	return o.addEntry(name, value, convention.Attribute.String(), "")
}

func (o *Object) addEntry(name string, value any, dtype, dims string) error {
	if o.Has(name) {
		return errorf(ErrAlreadyExists, "Entry %s already exists", name)
	}

	typ, err := convention.ParseFieldType(dtype)
	if err != nil {
		return errorf(ErrInvalidType, "%s", err.Error())
	}

	if reservedName(name, typ, true) {
		return errorf(ErrBadName, "%s starts with a reserved key word (PRIVATE, API, or GLOBAL)", name)
	}

	if typ != convention.Attribute && strings.Contains(name, "_") {
		return errorf(ErrBadName, "underscores '_' in the name are only allowed for attributes")
	}

	if typ == convention.Attribute {
		if !attributeUnderscores(name) {
			return errorf(ErrBadName, "The name of %s must have the form VariableName_AttributeName", name)
		}

		parent := common.ParentName(name)
		if !strings.HasPrefix(name, common.GlobalPrefix) {
			if _, ok := o.Entry(parent); !ok {
				return errorf(ErrBadName, "Adding Attribute %s requires variable %s", name, parent)
			}
		}
	}

	if typ != convention.Attribute && strings.TrimSpace(dims) == "" {
		return errorf(ErrMissingDimensions, "dimensions must be provided for entries of dtype double and string")
	}

	warned := map[rune]bool{}

	for _, r := range strings.ToUpper(dims) {
		if r == ',' || r == ' ' || strings.ContainsRune(standardLetters, r) || warned[r] {
			continue
		}

		warned[r] = true
		o.logger().Warnf("Added custom dimension %c to SOFA object", r)
	}

	return o.AddCustomEntry(name, value, typ, dims)
}

// attributeUnderscores reports whether an attribute name has one
// underscore, or one or two if it belongs to Data.
func attributeUnderscores(name string) bool {
	n := strings.Count(name, "_")
	if strings.HasPrefix(name, common.DataPrefix) {
		return n == 1 || n == 2
	}

	return n == 1
}

// AddCustomEntry registers a field without checking its name and assigns
// its value. Fields not defined by the convention are recorded as custom
// entries and survive convention reloads. Letters outside the standard set
// are stored in lower case to mark custom dimensions.
func (o *Object) AddCustomEntry(name string, value any, dtype convention.FieldType, dims string) error {
	if !o.schema.Has(name) {
		o.custom.put(convention.Entry{
			Name:       name,
			Type:       dtype,
			Dimensions: convention.ParseDimensions(customLetters(dims)),
		})
	}

	return o.unlocked(func() error {
		o.set(name, value)

		return nil
	})
}

func customLetters(dims string) string {
	var b strings.Builder

	for _, r := range dims {
		up := strings.ToUpper(string(r))
		if strings.Contains(standardLetters, up) {
			b.WriteString(up)
		} else {
			b.WriteString(strings.ToLower(string(r)))
		}
	}

	return b.String()
}
