package sofa

import (
	"fmt"
	"strings"

	"sofar/internal/convention"
	"sofar/internal/diagnostic"
	"sofar/internal/ndarray"
)

// Section headers of the verification report.
const (
	sectionMissing       = "Detected missing mandatory data (call AddMissing() to fix this):"
	sectionAddedDefaults = "Added mandatory data with default values:"
	sectionUndefined     = "Detected data that is not defined by the convention:"
	sectionType          = "Detected data of wrong type:"
	sectionOrphans       = "Detected attributes with missing variables:"
	sectionUnderscores   = "Detected attribute names with too many or little underscores. " +
		"Names must have the form Variable_Attribute, Data_Attribute (one underscore), " +
		"or Data_Variable_Attribute (two underscores):"
	sectionVariableNames = "Detected variable names with too many underscores. " +
		"Underscores are only allowed for the variable Data:"
	sectionReserved  = "Detected variable or attribute with reserved key words PRIVATE, API, or GLOBAL:"
	sectionShadowing = "Detected custom variable or attribute with reserved names. " +
		"Custom data shall not have the same name as data contained in the convention itself:"
	sectionConflicts  = "Detected conflicting dimension sizes:"
	sectionShape      = "Detected variables of wrong shape:"
	sectionContent    = "Detected violations of the SOFA convention:"
	sectionDeprecated = "Detected deprecations:"
)

// Verify checks the object against its convention and the verification
// rules and infers the dimension sizes returned by API.
//
// The checks run in order: completeness, data types, names, dimension
// inference, shapes, content rules, write-mode restrictions and
// deprecations. Missing or ill-typed data stops verification before the
// dimensions are inferred unless issues are ignored. With OnIssueFail
// missing mandatory data is an error; with every other policy it is added
// with default values and reported as a warning.
//
// Issues are reported according to onIssue: OnIssueFail logs warnings and
// returns errors as *diagnostic.Error, OnIssuePrint writes the report to
// Config.Out, OnIssueCollect returns it and OnIssueIgnore drops it. The
// returned error is also set if the convention of the object is unknown.
func (o *Object) Verify(onIssue OnIssue, mode Mode) (string, error) {
	d, err := o.verify(onIssue, mode)
	if err != nil {
		return "", err
	}

	return o.report(d, onIssue)
}

// Diagnose verifies the object like Verify with OnIssueCollect and returns
// the structured issues.
func (o *Object) Diagnose(mode Mode) (*diagnostic.Diagnostics, error) {
	return o.verify(OnIssueCollect, mode)
}

func (o *Object) report(d *diagnostic.Diagnostics, onIssue OnIssue) (string, error) {
	switch onIssue {
	case OnIssueFail:
		if d.HasWarnings() {
			o.logger().Warn(strings.TrimPrefix(d.WarningText(), "\n"))
		}

		return "", d.Error()
	case OnIssuePrint:
		if text := d.Text(); text != "" {
			if _, err := fmt.Fprint(o.cfg.Out, text); err != nil {
				return "", fmt.Errorf("failed to print verification report: %w", err)
			}
		}

		return "", nil
	case OnIssueCollect:
		return d.Text(), nil
	default:
		return "", nil
	}
}

// verifier holds the state of one verification run.
type verifier struct {
	o       *Object
	onIssue OnIssue
	mode    Mode
	diag    diagnostic.Diagnostics

	// fields with a dimension string in object order
	shaped []string
}

func (o *Object) verify(onIssue OnIssue, mode Mode) (*diagnostic.Diagnostics, error) {
	if err := o.UpdateConvention(VersionMatch); err != nil {
		return nil, err
	}

	v := &verifier{o: o, onIssue: onIssue, mode: mode}

	v.checkCompleteness()
	v.checkTypes()

	if v.diag.HasErrors() && onIssue != OnIssueIgnore {
		return &v.diag, nil
	}

	v.checkNames()
	v.inferDimensions()
	v.checkShapes()
	v.checkRules()
	v.checkUnits()
	v.checkDeprecation()

	return &v.diag, nil
}

// checkCompleteness reports absent mandatory fields. Unless verification
// fails on issues, the fields are added with their defaults.
func (v *verifier) checkCompleteness() {
	for _, e := range v.o.entries() {
		if !e.Flags.IsMandatory() || v.o.Has(e.Name) {
			continue
		}

		if v.onIssue == OnIssueFail {
			v.diag.AddError(diagnostic.KindIncomplete, sectionMissing, e.Name, e.Name)

			continue
		}

		_ = v.o.unlocked(func() error {
			v.o.set(e.Name, defaultValue(e))

			return nil
		})

		v.diag.AddWarning(diagnostic.KindIncomplete, sectionAddedDefaults, e.Name, e.Name)
	}
}

func (v *verifier) checkTypes() {
	for _, name := range v.o.names {
		e, ok := v.o.Entry(name)
		if !ok {
			v.diag.AddError(diagnostic.KindNotFound, sectionUndefined, name,
				fmt.Sprintf("%s is neither defined by %s nor a custom entry", name, v.o.schema.ID()))

			continue
		}

		if msg := typeError(name, e.Type, v.o.values[name]); msg != "" {
			v.diag.AddError(diagnostic.KindTypeMismatch, sectionType, name, msg)
		}
	}
}

// typeError returns why value does not fit a field of type t, or "".
func typeError(name string, t convention.FieldType, value any) string {
	switch t {
	case convention.Attribute:
		if _, ok := value.(string); !ok {
			return fmt.Sprintf("%s must be string but is %s", name, typeName(value))
		}
	case convention.Double:
		switch x := value.(type) {
		case *ndarray.Array:
			switch x.Kind() {
			case ndarray.Complex:
				return fmt.Sprintf("%s must be int or float but is %s", name, typeName(value))
			case ndarray.String:
				return fmt.Sprintf("%s must be int, float or numeric array but is %s", name, typeName(value))
			}
		case complex64, complex128:
			return fmt.Sprintf("%s must be int or float but is %s", name, typeName(value))
		default:
			if !isNumber(value) {
				return fmt.Sprintf("%s must be int, float or numeric array but is %s", name, typeName(value))
			}
		}
	case convention.String:
		switch x := value.(type) {
		case string:
		case *ndarray.Array:
			if x.Kind() != ndarray.String {
				return fmt.Sprintf("%s must be string array but is %s", name, typeName(value))
			}
		default:
			return fmt.Sprintf("%s must be string or string array but is %s", name, typeName(value))
		}
	}

	return ""
}
