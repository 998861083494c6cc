package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"sofar/internal/common"
)

// Diagnostics holds all issues found by one verification run.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single issue.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Kind classifies the issue.
	Kind Kind
	// Section is the header the issue is listed under when rendered.
	Section string
	// Field names the field this relates to (if any).
	Field string
	// Message is the human-readable description.
	Message string
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(kind Kind, section, field, message string) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: DiagnosticError,
		Kind:     kind,
		Section:  section,
		Field:    field,
		Message:  message,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(kind Kind, section, field, message string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: DiagnosticWarning,
		Kind:     kind,
		Section:  section,
		Field:    field,
		Message:  message,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(kind Kind, section, field, message string) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity: DiagnosticInfo,
		Kind:     kind,
		Section:  section,
		Field:    field,
		Message:  message,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// HasWarnings returns true if there are any warning diagnostics.
func (d *Diagnostics) HasWarnings() bool {
	return len(d.Warnings) > 0
}

// HasKind reports whether an error of the given kind was recorded.
func (d *Diagnostics) HasKind(kind Kind) bool {
	for _, e := range d.Errors {
		if e.Kind == kind {
			return true
		}
	}

	return false
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Error returns an *Error wrapping all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	return &Error{Errors: d.Errors}
}

// ErrorText renders the errors as an ERRORS block, or "" if there are none.
func (d *Diagnostics) ErrorText() string {
	return renderBlock("ERRORS", d.Errors)
}

// WarningText renders the warnings as a WARNINGS block, or "" if there are none.
func (d *Diagnostics) WarningText() string {
	return renderBlock("WARNINGS", d.Warnings)
}

// Text renders errors followed by warnings.
func (d *Diagnostics) Text() string {
	return d.ErrorText() + d.WarningText()
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	msg := fmt.Sprintf("[%s] %s", d.Kind, d.Message)
	if len(d.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(d.Suggestions, ", ") + "?)"
	}

	return msg
}

// renderBlock lists the diagnostics under a titled block. Sections appear in
// order of their first diagnostic; each diagnostic becomes one "- " line.
func renderBlock(title string, list []Diagnostic) string {
	if len(list) == 0 {
		return ""
	}

	var (
		order    []string
		sections = map[string][]string{}
	)

	for _, item := range list {
		if _, ok := sections[item.Section]; !ok {
			order = append(order, item.Section)
		}

		sections[item.Section] = append(sections[item.Section], item.Message)
	}

	var b strings.Builder

	b.WriteString("\n" + title + "\n" + strings.Repeat("-", len(title)) + "\n")

	for i, section := range order {
		if i > 0 {
			b.WriteString("\n")
		}

		if section != "" {
			b.WriteString(section + "\n")
		}

		for _, msg := range sections[section] {
			b.WriteString("- " + msg + "\n")
		}
	}

	return b.String()
}

// Error is returned when a verification run recorded errors. It matches the
// sentinel of every recorded kind, so errors.Is(err, ErrShapeMismatch) holds
// whenever at least one shape error was found.
type Error struct {
	Errors []Diagnostic
}

// Error implements the error interface.
func (e *Error) Error() string {
	return strings.TrimPrefix(renderBlock("ERRORS", e.Errors), "\n")
}

// Is reports whether target is the sentinel of a recorded kind.
func (e *Error) Is(target error) bool {
	for _, d := range e.Errors {
		if errors.Is(d.Kind.Err(), target) {
			return true
		}
	}

	return false
}

// Kinds returns the distinct kinds of the recorded errors.
func (e *Error) Kinds() []Kind {
	kinds := make([]Kind, 0, len(e.Errors))
	for _, d := range e.Errors {
		kinds = append(kinds, d.Kind)
	}

	return common.Unique(kinds)
}
