package rules

import (
	"regexp"
	"slices"
	"strings"

	"sofar/internal/common"
)

// CaseSensitive lists the fields whose values are matched exactly.
var CaseSensitive = []string{"GLOBAL_DataType", "GLOBAL_SOFAConventions"}

// Lowered lists trigger values that select specific dependencies regardless
// of their case.
var Lowered = []string{"cartesian", "spherical", "spherical harmonics"}

var unitSeparator = regexp.MustCompile(`, ?`)

// MatchValue reports whether value is allowed for field. A nil refs allows
// every value. Fields in CaseSensitive must match exactly; other values are
// compared in lower case, and unit fields are also matched through the
// alias table.
func (r *Registry) MatchValue(field, value string, refs []string) bool {
	if refs == nil || slices.Contains(refs, value) {
		return true
	}

	if slices.Contains(CaseSensitive, field) {
		return false
	}

	lower := strings.ToLower(value)
	if slices.Contains(refs, lower) {
		return true
	}

	if !strings.HasSuffix(field, common.UnitsSuffix) {
		return false
	}

	for _, ref := range refs {
		if r.MatchUnit(lower, ref) {
			return true
		}
	}

	return false
}

// MatchUnit reports whether a unit string agrees with the reference unit
// string. Units may be separated by ", ", "," or " "; both strings must list
// the same number of units and each unit must equal, or be an alias of, the
// reference unit at the same position.
func (r *Registry) MatchUnit(value, ref string) bool {
	refs := unitSeparator.Split(ref, -1)

	if r.matchUnits(unitSeparator.Split(strings.ToLower(value), -1), refs) {
		return true
	}

	// "degree degree metre"
	return r.matchUnits(strings.Fields(strings.ToLower(value)), refs)
}

func (r *Registry) matchUnits(units, refs []string) bool {
	if len(units) != len(refs) {
		return false
	}

	for i, unit := range units {
		unit = strings.TrimSpace(unit)
		if unit == refs[i] {
			continue
		}

		if alias, ok := r.unitAliases[unit]; !ok || alias != refs[i] {
			return false
		}
	}

	return true
}

// Canonical returns the trigger value used to look up specific
// dependencies.
func Canonical(value string) string {
	if lower := strings.ToLower(value); slices.Contains(Lowered, lower) {
		return lower
	}

	return value
}
