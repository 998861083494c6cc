package rules

import (
	"slices"
	"sort"
	"strconv"
	"strings"
)

// Rule is the set of constraints keyed by one field.
type Rule struct {
	Field string
	// Values lists the allowed values; nil allows any value.
	Values []string
	// General lists fields that must exist if Field exists.
	General []string
	// Specific lists the dependencies triggered by particular values of Field.
	Specific []Dependency
}

// Dependency returns the dependency triggered by value.
func (r Rule) Dependency(value string) (Dependency, bool) {
	for _, d := range r.Specific {
		if d.Trigger == value {
			return d, true
		}
	}

	return Dependency{}, false
}

// Dependency lists what must hold while a field has the value Trigger.
type Dependency struct {
	Trigger    string
	Fields     []FieldConstraint
	Dimensions []DimensionConstraint
}

// FieldConstraint requires Field to exist and, if Values is not nil, to hold
// one of Values.
type FieldConstraint struct {
	Field  string
	Values []string
}

// DimensionConstraint restricts the size of a dimension letter.
type DimensionConstraint struct {
	Letter      string
	Sizes       map[int]struct{}
	Description string
}

// Allows reports whether size is permitted.
func (c DimensionConstraint) Allows(size int) bool {
	_, ok := c.Sizes[size]

	return ok
}

// SortedSizes returns the permitted sizes in ascending order.
func (c DimensionConstraint) SortedSizes() []int {
	sizes := make([]int, 0, len(c.Sizes))
	for s := range c.Sizes {
		sizes = append(sizes, s)
	}

	sort.Ints(sizes)

	return sizes
}

// Upgrade migrates deprecated versions of a convention to a newer one.
type Upgrade struct {
	// From lists the convention versions the upgrade applies to.
	From []string
	// To lists the targets as "<Name>_<Version>".
	To      []string
	Move    []Move
	Remove  []string
	Message string
}

// Applies reports whether the upgrade starts from version.
func (u Upgrade) Applies(version string) bool {
	want, err := strconv.ParseFloat(version, 64)
	if err != nil {
		return slices.Contains(u.From, version)
	}

	for _, v := range u.From {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f == want {
			return true
		}
	}

	return false
}

// Target splits the i-th target into convention name and version.
func (u Upgrade) Target(i int) (name, version string) {
	t := u.To[i]

	idx := strings.LastIndex(t, "_")
	if idx < 0 {
		return t, ""
	}

	return t[:idx], t[idx+1:]
}

// Move relocates the data of one field during an upgrade.
type Move struct {
	Source string
	Target string
	// Axis is an optional [from, to] axis move applied to the data.
	Axis []int
	// DeprecatedDimensions lists dimension letters that the target
	// convention no longer uses.
	DeprecatedDimensions []string
}
