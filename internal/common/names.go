package common

import "strings"

// UnknownStr is returned by String methods for out-of-range enum values.
const UnknownStr = "unknown"

// GlobalPrefix marks attributes that belong to the whole object.
const GlobalPrefix = "GLOBAL_"

// DataPrefix marks data variables, the only variables allowed to carry an
// underscore in their name.
const DataPrefix = "Data_"

// UnitsSuffix is the suffix of every unit attribute.
const UnitsSuffix = "Units"

var flattener = strings.NewReplacer(":", "_", ".", "_")

// FlatName converts a qualified convention name into the identifier used by
// objects, e.g. "GLOBAL:Comment" -> "GLOBAL_Comment", "Data.IR:Units" ->
// "Data_IR_Units".
func FlatName(name string) string {
	return flattener.Replace(name)
}

// QualifiedName reverses FlatName for display and file output. The first
// underscore of a Data_ name becomes a dot, every other underscore a colon.
func QualifiedName(name string) string {
	if strings.HasPrefix(name, DataPrefix) {
		rest := strings.TrimPrefix(name, DataPrefix)

		return "Data." + strings.ReplaceAll(rest, "_", ":")
	}

	return strings.ReplaceAll(name, "_", ":")
}

// ParentName returns the part of an attribute name before its last
// underscore, or "" if the name has no underscore.
func ParentName(name string) string {
	idx := strings.LastIndex(name, "_")
	if idx < 0 {
		return ""
	}

	return name[:idx]
}
