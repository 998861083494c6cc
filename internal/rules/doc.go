// Package rules holds the declarative cross-field validation rules applied
// by SOFA verification.
//
// A rule is keyed by a field and may restrict:
//   - the values the field may take
//   - fields that must exist whenever the field exists (general)
//   - fields, values and dimension sizes required when the field has a
//     particular value (specific)
//
// The rule document also carries unit aliases, the table of deprecated
// conventions and the upgrade paths of deprecated convention versions.
// Rules are parsed once into typed structures; the embedded table is shared
// process-wide through Default.
package rules
