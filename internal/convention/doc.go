// Package convention resolves SOFA convention names and versions to
// schemas.
//
// A schema is the ordered list of fields a convention defines: attributes
// (string metadata) and double or string variables with a dimension
// specification, default value and mandatory/read-only flags. Field names
// are stored flattened ("GLOBAL:Comment" -> "GLOBAL_Comment",
// "Data.IR" -> "Data_IR").
//
// Conventions are YAML documents named <Name>_<Version>.yaml, kept in a
// standardized/ and a deprecated/ directory. The conventions shipped with
// the module are embedded; NewRegistry accepts any fs.FS with the same
// layout:
//
//	GLOBAL:Conventions: {type: attribute, default: SOFA, flags: rm}
//	ListenerPosition: {type: double, default: [0, 0, 0], flags: m, dimensions: "IC, MC"}
//	ListenerPosition:Type: {type: attribute, default: cartesian, flags: m}
//
// Schemas are immutable and shared by every object created from them.
package convention
