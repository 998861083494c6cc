// Package match provides name normalization, Levenshtein distance calculation
// and "did you mean" ranking for convention and field names.
//
// Key functions:
//   - NormalizeIdent: normalizes identifiers for fuzzy matching
//   - Levenshtein: computes edit distance between strings
//   - Suggest: ranks known names by similarity to an unknown one
package match
