package diagnostic

import "errors"

//go:generate go tool stringer -type=Kind -trimprefix=Kind -output=kind_string.go

// Kind classifies an issue.
type Kind int

const (
	// KindNotFound is an unknown convention, version, field or dimension.
	KindNotFound Kind = iota
	// KindIncomplete is missing mandatory data.
	KindIncomplete
	// KindTypeMismatch is a value that does not match the declared field type.
	KindTypeMismatch
	// KindShapeMismatch is a field whose shape matches no dimension alternative.
	KindShapeMismatch
	// KindNamingViolation is a reserved or malformed field name.
	KindNamingViolation
	// KindContentViolation is a failed value, dependency or dimension rule.
	KindContentViolation
	// KindProtectionViolation is a mutation of a frozen or read-only field.
	KindProtectionViolation
	// KindDeprecated is a superseded convention.
	KindDeprecated
	// KindPreliminary is a convention version below 1.0.
	KindPreliminary
)

// Sentinel errors, one per Kind.
var (
	ErrNotFound            = errors.New("not found")
	ErrIncomplete          = errors.New("missing mandatory data")
	ErrTypeMismatch        = errors.New("type mismatch")
	ErrShapeMismatch       = errors.New("shape mismatch")
	ErrNamingViolation     = errors.New("naming violation")
	ErrContentViolation    = errors.New("content violation")
	ErrProtectionViolation = errors.New("protection violation")
	ErrDeprecated          = errors.New("deprecated convention")
	ErrPreliminary         = errors.New("preliminary convention")
)

var sentinels = map[Kind]error{
	KindNotFound:            ErrNotFound,
	KindIncomplete:          ErrIncomplete,
	KindTypeMismatch:        ErrTypeMismatch,
	KindShapeMismatch:       ErrShapeMismatch,
	KindNamingViolation:     ErrNamingViolation,
	KindContentViolation:    ErrContentViolation,
	KindProtectionViolation: ErrProtectionViolation,
	KindDeprecated:          ErrDeprecated,
	KindPreliminary:         ErrPreliminary,
}

// Err returns the sentinel error of the kind, or nil for unknown kinds.
func (k Kind) Err() error {
	return sentinels[k]
}
