package sofa

import (
	"errors"
	"fmt"

	"sofar/internal/diagnostic"
)

// Errors returned by field mutations and queries. Each wraps the
// diagnostic sentinel of its kind.
var (
	ErrInvalidField          = fmt.Errorf("invalid field: %w", diagnostic.ErrProtectionViolation)
	ErrReadOnly              = fmt.Errorf("read only field: %w", diagnostic.ErrProtectionViolation)
	ErrMandatory             = fmt.Errorf("mandatory field: %w", diagnostic.ErrProtectionViolation)
	ErrUnknownField          = fmt.Errorf("field %w", diagnostic.ErrNotFound)
	ErrAlreadyExists         = fmt.Errorf("entry exists: %w", diagnostic.ErrNamingViolation)
	ErrBadName               = fmt.Errorf("bad name: %w", diagnostic.ErrNamingViolation)
	ErrInvalidType           = fmt.Errorf("invalid dtype: %w", diagnostic.ErrTypeMismatch)
	ErrMissingDimensions     = fmt.Errorf("missing dimensions: %w", diagnostic.ErrShapeMismatch)
	ErrDimensionsUnavailable = errors.New("dimensions unavailable")
	ErrUnknownDimension      = fmt.Errorf("dimension %w", diagnostic.ErrNotFound)
	ErrInvalidArgument       = errors.New("invalid argument")
)

// opError carries a user-facing message and the sentinel it matches.
type opError struct {
	msg string
	err error
}

func (e *opError) Error() string { return e.msg }

func (e *opError) Unwrap() error { return e.err }

func errorf(sentinel error, format string, args ...any) error {
	return &opError{msg: fmt.Sprintf(format, args...), err: sentinel}
}
