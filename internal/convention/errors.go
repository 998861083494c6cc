package convention

import (
	"fmt"
	"strings"

	"sofar/internal/diagnostic"
)

// Sentinel errors of the registry. Both match diagnostic.ErrNotFound.
var (
	ErrNotFound        = fmt.Errorf("convention %w", diagnostic.ErrNotFound)
	ErrVersionNotFound = fmt.Errorf("convention version %w", diagnostic.ErrNotFound)
)

// NotFoundError reports an unknown convention or version.
type NotFoundError struct {
	Name string
	// Version is set when the convention exists but the version does not.
	Version string
	// Available lists the existing versions, or suggested names.
	Available []string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.Version != "" {
		return fmt.Sprintf("version %s of convention %s not found, available versions are %s",
			e.Version, e.Name, strings.Join(e.Available, ", "))
	}

	msg := fmt.Sprintf("convention %s not found", e.Name)
	if len(e.Available) > 0 {
		msg += " (did you mean " + strings.Join(e.Available, ", ") + "?)"
	}

	return msg
}

// Unwrap returns ErrVersionNotFound or ErrNotFound.
func (e *NotFoundError) Unwrap() error {
	if e.Version != "" {
		return ErrVersionNotFound
	}

	return ErrNotFound
}
