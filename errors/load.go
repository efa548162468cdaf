// Package errors defines the typed failures surfaced while loading taxonomy
// artifacts and casting answer values.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode identifies one load- or cast-time failure cause.
type ErrorCode string

const (
	// ErrMissingArtifact indicates a required artifact file is absent.
	ErrMissingArtifact ErrorCode = "taxo-missing-artifact"
	// ErrMalformedArtifact indicates an artifact could not be parsed.
	ErrMalformedArtifact ErrorCode = "taxo-malformed-artifact"
	// ErrFieldCountExceeded indicates the schema declares more fields than allowed.
	ErrFieldCountExceeded ErrorCode = "taxo-field-count-exceeded"
	// ErrUnknownField indicates the structure references a field the schema does not declare.
	ErrUnknownField ErrorCode = "taxo-unknown-field"
	// ErrDuplicateField indicates the structure references the same field twice.
	ErrDuplicateField ErrorCode = "taxo-duplicate-field"
	// ErrDuplicateCategoryKey indicates two dimensional category keys collide after normalization.
	ErrDuplicateCategoryKey ErrorCode = "taxo-duplicate-category-key"
)

// Load describes a taxonomy load failure with its cause code, the artifact
// involved, and an optional human-readable location within the structure.
type Load struct {
	Code     ErrorCode
	Artifact string
	Location string
	Message  string
	Cause    error
}

// Error formats the load failure for display.
func (e *Load) Error() string {
	if e == nil {
		return "load <nil>"
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))
	if e.Artifact != "" {
		b.WriteString(fmt.Sprintf(" (artifact: %s)", e.Artifact))
	}
	if e.Location != "" {
		b.WriteString(fmt.Sprintf(" at %s", e.Location))
	}
	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}
	return b.String()
}

// Unwrap exposes the root cause for errors.Is/As chains.
func (e *Load) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is matches a Load error against another by code, so callers can compare
// with a sentinel value such as &Load{Code: ErrUnknownField}.
func (e *Load) Is(target error) bool {
	var other *Load
	if !errors.As(target, &other) || other == nil {
		return false
	}
	return e != nil && e.Code == other.Code
}

// NewLoad builds a Load error with a code and message.
func NewLoad(code ErrorCode, msg string) *Load {
	return &Load{Code: code, Message: msg}
}

// NewLoadf formats a message and builds a Load error.
func NewLoadf(code ErrorCode, format string, args ...any) *Load {
	return &Load{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Missing builds a missing-artifact error for the named artifact.
func Missing(artifact string, cause error) *Load {
	return &Load{
		Code:     ErrMissingArtifact,
		Artifact: artifact,
		Message:  "artifact not found",
		Cause:    cause,
	}
}

// Malformed builds a parse-failure error for the named artifact.
func Malformed(artifact string, cause error) *Load {
	return &Load{
		Code:     ErrMalformedArtifact,
		Artifact: artifact,
		Message:  "artifact could not be parsed",
		Cause:    cause,
	}
}

// AsLoad extracts a Load error from an error chain.
func AsLoad(err error) (*Load, bool) {
	if err == nil {
		return nil, false
	}
	var load *Load
	if errors.As(err, &load) && load != nil {
		return load, true
	}
	return nil, false
}

// IsCode reports whether err carries the given load error code.
func IsCode(err error, code ErrorCode) bool {
	load, ok := AsLoad(err)
	return ok && load.Code == code
}
