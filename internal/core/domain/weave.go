package domain

import (
	"errors"
	"strings"
)

const (
	lineJoinMarker = "||  "
	fieldSeparator = "||"
)

// WeaveRequest is the input handed to the external weaver
type WeaveRequest struct {
	AssemblyPath string
	OutputPath   string
	References   []string
}

// WeaveResult carries the outcome of one weaver invocation
// Err is nil on success. Warnings hold the raw weaver messages.
type WeaveResult struct {
	Warnings []string
	Err      error
}

// Failed reports whether the weaver signalled a terminal error
func (r WeaveResult) Failed() bool {
	return r.Err != nil
}

// NewWeaveFailure wraps a weaver error message as a terminal failure
func NewWeaveFailure(msg string) error {
	return &WeaveError{Message: FormatDiagnostic(msg)}
}

// WeaveError is a terminal error reported by the weaver itself
type WeaveError struct {
	Message string
}

func (e *WeaveError) Error() string { return e.Message }

// Is lets errors.Is(err, ErrWeaveFailed) match any WeaveError
func (e *WeaveError) Is(target error) bool {
	return target == ErrWeaveFailed
}

// IsWeaveError reports whether err came from the weaver's error channel
func IsWeaveError(err error) bool {
	var we *WeaveError
	return errors.As(err, &we)
}

// FormatDiagnostic converts weaver markers into readable text
// "||  " becomes a line break, any remaining "||" a space.
func FormatDiagnostic(msg string) string {
	msg = strings.ReplaceAll(msg, lineJoinMarker, "\n")
	return strings.ReplaceAll(msg, fieldSeparator, " ")
}
