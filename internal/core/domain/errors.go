package domain

import "errors"

var (
	// ErrInvalidAssembly is returned when an assembly path cannot be used
	ErrInvalidAssembly = errors.New("invalid assembly path")

	// ErrWeaveFailed marks a terminal failure reported by the weaver
	ErrWeaveFailed = errors.New("weave failed")

	// ErrUnrecoverable marks a failed patch whose backup could not be restored
	ErrUnrecoverable = errors.New("unrecoverable patch failure")

	// ErrOutputConflict is returned when two assemblies of a batch would write the same output
	ErrOutputConflict = errors.New("output path conflict")
)
