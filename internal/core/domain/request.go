package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// PatchRequest describes a single patch operation
type PatchRequest struct {
	Assembly   AssemblyLocation
	OutputPath string
	References []string
}

// NewPatchRequest builds a request, defaulting the output to the source path
// References are copied so later changes by the caller are not observed.
func NewPatchRequest(assemblyPath, outputPath string, references []string) (PatchRequest, error) {
	loc, err := NewAssemblyLocation(assemblyPath)
	if err != nil {
		return PatchRequest{}, err
	}

	if strings.TrimSpace(outputPath) == "" {
		outputPath = loc.Path()
	}

	refs := make([]string, len(references))
	copy(refs, references)

	return PatchRequest{
		Assembly:   loc,
		OutputPath: outputPath,
		References: refs,
	}, nil
}

// InPlace reports whether the weaver writes over the source assembly.
// Relative and absolute spellings of the same path compare equal.
func (r PatchRequest) InPlace() bool {
	return SamePath(r.OutputPath, r.Assembly.Path())
}

// SamePath reports whether a and b resolve to the same absolute path
func SamePath(a, b string) bool {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return false
	}
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

func (r PatchRequest) String() string {
	return fmt.Sprintf("%s -> %s", r.Assembly.FileName(), r.OutputPath)
}
