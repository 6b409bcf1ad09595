package mocks

import (
	"context"
	"os"
	"sync"

	"github.com/EvaisaDev/UnityNetcodeWeaver/internal/core/domain"
)

// MockWeaver is a mock implementation of the Weaver port for testing
// By default it behaves like the real weaver: it moves the assembly and its
// symbols to the backup paths and writes OutputContent to the output path.
type MockWeaver struct {
	mu    sync.Mutex
	calls []domain.WeaveRequest

	// Warnings are returned on every call
	Warnings []string

	// OutputContent is written to the output path on success, together with
	// a fresh symbols file next to it
	OutputContent []byte

	// SkipBackup makes a failing weaver fail before creating any backup
	SkipBackup bool

	// PartialOutput is written to the output path before a failure
	PartialOutput []byte

	failErr error
}

// NewMockWeaver creates a new mock weaver
func NewMockWeaver() *MockWeaver {
	return &MockWeaver{
		OutputContent: []byte("patched"),
	}
}

// SetShouldFail configures the weaver to fail with err
func (m *MockWeaver) SetShouldFail(fail bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if fail {
		m.failErr = err
	} else {
		m.failErr = nil
	}
}

// Weave records the call and simulates the weaver's filesystem contract
func (m *MockWeaver) Weave(ctx context.Context, req domain.WeaveRequest) domain.WeaveResult {
	m.mu.Lock()
	refs := make([]string, len(req.References))
	copy(refs, req.References)
	req.References = refs
	m.calls = append(m.calls, req)
	failErr := m.failErr
	m.mu.Unlock()

	result := domain.WeaveResult{Warnings: m.Warnings}

	if failErr != nil && m.SkipBackup {
		result.Err = failErr
		return result
	}

	loc, err := domain.NewAssemblyLocation(req.AssemblyPath)
	if err != nil {
		result.Err = err
		return result
	}

	if err := backup(loc); err != nil {
		result.Err = err
		return result
	}

	if failErr != nil {
		if m.PartialOutput != nil {
			_ = os.WriteFile(req.OutputPath, m.PartialOutput, 0644)
		}
		result.Err = failErr
		return result
	}

	if err := os.WriteFile(req.OutputPath, m.OutputContent, 0644); err != nil {
		result.Err = err
		return result
	}
	if out, err := domain.NewAssemblyLocation(req.OutputPath); err == nil {
		_ = os.WriteFile(out.SymbolsPath(), []byte("patched symbols"), 0644)
	}
	return result
}

// GetCalls returns every request received so far
func (m *MockWeaver) GetCalls() []domain.WeaveRequest {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.WeaveRequest, len(m.calls))
	copy(out, m.calls)
	return out
}

func backup(loc domain.AssemblyLocation) error {
	if err := os.Rename(loc.Path(), loc.BackupPath()); err != nil {
		return err
	}
	return os.Rename(loc.SymbolsPath(), loc.BackupSymbolsPath())
}
