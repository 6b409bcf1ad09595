package mocks

import (
	"context"
	"sync"

	"github.com/EvaisaDev/UnityNetcodeWeaver/internal/core/domain"
)

// MockHistoryRepository keeps history entries in memory
type MockHistoryRepository struct {
	mu      sync.RWMutex
	entries []domain.HistoryEntry
	failErr error
}

// NewMockHistoryRepository creates an empty repository
func NewMockHistoryRepository() *MockHistoryRepository {
	return &MockHistoryRepository{}
}

// SetShouldFail makes Append return err
func (m *MockHistoryRepository) SetShouldFail(fail bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if fail {
		m.failErr = err
	} else {
		m.failErr = nil
	}
}

// Append records one entry
func (m *MockHistoryRepository) Append(ctx context.Context, entry domain.HistoryEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failErr != nil {
		return m.failErr
	}
	m.entries = append(m.entries, entry)
	return nil
}

// List returns entries newest first
func (m *MockHistoryRepository) List(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.HistoryEntry, 0, len(m.entries))
	for i := len(m.entries) - 1; i >= 0; i-- {
		out = append(out, m.entries[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// Clear removes every entry
func (m *MockHistoryRepository) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = nil
	return nil
}
