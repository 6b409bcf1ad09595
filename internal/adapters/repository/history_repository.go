package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/EvaisaDev/UnityNetcodeWeaver/internal/core/domain"
)

// FileHistoryRepository implements the HistoryRepository port with a JSON file
type FileHistoryRepository struct {
	path   string
	limit  int
	mu     sync.RWMutex
	cache  []domain.HistoryEntry
	loaded bool
}

// NewFileHistoryRepository stores at most limit entries at path.
// limit <= 0 keeps everything.
func NewFileHistoryRepository(path string, limit int) *FileHistoryRepository {
	return &FileHistoryRepository{
		path:  path,
		limit: limit,
	}
}

// load reads the history file once. Caller must hold the write lock.
func (r *FileHistoryRepository) load() error {
	if r.loaded {
		return nil
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			r.loaded = true
			return nil
		}
		return fmt.Errorf("failed to read history: %w", err)
	}

	var entries []domain.HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("failed to parse history: %w", err)
	}

	r.cache = entries
	r.loaded = true
	return nil
}

// Append adds an entry and trims the oldest ones beyond the limit
func (r *FileHistoryRepository) Append(ctx context.Context, entry domain.HistoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.load(); err != nil {
		return err
	}

	r.cache = append(r.cache, entry)
	if r.limit > 0 && len(r.cache) > r.limit {
		r.cache = append([]domain.HistoryEntry(nil), r.cache[len(r.cache)-r.limit:]...)
	}

	return r.flush()
}

// List returns up to limit entries, newest first
func (r *FileHistoryRepository) List(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.load(); err != nil {
		return nil, err
	}

	out := make([]domain.HistoryEntry, len(r.cache))
	copy(out, r.cache)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartedAt.After(out[j].StartedAt)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Clear removes every entry and the history file
func (r *FileHistoryRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache = nil
	r.loaded = true

	if err := os.Remove(r.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove history: %w", err)
	}
	return nil
}

// flush writes cache to disk. Caller must hold the write lock.
func (r *FileHistoryRepository) flush() error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	data, err := json.MarshalIndent(r.cache, "", "  ")
	if err != nil {
		return err
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	return os.Rename(tmp, r.path)
}
