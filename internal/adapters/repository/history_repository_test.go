package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EvaisaDev/UnityNetcodeWeaver/internal/core/domain"
)

func entryAt(id string, ts time.Time, outcome domain.Outcome) domain.HistoryEntry {
	return domain.HistoryEntry{
		ID:        id,
		Assembly:  "/plugins/" + id + ".dll",
		Output:    "/plugins/" + id + ".dll",
		Outcome:   outcome,
		StartedAt: ts,
	}
}

func TestFileHistoryRepository_AppendAndList(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state", "history.json")
	repo := NewFileHistoryRepository(path, 0)
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	require.NoError(t, repo.Append(ctx, entryAt("a", base, domain.OutcomePatched)))
	require.NoError(t, repo.Append(ctx, entryAt("b", base.Add(time.Minute), domain.OutcomeRecovered)))

	entries, err := repo.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "b", entries[0].ID)
	assert.Equal(t, domain.OutcomeRecovered, entries[0].Outcome)

	// A fresh repository reads what the first one wrote
	reopened := NewFileHistoryRepository(path, 0)
	entries, err = reopened.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "b", entries[0].ID)
	assert.True(t, entries[0].StartedAt.Equal(base.Add(time.Minute)))
}

func TestFileHistoryRepository_TrimsToLimit(t *testing.T) {
	ctx := context.Background()
	repo := NewFileHistoryRepository(filepath.Join(t.TempDir(), "history.json"), 3)
	base := time.Now()

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Append(ctx, entryAt(fmt.Sprintf("e%d", i), base.Add(time.Duration(i)*time.Second), domain.OutcomePatched)))
	}

	entries, err := repo.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "e4", entries[0].ID)
	assert.Equal(t, "e2", entries[2].ID)
}

func TestFileHistoryRepository_Clear(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.json")
	repo := NewFileHistoryRepository(path, 0)

	require.NoError(t, repo.Append(ctx, entryAt("a", time.Now(), domain.OutcomePatched)))
	require.FileExists(t, path)

	require.NoError(t, repo.Clear(ctx))
	assert.NoFileExists(t, path)

	entries, err := repo.List(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// Clearing twice is fine
	require.NoError(t, repo.Clear(ctx))
}

func TestFileHistoryRepository_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))
	repo := NewFileHistoryRepository(path, 0)

	_, err := repo.List(context.Background(), 0)
	assert.Error(t, err)

	err = repo.Append(context.Background(), entryAt("a", time.Now(), domain.OutcomePatched))
	assert.Error(t, err)
}
