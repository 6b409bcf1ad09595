package ports

import (
	"context"

	"github.com/EvaisaDev/UnityNetcodeWeaver/internal/core/domain"
)

// Weaver defines the port for the external bytecode transformation
type Weaver interface {
	// Weave rewrites req.AssemblyPath into req.OutputPath.
	// Before mutating anything the weaver preserves the untouched assembly and
	// its symbols at the _original backup paths.
	// A terminal problem is reported through WeaveResult.Err, never a panic.
	Weave(ctx context.Context, req domain.WeaveRequest) domain.WeaveResult
}

// HistoryRepository defines the port for persisting patch outcomes
type HistoryRepository interface {
	// Append records one entry
	Append(ctx context.Context, entry domain.HistoryEntry) error

	// List returns up to limit entries, newest first. limit <= 0 returns all.
	List(ctx context.Context, limit int) ([]domain.HistoryEntry, error)

	// Clear removes every entry
	Clear(ctx context.Context) error
}
