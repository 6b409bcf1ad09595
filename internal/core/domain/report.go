package domain

import "time"

// Outcome is the terminal state of one assembly
type Outcome string

const (
	OutcomeSkippedHook      Outcome = "skipped-hook"
	OutcomeSkippedBlacklist Outcome = "skipped-blacklist"
	OutcomeSkippedNoSymbols Outcome = "skipped-no-symbols"
	OutcomePatched          Outcome = "patched"
	OutcomeRecovered        Outcome = "recovered"
	OutcomeUnrecoverable    Outcome = "unrecoverable"
	OutcomeRejected         Outcome = "rejected"
)

// IsSkip reports whether the assembly was left untouched before weaving
func (o Outcome) IsSkip() bool {
	switch o {
	case OutcomeSkippedHook, OutcomeSkippedBlacklist, OutcomeSkippedNoSymbols:
		return true
	}
	return false
}

// IsFailure reports whether weaving was attempted and failed
func (o Outcome) IsFailure() bool {
	return o == OutcomeRecovered || o == OutcomeUnrecoverable
}

// PatchReport describes what happened to one assembly
type PatchReport struct {
	Source           string // assembly path as given by the caller
	Request          PatchRequest
	Outcome          Outcome
	Reason           string
	BlacklistMatches []string
	Warnings         []string
	Err              error
	StartedAt        time.Time
	Duration         time.Duration
}

// HistoryEntry is the persisted form of a PatchReport
type HistoryEntry struct {
	ID         string    `json:"id"`
	Assembly   string    `json:"assembly"`
	Output     string    `json:"output"`
	Outcome    Outcome   `json:"outcome"`
	Reason     string    `json:"reason,omitempty"`
	Warnings   int       `json:"warnings"`
	Error      string    `json:"error,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	DurationMS int64     `json:"duration_ms"`
}

// NewHistoryEntry flattens a report for persistence
func NewHistoryEntry(id string, r *PatchReport) HistoryEntry {
	entry := HistoryEntry{
		ID:         id,
		Assembly:   r.Source,
		Output:     r.Request.OutputPath,
		Outcome:    r.Outcome,
		Reason:     r.Reason,
		Warnings:   len(r.Warnings),
		StartedAt:  r.StartedAt,
		DurationMS: r.Duration.Milliseconds(),
	}
	if r.Err != nil {
		entry.Error = r.Err.Error()
	}
	return entry
}
