package services

import (
	"fmt"
	"log/slog"

	"github.com/EvaisaDev/UnityNetcodeWeaver/internal/core/domain"
)

// Decision is the result of evaluating an assembly against the rule set
type Decision struct {
	Skip             bool
	Outcome          domain.Outcome // set only when Skip is true
	Reason           string
	BlacklistMatches []string
}

// EligibilityFilter decides whether an assembly must be left alone
// It never touches the filesystem.
type EligibilityFilter struct {
	rules            domain.RuleSet
	enforceBlacklist bool
	logger           *slog.Logger
}

// NewEligibilityFilter creates a filter over rules.
// With enforceBlacklist false a blacklist match is logged and evaluation continues.
func NewEligibilityFilter(rules domain.RuleSet, enforceBlacklist bool, logger *slog.Logger) *EligibilityFilter {
	if logger == nil {
		logger = slog.Default()
	}
	return &EligibilityFilter{
		rules:            rules,
		enforceBlacklist: enforceBlacklist,
		logger:           logger,
	}
}

// Rules returns the rule set the filter evaluates
func (f *EligibilityFilter) Rules() domain.RuleSet {
	return f.rules
}

// Evaluate applies the hook heuristic and then the blacklist to path
func (f *EligibilityFilter) Evaluate(path string) Decision {
	name := fileName(path)

	if f.rules.IsHook(path) {
		reason := "appears to be a hook assembly"
		f.logger.Info(fmt.Sprintf("Skipping %s as it %s", name, reason), "assembly", path)
		return Decision{
			Skip:    true,
			Outcome: domain.OutcomeSkippedHook,
			Reason:  reason,
		}
	}

	matches := f.rules.Matches(path)
	var reason string
	for _, phrase := range matches {
		r := fmt.Sprintf("contains blacklisted phrase '%s'", phrase)
		if reason == "" {
			reason = r
		}
		f.logger.Warn(fmt.Sprintf("Skipping %s as it %s", name, r), "assembly", path, "phrase", phrase)
	}

	decision := Decision{BlacklistMatches: matches}
	if len(matches) > 0 && f.enforceBlacklist {
		decision.Skip = true
		decision.Outcome = domain.OutcomeSkippedBlacklist
		decision.Reason = reason
	}
	return decision
}
