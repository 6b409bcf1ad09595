package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/EvaisaDev/UnityNetcodeWeaver/internal/core/domain"
	"github.com/EvaisaDev/UnityNetcodeWeaver/pkg/ui"
)

// formatOutcome renders a one-line summary of a report
func formatOutcome(report *domain.PatchReport) string {
	name := filepath.Base(report.Source)
	msg := fmt.Sprintf("%s: %s", name, report.Outcome)
	if report.Reason != "" {
		msg += " (" + report.Reason + ")"
	}

	switch {
	case report.Outcome == domain.OutcomePatched:
		if len(report.Warnings) > 0 {
			msg += fmt.Sprintf(" with %d warning(s)", len(report.Warnings))
		}
		return ui.FormatSuccess(msg)
	case report.Outcome.IsSkip():
		return ui.FormatSkip(msg)
	case report.Outcome == domain.OutcomeRecovered:
		return ui.FormatRestore(msg)
	default:
		return ui.FormatError(msg)
	}
}

// mergeReferences puts flag references before configured ones.
// Order and repeats are kept as given; only blank entries are dropped.
func mergeReferences(flagRefs, configRefs []string) []string {
	refs := make([]string, 0, len(flagRefs)+len(configRefs))
	for _, list := range [][]string{flagRefs, configRefs} {
		for _, ref := range list {
			if strings.TrimSpace(ref) == "" {
				continue
			}
			refs = append(refs, ref)
		}
	}
	return refs
}
