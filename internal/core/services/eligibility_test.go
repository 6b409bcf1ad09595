package services

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/EvaisaDev/UnityNetcodeWeaver/internal/core/domain"
	"github.com/EvaisaDev/UnityNetcodeWeaver/internal/core/ports/mocks"
)

func TestEligibilityFilter_Evaluate(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		enforce     bool
		wantSkip    bool
		wantOutcome domain.Outcome
		wantMatches []string
	}{
		{
			name:        "hook assembly",
			path:        "/game/BepInEx/plugins/MMHook_Foo.dll",
			wantSkip:    true,
			wantOutcome: domain.OutcomeSkippedHook,
		},
		{
			name:        "hook wins over blacklist",
			path:        "/game/plugins/MMHOOK_Assembly-CSharp.dll",
			wantSkip:    true,
			wantOutcome: domain.OutcomeSkippedHook,
		},
		{
			name: "plain assembly",
			path: "/game/plugins/Foo.dll",
		},
		{
			name:        "blacklisted but not enforced",
			path:        "/game/Managed/assembly-csharp.dll",
			wantMatches: []string{"Assembly-CSharp"},
		},
		{
			name:        "blacklisted and enforced",
			path:        "/game/Managed/Unity.Netcode.Runtime.dll",
			enforce:     true,
			wantSkip:    true,
			wantOutcome: domain.OutcomeSkippedBlacklist,
			wantMatches: []string{"Unity.Netcode.Runtime"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, logger := mocks.NewLogRecorder()
			f := NewEligibilityFilter(domain.DefaultRuleSet(), tt.enforce, logger)

			d := f.Evaluate(tt.path)

			assert.Equal(t, tt.wantSkip, d.Skip)
			assert.Equal(t, tt.wantOutcome, d.Outcome)
			assert.Equal(t, tt.wantMatches, d.BlacklistMatches)
		})
	}
}

func TestEligibilityFilter_LogsEveryBlacklistMatch(t *testing.T) {
	logs, logger := mocks.NewLogRecorder()
	rules := domain.NewRuleSet(domain.DefaultHookMarker, []string{"Unity", "Netcode", "Transport"})
	f := NewEligibilityFilter(rules, false, logger)

	d := f.Evaluate("/Managed/Unity.Netcode.Components.dll")

	assert.False(t, d.Skip)
	warnings := logs.AtLevel(slog.LevelWarn)
	if assert.Len(t, warnings, 2) {
		assert.Equal(t, "Skipping Unity.Netcode.Components.dll as it contains blacklisted phrase 'Unity'", warnings[0].Message)
		assert.Equal(t, "Netcode", warnings[1].Attrs["phrase"])
	}
}

func TestEligibilityFilter_HookIsInformational(t *testing.T) {
	logs, logger := mocks.NewLogRecorder()
	f := NewEligibilityFilter(domain.DefaultRuleSet(), false, logger)

	d := f.Evaluate("MMHook_Foo.dll")

	assert.Equal(t, "appears to be a hook assembly", d.Reason)
	assert.Len(t, logs.AtLevel(slog.LevelInfo), 1)
	assert.Empty(t, logs.AtLevel(slog.LevelWarn))
}
