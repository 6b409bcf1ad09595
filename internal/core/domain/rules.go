package domain

import "strings"

// DefaultHookMarker identifies generated MonoMod hook assemblies
const DefaultHookMarker = "mmhook"

// DefaultBlacklist lists assemblies that ship their own netcode or must never be rewritten
var DefaultBlacklist = []string{
	"Unity.Netcode.Runtime",
	"UnityEngine.CoreModule",
	"Unity.Netcode.Components",
	"Unity.Networking.Transport",
	"Assembly-CSharp",
	"ClientNetworkTransform",
}

// RuleSet is an immutable, ordered set of case-insensitive path patterns
type RuleSet struct {
	hookMarker string
	patterns   []string
	lowered    []string
}

// NewRuleSet builds a rule set. Blank patterns are dropped, order is kept.
func NewRuleSet(hookMarker string, patterns []string) RuleSet {
	rs := RuleSet{hookMarker: strings.ToLower(strings.TrimSpace(hookMarker))}
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		rs.patterns = append(rs.patterns, p)
		rs.lowered = append(rs.lowered, strings.ToLower(p))
	}
	return rs
}

// DefaultRuleSet returns the built-in hook marker and blacklist
func DefaultRuleSet() RuleSet {
	return NewRuleSet(DefaultHookMarker, DefaultBlacklist)
}

// HookMarker returns the lower-cased hook marker
func (r RuleSet) HookMarker() string { return r.hookMarker }

// Patterns returns a copy of the blacklist patterns in rule order
func (r RuleSet) Patterns() []string {
	out := make([]string, len(r.patterns))
	copy(out, r.patterns)
	return out
}

// IsHook reports whether path looks like a generated hook assembly
func (r RuleSet) IsHook(path string) bool {
	if r.hookMarker == "" {
		return false
	}
	return strings.Contains(strings.ToLower(path), r.hookMarker)
}

// Matches returns every blacklist pattern contained in path, in rule order
func (r RuleSet) Matches(path string) []string {
	lower := strings.ToLower(path)
	var matches []string
	for i, p := range r.lowered {
		if strings.Contains(lower, p) {
			matches = append(matches, r.patterns[i])
		}
	}
	return matches
}
