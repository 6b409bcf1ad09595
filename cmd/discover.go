package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/EvaisaDev/UnityNetcodeWeaver/internal/core/domain"
)

// discoverAssemblies expands directories into the assemblies matching patterns.
// Files are taken as given. Backup artifacts are never returned.
func discoverAssemblies(paths []string, patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var found []string

	add := func(path string) {
		loc, err := domain.NewAssemblyLocation(path)
		if err != nil || loc.IsBackup() || seen[loc.Path()] {
			return
		}
		seen[loc.Path()] = true
		found = append(found, loc.Path())
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", p, err)
		}

		if !info.IsDir() {
			add(p)
			continue
		}

		var matches []string
		for _, pattern := range patterns {
			m, err := filepath.Glob(filepath.Join(p, pattern))
			if err != nil {
				return nil, fmt.Errorf("invalid assembly pattern %q: %w", pattern, err)
			}
			matches = append(matches, m...)
		}
		sort.Strings(matches)

		for _, m := range matches {
			if fi, err := os.Stat(m); err == nil && fi.Mode().IsRegular() {
				add(m)
			}
		}
	}

	return found, nil
}
