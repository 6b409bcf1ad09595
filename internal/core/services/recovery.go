package services

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/EvaisaDev/UnityNetcodeWeaver/internal/core/domain"
)

// RecoveryService restores assemblies from the backup pair left by the weaver
type RecoveryService struct {
	logger *slog.Logger
}

// NewRecoveryService creates a recovery service
func NewRecoveryService(logger *slog.Logger) *RecoveryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecoveryService{logger: logger}
}

// HasBackup reports whether both backup files exist for loc
func (s *RecoveryService) HasBackup(loc domain.AssemblyLocation) bool {
	return fileExists(loc.BackupPath()) && fileExists(loc.BackupSymbolsPath())
}

// Restore moves Foo_original.dll and Foo_original.pdb back to Foo.dll and Foo.pdb.
// Both backups must exist; otherwise nothing is moved and the returned error
// wraps domain.ErrUnrecoverable.
func (s *RecoveryService) Restore(loc domain.AssemblyLocation) error {
	var missing []string
	for _, p := range []string{loc.BackupPath(), loc.BackupSymbolsPath()} {
		if !fileExists(p) {
			missing = append(missing, fileName(p))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: backup of %s not found (%s)",
			domain.ErrUnrecoverable, loc.FileName(), strings.Join(missing, ", "))
	}

	if err := os.Rename(loc.BackupPath(), loc.Path()); err != nil {
		return fmt.Errorf("%w: failed to restore %s: %v", domain.ErrUnrecoverable, loc.FileName(), err)
	}
	if err := os.Rename(loc.BackupSymbolsPath(), loc.SymbolsPath()); err != nil {
		return fmt.Errorf("%w: restored %s but not its symbols: %v", domain.ErrUnrecoverable, loc.FileName(), err)
	}

	s.logger.Info(fmt.Sprintf("Restored %s from backup", loc.FileName()), "assembly", loc.Path())
	return nil
}

// DiscardOutput removes a partially written output file
func (s *RecoveryService) DiscardOutput(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove partial output %s: %w", path, err)
	}
	return nil
}

// FindBackups lists the assemblies in dir that have a complete backup pair
// matching one of the extensions (e.g. ".dll").
func (s *RecoveryService) FindBackups(dir string, extensions []string) ([]domain.AssemblyLocation, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var found []domain.AssemblyLocation
	for _, entry := range entries {
		if entry.IsDir() || !hasExtension(entry.Name(), extensions) {
			continue
		}
		backup, err := domain.NewAssemblyLocation(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		orig, ok := backup.OriginalOf()
		if !ok || !s.HasBackup(orig) {
			continue
		}
		found = append(found, orig)
	}

	sort.Slice(found, func(i, j int) bool {
		return found[i].Path() < found[j].Path()
	})
	return found, nil
}

func hasExtension(name string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range extensions {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}

// sameFile reports whether a and b name the same file, either by absolute
// path or, when both exist, by file identity (symlinks, case-insensitive volumes).
func sameFile(a, b string) bool {
	if domain.SamePath(a, b) {
		return true
	}
	infoA, errA := os.Stat(a)
	infoB, errB := os.Stat(b)
	if errA != nil || errB != nil {
		return false
	}
	return os.SameFile(infoA, infoB)
}

// protectedPath reports whether path is the assembly, its symbols or a backup
func protectedPath(loc domain.AssemblyLocation, path string) bool {
	for _, p := range []string{loc.Path(), loc.SymbolsPath(), loc.BackupPath(), loc.BackupSymbolsPath()} {
		if sameFile(p, path) {
			return true
		}
	}
	return false
}

func fileName(path string) string {
	return filepath.Base(path)
}
