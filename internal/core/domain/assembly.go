package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	// SymbolsExt is the extension of the debug-symbol companion file
	SymbolsExt = ".pdb"

	// BackupSuffix is appended to the file stem of a backed-up assembly.
	// Foo.dll is preserved as Foo_original.dll and Foo.pdb as Foo_original.pdb.
	BackupSuffix = "_original"
)

// AssemblyLocation is a validated path to a compiled assembly
// All derived paths are computed from the final path element only
type AssemblyLocation struct {
	path string
	dir  string
	stem string
	ext  string
}

// NewAssemblyLocation validates path and returns its location
func NewAssemblyLocation(path string) (AssemblyLocation, error) {
	if strings.TrimSpace(path) == "" {
		return AssemblyLocation{}, fmt.Errorf("%w: empty path", ErrInvalidAssembly)
	}

	clean := filepath.Clean(path)
	base := filepath.Base(clean)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	if ext == "" || ext == "." {
		return AssemblyLocation{}, fmt.Errorf("%w: %s has no file extension", ErrInvalidAssembly, base)
	}
	if stem == "" {
		return AssemblyLocation{}, fmt.Errorf("%w: %s has no file name", ErrInvalidAssembly, base)
	}

	return AssemblyLocation{
		path: clean,
		dir:  filepath.Dir(clean),
		stem: stem,
		ext:  ext,
	}, nil
}

// MustAssemblyLocation is like NewAssemblyLocation but panics on error
func MustAssemblyLocation(path string) AssemblyLocation {
	loc, err := NewAssemblyLocation(path)
	if err != nil {
		panic(err)
	}
	return loc
}

// Path returns the cleaned assembly path
func (a AssemblyLocation) Path() string { return a.path }

// Dir returns the directory containing the assembly
func (a AssemblyLocation) Dir() string { return a.dir }

// Stem returns the file name without extension (e.g. "Foo" for Foo.dll)
func (a AssemblyLocation) Stem() string { return a.stem }

// Ext returns the assembly extension including the dot
func (a AssemblyLocation) Ext() string { return a.ext }

// FileName returns the base name of the assembly
func (a AssemblyLocation) FileName() string { return a.stem + a.ext }

// SymbolsPath returns the expected debug-symbol companion path
func (a AssemblyLocation) SymbolsPath() string {
	return filepath.Join(a.dir, a.stem+SymbolsExt)
}

// BackupPath returns where the weaver preserves the untouched assembly
func (a AssemblyLocation) BackupPath() string {
	return filepath.Join(a.dir, a.stem+BackupSuffix+a.ext)
}

// BackupSymbolsPath returns where the weaver preserves the untouched symbols
func (a AssemblyLocation) BackupSymbolsPath() string {
	return filepath.Join(a.dir, a.stem+BackupSuffix+SymbolsExt)
}

// IsBackup reports whether this location is itself a backup artifact
func (a AssemblyLocation) IsBackup() bool {
	return strings.HasSuffix(strings.ToLower(a.stem), strings.ToLower(BackupSuffix))
}

// OriginalOf returns the assembly a backup location belongs to
// Foo_original.dll -> Foo.dll. Returns false when the location is not a backup.
func (a AssemblyLocation) OriginalOf() (AssemblyLocation, bool) {
	if !a.IsBackup() {
		return AssemblyLocation{}, false
	}
	stem := a.stem[:len(a.stem)-len(BackupSuffix)]
	if stem == "" {
		return AssemblyLocation{}, false
	}
	return AssemblyLocation{
		path: filepath.Join(a.dir, stem+a.ext),
		dir:  a.dir,
		stem: stem,
		ext:  a.ext,
	}, true
}

func (a AssemblyLocation) String() string { return a.path }
