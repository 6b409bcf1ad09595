package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EvaisaDev/UnityNetcodeWeaver/internal/core/domain"
	"github.com/EvaisaDev/UnityNetcodeWeaver/internal/core/ports/mocks"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
}

func TestRecoveryService_Restore(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"Foo.dll":          "half patched",
		"Foo_original.dll": "dll",
		"Foo_original.pdb": "pdb",
	})
	_, logger := mocks.NewLogRecorder()
	svc := NewRecoveryService(logger)
	loc := domain.MustAssemblyLocation(filepath.Join(dir, "Foo.dll"))

	require.True(t, svc.HasBackup(loc))
	require.NoError(t, svc.Restore(loc))

	assert.Equal(t, "dll", readFile(t, loc.Path()))
	assert.Equal(t, "pdb", readFile(t, loc.SymbolsPath()))
	assert.NoFileExists(t, loc.BackupPath())
	assert.NoFileExists(t, loc.BackupSymbolsPath())
	assert.False(t, svc.HasBackup(loc))
}

func TestRecoveryService_RestoreNeedsBothBackups(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"Foo.dll":          "current",
		"Foo_original.dll": "dll",
	})
	svc := NewRecoveryService(nil)
	loc := domain.MustAssemblyLocation(filepath.Join(dir, "Foo.dll"))

	err := svc.Restore(loc)

	require.ErrorIs(t, err, domain.ErrUnrecoverable)
	assert.Contains(t, err.Error(), "Foo_original.pdb")
	assert.Equal(t, "current", readFile(t, loc.Path()))
	assert.FileExists(t, loc.BackupPath())
}

func TestRecoveryService_DiscardOutput(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"out.dll": "partial"})
	svc := NewRecoveryService(nil)

	require.NoError(t, svc.DiscardOutput(filepath.Join(dir, "out.dll")))
	assert.NoFileExists(t, filepath.Join(dir, "out.dll"))

	// Missing output is fine
	require.NoError(t, svc.DiscardOutput(filepath.Join(dir, "out.dll")))
}

func TestRecoveryService_FindBackups(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"B.dll":             "",
		"B_original.dll":    "",
		"B_original.pdb":    "",
		"A_original.dll":    "",
		"A_original.pdb":    "",
		"C_original.dll":    "", // no symbols backup
		"D_original.txt":    "",
		"D_original.pdb":    "",
		"Plain.dll":         "",
		"_original.dll":     "",
		"Tool_original.EXE": "",
		"Tool_original.pdb": "",
	})
	require.NoError(t, os.Mkdir(filepath.Join(dir, "E_original.dll"), 0755))
	svc := NewRecoveryService(nil)

	found, err := svc.FindBackups(dir, []string{".dll", ".exe"})
	require.NoError(t, err)

	var names []string
	for _, loc := range found {
		names = append(names, loc.FileName())
	}
	assert.Equal(t, []string{"A.dll", "B.dll", "Tool.EXE"}, names)

	_, err = svc.FindBackups(filepath.Join(dir, "missing"), nil)
	assert.Error(t, err)
}
