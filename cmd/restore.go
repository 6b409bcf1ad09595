package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/EvaisaDev/UnityNetcodeWeaver/internal/core/domain"
	"github.com/EvaisaDev/UnityNetcodeWeaver/pkg/ui"
)

var restoreDir string

var restoreCmd = &cobra.Command{
	Use:   "restore [assembly]",
	Short: "Restore an assembly from its _original backup",
	Long: `Move the _original backup of an assembly and its symbols back into place.

Without an argument, backups found in the current directory (or --dir)
are offered in a fuzzy finder.

Examples:
  netcode-patcher restore BepInEx/plugins/MyMod.dll
  netcode-patcher restore --dir BepInEx/plugins`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRestore,
}

func init() {
	restoreCmd.Flags().StringVarP(&restoreDir, "dir", "d", ".", "Directory to search for backups")
}

func runRestore(cmd *cobra.Command, args []string) error {
	recovery := patchService.Recovery()

	var loc domain.AssemblyLocation
	if len(args) == 1 {
		l, err := domain.NewAssemblyLocation(args[0])
		if err != nil {
			fmt.Println(ui.FormatError("Invalid assembly path"))
			return err
		}
		// Accept the backup path itself as well as the original
		if original, ok := l.OriginalOf(); ok {
			l = original
		}
		loc = l
	} else {
		backups, err := recovery.FindBackups(restoreDir, appConfig.Extensions())
		if err != nil {
			fmt.Println(ui.FormatError("Failed to search for backups"))
			return err
		}

		if len(backups) == 0 {
			fmt.Println(ui.FormatWarning("No backups found in " + restoreDir))
			return nil
		}

		idx, err := fuzzyfinder.Find(
			backups,
			func(i int) string {
				return backups[i].FileName()
			},
			fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
				if i == -1 {
					return ""
				}
				return backupPreview(backups[i])
			}),
		)
		if err != nil {
			if errors.Is(err, fuzzyfinder.ErrAbort) {
				fmt.Println(ui.FormatInfo("Operation cancelled."))
				return nil
			}
			return err
		}
		loc = backups[idx]
	}

	if err := recovery.Restore(loc); err != nil {
		fmt.Println(ui.FormatError("Restore failed: " + err.Error()))
		return err
	}

	fmt.Println(ui.FormatRestore("Restored " + loc.FileName()))
	return nil
}

// backupPreview describes the backup pair that would be moved back
func backupPreview(loc domain.AssemblyLocation) string {
	preview := fmt.Sprintf("Assembly: %s\nBackup: %s\nSymbols: %s",
		loc.Path(),
		filepath.Base(loc.BackupPath()),
		filepath.Base(loc.BackupSymbolsPath()))
	if info, err := os.Stat(loc.BackupPath()); err == nil {
		preview += fmt.Sprintf("\nBacked up: %s", info.ModTime().Format("2006-01-02 15:04:05"))
	}
	return preview
}
