package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/EvaisaDev/UnityNetcodeWeaver/internal/core/domain"
	"github.com/EvaisaDev/UnityNetcodeWeaver/internal/core/services"
	"github.com/EvaisaDev/UnityNetcodeWeaver/pkg/ui"
)

var (
	patchAllOutputDir  string
	patchAllReferences []string
)

// patchAllCmd represents the patch-all command
var patchAllCmd = &cobra.Command{
	Use:   "patch-all [dir|assembly]...",
	Short: "Patch every assembly in one or more directories",
	Long: `Patch all assemblies found in the given directories, one after another.

Directories are searched (non-recursively) with the configured
assembly_patterns. Backup files ending in _original are ignored.
A failure on one assembly never stops the batch.

Examples:
  netcode-patcher patch-all BepInEx/plugins
  netcode-patcher patch-all build/ --output-dir dist/`,
	Aliases: []string{"all"},
	RunE:    runPatchAll,
}

func init() {
	patchAllCmd.Flags().StringVar(&patchAllOutputDir, "output-dir", "", "Write patched assemblies to this directory")
	patchAllCmd.Flags().StringArrayVarP(&patchAllReferences, "ref", "r", nil, "Reference assembly path (repeatable)")
}

func runPatchAll(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{"."}
	}

	assemblies, err := discoverAssemblies(args, appConfig.AssemblyPatterns)
	if err != nil {
		fmt.Println(ui.FormatError("Failed to find assemblies"))
		return err
	}

	if len(assemblies) == 0 {
		fmt.Println(ui.FormatWarning("No assemblies to patch"))
		return nil
	}

	if err := requireWeaver(); err != nil {
		return err
	}

	ctx, stop := getContext()
	defer stop()

	fmt.Println(ui.FormatRocket("Patching assemblies..."))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Total assemblies", fmt.Sprintf("%d", len(assemblies))))
	if patchAllOutputDir != "" {
		fmt.Println(ui.RenderKeyValue("Output", patchAllOutputDir))
	}
	fmt.Println()

	progressChan := make(chan services.PatchProgress, len(assemblies))
	resultChan := make(chan *services.PatchAllResponse, 1)

	go func() {
		req := services.PatchAllRequest{
			Assemblies: assemblies,
			OutputDir:  patchAllOutputDir,
			References: mergeReferences(patchAllReferences, appConfig.References),
		}
		resultChan <- patchService.PatchAll(ctx, req, progressChan)
	}()

	bar := ui.NewProgressBar(30)
	for progress := range progressChan {
		status := ui.FormatSuccess("✓")
		switch {
		case progress.Outcome.IsSkip():
			status = ui.FormatSkip("")
		case progress.Outcome == domain.OutcomeRecovered:
			status = ui.FormatRestore("")
		case progress.Outcome.IsFailure(), progress.Outcome == domain.OutcomeRejected:
			status = ui.FormatError("✗")
		}

		fmt.Printf("%s [%d/%d] %s %s\n",
			bar.Render(progress.Current, progress.Total),
			progress.Current,
			progress.Total,
			status,
			ui.TruncateCell(filepath.Base(progress.Assembly), 40),
		)
	}

	response := <-resultChan

	fmt.Println()
	fmt.Println(ui.FormatSuccess("Patching finished"))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Total", fmt.Sprintf("%d", response.Total)))
	fmt.Println(ui.RenderKeyValue("Patched", ui.StyleSuccess.Render(fmt.Sprintf("%d", response.Patched))))
	fmt.Println(ui.RenderKeyValue("Skipped", fmt.Sprintf("%d", response.Skipped)))
	if response.Recovered > 0 {
		fmt.Println(ui.RenderKeyValue("Recovered", ui.StyleWarning.Render(fmt.Sprintf("%d", response.Recovered))))
	}
	if response.Unrecoverable > 0 {
		fmt.Println(ui.RenderKeyValue("Unrecoverable", ui.StyleError.Render(fmt.Sprintf("%d", response.Unrecoverable))))
	}
	if response.Cancelled > 0 {
		fmt.Println(ui.RenderKeyValue("Cancelled", fmt.Sprintf("%d", response.Cancelled)))
	}

	var failed []*domain.PatchReport
	for _, report := range response.Reports {
		if report.Outcome.IsFailure() || report.Outcome == domain.OutcomeRejected {
			failed = append(failed, report)
		}
	}
	if len(failed) > 0 {
		fmt.Println()
		fmt.Println(ui.FormatWarning("Failed assemblies:"))
		for _, report := range failed {
			detail := string(report.Outcome)
			if report.Err != nil {
				detail = report.Err.Error()
			}
			fmt.Println(ui.FormatMuted("  • " + filepath.Base(report.Source) + ": " + detail))
		}
	}

	if response.Unrecoverable > 0 {
		return errUnrecoverable
	}
	return nil
}
