package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/EvaisaDev/UnityNetcodeWeaver/internal/core/domain"
)

var (
	patchOutput     string
	patchReferences []string
)

// patchCmd represents the patch command
var patchCmd = &cobra.Command{
	Use:   "patch <assembly>",
	Short: "Patch a single assembly",
	Long: `Run the netcode weaver over one assembly.

The assembly is skipped when it looks like a MonoMod hook assembly or when
its debug symbols (.pdb) are missing. If weaving fails the original assembly
and symbols are restored from the _original backup.

Examples:
  netcode-patcher patch BepInEx/plugins/MyMod.dll
  netcode-patcher patch MyMod.dll -o dist/MyMod.dll -r Managed/Unity.Netcode.Runtime.dll`,
	Args: cobra.ExactArgs(1),
	RunE: runPatch,
}

func init() {
	patchCmd.Flags().StringVarP(&patchOutput, "output", "o", "", "Output path (defaults to patching in place)")
	patchCmd.Flags().StringArrayVarP(&patchReferences, "ref", "r", nil, "Reference assembly path (repeatable)")
}

func runPatch(cmd *cobra.Command, args []string) error {
	if err := requireWeaver(); err != nil {
		return err
	}

	ctx, stop := getContext()
	defer stop()

	refs := mergeReferences(patchReferences, appConfig.References)
	report := patchService.Patch(ctx, args[0], patchOutput, refs)

	fmt.Println(formatOutcome(report))

	switch report.Outcome {
	case domain.OutcomeUnrecoverable:
		return errUnrecoverable
	case domain.OutcomeRejected:
		return report.Err
	}
	return nil
}
