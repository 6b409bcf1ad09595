package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/EvaisaDev/UnityNetcodeWeaver/pkg/ui"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the health of your patcher setup",
	Long: `Diagnose issues with your netcode-patcher setup.

Checks for:
  - Configuration file existence
  - The weaver executable
  - State directory (patch history)
  - Configured reference assemblies and search directories`,
	Run: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) {
	fmt.Println(ui.FormatTitle("netcode-patcher doctor"))
	fmt.Println()

	// 1. Check Config
	checkStep("Configuration File", func() error {
		if _, err := os.Stat(appWorkspace.ConfigPath); os.IsNotExist(err) {
			return fmt.Errorf("missing at %s (run 'netcode-patcher init')", appWorkspace.ConfigPath)
		}
		return nil
	})

	// 2. Check Weaver
	checkStep("Weaver ("+processWeaver.Command()+")", func() error {
		if !processWeaver.IsAvailable() {
			return fmt.Errorf("not found in PATH")
		}
		return nil
	})

	// 3. Check State
	checkStep("State Directory", func() error {
		if !appWorkspace.Exists() {
			return fmt.Errorf("not found at %s (created on first patch history write)", appWorkspace.StatePath)
		}
		return nil
	})

	// 4. Check References
	if len(appConfig.References) == 0 {
		fmt.Println(ui.FormatMuted("No reference assemblies configured"))
		return
	}

	fmt.Println()
	fmt.Println(ui.FormatInfo("Checking reference assemblies..."))
	for _, ref := range appConfig.References {
		checkStep(ref, func() error {
			return checkReference(ref)
		})
	}
}

// checkReference accepts a reference assembly file or a directory searched for them
func checkReference(ref string) error {
	info, err := os.Stat(ref)
	if err != nil {
		return fmt.Errorf("not found")
	}
	if !info.IsDir() && !info.Mode().IsRegular() {
		return fmt.Errorf("not a file or directory")
	}
	return nil
}

// checkStep runs a check function and prints the result nicely
func checkStep(name string, check func() error) {
	err := check()
	if err == nil {
		fmt.Printf("%s %s\n", ui.FormatSuccess("✔"), name)
	} else {
		fmt.Printf("%s %s\n", ui.FormatError("✘"), name)
		fmt.Printf("    %s\n", ui.StyleMuted.Render(err.Error()))
	}
}
