package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/EvaisaDev/UnityNetcodeWeaver/pkg/config"
	"github.com/EvaisaDev/UnityNetcodeWeaver/pkg/ui"
)

var initForce bool

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration",
	Long: `Create the configuration file and state directory.

The config file holds the weaver command, reference assemblies, the hook
marker and the blacklist. Use --force to overwrite an existing file.`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	fmt.Println(ui.FormatRocket("Initializing netcode-patcher..."))
	fmt.Println()

	if err := appWorkspace.Initialize(); err != nil {
		fmt.Println(ui.FormatError("Failed to create state directory"))
		return err
	}

	path := appWorkspace.ConfigPath
	if _, err := os.Stat(path); err == nil && !initForce {
		fmt.Println(ui.FormatWarning("Config already exists"))
		fmt.Println(ui.FormatMuted("Location: " + path))
		fmt.Println(ui.FormatMuted("Use --force to overwrite it"))
		return nil
	}

	if err := config.DefaultConfig().Save(path); err != nil {
		fmt.Println(ui.FormatError("Failed to write config"))
		return err
	}

	fmt.Println(ui.FormatSuccess("Initialized"))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Config", path))
	fmt.Println(ui.RenderKeyValue("State", appWorkspace.StatePath))
	fmt.Println()
	fmt.Println(ui.FormatInfo("Next: set weaver.command and references, then run 'netcode-patcher doctor'"))
	return nil
}
