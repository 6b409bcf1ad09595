package cmd

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/EvaisaDev/UnityNetcodeWeaver/pkg/ui"
)

var configPlain bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Edit the patcher configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := appWorkspace.ConfigPath

		// Ensure it exists
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("config file not found at %s (run 'netcode-patcher init')", path)
		}

		fmt.Println(ui.FormatInfo("Opening config: " + path))

		editor := os.Getenv("EDITOR")
		if editor == "" {
			editor = "vi"
		}

		c := exec.Command(editor, path)
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		return c.Run()
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print the configuration after defaults are applied and ~ is expanded.

Examples:
  netcode-patcher config show
  netcode-patcher config show --plain > config.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := yaml.Marshal(appConfig)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}

		out := string(data)
		if !configPlain {
			fmt.Println(ui.FormatMuted("# " + appWorkspace.ConfigPath))
			out = ui.Highlight(out, "yaml")
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	configShowCmd.Flags().BoolVar(&configPlain, "plain", false, "Print without syntax highlighting")
	configCmd.AddCommand(configShowCmd)
}
