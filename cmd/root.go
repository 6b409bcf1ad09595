package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/EvaisaDev/UnityNetcodeWeaver/internal/adapters/repository"
	"github.com/EvaisaDev/UnityNetcodeWeaver/internal/adapters/weaver"
	"github.com/EvaisaDev/UnityNetcodeWeaver/internal/core/services"
	"github.com/EvaisaDev/UnityNetcodeWeaver/internal/logging"
	"github.com/EvaisaDev/UnityNetcodeWeaver/pkg/config"
	"github.com/EvaisaDev/UnityNetcodeWeaver/pkg/ui"
	"github.com/EvaisaDev/UnityNetcodeWeaver/pkg/workspace"
)

var (
	// Global workspace and configuration
	appWorkspace *workspace.Workspace
	appConfig    *config.Config
	appLogger    *slog.Logger

	// Services
	patchService *services.PatchService

	// Adapters
	processWeaver *weaver.ProcessWeaver
	historyRepo   *repository.FileHistoryRepository

	// Global flags
	configPath string
	logLevel   string
	verbose    bool
)

// errUnrecoverable makes the process exit non-zero after an assembly could not be restored
var errUnrecoverable = errors.New("one or more assemblies could not be restored from backup")

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "netcode-patcher",
	Short: "Patch compiled assemblies with networking serialization support",
	Long: ui.StyleTitle.Render("netcode-patcher") + " - Netcode Assembly Patcher\n\n" +
		"Runs the netcode weaver over compiled assemblies in place.\n" +
		"Hook assemblies and assemblies without debug symbols are skipped,\n" +
		"and a failed patch restores the original assembly from its backup.",
	SilenceUsage:      true,
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Add subcommands
	rootCmd.AddCommand(patchCmd)
	rootCmd.AddCommand(patchAllCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "V", false, "Show structured log fields")
}

// initializeApp loads configuration and wires the services
func initializeApp(cmd *cobra.Command, args []string) error {
	ws, err := workspace.New()
	if err != nil {
		return fmt.Errorf("failed to initialize workspace: %w", err)
	}
	appWorkspace = ws

	if configPath != "" {
		appWorkspace.ConfigPath = configPath
	}

	cfg, err := config.Load(appWorkspace.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	appConfig = cfg

	ui.SetTheme(appConfig.ColorTheme)

	level := appConfig.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	appLogger = logging.New(cmd.ErrOrStderr(), logging.ParseLevel(level), verbose)

	// Version and init do not need the patch pipeline
	if cmd.Name() == "version" || cmd.Name() == "init" {
		return nil
	}

	processWeaver = weaver.NewProcessWeaver(appConfig.Weaver)
	historyRepo = repository.NewFileHistoryRepository(appWorkspace.HistoryPath(), appConfig.HistoryLimit)

	filter := services.NewEligibilityFilter(appConfig.RuleSet(), appConfig.EnforceBlacklist, appLogger)
	patchService = services.NewPatchService(filter, processWeaver, historyRepo, appLogger)

	return nil
}

// getContext returns a context that is cancelled on Ctrl+C
func getContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// requireWeaver fails early when the weaver executable cannot be found
func requireWeaver() error {
	if processWeaver.IsAvailable() {
		return nil
	}
	fmt.Println(ui.FormatError("Weaver not found: " + processWeaver.Command()))
	fmt.Println(ui.FormatInfo("Set weaver.command in " + appWorkspace.ConfigPath + " or run 'netcode-patcher doctor'"))
	return fmt.Errorf("weaver %q not found", processWeaver.Command())
}
