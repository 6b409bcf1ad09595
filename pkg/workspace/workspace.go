package workspace

import (
	"fmt"
	"os"
	"path/filepath"
)

const appName = "netcode-patcher"

// Workspace holds the per-user directories used by the patcher
type Workspace struct {
	StatePath  string
	ConfigPath string
}

// New creates a new Workspace with XDG-compliant paths
func New() (*Workspace, error) {
	statePath, stateErr := getStateRoot()
	configPath, configErr := getConfigPath()
	if stateErr != nil {
		return nil, fmt.Errorf("failed to determine state directory: %w", stateErr)
	}
	if configErr != nil {
		return nil, fmt.Errorf("failed to determine config path: %w", configErr)
	}

	return &Workspace{
		StatePath:  statePath,
		ConfigPath: configPath,
	}, nil
}

// getStateRoot returns the directory for history and other runtime state
// Follows XDG Base Directory specification on Unix and uses AppData on Windows
func getStateRoot() (string, error) {
	if xdgStateHome := os.Getenv("XDG_STATE_HOME"); xdgStateHome != "" {
		return filepath.Join(xdgStateHome, appName), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
		return filepath.Join(localAppData, appName), nil
	}

	// Fall back to ~/.local/state/netcode-patcher
	return filepath.Join(homeDir, ".local", "state", appName), nil
}

func getConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, appName, "config.yaml"), nil
	}

	// Fall back to ~/.config/netcode-patcher/config.yaml
	return filepath.Join(homeDir, ".config", appName, "config.yaml"), nil
}

// Initialize creates the state directory if it doesn't exist
func (w *Workspace) Initialize() error {
	if err := os.MkdirAll(w.StatePath, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", w.StatePath, err)
	}
	return nil
}

// Exists checks if the state directory has been created
func (w *Workspace) Exists() bool {
	info, err := os.Stat(w.StatePath)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// HistoryPath returns the path to the patch history file
func (w *Workspace) HistoryPath() string {
	return filepath.Join(w.StatePath, "history.json")
}
