package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"github.com/EvaisaDev/UnityNetcodeWeaver/internal/core/domain"
)

// WeaverConfig describes how to launch the external weaver
type WeaverConfig struct {
	Command        string            `yaml:"command"`
	Args           []string          `yaml:"args"`
	Env            map[string]string `yaml:"env"`
	TimeoutSeconds int               `yaml:"timeout_seconds"`
}

type Config struct {
	Weaver WeaverConfig `yaml:"weaver"`

	// Reference assemblies passed to every weave, in order
	References []string `yaml:"references"`

	// Eligibility rules
	HookMarker       string   `yaml:"hook_marker"`
	Blacklist        []string `yaml:"blacklist"`
	EnforceBlacklist bool     `yaml:"enforce_blacklist"`

	// Discovery
	AssemblyPatterns []string `yaml:"assembly_patterns"`

	// UI Settings
	LogLevel   string `yaml:"log_level"`
	ColorTheme string `yaml:"color_theme"`

	// Watch
	WatchDebounceMS int `yaml:"watch_debounce_ms"`

	// History
	HistoryLimit int `yaml:"history_limit"`
}

// DefaultConfig returns a Config struct with default values
func DefaultConfig() *Config {
	return &Config{
		Weaver: WeaverConfig{
			Command:        "netcode-weaver",
			Args:           []string{},
			Env:            make(map[string]string),
			TimeoutSeconds: 0,
		},
		References:       []string{},
		HookMarker:       domain.DefaultHookMarker,
		Blacklist:        append([]string{}, domain.DefaultBlacklist...),
		EnforceBlacklist: false,
		AssemblyPatterns: []string{"*.dll"},
		LogLevel:         "info",
		ColorTheme:       "auto",
		WatchDebounceMS:  500,
		HistoryLimit:     200,
	}
}

// Load reads configuration from the specified file path
func Load(path string) (*Config, error) {
	// Start with default config
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		// If file doesn't exist, return default config (not an error)
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Weaver.Env == nil {
		cfg.Weaver.Env = make(map[string]string)
	}

	// Apply defaults for essential values if missing
	if cfg.Weaver.Command == "" {
		cfg.Weaver.Command = "netcode-weaver"
	}
	if cfg.HookMarker == "" {
		cfg.HookMarker = domain.DefaultHookMarker
	}
	if len(cfg.AssemblyPatterns) == 0 {
		cfg.AssemblyPatterns = []string{"*.dll"}
	}
	if cfg.WatchDebounceMS <= 0 {
		cfg.WatchDebounceMS = 500
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = 200
	}
	if cfg.Weaver.TimeoutSeconds < 0 {
		cfg.Weaver.TimeoutSeconds = 0
	}

	if !isValidLogLevel(cfg.LogLevel) {
		cfg.LogLevel = "info"
	}

	if err := cfg.expandPaths(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save persists the current configuration to the specified file path
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// RuleSet builds the eligibility rules from the configuration
func (c *Config) RuleSet() domain.RuleSet {
	return domain.NewRuleSet(c.HookMarker, c.Blacklist)
}

// Extensions returns the file extensions named by AssemblyPatterns
func (c *Config) Extensions() []string {
	var exts []string
	seen := make(map[string]bool)
	for _, p := range c.AssemblyPatterns {
		ext := strings.ToLower(filepath.Ext(p))
		if ext == "" || strings.ContainsAny(ext, "*?[") || seen[ext] {
			continue
		}
		seen[ext] = true
		exts = append(exts, ext)
	}
	return exts
}

// expandPaths resolves a leading ~ in the weaver command and reference paths
func (c *Config) expandPaths() error {
	cmd, err := homedir.Expand(c.Weaver.Command)
	if err != nil {
		return fmt.Errorf("invalid weaver command %q: %w", c.Weaver.Command, err)
	}
	c.Weaver.Command = cmd

	for i, ref := range c.References {
		expanded, err := homedir.Expand(ref)
		if err != nil {
			return fmt.Errorf("invalid reference path %q: %w", ref, err)
		}
		c.References[i] = expanded
	}
	return nil
}

// isValidLogLevel checks if the log level is valid
func isValidLogLevel(level string) bool {
	validLevels := []string{"debug", "info", "warn", "error"}
	for _, valid := range validLevels {
		if level == valid {
			return true
		}
	}
	return false
}
