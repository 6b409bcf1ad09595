package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/mitchellh/go-homedir"

	"github.com/EvaisaDev/UnityNetcodeWeaver/internal/core/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to create test config file: %v", err)
	}
	return configPath
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg == nil {
		t.Fatal("DefaultConfig() returned nil")
	}

	if cfg.Weaver.Command != "netcode-weaver" {
		t.Errorf("expected default weaver command 'netcode-weaver', got %q", cfg.Weaver.Command)
	}

	if cfg.HookMarker != "mmhook" {
		t.Errorf("expected default HookMarker='mmhook', got %q", cfg.HookMarker)
	}

	if !reflect.DeepEqual(cfg.Blacklist, domain.DefaultBlacklist) {
		t.Errorf("expected default blacklist %v, got %v", domain.DefaultBlacklist, cfg.Blacklist)
	}

	if cfg.EnforceBlacklist {
		t.Error("expected EnforceBlacklist to default to false")
	}

	if cfg.HistoryLimit != 200 {
		t.Errorf("expected default HistoryLimit=200, got %d", cfg.HistoryLimit)
	}
}

func TestDefaultConfig_BlacklistIsACopy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Blacklist[0] = "changed"

	if domain.DefaultBlacklist[0] == "changed" {
		t.Fatal("DefaultConfig() shares the package blacklist slice")
	}
}

func TestLoad_NonExistentFile(t *testing.T) {
	// Loading a non-existent file should return default config
	cfg, err := Load("/nonexistent/path/config.yaml")

	if err != nil {
		t.Fatalf("unexpected error loading non-existent file: %v", err)
	}

	if cfg.Weaver.Command != "netcode-weaver" {
		t.Errorf("expected default weaver command, got %q", cfg.Weaver.Command)
	}

	if cfg.WatchDebounceMS != 500 {
		t.Errorf("expected default WatchDebounceMS=500, got %d", cfg.WatchDebounceMS)
	}
}

func TestSave_And_Load(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Weaver.Command = "dotnet"
	cfg.Weaver.Args = []string{"NetcodeWeaver.dll"}
	cfg.Weaver.TimeoutSeconds = 60
	cfg.References = []string{"/game/Managed/UnityEngine.dll", "/game/Managed/Unity.Netcode.Runtime.dll"}
	cfg.EnforceBlacklist = true
	cfg.LogLevel = "debug"

	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatal("config file was not created")
	}

	loaded, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if loaded.Weaver.Command != "dotnet" {
		t.Errorf("Weaver.Command: expected %q, got %q", "dotnet", loaded.Weaver.Command)
	}

	if !reflect.DeepEqual(loaded.Weaver.Args, cfg.Weaver.Args) {
		t.Errorf("Weaver.Args: expected %v, got %v", cfg.Weaver.Args, loaded.Weaver.Args)
	}

	if loaded.Weaver.TimeoutSeconds != 60 {
		t.Errorf("Weaver.TimeoutSeconds: expected 60, got %d", loaded.Weaver.TimeoutSeconds)
	}

	if !reflect.DeepEqual(loaded.References, cfg.References) {
		t.Errorf("References: expected %v, got %v", cfg.References, loaded.References)
	}

	if !loaded.EnforceBlacklist {
		t.Error("EnforceBlacklist: expected true")
	}

	if loaded.LogLevel != "debug" {
		t.Errorf("LogLevel: expected debug, got %q", loaded.LogLevel)
	}
}

func TestLoad_AppliesDefaults(t *testing.T) {
	configPath := writeConfig(t, `weaver:
  command: ""
hook_marker: ""
assembly_patterns: []
watch_debounce_ms: 0
history_limit: -3
log_level: loud
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Weaver.Command != "netcode-weaver" {
		t.Errorf("expected default weaver command for empty value, got %q", cfg.Weaver.Command)
	}
	if cfg.HookMarker != "mmhook" {
		t.Errorf("expected default hook marker, got %q", cfg.HookMarker)
	}
	if !reflect.DeepEqual(cfg.AssemblyPatterns, []string{"*.dll"}) {
		t.Errorf("expected default assembly patterns, got %v", cfg.AssemblyPatterns)
	}
	if cfg.WatchDebounceMS != 500 {
		t.Errorf("expected default WatchDebounceMS, got %d", cfg.WatchDebounceMS)
	}
	if cfg.HistoryLimit != 200 {
		t.Errorf("expected default HistoryLimit, got %d", cfg.HistoryLimit)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected invalid log level to fall back to info, got %q", cfg.LogLevel)
	}
	if cfg.Weaver.Env == nil {
		t.Error("expected weaver env map to be initialized")
	}
}

func TestLoad_CustomBlacklistReplacesDefault(t *testing.T) {
	configPath := writeConfig(t, `blacklist:
  - MyGame.Core
  - Steamworks
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	want := []string{"MyGame.Core", "Steamworks"}
	if !reflect.DeepEqual(cfg.Blacklist, want) {
		t.Errorf("expected blacklist %v, got %v", want, cfg.Blacklist)
	}

	rules := cfg.RuleSet()
	if got := rules.Matches("/plugins/steamworks.net.dll"); !reflect.DeepEqual(got, []string{"Steamworks"}) {
		t.Errorf("RuleSet().Matches() = %v", got)
	}
	if !rules.IsHook("MMHOOK_MyGame.dll") {
		t.Error("expected default hook marker in rule set")
	}
}

func TestLoad_ExpandsHomeDirectory(t *testing.T) {
	configPath := writeConfig(t, `weaver:
  command: ~/tools/netcode-weaver
references:
  - ~/game/Managed/UnityEngine.dll
  - /abs/Unity.Netcode.Runtime.dll
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	home, err := homedir.Dir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	if want := filepath.Join(home, "tools", "netcode-weaver"); cfg.Weaver.Command != want {
		t.Errorf("expected weaver command %q, got %q", want, cfg.Weaver.Command)
	}
	if want := filepath.Join(home, "game", "Managed", "UnityEngine.dll"); cfg.References[0] != want {
		t.Errorf("expected reference %q, got %q", want, cfg.References[0])
	}
	if cfg.References[1] != "/abs/Unity.Netcode.Runtime.dll" {
		t.Errorf("absolute reference changed: %q", cfg.References[1])
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	configPath := writeConfig(t, `weaver:
  command: dotnet
blacklist: [invalid yaml structure
`)

	if _, err := Load(configPath); err == nil {
		t.Fatal("expected error loading invalid YAML, got nil")
	}
}

func TestExtensions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AssemblyPatterns = []string{"*.dll", "*.DLL", "*.exe", "*", "Foo.*"}

	want := []string{".dll", ".exe"}
	if got := cfg.Extensions(); !reflect.DeepEqual(got, want) {
		t.Errorf("Extensions() = %v, want %v", got, want)
	}
}
