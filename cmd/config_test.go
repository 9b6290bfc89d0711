package cmd

import (
	"os"
	"testing"

	"github.com/shroud-cli/shroud/internal/configs"
)

func TestConfigInitWritesDefaults(t *testing.T) {
	resetCommandState(t)

	RootCmd.SetArgs([]string{"config", "init"})
	if err := RootCmd.Execute(); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if ExitCode() != 0 {
		t.Errorf("Expected exit code 0, got: %d", ExitCode())
	}

	path, err := configs.ConfigPath()
	if err != nil {
		t.Fatalf("ConfigPath failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Expected config file at %s: %v", path, err)
	}

	config, err := configs.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if config != configs.DefaultConfig() {
		t.Errorf("Written config should match the defaults, got: %+v", config)
	}
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	resetCommandState(t)

	RootCmd.SetArgs([]string{"config", "init"})
	if err := RootCmd.Execute(); err != nil {
		t.Fatalf("First init failed: %v", err)
	}

	// Mark the existing file so a rewrite is detectable.
	path, err := configs.ConfigPath()
	if err != nil {
		t.Fatalf("ConfigPath failed: %v", err)
	}
	if err := os.WriteFile(path, []byte("gpg_binary = \"gpg2\"\n"), 0600); err != nil {
		t.Fatalf("Failed to modify config: %v", err)
	}

	RootCmd.SetArgs([]string{"config", "init"})
	if err := RootCmd.Execute(); err != nil {
		t.Fatalf("Second init failed: %v", err)
	}
	if ExitCode() != 1 {
		t.Errorf("Expected exit code 1 without --force, got: %d", ExitCode())
	}
	config, err := configs.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if config.GPGBinary != "gpg2" {
		t.Errorf("Config must survive init without --force, got gpg_binary: %s", config.GPGBinary)
	}

	exitCode = 0
	RootCmd.SetArgs([]string{"config", "init", "--force"})
	if err := RootCmd.Execute(); err != nil {
		t.Fatalf("Forced init failed: %v", err)
	}
	if ExitCode() != 0 {
		t.Errorf("Expected exit code 0 with --force, got: %d", ExitCode())
	}
	config, err = configs.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if config != configs.DefaultConfig() {
		t.Errorf("Forced init should restore the defaults, got: %+v", config)
	}
}
