package configs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.GPGBinary != "gpg" {
		t.Errorf("Expected default gpg binary 'gpg', got: %s", config.GPGBinary)
	}
	if config.Placeholder != "%FILE" {
		t.Errorf("Expected default placeholder '%%FILE', got: %s", config.Placeholder)
	}
	if config.WorkspaceDir == "" {
		t.Error("Expected non-empty default workspace dir")
	}
	if config.RecoveryDir == "" {
		t.Error("Expected non-empty default recovery dir")
	}
	if config.NoInput {
		t.Error("Expected NoInput to default to false")
	}
}

func TestSaveAndLoadTOML(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "config.toml")

	saved := Config{
		GPGBinary:    "gpg2",
		WorkspaceDir: "/dev/shm",
		Placeholder:  "{}",
		RecoveryDir:  "/var/tmp/recovery",
		NoInput:      true,
	}
	if err := SaveTOML(path, saved); err != nil {
		t.Fatalf("SaveTOML failed: %v", err)
	}

	var loaded Config
	if err := LoadTOML(path, &loaded); err != nil {
		t.Fatalf("LoadTOML failed: %v", err)
	}
	if loaded != saved {
		t.Errorf("Round trip mismatch: got %+v, want %+v", loaded, saved)
	}
}

func TestLoadTOMLPartialFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.toml")
	if err := os.WriteFile(path, []byte("gpg_binary = \"gpg2\"\n"), 0600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	// Start from defaults; the file should only override what it mentions.
	config := DefaultConfig()
	if err := LoadTOML(path, &config); err != nil {
		t.Fatalf("LoadTOML failed: %v", err)
	}
	if config.GPGBinary != "gpg2" {
		t.Errorf("Expected gpg_binary override 'gpg2', got: %s", config.GPGBinary)
	}
	if config.Placeholder != "%FILE" {
		t.Errorf("Expected placeholder default to survive, got: %s", config.Placeholder)
	}
}
