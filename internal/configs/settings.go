package configs

import (
	"fmt"
	"os"
	"path/filepath"
)

// ramBackedDir is preferred for plaintext working copies; on most Linux
// systems it is a tmpfs mount that never touches durable storage.
const ramBackedDir = "/dev/shm"

// Config holds user-adjustable settings, loaded from config.toml and
// overridable per invocation by command-line flags.
type Config struct {
	// GPGBinary is the name or path of the GPG executable.
	GPGBinary string `toml:"gpg_binary"`

	// WorkspaceDir is the base directory for plaintext workspaces.
	WorkspaceDir string `toml:"workspace_dir"`

	// Placeholder is the token in command templates replaced with the
	// plaintext path.
	Placeholder string `toml:"placeholder"`

	// RecoveryDir receives labeled plaintext copies when a final
	// re-encryption fails and no operator is present to intervene.
	RecoveryDir string `toml:"recovery_dir"`

	// NoInput forces the non-interactive escalation fallback even when
	// stdin is a terminal.
	NoInput bool `toml:"no_input"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		GPGBinary:    "gpg",
		WorkspaceDir: defaultWorkspaceDir(),
		Placeholder:  "%FILE",
		RecoveryDir:  defaultRecoveryDir(),
	}
}

// ConfigPath returns the location of the user's config file.
func ConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(configDir, "shroud", "config.toml"), nil
}

// SaveConfig writes the config to the user's config file, creating its
// directory as needed, and returns the file's path.
func SaveConfig(config Config) (string, error) {
	path, err := ConfigPath()
	if err != nil {
		return "", err
	}
	if err := SaveTOML(path, config); err != nil {
		return "", fmt.Errorf("failed to write config to %s: %w", path, err)
	}
	return path, nil
}

// LoadConfig loads the user's config file, applying defaults for any
// setting the file does not mention. A missing file yields the defaults.
func LoadConfig() (Config, error) {
	config := DefaultConfig()

	path, err := ConfigPath()
	if err != nil {
		return config, err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil
	}

	if err := LoadTOML(path, &config); err != nil {
		return config, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	return config, nil
}

func defaultWorkspaceDir() string {
	if info, err := os.Stat(ramBackedDir); err == nil && info.IsDir() {
		return ramBackedDir
	}
	return os.TempDir()
}

func defaultRecoveryDir() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "shroud-recovery")
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}
	return filepath.Join(dataDir, "shroud", "recovery")
}
