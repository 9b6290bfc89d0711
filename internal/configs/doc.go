// Package configs manages shroud's user configuration.
//
// Settings live in a single TOML file at the platform config directory
// (typically ~/.config/shroud/config.toml on Linux). Every setting has a
// built-in default, so the file is optional, and command-line flags override
// whatever the file provides.
//
// The workspace default prefers /dev/shm when present so plaintext working
// copies stay on RAM-backed storage.
package configs
