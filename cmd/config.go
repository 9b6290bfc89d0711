package cmd

import (
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage shroud configuration",
	Long: `Provides commands for managing the config file.

Use these commands to:
  - Write a config file with the default settings (config init)
  - Show the effective settings and where they come from (config show)

Settings in the config file apply to every invocation; command-line flags
override them per invocation.`,
}
