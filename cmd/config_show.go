package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shroud-cli/shroud/internal/configs"
	"github.com/shroud-cli/shroud/internal/ui"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Shows the effective settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := configs.LoadConfig()
		if err != nil {
			Logger.WarnfAlways("Ignoring unreadable config: %v", err)
		}

		path, err := configs.ConfigPath()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to locate config file: %v", err)
		}
		if _, statErr := os.Stat(path); statErr == nil {
			fmt.Println("Config file: " + ui.Path.Sprint(path))
		} else {
			fmt.Println("Config file: " + ui.Path.Sprint(path) + " " + ui.Muted.Sprint("not present, showing defaults"))
		}

		fmt.Println("  gpg_binary    = " + config.GPGBinary)
		fmt.Println("  workspace_dir = " + config.WorkspaceDir)
		fmt.Println("  placeholder   = " + config.Placeholder)
		fmt.Println("  recovery_dir  = " + config.RecoveryDir)
		fmt.Printf("  no_input      = %t\n", config.NoInput)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
