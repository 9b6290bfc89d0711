package cmd

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/shroud-cli/shroud/internal/configs"
	"github.com/shroud-cli/shroud/internal/ui"
)

var configInitForce bool

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Writes a config file with the default settings",
	Long: `Writes the built-in defaults to the user config file so they can be edited.
An existing config file is left untouched unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		spinner, cleanup := startSpinner("Writing config...")
		defer cleanup()

		path, err := configs.ConfigPath()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to locate config file: %v", err)
		}

		if _, err := os.Stat(path); err == nil && !configInitForce {
			spinner.FinalMSG = color.RedString("✗") + " Config already exists: " + ui.Path.Sprint(path) + "\n" +
				color.CyanString("→") + " Re-run with " + ui.Code.Sprint("--force") + " to overwrite it"
			exitCode = 1
			return nil
		}

		if _, err := configs.SaveConfig(configs.DefaultConfig()); err != nil {
			return Logger.ErrorfAndReturn("failed to write config: %v", err)
		}

		spinner.FinalMSG = color.GreenString("✓") + " Wrote default config to " + ui.Path.Sprint(path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
}
