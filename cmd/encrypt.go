package cmd

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/shroud-cli/shroud/internal/configs"
	shrouderrors "github.com/shroud-cli/shroud/internal/errors"
	"github.com/shroud-cli/shroud/internal/gpg"
	"github.com/shroud-cli/shroud/internal/ui"
)

var encryptRecipient string

var encryptCmd = &cobra.Command{
	Use:   "encrypt <plaintext-file> <encrypted-file>",
	Short: "Encrypts a file once, to a recipient key",
	Long: `Encrypts the plaintext file to the destination path, addressed to the given
recipient key ID. This is the same backend invocation an editing session uses
for its auto-saves. The plaintext file is left in place; remove it yourself
once you no longer need it.

Use 'shroud recipient' to discover the key ID an existing ciphertext targets.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		plaintextPath, encryptedPath := args[0], args[1]
		spinner, cleanup := startSpinner("Encrypting...")
		defer cleanup()

		config, err := configs.LoadConfig()
		if err != nil {
			Logger.WarnfAlways("Ignoring unreadable config: %v", err)
		}

		if encryptRecipient == "" {
			spinner.FinalMSG = color.RedString("✗") + " " + shrouderrors.ErrMissingRecipient.Error() + "\n" +
				color.CyanString("→") + " Find it with " + ui.Code.Sprint("shroud recipient "+encryptedPath)
			exitCode = 1
			return nil
		}

		if _, err := os.Stat(plaintextPath); err != nil {
			spinner.FinalMSG = color.RedString("✗") + " Plaintext file does not exist: " + ui.Path.Sprint(plaintextPath)
			exitCode = 1
			return nil
		}

		if err := gpg.New(config.GPGBinary, Logger).Encrypt(cmd.Context(), plaintextPath, encryptedPath, encryptRecipient); err != nil {
			spinner.FinalMSG = color.RedString("✗") + " Encryption failed\n" +
				color.RedString("Error: ") + err.Error()
			exitCode = 1
			return nil
		}

		spinner.FinalMSG = color.GreenString("✓") + " Encrypted " + ui.Path.Sprint(plaintextPath) +
			" to " + ui.Path.Sprint(encryptedPath) + " for key " + ui.Key.Sprint(encryptRecipient)
		return nil
	},
}

func init() {
	encryptCmd.Flags().StringVarP(&encryptRecipient, "recipient", "r", "", "recipient key ID to encrypt to")
}
