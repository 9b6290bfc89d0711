package cmd

import (
	"errors"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/shroud-cli/shroud/internal/configs"
	shrouderrors "github.com/shroud-cli/shroud/internal/errors"
	"github.com/shroud-cli/shroud/internal/gpg"
	"github.com/shroud-cli/shroud/internal/ui"
	"github.com/shroud-cli/shroud/internal/workspace"
)

var recipientCmd = &cobra.Command{
	Use:   "recipient <encrypted-file>",
	Short: "Shows the key ID a ciphertext is encrypted to",
	Long: `Decrypts the file into a volatile workspace just long enough to read the
recipient key ID from the backend's status output, then destroys the
plaintext. Nothing is written outside RAM-backed storage.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		encryptedPath := args[0]
		spinner, cleanup := startSpinner("Reading recipient...")
		defer cleanup()

		config, err := configs.LoadConfig()
		if err != nil {
			Logger.WarnfAlways("Ignoring unreadable config: %v", err)
		}

		if _, err := os.Stat(encryptedPath); err != nil {
			spinner.FinalMSG = color.RedString("✗") + " Encrypted file does not exist: " + ui.Path.Sprint(encryptedPath)
			exitCode = 1
			return nil
		}

		ws, err := workspace.New(encryptedPath, config.WorkspaceDir)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to allocate workspace: %v", err)
		}
		defer func() {
			if err := ws.Destroy(); err != nil {
				Logger.Errorf("Failed to destroy workspace: %v", err)
			}
		}()

		recipient, err := gpg.New(config.GPGBinary, Logger).Decrypt(cmd.Context(), encryptedPath, ws.PlaintextPath)
		if err != nil {
			if errors.Is(err, shrouderrors.ErrRecipientUnknown) {
				spinner.FinalMSG = color.RedString("✗") + " Decryption succeeded but no recipient was reported"
			} else {
				spinner.FinalMSG = color.RedString("✗") + " Decryption failed\n" +
					color.RedString("Error: ") + err.Error()
			}
			exitCode = 1
			return nil
		}

		spinner.FinalMSG = color.GreenString("✓") + " Encrypted to key " + ui.Key.Sprint(recipient)
		return nil
	},
}
