package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/shroud-cli/shroud/internal/configs"
	"github.com/shroud-cli/shroud/internal/gpg"
	"github.com/shroud-cli/shroud/internal/ui"
	"github.com/shroud-cli/shroud/internal/workspace"
)

var decryptOutput string

var decryptCmd = &cobra.Command{
	Use:   "decrypt <encrypted-file>",
	Short: "Decrypts a file once, to stdout or a chosen path",
	Long: `Decrypts the file into a volatile workspace and streams the plaintext to
stdout (or writes it to --output). The workspace is destroyed afterwards, so
the only durable plaintext is the one you explicitly asked for.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		encryptedPath := args[0]

		config, err := configs.LoadConfig()
		if err != nil {
			Logger.WarnfAlways("Ignoring unreadable config: %v", err)
		}

		if _, err := os.Stat(encryptedPath); err != nil {
			fmt.Fprintln(os.Stderr, ui.Error.Sprint("✗")+" Encrypted file does not exist: "+ui.Path.Sprint(encryptedPath))
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

		if _, err := gpg.New(config.GPGBinary, Logger).Decrypt(cmd.Context(), encryptedPath, ws.PlaintextPath); err != nil {
			fmt.Fprintln(os.Stderr, ui.Error.Sprint("✗")+" Decryption failed\n"+ui.Error.Sprint("Error: ")+err.Error())
			exitCode = 1
			return nil
		}

		plaintext, err := os.Open(ws.PlaintextPath)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to open decrypted file: %v", err)
		}
		defer plaintext.Close()

		if decryptOutput == "" {
			if _, err := io.Copy(os.Stdout, plaintext); err != nil {
				return Logger.ErrorfAndReturn("failed to write plaintext to stdout: %v", err)
			}
			return nil
		}

		out, err := os.OpenFile(decryptOutput, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to create %s: %v", decryptOutput, err)
		}
		if _, err := io.Copy(out, plaintext); err != nil {
			out.Close()
			return Logger.ErrorfAndReturn("failed to write %s: %v", decryptOutput, err)
		}
		if err := out.Close(); err != nil {
			return Logger.ErrorfAndReturn("failed to finalize %s: %v", decryptOutput, err)
		}

		fmt.Println(color.GreenString("✓") + " Decrypted to " + ui.Path.Sprint(decryptOutput))
		return nil
	},
}

func init() {
	decryptCmd.Flags().StringVarP(&decryptOutput, "output", "o", "", "write the plaintext to this path instead of stdout")
}
