package cmd

import (
	"fmt"

	logger "github.com/shroud-cli/shroud/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	// exitCode is the process exit status chosen by the edit session; it
	// mirrors the child command's exit code, not cleanup success.
	exitCode int
)

var RootCmd = &cobra.Command{
	Use:   "shroud <encrypted-file> <command>",
	Short: "Shroud - edit GPG-encrypted files without the plaintext ever touching disk",
	Long: `Shroud opens a GPG-encrypted file in any program you choose by decrypting it
into RAM-backed storage, re-encrypting it back in place every time it changes,
and destroying the plaintext when the session ends.

The command template uses %FILE as a placeholder for the plaintext path:

  shroud notes.txt.gpg 'vi %FILE'
  shroud secrets.gpg 'code --wait %FILE'

Available Commands:
  edit       The same session, as an explicit subcommand with more flags
  recipient  Show the key ID a ciphertext is encrypted to
  decrypt    One-shot decrypt of a ciphertext
  encrypt    One-shot encrypt of a plaintext file
  config     Manage the config file

Run 'shroud help <command>' for more details on a specific command.
`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		Logger = logger.Logger{
			Verbose: verbose,
			Debug:   debug,
		}
		Logger.Debugf("Initializing shroud with verbose=%t, debug=%t", verbose, debug)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		if len(args) != 2 {
			return fmt.Errorf("expected <encrypted-file> <command>, got %d arguments", len(args))
		}
		return runEdit(cmd.Context(), args[0], args[1])
	},
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	RootCmd.AddCommand(editCmd)
	RootCmd.AddCommand(recipientCmd)
	RootCmd.AddCommand(decryptCmd)
	RootCmd.AddCommand(encryptCmd)
	RootCmd.AddCommand(configCmd)
}

// ExitCode returns the exit status the process should end with after a
// successful Execute.
func ExitCode() int {
	return exitCode
}
