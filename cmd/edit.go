package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/shroud-cli/shroud/internal/configs"
	shrouderrors "github.com/shroud-cli/shroud/internal/errors"
	"github.com/shroud-cli/shroud/internal/gpg"
	"github.com/shroud-cli/shroud/internal/session"
	"github.com/shroud-cli/shroud/internal/ui"
	"github.com/shroud-cli/shroud/internal/workspace"
)

var (
	editPlaceholder  string
	editWorkspaceDir string
	editRecoveryDir  string
	editGPGBinary    string
	editNoInput      bool
)

var editCmd = &cobra.Command{
	Use:   "edit <encrypted-file> <command>",
	Short: "Run a command on a decrypted working copy, re-encrypting on every change",
	Long: `Decrypts the file into a private RAM-backed workspace, runs the command with
%FILE replaced by the plaintext path, re-encrypts the working copy back to its
original location whenever it changes, and destroys the workspace when the
command exits or the session is interrupted.

The final re-encryption gates workspace destruction: if it fails, shroud never
silently discards your edits. On a terminal it waits for you to resolve the
situation; otherwise it copies the plaintext to a labeled recovery file.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEdit(cmd.Context(), args[0], args[1])
	},
}

func init() {
	editCmd.Flags().StringVar(&editPlaceholder, "placeholder", "", "token replaced by the plaintext path (default %FILE)")
	editCmd.Flags().StringVar(&editWorkspaceDir, "workspace-dir", "", "base directory for the volatile workspace (default /dev/shm)")
	editCmd.Flags().StringVar(&editRecoveryDir, "recovery-dir", "", "directory for labeled recovery copies")
	editCmd.Flags().StringVar(&editGPGBinary, "gpg", "", "GPG binary to use")
	editCmd.Flags().BoolVar(&editNoInput, "no-input", false, "never prompt; fall back to a recovery copy on cleanup failure")
}

func runEdit(ctx context.Context, encryptedPath, command string) error {
	config, err := configs.LoadConfig()
	if err != nil {
		Logger.WarnfAlways("Ignoring unreadable config: %v", err)
	}
	if editPlaceholder != "" {
		config.Placeholder = editPlaceholder
	}
	if editWorkspaceDir != "" {
		config.WorkspaceDir = editWorkspaceDir
	}
	if editRecoveryDir != "" {
		config.RecoveryDir = editRecoveryDir
	}
	if editGPGBinary != "" {
		config.GPGBinary = editGPGBinary
	}
	if editNoInput {
		config.NoInput = true
	}

	s, err := session.New(session.Config{
		EncryptedPath: encryptedPath,
		Command:       command,
		Placeholder:   config.Placeholder,
		WorkspaceDir:  config.WorkspaceDir,
		Cipher:        gpg.New(config.GPGBinary, Logger),
		OnSaveFailure: saveFailureHook(config),
		Logger:        Logger,
	})
	if err != nil {
		return describePreflight(err, encryptedPath)
	}

	// Interrupt and terminate signals drive the same terminating sequence
	// as a normal child exit, through the session's context.
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	code, err := s.Run(ctx)
	exitCode = code
	if err != nil {
		if errors.Is(err, shrouderrors.ErrRecipientUnknown) {
			Logger.Errorf("%v", err)
			fmt.Fprintln(os.Stderr, ui.Info.Sprint("→")+" Re-encryption could not be targeted; the file was left untouched")
			return nil
		}
		Logger.Errorf("Session failed: %v", err)
		return nil
	}

	if misses := s.AutoSaveMisses(); misses > 0 {
		Logger.WarnfAlways("%d automatic re-encryption(s) failed during the session", misses)
	}
	if s.SaveFailed() {
		// Details were already reported by the escalation path.
		return nil
	}
	Logger.Infof("Session ended; %d auto-save(s), exit code %d", s.AutoSaves(), code)
	return nil
}

// saveFailureHook builds the escalation path for a failed final
// re-encryption: block on explicit operator acknowledgement when someone is
// there to give it, otherwise preserve a labeled recovery copy. Returning
// false keeps the workspace (and the plaintext) intact.
func saveFailureHook(config configs.Config) func(plaintextPath string, saveErr error) bool {
	return func(plaintextPath string, saveErr error) bool {
		fmt.Fprintln(os.Stderr, ui.Error.Sprint("✗")+" Final re-encryption failed: "+saveErr.Error())

		if !config.NoInput && term.IsTerminal(int(os.Stdin.Fd())) {
			fmt.Fprintln(os.Stderr)
			fmt.Fprintf(os.Stderr, "Please manually re-encrypt %s as you wish, then press Enter to end the session. Otherwise you will almost certainly %s.\n",
				ui.Path.Sprint(plaintextPath), color.RedString("LOSE DATA"))
			fmt.Fprint(os.Stderr, "Press Enter to continue...")
			if _, err := bufio.NewReader(os.Stdin).ReadString('\n'); err != nil {
				Logger.Errorf("Failed to read acknowledgement: %v", err)
				return false
			}
			return true
		}

		recovered, err := workspace.Recover(plaintextPath, config.RecoveryDir)
		if err != nil {
			Logger.Errorf("Failed to write recovery copy: %v", err)
			return false
		}
		fmt.Fprintln(os.Stderr, ui.Warning.Sprint("⚠")+" Plaintext preserved at "+ui.Path.Sprint(recovered)+
			"; re-encrypt it and delete it as soon as possible")
		return true
	}
}

// describePreflight turns pre-flight failures into actionable messages.
func describePreflight(err error, encryptedPath string) error {
	switch {
	case errors.Is(err, shrouderrors.ErrSourceFileMissing):
		exitCode = 1
		fmt.Fprintln(os.Stderr, ui.Error.Sprint("✗")+" Encrypted file does not exist: "+ui.Path.Sprint(encryptedPath))
		return nil
	case errors.Is(err, shrouderrors.ErrMissingCommand):
		return fmt.Errorf("%w (use %s in it to refer to the plaintext file)", err, ui.Code.Sprintf("%%FILE"))
	default:
		return err
	}
}
