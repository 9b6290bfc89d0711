package gpg

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	shrouderrors "github.com/shroud-cli/shroud/internal/errors"
	logger "github.com/shroud-cli/shroud/internal/logging"
)

// GPG invokes the GnuPG binary for decryption and encryption. It satisfies
// the session.Cipher interface.
type GPG struct {
	// Binary is the GPG executable name or path.
	Binary string

	Logger logger.Logger
}

// New returns a gateway using the given GPG binary.
func New(binary string, log logger.Logger) *GPG {
	return &GPG{Binary: binary, Logger: log}
}

// Decrypt decrypts encryptedPath into plaintextPath and returns the
// recipient key ID the ciphertext was addressed to, extracted from GPG's
// machine-readable status stream.
func (g *GPG) Decrypt(ctx context.Context, encryptedPath, plaintextPath string) (string, error) {
	args := []string{
		"--batch", "--yes",
		"--status-fd", "2",
		"--decrypt",
		"--output", plaintextPath,
		encryptedPath,
	}
	g.Logger.Debugf("Running %s %s", g.Binary, strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, g.Binary, args...)
	var stderr bytes.Buffer
	cmd.Stdout = io.Discard
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%w: %v: %s",
			shrouderrors.ErrDecryptionFailed, err, diagnostics(&stderr))
	}

	recipient, ok := ParseRecipient(stderr.String())
	if !ok {
		return "", shrouderrors.ErrRecipientUnknown
	}
	g.Logger.Debugf("Ciphertext is encrypted to key %s", recipient)
	return recipient, nil
}

// Encrypt overwrites encryptedPath with plaintextPath encrypted to the
// recipient key ID. The operation has no side effects beyond the rewritten
// ciphertext, so repeating it with unchanged plaintext is harmless.
func (g *GPG) Encrypt(ctx context.Context, plaintextPath, encryptedPath, recipient string) error {
	args := []string{
		"--batch", "--yes",
		"--output", encryptedPath,
		"--recipient", recipient,
		"--encrypt",
		plaintextPath,
	}
	g.Logger.Debugf("Running %s %s", g.Binary, strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, g.Binary, args...)
	var stderr bytes.Buffer
	cmd.Stdout = io.Discard
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: %v: %s",
			shrouderrors.ErrEncryptionFailed, err, diagnostics(&stderr))
	}
	return nil
}

// diagnostics trims the backend's stderr for inclusion in error messages,
// keeping it verbatim apart from surrounding whitespace.
func diagnostics(buf *bytes.Buffer) string {
	text := strings.TrimSpace(buf.String())
	if text == "" {
		return "(no diagnostic output)"
	}
	return text
}
