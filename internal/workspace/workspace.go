// Package workspace manages the volatile directory holding a session's
// plaintext working copy.
//
// A workspace is a private 0700 temporary directory containing exactly one
// file: the decrypted working copy. It is created under a RAM-backed base
// directory (/dev/shm on most Linux systems) so the plaintext never touches
// durable storage, and destroyed recursively at session end. Destruction is
// idempotent: a workspace is torn down at most once.
package workspace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// encryptedSuffixes are stripped from the ciphertext basename to name the
// plaintext working copy.
var encryptedSuffixes = []string{".gpg", ".pgp", ".asc"}

// Workspace is a private temporary directory holding one plaintext file.
type Workspace struct {
	// Dir is the workspace directory itself.
	Dir string

	// PlaintextPath is the working copy inside Dir. The decrypt step
	// creates it; the file does not exist until then.
	PlaintextPath string

	mu        sync.Mutex
	destroyed bool
}

// New allocates a workspace under baseDir for the given ciphertext. The
// plaintext file is not created; only its path is reserved.
func New(encryptedPath, baseDir string) (*Workspace, error) {
	dir, err := os.MkdirTemp(baseDir, "shroud-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create workspace in %s: %w", baseDir, err)
	}

	return &Workspace{
		Dir:           dir,
		PlaintextPath: filepath.Join(dir, PlaintextName(encryptedPath)),
	}, nil
}

// PlaintextName derives the working-copy filename from the ciphertext path
// by stripping a recognized encryption suffix from its basename.
func PlaintextName(encryptedPath string) string {
	name := filepath.Base(encryptedPath)
	for _, suffix := range encryptedSuffixes {
		if trimmed := strings.TrimSuffix(name, suffix); trimmed != name && trimmed != "" {
			return trimmed
		}
	}
	return name + ".txt"
}

// Destroy removes the workspace directory and everything in it. Calling it
// again after a successful destroy is a no-op.
func (w *Workspace) Destroy() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.destroyed {
		return nil
	}
	if err := os.RemoveAll(w.Dir); err != nil {
		return fmt.Errorf("failed to remove workspace %s: %w", w.Dir, err)
	}
	w.destroyed = true
	return nil
}

// Destroyed reports whether the workspace has been torn down.
func (w *Workspace) Destroyed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.destroyed
}

// Recover copies the plaintext to a clearly-labeled file under recoveryDir
// and returns its path. It is the non-interactive fallback when a final
// re-encryption fails: the copy lands on durable storage, but labeled and
// announced, which beats silent data loss.
func Recover(plaintextPath, recoveryDir string) (string, error) {
	if err := os.MkdirAll(recoveryDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create recovery directory: %w", err)
	}

	name := fmt.Sprintf("RECOVERED-%s-%s-%s",
		time.Now().Format("20060102-150405"),
		uuid.New().String()[:8],
		filepath.Base(plaintextPath))
	dst := filepath.Join(recoveryDir, name)

	src, err := os.Open(plaintextPath)
	if err != nil {
		return "", fmt.Errorf("failed to open plaintext for recovery: %w", err)
	}
	defer src.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return "", fmt.Errorf("failed to create recovery file: %w", err)
	}

	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return "", fmt.Errorf("failed to write recovery file: %w", err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize recovery file: %w", err)
	}

	return dst, nil
}
