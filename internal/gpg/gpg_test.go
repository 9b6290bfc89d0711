package gpg

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	shrouderrors "github.com/shroud-cli/shroud/internal/errors"
	logger "github.com/shroud-cli/shroud/internal/logging"
)

// fakeBackend is a stand-in for gpg, driven by the same flags shroud passes.
// "Encryption" prepends a header line naming the recipient; "decryption"
// strips it and emits the ENC_TO status line, so round trips are honest.
const fakeBackend = `#!/bin/sh
mode=""
out=""
recipient=""
prev=""
for a in "$@"; do
  case "$prev" in
    --output) out="$a" ;;
    --recipient) recipient="$a" ;;
  esac
  case "$a" in
    --decrypt) mode=decrypt ;;
    --encrypt) mode=encrypt ;;
  esac
  prev="$a"
  in="$a"
done
if [ "$mode" = decrypt ]; then
  keyid=$(head -n 1 "$in" | cut -d: -f2)
  echo "[GNUPG:] ENC_TO $keyid 1 0" >&2
  tail -n +2 "$in" > "$out"
else
  { echo "FAKE:$recipient"; cat "$in"; } > "$out"
fi
`

const failingBackend = `#!/bin/sh
echo "gpg: decryption failed: No secret key" >&2
exit 2
`

// silentBackend succeeds but never reports a recipient.
const silentBackend = `#!/bin/sh
out=""
prev=""
for a in "$@"; do
  if [ "$prev" = "--output" ]; then out="$a"; fi
  prev="$a"
done
: > "$out"
exit 0
`

func writeFakeBinary(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("Fake backend scripts require a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "fake-gpg")
	if err := os.WriteFile(path, []byte(script), 0700); err != nil { // #nosec G306
		t.Fatalf("Failed to write fake backend: %v", err)
	}
	return path
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	g := New(writeFakeBinary(t, fakeBackend), logger.Logger{})
	dir := t.TempDir()

	plaintext := filepath.Join(dir, "notes.txt")
	ciphertext := filepath.Join(dir, "notes.txt.gpg")
	recovered := filepath.Join(dir, "recovered.txt")

	content := "line one\nline two\n"
	if err := os.WriteFile(plaintext, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write plaintext: %v", err)
	}

	if err := g.Encrypt(context.Background(), plaintext, ciphertext, "9A8B7C6D5E4F3210"); err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	recipient, err := g.Decrypt(context.Background(), ciphertext, recovered)
	if err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}
	if recipient != "9A8B7C6D5E4F3210" {
		t.Errorf("Expected recipient 9A8B7C6D5E4F3210, got: %s", recipient)
	}

	got, err := os.ReadFile(recovered)
	if err != nil {
		t.Fatalf("Failed to read recovered plaintext: %v", err)
	}
	if string(got) != content {
		t.Errorf("Round trip mismatch: got %q, want %q", got, content)
	}
}

func TestEncryptIsIdempotent(t *testing.T) {
	g := New(writeFakeBinary(t, fakeBackend), logger.Logger{})
	dir := t.TempDir()

	plaintext := filepath.Join(dir, "notes.txt")
	ciphertext := filepath.Join(dir, "notes.txt.gpg")
	if err := os.WriteFile(plaintext, []byte("unchanged"), 0600); err != nil {
		t.Fatalf("Failed to write plaintext: %v", err)
	}

	if err := g.Encrypt(context.Background(), plaintext, ciphertext, "AAAA000011112222"); err != nil {
		t.Fatalf("First encrypt failed: %v", err)
	}
	if err := g.Encrypt(context.Background(), plaintext, ciphertext, "AAAA000011112222"); err != nil {
		t.Fatalf("Second encrypt failed: %v", err)
	}

	recovered := filepath.Join(dir, "recovered.txt")
	if _, err := g.Decrypt(context.Background(), ciphertext, recovered); err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}
	got, err := os.ReadFile(recovered)
	if err != nil {
		t.Fatalf("Failed to read recovered plaintext: %v", err)
	}
	if string(got) != "unchanged" {
		t.Errorf("Expected plaintext to survive double encryption, got: %q", got)
	}
}

func TestDecryptFailureCarriesDiagnostics(t *testing.T) {
	g := New(writeFakeBinary(t, failingBackend), logger.Logger{})
	dir := t.TempDir()

	_, err := g.Decrypt(context.Background(), filepath.Join(dir, "in.gpg"), filepath.Join(dir, "out"))
	if !errors.Is(err, shrouderrors.ErrDecryptionFailed) {
		t.Fatalf("Expected ErrDecryptionFailed, got: %v", err)
	}
	if !strings.Contains(err.Error(), "No secret key") {
		t.Errorf("Expected backend diagnostics in error, got: %v", err)
	}
}

func TestDecryptWithoutRecipientLine(t *testing.T) {
	g := New(writeFakeBinary(t, silentBackend), logger.Logger{})
	dir := t.TempDir()

	_, err := g.Decrypt(context.Background(), filepath.Join(dir, "in.gpg"), filepath.Join(dir, "out"))
	if !errors.Is(err, shrouderrors.ErrRecipientUnknown) {
		t.Fatalf("Expected ErrRecipientUnknown, got: %v", err)
	}
}

func TestEncryptFailureCarriesDiagnostics(t *testing.T) {
	g := New(writeFakeBinary(t, failingBackend), logger.Logger{})
	dir := t.TempDir()

	err := g.Encrypt(context.Background(), filepath.Join(dir, "in"), filepath.Join(dir, "out.gpg"), "AAAA000011112222")
	if !errors.Is(err, shrouderrors.ErrEncryptionFailed) {
		t.Fatalf("Expected ErrEncryptionFailed, got: %v", err)
	}
	if !strings.Contains(err.Error(), "No secret key") {
		t.Errorf("Expected backend diagnostics in error, got: %v", err)
	}
}

func TestMissingBinary(t *testing.T) {
	g := New(filepath.Join(t.TempDir(), "no-such-gpg"), logger.Logger{})
	dir := t.TempDir()

	if _, err := g.Decrypt(context.Background(), filepath.Join(dir, "in.gpg"), filepath.Join(dir, "out")); !errors.Is(err, shrouderrors.ErrDecryptionFailed) {
		t.Errorf("Expected ErrDecryptionFailed for missing binary, got: %v", err)
	}
	if err := g.Encrypt(context.Background(), filepath.Join(dir, "in"), filepath.Join(dir, "out.gpg"), "K"); !errors.Is(err, shrouderrors.ErrEncryptionFailed) {
		t.Errorf("Expected ErrEncryptionFailed for missing binary, got: %v", err)
	}
}
