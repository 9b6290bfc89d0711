// Package gpg wraps the GnuPG command-line backend behind shroud's cipher
// boundary.
//
// Decryption runs with --status-fd so the machine-readable status stream can
// be captured alongside diagnostics; the recipient key ID is extracted from
// the ENC_TO status line and reused for every later re-encryption, so the
// file stays openable by the same party without asking the user.
//
// Status-line parsing lives in status.go: it is the one place that knows the
// backend's output format, so a format change is a localized update.
//
// All backend failures carry GPG's diagnostic text verbatim; nothing is
// swallowed.
package gpg
