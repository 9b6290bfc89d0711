// Package session supervises one encrypted scratch session: decrypt a
// ciphertext into a volatile workspace, let an external command edit the
// working copy, re-encrypt it on every change, and guarantee the plaintext
// never outlives the session.
//
// # Lifecycle
//
// A Session moves through init → decrypted → active → terminating →
// destroyed, exactly once. The terminating sequence is idempotent (guarded
// by a sync.Once) so a termination signal and a normal child exit can never
// both run cleanup.
//
// # The encryption gate
//
// All re-encryption goes through a Saver, whose mutex serializes encrypt
// operations between the watcher's goroutine and the teardown path. The
// final save seals the gate: auto-saves already queued finish honestly, but
// no fresh encrypt ever starts after the final one begins.
//
// # The safety invariant
//
// The workspace is destroyed only after a successful final re-encryption,
// or after the OnSaveFailure hook confirms the plaintext has been preserved
// some other way (operator acknowledgement or a labeled recovery copy).
// With no hook, the workspace is left intact and its path reported — losing
// the user's edits silently is never an option.
package session
