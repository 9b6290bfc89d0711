package errors

import "errors"

// Pre-flight errors abort before any resource is allocated.
var (
	// ErrSourceFileMissing indicates the encrypted file does not exist.
	ErrSourceFileMissing = errors.New("encrypted file does not exist")

	// ErrMissingCommand indicates no command template was supplied.
	ErrMissingCommand = errors.New("no command to run was provided")

	// ErrMissingRecipient indicates no recipient key ID was supplied.
	ErrMissingRecipient = errors.New("no recipient key ID was provided")
)

// Backend errors indicate failures of the encryption backend invocation.
var (
	// ErrDecryptionFailed indicates the backend reported a decryption failure.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrEncryptionFailed indicates the backend reported an encryption failure.
	ErrEncryptionFailed = errors.New("encryption failed")

	// ErrRecipientUnknown indicates decryption succeeded but the recipient key
	// ID could not be determined, so later re-encryption cannot be targeted.
	ErrRecipientUnknown = errors.New("could not determine recipient key ID from backend status output")
)

// Session errors indicate failures during an active editing session.
var (
	// ErrChildLaunchFailed indicates the user's command could not be started.
	ErrChildLaunchFailed = errors.New("failed to launch command")

	// ErrWorkspaceDestroyed indicates an operation was attempted on a
	// workspace that has already been torn down.
	ErrWorkspaceDestroyed = errors.New("workspace has already been destroyed")
)
