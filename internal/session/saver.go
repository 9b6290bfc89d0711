package session

import (
	"context"
	"sync"
)

// Cipher is the capability boundary to the encryption backend. Decrypt
// returns the recipient identity the ciphertext is addressed to; Encrypt
// re-targets that same identity.
type Cipher interface {
	Decrypt(ctx context.Context, encryptedPath, plaintextPath string) (recipient string, err error)
	Encrypt(ctx context.Context, plaintextPath, encryptedPath, recipient string) error
}

// Saver is the encryption gate: every re-encryption of the working copy,
// whether triggered by the watcher or by session teardown, goes through one
// Saver, whose mutex guarantees that no two encrypt operations ever overlap.
//
// The gate does not queue or coalesce. A caller blocked on the mutex waits
// for the in-flight encrypt to finish and then runs its own.
type Saver struct {
	cipher        Cipher
	plaintextPath string
	encryptedPath string
	recipient     string

	mu     sync.Mutex
	sealed bool
}

// NewSaver builds the gate for one session. The recipient identity is the
// one discovered at decrypt time and never changes afterward.
func NewSaver(cipher Cipher, plaintextPath, encryptedPath, recipient string) *Saver {
	return &Saver{
		cipher:        cipher,
		plaintextPath: plaintextPath,
		encryptedPath: encryptedPath,
		recipient:     recipient,
	}
}

// Save re-encrypts the working copy. It reports whether an encrypt actually
// ran: once the final save has begun the Saver is sealed and auto-saves
// become no-ops, so no fresh encrypt can start after the final one.
func (s *Saver) Save(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sealed {
		return false, nil
	}
	return true, s.cipher.Encrypt(ctx, s.plaintextPath, s.encryptedPath, s.recipient)
}

// SaveFinal performs the last encrypt of the session and seals the gate.
// An auto-save already holding the mutex finishes honestly first; anything
// arriving later sees the seal and does nothing, so the final save is the
// last encrypt attempted.
func (s *Saver) SaveFinal(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sealed = true
	return s.cipher.Encrypt(ctx, s.plaintextPath, s.encryptedPath, s.recipient)
}

// Recipient returns the identity every save targets.
func (s *Saver) Recipient() string { return s.recipient }
