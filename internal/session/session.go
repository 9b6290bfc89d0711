package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	shrouderrors "github.com/shroud-cli/shroud/internal/errors"
	logger "github.com/shroud-cli/shroud/internal/logging"
	"github.com/shroud-cli/shroud/internal/watch"
	"github.com/shroud-cli/shroud/internal/workspace"
)

// State tracks where a session is in its lifecycle.
type State int

const (
	StateInit State = iota
	StateDecrypted
	StateActive
	StateTerminating
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateDecrypted:
		return "decrypted"
	case StateActive:
		return "active"
	case StateTerminating:
		return "terminating"
	case StateDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// Config describes one editing session.
type Config struct {
	// EncryptedPath is the ciphertext file; it must exist at session start.
	EncryptedPath string

	// Command is the template to run, with Placeholder substituted by the
	// plaintext path.
	Command string

	// Placeholder defaults to %FILE.
	Placeholder string

	// WorkspaceDir is the base directory for the volatile workspace.
	// Defaults to the system temp dir; callers should pass a RAM-backed
	// location.
	WorkspaceDir string

	// Shell runs the command via `shell -c command`. Defaults to sh.
	Shell string

	// Cipher performs the actual decrypt and encrypt operations.
	Cipher Cipher

	// OnSaveFailure is consulted when the final re-encryption fails. It
	// receives the plaintext path and the failure, and returns true when
	// it is safe to destroy the workspace (the operator acknowledged, or
	// the plaintext was preserved elsewhere). When it returns false, or
	// when no hook is set, the workspace is left intact.
	OnSaveFailure func(plaintextPath string, saveErr error) bool

	Logger logger.Logger
}

// Session owns the full lifecycle of one supervised edit: decrypt, watch,
// run the child, and guarantee the plaintext is re-encrypted before the
// volatile workspace disappears. A Session is used for exactly one Run and
// never resumed.
type Session struct {
	cfg Config
	id  string
	log logger.Logger

	mu    sync.Mutex
	state State

	ws      *workspace.Workspace
	saver   *Saver
	watcher *watch.Watcher
	child   *Child

	cleanupOnce sync.Once
	saveFailed  bool
}

// New validates the session pre-flight. No resources are allocated: a
// pre-flight failure leaves nothing to clean up.
func New(cfg Config) (*Session, error) {
	if cfg.Command == "" {
		return nil, shrouderrors.ErrMissingCommand
	}

	abs, err := filepath.Abs(cfg.EncryptedPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", cfg.EncryptedPath, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, fmt.Errorf("%w: %s", shrouderrors.ErrSourceFileMissing, abs)
	}
	cfg.EncryptedPath = abs

	if cfg.Placeholder == "" {
		cfg.Placeholder = "%FILE"
	}
	if cfg.Shell == "" {
		cfg.Shell = "sh"
	}
	if cfg.WorkspaceDir == "" {
		cfg.WorkspaceDir = os.TempDir()
	}

	return &Session{
		cfg:   cfg,
		id:    uuid.New().String()[:8],
		log:   cfg.Logger,
		state: StateInit,
	}, nil
}

// State returns the session's current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) setState(next State) {
	s.mu.Lock()
	s.log.Debugf("Session %s: %s -> %s", s.id, s.state, next)
	s.state = next
	s.mu.Unlock()
}

// PlaintextPath returns the working copy's path once the session has
// decrypted, and "" before that.
func (s *Session) PlaintextPath() string {
	if s.ws == nil {
		return ""
	}
	return s.ws.PlaintextPath
}

// AutoSaves returns how many watcher-triggered re-encryptions succeeded.
func (s *Session) AutoSaves() int64 {
	if s.watcher == nil {
		return 0
	}
	return s.watcher.Saves()
}

// AutoSaveMisses returns how many watcher-triggered re-encryptions failed.
func (s *Session) AutoSaveMisses() int64 {
	if s.watcher == nil {
		return 0
	}
	return s.watcher.Misses()
}

// SaveFailed reports whether the final re-encryption failed.
func (s *Session) SaveFailed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveFailed
}

// Run drives the session to completion and returns the process exit code:
// the child's exit code when it exited, 0 for a clean childless teardown,
// and 1 otherwise. Cancelling ctx (the command layer wires SIGINT/SIGTERM
// to it) triggers the same terminating sequence as a normal child exit.
func (s *Session) Run(ctx context.Context) (int, error) {
	ws, err := workspace.New(s.cfg.EncryptedPath, s.cfg.WorkspaceDir)
	if err != nil {
		return 1, err
	}
	s.ws = ws

	s.log.Infof("Decrypting %s into %s", s.cfg.EncryptedPath, ws.PlaintextPath)
	recipient, err := s.cfg.Cipher.Decrypt(ctx, s.cfg.EncryptedPath, ws.PlaintextPath)
	if err != nil {
		// No plaintext was materialized; the empty workspace can go.
		if derr := ws.Destroy(); derr != nil {
			s.log.Errorf("Failed to remove workspace: %v", derr)
		}
		return 1, err
	}
	s.setState(StateDecrypted)
	s.log.Infof("Ciphertext is encrypted to key %s", recipient)

	s.saver = NewSaver(s.cfg.Cipher, ws.PlaintextPath, s.cfg.EncryptedPath, recipient)

	// The watcher's saves run on its own goroutine with a background
	// context: a termination signal must not abort an in-flight encrypt.
	watcher, err := watch.New(context.Background(), ws.PlaintextPath, s.saver.Save, s.log)
	if err != nil {
		s.terminate()
		return 1, err
	}
	s.watcher = watcher

	command := s.renderCommand()
	s.log.Infof("Running command: %s", command)
	child, err := StartChild(s.cfg.Shell, command)
	if err != nil {
		s.terminate()
		return 1, err
	}
	s.child = child
	s.setState(StateActive)

	select {
	case <-child.Done():
		s.log.Debugf("Child exited with code %d", child.Wait())
	case <-ctx.Done():
		s.log.Debugf("Termination requested while child running")
	}

	s.terminate()
	return s.exitCode(), nil
}

func (s *Session) renderCommand() string {
	return strings.ReplaceAll(s.cfg.Command, s.cfg.Placeholder, s.ws.PlaintextPath)
}

// terminate runs the teardown sequence at most once per session: stop the
// child, final encrypt, stop the watcher, destroy the workspace. Each step
// is best-effort; the final encrypt alone gates workspace destruction.
func (s *Session) terminate() {
	s.cleanupOnce.Do(func() {
		s.setState(StateTerminating)

		if s.child != nil && s.child.Running() {
			s.log.Infof("Requesting child termination")
			s.child.Terminate()
		}

		// The final save uses a fresh context: it must run even when the
		// session's context was cancelled by a signal.
		var saveErr error
		if s.saver != nil {
			s.log.Infof("Performing final re-encryption")
			saveErr = s.saver.SaveFinal(context.Background())
		}

		if saveErr != nil {
			s.mu.Lock()
			s.saveFailed = true
			s.mu.Unlock()
			s.log.Errorf("Final re-encryption failed: %v", saveErr)

			proceed := false
			if s.cfg.OnSaveFailure != nil {
				proceed = s.cfg.OnSaveFailure(s.ws.PlaintextPath, saveErr)
			}
			if !proceed {
				// Destroying the workspace now would lose the user's
				// edits. Leave the plaintext in place and say so.
				s.log.Errorf("Plaintext left at %s; re-encrypt it manually and remove it", s.ws.PlaintextPath)
				if s.watcher != nil {
					s.watcher.Stop()
				}
				return
			}
		}

		if s.watcher != nil {
			s.watcher.Stop()
		}
		if err := s.ws.Destroy(); err != nil {
			s.log.Errorf("Failed to destroy workspace: %v", err)
			return
		}
		s.setState(StateDestroyed)
	})
}

// exitCode mirrors the child's exit status. Cleanup outcomes are reported
// through diagnostics, never through the exit code.
func (s *Session) exitCode() int {
	if s.child == nil {
		return 0
	}
	if s.child.Running() {
		// A signal ended the session while the child was still alive.
		return 1
	}
	if code := s.child.Wait(); code >= 0 {
		return code
	}
	return 1
}
