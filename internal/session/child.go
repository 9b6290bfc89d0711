package session

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"

	shrouderrors "github.com/shroud-cli/shroud/internal/errors"
)

// Child is the user's external command, run with the controlling terminal's
// standard streams so the user can interact with an editor directly.
type Child struct {
	cmd  *exec.Cmd
	done chan struct{}
}

// StartChild launches the command via the shell. The returned Child reaps
// the process on a background goroutine; use Done, Wait, or Running to
// observe its lifetime.
func StartChild(shell, command string) (*Child, error) {
	cmd := exec.Command(shell, "-c", command)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: %v", shrouderrors.ErrChildLaunchFailed, err)
	}

	c := &Child{cmd: cmd, done: make(chan struct{})}
	go func() {
		// Wait's error is reflected in ProcessState; nothing to do with
		// it here beyond reaping.
		_ = cmd.Wait()
		close(c.done)
	}()
	return c, nil
}

// Done is closed when the child has exited and been reaped.
func (c *Child) Done() <-chan struct{} { return c.done }

// Running reports whether the child is still alive.
func (c *Child) Running() bool {
	select {
	case <-c.done:
		return false
	default:
		return true
	}
}

// Terminate requests the child stop, best-effort and without blocking. The
// point is solely to stop further writes to the working copy; an
// unresponsive child never stalls teardown.
func (c *Child) Terminate() {
	if !c.Running() {
		return
	}
	_ = c.cmd.Process.Signal(syscall.SIGTERM)
}

// Wait blocks until the child exits and returns its exit code. The code is
// negative when the child was killed by a signal before exiting normally.
func (c *Child) Wait() int {
	<-c.done
	return c.cmd.ProcessState.ExitCode()
}
