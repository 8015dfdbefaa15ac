// SPDX-License-Identifier: MPL-2.0

package butler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"

	"github.com/charmbracelet/log"
)

// ExitCodeCommandNotFound is the shell-convention exit code for a program
// that could not be located.
const ExitCodeCommandNotFound = 127

// ErrSpawn reports that the resolved program existed but could not be
// started. Distinct from ErrCommandNotFound so callers can map each to its
// own exit code.
var ErrSpawn = errors.New("failed to spawn command")

type (
	// Command is one child invocation inside a composed environment.
	Command struct {
		Program string
		Args    []string
		Env     ComposedEnvironment
		// Dir is the child's working directory; empty inherits the parent's.
		Dir string

		// Stdio streams; nil fields inherit the parent's.
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}

	// SpawnError is the concrete error behind ErrSpawn.
	SpawnError struct {
		Program string
		Cause   error
	}
)

// Error implements the error interface.
func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to spawn %q: %v", e.Program, e.Cause)
}

// Unwrap returns ErrSpawn for errors.Is detection.
func (e *SpawnError) Unwrap() error { return ErrSpawn }

// Execute resolves cmd.Program on the composed search path, spawns it and
// waits. The child's exit code is returned verbatim; a non-zero child is not
// an error here. Errors are reserved for rb's own failures: lookup
// (ErrCommandNotFound, paired with code 127) and spawn (ErrSpawn, code 1).
// A child killed by a signal reports 128+signal.
func Execute(ctx context.Context, cmd Command) (int, error) {
	resolved, err := ResolveProgram(cmd.Program, cmd.Env)
	if err != nil {
		return ExitCodeCommandNotFound, err
	}

	child := exec.CommandContext(ctx, resolved, cmd.Args...)
	child.Env = cmd.Env.Environ()
	child.Dir = cmd.Dir
	child.Stdin, child.Stdout, child.Stderr = cmd.Stdin, cmd.Stdout, cmd.Stderr
	if child.Stdin == nil {
		child.Stdin = os.Stdin
	}
	if child.Stdout == nil {
		child.Stdout = os.Stdout
	}
	if child.Stderr == nil {
		child.Stderr = os.Stderr
	}

	log.Debug("spawning command", "program", resolved, "args", cmd.Args, "dir", cmd.Dir)

	if err := child.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitCodeOf(exitErr), nil
		}
		return 1, &SpawnError{Program: resolved, Cause: err}
	}
	return 0, nil
}

// exitCodeOf maps a finished child's wait status to an exit code. Signal
// deaths follow the 128+signal shell convention.
func exitCodeOf(exitErr *exec.ExitError) int {
	if code := exitErr.ExitCode(); code >= 0 {
		return code
	}
	if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal())
	}
	return 1
}
