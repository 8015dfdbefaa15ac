// SPDX-License-Identifier: MPL-2.0

package butler

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"rb-cli/internal/platform"

	"github.com/charmbracelet/log"
)

// ErrCommandNotFound reports that a program matched nothing on the composed
// search path. By shell convention this maps to exit code 127.
var ErrCommandNotFound = errors.New("command not found")

// CommandNotFoundError carries the program name and the path that was
// searched, so the message can show where lookup actually looked.
type CommandNotFoundError struct {
	Program    string
	SearchPath []string
}

// Error implements the error interface.
func (e *CommandNotFoundError) Error() string {
	return fmt.Sprintf("command %q not found on the composed search path (%d directories)",
		e.Program, len(e.SearchPath))
}

// Unwrap returns ErrCommandNotFound for errors.Is detection.
func (e *CommandNotFoundError) Unwrap() error { return ErrCommandNotFound }

// ResolveProgram locates program on the composed search path and returns its
// absolute path. A program containing a path separator bypasses the search
// and is checked directly. Earlier path entries win, so a bundler shim
// shadows a same-named global gem executable.
func ResolveProgram(program string, env ComposedEnvironment) (string, error) {
	if strings.ContainsRune(program, os.PathSeparator) || strings.ContainsRune(program, '/') {
		for _, candidate := range platform.ExecutableCandidates(program) {
			if platform.IsExecutableFile(candidate) {
				return candidate, nil
			}
		}
		return "", &CommandNotFoundError{Program: program, SearchPath: nil}
	}

	dirs := env.SearchPath()
	for _, dir := range dirs {
		for _, candidate := range platform.ExecutableCandidates(filepath.Join(dir, program)) {
			if platform.IsExecutableFile(candidate) {
				log.Debug("resolved program", "program", program, "path", candidate)
				return candidate, nil
			}
		}
	}
	return "", &CommandNotFoundError{Program: program, SearchPath: dirs}
}
