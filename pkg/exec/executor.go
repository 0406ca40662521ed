package exec

import (
	"context"
	"io"
)

// Command describes one external invocation. Argv[0] is the binary name,
// resolved via PATH. Env entries are appended to the parent environment.
type Command struct {
	Argv   []string
	Env    map[string]string
	Stdout io.Writer
	Stderr io.Writer
}

// CommandExecutor defines an interface for running external commands.
// This abstraction allows for easier testing by providing a mockable interface.
type CommandExecutor interface {
	// LookPath searches for an executable named file in the directories
	// named by the PATH environment variable.
	LookPath(file string) (string, error)

	// Run starts the command, streams its output to the writers, and blocks
	// until the child exits. A non-zero child exit is not an error: it is
	// returned as the exit code with a nil error. The error is non-nil only
	// when the process could not be started at all.
	Run(ctx context.Context, cmd Command) (exitCode int, err error)
}
