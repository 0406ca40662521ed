package exec

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// RealCommandExecutor implements CommandExecutor using the actual os/exec
// package. This is the production implementation that executes real system
// commands.
type RealCommandExecutor struct{}

// LookPath searches for an executable named file in the directories
// named by the PATH environment variable.
func (e *RealCommandExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// Run executes the command, streaming stdout and stderr to the configured
// writers, and returns the child's exit code. A *exec.ExitError is folded
// into the exit code; any other failure (binary missing, context cancelled
// before start) is returned as an error.
func (e *RealCommandExecutor) Run(ctx context.Context, c Command) (int, error) {
	if len(c.Argv) == 0 {
		return 0, fmt.Errorf("empty argv")
	}

	cmd := exec.CommandContext(ctx, c.Argv[0], c.Argv[1:]...)
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr

	cmd.Env = os.Environ()
	for k, v := range c.Env {
		cmd.Env = append(cmd.Env, k+"="+v)
	}

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return 0, fmt.Errorf("starting %s: %w", c.Argv[0], err)
	}
	return 0, nil
}
