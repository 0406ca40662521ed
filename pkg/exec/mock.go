package exec

import (
	"context"
	"strings"
	"sync"
)

// MockCommandExecutor is a mock implementation of CommandExecutor for testing.
// It records all commands that would be executed without actually running
// them. Scenarios run on concurrent goroutines, so the record is mutex-guarded.
type MockCommandExecutor struct {
	mu sync.Mutex

	// Commands records all commands that were executed, space-joined.
	Commands []string

	// LookPathFunc allows custom behavior for LookPath in tests.
	LookPathFunc func(file string) (string, error)

	// RunFunc allows custom behavior for Run in tests. When nil, Run
	// reports exit code 0.
	RunFunc func(ctx context.Context, cmd Command) (int, error)
}

// LookPath implements the CommandExecutor interface for testing.
func (m *MockCommandExecutor) LookPath(file string) (string, error) {
	if m.LookPathFunc != nil {
		return m.LookPathFunc(file)
	}
	// By default, assume commands exist
	return "/path/to/" + file, nil
}

// Run implements the CommandExecutor interface for testing.
// It records the command that would be executed.
func (m *MockCommandExecutor) Run(ctx context.Context, cmd Command) (int, error) {
	m.mu.Lock()
	m.Commands = append(m.Commands, strings.Join(cmd.Argv, " "))
	m.mu.Unlock()

	if m.RunFunc != nil {
		return m.RunFunc(ctx, cmd)
	}
	return 0, nil
}

// Recorded returns a snapshot of the executed commands.
func (m *MockCommandExecutor) Recorded() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.Commands))
	copy(out, m.Commands)
	return out
}
