package orchestration

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cmdexec "github.com/probelab/evalmatrix/pkg/exec"
	"github.com/probelab/evalmatrix/pkg/matrix"
)

func quietLogger() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}

func testSpec(id int, label string) matrix.ScenarioSpec {
	return matrix.ScenarioSpec{
		ID:      id,
		Label:   label,
		Command: []string{"docker", "run", "--rm", "img-" + label},
		Env:     map[string]string{"SEARCH_PROVIDER": "tavily"},
	}
}

func TestRunnerStreamsLabeledOutput(t *testing.T) {
	var out bytes.Buffer
	mock := &cmdexec.MockCommandExecutor{
		RunFunc: func(ctx context.Context, cmd cmdexec.Command) (int, error) {
			fmt.Fprintln(cmd.Stdout, "searching...")
			fmt.Fprint(cmd.Stdout, "done, no newline")
			return 0, nil
		},
	}
	r := &Runner{Executor: mock, Total: 3, Out: &out, ErrOut: io.Discard, Logger: quietLogger()}

	result := r.Run(context.Background(), testSpec(2, "react/tavily"))

	assert.True(t, result.Passed())
	assert.Equal(t, 2, result.ID)
	assert.Contains(t, out.String(), "[react/tavily] searching...\n")
	// The trailing partial line is flushed before the completion marker.
	assert.Contains(t, out.String(), "[react/tavily] done, no newline\n")
	assert.Contains(t, out.String(), "[2/3] react/tavily:")
	assert.Contains(t, out.String(), "exit=0")
}

func TestRunnerRecordsNonZeroExit(t *testing.T) {
	var out bytes.Buffer
	mock := &cmdexec.MockCommandExecutor{
		RunFunc: func(ctx context.Context, cmd cmdexec.Command) (int, error) {
			return 2, nil
		},
	}
	r := &Runner{Executor: mock, Total: 1, Out: &out, ErrOut: io.Discard, Logger: quietLogger()}

	result := r.Run(context.Background(), testSpec(1, "react/tavily"))

	assert.False(t, result.Passed())
	assert.Equal(t, 2, result.ExitCode)
	assert.Contains(t, out.String(), "[1/1] react/tavily:")
	assert.Contains(t, out.String(), "exit=2")
}

func TestRunnerFoldsLaunchFailureIntoResult(t *testing.T) {
	var out bytes.Buffer
	mock := &cmdexec.MockCommandExecutor{
		RunFunc: func(ctx context.Context, cmd cmdexec.Command) (int, error) {
			return 0, errors.New("exec: docker: executable file not found")
		},
	}
	r := &Runner{Executor: mock, Total: 1, Out: &out, ErrOut: io.Discard, Logger: quietLogger()}

	result := r.Run(context.Background(), testSpec(1, "react/tavily"))

	assert.Equal(t, LaunchFailureExitCode, result.ExitCode)
	assert.False(t, result.Passed())
	assert.Contains(t, out.String(), "exit=1", "launch failure still prints a completion marker")
}

func TestRunnerPassesEnvThrough(t *testing.T) {
	var got map[string]string
	mock := &cmdexec.MockCommandExecutor{
		RunFunc: func(ctx context.Context, cmd cmdexec.Command) (int, error) {
			got = cmd.Env
			return 0, nil
		},
	}
	r := &Runner{Executor: mock, Total: 1, Out: io.Discard, ErrOut: io.Discard, Logger: quietLogger()}

	spec := testSpec(1, "react/tavily")
	r.Run(context.Background(), spec)

	assert.Equal(t, spec.Env, got)
	assert.Equal(t, []string{"docker run --rm img-react/tavily"}, mock.Recorded())
}

func TestRunnerMeasuresDuration(t *testing.T) {
	mock := &cmdexec.MockCommandExecutor{
		RunFunc: func(ctx context.Context, cmd cmdexec.Command) (int, error) {
			time.Sleep(10 * time.Millisecond)
			return 0, nil
		},
	}
	r := &Runner{Executor: mock, Total: 1, Out: io.Discard, ErrOut: io.Discard, Logger: quietLogger()}

	result := r.Run(context.Background(), testSpec(1, "a/b"))

	require.GreaterOrEqual(t, result.Duration, 10*time.Millisecond)
}
