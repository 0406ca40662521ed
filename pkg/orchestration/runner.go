package orchestration

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	cmdexec "github.com/probelab/evalmatrix/pkg/exec"
	"github.com/probelab/evalmatrix/pkg/matrix"
)

// LaunchFailureExitCode is the sentinel recorded when the external process
// never produced a real exit status (e.g. the binary was missing).
const LaunchFailureExitCode = 1

// Runner executes one scenario as an external process. Run never returns an
// error: a scenario that exits non-zero is a normal outcome carried in the
// result, and a launch failure is folded into the result with the sentinel
// exit code and its detail logged.
type Runner struct {
	Executor cmdexec.CommandExecutor
	Total    int       // matrix size, for the [i/N] completion marker
	Out      io.Writer // defaults to os.Stdout
	ErrOut   io.Writer // defaults to os.Stderr
	Logger   *logrus.Entry
}

// Run launches the scenario command with the process environment augmented by
// spec.Env, streams the child's stdout and stderr live through label-prefixed
// writers, and blocks until the child exits. The single-line completion
// marker it prints is the only console signal other components may rely on
// for "this scenario is done".
func (r *Runner) Run(ctx context.Context, spec matrix.ScenarioSpec) matrix.ScenarioResult {
	out := r.Out
	if out == nil {
		out = os.Stdout
	}
	errOut := r.ErrOut
	if errOut == nil {
		errOut = os.Stderr
	}

	stdout := NewLabelWriter(out, spec.Label)
	stderr := NewLabelWriter(errOut, spec.Label)

	start := time.Now()
	code, err := r.Executor.Run(ctx, cmdexec.Command{
		Argv:   spec.Command,
		Env:    spec.Env,
		Stdout: stdout,
		Stderr: stderr,
	})
	duration := time.Since(start)

	stdout.Flush()
	stderr.Flush()

	if err != nil {
		r.logger().WithError(err).WithFields(logrus.Fields{
			"scenario": spec.Label,
			"command":  strings.Join(spec.Command, " "),
		}).Error("Failed to launch scenario process")
		code = LaunchFailureExitCode
	}

	result := matrix.ScenarioResult{ID: spec.ID, ExitCode: code, Duration: duration}

	glyph := color.GreenString("✓")
	if !result.Passed() {
		glyph = color.RedString("✗")
	}
	fmt.Fprintf(out, "[%d/%d] %s: %s exit=%d (%s)\n",
		spec.ID, r.Total, spec.Label, glyph, result.ExitCode,
		result.Duration.Round(time.Millisecond))

	return result
}

func (r *Runner) logger() *logrus.Entry {
	if r.Logger != nil {
		return r.Logger
	}
	return logrus.NewEntry(logrus.StandardLogger())
}
