package orchestration

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/probelab/evalmatrix/pkg/matrix"
)

// Summary is the consolidated outcome of a matrix run. ExitCode is the
// process-level exit code: 0 exactly when every scenario passed, else 1.
type Summary struct {
	Failed   []matrix.ScenarioSpec
	ExitCode int
}

// Summarize prints the per-scenario pass/fail report in matrix order followed
// by the aggregate counts, and returns the failed specs plus the exit code.
// An empty matrix yields exit code 0. Summarize never retries anything;
// retries are a concern for whoever builds the matrix.
func Summarize(out io.Writer, specs []matrix.ScenarioSpec, results []matrix.ScenarioResult, start time.Time) Summary {
	fmt.Fprintf(out, "\nResults:\n")

	var failed []matrix.ScenarioSpec
	for i, spec := range specs {
		result := results[i]
		if result.Passed() {
			fmt.Fprintf(out, "  %s %s (%s)\n",
				color.GreenString("✓"), spec.Label,
				result.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(out, "  %s %s exit=%d (%s)\n",
				color.RedString("✗"), spec.Label, result.ExitCode,
				result.Duration.Round(time.Millisecond))
			failed = append(failed, spec)
		}
	}

	fmt.Fprintf(out, "\n%d scenarios: %d passed, %d failed (%s)\n",
		len(specs), len(specs)-len(failed), len(failed),
		time.Since(start).Round(time.Second))

	exitCode := 0
	if len(failed) > 0 {
		exitCode = 1
	}
	return Summary{Failed: failed, ExitCode: exitCode}
}
