// Package matrix defines the evaluation run matrix: the ordered set of
// agent × search-provider scenarios a batch executes.
package matrix

import (
	"fmt"
	"time"
)

// ScenarioSpec describes one unit of matrix work: a single external-process
// invocation tied to one (agent, provider) pairing. Immutable once built.
type ScenarioSpec struct {
	ID      int               `json:"id"`    // 1-based position in the matrix
	Label   string            `json:"label"` // human-readable, e.g. "react/tavily"
	Command []string          `json:"command"`
	Env     map[string]string `json:"env"`
}

// ScenarioResult records the outcome of one scenario. Exit code 0 means the
// scenario passed; anything else is a failure, including the sentinel used
// when the process never launched.
type ScenarioResult struct {
	ID       int
	ExitCode int
	Duration time.Duration
}

// Passed reports whether the scenario exited cleanly.
func (r ScenarioResult) Passed() bool {
	return r.ExitCode == 0
}

// Validate rejects a malformed matrix before anything is launched. An empty
// matrix is valid (the batch vacuously succeeds).
func Validate(specs []ScenarioSpec) error {
	for i, s := range specs {
		if len(s.Command) == 0 {
			return fmt.Errorf("scenario %d (%s) has no command", i+1, s.Label)
		}
		if s.ID != i+1 {
			return fmt.Errorf("scenario %q has id %d, want %d", s.Label, s.ID, i+1)
		}
	}
	return nil
}
