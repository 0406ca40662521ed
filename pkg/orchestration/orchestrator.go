// Package orchestration runs an evaluation matrix: each scenario is one
// external container process, executed under a concurrency cap, with live
// progress reporting and a consolidated pass/fail summary.
package orchestration

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	cmdexec "github.com/probelab/evalmatrix/pkg/exec"
	"github.com/probelab/evalmatrix/pkg/matrix"
	"github.com/probelab/evalmatrix/pkg/pool"
)

// Config holds settings for a matrix run.
type Config struct {
	Concurrency       pool.Limit
	HeartbeatInterval time.Duration           // 0 means DefaultHeartbeatInterval
	Executor          cmdexec.CommandExecutor // nil means RealCommandExecutor
	Out               io.Writer               // nil means os.Stdout
	ErrOut            io.Writer               // nil means os.Stderr
}

// Orchestrator drives a batch: it hands the scenarios to the pool, keeps the
// heartbeat informed through the completion set, and aggregates the results.
type Orchestrator struct {
	config Config
	logger *logrus.Entry
}

// New creates an orchestrator. Each orchestrator carries a short run id that
// tags every log entry of the batch.
func New(config Config) *Orchestrator {
	if config.Executor == nil {
		config.Executor = &cmdexec.RealCommandExecutor{}
	}
	if config.Out == nil {
		config.Out = os.Stdout
	}
	if config.ErrOut == nil {
		config.ErrOut = os.Stderr
	}
	return &Orchestrator{
		config: config,
		logger: logrus.WithField("run_id", "run-"+uuid.New().String()[:8]),
	}
}

// Run executes every scenario in the matrix and returns the summary. A
// scenario failure is data, not an error: all scenarios run to completion
// regardless of failures, and len(results) always equals len(specs). The
// returned error is reserved for a malformed matrix, which is rejected
// before any scenario launches.
func (o *Orchestrator) Run(ctx context.Context, specs []matrix.ScenarioSpec) (Summary, error) {
	if err := matrix.Validate(specs); err != nil {
		return Summary{}, fmt.Errorf("validate matrix: %w", err)
	}

	start := time.Now()
	completed := NewCompletionSet()
	runner := &Runner{
		Executor: o.config.Executor,
		Total:    len(specs),
		Out:      o.config.Out,
		ErrOut:   o.config.ErrOut,
		Logger:   o.logger,
	}

	tasks := make([]pool.Task[matrix.ScenarioResult], len(specs))
	for i, spec := range specs {
		tasks[i] = func(ctx context.Context) (matrix.ScenarioResult, error) {
			result := runner.Run(ctx, spec)
			completed.Mark(spec.ID)
			return result, nil
		}
	}

	o.logger.WithFields(logrus.Fields{
		"scenarios":   len(specs),
		"concurrency": o.config.Concurrency.String(),
	}).Info("Starting evaluation matrix")

	hb := StartHeartbeat(o.config.Out, completed, len(specs),
		o.config.Concurrency, o.config.HeartbeatInterval, start)
	outcomes := pool.Run(ctx, tasks, o.config.Concurrency)
	hb.Stop()

	results := make([]matrix.ScenarioResult, len(specs))
	for i, outcome := range outcomes {
		if outcome.Err != nil {
			// The task funcs above never return an error, so this is a
			// recovered defect inside the pool. Record a failure at the
			// index rather than aborting the batch.
			o.logger.WithError(outcome.Err).WithField("scenario", specs[i].Label).
				Error("Scenario task failed unexpectedly")
			results[i] = matrix.ScenarioResult{ID: specs[i].ID, ExitCode: LaunchFailureExitCode}
			continue
		}
		results[i] = outcome.Value
	}

	summary := Summarize(o.config.Out, specs, results, start)

	o.logger.WithFields(logrus.Fields{
		"scenarios":   len(specs),
		"failed":      len(summary.Failed),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("Evaluation matrix complete")

	return summary, nil
}
