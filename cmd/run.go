package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	cmdexec "github.com/probelab/evalmatrix/pkg/exec"
	"github.com/probelab/evalmatrix/pkg/matrix"
	"github.com/probelab/evalmatrix/pkg/orchestration"
	"github.com/probelab/evalmatrix/pkg/pool"
)

var (
	runAgents            []string
	runProviders         []string
	runConcurrency       int
	runDataset           string
	runPromptConcurrency int
	runHeartbeatInterval time.Duration
	runConfigFile        string
)

// NewRunCmd builds the run command, the main entry point of the tool.
func NewRunCmd() *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the evaluation matrix",
		Long: `Run every (agent, provider) scenario in the matrix.

Each scenario invokes "docker run --rm" on the agent's container image with
SEARCH_PROVIDER, DATASET and PROMPT_CONCURRENCY exported to it. Scenario
output is streamed live, prefixed with the scenario label. The command exits
0 only if every scenario exited 0.`,
		Args: cobra.NoArgs,
		RunE: runMatrixRun,
	}

	runCmd.Flags().StringSliceVarP(&runAgents, "agents", "a", nil, "Agents to run (default from config)")
	runCmd.Flags().StringSliceVarP(&runProviders, "providers", "s", nil, "Search providers to pair with (default from config)")
	runCmd.Flags().IntVarP(&runConcurrency, "concurrency", "c", 0, "Max scenarios in flight, 0 = unbounded")
	runCmd.Flags().StringVarP(&runDataset, "dataset", "d", "", "Prompt dataset name (default from config)")
	runCmd.Flags().IntVarP(&runPromptConcurrency, "prompt-concurrency", "p", 0, "Prompt concurrency passed through to each scenario")
	runCmd.Flags().DurationVar(&runHeartbeatInterval, "heartbeat-interval", 0, "Progress heartbeat interval (default 30s)")
	runCmd.Flags().StringVar(&runConfigFile, "config", "", "Config file (default "+DefaultConfigFile+")")

	return runCmd
}

func runMatrixRun(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig(runConfigFile)
	if err != nil {
		return err
	}

	// Flags override file values only when actually set.
	if cmd.Flags().Changed("agents") {
		cfg.Agents = runAgents
	}
	if cmd.Flags().Changed("providers") {
		cfg.Providers = runProviders
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency = runConcurrency
	}
	if cmd.Flags().Changed("dataset") {
		cfg.Dataset = runDataset
	}
	if cmd.Flags().Changed("prompt-concurrency") {
		cfg.PromptConcurrency = runPromptConcurrency
	}

	heartbeat := runHeartbeatInterval
	if heartbeat == 0 && cfg.HeartbeatInterval != "" {
		heartbeat, err = time.ParseDuration(cfg.HeartbeatInterval)
		if err != nil {
			return fmt.Errorf("parse heartbeat_interval: %w", err)
		}
	}

	specs, err := matrix.Build(matrix.BuildConfig{
		Agents:            cfg.Agents,
		Providers:         cfg.Providers,
		ImagePrefix:       cfg.ImagePrefix,
		Dataset:           cfg.Dataset,
		PromptConcurrency: cfg.PromptConcurrency,
	})
	if err != nil {
		return fmt.Errorf("build matrix: %w", err)
	}

	executor := &cmdexec.RealCommandExecutor{}
	if !shouldSkipDockerCheck() {
		if _, err := executor.LookPath("docker"); err != nil {
			return fmt.Errorf("docker not found in PATH: %w", err)
		}
	}

	warnMissingCredentials(cfg, cfg.Providers)

	fmt.Printf("Running %s scenarios (%s agents × %s providers)\n",
		color.CyanString("%d", len(specs)),
		color.CyanString("%d", len(cfg.Agents)),
		color.CyanString("%d", len(cfg.Providers)))

	orch := orchestration.New(orchestration.Config{
		Concurrency:       pool.FromFlag(cfg.Concurrency),
		HeartbeatInterval: heartbeat,
		Executor:          executor,
	})

	summary, err := orch.Run(cmd.Context(), specs)
	if err != nil {
		return err
	}

	if summary.ExitCode != 0 {
		os.Exit(summary.ExitCode)
	}
	return nil
}

// shouldSkipDockerCheck returns true if the docker PATH check should be
// skipped, for tests and environments that stub the executor.
func shouldSkipDockerCheck() bool {
	return os.Getenv("EVALMATRIX_SKIP_DOCKER_CHECK") == "true"
}
