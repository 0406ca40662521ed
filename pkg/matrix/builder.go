package matrix

import (
	"fmt"
	"strconv"
)

// Env var names the scenario container reads. The runner exports them on the
// child process and the docker invocation forwards them with bare -e flags.
const (
	EnvSearchProvider    = "SEARCH_PROVIDER"
	EnvDataset           = "DATASET"
	EnvPromptConcurrency = "PROMPT_CONCURRENCY"
)

// BuildConfig describes the matrix to generate. The container image for each
// agent is ImagePrefix + agent name.
type BuildConfig struct {
	Agents            []string
	Providers         []string
	ImagePrefix       string
	Dataset           string
	PromptConcurrency int
}

// Build crosses agents and providers into the ordered run matrix. Agents form
// the outer loop, so the matrix order (and therefore the report order) is
// stable for a given config. Configuration problems are rejected here, before
// any scenario launches.
func Build(cfg BuildConfig) ([]ScenarioSpec, error) {
	if len(cfg.Agents) == 0 {
		return nil, fmt.Errorf("no agents to run")
	}
	if len(cfg.Providers) == 0 {
		return nil, fmt.Errorf("no search providers to run")
	}
	if cfg.Dataset == "" {
		return nil, fmt.Errorf("no dataset configured")
	}
	if cfg.PromptConcurrency < 1 {
		return nil, fmt.Errorf("prompt concurrency must be at least 1, got %d", cfg.PromptConcurrency)
	}

	specs := make([]ScenarioSpec, 0, len(cfg.Agents)*len(cfg.Providers))
	for _, agent := range cfg.Agents {
		for _, provider := range cfg.Providers {
			specs = append(specs, ScenarioSpec{
				ID:    len(specs) + 1,
				Label: agent + "/" + provider,
				Command: []string{
					"docker", "run", "--rm",
					"-e", EnvSearchProvider,
					"-e", EnvDataset,
					"-e", EnvPromptConcurrency,
					cfg.ImagePrefix + agent,
				},
				Env: map[string]string{
					EnvSearchProvider:    provider,
					EnvDataset:           cfg.Dataset,
					EnvPromptConcurrency: strconv.Itoa(cfg.PromptConcurrency),
				},
			})
		}
	}
	return specs, nil
}
