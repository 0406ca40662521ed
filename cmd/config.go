package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

//go:generate sh -c "cd .. && go run ./tools/schema-generator/"

// DefaultConfigFile is the config file looked up in the working directory
// when --config is not given.
const DefaultConfigFile = "evalmatrix.yml"

// EvalConfig defines the structure of evalmatrix.yml. Flags override any
// value set here.
type EvalConfig struct {
	// ImagePrefix is prepended to the agent name to form the container image.
	ImagePrefix string `yaml:"image_prefix"`
	// Dataset names the prompt dataset the scenario containers evaluate.
	Dataset string `yaml:"dataset"`
	// Agents to run. Each agent maps to one container image.
	Agents []string `yaml:"agents"`
	// Providers are the search providers each agent is paired with.
	Providers []string `yaml:"providers"`
	// Concurrency caps scenarios in flight; 0 means unbounded.
	Concurrency int `yaml:"concurrency"`
	// PromptConcurrency is passed through to each scenario container.
	PromptConcurrency int `yaml:"prompt_concurrency"`
	// HeartbeatInterval is a Go duration string, e.g. "30s".
	HeartbeatInterval string `yaml:"heartbeat_interval"`
	// ProviderCredentials maps a provider to the env vars it needs. Missing
	// vars are warned about, not fatal: a provider may run credential-free.
	ProviderCredentials map[string][]string `yaml:"provider_credentials"`
}

// DefaultConfig returns the built-in defaults used when no config file is
// present.
func DefaultConfig() *EvalConfig {
	return &EvalConfig{
		ImagePrefix:       "deep-research-",
		Dataset:           "default",
		Agents:            []string{"react", "plan-and-execute"},
		Providers:         []string{"tavily", "serper", "searxng"},
		Concurrency:       0,
		PromptConcurrency: 4,
		ProviderCredentials: map[string][]string{
			"tavily": {"TAVILY_API_KEY"},
			"serper": {"SERPER_API_KEY"},
			"brave":  {"BRAVE_API_KEY"},
		},
	}
}

// LoadConfig reads path into the defaults. A missing default config file is
// fine; a missing explicit --config path is an error.
func LoadConfig(path string) (*EvalConfig, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// warnMissingCredentials logs a warning for every provider whose required env
// vars are not set. The run proceeds; the scenario itself decides whether it
// can work without them.
func warnMissingCredentials(cfg *EvalConfig, providers []string) {
	for _, provider := range providers {
		for _, envVar := range cfg.ProviderCredentials[provider] {
			if os.Getenv(envVar) == "" {
				logrus.WithFields(logrus.Fields{
					"provider": provider,
					"env_var":  envVar,
				}).Warn("Credential env var not set")
			}
		}
	}
}
