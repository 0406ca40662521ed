package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probelab/evalmatrix/pkg/matrix"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err, "a missing default config file falls back to defaults")

	assert.NotEmpty(t, cfg.Agents)
	assert.NotEmpty(t, cfg.Providers)
	assert.Equal(t, 0, cfg.Concurrency, "default is unbounded")
	assert.GreaterOrEqual(t, cfg.PromptConcurrency, 1)
}

func TestLoadConfigExplicitMissingFileFails(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "evalmatrix.yml")
	content := []byte(`
agents: [react]
providers: [brave]
concurrency: 2
dataset: hotpot
`)
	require.NoError(t, os.WriteFile(path, content, 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"react"}, cfg.Agents)
	assert.Equal(t, []string{"brave"}, cfg.Providers)
	assert.Equal(t, 2, cfg.Concurrency)
	assert.Equal(t, "hotpot", cfg.Dataset)
	// Untouched fields keep their defaults.
	assert.Equal(t, DefaultConfig().ImagePrefix, cfg.ImagePrefix)
	assert.Equal(t, DefaultConfig().PromptConcurrency, cfg.PromptConcurrency)
}

func TestLoadConfigRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "evalmatrix.yml")
	require.NoError(t, os.WriteFile(path, []byte("agents: [unterminated"), 0644))

	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestMatrixCommandJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "evalmatrix.yml")
	content := []byte("agents: [react]\nproviders: [tavily]\n")
	require.NoError(t, os.WriteFile(path, content, 0644))

	cmd := NewMatrixCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--json", "--config", path})
	require.NoError(t, cmd.Execute())

	var specs []matrix.ScenarioSpec
	require.NoError(t, json.Unmarshal(out.Bytes(), &specs))
	require.Len(t, specs, 1)
	assert.Equal(t, "react/tavily", specs[0].Label)
	assert.Equal(t, "docker", specs[0].Command[0])
}

func TestMatrixCommandPlain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "evalmatrix.yml")
	content := []byte("agents: [a, b]\nproviders: [x]\n")
	require.NoError(t, os.WriteFile(path, content, 0644))

	cmd := NewMatrixCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--config", path})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "[1/2] a/x:")
	assert.Contains(t, out.String(), "[2/2] b/x:")
}

func TestShouldSkipDockerCheck(t *testing.T) {
	t.Setenv("EVALMATRIX_SKIP_DOCKER_CHECK", "true")
	assert.True(t, shouldSkipDockerCheck())

	t.Setenv("EVALMATRIX_SKIP_DOCKER_CHECK", "")
	assert.False(t, shouldSkipDockerCheck())
}
