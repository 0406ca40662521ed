package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/probelab/evalmatrix/pkg/matrix"
)

var (
	matrixJSON       bool
	matrixConfigFile string
)

// NewMatrixCmd builds the matrix command, a dry view of what run would do.
func NewMatrixCmd() *cobra.Command {
	matrixCmd := &cobra.Command{
		Use:   "matrix",
		Short: "Print the scenario matrix without running it",
		Args:  cobra.NoArgs,
		RunE:  runMatrixShow,
	}

	matrixCmd.Flags().BoolVar(&matrixJSON, "json", false, "Output the matrix as JSON")
	matrixCmd.Flags().StringVar(&matrixConfigFile, "config", "", "Config file (default "+DefaultConfigFile+")")

	return matrixCmd
}

func runMatrixShow(cmd *cobra.Command, args []string) error {
	cfg, err := LoadConfig(matrixConfigFile)
	if err != nil {
		return err
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

	if matrixJSON {
		data, err := json.MarshalIndent(specs, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal matrix: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	for _, spec := range specs {
		fmt.Fprintf(cmd.OutOrStdout(), "[%d/%d] %s: %s\n",
			spec.ID, len(specs), spec.Label, strings.Join(spec.Command, " "))
	}
	return nil
}
