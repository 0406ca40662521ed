package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// Set at build time via -ldflags.
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// NewVersionCmd builds the version command.
func NewVersionCmd() *cobra.Command {
	var jsonOutput bool

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version information for this binary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if jsonOutput {
				info := map[string]string{
					"version":    Version,
					"commit":     Commit,
					"build_date": BuildDate,
				}
				data, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal version info: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "evalmatrix %s (commit %s, built %s)\n", Version, Commit, BuildDate)
			return nil
		},
	}

	versionCmd.Flags().BoolVar(&jsonOutput, "json", false, "Output version information in JSON format")

	return versionCmd
}
