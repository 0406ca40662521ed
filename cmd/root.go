// Package cmd implements the evalmatrix command-line interface.
package cmd

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootVerbose bool

// NewRootCmd assembles the evalmatrix command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "evalmatrix",
		Short: "Run an agent × search-provider evaluation matrix",
		Long: `evalmatrix runs a matrix of evaluation scenarios, one external container
process per (agent, search-provider) pairing, under a configurable
concurrency cap, and reports a consolidated pass/fail summary.

The process exit code is 0 exactly when every scenario exited 0.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				color.NoColor = true
			}
			logrus.SetLevel(logrus.WarnLevel)
			if rootVerbose {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(NewRunCmd())
	rootCmd.AddCommand(NewMatrixCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}
