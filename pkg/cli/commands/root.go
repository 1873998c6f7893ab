// Package commands implements the cfit command line interface.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/carbonfit/cfit/pkg/logging"
)

// NewRootCmd creates the top-level cfit command.
func NewRootCmd() *cobra.Command {
	var logLevel string

	c := &cobra.Command{
		Use:          "cfit",
		Short:        "Estimate the GPU memory required to load a model",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logging.SetLevel(logLevel)
		},
	}

	c.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	c.AddCommand(
		newFromHFCmd(),
		newFromParamsCmd(),
		newInspectCmd(),
	)

	return c
}
