package commands

import (
	"github.com/spf13/cobra"
)

func newFromParamsCmd() *cobra.Command {
	var precision string

	c := &cobra.Command{
		Use:     "from_params PARAMETERS",
		Aliases: []string{"from-params"},
		Short:   "Estimate GPU memory for a raw parameter count (e.g. 175B)",
		Args:    requireExactArgs(1, "from_params", "PARAMETERS"),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := newEstimator().FromParams(args[0], precision)
			if err != nil {
				return err
			}
			cmd.Println(result)
			return nil
		},
	}

	c.Flags().StringVarP(&precision, "precision", "p", "all", precisionFlagUsage)

	return c
}
