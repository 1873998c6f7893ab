package commands

import (
	"github.com/spf13/cobra"
)

func newFromHFCmd() *cobra.Command {
	var precision string

	c := &cobra.Command{
		Use:     "from_hf MODEL",
		Aliases: []string{"from-hf"},
		Short:   "Estimate GPU memory for a Hugging Face model",
		Args:    requireExactArgs(1, "from_hf", "MODEL"),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := newEstimator().FromHF(cmd.Context(), args[0], precision)
			if err != nil {
				return handleLookupError(err, args[0])
			}
			cmd.Println(result)
			return nil
		},
	}

	c.Flags().StringVarP(&precision, "precision", "p", "auto", precisionFlagUsage)

	return c
}
