package commands

import (
	"github.com/docker/go-units"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/carbonfit/cfit/pkg/hub"
	"github.com/carbonfit/cfit/pkg/params"
)

func newInspectCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "inspect MODEL",
		Short: "Show the hub metadata estimation is based on",
		Args:  requireExactArgs(1, "inspect", "MODEL"),
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, err := newHubClient().Fetch(cmd.Context(), args[0])
			if err != nil {
				return handleLookupError(err, args[0])
			}
			printMetadata(cmd, meta)
			return nil
		},
	}
	return c
}

func printMetadata(cmd *cobra.Command, meta *hub.ModelMetadata) {
	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"WEIGHT FILE", "SIZE"})
	table.SetBorder(false)
	table.SetColumnSeparator("")
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, file := range meta.WeightFiles {
		table.Append([]string{file.Path, units.HumanSize(float64(file.Size))})
	}
	table.Render()

	cmd.Printf("\nTotal weight size: %s\n", units.HumanSize(float64(meta.WeightBytes)))
	if meta.ParamCount > 0 {
		cmd.Printf("Declared parameters: %s\n", params.Format(meta.ParamCount))
	}
	if meta.NativePrecision != 0 {
		cmd.Printf("Native precision: %d-bit\n", meta.NativePrecision)
	}
}
