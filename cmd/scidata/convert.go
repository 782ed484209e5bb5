package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scidatatool/scidata"
)

func newConvertCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "convert IN OUT",
		Short: "Rewrite a saved record, choosing the format from the OUT extension",
		Long: `Load the record stored in IN and save it to OUT. The output format follows
the OUT extension (.json, .yaml or .yml); OUT without extension gets .json.`,
		Example: `  scidata convert field.json field.yaml`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.ioOptions()
			if err != nil {
				return err
			}
			rec, err := scidata.Load(cmd.Context(), args[0], opts...)
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", args[0], err)
			}
			written, err := scidata.Save(cmd.Context(), rec, args[1], opts...)
			if err != nil {
				return fmt.Errorf("failed to save %s: %w", args[1], err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), written)
			return nil
		},
	}
}
