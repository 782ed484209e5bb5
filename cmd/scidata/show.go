package main

import (
	"fmt"

	j "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/scidatatool/scidata"
)

func newShowCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:     "show FILE",
		Short:   "Print a saved record",
		Example: `  scidata show field.json
  scidata show axis.yaml --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.ioOptions()
			if err != nil {
				return err
			}
			rec, err := scidata.Load(cmd.Context(), args[0], opts...)
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", args[0], err)
			}
			if asJSON {
				out, err := j.MarshalIndent(rec.AsDict(), "", "    ")
				if err != nil {
					return fmt.Errorf("failed to encode %s: %w", rec.ClassName(), err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), rec.String())
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the dict form as JSON")
	return cmd
}
