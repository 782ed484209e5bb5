package main

import (
	"fmt"

	j "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/scidatatool/scidata"
)

func newSchemaCmd(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:     "schema CLASS",
		Short:   "Print the JSON Schema of a registered class",
		Example: `  scidata schema DataLinspace`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, ok := scidata.LookupClass(args[0])
			if !ok {
				return fmt.Errorf("unknown class %q (see 'scidata classes')", args[0])
			}
			out, err := j.MarshalIndent(c.JSONSchema(), "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode schema: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}
