package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/scidatatool/scidata"
)

func newClassesCmd(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "classes",
		Short: "List the registered record classes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			if _, err := fmt.Fprintln(w, "CLASS\tPARENT\tFIELDS"); err != nil {
				return fmt.Errorf("failed to write header: %w", err)
			}
			for _, name := range scidata.Classes() {
				c, _ := scidata.LookupClass(name)
				parent := "-"
				if c.Parent != nil {
					parent = c.Parent.Name
				}
				if _, err := fmt.Fprintf(w, "%s\t%s\t%d\n", name, parent, len(c.AllFields())); err != nil {
					return fmt.Errorf("failed to write class info: %w", err)
				}
			}
			if err := w.Flush(); err != nil {
				return fmt.Errorf("failed to flush writer: %w", err)
			}
			return nil
		},
	}
}
