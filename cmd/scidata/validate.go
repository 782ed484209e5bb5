package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scidatatool/scidata"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE...",
		Short: "Check saved records against their class schema",
		Long: `Validate each FILE against the JSON Schema of the class named by its
"__class__" key, then rebuild the record to run the field validators.
Every issue is printed with its JSON Pointer.`,
		Example: `  scidata validate field.json axis.yaml`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.ioOptions()
			if err != nil {
				return err
			}
			opts = append(opts, scidata.WithSchemaValidation(true))

			failed := 0
			for _, path := range args {
				_, m, err := scidata.LoadInitDict(cmd.Context(), path, opts...)
				if err == nil {
					_, err = scidata.FromDict(m)
				}
				if err != nil {
					failed++
					reportIssues(cmd, path, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed validation", failed, len(args))
			}
			return nil
		},
	}
}

func reportIssues(cmd *cobra.Command, path string, err error) {
	iss, ok := scidata.AsIssues(err)
	if !ok {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
		return
	}
	for _, it := range iss {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s %s: %s\n", path, it.Path, it.Code, it.Message)
	}
	if errors.Is(err, scidata.ErrUnknownClass) {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: known classes are listed by 'scidata classes'\n", path)
	}
}
