package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/syssam/surrealgen/compiler/gen/ci"
)

// ciCmd generates the CI workflow, or prints the current one with --dump.
func ciCmd(flags *globalFlags) *cobra.Command {
	var dump bool

	cmd := &cobra.Command{
		Use:   "ci",
		Short: "Generate the GitHub Actions workflow",
		Example: `  surrealgen ci
  surrealgen ci --dump`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !dump {
				return run(cmd, flags, onlyFeature("ci"))
			}
			cfg, err := flags.loadConfig(cmd)
			if err != nil {
				return err
			}
			w, err := ci.Load(cfg.Path(cfg.CI.Path))
			if err != nil {
				return err
			}
			data, err := w.JSON()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
	cmd.Flags().BoolVar(&dump, "dump", false, "Print the current workflow file as JSON")
	return cmd
}
