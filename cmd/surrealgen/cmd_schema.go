package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/syssam/surrealgen/compiler/gen/models"
)

// schemaCmd writes the schema dump, or prints the payload with --format.
func schemaCmd(flags *globalFlags) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Dump the schema payload as YAML or JSON",
		Example: `  surrealgen schema
  surrealgen schema --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format == "" {
				return run(cmd, flags, onlyFeature("schema"))
			}
			cfg, err := flags.loadConfig(cmd)
			if err != nil {
				return err
			}
			s, err := models.LoadSchema(cfg)
			if err != nil {
				return err
			}
			var data []byte
			switch format {
			case "yaml":
				data, err = s.YAML()
			case "json":
				data, err = s.JSON()
				data = append(data, '\n')
			default:
				return fmt.Errorf("unknown format %q (want yaml or json)", format)
			}
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "Print the payload to stdout in this format (yaml, json)")
	return cmd
}
