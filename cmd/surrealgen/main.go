// Package main provides the surrealgen CLI. surrealgen renders the Elixir
// SurrealDB data-access module and the project files around it.
//
// Usage:
//
//	surrealgen                  # Generate every enabled artifact
//	surrealgen repo             # Generate lib/surreal/repo.ex only
//	surrealgen ci               # Generate the GitHub Actions workflow
//	surrealgen ci --dump        # Print the current workflow as JSON
//	surrealgen models           # Generate Go structs for the schema payload
//	surrealgen schema           # Dump the schema payload as YAML
//	surrealgen --watch          # Regenerate when the config or schema changes
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set via ldflags during build: -ldflags="-X main.version=v1.0.0"
var version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styleError.Render("error:"), err)
		os.Exit(1)
	}
}

// rootCmd builds the command tree. Without a subcommand it generates every
// enabled artifact.
func rootCmd() *cobra.Command {
	flags := &globalFlags{}
	cmd := &cobra.Command{
		Use:           "surrealgen",
		Short:         "Generate the Elixir SurrealDB data-access module",
		Long:          `surrealgen renders the Surreal.Repo Elixir module, its CI workflow, and Go models of the schema payload.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, flags)
		},
	}
	flags.register(cmd.PersistentFlags())

	cmd.AddCommand(
		featureCmd(flags, "repo", "Generate the Elixir data-access module"),
		ciCmd(flags),
		featureCmd(flags, "models", "Generate Go structs for the schema payload"),
		schemaCmd(flags),
	)
	return cmd
}
