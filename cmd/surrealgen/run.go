package main

import (
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/syssam/surrealgen/compiler"
	"github.com/syssam/surrealgen/compiler/gen"
)

// run generates the artifacts of the loaded config, then keeps watching
// when --watch is set.
func run(cmd *cobra.Command, flags *globalFlags, opts ...gen.Option) error {
	logger := flags.logger()
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	generate := func() (*gen.Config, error) {
		cfg, err := flags.loadConfig(cmd, opts...)
		if err != nil {
			return nil, err
		}
		var wopts []gen.WriterOption
		if flags.dryRun {
			wopts = append(wopts, gen.WithDryRun(cmd.OutOrStdout()))
		}
		start := time.Now()
		metrics, err := compiler.Generate(ctx, cfg, logger, wopts...)
		if err != nil {
			return cfg, err
		}
		if !flags.dryRun {
			printSummary(cmd.ErrOrStderr(), metrics, time.Since(start))
		}
		return cfg, nil
	}

	cfg, err := generate()
	if !flags.watch {
		return err
	}
	if err != nil {
		// Keep watching so a fixed config is picked up.
		printFailure(cmd.ErrOrStderr(), err)
	}
	if cfg == nil {
		cfg = gen.DefaultConfig()
	}
	return watch(ctx, cmd.ErrOrStderr(), watchPaths(flags, cfg), logger, func() {
		if _, err := generate(); err != nil {
			printFailure(cmd.ErrOrStderr(), err)
		}
	})
}

func printSummary(w io.Writer, m gen.WriterMetrics, elapsed time.Duration) {
	fmt.Fprintf(w, "%s %d file(s), %d bytes in %s\n",
		styleSuccess.Render("generated"), m.FilesGenerated, m.TotalBytes, elapsed.Round(time.Millisecond))
}

func printFailure(w io.Writer, err error) {
	fmt.Fprintln(w, styleError.Render("error:"), err)
}

// featureCmd generates the artifact of a single feature.
func featureCmd(flags *globalFlags, name, short string) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, flags, onlyFeature(name))
		},
	}
}
