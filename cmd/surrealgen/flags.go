package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/syssam/surrealgen/compiler/gen"
)

// globalFlags are shared by every command.
type globalFlags struct {
	config  string
	root    string
	verbose bool
	dryRun  bool
	watch   bool
}

func (f *globalFlags) register(pf *pflag.FlagSet) {
	pf.StringVarP(&f.config, "config", "c", gen.DefaultConfigFile, "Path to config file")
	pf.StringVar(&f.root, "root", "", "Project directory (overrides the config file)")
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "Log debug details")
	pf.BoolVar(&f.dryRun, "dry-run", false, "Print artifacts instead of writing them")
	pf.BoolVar(&f.watch, "watch", false, "Regenerate when the config or schema file changes")
}

// logger returns the stderr logger of one invocation, tagged with a run id.
func (f *globalFlags) logger() *slog.Logger {
	level := slog.LevelInfo
	if f.verbose {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(h).With("run", uuid.NewString())
}

// loadConfig reads the config file on top of the defaults. The default file
// is optional; an explicit --config must exist.
func (f *globalFlags) loadConfig(cmd *cobra.Command, opts ...gen.Option) (*gen.Config, error) {
	cfg := gen.DefaultConfig()
	if _, err := os.Stat(f.config); err == nil {
		if cfg, err = gen.LoadConfig(f.config); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, fs.ErrNotExist) || cmd.Flag("config").Changed {
		return nil, gen.NewConfigError("File", f.config, err.Error())
	}
	if f.root != "" {
		opts = append(opts, gen.WithRoot(f.root))
	}
	if err := cfg.Apply(opts...); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// onlyFeature restricts the config to a single feature.
func onlyFeature(name string) gen.Option {
	return func(c *gen.Config) error {
		f, ok := gen.FeatureByName(name)
		if !ok {
			return gen.NewConfigError("Features", name, "unknown feature")
		}
		c.Features = []gen.Feature{f}
		return nil
	}
}
