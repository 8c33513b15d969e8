package gen

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Family names of the data-access module.
const (
	FamilyCreation = "creation"
	FamilyWithData = "with-data"
	FamilyWithID   = "with-id"
)

// Default settings.
const (
	DefaultGenerator     = "cmd/surrealgen"
	DefaultConfigFile    = "surrealgen.yaml"
	DefaultRepoPath      = "lib/surreal/repo.ex"
	DefaultRepoModule    = "Surreal.Repo"
	DefaultCIPath        = ".github/workflows/ci.yml"
	DefaultElixirVersion = "1.16.0"
	DefaultOTPVersion    = "26.1.2"
	DefaultPostgresImage = "postgres:15.4"
	DefaultModelsPath    = "gen/models/models.go"
	DefaultModelsPackage = "models"
	DefaultSchemaDump    = "gen/schema.yaml"
)

// Config holds the global codegen configuration.
type Config struct {
	// Root is the project directory every artifact path is relative to.
	Root string `yaml:"root,omitempty"`

	// Generator is the identity printed in generated-code banners.
	Generator string `yaml:"generator,omitempty"`

	// Workers limits how many artifacts are generated in parallel.
	Workers int `yaml:"workers,omitempty"`

	// Features selects the generated artifacts. Empty means DefaultFeatures.
	Features []Feature `yaml:"features,omitempty"`

	Repo   RepoConfig   `yaml:"repo"`
	CI     CIConfig     `yaml:"ci"`
	Models ModelsConfig `yaml:"models"`
}

// RepoConfig configures the Elixir data-access module.
type RepoConfig struct {
	Path     string    `yaml:"path,omitempty"`
	Module   string    `yaml:"module,omitempty"`
	Families FamilyOps `yaml:"families"`
}

// FamilyOps lists the operation names of each family. A nil list keeps the
// built-in operations; an empty list declares none.
type FamilyOps struct {
	Creation []string `yaml:"creation"`
	WithData []string `yaml:"with_data"`
	WithID   []string `yaml:"with_id"`
}

// CIConfig configures the CI pipeline.
type CIConfig struct {
	Path          string `yaml:"path,omitempty"`
	ElixirVersion string `yaml:"elixir_version,omitempty"`
	OTPVersion    string `yaml:"otp_version,omitempty"`
	PostgresImage string `yaml:"postgres_image,omitempty"`
}

// ModelsConfig configures the Go models and the schema dump.
type ModelsConfig struct {
	Path    string `yaml:"path,omitempty"`
	Package string `yaml:"package,omitempty"`
	// Schema is an optional YAML schema payload. Empty uses the built-in
	// example payload.
	Schema string `yaml:"schema,omitempty"`
	// Dump is the destination of the schema feature.
	Dump string `yaml:"dump,omitempty"`
}

// DefaultConfig returns the configuration used when no file or option
// overrides a setting.
func DefaultConfig() *Config {
	return &Config{
		Root:      ".",
		Generator: DefaultGenerator,
		Workers:   runtime.GOMAXPROCS(0),
		Repo: RepoConfig{
			Path:   DefaultRepoPath,
			Module: DefaultRepoModule,
		},
		CI: CIConfig{
			Path:          DefaultCIPath,
			ElixirVersion: DefaultElixirVersion,
			OTPVersion:    DefaultOTPVersion,
			PostgresImage: DefaultPostgresImage,
		},
		Models: ModelsConfig{
			Path:    DefaultModelsPath,
			Package: DefaultModelsPackage,
			Dump:    DefaultSchemaDump,
		},
	}
}

// LoadConfig reads a YAML configuration file on top of DefaultConfig.
// Unknown keys are rejected.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	c := DefaultConfig()
	if err := c.decode(bytes.NewReader(data)); err != nil {
		return nil, NewConfigError("File", path, err.Error())
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks the configuration for missing or inconsistent settings.
func (c *Config) Validate() error {
	var errs []error
	if c.Root == "" {
		errs = append(errs, NewConfigError("Root", nil, "root directory cannot be empty"))
	}
	if c.Generator == "" {
		errs = append(errs, NewConfigError("Generator", nil, "generator identity cannot be empty"))
	}
	if c.Workers < 1 {
		errs = append(errs, NewConfigError("Workers", c.Workers, "must be positive"))
	}
	for _, p := range []struct{ option, path string }{
		{"Repo.Path", c.Repo.Path},
		{"CI.Path", c.CI.Path},
		{"Models.Path", c.Models.Path},
		{"Models.Dump", c.Models.Dump},
	} {
		if p.path == "" {
			errs = append(errs, NewConfigError(p.option, nil, "path cannot be empty"))
		} else if filepath.IsAbs(p.path) {
			errs = append(errs, NewConfigError(p.option, p.path, "path must be relative to the root"))
		}
	}
	if c.Repo.Module == "" {
		errs = append(errs, NewConfigError("Repo.Module", nil, "module name cannot be empty"))
	}
	if c.Models.Package == "" {
		errs = append(errs, NewConfigError("Models.Package", nil, "package name cannot be empty"))
	}
	return errors.Join(errs...)
}

// EnabledFeatures returns the configured features, or the defaults when none
// are configured.
func (c *Config) EnabledFeatures() []Feature {
	if len(c.Features) == 0 {
		return DefaultFeatures()
	}
	return c.Features
}

// FeatureEnabled reports if the given feature name is enabled.
// It's used by the generator to select artifacts.
func (c *Config) FeatureEnabled(name string) (bool, error) {
	if _, ok := FeatureByName(name); !ok {
		return false, fmt.Errorf("unexpected feature name %q", name)
	}
	for _, f := range c.EnabledFeatures() {
		if f.Name == name {
			return true, nil
		}
	}
	return false, nil
}

// Path resolves an artifact path against the root directory.
func (c *Config) Path(rel string) string {
	return filepath.Join(c.Root, rel)
}
