package gen

import (
	"errors"
	"fmt"
	"slices"
)

// Option configures code generation.
type Option func(*Config) error

// WithRoot sets the project directory.
// Every artifact path is resolved against it.
func WithRoot(dir string) Option {
	return func(c *Config) error {
		if dir == "" {
			return NewConfigError("Root", nil, "root directory cannot be empty")
		}
		c.Root = dir
		return nil
	}
}

// WithGenerator sets the generator identity printed in banners.
func WithGenerator(name string) Option {
	return func(c *Config) error {
		if name == "" {
			return NewConfigError("Generator", nil, "generator identity cannot be empty")
		}
		c.Generator = name
		return nil
	}
}

// WithWorkers sets the number of parallel workers.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n < 1 {
			return NewConfigError("Workers", n, "must be positive")
		}
		c.Workers = n
		return nil
	}
}

// WithFeatures enables specific features.
// Features select the generated artifacts.
func WithFeatures(features ...Feature) Option {
	return func(c *Config) error {
		for _, f := range features {
			if slices.ContainsFunc(c.Features, func(e Feature) bool { return e.Name == f.Name }) {
				continue
			}
			c.Features = append(c.Features, f)
		}
		return nil
	}
}

// WithRepoPath sets the destination of the data-access module.
func WithRepoPath(path string) Option {
	return func(c *Config) error {
		if path == "" {
			return NewConfigError("Repo.Path", nil, "path cannot be empty")
		}
		c.Repo.Path = path
		return nil
	}
}

// WithRepoModule sets the name of the generated Elixir module.
func WithRepoModule(module string) Option {
	return func(c *Config) error {
		if module == "" {
			return NewConfigError("Repo.Module", nil, "module name cannot be empty")
		}
		c.Repo.Module = module
		return nil
	}
}

// WithOperations replaces the operation names of a family.
// Passing no names declares an empty family.
func WithOperations(family string, ops ...string) Option {
	return func(c *Config) error {
		if ops == nil {
			ops = []string{}
		}
		switch family {
		case FamilyCreation:
			c.Repo.Families.Creation = ops
		case FamilyWithData:
			c.Repo.Families.WithData = ops
		case FamilyWithID:
			c.Repo.Families.WithID = ops
		default:
			return NewConfigError("Family", family,
				fmt.Sprintf("unknown family; use %s, %s, or %s", FamilyCreation, FamilyWithData, FamilyWithID))
		}
		return nil
	}
}

// WithCIPath sets the destination of the CI pipeline.
func WithCIPath(path string) Option {
	return func(c *Config) error {
		if path == "" {
			return NewConfigError("CI.Path", nil, "path cannot be empty")
		}
		c.CI.Path = path
		return nil
	}
}

// WithModelsSchema sets the YAML schema payload of the models generator.
func WithModelsSchema(path string) Option {
	return func(c *Config) error {
		c.Models.Schema = path
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config from DefaultConfig and the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := DefaultConfig()
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
