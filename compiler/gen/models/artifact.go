package models

import (
	"log/slog"
	"strings"

	"github.com/syssam/surrealgen/compiler/gen"
	"github.com/syssam/surrealgen/compiler/load"
)

// LoadSchema returns the schema payload of cfg: the configured file, or the
// built-in example when none is set.
func LoadSchema(cfg *gen.Config) (*load.Schema, error) {
	if cfg.Models.Schema == "" {
		return load.Example(), nil
	}
	s, err := load.Load(cfg.Path(cfg.Models.Schema))
	if err != nil {
		return nil, gen.NewGenerationError("load", cfg.Models.Schema, "load schema", err)
	}
	return s, nil
}

// Artifact generates the Go models of a configuration.
type Artifact struct {
	cfg    *gen.Config
	logger *slog.Logger
}

// NewArtifact creates the models artifact of cfg.
func NewArtifact(cfg *gen.Config, logger *slog.Logger) *Artifact {
	return &Artifact{cfg: cfg, logger: logger}
}

// Name implements gen.Artifact.
func (a *Artifact) Name() string { return gen.FeatureModels.Name }

// Path implements gen.Artifact.
func (a *Artifact) Path() string { return a.cfg.Models.Path }

// Generate implements gen.Artifact.
func (a *Artifact) Generate() ([]byte, error) {
	s, err := LoadSchema(a.cfg)
	if err != nil {
		return nil, err
	}
	return NewGenerator(a.cfg.Generator, a.cfg.Models.Package, s, a.logger).Generate()
}

// SchemaArtifact dumps the schema payload of a configuration as YAML.
type SchemaArtifact struct {
	cfg    *gen.Config
	logger *slog.Logger
}

// NewSchemaArtifact creates the schema dump artifact of cfg.
func NewSchemaArtifact(cfg *gen.Config, logger *slog.Logger) *SchemaArtifact {
	if logger == nil {
		logger = slog.Default()
	}
	return &SchemaArtifact{cfg: cfg, logger: logger}
}

// Name implements gen.Artifact.
func (a *SchemaArtifact) Name() string { return gen.FeatureSchema.Name }

// Path implements gen.Artifact.
func (a *SchemaArtifact) Path() string { return a.cfg.Models.Dump }

// Generate implements gen.Artifact.
func (a *SchemaArtifact) Generate() ([]byte, error) {
	a.logger.Info("run generator", "generator", a.cfg.Generator, "schema", a.cfg.Models.Schema)
	s, err := LoadSchema(a.cfg)
	if err != nil {
		return nil, err
	}
	data, err := s.YAML()
	if err != nil {
		return nil, gen.NewGenerationError("render", "", "encode schema", err)
	}
	e := gen.NewEmitter(a.cfg.Generator)
	if err := e.AddBanner(gen.KindYAML); err != nil {
		return nil, err
	}
	for _, line := range strings.Split(strings.TrimSuffix(string(data), "\n"), "\n") {
		e.PlainPush(line)
	}
	e.PlainPush("")
	return []byte(e.Content()), nil
}
