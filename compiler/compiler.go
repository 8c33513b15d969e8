// Package compiler wires a configuration to its artifacts and writes them.
package compiler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/syssam/surrealgen/compiler/gen"
	"github.com/syssam/surrealgen/compiler/gen/ci"
	"github.com/syssam/surrealgen/compiler/gen/models"
	"github.com/syssam/surrealgen/compiler/gen/surreal"
)

// Artifacts returns the artifacts of the enabled features of cfg, in
// feature declaration order.
func Artifacts(cfg *gen.Config, logger *slog.Logger) ([]gen.Artifact, error) {
	if logger == nil {
		logger = slog.Default()
	}
	for _, f := range cfg.EnabledFeatures() {
		if _, ok := gen.FeatureByName(f.Name); !ok {
			return nil, gen.NewConfigError("Features", f.Name, fmt.Sprintf("unknown feature %q", f.Name))
		}
	}
	var artifacts []gen.Artifact
	for _, f := range gen.AllFeatures {
		enabled, err := cfg.FeatureEnabled(f.Name)
		if err != nil {
			return nil, err
		}
		if !enabled {
			continue
		}
		a, err := NewArtifact(f.Name, cfg, logger)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, a)
	}
	return artifacts, nil
}

// NewArtifact returns the artifact of the named feature.
func NewArtifact(name string, cfg *gen.Config, logger *slog.Logger) (gen.Artifact, error) {
	switch name {
	case gen.FeatureRepo.Name:
		return surreal.NewArtifact(cfg, logger), nil
	case gen.FeatureCI.Name:
		return ci.NewArtifact(cfg, logger), nil
	case gen.FeatureModels.Name:
		return models.NewArtifact(cfg, logger), nil
	case gen.FeatureSchema.Name:
		return models.NewSchemaArtifact(cfg, logger), nil
	default:
		return nil, gen.NewConfigError("Features", name, fmt.Sprintf("unknown feature %q", name))
	}
}

// Generate writes every enabled artifact of cfg under cfg.Root.
func Generate(ctx context.Context, cfg *gen.Config, logger *slog.Logger, opts ...gen.WriterOption) (gen.WriterMetrics, error) {
	if err := cfg.Validate(); err != nil {
		return gen.WriterMetrics{}, err
	}
	artifacts, err := Artifacts(cfg, logger)
	if err != nil {
		return gen.WriterMetrics{}, err
	}
	opts = append([]gen.WriterOption{
		gen.WithWriterWorkers(cfg.Workers),
		gen.WithWriterLogger(logger),
	}, opts...)
	w := gen.NewWriter(cfg.Root, opts...)
	err = w.WriteAll(ctx, artifacts...)
	return w.Metrics(), err
}
