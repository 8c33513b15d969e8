package surreal

import (
	"log/slog"

	"github.com/syssam/surrealgen/compiler/gen"
)

// Artifact generates the data-access module of a configuration.
type Artifact struct {
	cfg    *gen.Config
	logger *slog.Logger
}

// NewArtifact creates the repo artifact of cfg.
func NewArtifact(cfg *gen.Config, logger *slog.Logger) *Artifact {
	if logger == nil {
		logger = slog.Default()
	}
	return &Artifact{cfg: cfg, logger: logger}
}

// Name implements gen.Artifact.
func (a *Artifact) Name() string { return gen.FeatureRepo.Name }

// Path implements gen.Artifact.
func (a *Artifact) Path() string { return a.cfg.Repo.Path }

// Options returns the generator options of the configuration.
func (a *Artifact) Options() []Option {
	fam := a.cfg.Repo.Families
	return []Option{
		WithGeneratorName(a.cfg.Generator),
		WithModule(a.cfg.Repo.Module),
		WithOperations(gen.FamilyCreation, fam.Creation),
		WithOperations(gen.FamilyWithData, fam.WithData),
		WithOperations(gen.FamilyWithID, fam.WithID),
		WithLogger(a.logger),
	}
}

// Generate implements gen.Artifact. Every call composes a fresh module.
func (a *Artifact) Generate() ([]byte, error) {
	g, err := NewRepoGenerator(a.Options()...)
	if err != nil {
		return nil, err
	}
	if err := g.Run(); err != nil {
		return nil, gen.NewGenerationError("render", a.Path(), "compose module", err)
	}
	return []byte(g.Content()), nil
}
