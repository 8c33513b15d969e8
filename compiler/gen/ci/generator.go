package ci

import (
	"bytes"
	"log/slog"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/syssam/surrealgen/compiler/gen"
)

// Generator serializes a workflow behind the generated-code banner.
type Generator struct {
	*gen.Emitter

	workflow *Workflow
	logger   *slog.Logger
}

// NewGenerator creates a generator for w.
func NewGenerator(name string, w *Workflow, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		Emitter:  gen.NewEmitter(name),
		workflow: w,
		logger:   logger,
	}
}

// Run appends the banner and the YAML document to the buffer.
func (g *Generator) Run() error {
	g.logger.Info("run generator", "generator", g.Name(), "workflow", g.workflow.Name)
	if err := g.workflow.Validate(); err != nil {
		return gen.NewGenerationError("render", "", "invalid workflow", err)
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(g.workflow); err != nil {
		return gen.NewGenerationError("render", "", "encode workflow", err)
	}
	if err := enc.Close(); err != nil {
		return gen.NewGenerationError("render", "", "encode workflow", err)
	}
	if err := g.AddBanner(gen.KindYAML); err != nil {
		return err
	}
	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		g.PlainPush(line)
	}
	g.PlainPush("")
	return nil
}

// Artifact generates the CI pipeline of a configuration.
type Artifact struct {
	cfg    *gen.Config
	logger *slog.Logger
}

// NewArtifact creates the CI artifact of cfg.
func NewArtifact(cfg *gen.Config, logger *slog.Logger) *Artifact {
	return &Artifact{cfg: cfg, logger: logger}
}

// Name implements gen.Artifact.
func (a *Artifact) Name() string { return gen.FeatureCI.Name }

// Path implements gen.Artifact.
func (a *Artifact) Path() string { return a.cfg.CI.Path }

// Generate implements gen.Artifact.
func (a *Artifact) Generate() ([]byte, error) {
	w := DefaultWorkflow(Options{
		ElixirVersion: a.cfg.CI.ElixirVersion,
		OTPVersion:    a.cfg.CI.OTPVersion,
		PostgresImage: a.cfg.CI.PostgresImage,
	})
	g := NewGenerator(a.cfg.Generator, w, a.logger)
	if err := g.Run(); err != nil {
		return nil, err
	}
	return []byte(g.Content()), nil
}
