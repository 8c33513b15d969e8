package surreal

import (
	"log/slog"

	"github.com/syssam/surrealgen/compiler/gen"
)

// Built-in operation names of each family.
var (
	CreationOps = []string{"create", "insert"}
	WithDataOps = []string{"update", "merge", "patch"}
	WithIDOps   = []string{"select", "delete"}
)

// QueryOp is the operation of the fixed query section.
const QueryOp = "query"

// Variation tables in dispatch order.
var (
	creationVariations = []*gen.Variation{
		variationChangeset,
		variationSchema,
		variationModuleIDData,
		variationModuleDataCreation,
		variationThingData,
	}
	withDataVariations = []*gen.Variation{
		variationChangeset,
		variationModuleIDData,
		variationModuleDataUpdate,
		variationThingData,
	}
	withIDVariations = []*gen.Variation{
		variationModuleID,
		variationModule,
		variationThing,
	}
)

// RepoGenerator composes the data-access module from the overload families.
// A generator is single-use: Run appends to its buffer.
type RepoGenerator struct {
	*gen.Emitter

	module string
	logger *slog.Logger

	ops        map[string][]string
	variations map[string][]*gen.Variation

	creation *gen.Family
	withData *gen.Family
	withID   *gen.Family
	query    *gen.Family
}

// Option configures a RepoGenerator.
type Option func(*RepoGenerator) error

// WithGeneratorName sets the identity printed in the banner.
func WithGeneratorName(name string) Option {
	return func(g *RepoGenerator) error {
		if name == "" {
			return gen.NewConfigError("Generator", nil, "generator identity cannot be empty")
		}
		g.Emitter = gen.NewEmitter(name)
		return nil
	}
}

// WithModule sets the name of the generated module.
func WithModule(module string) Option {
	return func(g *RepoGenerator) error {
		if module == "" {
			return gen.NewConfigError("Repo.Module", nil, "module name cannot be empty")
		}
		g.module = module
		return nil
	}
}

// WithOperations replaces the operation names of a family. A nil list keeps
// the built-in names.
func WithOperations(family string, ops []string) Option {
	return func(g *RepoGenerator) error {
		if _, ok := g.ops[family]; !ok {
			return gen.NewConfigError("Family", family, "unknown family")
		}
		if ops != nil {
			g.ops[family] = ops
		}
		return nil
	}
}

// WithVariations replaces the variation table of a family.
func WithVariations(family string, variations ...*gen.Variation) Option {
	return func(g *RepoGenerator) error {
		if _, ok := g.variations[family]; !ok {
			return gen.NewConfigError("Family", family, "unknown family")
		}
		g.variations[family] = variations
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *RepoGenerator) error {
		if l == nil {
			return gen.NewConfigError("Logger", nil, "logger cannot be nil")
		}
		g.logger = l
		return nil
	}
}

// NewRepoGenerator creates a generator and validates its family tables.
func NewRepoGenerator(opts ...Option) (*RepoGenerator, error) {
	g := &RepoGenerator{
		Emitter: gen.NewEmitter(gen.DefaultGenerator),
		module:  gen.DefaultRepoModule,
		logger:  slog.Default(),
		ops: map[string][]string{
			gen.FamilyCreation: CreationOps,
			gen.FamilyWithData: WithDataOps,
			gen.FamilyWithID:   WithIDOps,
		},
		variations: map[string][]*gen.Variation{
			gen.FamilyCreation: creationVariations,
			gen.FamilyWithData: withDataVariations,
			gen.FamilyWithID:   withIDVariations,
		},
	}
	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}
	g.creation = gen.NewFamily(gen.FamilyCreation, g.ops[gen.FamilyCreation], g.variations[gen.FamilyCreation]...)
	g.withData = gen.NewFamily(gen.FamilyWithData, g.ops[gen.FamilyWithData], g.variations[gen.FamilyWithData]...)
	g.withID = gen.NewFamily(gen.FamilyWithID, g.ops[gen.FamilyWithID], g.variations[gen.FamilyWithID]...)
	g.query = gen.NewFamily(QueryOp, []string{QueryOp}, queryVariations...)
	if err := gen.ValidateFamilies(g.Families()...); err != nil {
		return nil, err
	}
	return g, nil
}

// Families returns the families in emission order, the query family last.
func (g *RepoGenerator) Families() []*gen.Family {
	return []*gen.Family{g.creation, g.withData, g.withID, g.query}
}

// Module returns the name of the generated module.
func (g *RepoGenerator) Module() string {
	return g.module
}

// Run composes the whole module.
func (g *RepoGenerator) Run() error {
	g.logger.Info("run generator", "generator", g.Name(), "module", g.module)
	if err := g.AddBanner(gen.KindElixir); err != nil {
		return err
	}
	g.Push("defmodule " + g.module + " do")
	err := g.WithIndent(func() error {
		if err := g.genMethods(); err != nil {
			return err
		}
		if err := g.genQueryMethod(); err != nil {
			return err
		}
		g.genFrontStatic()
		g.genAdminHelpers()
		return nil
	})
	if err != nil {
		return err
	}
	g.Push("end")
	g.Push("")
	return nil
}

func (g *RepoGenerator) genMethods() error {
	for _, name := range g.creation.Operations {
		if err := g.GenMethodCreation(name); err != nil {
			return err
		}
	}
	for _, name := range g.withData.Operations {
		if err := g.GenMethodWithData(name); err != nil {
			return err
		}
	}
	for _, name := range g.withID.Operations {
		if err := g.GenMethodWithID(name); err != nil {
			return err
		}
	}
	return nil
}

// GenMethodCreation appends the creation section of name.
func (g *RepoGenerator) GenMethodCreation(name string) error {
	return g.genSection(g.creation, name)
}

// GenMethodWithData appends the id+data section of name.
func (g *RepoGenerator) GenMethodWithData(name string) error {
	return g.genSection(g.withData, name)
}

// GenMethodWithID appends the id-only section of name.
func (g *RepoGenerator) GenMethodWithID(name string) error {
	return g.genSection(g.withID, name)
}

func (g *RepoGenerator) genQueryMethod() error {
	return g.genSection(g.query, QueryOp, queryPrelude)
}

func (g *RepoGenerator) genFrontStatic() {
	g.PlainPush("")
	g.PushBlock(frontStatic)
}

func (g *RepoGenerator) genAdminHelpers() {
	g.PlainPush("")
	g.PushBlock(methodBanner("Admin API"))
	g.PlainPush("")
	g.PushBlock(adminHelpers)
	g.PlainPush("")
}

// genSection renders the banner and the variation blocks of name at the
// current depth. The blocks are rendered before anything is pushed.
func (g *RepoGenerator) genSection(f *gen.Family, name string, prelude ...string) error {
	blocks, err := f.Render(name)
	if err != nil {
		return err
	}
	g.logger.Debug("section", "family", f.Name, "operation", name, "variations", len(blocks))
	g.PlainPush("")
	g.PushBlock(methodBanner(name))
	for _, b := range append(prelude, blocks...) {
		g.PlainPush("")
		g.PushBlock(b)
	}
	return nil
}

// methodBanner returns the three-line section banner of name.
func methodBanner(name string) string {
	return "###\n### " + gen.Upper(name) + " #########\n###"
}
