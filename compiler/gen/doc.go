// Package gen provides the text-emission engine and the overload-family model
// shared by the surrealgen generators.
//
// # Architecture
//
// A generation run flows through three layers:
//
//	Config (surrealgen.yaml + options)
//	        ↓
//	   Artifacts (repo.ex, ci.yml, models.go, schema dump)
//	        ↓
//	   Writer (worker pool, goimports, atomic replace)
//
// Each artifact owns a private Emitter, an indentation-aware line buffer.
// Artifacts share no state, so the Writer may generate them in parallel.
//
// # Overload Families
//
// The data-access module is assembled from families of operations. A Family
// is a list of operation names sharing one ordered list of Variations; a
// Variation renders one or more Clauses, each a template keyed only by the
// operation name and tagged with the Guard it dispatches on:
//
//	Family "with-id" (select, delete)
//	├── Variation "module+id"  → def select(conn, module, id) when is_atom(module)
//	├── Variation "module"     → def select(conn, module) when is_atom(module)
//	└── Variation "thing"      → def select(conn, thing) when is_binary(thing)
//
// Clause order is dispatch precedence in the generated file. Validate rejects
// a clause that an earlier one makes unreachable, and a partial overlap
// unless the earlier clause is the narrower one.
//
// # Error Handling
//
//   - ConfigError: invalid options or configuration file
//   - GenerationError: render, format or write failures
//   - ValidationError: rejected family or variation tables
//
// Every error type matches its sentinel with errors.Is:
//
//	if errors.Is(err, gen.ErrValidationFailed) {
//	    // the family tables are inconsistent
//	}
//
// # Configuration
//
//	cfg, err := gen.NewConfig(
//	    gen.WithRoot("."),
//	    gen.WithOperations(gen.FamilyWithID, "select", "delete"),
//	    gen.WithFeatures(gen.FeatureRepo, gen.FeatureCI),
//	)
//
// LoadConfig reads the same settings from YAML; unknown keys are rejected.
package gen
