package gen

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

var (
	// FeatureRepo generates the Elixir data-access module.
	FeatureRepo = Feature{
		Name:        "repo",
		Stage:       Stable,
		Default:     true,
		Description: "Repo generates the Surreal.Repo module with one overload family per data-access operation",
	}

	// FeatureCI generates the GitHub Actions pipeline of the Elixir project.
	FeatureCI = Feature{
		Name:        "ci",
		Stage:       Stable,
		Default:     true,
		Description: "CI generates the mix-format and mix-test workflow",
	}

	// FeatureModels generates Go structs for the schema payload.
	FeatureModels = Feature{
		Name:        "models",
		Stage:       Beta,
		Default:     false,
		Description: "Models generates one Go struct per schema table, with enum types and table names",
	}

	// FeatureSchema dumps the schema payload as YAML.
	FeatureSchema = Feature{
		Name:        "schema",
		Stage:       Alpha,
		Default:     false,
		Description: "Schema writes the resolved tables and relations as a YAML document",
	}

	// AllFeatures holds a list of all feature-flags.
	AllFeatures = []Feature{
		FeatureRepo,
		FeatureCI,
		FeatureModels,
		FeatureSchema,
	}
)

// FeatureStage describes the stage of the codegen feature.
type FeatureStage int

const (
	_ FeatureStage = iota

	// Experimental features are in development.
	Experimental

	// Alpha features are complete, but their output may still change.
	Alpha

	// Beta features are documented and no breaking output changes are expected.
	Beta

	// Stable features are Beta features that were running for a while.
	Stable
)

// String returns the stage name.
func (s FeatureStage) String() string {
	switch s {
	case Experimental:
		return "experimental"
	case Alpha:
		return "alpha"
	case Beta:
		return "beta"
	case Stable:
		return "stable"
	default:
		return fmt.Sprintf("FeatureStage(%d)", int(s))
	}
}

// A Feature selects one artifact of the surrealgen codegen.
type Feature struct {
	// Name of the feature.
	Name string

	// Stage of the feature.
	Stage FeatureStage

	// Default values indicates if this feature is enabled by default.
	Default bool

	// A Description of this feature.
	Description string
}

// FeatureByName returns the feature registered under name.
func FeatureByName(name string) (Feature, bool) {
	for _, f := range AllFeatures {
		if f.Name == name {
			return f, true
		}
	}
	return Feature{}, false
}

// MarshalYAML encodes the feature by name.
func (f Feature) MarshalYAML() (any, error) {
	return f.Name, nil
}

// UnmarshalYAML resolves a feature name.
func (f *Feature) UnmarshalYAML(node *yaml.Node) error {
	var name string
	if err := node.Decode(&name); err != nil {
		return err
	}
	found, ok := FeatureByName(name)
	if !ok {
		return NewConfigError("Features", name, fmt.Sprintf("unknown feature (line %d)", node.Line))
	}
	*f = found
	return nil
}

// DefaultFeatures returns the features enabled when none are configured.
func DefaultFeatures() []Feature {
	var fs []Feature
	for _, f := range AllFeatures {
		if f.Default {
			fs = append(fs, f)
		}
	}
	return fs
}
