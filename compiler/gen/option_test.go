package gen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithRoot(t *testing.T) {
	t.Run("sets root", func(t *testing.T) {
		c := &Config{}
		err := WithRoot("/tmp/project")(c)

		require.NoError(t, err)
		assert.Equal(t, "/tmp/project", c.Root)
	})

	t.Run("empty root returns error", func(t *testing.T) {
		c := &Config{}
		err := WithRoot("")(c)

		require.Error(t, err)
		assert.True(t, IsConfigError(err))
	})
}

func TestWithWorkers(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		wantErr bool
	}{
		{"one", 1, false},
		{"many", 16, false},
		{"zero", 0, true},
		{"negative", -2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{}
			err := WithWorkers(tt.n)(c)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsConfigError(err))
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.n, c.Workers)
			}
		})
	}
}

func TestWithFeatures(t *testing.T) {
	t.Run("appends without duplicates", func(t *testing.T) {
		c := &Config{}
		require.NoError(t, WithFeatures(FeatureRepo, FeatureModels)(c))
		require.NoError(t, WithFeatures(FeatureRepo)(c))

		require.Len(t, c.Features, 2)
		assert.Equal(t, "repo", c.Features[0].Name)
		assert.Equal(t, "models", c.Features[1].Name)
	})
}

func TestWithOperations(t *testing.T) {
	tests := []struct {
		family string
		get    func(*Config) []string
	}{
		{FamilyCreation, func(c *Config) []string { return c.Repo.Families.Creation }},
		{FamilyWithData, func(c *Config) []string { return c.Repo.Families.WithData }},
		{FamilyWithID, func(c *Config) []string { return c.Repo.Families.WithID }},
	}

	for _, tt := range tests {
		t.Run(tt.family, func(t *testing.T) {
			c := &Config{}
			require.NoError(t, WithOperations(tt.family, "a", "b")(c))
			assert.Equal(t, []string{"a", "b"}, tt.get(c))
		})
	}

	t.Run("no names declares an empty family", func(t *testing.T) {
		c := &Config{}
		require.NoError(t, WithOperations(FamilyWithID)(c))

		assert.NotNil(t, c.Repo.Families.WithID)
		assert.Empty(t, c.Repo.Families.WithID)
		assert.Nil(t, c.Repo.Families.Creation)
	})

	t.Run("unknown family", func(t *testing.T) {
		err := WithOperations("with-everything", "a")(&Config{})
		require.Error(t, err)
		assert.True(t, IsConfigError(err))
		assert.Contains(t, err.Error(), "unknown family")
	})
}

func TestPathOptions(t *testing.T) {
	t.Run("repo path and module", func(t *testing.T) {
		c := &Config{}
		require.NoError(t, WithRepoPath("lib/repo.ex")(c))
		require.NoError(t, WithRepoModule("MyApp.Repo")(c))
		require.NoError(t, WithCIPath("ci.yml")(c))
		require.NoError(t, WithModelsSchema("schema.yaml")(c))

		assert.Equal(t, "lib/repo.ex", c.Repo.Path)
		assert.Equal(t, "MyApp.Repo", c.Repo.Module)
		assert.Equal(t, "ci.yml", c.CI.Path)
		assert.Equal(t, "schema.yaml", c.Models.Schema)
	})

	t.Run("empty values return errors", func(t *testing.T) {
		for _, opt := range []Option{WithRepoPath(""), WithRepoModule(""), WithCIPath(""), WithGenerator("")} {
			assert.True(t, IsConfigError(opt(&Config{})))
		}
	})
}

func TestConfigApply(t *testing.T) {
	t.Run("stops at first error", func(t *testing.T) {
		c := &Config{}
		err := c.Apply(WithRoot(""), WithGenerator("x"))

		require.Error(t, err)
		assert.Empty(t, c.Generator)
	})

	t.Run("ApplyAll collects every error", func(t *testing.T) {
		c := &Config{}
		err := c.ApplyAll(WithRoot(""), WithWorkers(0), WithGenerator("x"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Root")
		assert.Contains(t, err.Error(), "Workers")
		assert.Equal(t, "x", c.Generator)

		var cfgErr *ConfigError
		assert.True(t, errors.As(err, &cfgErr))
	})
}

func TestNewConfig(t *testing.T) {
	t.Run("starts from defaults", func(t *testing.T) {
		c, err := NewConfig(WithRoot("out"))

		require.NoError(t, err)
		assert.Equal(t, "out", c.Root)
		assert.Equal(t, DefaultRepoPath, c.Repo.Path)
		assert.Equal(t, DefaultGenerator, c.Generator)
		assert.NoError(t, c.Validate())
	})

	t.Run("MustNewConfig panics on error", func(t *testing.T) {
		assert.Panics(t, func() { MustNewConfig(WithWorkers(0)) })
		assert.NotPanics(t, func() { MustNewConfig() })
	})
}
