package compiler

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/surrealgen/compiler/gen"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func names(artifacts []gen.Artifact) []string {
	out := make([]string, len(artifacts))
	for i, a := range artifacts {
		out[i] = a.Name()
	}
	return out
}

func TestArtifacts(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		artifacts, err := Artifacts(gen.MustNewConfig(), discard())
		require.NoError(t, err)
		assert.Equal(t, []string{"repo", "ci"}, names(artifacts))
	})

	t.Run("selected features keep declaration order", func(t *testing.T) {
		cfg := gen.MustNewConfig(gen.WithFeatures(gen.FeatureSchema, gen.FeatureModels, gen.FeatureRepo))
		artifacts, err := Artifacts(cfg, discard())
		require.NoError(t, err)
		assert.Equal(t, []string{"repo", "models", "schema"}, names(artifacts))
	})

	t.Run("unknown feature", func(t *testing.T) {
		cfg := gen.MustNewConfig()
		cfg.Features = []gen.Feature{{Name: "graphql"}}
		_, err := Artifacts(cfg, discard())
		assert.Error(t, err)
	})
}

func TestNewArtifact(t *testing.T) {
	cfg := gen.MustNewConfig()
	for _, f := range gen.AllFeatures {
		a, err := NewArtifact(f.Name, cfg, discard())
		require.NoError(t, err, f.Name)
		assert.Equal(t, f.Name, a.Name())
	}

	_, err := NewArtifact("graphql", cfg, discard())
	assert.True(t, gen.IsConfigError(err))
}

func TestGenerate(t *testing.T) {
	root := t.TempDir()
	cfg := gen.MustNewConfig(gen.WithRoot(root), gen.WithFeatures(gen.AllFeatures...))

	metrics, err := Generate(context.Background(), cfg, discard())

	require.NoError(t, err)
	assert.Equal(t, 4, metrics.FilesGenerated)
	for _, rel := range []string{gen.DefaultRepoPath, gen.DefaultCIPath, gen.DefaultModelsPath, gen.DefaultSchemaDump} {
		assert.FileExists(t, filepath.Join(root, rel))
	}
	repo, err := os.ReadFile(filepath.Join(root, gen.DefaultRepoPath))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(repo), "## **** GENERATED CODE! see cmd/surrealgen for details. ****\n"))

	t.Run("rerun is byte identical", func(t *testing.T) {
		_, err := Generate(context.Background(), cfg, discard())
		require.NoError(t, err)
		again, err := os.ReadFile(filepath.Join(root, gen.DefaultRepoPath))
		require.NoError(t, err)
		assert.Equal(t, repo, again)
	})
}

func TestGenerateDryRun(t *testing.T) {
	root := t.TempDir()
	cfg := gen.MustNewConfig(gen.WithRoot(root))
	var out bytes.Buffer

	_, err := Generate(context.Background(), cfg, discard(), gen.WithDryRun(&out))

	require.NoError(t, err)
	assert.Contains(t, out.String(), "==> "+gen.DefaultRepoPath+" <==")
	assert.Contains(t, out.String(), "==> "+gen.DefaultCIPath+" <==")
	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGenerateInvalidConfig(t *testing.T) {
	cfg := gen.MustNewConfig()
	cfg.Repo.Module = ""

	_, err := Generate(context.Background(), cfg, discard())

	assert.True(t, gen.IsConfigError(err))
}
