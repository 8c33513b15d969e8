// testgen renders every artifact of the default configuration into a
// temporary directory and lists the files.
// Run: go run ./compiler/gen/cmd/testgen
package main

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/syssam/surrealgen/compiler"
	"github.com/syssam/surrealgen/compiler/gen"
)

func main() {
	// Create a temp directory for output
	outDir, err := os.MkdirTemp("", "surrealgen-test-*")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create temp dir: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Output directory: %s\n", outDir)

	// Create config with functional options
	config, err := gen.NewConfig(
		gen.WithRoot(outDir),
		gen.WithGenerator("compiler/gen/cmd/testgen"),
		gen.WithFeatures(gen.AllFeatures...),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create config: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	metrics, err := compiler.Generate(context.Background(), config, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
		os.Exit(1)
	}

	// List generated files
	fmt.Printf("\nGenerated %d files (%d bytes):\n", metrics.FilesGenerated, metrics.TotalBytes)
	err = filepath.WalkDir(outDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, _ := filepath.Rel(outDir, path)
		fmt.Printf("  - %s\n", rel)
		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to list output: %v\n", err)
		os.Exit(1)
	}
}
