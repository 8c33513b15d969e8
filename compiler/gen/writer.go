package gen

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/imports"
)

// Artifact is one generated file.
type Artifact interface {
	// Name identifies the artifact in logs.
	Name() string
	// Path is the destination, relative to the writer root.
	Path() string
	// Generate renders the full file content. Each call starts from an
	// empty buffer.
	Generate() ([]byte, error)
}

// Writer generates artifacts with parallel execution and replaces their
// destinations atomically.
type Writer struct {
	root    string
	workers int
	dryRun  io.Writer
	logger  *slog.Logger

	// Metrics for performance monitoring
	mu      sync.Mutex
	metrics *WriterMetrics
}

// WriterMetrics tracks generation performance
type WriterMetrics struct {
	FilesGenerated int
	TotalBytes     int64
	RenderTime     int64 // nanoseconds
	FormatTime     int64 // nanoseconds
	WriteTime      int64 // nanoseconds
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithWriterWorkers sets the number of parallel workers.
func WithWriterWorkers(n int) WriterOption {
	return func(w *Writer) {
		if n > 0 {
			w.workers = n
		}
	}
}

// WithDryRun prints artifacts to out instead of writing them.
func WithDryRun(out io.Writer) WriterOption {
	return func(w *Writer) {
		w.dryRun = out
	}
}

// WithWriterLogger sets the logger of the writer.
func WithWriterLogger(l *slog.Logger) WriterOption {
	return func(w *Writer) {
		if l != nil {
			w.logger = l
		}
	}
}

// NewWriter creates a writer rooted at root.
func NewWriter(root string, opts ...WriterOption) *Writer {
	w := &Writer{
		root:    root,
		workers: runtime.GOMAXPROCS(0),
		logger:  slog.Default(),
		metrics: &WriterMetrics{},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Metrics returns a snapshot of the generation metrics.
func (w *Writer) Metrics() WriterMetrics {
	w.mu.Lock()
	defer w.mu.Unlock()
	return *w.metrics
}

// WriteAll generates and writes all artifacts in parallel.
func (w *Writer) WriteAll(ctx context.Context, artifacts ...Artifact) error {
	if err := w.checkPaths(artifacts); err != nil {
		return err
	}
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(w.workers)

	// Dry-run output is serialized so documents do not interleave.
	if w.dryRun != nil {
		eg.SetLimit(1)
	}

	for _, a := range artifacts {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return w.write(a)
			}
		})
	}

	return eg.Wait()
}

// checkPaths rejects two artifacts sharing a destination.
func (w *Writer) checkPaths(artifacts []Artifact) error {
	seen := make(map[string]string, len(artifacts))
	for _, a := range artifacts {
		p := filepath.Clean(a.Path())
		if prev, ok := seen[p]; ok {
			return NewConfigError("Path", p, fmt.Sprintf("used by both %s and %s", prev, a.Name()))
		}
		seen[p] = a.Name()
	}
	return nil
}

// write generates a single artifact.
func (w *Writer) write(a Artifact) error {
	fullPath := filepath.Join(w.root, a.Path())
	w.logger.Debug("generate artifact", "artifact", a.Name(), "path", a.Path())

	// 1. Render
	start := time.Now()
	content, err := a.Generate()
	if err != nil {
		return err
	}
	renderTime := time.Since(start)

	// 2. Format Go sources using goimports
	start = time.Now()
	if strings.HasSuffix(fullPath, ".go") {
		formatted, err := imports.Process(fullPath, content, nil)
		if err != nil {
			return NewGenerationError("format", a.Path(), "goimports", err)
		}
		content = formatted
	}
	formatTime := time.Since(start)

	// 3. Write
	start = time.Now()
	if w.dryRun != nil {
		if _, err := fmt.Fprintf(w.dryRun, "==> %s <==\n%s\n", a.Path(), content); err != nil {
			return NewGenerationError("write", a.Path(), "dry run", err)
		}
	} else if err := WriteFileAtomic(fullPath, content); err != nil {
		return NewGenerationError("write", a.Path(), "replace destination", err)
	}
	writeTime := time.Since(start)

	// Update metrics
	w.mu.Lock()
	w.metrics.FilesGenerated++
	w.metrics.TotalBytes += int64(len(content))
	w.metrics.RenderTime += renderTime.Nanoseconds()
	w.metrics.FormatTime += formatTime.Nanoseconds()
	w.metrics.WriteTime += writeTime.Nanoseconds()
	w.mu.Unlock()

	w.logger.Debug("artifact written", "artifact", a.Name(), "bytes", len(content), "render", renderTime)
	return nil
}

// WriteFileAtomic replaces path with data. The content is written to a
// temporary file in the destination directory, synced, and renamed over the
// destination, so readers see either the old or the new file.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
