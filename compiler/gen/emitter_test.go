package gen

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Push / PlainPush Tests
// =============================================================================

func TestEmitterPush(t *testing.T) {
	t.Run("prefixes with current depth", func(t *testing.T) {
		e := NewEmitter("test")
		e.Push("a")
		e.IndentUp(2)
		e.Push("b")
		e.IndentDown(1)
		e.Push("c")

		assert.Equal(t, []string{"a", "    b", "  c"}, e.Lines())
	})

	t.Run("plain push ignores depth", func(t *testing.T) {
		e := NewEmitter("test")
		e.IndentUp(3)
		e.PlainPush("raw")

		assert.Equal(t, "raw", e.Content())
	})

	t.Run("push block keeps empty lines empty", func(t *testing.T) {
		e := NewEmitter("test")
		e.IndentUp(1)
		e.PushBlock("def a do\n  :ok\nend\n\nfoo")

		assert.Equal(t, []string{"  def a do", "    :ok", "  end", "", "  foo"}, e.Lines())
	})

	t.Run("lines returns a copy", func(t *testing.T) {
		e := NewEmitter("test")
		e.Push("a")
		lines := e.Lines()
		lines[0] = "mutated"

		assert.Equal(t, "a", e.Content())
	})
}

// =============================================================================
// Indentation Tests
// =============================================================================

func TestEmitterIndent(t *testing.T) {
	t.Run("prefix is two spaces per level", func(t *testing.T) {
		e := NewEmitter("test")
		for d := 0; d < 5; d++ {
			assert.Equal(t, strings.Repeat("  ", d), e.Prefix())
			assert.Equal(t, d, e.Depth())
			e.IndentUp(1)
		}
	})

	t.Run("depth is not clamped", func(t *testing.T) {
		e := NewEmitter("test")
		e.IndentDown(1)
		assert.Equal(t, -1, e.Depth())
		assert.Equal(t, "", e.Prefix())
		e.IndentUp(1)
		assert.Equal(t, 0, e.Depth())
	})
}

func TestEmitterWithIndent(t *testing.T) {
	for d := 0; d < 6; d++ {
		e := NewEmitter("test")
		e.IndentUp(d)

		err := e.WithIndent(func() error {
			assert.Equal(t, d+1, e.Depth())
			e.Push("x")
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, d, e.Depth())
		assert.Equal(t, strings.Repeat("  ", d+1)+"x", e.Content())
	}

	t.Run("restores depth for empty body", func(t *testing.T) {
		e := NewEmitter("test")
		require.NoError(t, e.WithIndent(func() error { return nil }))
		assert.Equal(t, 0, e.Depth())
		assert.Equal(t, 0, e.Len())
	})

	t.Run("restores depth on error", func(t *testing.T) {
		e := NewEmitter("test")
		e.IndentUp(2)
		boom := errors.New("boom")

		err := e.WithIndent(func() error { return boom })

		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 2, e.Depth())
		assert.Equal(t, "    ", e.Prefix())
	})

	t.Run("restores depth on panic", func(t *testing.T) {
		e := NewEmitter("test")
		assert.Panics(t, func() {
			_ = e.WithIndent(func() error { panic("boom") })
		})
		assert.Equal(t, 0, e.Depth())
	})

	t.Run("nested blocks", func(t *testing.T) {
		e := NewEmitter("test")
		err := e.WithIndent(func() error {
			e.Push("a")
			return e.WithIndent(func() error {
				e.Push("b")
				return nil
			})
		})
		require.NoError(t, err)
		assert.Equal(t, "  a\n    b", e.Content())
		assert.Equal(t, 0, e.Depth())
	})
}

// =============================================================================
// Banner Tests
// =============================================================================

func TestEmitterAddBanner(t *testing.T) {
	tests := []struct {
		kind OutputKind
		want string
	}{
		{KindElixir, "## **** GENERATED CODE! see cmd/surrealgen for details. ****"},
		{KindTypeScript, "// **** GENERATED CODE! see cmd/surrealgen for details. ****"},
		{KindYAML, "### GENERATED by cmd/surrealgen!"},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			e := NewEmitter("cmd/surrealgen")
			require.NoError(t, e.AddBanner(tt.kind))

			lines := e.Lines()
			require.Len(t, lines, 2)
			assert.Equal(t, tt.want, lines[0])
			assert.Contains(t, lines[0], e.Name())
			assert.Equal(t, "", lines[1])
		})
	}

	t.Run("unknown kind", func(t *testing.T) {
		e := NewEmitter("x")
		err := e.AddBanner(OutputKind(42))
		require.Error(t, err)
		assert.True(t, IsConfigError(err))
		assert.Equal(t, 0, e.Len())
	})
}

func TestEmitterContent(t *testing.T) {
	e := NewEmitter("x")
	assert.Equal(t, "", e.Content())

	e.Push("a")
	first := e.Content()
	e.Push("b")

	assert.Equal(t, "a", first)
	assert.Equal(t, "a\nb", e.Content())
}
