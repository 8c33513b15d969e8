package gen

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// ArgKind / Guard Tests
// =============================================================================

func TestArgKindContains(t *testing.T) {
	tests := []struct {
		outer, inner ArgKind
		want         bool
	}{
		{ArgAny, ArgChangeset, true},
		{ArgMap, ArgStruct, true},
		{ArgMap, ArgChangeset, true},
		{ArgStruct, ArgChangeset, true},
		{ArgChangeset, ArgStruct, false},
		{ArgStruct, ArgMap, false},
		{ArgBinary, ArgBinary, true},
		{ArgBinary, ArgAtom, false},
		{ArgList, ArgMap, false},
		{ArgAtom, ArgAny, false},
	}

	for _, tt := range tests {
		t.Run(tt.outer.String()+"/"+tt.inner.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.outer.Contains(tt.inner))
		})
	}
}

func TestGuard(t *testing.T) {
	t.Run("covers requires same arity", func(t *testing.T) {
		assert.False(t, G(ArgAny).Covers(G(ArgAny, ArgAny)))
		assert.False(t, G(ArgAtom, ArgAny).Overlaps(G(ArgAtom)))
	})

	t.Run("covers is positional", func(t *testing.T) {
		assert.True(t, G(ArgAtom, ArgAny).Covers(G(ArgAtom, ArgMap)))
		assert.False(t, G(ArgAtom, ArgMap).Covers(G(ArgAtom, ArgAny)))
		assert.True(t, G(ArgAtom, ArgMap).Covers(G(ArgAtom, ArgMap)))
	})

	t.Run("overlaps when every position is nested", func(t *testing.T) {
		assert.True(t, G(ArgMap, ArgAny).Overlaps(G(ArgAny, ArgMap)))
		assert.False(t, G(ArgAtom, ArgMap).Overlaps(G(ArgAtom, ArgList)))
		assert.False(t, G(ArgBinary, ArgMap).Overlaps(G(ArgAtom, ArgMap)))
	})

	t.Run("string", func(t *testing.T) {
		assert.Equal(t, "(atom, any, map)", G(ArgAtom, ArgAny, ArgMap).String())
		assert.Equal(t, "()", G().String())
		assert.Equal(t, 3, G(ArgAtom, ArgAny, ArgMap).Arity())
	})
}

// =============================================================================
// Rendering Tests
// =============================================================================

func TestClauseRender(t *testing.T) {
	c := NewClause(ShapeThing, G(ArgBinary), "# {{ upper .Op }}\ndef {{ .Op }}(conn, thing) when is_binary(thing) do\nend\n")

	out, err := c.Render("select")

	require.NoError(t, err)
	assert.Equal(t, "# SELECT\ndef select(conn, thing) when is_binary(thing) do\nend", out)
}

func TestNewClausePanicsOnBadTemplate(t *testing.T) {
	assert.Panics(t, func() {
		NewClause(ShapeThing, G(ArgBinary), "{{ .Op ")
	})
}

func TestVariationRender(t *testing.T) {
	v := NewVariation("thing+data",
		NewClause(ShapeThingMap, G(ArgBinary, ArgMap), "map {{ .Op }}"),
		NewClause(ShapeThingList, G(ArgBinary, ArgList), "list {{ .Op }}"),
	)

	out, err := v.Render("merge")

	require.NoError(t, err)
	assert.Equal(t, "map merge\nlist merge", out)

	again, err := v.Render("merge")
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestVariationRenderSpaced(t *testing.T) {
	v := NewVariation("module+data",
		NewClause(ShapeModuleMapCreate, G(ArgAtom, ArgMap), "single {{ .Op }}\n"),
		NewClause(ShapeModuleListCreate, G(ArgAtom, ArgList), "list {{ .Op }}"),
	).WithSpacing()

	out, err := v.Render("insert")

	require.NoError(t, err)
	assert.True(t, v.Spaced)
	assert.Equal(t, "single insert\n\nlist insert", out)
}

func TestUpper(t *testing.T) {
	assert.Equal(t, "ADMIN API", Upper("Admin API"))
	assert.Equal(t, "CREATE", Upper("create"))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, "MERGE", Upper("merge"))
		}()
	}
	wg.Wait()
}

func TestFamilyRender(t *testing.T) {
	f := NewFamily("with-id", []string{"select", "delete"},
		NewVariation("module", NewClause(ShapeModule, G(ArgAtom), "a {{ .Op }}")),
		NewVariation("thing", NewClause(ShapeThing, G(ArgBinary), "b {{ .Op }}")),
	)

	blocks, err := f.Render("delete")

	require.NoError(t, err)
	assert.Equal(t, []string{"a delete", "b delete"}, blocks)
	assert.Len(t, f.Clauses(), 2)
	assert.Equal(t, ShapeThing, f.Clauses()[1].Shape)
}

// =============================================================================
// Validation Tests
// =============================================================================

func TestFamilyValidate(t *testing.T) {
	clause := func(shape Shape, g Guard) *Clause {
		return NewClause(shape, g, "{{ .Op }}")
	}

	t.Run("accepts specialization before the general case", func(t *testing.T) {
		f := NewFamily("creation", []string{"create"},
			NewVariation("changeset", clause(ShapeChangeset, G(ArgChangeset)), clause(ShapeChangesetList, G(ArgList))),
			NewVariation("schema", clause(ShapeSchemaStruct, G(ArgStruct))),
		)
		assert.NoError(t, f.Validate())
	})

	t.Run("accepts empty operation list", func(t *testing.T) {
		f := NewFamily("creation", nil, NewVariation("thing", clause(ShapeThing, G(ArgBinary))))
		assert.NoError(t, f.Validate())
	})

	t.Run("rejects family without variations", func(t *testing.T) {
		err := NewFamily("creation", []string{"create"}).Validate()
		require.Error(t, err)
		assert.True(t, IsValidationError(err))
	})

	t.Run("rejects variation without clauses", func(t *testing.T) {
		err := NewFamily("creation", []string{"create"}, NewVariation("empty")).Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidationFailed)
		assert.Contains(t, err.Error(), "variation empty")
	})

	t.Run("rejects identical guards", func(t *testing.T) {
		f := NewFamily("with-id", []string{"select"},
			NewVariation("module", clause(ShapeModule, G(ArgAtom))),
			NewVariation("other", clause(ShapeModule, G(ArgAtom))),
		)
		err := f.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unreachable")
		assert.Contains(t, err.Error(), "variation other")
	})

	t.Run("rejects narrower guard after a broader one", func(t *testing.T) {
		f := NewFamily("creation", []string{"create"},
			NewVariation("schema", clause(ShapeSchemaStruct, G(ArgStruct))),
			NewVariation("changeset", clause(ShapeChangeset, G(ArgChangeset))),
		)
		err := f.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unreachable")
	})

	t.Run("rejects partial overlap", func(t *testing.T) {
		f := NewFamily("x", []string{"x"},
			NewVariation("a", clause(ShapeThingMap, G(ArgMap, ArgAny))),
			NewVariation("b", clause(ShapeModuleMapUpdate, G(ArgAny, ArgMap))),
		)
		err := f.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ambiguous")
	})

	t.Run("rejects duplicate operation", func(t *testing.T) {
		f := NewFamily("with-id", []string{"select", "select"},
			NewVariation("thing", clause(ShapeThing, G(ArgBinary))),
		)
		assert.Error(t, f.Validate())
	})

	t.Run("rejects empty operation name", func(t *testing.T) {
		f := NewFamily("with-id", []string{""},
			NewVariation("thing", clause(ShapeThing, G(ArgBinary))),
		)
		assert.Error(t, f.Validate())
	})
}

func TestValidateFamilies(t *testing.T) {
	thing := NewVariation("thing", NewClause(ShapeThing, G(ArgBinary), "{{ .Op }}"))

	t.Run("disjoint operations", func(t *testing.T) {
		err := ValidateFamilies(
			NewFamily("a", []string{"select"}, thing),
			NewFamily("b", []string{"delete"}, thing),
		)
		assert.NoError(t, err)
	})

	t.Run("operation in two families", func(t *testing.T) {
		err := ValidateFamilies(
			NewFamily("a", []string{"select"}, thing),
			NewFamily("b", []string{"select"}, thing),
		)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already declared by family a")
	})

	t.Run("propagates family errors", func(t *testing.T) {
		err := ValidateFamilies(NewFamily("a", []string{"select"}))
		assert.True(t, IsValidationError(err))
	})
}
