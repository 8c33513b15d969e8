package models

import (
	"go/parser"
	"go/token"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/surrealgen/compiler/gen"
	"github.com/syssam/surrealgen/compiler/load"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPascal(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"user", "User"},
		{"ecu_sw_block", "ECUSwBlock"},
		{"ecu_unit_id", "ECUUnitID"},
		{"sprint_upload", "SprintUpload"},
		{"created_at", "CreatedAt"},
		{"api_url", "APIURL"},
		{"full-admin", "FullAdmin"},
		{"power train", "PowerTrain"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, pascal(tt.input))
		})
	}
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "Users", plural("User"))
	assert.Equal(t, "SprintUploads", plural("SprintUpload"))
	assert.Equal(t, "ECUUnits", plural("ECUUnit"))
}

func generate(t *testing.T, s *load.Schema) string {
	t.Helper()
	out, err := NewGenerator("cmd/surrealgen", "models", s, discard()).Generate()
	require.NoError(t, err)
	_, err = parser.ParseFile(token.NewFileSet(), "models.go", out, parser.AllErrors)
	require.NoError(t, err, string(out))
	return string(out)
}

func TestGenerateExample(t *testing.T) {
	out := generate(t, load.Example())

	assert.True(t, strings.HasPrefix(out, "// Code generated by cmd/surrealgen. DO NOT EDIT.\n\npackage models\n"))
	assert.Contains(t, out, `var Tables = []string{"user", "sprint", "ecu_unit", "ecu_sw_block", "sprint_upload"}`)

	t.Run("structs", func(t *testing.T) {
		assert.Contains(t, out, "type ECUSwBlock struct {")
		assert.Regexp(t, "ECUUnitID string +`json:\"ecu_unit_id\"`", out)
		assert.Regexp(t, "CreatedAt +time.Time +`json:\"created_at\"`", out)
		assert.Contains(t, out, "type SprintUploads []*SprintUpload")
		assert.Contains(t, out, "func (User) TableName() string {\n\treturn \"user\"\n}")
	})

	t.Run("enums", func(t *testing.T) {
		assert.Contains(t, out, "type ECUUnitType string")
		assert.Contains(t, out, `ECUUnitTypePowertrain ECUUnitType = "powertrain"`)
		assert.Contains(t, out, "func (e ECUUnitType) IsValid() bool {")
		assert.Contains(t, out, "type ECUSwBlockType string")
	})

	t.Run("primary keys", func(t *testing.T) {
		assert.Contains(t, out, "func (ECUUnit) PrimaryKey() []string {\n\treturn []string{\"id\", \"type\"}\n}")
	})

	t.Run("relations", func(t *testing.T) {
		assert.Regexp(t, `// SprintID references sprint.id \(many2one\).\n\t// An upload is attached to the sprint it was made in.\n\tSprintID +string`, out)
	})

	t.Run("validators", func(t *testing.T) {
		assert.Contains(t, out, `utf8.RuneCountInString(u.Email) > 300`)
		assert.Contains(t, out, `if !e.Type.IsValid() {`)
		assert.Contains(t, out, `"models: invalid ecu_unit.type %q"`)
	})
}

func TestGenerateOptionalFields(t *testing.T) {
	s := &load.Schema{Tables: []*load.Table{{
		Name: "device",
		Note: "Device is a registered unit.",
		Fields: []*load.Field{
			{Name: "id", PK: true, Kind: load.UUID()},
			{Name: "label", Optional: true, Kind: load.Varchar(80), Note: "Label is shown in the UI."},
			{Name: "mode", Optional: true, Kind: load.Enum("on", "off")},
			{Name: "price", Kind: load.Decimal(10, 2)},
			{Name: "active", Kind: load.Boolean()},
			{Name: "count", Kind: load.BigInt()},
		},
	}}}

	out := generate(t, s)

	assert.Contains(t, out, "// Device is a registered unit.\ntype Device struct {")
	assert.Contains(t, out, `"github.com/google/uuid"`)
	assert.Regexp(t, `ID +uuid\.UUID`, out)
	assert.Contains(t, out, "// Label is shown in the UI.")
	assert.Regexp(t, `Label +\*string`, out)
	assert.Contains(t, out, "`json:\"label,omitempty\"`")
	assert.Regexp(t, `Mode +\*DeviceMode`, out)
	assert.Contains(t, out, "d.Label != nil && utf8.RuneCountInString(*d.Label) > 80")
	assert.Contains(t, out, "d.Mode != nil && !d.Mode.IsValid()")
	assert.Regexp(t, `Price +string`, out)
	assert.Regexp(t, `Active +bool`, out)
	assert.Regexp(t, `Count +int64`, out)
}

func TestGenerateInvalidSchema(t *testing.T) {
	s := load.Example()
	s.Relations[0].DestTable = "missing"

	_, err := NewGenerator("x", "models", s, discard()).Generate()

	require.Error(t, err)
	assert.True(t, gen.IsGenerationError(err))
	assert.ErrorIs(t, err, load.ErrInvalidSchema)
}

func TestGenerateIdentifierCollision(t *testing.T) {
	task := func(fields ...*load.Field) *load.Schema {
		return &load.Schema{Tables: []*load.Table{{
			Name:   "task",
			Fields: append([]*load.Field{{Name: "id", PK: true, Kind: load.UUID()}}, fields...),
		}}}
	}
	tests := []struct {
		name    string
		schema  *load.Schema
		message string
	}{
		{
			name:    "fields",
			schema:  task(&load.Field{Name: "created_at", Kind: load.Datetime()}, &load.Field{Name: "createdAt", Kind: load.Datetime()}),
			message: `"created_at" and "createdAt" both map to CreatedAt`,
		},
		{
			name:    "enum values",
			schema:  task(&load.Field{Name: "state", Kind: load.Enum("in-progress", "in_progress")}),
			message: "both map to TaskStateInProgress",
		},
		{
			name:    "method",
			schema:  task(&load.Field{Name: "validate", Kind: load.Boolean()}),
			message: "both map to Validate",
		},
		{
			name: "tables",
			schema: &load.Schema{Tables: []*load.Table{
				{Name: "user", Fields: []*load.Field{{Name: "id", Kind: load.UUID()}}},
				{Name: "users", Fields: []*load.Field{{Name: "id", Kind: load.UUID()}}},
			}},
			message: "both map to Users",
		},
		{
			name:    "no identifier",
			schema:  task(&load.Field{Name: "9lives", Kind: load.Boolean()}),
			message: `"9lives" maps to no Go identifier`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.schema.Validate())

			out, err := NewGenerator("x", "models", tt.schema, discard()).Generate()

			require.Error(t, err)
			assert.Nil(t, out)
			assert.True(t, gen.IsGenerationError(err))
			assert.ErrorIs(t, err, load.ErrInvalidSchema)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestArtifact(t *testing.T) {
	cfg := gen.MustNewConfig(gen.WithGenerator("tools/models"))
	a := NewArtifact(cfg, discard())

	assert.Equal(t, "models", a.Name())
	assert.Equal(t, gen.DefaultModelsPath, a.Path())

	first, err := a.Generate()
	require.NoError(t, err)
	second, err := a.Generate()
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Contains(t, string(first), "Code generated by tools/models. DO NOT EDIT.")
}

func TestArtifactSchemaFile(t *testing.T) {
	root := t.TempDir()
	schema := `
tables:
  - name: gadget
    fields:
      - {name: id, pk: true, kind: int}
`
	require.NoError(t, os.WriteFile(filepath.Join(root, "schema.yaml"), []byte(schema), 0o644))
	cfg := gen.MustNewConfig(gen.WithRoot(root), gen.WithModelsSchema("schema.yaml"))

	out, err := NewArtifact(cfg, discard()).Generate()

	require.NoError(t, err)
	assert.Contains(t, string(out), "type Gadget struct")
	assert.Contains(t, string(out), "ID int32")

	t.Run("missing file", func(t *testing.T) {
		cfg := gen.MustNewConfig(gen.WithRoot(root), gen.WithModelsSchema("nope.yaml"))
		_, err := NewArtifact(cfg, discard()).Generate()
		require.Error(t, err)
		assert.True(t, gen.IsGenerationError(err))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestSchemaArtifact(t *testing.T) {
	cfg := gen.MustNewConfig()
	a := NewSchemaArtifact(cfg, discard())

	assert.Equal(t, "schema", a.Name())
	assert.Equal(t, gen.DefaultSchemaDump, a.Path())

	out, err := a.Generate()

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "### GENERATED by cmd/surrealgen!\n\ntables:\n"))
	s, err := load.Parse(out)
	require.NoError(t, err)
	assert.Equal(t, load.Example(), s)
}
