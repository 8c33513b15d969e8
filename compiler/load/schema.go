// Package load holds the declarative schema payload: tables, fields and
// relations, as static data or loaded from YAML.
package load

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidSchema indicates a schema definition error.
var ErrInvalidSchema = errors.New("surrealgen: invalid schema")

// SchemaError represents a schema definition error.
type SchemaError struct {
	Table   string // Table name
	Field   string // Field name (if applicable)
	Message string
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	var b strings.Builder
	b.WriteString("surrealgen: schema error")
	if e.Table != "" {
		b.WriteString(" on table ")
		b.WriteString(e.Table)
	}
	if e.Field != "" {
		b.WriteString(" field ")
		b.WriteString(e.Field)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Is reports whether the target matches the sentinel error for SchemaError.
func (e *SchemaError) Is(target error) bool {
	return target == ErrInvalidSchema
}

// Schema is the full payload: every table and the relations between them.
type Schema struct {
	Tables    []*Table    `yaml:"tables" json:"tables"`
	Relations []*Relation `yaml:"relations,omitempty" json:"relations,omitempty"`
}

// Table is one table definition.
type Table struct {
	Name   string   `yaml:"name" json:"name"`
	Note   string   `yaml:"note,omitempty" json:"note,omitempty"`
	Fields []*Field `yaml:"fields" json:"fields"`
}

// Field is one column of a table.
type Field struct {
	Name     string `yaml:"name" json:"name"`
	Note     string `yaml:"note,omitempty" json:"note,omitempty"`
	PK       bool   `yaml:"pk,omitempty" json:"pk,omitempty"`
	Optional bool   `yaml:"optional,omitempty" json:"optional,omitempty"`
	Kind     Column `yaml:"kind" json:"kind"`
}

// RelationKind is the cardinality of a relation, seen from its source.
type RelationKind string

// Relation kinds.
const (
	One2One  RelationKind = "one2one"
	One2Many RelationKind = "one2many"
	Many2One RelationKind = "many2one"
)

// Relation links a source field to a destination field.
type Relation struct {
	Note      string       `yaml:"note,omitempty" json:"note,omitempty"`
	SrcTable  string       `yaml:"src_table" json:"src_table"`
	SrcField  string       `yaml:"src_field" json:"src_field"`
	DestTable string       `yaml:"dest_table" json:"dest_table"`
	DestField string       `yaml:"dest_field" json:"dest_field"`
	Kind      RelationKind `yaml:"kind" json:"kind"`
}

// Rel builds a relation from "table.field" references.
func Rel(src, dest string, kind RelationKind, note string) *Relation {
	srcTable, srcField, _ := strings.Cut(src, ".")
	destTable, destField, _ := strings.Cut(dest, ".")
	return &Relation{
		Note:      note,
		SrcTable:  srcTable,
		SrcField:  srcField,
		DestTable: destTable,
		DestField: destField,
		Kind:      kind,
	}
}

// String returns the relation as "src.field -> dest.field (kind)".
func (r *Relation) String() string {
	return fmt.Sprintf("%s.%s -> %s.%s (%s)", r.SrcTable, r.SrcField, r.DestTable, r.DestField, r.Kind)
}

// Table returns the table with the given name.
func (s *Schema) Table(name string) (*Table, bool) {
	for _, t := range s.Tables {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// RelationsFrom returns the relations whose source is table.
func (s *Schema) RelationsFrom(table string) []*Relation {
	var rels []*Relation
	for _, r := range s.Relations {
		if r.SrcTable == table {
			rels = append(rels, r)
		}
	}
	return rels
}

// Field returns the field with the given name.
func (t *Table) Field(name string) (*Field, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// PrimaryKey returns the primary-key fields in declaration order.
func (t *Table) PrimaryKey() []*Field {
	var pk []*Field
	for _, f := range t.Fields {
		if f.PK {
			pk = append(pk, f)
		}
	}
	return pk
}

// Validate checks names, columns and relation endpoints. It reports every
// problem found.
func (s *Schema) Validate() error {
	var errs []error
	if len(s.Tables) == 0 {
		errs = append(errs, &SchemaError{Message: "schema declares no tables"})
	}
	tables := make(map[string]bool, len(s.Tables))
	for _, t := range s.Tables {
		switch {
		case t.Name == "":
			errs = append(errs, &SchemaError{Message: "table name cannot be empty"})
			continue
		case tables[t.Name]:
			errs = append(errs, &SchemaError{Table: t.Name, Message: "table declared twice"})
			continue
		}
		tables[t.Name] = true
		if len(t.Fields) == 0 {
			errs = append(errs, &SchemaError{Table: t.Name, Message: "table declares no fields"})
		}
		fields := make(map[string]bool, len(t.Fields))
		for _, f := range t.Fields {
			if f.Name == "" {
				errs = append(errs, &SchemaError{Table: t.Name, Message: "field name cannot be empty"})
				continue
			}
			if fields[f.Name] {
				errs = append(errs, &SchemaError{Table: t.Name, Field: f.Name, Message: "field declared twice"})
			}
			fields[f.Name] = true
			if err := f.Kind.Validate(); err != nil {
				errs = append(errs, &SchemaError{Table: t.Name, Field: f.Name, Message: err.Error()})
			}
			if f.PK && f.Optional {
				errs = append(errs, &SchemaError{Table: t.Name, Field: f.Name, Message: "primary key cannot be optional"})
			}
		}
	}
	for _, r := range s.Relations {
		switch r.Kind {
		case One2One, One2Many, Many2One:
		default:
			errs = append(errs, &SchemaError{Table: r.SrcTable, Field: r.SrcField, Message: fmt.Sprintf("unknown relation kind %q", r.Kind)})
		}
		for _, end := range [][2]string{{r.SrcTable, r.SrcField}, {r.DestTable, r.DestField}} {
			if err := s.checkRef(end[0], end[1]); err != nil {
				errs = append(errs, &SchemaError{Table: end[0], Field: end[1], Message: fmt.Sprintf("relation %s: %v", r, err)})
			}
		}
	}
	return errors.Join(errs...)
}

func (s *Schema) checkRef(table, field string) error {
	t, ok := s.Table(table)
	if !ok {
		return fmt.Errorf("unknown table %q", table)
	}
	if _, ok := t.Field(field); !ok {
		return fmt.Errorf("unknown field %q", field)
	}
	return nil
}

// Load reads a YAML (or JSON) schema payload and validates it.
func Load(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML (or JSON) schema payload and validates it. Unknown
// keys are rejected.
func Parse(data []byte) (*Schema, error) {
	s := &Schema{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// YAML encodes the schema as YAML.
func (s *Schema) YAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// JSON encodes the schema as indented JSON.
func (s *Schema) JSON() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}
