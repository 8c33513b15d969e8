// Package models generates Go structs, enum types and validators for the
// tables of a schema payload.
package models

import (
	"bytes"
	"fmt"
	"go/token"
	"log/slog"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/surrealgen/compiler/gen"
	"github.com/syssam/surrealgen/compiler/load"
)

// Generator renders the models file of a schema.
type Generator struct {
	name   string
	pkg    string
	schema *load.Schema
	logger *slog.Logger
}

// NewGenerator creates a generator printing name in its banner and emitting
// package pkg.
func NewGenerator(name, pkg string, schema *load.Schema, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{name: name, pkg: pkg, schema: schema, logger: logger}
}

// Run validates the schema and builds the file.
func (g *Generator) Run() (*jen.File, error) {
	g.logger.Info("run generator", "generator", g.name, "package", g.pkg, "tables", len(g.schema.Tables))
	if err := g.schema.Validate(); err != nil {
		return nil, gen.NewGenerationError("render", "", "invalid schema", err)
	}
	if err := checkIdentifiers(g.schema); err != nil {
		return nil, gen.NewGenerationError("render", "", "identifier collision", err)
	}
	f := jen.NewFile(g.pkg)
	f.HeaderComment(fmt.Sprintf("Code generated by %s. DO NOT EDIT.", g.name))

	names := make([]jen.Code, len(g.schema.Tables))
	for i, t := range g.schema.Tables {
		names[i] = jen.Lit(t.Name)
	}
	f.Comment("Tables lists every table of the schema in declaration order.")
	f.Var().Id("Tables").Op("=").Index().String().Values(names...)

	for _, t := range g.schema.Tables {
		for _, fd := range t.Fields {
			if fd.Kind.Kind == load.KindEnum {
				genEnum(f, t, fd)
			}
		}
		genStruct(f, g.schema, t)
	}
	return f, nil
}

// Generate renders the file.
func (g *Generator) Generate() ([]byte, error) {
	f, err := g.Run()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, gen.NewGenerationError("render", "", "render models", err)
	}
	return buf.Bytes(), nil
}

// methods are the generated methods of every row struct.
var methods = []string{"TableName", "PrimaryKey", "Validate"}

// idents records the source name each Go identifier was derived from.
type idents map[string]string

func (ids idents) add(id, from string) error {
	if !token.IsIdentifier(id) {
		return fmt.Errorf("%q maps to no Go identifier", from)
	}
	if prev, ok := ids[id]; ok {
		return fmt.Errorf("%q and %q both map to %s", prev, from, id)
	}
	ids[id] = from
	return nil
}

// checkIdentifiers rejects schemas whose names map to the same Go
// identifier, in the package scope or within one struct.
func checkIdentifiers(s *load.Schema) error {
	pkg := idents{"Tables": "Tables"}
	for _, t := range s.Tables {
		name := pascal(t.Name)
		if err := pkg.add(name, t.Name); err != nil {
			return &load.SchemaError{Table: t.Name, Message: err.Error()}
		}
		if err := pkg.add(plural(name), t.Name+" (list)"); err != nil {
			return &load.SchemaError{Table: t.Name, Message: err.Error()}
		}
		fields := make(idents, len(t.Fields)+len(methods))
		for _, m := range methods {
			fields[m] = m + " method"
		}
		for _, fd := range t.Fields {
			if err := fields.add(pascal(fd.Name), fd.Name); err != nil {
				return &load.SchemaError{Table: t.Name, Field: fd.Name, Message: err.Error()}
			}
			if fd.Kind.Kind != load.KindEnum {
				continue
			}
			enum := enumName(t, fd)
			from := t.Name + "." + fd.Name
			if err := pkg.add(enum, from); err != nil {
				return &load.SchemaError{Table: t.Name, Field: fd.Name, Message: err.Error()}
			}
			if err := pkg.add(enum+"Values", from+" values"); err != nil {
				return &load.SchemaError{Table: t.Name, Field: fd.Name, Message: err.Error()}
			}
			for _, v := range fd.Kind.Values {
				if err := pkg.add(enum+pascal(v), from+" value "+v); err != nil {
					return &load.SchemaError{Table: t.Name, Field: fd.Name, Message: err.Error()}
				}
			}
		}
	}
	return nil
}

func enumName(t *load.Table, fd *load.Field) string {
	return pascal(t.Name) + pascal(fd.Name)
}

// genEnum generates a string type with one constant per value.
func genEnum(f *jen.File, t *load.Table, fd *load.Field) {
	name := enumName(t, fd)
	f.Commentf("%s is the %s enum of the %s table.", name, fd.Name, t.Name)
	f.Type().Id(name).String()

	values := make([]jen.Code, len(fd.Kind.Values))
	f.Commentf("%s values.", name)
	f.Const().DefsFunc(func(defs *jen.Group) {
		for i, v := range fd.Kind.Values {
			id := name + pascal(v)
			values[i] = jen.Id(id)
			defs.Id(id).Id(name).Op("=").Lit(v)
		}
	})

	f.Commentf("%sValues returns every %s value.", name, name)
	f.Func().Id(name + "Values").Params().Index().Id(name).Block(
		jen.Return(jen.Index().Id(name).Values(values...)),
	)

	r := receiver(name)
	f.Commentf("IsValid reports whether %s is a declared %s.", r, name)
	f.Func().Params(jen.Id(r).Id(name)).Id("IsValid").Params().Bool().Block(
		jen.Switch(jen.Id(r)).Block(
			jen.Case(values...).Block(jen.Return(jen.True())),
		),
		jen.Return(jen.False()),
	)
}

// goType returns the Go type of a field.
func goType(t *load.Table, fd *load.Field) *jen.Statement {
	var typ *jen.Statement
	switch fd.Kind.Kind {
	case load.KindUUID:
		typ = jen.Qual("github.com/google/uuid", "UUID")
	case load.KindBoolean:
		typ = jen.Bool()
	case load.KindInt:
		typ = jen.Int32()
	case load.KindBigInt:
		typ = jen.Int64()
	case load.KindDatetime:
		typ = jen.Qual("time", "Time")
	case load.KindEnum:
		typ = jen.Id(enumName(t, fd))
	default:
		// ulid, varchar and decimal keep their textual form.
		typ = jen.String()
	}
	if fd.Optional {
		return jen.Op("*").Add(typ)
	}
	return typ
}

func structTag(fd *load.Field) map[string]string {
	if fd.Optional {
		return map[string]string{"json": fd.Name + ",omitempty"}
	}
	return map[string]string{"json": fd.Name}
}

// genStruct generates the row struct of a table and its methods.
func genStruct(f *jen.File, s *load.Schema, t *load.Table) {
	name := pascal(t.Name)
	refs := make(map[string]*load.Relation)
	for _, rel := range s.RelationsFrom(t.Name) {
		refs[rel.SrcField] = rel
	}

	if t.Note != "" {
		f.Comment(t.Note)
	} else {
		f.Commentf("%s is a row of the %s table.", name, t.Name)
	}
	f.Type().Id(name).StructFunc(func(group *jen.Group) {
		for _, fd := range t.Fields {
			if fd.Note != "" {
				group.Comment(fd.Note)
			}
			if rel, ok := refs[fd.Name]; ok {
				group.Commentf("%s references %s.%s (%s).", pascal(fd.Name), rel.DestTable, rel.DestField, rel.Kind)
				if rel.Note != "" {
					group.Comment(rel.Note)
				}
			}
			group.Id(pascal(fd.Name)).Add(goType(t, fd)).Tag(structTag(fd))
		}
	})

	r := receiver(name)
	f.Commentf("TableName returns the table of %s.", name)
	f.Func().Params(jen.Id(name)).Id("TableName").Params().String().Block(
		jen.Return(jen.Lit(t.Name)),
	)

	pk := t.PrimaryKey()
	pkNames := make([]jen.Code, len(pk))
	for i, fd := range pk {
		pkNames[i] = jen.Lit(fd.Name)
	}
	f.Commentf("PrimaryKey returns the primary-key columns of %s.", name)
	f.Func().Params(jen.Id(name)).Id("PrimaryKey").Params().Index().String().Block(
		jen.Return(jen.Index().String().Values(pkNames...)),
	)

	f.Commentf("Validate checks the length and enum constraints of %s.", name)
	f.Func().Params(jen.Id(r).Op("*").Id(name)).Id("Validate").Params().Error().BlockFunc(func(body *jen.Group) {
		for _, fd := range t.Fields {
			genCheck(body, r, t, fd)
		}
		body.Return(jen.Nil())
	})

	f.Commentf("%s is a list of %s rows.", plural(name), name)
	f.Type().Id(plural(name)).Index().Op("*").Id(name)
}

// genCheck adds the constraint check of one field, if any.
func genCheck(body *jen.Group, r string, t *load.Table, fd *load.Field) {
	value := jen.Id(r).Dot(pascal(fd.Name))
	if fd.Optional {
		value = jen.Op("*").Add(value)
	}
	var (
		cond *jen.Statement
		msg  string
	)
	switch fd.Kind.Kind {
	case load.KindVarchar:
		cond = jen.Qual("unicode/utf8", "RuneCountInString").Call(value).Op(">").Lit(fd.Kind.Size)
		msg = fmt.Sprintf("models: %s.%s exceeds %d characters", t.Name, fd.Name, fd.Kind.Size)
	case load.KindEnum:
		cond = jen.Op("!").Id(r).Dot(pascal(fd.Name)).Dot("IsValid").Call()
		msg = fmt.Sprintf("models: invalid %s.%s %%q", t.Name, fd.Name)
	default:
		return
	}
	if fd.Optional {
		cond = jen.Id(r).Dot(pascal(fd.Name)).Op("!=").Nil().Op("&&").Add(cond)
	}
	if fd.Kind.Kind == load.KindEnum {
		body.If(cond).Block(jen.Return(jen.Qual("fmt", "Errorf").Call(jen.Lit(msg), value)))
		return
	}
	body.If(cond).Block(jen.Return(jen.Qual("errors", "New").Call(jen.Lit(msg))))
}
