package gen

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ArgKind is the runtime shape a guard accepts for one parameter of a
// generated clause. Kinds form a containment tree:
//
//	Any
//	├── Map
//	│   └── Struct
//	│       └── Changeset
//	├── Binary
//	├── Atom
//	└── List
type ArgKind int

const (
	// ArgAny accepts every value (unguarded parameter).
	ArgAny ArgKind = iota
	// ArgMap accepts maps, structs included.
	ArgMap
	// ArgStruct accepts any struct.
	ArgStruct
	// ArgChangeset accepts a changeset struct.
	ArgChangeset
	// ArgBinary accepts strings.
	ArgBinary
	// ArgAtom accepts atoms, module names included.
	ArgAtom
	// ArgList accepts lists.
	ArgList
)

var argKindNames = [...]string{
	ArgAny:       "any",
	ArgMap:       "map",
	ArgStruct:    "struct",
	ArgChangeset: "changeset",
	ArgBinary:    "binary",
	ArgAtom:      "atom",
	ArgList:      "list",
}

// String returns the kind name.
func (k ArgKind) String() string {
	if k >= 0 && int(k) < len(argKindNames) {
		return argKindNames[k]
	}
	return fmt.Sprintf("ArgKind(%d)", int(k))
}

// parent returns the enclosing kind in the containment tree.
func (k ArgKind) parent() (ArgKind, bool) {
	switch k {
	case ArgChangeset:
		return ArgStruct, true
	case ArgStruct:
		return ArgMap, true
	case ArgMap, ArgBinary, ArgAtom, ArgList:
		return ArgAny, true
	default:
		return ArgAny, false
	}
}

// Contains reports whether every value accepted by o is accepted by k.
func (k ArgKind) Contains(o ArgKind) bool {
	for {
		if k == o {
			return true
		}
		p, ok := o.parent()
		if !ok {
			return false
		}
		o = p
	}
}

// Guard is the ordered list of parameter kinds a clause dispatches on. The
// leading connection parameter shared by all clauses is not part of it.
type Guard []ArgKind

// G is shorthand for building a Guard.
func G(kinds ...ArgKind) Guard {
	return Guard(kinds)
}

// Arity returns the number of guarded parameters.
func (g Guard) Arity() int {
	return len(g)
}

// Covers reports whether every argument list accepted by o is accepted by g.
func (g Guard) Covers(o Guard) bool {
	if len(g) != len(o) {
		return false
	}
	for i := range g {
		if !g[i].Contains(o[i]) {
			return false
		}
	}
	return true
}

// Overlaps reports whether some argument list is accepted by both guards.
func (g Guard) Overlaps(o Guard) bool {
	if len(g) != len(o) {
		return false
	}
	for i := range g {
		if !g[i].Contains(o[i]) && !o[i].Contains(g[i]) {
			return false
		}
	}
	return true
}

// String renders the guard as "(kind, kind)".
func (g Guard) String() string {
	parts := make([]string, len(g))
	for i, k := range g {
		parts[i] = k.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Shape tags the argument shape a clause handles.
type Shape string

// Argument shapes of the data-access clauses.
const (
	ShapeChangeset        Shape = "changeset"
	ShapeChangesetList    Shape = "changeset-list"
	ShapeSchemaStruct     Shape = "schema-struct"
	ShapeThing            Shape = "thing"
	ShapeThingMap         Shape = "thing+map"
	ShapeThingList        Shape = "thing+list"
	ShapeModule           Shape = "module"
	ShapeModuleID         Shape = "module+id"
	ShapeModuleIDData     Shape = "module+id+data"
	ShapeModuleMapCreate  Shape = "module+map/create"
	ShapeModuleListCreate Shape = "module+list/create"
	ShapeModuleMapUpdate  Shape = "module+map/update"
	ShapeModuleListUpdate Shape = "module+list/update"
)

// Argument shapes of the raw query clauses.
const (
	ShapeSQL           Shape = "sql"
	ShapeSQLVars       Shape = "sql+vars"
	ShapeModuleSQL     Shape = "module+sql"
	ShapeModuleSQLVars Shape = "module+sql+vars"
)

// clauseData is the template data of a clause.
type clauseData struct {
	Op string
}

// Upper returns s in upper case. A Caser keeps state, so each call gets
// its own.
func Upper(s string) string {
	return cases.Upper(language.Und).String(s)
}

// TemplateFuncs are the functions available to clause templates.
var TemplateFuncs = template.FuncMap{
	"upper": Upper,
}

// Clause is one argument-shape-guarded function clause. Its template is
// keyed only by the operation name ({{ .Op }}).
type Clause struct {
	Shape Shape
	Guard Guard
	tmpl  *template.Template
}

// NewClause parses text as the clause template. It panics on a malformed
// template; clause tables are static data.
func NewClause(shape Shape, guard Guard, text string) *Clause {
	return &Clause{
		Shape: shape,
		Guard: guard,
		tmpl:  template.Must(template.New(string(shape)).Funcs(TemplateFuncs).Parse(text)),
	}
}

// Render executes the clause template for op.
func (c *Clause) Render(op string) (string, error) {
	var buf bytes.Buffer
	if err := c.tmpl.Execute(&buf, clauseData{Op: op}); err != nil {
		return "", NewGenerationError("render", "", fmt.Sprintf("clause %s for %q", c.Shape, op), err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// Variation renders one or more related clauses of an operation. Rendering is
// pure: the same operation name always yields the same block.
type Variation struct {
	Name    string
	Clauses []*Clause
	// Spaced puts a blank line between the clauses.
	Spaced  bool
}

// NewVariation creates a variation from its clauses, in dispatch order.
func NewVariation(name string, clauses ...*Clause) *Variation {
	return &Variation{Name: name, Clauses: clauses}
}

// WithSpacing sets Spaced and returns v.
func (v *Variation) WithSpacing() *Variation {
	v.Spaced = true
	return v
}

// Render renders the clauses of the variation for op, one after another.
func (v *Variation) Render(op string) (string, error) {
	blocks := make([]string, 0, len(v.Clauses))
	for _, c := range v.Clauses {
		b, err := c.Render(op)
		if err != nil {
			return "", err
		}
		blocks = append(blocks, b)
	}
	if v.Spaced {
		return strings.Join(blocks, "\n\n"), nil
	}
	return strings.Join(blocks, "\n"), nil
}

// Family is a set of operation names sharing one ordered list of variations.
type Family struct {
	Name       string
	Operations []string
	Variations []*Variation
}

// NewFamily creates a family.
func NewFamily(name string, ops []string, variations ...*Variation) *Family {
	return &Family{Name: name, Operations: ops, Variations: variations}
}

// Clauses returns every clause of the family in declaration order.
func (f *Family) Clauses() []*Clause {
	var cs []*Clause
	for _, v := range f.Variations {
		cs = append(cs, v.Clauses...)
	}
	return cs
}

// Render returns the rendered variation blocks of op, in family order.
func (f *Family) Render(op string) ([]string, error) {
	blocks := make([]string, 0, len(f.Variations))
	for _, v := range f.Variations {
		b, err := v.Render(op)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
	return blocks, nil
}

// Validate checks the variation table of the family. Clauses are compared in
// declaration order, the order in which first-match dispatch tries them:
//
//   - an earlier guard covering a later one makes the later clause
//     unreachable;
//   - a partial overlap is ambiguous unless the earlier guard is strictly
//     narrower than the later one (specialization before the general case).
func (f *Family) Validate() error {
	if len(f.Variations) == 0 {
		return NewValidationError(f.Name, "", "", "family declares no variations")
	}
	type entry struct {
		variation string
		clause    *Clause
	}
	var entries []entry
	for _, v := range f.Variations {
		if len(v.Clauses) == 0 {
			return NewValidationError(f.Name, v.Name, "", "variation declares no clauses")
		}
		for _, c := range v.Clauses {
			entries = append(entries, entry{v.Name, c})
		}
	}
	for j, later := range entries {
		for _, earlier := range entries[:j] {
			eg, lg := earlier.clause.Guard, later.clause.Guard
			switch {
			case eg.Covers(lg):
				return NewValidationError(f.Name, later.variation, later.clause.Shape,
					fmt.Sprintf("guard %s is unreachable after %s %s", lg, earlier.clause.Shape, eg))
			case eg.Overlaps(lg) && !lg.Covers(eg):
				return NewValidationError(f.Name, later.variation, later.clause.Shape,
					fmt.Sprintf("guard %s is ambiguous with %s %s", lg, earlier.clause.Shape, eg))
			}
		}
	}
	seen := make(map[string]bool, len(f.Operations))
	for _, op := range f.Operations {
		if op == "" {
			return NewValidationError(f.Name, "", "", "empty operation name")
		}
		if seen[op] {
			return NewValidationError(f.Name, "", "", fmt.Sprintf("operation %q declared twice", op))
		}
		seen[op] = true
	}
	return nil
}

// ValidateFamilies validates every family and rejects an operation name
// declared by more than one family.
func ValidateFamilies(families ...*Family) error {
	owner := make(map[string]string)
	for _, f := range families {
		if err := f.Validate(); err != nil {
			return err
		}
		for _, op := range f.Operations {
			if prev, ok := owner[op]; ok {
				return NewValidationError(f.Name, "", "",
					fmt.Sprintf("operation %q already declared by family %s", op, prev))
			}
			owner[op] = f.Name
		}
	}
	return nil
}
