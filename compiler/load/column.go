package load

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ColumnKind is the storage kind of a field.
type ColumnKind string

// Column kinds.
const (
	KindUUID     ColumnKind = "uuid"
	KindULID     ColumnKind = "ulid"
	KindBoolean  ColumnKind = "boolean"
	KindInt      ColumnKind = "int"
	KindBigInt   ColumnKind = "bigint"
	KindDatetime ColumnKind = "datetime"
	KindVarchar  ColumnKind = "varchar"
	KindDecimal  ColumnKind = "decimal"
	KindEnum     ColumnKind = "enum"
)

// Parametric reports whether the kind carries parameters.
func (k ColumnKind) Parametric() bool {
	return k == KindVarchar || k == KindDecimal || k == KindEnum
}

func (k ColumnKind) valid() bool {
	switch k {
	case KindUUID, KindULID, KindBoolean, KindInt, KindBigInt, KindDatetime,
		KindVarchar, KindDecimal, KindEnum:
		return true
	}
	return false
}

// Column describes the kind of a field. Parameters are set for the
// parametric kinds only.
//
// In YAML a plain kind is a scalar and a parametric kind is a sequence:
//
//	kind: ulid
//	kind: [varchar, 50]
//	kind: [decimal, 10, 2]
//	kind: [enum, [telematic, powertrain, other]]
//
// The mapping form {kind: varchar, size: 50} is accepted as well.
type Column struct {
	Kind      ColumnKind
	Size      int      // varchar
	Precision int      // decimal
	Scale     int      // decimal
	Values    []string // enum
}

// UUID returns a uuid column.
func UUID() Column { return Column{Kind: KindUUID} }

// ULID returns a ulid column.
func ULID() Column { return Column{Kind: KindULID} }

// Boolean returns a boolean column.
func Boolean() Column { return Column{Kind: KindBoolean} }

// Int returns an int column.
func Int() Column { return Column{Kind: KindInt} }

// BigInt returns a bigint column.
func BigInt() Column { return Column{Kind: KindBigInt} }

// Datetime returns a datetime column.
func Datetime() Column { return Column{Kind: KindDatetime} }

// Varchar returns a varchar column of the given size.
func Varchar(size int) Column { return Column{Kind: KindVarchar, Size: size} }

// Decimal returns a decimal column.
func Decimal(precision, scale int) Column {
	return Column{Kind: KindDecimal, Precision: precision, Scale: scale}
}

// Enum returns an enum column.
func Enum(values ...string) Column { return Column{Kind: KindEnum, Values: values} }

// Validate checks the kind and its parameters.
func (c Column) Validate() error {
	switch {
	case !c.Kind.valid():
		return fmt.Errorf("unknown column kind %q", c.Kind)
	case c.Kind == KindVarchar && c.Size <= 0:
		return fmt.Errorf("varchar size must be positive, got %d", c.Size)
	case c.Kind == KindDecimal && (c.Precision <= 0 || c.Scale < 0 || c.Scale > c.Precision):
		return fmt.Errorf("invalid decimal(%d, %d)", c.Precision, c.Scale)
	case c.Kind == KindEnum && len(c.Values) == 0:
		return fmt.Errorf("enum requires at least one value")
	case c.Kind == KindEnum:
		seen := make(map[string]bool, len(c.Values))
		for _, v := range c.Values {
			if v == "" || seen[v] {
				return fmt.Errorf("enum value %q is empty or duplicated", v)
			}
			seen[v] = true
		}
	}
	return nil
}

// String returns the SQL-like notation of the column.
func (c Column) String() string {
	switch c.Kind {
	case KindVarchar:
		return fmt.Sprintf("varchar(%d)", c.Size)
	case KindDecimal:
		return fmt.Sprintf("decimal(%d,%d)", c.Precision, c.Scale)
	case KindEnum:
		return "enum(" + strings.Join(c.Values, ",") + ")"
	default:
		return string(c.Kind)
	}
}

// value returns the scalar or tuple form of the column.
func (c Column) value() any {
	switch c.Kind {
	case KindVarchar:
		return []any{c.Kind, c.Size}
	case KindDecimal:
		return []any{c.Kind, c.Precision, c.Scale}
	case KindEnum:
		return []any{c.Kind, c.Values}
	default:
		return c.Kind
	}
}

// MarshalYAML implements yaml.Marshaler.
func (c Column) MarshalYAML() (any, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if !c.Kind.Parametric() {
		return string(c.Kind), nil
	}
	// Tuples are written inline, as in [varchar, 50].
	node := &yaml.Node{}
	if err := node.Encode(c.value()); err != nil {
		return nil, err
	}
	node.Style = yaml.FlowStyle
	return node, nil
}

// MarshalJSON implements json.Marshaler.
func (c Column) MarshalJSON() ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(c.value())
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Column) UnmarshalYAML(node *yaml.Node) error {
	var col Column
	switch node.Kind {
	case yaml.ScalarNode:
		if err := node.Decode(&col.Kind); err != nil {
			return err
		}
	case yaml.SequenceNode:
		if len(node.Content) == 0 {
			return fmt.Errorf("line %d: empty column tuple", node.Line)
		}
		if err := node.Content[0].Decode(&col.Kind); err != nil {
			return err
		}
		if err := col.decodeParams(node.Content[1:]); err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
	case yaml.MappingNode:
		var m struct {
			Kind      ColumnKind `yaml:"kind"`
			Size      int        `yaml:"size"`
			Precision int        `yaml:"precision"`
			Decimal   int        `yaml:"decimal"`
			Values    []string   `yaml:"values"`
		}
		if err := node.Decode(&m); err != nil {
			return err
		}
		col = Column{Kind: m.Kind, Size: m.Size, Precision: m.Precision, Scale: m.Decimal, Values: m.Values}
	default:
		return fmt.Errorf("line %d: unexpected column node", node.Line)
	}
	if err := col.Validate(); err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*c = col
	return nil
}

func (c *Column) decodeParams(params []*yaml.Node) error {
	want := map[ColumnKind]int{KindVarchar: 1, KindDecimal: 2, KindEnum: 1}[c.Kind]
	if len(params) != want {
		return fmt.Errorf("%s takes %d parameter(s), got %d", c.Kind, want, len(params))
	}
	switch c.Kind {
	case KindVarchar:
		return params[0].Decode(&c.Size)
	case KindDecimal:
		if err := params[0].Decode(&c.Precision); err != nil {
			return err
		}
		return params[1].Decode(&c.Scale)
	case KindEnum:
		return params[0].Decode(&c.Values)
	}
	return nil
}
