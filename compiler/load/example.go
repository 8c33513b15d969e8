package load

// timestamps are appended to every table of the example payload.
func timestamps() []*Field {
	return []*Field{
		{Name: "created_at", Kind: Datetime()},
		{Name: "updated_at", Kind: Datetime()},
	}
}

func table(name string, fields ...*Field) *Table {
	return &Table{Name: name, Fields: append(fields, timestamps()...)}
}

// Example returns the built-in schema payload used when no schema file is
// configured.
func Example() *Schema {
	ecuType := Enum("telematic", "powertrain", "other")
	return &Schema{
		Tables: []*Table{
			table("user",
				&Field{Name: "id", PK: true, Kind: ULID()},
				&Field{Name: "email", Kind: Varchar(300)},
			),
			table("sprint",
				&Field{Name: "id", PK: true, Kind: ULID()},
				&Field{Name: "name", Kind: Varchar(50)},
			),
			table("ecu_unit",
				&Field{Name: "id", PK: true, Kind: Varchar(50)},
				&Field{Name: "type", PK: true, Kind: ecuType},
			),
			table("ecu_sw_block",
				&Field{Name: "id", PK: true, Kind: ULID()},
				&Field{Name: "ecu_unit_id", Kind: Varchar(50)},
				&Field{Name: "type", PK: true, Kind: ecuType},
			),
			table("sprint_upload",
				&Field{Name: "id", PK: true, Kind: ULID()},
				&Field{Name: "sprint_name", Kind: Varchar(50)},
				&Field{Name: "sprint_id", Kind: ULID()},
			),
		},
		Relations: []*Relation{
			Rel("ecu_sw_block.ecu_unit_id", "ecu_unit.id", Many2One, "A software block belongs to one ECU unit."),
			Rel("sprint_upload.sprint_id", "sprint.id", Many2One, "An upload is attached to the sprint it was made in."),
		},
	}
}
