package surreal

import "github.com/syssam/surrealgen/compiler/gen"

// Every clause takes the connection handle as its first parameter. The
// connection is never guarded, so guards list the remaining parameters only.

var variationChangeset = gen.NewVariation("changeset",
	gen.NewClause(gen.ShapeChangeset, gen.G(gen.ArgChangeset), `# with changeset
def {{ .Op }}(conn, %Ecto.Changeset{} = changeset) do
  {module, data} = module_data_from_changeset(changeset)
  {{ .Op }}(conn, module, data)
end`),
	gen.NewClause(gen.ShapeChangesetList, gen.G(gen.ArgList), `# with list of changesets
def {{ .Op }}(conn, changesets) when is_list(changesets) do
  {module, data} = module_data_from_changeset(changesets)
  {{ .Op }}(conn, to_thing(module), data) |> as(module)
end`),
)

var variationSchema = gen.NewVariation("schema",
	gen.NewClause(gen.ShapeSchemaStruct, gen.G(gen.ArgStruct), `# with ecto schema
def {{ .Op }}(conn, struct) when is_struct(struct) do
  {{ .Op }}(conn, struct_to_changeset(struct))
end`),
)

var variationThing = gen.NewVariation("thing",
	gen.NewClause(gen.ShapeThing, gen.G(gen.ArgBinary), `# with binary id
def {{ .Op }}(conn, thing) when is_binary(thing) do
  Surrealix.{{ .Op }}(conn, thing)
end`),
)

var variationThingData = gen.NewVariation("thing+data",
	gen.NewClause(gen.ShapeThingMap, gen.G(gen.ArgBinary, gen.ArgMap), `# with binary id / data (map)
def {{ .Op }}(conn, thing, data) when is_binary(thing) and is_map(data) do
  Surrealix.{{ .Op }}(conn, thing, data)
end`),
	gen.NewClause(gen.ShapeThingList, gen.G(gen.ArgBinary, gen.ArgList), `# with binary id / data (list)
def {{ .Op }}(conn, thing, data) when is_binary(thing) and is_list(data) do
  Surrealix.{{ .Op }}(conn, thing, data)
end`),
)

var variationModule = gen.NewVariation("module",
	gen.NewClause(gen.ShapeModule, gen.G(gen.ArgAtom), `# with module
def {{ .Op }}(conn, module) when is_atom(module) do
  {{ .Op }}(conn, to_thing(module)) |> as(module)
end`),
)

var variationModuleID = gen.NewVariation("module+id",
	gen.NewClause(gen.ShapeModuleID, gen.G(gen.ArgAtom, gen.ArgAny), `# with module / id
def {{ .Op }}(conn, module, id) when is_atom(module) do
  {{ .Op }}(conn, to_thing(module, id)) |> as(module)
end`),
)

var variationModuleIDData = gen.NewVariation("module+id+data",
	gen.NewClause(gen.ShapeModuleIDData, gen.G(gen.ArgAtom, gen.ArgAny, gen.ArgAny), `# with module / id / data
def {{ .Op }}(conn, module, id, data) when is_atom(module) do
  {{ .Op }}(conn, to_thing(module, id), data) |> as(module)
end`),
)

// Create and insert answer a single map with a one-element list.
var variationModuleDataCreation = gen.NewVariation("module+data/create",
	gen.NewClause(gen.ShapeModuleMapCreate, gen.G(gen.ArgAtom, gen.ArgMap), `# with module / data (create / insert) - single
def {{ .Op }}(conn, module, data) when is_atom(module) and is_map(data) do
  # For some reason we get an array, extract the first element
  {{ .Op }}(conn, to_thing(module), data) |> Surreal.Res.first() |> as(module)
end`),
	gen.NewClause(gen.ShapeModuleListCreate, gen.G(gen.ArgAtom, gen.ArgList), `# with module / data (create / insert) - list
def {{ .Op }}(conn, module, data) when is_atom(module) and is_list(data) do
  {{ .Op }}(conn, to_thing(module), data) |> as(module)
end`),
).WithSpacing()

var variationModuleDataUpdate = gen.NewVariation("module+data/update",
	gen.NewClause(gen.ShapeModuleMapUpdate, gen.G(gen.ArgAtom, gen.ArgMap), `# with module / data (updates / changes) (map)
def {{ .Op }}(conn, module, data) when is_atom(module) and is_map(data) do
  {{ .Op }}(conn, to_thing(module), data) |> as(module)
end`),
	gen.NewClause(gen.ShapeModuleListUpdate, gen.G(gen.ArgAtom, gen.ArgList), `# with module / data (updates / changes) (list)
def {{ .Op }}(conn, module, data) when is_atom(module) and is_list(data) do
  {{ .Op }}(conn, to_thing(module), data) |> as(module)
end`),
)

// The query family is fixed; its clauses dispatch on raw SQL.
var queryVariations = []*gen.Variation{
	gen.NewVariation("sql",
		gen.NewClause(gen.ShapeSQL, gen.G(gen.ArgBinary), `def {{ .Op }}(conn, sql) when is_binary(sql) do
  {{ .Op }}(conn, sql, %{})
end`),
	),
	gen.NewVariation("sql+vars",
		gen.NewClause(gen.ShapeSQLVars, gen.G(gen.ArgBinary, gen.ArgMap), `def {{ .Op }}(conn, sql, vars) when is_binary(sql) and is_map(vars) do
  Logger.info("SQL: #{inspect(sql)}, #{inspect(vars)}")
  Surrealix.{{ .Op }}(conn, sql, vars)
end`),
	),
	gen.NewVariation("module+sql",
		gen.NewClause(gen.ShapeModuleSQL, gen.G(gen.ArgAtom, gen.ArgBinary), `def {{ .Op }}(conn, module, sql) when is_atom(module) and is_binary(sql) do
  {{ .Op }}(conn, module, sql, %{})
end`),
	),
	gen.NewVariation("module+sql+vars",
		gen.NewClause(gen.ShapeModuleSQLVars, gen.G(gen.ArgAtom, gen.ArgBinary, gen.ArgMap), `def {{ .Op }}(conn, module, sql, vars) when is_atom(module) and is_binary(sql) and is_map(vars) do
  {{ .Op }}(conn, sql, vars) |> Surreal.Res.first() |> as(module)
end`),
	),
}
