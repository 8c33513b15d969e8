package surreal

// queryPrelude precedes the query clauses. The query section is the first
// user of Logger in the module body.
const queryPrelude = `require Logger`

// frontStatic is the connection bootstrap and the query-struct API.
const frontStatic = `alias Surreal.Config
alias Surreal.Rec
alias Surreal.Res

@default_conn [0, 0]

def start_link([]) do
  init()
end

def init() do
  with {:ok, pid} <- Surreal.Conn.get_pid(@default_conn, init_opts()) do
    Surrealix.wait_until_auth_ready(pid)
    {:ok, pid}
  end
end

defp init_opts do
  [
    hostname: Config.host(),
    port: Config.port(),
    on_auth: fn pid, _state ->
      Logger.debug("surreal auth: #{inspect(pid)}")
      Surrealix.signin(pid, %{user: Config.user(), pass: Config.pass()})
      Surrealix.use(pid, Config.ns(), Config.db())
    end
  ]
end

### API ###

def as(res, struct_module) do
  Res.as(res, struct_module)
end

def live_query(conn, sql, vars \\ %{}, callback) do
  Surrealix.live_query(conn, sql, vars, callback)
end

###
### QUERY STRUCT
###
alias Surreal.Query

def all(conn, %Query{} = q) do
  {sql, vars} = Query.to_raw_sql(q)

  # unwraps nested response from SurrealDB without raising on errors
  query(conn, sql, vars)
  |> Surreal.Result.from_raw_query()
  |> Maxo.Result.map(&Enum.at(&1, 0))
  |> Maxo.Result.flatten()
end

def all!(conn, %Query{} = q) do
  all(conn, q) |> Maxo.Result.unwrap!()
end

def one!(conn, %Query{} = q) do
  all!(conn, q) |> Enum.at(0)
end`

// adminHelpers resolves the default connection and bridges modules,
// changesets and structs to the wire format.
const adminHelpers = `def default_conn do
  Surreal.Conn.get_pid(@default_conn) |> Res.ok()
end

defp to_thing(module) do
  extract_table_name(module)
end

defp to_thing(module, id) do
  Rec.recid(extract_table_name(module), id)
end

defp extract_table_name(module) do
  # the module may not be loaded yet
  Code.ensure_compiled(module)

  cond do
    has_function(module, :__table__, 0) -> module.__table__()
    has_function(module, :__schema__, 1) -> module.__schema__(:source)
    true -> raise "NOT POSSIBLE TO MAP #{module}"
  end
end

defp module_data_from_changeset(changesets) when is_list(changesets) and length(changesets) > 0 do
  module = Surreal.Dumper.module_from_changeset!(:insert, Enum.at(changesets, 0))
  data_list = Enum.map(changesets, &get_data_chset/1)
  {module, data_list}
end

defp module_data_from_changeset(changeset) do
  module = Surreal.Dumper.module_from_changeset!(:insert, changeset)
  data = get_data_chset(changeset)
  {module, data}
end

def struct_to_changeset(struct) do
  schema = struct.__struct__
  fullchanges = Map.take(struct, schema.__schema__(:fields))
  Ecto.Changeset.change(struct(schema), fullchanges)
end

def get_data_chset(chset) do
  {:ok, data} = Surreal.Dumper.from_changeset(chset)
  Enum.into(data, %{})
end

defp has_function(mod, fun, arity) do
  Kernel.function_exported?(mod, fun, arity)
end`
