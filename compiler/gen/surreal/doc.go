// Package surreal composes the Surreal.Repo data-access module.
//
// The module body is one section per operation, grouped by family:
//
//	creation   create, insert          changeset(s), schema struct, module+id+data,
//	                                   module+data (create), thing+data
//	with-data  update, merge, patch    changeset(s), module+id+data,
//	                                   module+data (update), thing+data
//	with-id    select, delete          module+id, module, thing
//
// followed by the query section, the connection bootstrap and the admin
// helpers. Every generated clause takes the connection as its first
// argument; default_conn/0 returns the process-wide default connection.
package surreal
