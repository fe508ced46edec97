// Package stdlib models the globals an embedding environment provides to Lua
// code: functions with typed arguments, properties, nested tables, and named
// structs used for instance-like values.
//
// Libraries are plain data. They are decoded from TOML or YAML documents,
// inherit from a named base through Inflate, and are read concurrently by
// rules once loaded. Nothing here mutates a library after Inflate returns.
package stdlib
