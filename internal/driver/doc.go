// Package driver finds Lua files, lints them in parallel and caches results
// on disk.
package driver
