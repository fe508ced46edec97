// Package trace records spans of a lint run: the driver phases, every file
// and, at debug level, every rule pass.
//
// Enable it from the command line:
//
//	moonlint check --trace=- --trace-level=file src
//
// A Stream tracer writes events as they happen (text or NDJSON), a Ring
// tracer keeps the last events in memory for a crash dump, Multi combines
// both. Nop costs nothing and is what every component gets by default.
//
//	span := trace.Begin(t, trace.ScopePhase, "check", 0)
//	defer span.End("")
package trace
