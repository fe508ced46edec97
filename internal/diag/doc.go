// Package diag defines the diagnostic model shared by the parser adapter,
// the rules and the reporting layer.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Code – stable string identifier (see codes.go), e.g. "unscoped_variables".
//   - Message – human oriented text; keep it short and actionable.
//   - Severity – Allow, Warning or Error. Rules leave it unset; the checker
//     stamps the effective severity after applying configuration overrides.
//   - Primary – the Label pointing at the issue. Label spans are half-open byte
//     ranges taken straight from tree nodes, never recomputed from line/column.
//   - Secondary – extra labels ("previously defined here").
//   - Notes – free-form hints printed under the snippet.
//   - Fixes – optional machine-applicable edits consumed by internal/fix.
//
// Package diag does not render anything beyond the one-line short form used
// by quiet output and tests; rich and JSON rendering live in internal/diagfmt.
package diag
