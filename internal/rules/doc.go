// Package rules holds the lint rules run by the checker. Every rule is a
// pure function of a parsed tree and the shared read-only Context.
package rules
