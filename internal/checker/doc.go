// Package checker builds the enabled rule set from configuration and runs it
// over a tree, rewriting severities per rule variation.
package checker
