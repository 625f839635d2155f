// Package tools provides reusable runtime helpers shared by
// coordinator modules.
//
// Ownership boundary:
// - command execution helpers for spawning worker processes
package tools
