// Package coordinator drives mutation analysis runs end to end.
//
// Ownership boundary:
//   - resolving configured mutator names against the registry
//   - launching worker sessions and supervising respawn attempts
//   - recording run outcomes and serving the ops HTTP surface
//
// The wire contract itself belongs to internal/protocol and
// internal/worker; this package only orchestrates them.
package coordinator
