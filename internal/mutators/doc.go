// Package mutators owns the mutation capability catalog.
//
// Ownership boundary:
// - mutator identity and grouping
// - name resolution with dedupe-by-id, sort-by-id output
// - the built-in catalog and its composite groups
package mutators
