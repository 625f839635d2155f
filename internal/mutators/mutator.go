package mutators

// Mutator is one opaque mutation capability the worker can apply.
// The ID is globally unique and is the sole key for deduplication and
// ordering. Mutators are immutable and shared read-only between every
// group that references them.
type Mutator struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// IDs projects mutators onto their identifiers, preserving order.
func IDs(list []Mutator) []string {
	out := make([]string, 0, len(list))
	for _, m := range list {
		out = append(out, m.ID)
	}
	return out
}
