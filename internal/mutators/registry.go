package mutators

import (
	"errors"
	"fmt"
	"sort"
)

var ErrUnknownMutator = errors.New("mutators: unknown mutator")

// Registry maps entry names to ordered mutator sequences. Entries are
// added once at construction and never removed; reads need no locking.
type Registry struct {
	entries map[string][]Mutator
	order   []string
}

// NewEmptyRegistry creates a registry with no entries. Production code
// uses NewRegistry; fixtures build their own catalog with Add/AddGroup.
func NewEmptyRegistry() *Registry {
	return &Registry{entries: make(map[string][]Mutator)}
}

// Add registers a single-mutator entry. Registering a name twice is a
// construction-time programming error and panics.
func (r *Registry) Add(name string, m Mutator) {
	r.AddGroup(name, []Mutator{m})
}

// AddGroup registers a named mutator sequence. Registering a name twice
// is a construction-time programming error and panics.
func (r *Registry) AddGroup(name string, list []Mutator) {
	if _, ok := r.entries[name]; ok {
		panic(fmt.Sprintf("mutators: duplicate registry entry %q", name))
	}
	entry := make([]Mutator, len(list))
	copy(entry, list)
	r.entries[name] = entry
	r.order = append(r.order, name)
}

// Resolve flattens the named entries in caller order into a set of
// mutators unique by ID, sorted by ID. An unknown name fails with
// ErrUnknownMutator carrying the offending key. An empty name list
// yields an empty result, not an error.
func (r *Registry) Resolve(names []string) ([]Mutator, error) {
	seen := make(map[string]Mutator)
	for _, name := range names {
		entry, ok := r.entries[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownMutator, name)
		}
		for _, m := range entry {
			seen[m.ID] = m
		}
	}
	out := make([]Mutator, 0, len(seen))
	for _, m := range seen {
		out = append(out, m)
	}
	sortByID(out)
	return out, nil
}

// All resolves the ALL composite group.
func (r *Registry) All() ([]Mutator, error) {
	return r.Resolve([]string{GroupAll})
}

// Names returns entry names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Has reports whether a name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.entries[name]
	return ok
}

func sortByID(list []Mutator) {
	sort.Slice(list, func(i, j int) bool {
		return list[i].ID < list[j].ID
	})
}

// mustResolve backs catalog construction; composite groups may only
// reference entries registered before them.
func mustResolve(r *Registry, names []string) []Mutator {
	list, err := r.Resolve(names)
	if err != nil {
		panic(fmt.Sprintf("mutators: catalog construction: %v", err))
	}
	return list
}
