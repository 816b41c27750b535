package lookup

import (
	"sort"

	"github.com/helixml/ftsq/domain/capability"
	"github.com/helixml/ftsq/domain/fts"
)

type registryKey struct {
	kind string
	name string
}

// Registration binds a lookup to a field kind.
type Registration struct {
	Kind   string
	Lookup Lookup
}

// Registry maps (field kind, lookup name) to a Lookup. It is built once and
// never mutated afterwards.
type Registry struct {
	lookups map[registryKey]Lookup
}

// NewRegistry builds a Registry. Later registrations of the same key win.
func NewRegistry(registrations ...Registration) Registry {
	m := make(map[registryKey]Lookup, len(registrations))
	for _, r := range registrations {
		m[registryKey{kind: r.Kind, name: r.Lookup.Name()}] = r.Lookup
	}
	return Registry{lookups: m}
}

// Get returns the lookup registered for kind and name.
func (r Registry) Get(kind, name string) (Lookup, bool) {
	l, ok := r.lookups[registryKey{kind: kind, name: name}]
	return l, ok
}

// ForKind returns the lookups of a field kind sorted by name.
func (r Registry) ForKind(kind string) []Lookup {
	var out []Lookup
	for k, l := range r.lookups {
		if k.kind == kind {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

var defaultRegistry = NewRegistry(
	Registration{
		Kind:   fts.FieldKindText,
		Lookup: New(Match, nil, capability.Gen3, capability.Gen4, capability.Gen5),
	},
	Registration{
		Kind:   fts.FieldKindText,
		Lookup: New(MatchStartswith, startswith, capability.Gen4, capability.Gen5),
	},
	Registration{
		Kind:   fts.FieldKindText,
		Lookup: New(MatchNear, near, capability.Gen5),
	},
)

// Default returns the registry of the built-in text lookups.
func Default() Registry {
	return defaultRegistry
}
