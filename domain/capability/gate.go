package capability

import "sort"

// EngineID names a storage engine as reported by the connection layer.
type EngineID string

// Known engines.
const (
	EngineSQLite   EngineID = "sqlite"
	EnginePostgres EngineID = "postgres"
)

// Facts are the engine capabilities detected once at connection time.
type Facts struct {
	engine      EngineID
	generations map[Generation]struct{}
}

// NewFacts creates Facts for an engine with the given enabled generations.
func NewFacts(engine EngineID, generations ...Generation) Facts {
	set := make(map[Generation]struct{}, len(generations))
	for _, g := range generations {
		set[g] = struct{}{}
	}
	return Facts{engine: engine, generations: set}
}

// Engine returns the active engine.
func (f Facts) Engine() EngineID { return f.engine }

// Enabled reports whether generation g is enabled on the engine.
func (f Facts) Enabled(g Generation) bool {
	_, ok := f.generations[g]
	return ok
}

// Generations returns the enabled generations in ascending order.
func (f Facts) Generations() []Generation {
	out := make([]Generation, 0, len(f.generations))
	for g := range f.generations {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Requirement is what a schema element needs from the engine.
// A nil generation means only the engine is checked.
type Requirement struct {
	engine     EngineID
	generation *Generation
}

// Require creates a Requirement on an engine and, optionally, a generation.
func Require(engine EngineID, generation *Generation) Requirement {
	return Requirement{engine: engine, generation: generation}
}

// RequireGeneration creates a SQLite requirement for one generation.
func RequireGeneration(g Generation) Requirement {
	return Require(EngineSQLite, &g)
}

// Engine returns the required engine.
func (r Requirement) Engine() EngineID { return r.engine }

// Generation returns the required generation, if any.
func (r Requirement) Generation() (Generation, bool) {
	if r.generation == nil {
		return 0, false
	}
	return *r.generation, true
}

// Decision is the outcome of a gate evaluation.
type Decision int

// Decision values.
const (
	Suppressed Decision = iota
	Admitted
)

// String returns a readable form of the decision.
func (d Decision) String() string {
	if d == Admitted {
		return "admitted"
	}
	return "suppressed"
}

// Admit decides whether an element with requirement r exists on an engine
// described by facts. Requirements are not cumulative: a Gen5 requirement
// only checks Gen5.
func Admit(r Requirement, facts Facts) Decision {
	if r.engine != facts.engine {
		return Suppressed
	}
	if g, ok := r.Generation(); ok && !facts.Enabled(g) {
		return Suppressed
	}
	return Admitted
}

// Reason explains a suppression; it returns "" when r is admitted.
func Reason(r Requirement, facts Facts) string {
	if r.engine != facts.engine {
		return "engine is " + string(facts.engine) + ", requires " + string(r.engine)
	}
	if g, ok := r.Generation(); ok && !facts.Enabled(g) {
		return g.String() + " is not enabled"
	}
	return ""
}
