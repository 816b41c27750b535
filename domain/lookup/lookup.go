// Package lookup compiles field lookups into MATCH clauses.
//
// Every lookup is the same base translation, `<lhs> MATCH ?`, preceded by an
// optional operand transform. match_startswith and match_near are only
// transforms; they never build clause text themselves.
package lookup

import (
	"fmt"
	"strings"

	"github.com/helixml/ftsq/domain/capability"
	"github.com/helixml/ftsq/domain/fts"
)

// Lookup names.
const (
	Match           = "match"
	MatchStartswith = "match_startswith"
	MatchNear       = "match_near"
)

// Transform rewrites an operand before the base translation.
type Transform func(operand any) (any, error)

// Lookup is a named MATCH variant.
type Lookup struct {
	name        string
	transform   Transform
	generations []capability.Generation
}

// New creates a Lookup usable on the given generations.
// A nil transform means the operand is used unchanged.
func New(name string, transform Transform, generations ...capability.Generation) Lookup {
	gens := make([]capability.Generation, len(generations))
	copy(gens, generations)
	return Lookup{name: name, transform: transform, generations: gens}
}

// Name returns the lookup name.
func (l Lookup) Name() string { return l.name }

// Supports reports whether the lookup's syntax exists in generation g.
func (l Lookup) Supports(g capability.Generation) bool {
	for _, s := range l.generations {
		if s == g {
			return true
		}
	}
	return false
}

// Generations returns the generations the lookup supports.
func (l Lookup) Generations() []capability.Generation {
	out := make([]capability.Generation, len(l.generations))
	copy(out, l.generations)
	return out
}

// Compile produces `<lhs> MATCH ?` and the operand parameter. lhs is
// emitted verbatim and must already be a quoted column reference.
func (l Lookup) Compile(lhs string, operand any) (Clause, error) {
	if l.transform != nil {
		var err error
		operand, err = l.transform(operand)
		if err != nil {
			return Clause{}, fmt.Errorf("%s: %w", l.name, err)
		}
	}
	c, err := compileMatch(lhs, operand)
	if err != nil {
		return Clause{}, fmt.Errorf("%s: %w", l.name, err)
	}
	return c, nil
}

// compileMatch is the base translation shared by every lookup.
func compileMatch(lhs string, operand any) (Clause, error) {
	switch v := operand.(type) {
	case Clause:
		// Nested expression: it brings its own placeholders.
		return NewClause(lhs+" MATCH ("+v.Template()+")", v.Params()...)
	case string:
		return NewClause(lhs+" MATCH "+Placeholder, v)
	case fts.Term:
		return NewClause(lhs+" MATCH "+Placeholder, v.Render())
	default:
		return Clause{}, unsupported(operand)
	}
}

// AnchorStart prefixes text with the initial-token marker unless present.
func AnchorStart(text string) string {
	if strings.HasPrefix(text, "^") {
		return text
	}
	return "^" + text
}

// startswith turns a term into an initial-token query. It works on the
// unrendered text, so Or and Near groups are rejected.
func startswith(operand any) (any, error) {
	switch v := operand.(type) {
	case string:
		return AnchorStart(v), nil
	case fts.Literal:
		return fts.NewLiteral(AnchorStart(v.Text())), nil
	default:
		return nil, unsupported(operand)
	}
}

// near wraps a term list or pre-formatted phrases in NEAR(...).
func near(operand any) (any, error) {
	switch v := operand.(type) {
	case []string:
		return fts.NewNear(v...)
	case string:
		return fts.NewNearRaw(v)
	case fts.Near:
		return v, nil
	default:
		return nil, unsupported(operand)
	}
}

func unsupported(operand any) error {
	return fmt.Errorf("%w: %T", fts.ErrUnsupportedOperand, operand)
}
