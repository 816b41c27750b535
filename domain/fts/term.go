package fts

import (
	"fmt"
	"strings"
)

// Term is a query expression rendered into the extension's MATCH syntax.
// Rendering is pure: the same value always renders the same text.
type Term interface {
	Render() string
}

// Literal is passed to MATCH as-is. It may already use MATCH syntax,
// e.g. prefix queries such as "ba*".
type Literal struct {
	text string
}

// NewLiteral creates a Literal.
func NewLiteral(text string) Literal {
	return Literal{text: text}
}

// Text returns the literal text.
func (l Literal) Text() string { return l.text }

// Render returns the text unmodified.
func (l Literal) Render() string { return l.text }

// Or matches rows containing any of its phrases.
type Or struct {
	terms []string
}

// NewOr creates an Or group. At least one term is required.
func NewOr(terms ...string) (Or, error) {
	if len(terms) == 0 {
		return Or{}, fmt.Errorf("or: %w", ErrEmptyTermList)
	}
	return Or{terms: copyTerms(terms)}, nil
}

// Terms returns the phrases in order.
func (o Or) Terms() []string { return copyTerms(o.terms) }

// Render returns `"t1" OR "t2" OR ...`.
func (o Or) Render() string {
	quoted := make([]string, len(o.terms))
	for i, t := range o.terms {
		quoted[i] = QuotePhrase(t)
	}
	return strings.Join(quoted, " OR ")
}

// Near matches rows where its phrases occur close to each other.
// It is built either from a term list, which is quoted per term, or from
// a pre-formatted string that is wrapped without re-quoting.
type Near struct {
	terms    []string
	raw      string
	distance int
}

// NewNear creates a Near group from individual phrases.
func NewNear(terms ...string) (Near, error) {
	if len(terms) == 0 {
		return Near{}, fmt.Errorf("near: %w", ErrEmptyTermList)
	}
	return Near{terms: copyTerms(terms)}, nil
}

// NewNearRaw creates a Near group from already formatted phrase syntax,
// e.g. `"SPAM SPAM" "bacon"`.
func NewNearRaw(phrases string) (Near, error) {
	if strings.TrimSpace(phrases) == "" {
		return Near{}, fmt.Errorf("near: %w", ErrEmptyTermList)
	}
	return Near{raw: phrases}, nil
}

// Within returns a copy limited to at most n intervening tokens.
// n <= 0 keeps the extension default.
func (n Near) Within(distance int) Near {
	n.distance = distance
	n.terms = copyTerms(n.terms)
	return n
}

// Terms returns the phrases, or nil for a raw Near.
func (n Near) Terms() []string { return copyTerms(n.terms) }

// Distance returns the configured distance, 0 when unset.
func (n Near) Distance() int { return n.distance }

// Render returns `NEAR("t1" "t2")`, or `NEAR(<raw>)` for raw input.
func (n Near) Render() string {
	body := n.raw
	if n.terms != nil {
		quoted := make([]string, len(n.terms))
		for i, t := range n.terms {
			quoted[i] = QuotePhrase(t)
		}
		body = strings.Join(quoted, " ")
	}
	if n.distance > 0 {
		return fmt.Sprintf("NEAR(%s, %d)", body, n.distance)
	}
	return "NEAR(" + body + ")"
}

// QuotePhrase wraps text in double quotes, doubling embedded quotes.
func QuotePhrase(text string) string {
	return `"` + strings.ReplaceAll(text, `"`, `""`) + `"`
}

func copyTerms(terms []string) []string {
	if terms == nil {
		return nil
	}
	out := make([]string, len(terms))
	copy(out, terms)
	return out
}
