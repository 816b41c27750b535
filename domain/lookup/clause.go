package lookup

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm/clause"
)

// Placeholder is the bind marker understood by the host statement layer.
const Placeholder = "?"

// ErrPlaceholderMismatch indicates a template whose placeholders do not
// line up with its parameters.
var ErrPlaceholderMismatch = errors.New("placeholder count does not match parameter count")

// Clause is compiled WHERE-clause text plus its bound parameters in
// left-to-right placeholder order. Parameters are never interpolated.
type Clause struct {
	template string
	params   []any
}

// NewClause creates a Clause, checking that placeholders and parameters agree.
func NewClause(template string, params ...any) (Clause, error) {
	if n := strings.Count(template, Placeholder); n != len(params) {
		return Clause{}, fmt.Errorf("%w: %d placeholders, %d params", ErrPlaceholderMismatch, n, len(params))
	}
	p := make([]any, len(params))
	copy(p, params)
	return Clause{template: template, params: p}, nil
}

// Template returns the clause text.
func (c Clause) Template() string { return c.template }

// Params returns the bound parameters in order.
func (c Clause) Params() []any {
	out := make([]any, len(c.params))
	copy(out, c.params)
	return out
}

// Expression returns the clause as a gorm expression, e.g. for db.Where.
func (c Clause) Expression() clause.Expr {
	return clause.Expr{SQL: c.template, Vars: c.Params()}
}

// String returns a readable form for logs.
func (c Clause) String() string {
	return fmt.Sprintf("%s %v", c.template, c.params)
}
