// Package service provides application layer services that orchestrate domain operations.
package service

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/helixml/ftsq/domain/capability"
	"github.com/helixml/ftsq/domain/fts"
	"github.com/helixml/ftsq/domain/lookup"
)

// Suppression records a schema element left out of the catalog.
type Suppression struct {
	element string
	reason  string
}

// Element returns the suppressed table or "table.lookup" name.
func (s Suppression) Element() string { return s.element }

// Reason explains why the element was suppressed.
func (s Suppression) Reason() string { return s.reason }

type entry struct {
	schema  fts.Schema
	lookups map[string]lookup.Lookup
}

// Catalog is the set of tables and lookups admitted for one engine.
// It is built once and never mutated, so it is safe for concurrent use.
type Catalog struct {
	facts      capability.Facts
	entries    map[string]entry
	order      []string
	suppressed []Suppression
}

// NewCatalog evaluates the capability gate for every schema and every
// lookup in registry against facts. Suppressed elements are absent from
// the catalog.
func NewCatalog(facts capability.Facts, registry lookup.Registry, logger *slog.Logger, schemas ...fts.Schema) (Catalog, error) {
	if logger == nil {
		logger = slog.Default()
	}

	c := Catalog{
		facts:   facts,
		entries: make(map[string]entry, len(schemas)),
	}
	seen := make(map[string]struct{}, len(schemas))

	for _, schema := range schemas {
		if _, dup := seen[schema.Name()]; dup {
			return Catalog{}, fmt.Errorf("%w: %s", ErrDuplicateTable, schema.Name())
		}
		seen[schema.Name()] = struct{}{}

		req := schema.Requirement()
		if capability.Admit(req, facts) == capability.Suppressed {
			reason := capability.Reason(req, facts)
			c.suppressed = append(c.suppressed, Suppression{element: schema.Name(), reason: reason})
			logger.Debug("table suppressed", slog.String("table", schema.Name()), slog.String("reason", reason))
			continue
		}

		e := entry{schema: schema, lookups: make(map[string]lookup.Lookup)}
		gen := schema.Generation()
		// Fields of one kind share lookups; each is gated once per table.
		gated := make(map[string]struct{})
		for _, field := range schema.Fields() {
			for _, l := range registry.ForKind(field.Kind()) {
				if _, ok := gated[l.Name()]; ok {
					continue
				}
				gated[l.Name()] = struct{}{}
				if !l.Supports(gen) {
					element := schema.Name() + "." + l.Name()
					reason := fmt.Sprintf("%s is not available on %s", l.Name(), gen)
					c.suppressed = append(c.suppressed, Suppression{element: element, reason: reason})
					logger.Debug("lookup suppressed", slog.String("lookup", element), slog.String("reason", reason))
					continue
				}
				e.lookups[l.Name()] = l
			}
		}

		c.entries[schema.Name()] = e
		c.order = append(c.order, schema.Name())
		logger.Info("table admitted",
			slog.String("table", schema.Name()),
			slog.String("module", gen.String()),
			slog.Int("lookups", len(e.lookups)),
		)
	}

	return c, nil
}

// Facts returns the engine facts the catalog was built against.
func (c Catalog) Facts() capability.Facts { return c.facts }

// Table returns an admitted table by name.
func (c Catalog) Table(name string) (fts.Schema, bool) {
	e, ok := c.entries[name]
	return e.schema, ok
}

// Tables returns the admitted tables in declaration order.
func (c Catalog) Tables() []fts.Schema {
	out := make([]fts.Schema, len(c.order))
	for i, name := range c.order {
		out[i] = c.entries[name].schema
	}
	return out
}

// Lookups returns the lookup names available on an admitted table, sorted.
func (c Catalog) Lookups(table string) ([]string, error) {
	e, ok := c.entries[table]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	names := make([]string, 0, len(e.lookups))
	for name := range e.lookups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Suppressed returns every element the gate left out.
func (c Catalog) Suppressed() []Suppression {
	out := make([]Suppression, len(c.suppressed))
	copy(out, c.suppressed)
	return out
}

// Compile resolves table, field and lookup and compiles the operand into a
// clause whose left-hand side is the qualified column.
func (c Catalog) Compile(table, field, lookupName string, operand any) (lookup.Clause, error) {
	e, ok := c.entries[table]
	if !ok {
		return lookup.Clause{}, fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	if _, ok := e.schema.Field(field); !ok {
		return lookup.Clause{}, fmt.Errorf("%w: %s.%s", ErrUnknownField, table, field)
	}
	l, ok := e.lookups[lookupName]
	if !ok {
		return lookup.Clause{}, fmt.Errorf("%w: %s on %s.%s", ErrUnknownLookup, lookupName, table, field)
	}
	return l.Compile(e.schema.ColumnRef(field), operand)
}
