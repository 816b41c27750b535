package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixml/ftsq/domain/capability"
	"github.com/helixml/ftsq/domain/fts"
	"github.com/helixml/ftsq/domain/lookup"
)

func testSchemas(t *testing.T) []fts.Schema {
	t.Helper()
	breakfast, err := fts.NewFTS5Schema("breakfast", fts.MustTextField("ingredients"))
	require.NoError(t, err)
	menu, err := fts.NewFTS4Schema("menu", fts.MustTextField("title"), fts.MustTextField("body"))
	require.NoError(t, err)
	notes, err := fts.NewFTS3Schema("notes", fts.MustTextField("text"))
	require.NoError(t, err)
	return []fts.Schema{breakfast, menu, notes}
}

func tableNames(schemas []fts.Schema) []string {
	names := make([]string, len(schemas))
	for i, s := range schemas {
		names[i] = s.Name()
	}
	return names
}

func suppressedElements(c Catalog) []string {
	var out []string
	for _, s := range c.Suppressed() {
		out = append(out, s.Element())
	}
	return out
}

func TestNewCatalog_AllGenerations(t *testing.T) {
	facts := capability.NewFacts(capability.EngineSQLite, capability.Gen3, capability.Gen4, capability.Gen5)
	c, err := NewCatalog(facts, lookup.Default(), nil, testSchemas(t)...)
	require.NoError(t, err)

	assert.Equal(t, []string{"breakfast", "menu", "notes"}, tableNames(c.Tables()))

	tests := []struct {
		table string
		want  []string
	}{
		{"breakfast", []string{lookup.Match, lookup.MatchNear, lookup.MatchStartswith}},
		{"menu", []string{lookup.Match, lookup.MatchStartswith}},
		{"notes", []string{lookup.Match}},
	}
	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			got, err := c.Lookups(tt.table)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, []string{"menu.match_near", "notes.match_near", "notes.match_startswith"}, suppressedElements(c))
}

func TestNewCatalog_GatesLookupOncePerTable(t *testing.T) {
	wide, err := fts.NewFTS3Schema("wide",
		fts.MustTextField("a"), fts.MustTextField("b"), fts.MustTextField("c"))
	require.NoError(t, err)

	facts := capability.NewFacts(capability.EngineSQLite, capability.Gen3)
	c, err := NewCatalog(facts, lookup.Default(), nil, wide)
	require.NoError(t, err)

	assert.Equal(t, []string{"wide.match_near", "wide.match_startswith"}, suppressedElements(c))

	got, err := c.Lookups("wide")
	require.NoError(t, err)
	assert.Equal(t, []string{lookup.Match}, got)
}

func TestNewCatalog_SuppressesMissingGenerations(t *testing.T) {
	facts := capability.NewFacts(capability.EngineSQLite, capability.Gen5)
	c, err := NewCatalog(facts, lookup.Default(), nil, testSchemas(t)...)
	require.NoError(t, err)

	assert.Equal(t, []string{"breakfast"}, tableNames(c.Tables()))
	_, ok := c.Table("menu")
	assert.False(t, ok)

	_, err = c.Compile("menu", "title", lookup.Match, "spam")
	assert.ErrorIs(t, err, ErrUnknownTable)

	reasons := map[string]string{}
	for _, s := range c.Suppressed() {
		reasons[s.Element()] = s.Reason()
	}
	assert.Equal(t, "fts4 is not enabled", reasons["menu"])
	assert.Equal(t, "fts3 is not enabled", reasons["notes"])
}

func TestNewCatalog_OtherEngine(t *testing.T) {
	facts := capability.NewFacts(capability.EnginePostgres)
	c, err := NewCatalog(facts, lookup.Default(), nil, testSchemas(t)...)
	require.NoError(t, err)

	assert.Empty(t, c.Tables())
	assert.Len(t, c.Suppressed(), 3)
	assert.Equal(t, capability.EnginePostgres, c.Facts().Engine())

	_, err = c.Lookups("breakfast")
	assert.ErrorIs(t, err, ErrUnknownTable)
}

func TestNewCatalog_DuplicateTable(t *testing.T) {
	schemas := testSchemas(t)
	facts := capability.NewFacts(capability.EngineSQLite, capability.Gen5)

	_, err := NewCatalog(facts, lookup.Default(), nil, schemas[0], schemas[0])
	assert.ErrorIs(t, err, ErrDuplicateTable)
}

func TestCatalog_Compile(t *testing.T) {
	facts := capability.NewFacts(capability.EngineSQLite, capability.Gen3, capability.Gen4, capability.Gen5)
	c, err := NewCatalog(facts, lookup.Default(), nil, testSchemas(t)...)
	require.NoError(t, err)

	t.Run("match", func(t *testing.T) {
		clause, err := c.Compile("breakfast", "ingredients", lookup.Match, "spam")
		require.NoError(t, err)
		assert.Equal(t, `"breakfast"."ingredients" MATCH ?`, clause.Template())
		assert.Equal(t, []any{"spam"}, clause.Params())
	})

	t.Run("startswith on fts4", func(t *testing.T) {
		clause, err := c.Compile("menu", "body", lookup.MatchStartswith, "egg")
		require.NoError(t, err)
		assert.Equal(t, `"menu"."body" MATCH ?`, clause.Template())
		assert.Equal(t, []any{"^egg"}, clause.Params())
	})

	t.Run("near on fts4 is unknown", func(t *testing.T) {
		_, err := c.Compile("menu", "body", lookup.MatchNear, []string{"a", "b"})
		assert.ErrorIs(t, err, ErrUnknownLookup)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := c.Compile("breakfast", "topping", lookup.Match, "spam")
		assert.ErrorIs(t, err, ErrUnknownField)
	})

	t.Run("unknown lookup", func(t *testing.T) {
		_, err := c.Compile("breakfast", "ingredients", "match_regex", "spam")
		assert.ErrorIs(t, err, ErrUnknownLookup)
	})

	t.Run("operand errors propagate", func(t *testing.T) {
		_, err := c.Compile("breakfast", "ingredients", lookup.MatchStartswith, 42)
		assert.ErrorIs(t, err, fts.ErrUnsupportedOperand)

		_, err = c.Compile("breakfast", "ingredients", lookup.MatchNear, []string{})
		assert.ErrorIs(t, err, fts.ErrEmptyTermList)
	})
}
