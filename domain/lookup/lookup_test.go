package lookup

import (
	"strings"
	"testing"

	"github.com/helixml/ftsq/domain/capability"
	"github.com/helixml/ftsq/domain/fts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lhs = `"breakfast"."ingredients"`

func mustLookup(t *testing.T, name string) Lookup {
	t.Helper()
	l, ok := Default().Get(fts.FieldKindText, name)
	require.True(t, ok, name)
	return l
}

func mustOr(t *testing.T, terms ...string) fts.Or {
	t.Helper()
	or, err := fts.NewOr(terms...)
	require.NoError(t, err)
	return or
}

func TestMatch(t *testing.T) {
	match := mustLookup(t, Match)

	tests := []struct {
		name    string
		operand any
		param   string
	}{
		{name: "raw string", operand: "spam", param: "spam"},
		{name: "prefix token", operand: "ba*", param: "ba*"},
		{name: "literal", operand: fts.NewLiteral("egg"), param: "egg"},
		{name: "or group", operand: mustOr(t, "baked beans", "lobster"), param: `"baked beans" OR "lobster"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := match.Compile(lhs, tt.operand)
			require.NoError(t, err)
			assert.Equal(t, lhs+" MATCH ?", c.Template())
			assert.Equal(t, []any{tt.param}, c.Params())
		})
	}
}

func TestMatch_NeverInterpolatesOperand(t *testing.T) {
	match := mustLookup(t, Match)
	hostile := `x'); DROP TABLE breakfast; --`

	c, err := match.Compile(lhs, hostile)
	require.NoError(t, err)
	assert.NotContains(t, c.Template(), "DROP")
	assert.Equal(t, []any{hostile}, c.Params())
}

func TestMatch_NestedClause(t *testing.T) {
	match := mustLookup(t, Match)
	inner, err := NewClause("SELECT q FROM saved WHERE id = ? AND owner = ?", 7, "me")
	require.NoError(t, err)

	c, err := match.Compile(lhs, inner)
	require.NoError(t, err)
	assert.Equal(t, lhs+" MATCH (SELECT q FROM saved WHERE id = ? AND owner = ?)", c.Template())
	assert.Equal(t, []any{7, "me"}, c.Params())
}

func TestMatchStartswith(t *testing.T) {
	sw := mustLookup(t, MatchStartswith)

	c, err := sw.Compile(lhs, "egg")
	require.NoError(t, err)
	assert.Equal(t, []any{"^egg"}, c.Params())

	c, err = sw.Compile(lhs, "^egg")
	require.NoError(t, err)
	assert.Equal(t, []any{"^egg"}, c.Params())

	c, err = sw.Compile(lhs, fts.NewLiteral("spam"))
	require.NoError(t, err)
	assert.Equal(t, []any{"^spam"}, c.Params())

	_, err = sw.Compile(lhs, mustOr(t, "a", "b"))
	assert.ErrorIs(t, err, fts.ErrUnsupportedOperand)
}

func TestAnchorStart_Idempotent(t *testing.T) {
	for _, s := range []string{"", "egg", "^egg", "^^egg", "spam eggs", "^"} {
		once := AnchorStart(s)
		assert.Equal(t, once, AnchorStart(once), s)
		assert.True(t, strings.HasPrefix(once, "^"))
		if !strings.HasPrefix(s, "^^") {
			assert.False(t, strings.HasPrefix(once, "^^"), s)
		}
	}
}

func TestMatchNear(t *testing.T) {
	mn := mustLookup(t, MatchNear)

	fromTerms, err := mn.Compile(lhs, []string{"SPAM SPAM", "bacon"})
	require.NoError(t, err)
	fromString, err := mn.Compile(lhs, `"SPAM SPAM" "bacon"`)
	require.NoError(t, err)

	assert.Equal(t, []any{`NEAR("SPAM SPAM" "bacon")`}, fromTerms.Params())
	assert.Equal(t, fromTerms, fromString)

	near, err := fts.NewNear("egg", "spam")
	require.NoError(t, err)
	c, err := mn.Compile(lhs, near.Within(2))
	require.NoError(t, err)
	assert.Equal(t, []any{`NEAR("egg" "spam", 2)`}, c.Params())

	_, err = mn.Compile(lhs, []string{})
	assert.ErrorIs(t, err, fts.ErrEmptyTermList)
}

func TestCompile_UnsupportedOperand(t *testing.T) {
	for _, name := range []string{Match, MatchStartswith, MatchNear} {
		l := mustLookup(t, name)
		for _, operand := range []any{42, nil, 3.14, map[string]string{}} {
			_, err := l.Compile(lhs, operand)
			assert.ErrorIs(t, err, fts.ErrUnsupportedOperand, "%s %T", name, operand)
		}
	}
}

func TestCompile_PlaceholdersMatchParams(t *testing.T) {
	operands := map[string][]any{
		Match:           {"spam", fts.NewLiteral("ba*"), mustOr(t, "x", "y?")},
		MatchStartswith: {"egg?", fts.NewLiteral("^a")},
		MatchNear:       {[]string{"a?", "b"}, `"a" "b"`},
	}
	for name, ops := range operands {
		l := mustLookup(t, name)
		for _, op := range ops {
			c, err := l.Compile(lhs, op)
			require.NoError(t, err)
			assert.Equal(t, strings.Count(c.Template(), Placeholder), len(c.Params()))
		}
	}
}

func TestNewClause_Mismatch(t *testing.T) {
	_, err := NewClause("a MATCH ?")
	assert.ErrorIs(t, err, ErrPlaceholderMismatch)

	_, err = NewClause("a MATCH ?", 1, 2)
	assert.ErrorIs(t, err, ErrPlaceholderMismatch)
}

func TestRegistry(t *testing.T) {
	reg := Default()

	names := make([]string, 0, 3)
	for _, l := range reg.ForKind(fts.FieldKindText) {
		names = append(names, l.Name())
	}
	assert.Equal(t, []string{Match, MatchNear, MatchStartswith}, names)

	_, ok := reg.Get("integer", Match)
	assert.False(t, ok)
	_, ok = reg.Get(fts.FieldKindText, "contains")
	assert.False(t, ok)

	near, _ := reg.Get(fts.FieldKindText, MatchNear)
	assert.True(t, near.Supports(capability.Gen5))
	assert.False(t, near.Supports(capability.Gen4))

	sw, _ := reg.Get(fts.FieldKindText, MatchStartswith)
	assert.True(t, sw.Supports(capability.Gen4))
	assert.False(t, sw.Supports(capability.Gen3))
}

func TestClause_Expression(t *testing.T) {
	c, err := NewClause(lhs+" MATCH ?", "spam")
	require.NoError(t, err)

	expr := c.Expression()
	assert.Equal(t, lhs+" MATCH ?", expr.SQL)
	assert.Equal(t, []any{"spam"}, expr.Vars)
}
