package dto

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixml/ftsq/domain/fts"
	"github.com/helixml/ftsq/domain/lookup"
)

func TestParseSearchParams(t *testing.T) {
	p, err := ParseSearchParams(url.Values{
		"field":  {"ingredients"},
		"q":      {"spam"},
		"limit":  {"5"},
		"offset": {"2"},
		"order":  {"rank"},
	})
	require.NoError(t, err)

	assert.Equal(t, "ingredients", p.Field)
	assert.Equal(t, lookup.Match, p.Lookup)
	assert.Equal(t, 5, p.Limit)
	assert.Equal(t, 2, p.Offset)
	assert.True(t, p.Rank)
}

func TestParseSearchParams_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		values url.Values
	}{
		{"missing field", url.Values{"q": {"spam"}}},
		{"q and term", url.Values{"field": {"f"}, "q": {"a"}, "term": {"b"}}},
		{"negative limit", url.Values{"field": {"f"}, "q": {"a"}, "limit": {"-1"}}},
		{"bad within", url.Values{"field": {"f"}, "q": {"a"}, "within": {"x"}}},
		{"bad order", url.Values{"field": {"f"}, "q": {"a"}, "order": {"score"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSearchParams(tt.values)
			assert.ErrorIs(t, err, ErrInvalidParameter)
		})
	}
}

func TestSearchParams_Operand(t *testing.T) {
	t.Run("raw query", func(t *testing.T) {
		op, err := SearchParams{Lookup: lookup.Match, Query: "ba*"}.Operand()
		require.NoError(t, err)
		assert.Equal(t, "ba*", op)
	})

	t.Run("match terms become or", func(t *testing.T) {
		op, err := SearchParams{Lookup: lookup.Match, Terms: []string{"baked beans", "lobster"}}.Operand()
		require.NoError(t, err)
		term, ok := op.(fts.Or)
		require.True(t, ok)
		assert.Equal(t, `"baked beans" OR "lobster"`, term.Render())
	})

	t.Run("single match term is literal", func(t *testing.T) {
		op, err := SearchParams{Lookup: lookup.Match, Terms: []string{"egg"}}.Operand()
		require.NoError(t, err)
		assert.Equal(t, fts.NewLiteral("egg"), op)
	})

	t.Run("near terms", func(t *testing.T) {
		op, err := SearchParams{Lookup: lookup.MatchNear, Terms: []string{"SPAM SPAM", "bacon"}}.Operand()
		require.NoError(t, err)
		assert.Equal(t, []string{"SPAM SPAM", "bacon"}, op)
	})

	t.Run("near within", func(t *testing.T) {
		op, err := SearchParams{Lookup: lookup.MatchNear, Terms: []string{"egg", "bacon"}, Within: 2}.Operand()
		require.NoError(t, err)
		near, ok := op.(fts.Near)
		require.True(t, ok)
		assert.Equal(t, `NEAR("egg" "bacon", 2)`, near.Render())
	})

	t.Run("startswith takes one term", func(t *testing.T) {
		_, err := SearchParams{Lookup: lookup.MatchStartswith, Terms: []string{"a", "b"}}.Operand()
		assert.ErrorIs(t, err, ErrInvalidParameter)
	})

	t.Run("missing operand", func(t *testing.T) {
		_, err := SearchParams{Lookup: lookup.Match}.Operand()
		assert.ErrorIs(t, err, ErrInvalidParameter)
	})
}
