package repository

import (
	"testing"

	"github.com/helixml/ftsq/domain/lookup"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	c, err := lookup.NewClause(`"t"."body" MATCH ?`, "spam")
	require.NoError(t, err)

	opts := append([]Option{
		WithMatch(c),
		WithRowIDIn([]int64{1, 2}),
		WithOrderByRank(),
	}, WithPagination(5, 10)...)
	q := Build(opts...)

	conds := q.Conditions()
	require.Len(t, conds, 2)

	sql, args, ok := conds[0].Raw()
	require.True(t, ok)
	assert.Equal(t, `"t"."body" MATCH ?`, sql)
	assert.Equal(t, []any{"spam"}, args)

	_, _, ok = conds[1].Raw()
	assert.False(t, ok)
	assert.True(t, conds[1].In())
	assert.Equal(t, "rowid", conds[1].Field())

	require.Len(t, q.Orders(), 1)
	assert.Equal(t, "rank", q.Orders()[0].Field())
	assert.True(t, q.Orders()[0].Ascending())
	assert.Equal(t, 5, q.LimitValue())
	assert.Equal(t, 10, q.OffsetValue())
}

func TestCondition_String(t *testing.T) {
	q := Build(WithRowID(3), WithWhere("a MATCH ?", "x"))
	conds := q.Conditions()
	assert.Equal(t, "rowid = 3", conds[0].String())
	assert.Equal(t, "a MATCH ? [x]", conds[1].String())
}
