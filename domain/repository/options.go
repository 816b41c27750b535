package repository

import (
	"github.com/helixml/ftsq/domain/fts"
	"github.com/helixml/ftsq/domain/lookup"
)

// WithRowID filters by the "rowid" column.
func WithRowID(id int64) Option {
	return WithCondition(fts.RowIDColumn, id)
}

// WithRowIDIn filters by the "rowid" column using IN.
func WithRowIDIn(ids []int64) Option {
	return WithConditionIn(fts.RowIDColumn, ids)
}

// WithMatch adds a compiled lookup clause.
func WithMatch(c lookup.Clause) Option {
	return WithWhere(c.Template(), c.Params()...)
}

// WithOrderByRank orders best matches first. FTS5 rank is ascending-better.
func WithOrderByRank() Option {
	return WithOrderAsc(fts.RankColumn)
}

// WithOrderByRowID orders rows by insertion.
func WithOrderByRowID() Option {
	return WithOrderAsc(fts.RowIDColumn)
}
