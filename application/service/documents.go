package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/helixml/ftsq/domain/fts"
	"github.com/helixml/ftsq/domain/repository"
	"github.com/helixml/ftsq/internal/config"
)

// DocumentStore persists and queries rows of virtual tables.
type DocumentStore interface {
	CreateTables(ctx context.Context, schemas ...fts.Schema) error
	Insert(ctx context.Context, schema fts.Schema, values map[string]string) (int64, error)
	Find(ctx context.Context, schema fts.Schema, options ...repository.Option) ([]fts.Document, error)
	Count(ctx context.Context, schema fts.Schema, options ...repository.Option) (int64, error)
}

// SearchOption configures a search request.
type SearchOption func(*searchConfig)

type searchConfig struct {
	limit  int
	offset int
	byRank bool
}

func newSearchConfig() *searchConfig {
	return &searchConfig{limit: config.DefaultSearchLimit}
}

// WithLimit sets the maximum number of results.
func WithLimit(n int) SearchOption {
	return func(c *searchConfig) {
		if n > 0 {
			c.limit = n
		}
	}
}

// WithOffset sets the offset for pagination.
func WithOffset(n int) SearchOption {
	return func(c *searchConfig) {
		if n >= 0 {
			c.offset = n
		}
	}
}

// WithRankOrder orders results best match first instead of by rowid.
// Tables without a rank column keep rowid order.
func WithRankOrder(enabled bool) SearchOption {
	return func(c *searchConfig) {
		c.byRank = enabled
	}
}

// Documents adds rows to catalog tables and searches them through lookups.
type Documents struct {
	catalog Catalog
	store   DocumentStore
	logger  *slog.Logger
}

// NewDocuments creates a new Documents service.
func NewDocuments(catalog Catalog, store DocumentStore, logger *slog.Logger) *Documents {
	if logger == nil {
		logger = slog.Default()
	}
	return &Documents{catalog: catalog, store: store, logger: logger}
}

// Catalog returns the catalog the service resolves tables against.
func (d *Documents) Catalog() Catalog { return d.catalog }

// Migrate creates every admitted table. Either all of them are created
// or none are.
func (d *Documents) Migrate(ctx context.Context) error {
	tables := d.catalog.Tables()
	if len(tables) == 0 {
		return nil
	}
	return d.store.CreateTables(ctx, tables...)
}

// Add inserts a row and returns its rowid.
func (d *Documents) Add(ctx context.Context, table string, values map[string]string) (int64, error) {
	schema, ok := d.catalog.Table(table)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	id, err := d.store.Insert(ctx, schema, values)
	if err != nil {
		return 0, err
	}
	d.logger.Debug("document added", slog.String("table", table), slog.Int64("rowid", id))
	return id, nil
}

// Search runs lookup on table.field with operand and returns matching rows.
func (d *Documents) Search(ctx context.Context, table, field, lookupName string, operand any, opts ...SearchOption) ([]fts.Document, error) {
	cfg := newSearchConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	c, err := d.catalog.Compile(table, field, lookupName, operand)
	if err != nil {
		return nil, err
	}
	schema, _ := d.catalog.Table(table)

	options := []repository.Option{repository.WithMatch(c)}
	if cfg.byRank && schema.HasRank() {
		options = append(options, repository.WithOrderByRank())
	}
	options = append(options, repository.WithPagination(cfg.limit, cfg.offset)...)

	docs, err := d.store.Find(ctx, schema, options...)
	if err != nil {
		return nil, err
	}
	d.logger.Debug("search completed",
		slog.String("table", table),
		slog.String("lookup", lookupName),
		slog.Int("results", len(docs)),
	)
	return docs, nil
}

// Count returns the number of rows in table.
func (d *Documents) Count(ctx context.Context, table string) (int64, error) {
	schema, ok := d.catalog.Table(table)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}
	return d.store.Count(ctx, schema)
}
