// Package ftsq is a full-text search query layer over SQLite's FTS3, FTS4
// and FTS5 virtual tables.
//
// Tables are declared up front. Each one is checked against the
// capabilities of the connected engine, and tables or lookups the engine
// cannot serve are left out rather than failing later at query time.
//
// Basic usage:
//
//	breakfast, _ := fts.NewFTS5Schema("breakfast", fts.MustTextField("ingredients"))
//
//	client, err := ftsq.New(
//	    ftsq.WithSQLite(".ftsq/ftsq.db"),
//	    ftsq.WithSchemas(breakfast),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	_, err = client.Add(ctx, "breakfast", map[string]string{"ingredients": "Egg and SPAM"})
//
//	or, _ := fts.NewOr("baked beans", "lobster")
//	docs, err := client.Search(ctx, "breakfast", "ingredients", lookup.Match, or)
package ftsq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/helixml/ftsq/application/service"
	"github.com/helixml/ftsq/domain/capability"
	"github.com/helixml/ftsq/domain/fts"
	"github.com/helixml/ftsq/domain/lookup"
	"github.com/helixml/ftsq/infrastructure/persistence"
	"github.com/helixml/ftsq/infrastructure/schemafile"
	"github.com/helixml/ftsq/internal/database"
)

var (
	// ErrNoDatabase indicates New was called without a database option.
	ErrNoDatabase = errors.New("ftsq: no database configured")

	// ErrClientClosed indicates the client has been closed.
	ErrClientClosed = service.ErrClientClosed
)

// Client is the main entry point for the ftsq library. It is safe for
// concurrent use.
type Client struct {
	db          database.Database
	documents   *service.Documents
	logger      *slog.Logger
	searchLimit int
	closed      atomic.Bool
	mu          sync.Mutex
}

// New opens the database, probes its full-text capabilities, builds the
// catalog of admitted tables and creates them.
func New(opts ...Option) (*Client, error) {
	cfg := newClientConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.dbURL == "" {
		return nil, ErrNoDatabase
	}
	if cfg.err != nil {
		return nil, cfg.err
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	schemas := cfg.schemas
	if cfg.schemaFile != "" {
		loaded, err := schemafile.Load(cfg.schemaFile)
		if err != nil {
			return nil, err
		}
		schemas = append(schemas, loaded...)
	}

	ctx := context.Background()
	db, err := database.NewDatabase(ctx, cfg.dbURL,
		database.WithSQLiteDriver(cfg.sqliteDriver),
		database.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if !cfg.pool.IsZero() && !strings.HasSuffix(cfg.dbURL, ":memory:") {
		if err := db.ConfigurePool(cfg.pool.MaxOpenConns, cfg.pool.MaxIdleConns, cfg.pool.ConnMaxLifetime); err != nil {
			errClose := db.Close()
			return nil, errors.Join(fmt.Errorf("configure pool: %w", err), errClose)
		}
	}
	if db.IsPostgres() {
		logger.Warn("postgres has no fts virtual tables; every declared table is suppressed")
	}

	facts, err := database.ProbeFacts(ctx, db)
	if err != nil {
		errClose := db.Close()
		return nil, errors.Join(fmt.Errorf("probe capabilities: %w", err), errClose)
	}
	logger.Info("engine capabilities",
		slog.String("engine", string(facts.Engine())),
		slog.Any("generations", facts.Generations()),
	)

	catalog, err := service.NewCatalog(facts, lookup.Default(), logger, schemas...)
	if err != nil {
		errClose := db.Close()
		return nil, errors.Join(fmt.Errorf("build catalog: %w", err), errClose)
	}

	documents := service.NewDocuments(catalog, persistence.NewFTSStore(db, logger), logger)
	if err := documents.Migrate(ctx); err != nil {
		errClose := db.Close()
		return nil, errors.Join(fmt.Errorf("create tables: %w", err), errClose)
	}

	return &Client{
		db:          db,
		documents:   documents,
		logger:      logger,
		searchLimit: cfg.searchLimit,
	}, nil
}

// Add inserts a row into table and returns its rowid.
func (c *Client) Add(ctx context.Context, table string, values map[string]string) (int64, error) {
	if c.closed.Load() {
		return 0, ErrClientClosed
	}
	return c.documents.Add(ctx, table, values)
}

// Search runs a lookup against table.field. The operand is a string, an
// fts.Term, or for match_near a []string.
func (c *Client) Search(ctx context.Context, table, field, lookupName string, operand any, opts ...service.SearchOption) ([]fts.Document, error) {
	if c.closed.Load() {
		return nil, ErrClientClosed
	}
	opts = append([]service.SearchOption{service.WithLimit(c.searchLimit)}, opts...)
	return c.documents.Search(ctx, table, field, lookupName, operand, opts...)
}

// Count returns the number of rows in table.
func (c *Client) Count(ctx context.Context, table string) (int64, error) {
	if c.closed.Load() {
		return 0, ErrClientClosed
	}
	return c.documents.Count(ctx, table)
}

// Catalog returns the admitted tables and lookups.
func (c *Client) Catalog() service.Catalog {
	return c.documents.Catalog()
}

// Facts returns the capabilities detected on the connected engine.
func (c *Client) Facts() capability.Facts {
	return c.documents.Catalog().Facts()
}

// Logger returns the client's logger.
func (c *Client) Logger() *slog.Logger {
	return c.logger
}

// Close releases the database. It returns ErrClientClosed when called twice.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return ErrClientClosed
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}
