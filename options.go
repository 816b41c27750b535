package ftsq

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/helixml/ftsq/domain/fts"
	"github.com/helixml/ftsq/internal/config"
)

// clientConfig holds configuration for Client construction.
type clientConfig struct {
	dbURL        string
	sqliteDriver string
	schemas      []fts.Schema
	schemaFile   string
	searchLimit  int
	pool         config.DBPool
	logger       *slog.Logger
	err          error
}

// newClientConfig creates a clientConfig with defaults from internal/config.
func newClientConfig() *clientConfig {
	return &clientConfig{
		sqliteDriver: config.DefaultSQLiteDriver,
		searchLimit:  config.DefaultSearchLimit,
	}
}

// Option configures the Client.
type Option func(*clientConfig)

// WithSQLite stores tables in the SQLite database file at path, creating
// its directory if needed. Use ":memory:" for a private in-memory database.
func WithSQLite(path string) Option {
	return func(c *clientConfig) {
		if path != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				c.err = fmt.Errorf("create database directory: %w", err)
				return
			}
		}
		c.dbURL = "sqlite:///" + path
	}
}

// WithDatabaseURL connects using a sqlite:/// or postgres:// URL.
// On postgres every FTS table is suppressed.
func WithDatabaseURL(url string) Option {
	return func(c *clientConfig) {
		c.dbURL = url
	}
}

// WithSQLiteDriver selects "sqlite" (pure Go, the default; FTS5 only) or
// "sqlite3" (cgo; FTS3 and FTS4, plus FTS5 with the fts5 build tag).
func WithSQLiteDriver(name string) Option {
	return func(c *clientConfig) {
		c.sqliteDriver = name
	}
}

// WithSchemas declares virtual tables.
func WithSchemas(schemas ...fts.Schema) Option {
	return func(c *clientConfig) {
		c.schemas = append(c.schemas, schemas...)
	}
}

// WithSchemaFile declares virtual tables from a YAML file.
func WithSchemaFile(path string) Option {
	return func(c *clientConfig) {
		c.schemaFile = path
	}
}

// WithSearchLimit sets the default number of search results.
func WithSearchLimit(n int) Option {
	return func(c *clientConfig) {
		if n > 0 {
			c.searchLimit = n
		}
	}
}

// WithConnectionPool limits the database connection pool. Zero values keep
// the driver defaults. It is ignored for ":memory:", which always uses a
// single connection.
func WithConnectionPool(maxOpen, maxIdle int, maxLifetime time.Duration) Option {
	return func(c *clientConfig) {
		c.pool = config.DBPool{
			MaxOpenConns:    maxOpen,
			MaxIdleConns:    maxIdle,
			ConnMaxLifetime: maxLifetime,
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}
