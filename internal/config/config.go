// Package config provides application configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Default configuration values.
const (
	DefaultHost         = "0.0.0.0"
	DefaultPort         = 8080
	DefaultLogLevel     = "INFO"
	DefaultSearchLimit  = 10
	DefaultSQLiteDriver = "sqlite"
	DefaultDBFile       = "ftsq.db"
)

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// AppConfig holds the main application configuration.
type AppConfig struct {
	host         string
	port         int
	dataDir      string
	dbURL        string
	sqliteDriver string
	schemaFile   string
	logLevel     string
	logFormat    LogFormat
	searchLimit  int
	pool         DBPool
}

// DBPool holds connection pool limits. The zero value keeps the driver
// defaults.
type DBPool struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// IsZero reports whether no pool limit is set.
func (p DBPool) IsZero() bool {
	return p.MaxOpenConns == 0 && p.MaxIdleConns == 0 && p.ConnMaxLifetime == 0
}

// DefaultDataDir returns the default data directory.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ftsq"
	}
	return filepath.Join(home, ".ftsq")
}

// DefaultDBURL returns the sqlite URL for the database file in dataDir.
func DefaultDBURL(dataDir string) string {
	return "sqlite:///" + filepath.Join(dataDir, DefaultDBFile)
}

// NewAppConfig creates a new AppConfig with defaults.
func NewAppConfig() AppConfig {
	dataDir := DefaultDataDir()
	return AppConfig{
		host:         DefaultHost,
		port:         DefaultPort,
		dataDir:      dataDir,
		dbURL:        DefaultDBURL(dataDir),
		sqliteDriver: DefaultSQLiteDriver,
		logLevel:     DefaultLogLevel,
		logFormat:    LogFormatPretty,
		searchLimit:  DefaultSearchLimit,
	}
}

// Host returns the server host to bind to.
func (c AppConfig) Host() string { return c.host }

// Port returns the server port to listen on.
func (c AppConfig) Port() int { return c.port }

// Addr returns the combined host:port address.
func (c AppConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.host, c.port)
}

// DataDir returns the data directory path.
func (c AppConfig) DataDir() string { return c.dataDir }

// DBURL returns the database connection URL.
func (c AppConfig) DBURL() string { return c.dbURL }

// SQLiteDriver returns the database/sql driver name used for sqlite URLs.
func (c AppConfig) SQLiteDriver() string { return c.sqliteDriver }

// SchemaFile returns the path of the YAML table declarations, if any.
func (c AppConfig) SchemaFile() string { return c.schemaFile }

// LogLevel returns the log level.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// SearchLimit returns the default search result limit.
func (c AppConfig) SearchLimit() int { return c.searchLimit }

// DBPool returns the connection pool limits.
func (c AppConfig) DBPool() DBPool { return c.pool }

// EnsureDataDir creates the data directory if it doesn't exist.
func (c AppConfig) EnsureDataDir() error {
	if err := os.MkdirAll(c.dataDir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	return nil
}

// AppConfigOption is a functional option for AppConfig.
type AppConfigOption func(*AppConfig)

// WithHost sets the server host.
func WithHost(host string) AppConfigOption {
	return func(c *AppConfig) { c.host = host }
}

// WithPort sets the server port.
func WithPort(port int) AppConfigOption {
	return func(c *AppConfig) { c.port = port }
}

// WithDataDir sets the data directory.
func WithDataDir(dir string) AppConfigOption {
	return func(c *AppConfig) {
		// Keep the default database inside the data directory.
		if c.dbURL == "" || c.dbURL == DefaultDBURL(c.dataDir) {
			c.dbURL = DefaultDBURL(dir)
		}
		c.dataDir = dir
	}
}

// WithDBURL sets the database URL.
func WithDBURL(url string) AppConfigOption {
	return func(c *AppConfig) { c.dbURL = url }
}

// WithSQLiteDriver sets the sqlite driver name ("sqlite" or "sqlite3").
func WithSQLiteDriver(name string) AppConfigOption {
	return func(c *AppConfig) { c.sqliteDriver = name }
}

// WithSchemaFile sets the YAML table declarations path.
func WithSchemaFile(path string) AppConfigOption {
	return func(c *AppConfig) { c.schemaFile = path }
}

// WithLogLevel sets the log level.
func WithLogLevel(level string) AppConfigOption {
	return func(c *AppConfig) { c.logLevel = level }
}

// WithLogFormat sets the log format.
func WithLogFormat(format LogFormat) AppConfigOption {
	return func(c *AppConfig) { c.logFormat = format }
}

// WithSearchLimit sets the default search result limit.
func WithSearchLimit(n int) AppConfigOption {
	return func(c *AppConfig) {
		if n > 0 {
			c.searchLimit = n
		}
	}
}

// WithDBPool sets the connection pool limits.
func WithDBPool(pool DBPool) AppConfigOption {
	return func(c *AppConfig) { c.pool = pool }
}

// NewAppConfigWithOptions creates an AppConfig with functional options.
func NewAppConfigWithOptions(opts ...AppConfigOption) AppConfig {
	return NewAppConfig().Apply(opts...)
}

// Apply returns a new AppConfig with the given options applied.
func (c AppConfig) Apply(opts ...AppConfigOption) AppConfig {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// LogAttrs returns slog attributes for logging the configuration.
func (c AppConfig) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("addr", c.Addr()),
		slog.String("data_dir", c.dataDir),
		slog.String("db_url", c.maskedDBURL()),
		slog.String("sqlite_driver", c.sqliteDriver),
		slog.String("schema_file", c.schemaFile),
		slog.String("log_level", c.logLevel),
		slog.Int("search_limit", c.searchLimit),
		slog.Int("db_max_open_conns", c.pool.MaxOpenConns),
	}
}

func (c AppConfig) maskedDBURL() string {
	if c.dbURL == "" {
		return "(default)"
	}
	if strings.HasPrefix(c.dbURL, "sqlite:") {
		return c.dbURL
	}
	return "postgres://***@***"
}
