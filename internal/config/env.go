package config

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvConfig holds all environment-based configuration.
type EnvConfig struct {
	// Host is the server host to bind to.
	// Env: HOST (default: 0.0.0.0)
	Host string `envconfig:"HOST" default:"0.0.0.0"`

	// Port is the server port to listen on.
	// Env: PORT (default: 8080)
	Port int `envconfig:"PORT" default:"8080"`

	// DataDir is the data directory path.
	// Env: DATA_DIR
	// Default: ~/.ftsq
	DataDir string `envconfig:"DATA_DIR"`

	// DBURL is the database connection URL.
	// Env: DB_URL
	// Default: sqlite:///{data_dir}/ftsq.db
	DBURL string `envconfig:"DB_URL"`

	// SQLiteDriver selects the driver for sqlite URLs: "sqlite" (pure Go)
	// or "sqlite3" (cgo, FTS3/FTS4; FTS5 needs the fts5 build tag).
	// Env: SQLITE_DRIVER (default: sqlite)
	SQLiteDriver string `envconfig:"SQLITE_DRIVER" default:"sqlite"`

	// SchemaFile is the YAML file declaring virtual tables.
	// Env: SCHEMA_FILE
	SchemaFile string `envconfig:"SCHEMA_FILE"`

	// LogLevel is the log verbosity level.
	// Env: LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// LogFormat is the log output format (pretty or json).
	// Env: LOG_FORMAT (default: pretty)
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// SearchLimit is the default search result limit.
	// Env: SEARCH_LIMIT (default: 10)
	SearchLimit int `envconfig:"SEARCH_LIMIT" default:"10"`

	// DBMaxOpenConns caps open database connections; 0 keeps the driver default.
	// Env: DB_MAX_OPEN_CONNS
	DBMaxOpenConns int `envconfig:"DB_MAX_OPEN_CONNS"`

	// DBMaxIdleConns caps idle database connections.
	// Env: DB_MAX_IDLE_CONNS
	DBMaxIdleConns int `envconfig:"DB_MAX_IDLE_CONNS"`

	// DBConnMaxLifetime bounds how long a connection is reused, e.g. "30m".
	// Env: DB_CONN_MAX_LIFETIME
	DBConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME"`
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() (EnvConfig, error) {
	return LoadFromEnvWithPrefix("")
}

// LoadFromEnvWithPrefix loads configuration with a custom prefix.
// For example, prefix "FTSQ" would require FTSQ_DATA_DIR instead of DATA_DIR.
func LoadFromEnvWithPrefix(prefix string) (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// ToAppConfig converts EnvConfig to AppConfig.
func (e EnvConfig) ToAppConfig() AppConfig {
	var opts []AppConfigOption
	if e.Host != "" {
		opts = append(opts, WithHost(e.Host))
	}
	if e.Port != 0 {
		opts = append(opts, WithPort(e.Port))
	}
	if e.DataDir != "" {
		opts = append(opts, WithDataDir(e.DataDir))
	}
	if e.DBURL != "" {
		opts = append(opts, WithDBURL(e.DBURL))
	}
	if e.SQLiteDriver != "" {
		opts = append(opts, WithSQLiteDriver(e.SQLiteDriver))
	}
	if e.SchemaFile != "" {
		opts = append(opts, WithSchemaFile(e.SchemaFile))
	}
	if e.LogLevel != "" {
		opts = append(opts, WithLogLevel(strings.ToUpper(e.LogLevel)))
	}
	if e.LogFormat != "" {
		opts = append(opts, WithLogFormat(parseLogFormat(e.LogFormat)))
	}
	if e.SearchLimit > 0 {
		opts = append(opts, WithSearchLimit(e.SearchLimit))
	}
	pool := DBPool{
		MaxOpenConns:    e.DBMaxOpenConns,
		MaxIdleConns:    e.DBMaxIdleConns,
		ConnMaxLifetime: e.DBConnMaxLifetime,
	}
	if !pool.IsZero() {
		opts = append(opts, WithDBPool(pool))
	}
	return NewAppConfigWithOptions(opts...)
}

// parseLogFormat parses a log format string.
func parseLogFormat(s string) LogFormat {
	switch strings.ToLower(s) {
	case "json":
		return LogFormatJSON
	default:
		return LogFormatPretty
	}
}
