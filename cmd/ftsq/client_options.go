package main

import (
	"fmt"
	"log/slog"

	"github.com/helixml/ftsq"
	"github.com/helixml/ftsq/internal/config"
)

// clientOptions returns the ftsq.Option slice derived from AppConfig.
func clientOptions(cfg config.AppConfig, logger *slog.Logger) []ftsq.Option {
	opts := []ftsq.Option{
		ftsq.WithDatabaseURL(cfg.DBURL()),
		ftsq.WithSQLiteDriver(cfg.SQLiteDriver()),
		ftsq.WithSearchLimit(cfg.SearchLimit()),
		ftsq.WithLogger(logger),
	}
	if cfg.SchemaFile() != "" {
		opts = append(opts, ftsq.WithSchemaFile(cfg.SchemaFile()))
	}
	if pool := cfg.DBPool(); !pool.IsZero() {
		opts = append(opts, ftsq.WithConnectionPool(pool.MaxOpenConns, pool.MaxIdleConns, pool.ConnMaxLifetime))
	}
	return opts
}

// openClient loads configuration, configures logging and opens a Client.
// The caller closes the returned client.
func openClient(flags *globalFlags) (*ftsq.Client, config.AppConfig, error) {
	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, config.AppConfig{}, err
	}
	if err := cfg.EnsureDataDir(); err != nil {
		return nil, config.AppConfig{}, fmt.Errorf("create data directory: %w", err)
	}

	logger := configureLogger(cfg)

	client, err := ftsq.New(clientOptions(cfg, logger)...)
	if err != nil {
		return nil, config.AppConfig{}, fmt.Errorf("create ftsq client: %w", err)
	}
	return client, cfg, nil
}
