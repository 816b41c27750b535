package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/helixml/ftsq/infrastructure/api"
	"github.com/helixml/ftsq/internal/config"
	"github.com/helixml/ftsq/internal/log"
)

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 10 * time.Second

func serveCmd(flags *globalFlags) *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. Environment variables
  4. Command line flags

Environment variables:
  HOST            Server host to bind to (default: 0.0.0.0)
  PORT            Server port to listen on (default: 8080)
  DATA_DIR        Data directory (default: ~/.ftsq)
  DB_URL          Database URL (default: sqlite:///{data_dir}/ftsq.db)
  SQLITE_DRIVER   sqlite (pure Go, FTS5) or sqlite3 (cgo, FTS3/FTS4) (default: sqlite)
  SCHEMA_FILE     YAML file declaring the FTS tables
  SEARCH_LIMIT    Default number of search results (default: 10)
  DB_MAX_OPEN_CONNS     Maximum open database connections (default: driver)
  DB_MAX_IDLE_CONNS     Maximum idle database connections (default: driver)
  DB_CONN_MAX_LIFETIME  Maximum connection lifetime, e.g. 30m (default: driver)
  LOG_LEVEL       Log level: DEBUG, INFO, WARN, ERROR (default: INFO)
  LOG_FORMAT      Log format: pretty, json (default: pretty)`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, flags, host, port)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Server host to bind to (default: 0.0.0.0)")
	cmd.Flags().IntVar(&port, "port", 0, "Server port to listen on (default: 8080)")

	return cmd
}

func runServe(ctx context.Context, flags *globalFlags, host string, port int) error {
	ctx = log.NewCorrelationID(ctx)

	client, cfg, err := openClient(flags)
	if err != nil {
		return err
	}
	cfg = applyServeOverrides(cfg, host, port)
	logger := client.Logger()

	defer func() {
		if err := client.Close(); err != nil {
			logger.ErrorContext(ctx, "failed to close ftsq client", slog.Any("error", err))
		}
	}()

	attrs := append([]slog.Attr{slog.String("version", version)}, cfg.LogAttrs()...)
	logger.LogAttrs(ctx, slog.LevelInfo, "starting ftsq", attrs...)

	server := api.NewAPIServer(client)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.ListenAndServe(cfg.Addr()); err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// applyServeOverrides applies the serve command's flag overrides.
func applyServeOverrides(cfg config.AppConfig, host string, port int) config.AppConfig {
	var opts []config.AppConfigOption

	if host != "" {
		opts = append(opts, config.WithHost(host))
	}
	if port != 0 {
		opts = append(opts, config.WithPort(port))
	}

	return cfg.Apply(opts...)
}
