package main

import (
	"log/slog"

	"github.com/helixml/ftsq/internal/config"
	"github.com/helixml/ftsq/internal/log"
)

// configureLogger installs the configured logger as the slog default.
func configureLogger(cfg config.AppConfig) *slog.Logger {
	return log.Configure(cfg).Slog()
}
