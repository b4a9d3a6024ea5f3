package observability

import (
	"log/slog"

	"github.com/couchcryptid/didyoufeelit/internal/config"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
)

// NewLogger builds the process logger from LOG_LEVEL and LOG_FORMAT and
// installs it as the slog default. Logs go to stdout; the terminal display
// writes to its own stream.
func NewLogger(cfg *config.Config) *slog.Logger {
	return sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat)
}

// Named returns a child logger tagged with a component name.
func Named(logger *slog.Logger, component string) *slog.Logger {
	return logger.With("component", component)
}
