// context.go defines the Context interface for extension access to dagw internals.
//
// Separated from extension.go to isolate dependency injection concerns.
// The Context provides a controlled surface area for extensions - they can
// access what they need without reaching into arbitrary internals.
//
// Design: Context uses an interface to enable testing with mock implementations.
// Extensions receive Context during Init(), not at construction, because
// extensions register before flags are parsed and config is loaded.

package extension

import (
	"log/slog"

	"github.com/CasperAntonPoulsen/TargetsOfAbuse/internal/config"
)

// Context provides extensions controlled access to dagw internals.
// Extensions receive this during initialisation to access shared resources.
type Context interface {
	// Config returns user configuration for respecting user preferences.
	Config() *config.Config

	// Logger returns the run logger writing to stderr.
	Logger() *slog.Logger
}

// extContext implements Context.
type extContext struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewContext creates a new extension context.
func NewContext(cfg *config.Config, logger *slog.Logger) Context {
	return &extContext{
		cfg:    cfg,
		logger: logger,
	}
}

// Config returns the loaded user configuration for respecting preferences.
func (c *extContext) Config() *config.Config {
	return c.cfg
}

// Logger returns the logger configured from --log-level and log.level.
func (c *extContext) Logger() *slog.Logger {
	return c.logger
}
