/*
Copyright © 2026 Casper Anton Poulsen
*/

// init_extensions.go handles extension initialisation and command registration.
//
// Separated from root.go to isolate the initialisation logic that loads
// config, builds the logger, opens the audit log and wires up extensions.
//
// Design: Extensions register during init() but aren't initialised until
// first command execution. This two-phase pattern allows extensions to
// declare commands before flags are parsed. The context is created once and
// shared across all extensions.

package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/CasperAntonPoulsen/TargetsOfAbuse/extension"
	"github.com/CasperAntonPoulsen/TargetsOfAbuse/internal/config"
	"github.com/CasperAntonPoulsen/TargetsOfAbuse/internal/log"
)

// noConfigCommands lists commands that run on defaults when the config file
// cannot be read. Built from extension-declared Configless commands.
var noConfigCommands map[string]bool

// Global extension context, created during initialisation.
var (
	extContext extension.Context
	initOnce   sync.Once
	initErr    error
)

// initExtensions loads config, builds the logger and injects both into
// extensions. name is the top-level command being run.
func initExtensions(name string) error {
	initOnce.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			if !noConfigCommands[name] {
				initErr = err
				return
			}
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
			cfg = &config.Config{}
		}

		lvlName := logLevel
		if lvlName == "" {
			lvlName = cfg.LogLevel()
		}
		lvl, err := config.ParseLevel(lvlName)
		if err != nil {
			initErr = &UsageError{Err: fmt.Errorf("--log-level: %w", err)}
			return
		}
		logger := newLogger(os.Stderr, lvl)

		// The ledger is best-effort: a broken database must not stop validation.
		if cfg.Audit() {
			if err := log.Open(); err != nil {
				logger.Warn("audit log unavailable", "error", err)
			}
		}

		extContext = extension.NewContext(cfg, logger)
		for _, ext := range extension.All() {
			if init, ok := ext.(extension.Initializable); ok {
				if err := init.Init(extContext); err != nil {
					initErr = fmt.Errorf("init extension %s: %w", ext.Name(), err)
					return
				}
			}
		}
	})
	return initErr
}

// Config returns the loaded configuration, or defaults before initialisation.
func Config() *config.Config {
	if extContext == nil {
		return &config.Config{}
	}
	return extContext.Config()
}

// Logger returns the configured logger, or the slog default before
// initialisation.
func Logger() *slog.Logger {
	if extContext == nil {
		return slog.Default()
	}
	return extContext.Logger()
}

// Fire notifies extensions of e.
func Fire(e extension.Event) {
	extension.Fire(extContext, e)
}

var extensionsOnce sync.Once

// registerExtensions adds commands from all registered extensions.
// Called once before Execute runs.
func registerExtensions() {
	extensionsOnce.Do(func() {
		for _, ext := range extension.All() {
			for _, cmd := range ext.Commands() {
				rootCmd.AddCommand(cmd)
			}
		}

		// Build noConfigCommands after all extensions are registered
		noConfigCommands = extension.NoConfigCommands()
	})
}
