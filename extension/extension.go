// Package extension provides the plugin architecture for dagw. Extensions
// encapsulate related commands and register at init time, enabling modular
// feature development without touching core code.
package extension

import "github.com/spf13/cobra"

// Extension defines the contract for dagw extensions.
type Extension interface {
	// Name returns a unique identifier for this extension.
	Name() string

	// Commands returns CLI commands to register with the root command.
	Commands() []*cobra.Command
}

// Initializable extensions can perform setup once config and logging are
// available.
type Initializable interface {
	Extension
	Init(ctx Context) error
}

// Configless is an optional interface for extensions with commands that
// must run even when the config file cannot be read. Commands returned by
// NoConfigCommands() fall back to defaults and print a warning instead of
// failing in PersistentPreRunE.
//
// Use cases:
// 1. config, so a broken file can be repaired with "dagw config"
// 2. Documentation and build information (guide, version)
type Configless interface {
	NoConfigCommands() []string
}
