// Package core provides the core extension for dagw.
// It registers commands: config, guide, version.
package core

import (
	"github.com/spf13/cobra"

	"github.com/CasperAntonPoulsen/TargetsOfAbuse/extension"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the core extension.
type Extension struct{}

// Compile-time interface compliance. Catches missing methods at build time
// rather than runtime, making interface changes safer to refactor.
var (
	_ extension.Extension  = (*Extension)(nil)
	_ extension.Configless = (*Extension)(nil)
)

// Name returns "core" - this extension provides fundamental dagw commands.
func (e *Extension) Name() string { return "core" }

// Commands returns all core CLI commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		newConfigCmd(),
		newGuideCmd(),
		newVersionCmd(),
	}
}

// NoConfigCommands returns commands that run on defaults when the config
// file is unreadable.
// config: Loads the file itself and reports its own error, with --local support.
// guide, version: Don't depend on settings.
func (e *Extension) NoConfigCommands() []string {
	return []string{"config", "guide", "version"}
}
