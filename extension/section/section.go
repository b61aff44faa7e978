// Package section provides the section extension for dagw.
// It registers the validate command.
package section

import (
	"github.com/spf13/cobra"

	"github.com/CasperAntonPoulsen/TargetsOfAbuse/extension"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the section extension.
type Extension struct{}

// Compile-time interface compliance.
var _ extension.Extension = (*Extension)(nil)

// Name returns "section".
func (e *Extension) Name() string { return "section" }

// Commands returns the section commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		newValidateCmd(),
	}
}
