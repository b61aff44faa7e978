/*
Copyright © 2026 Casper Anton Poulsen
*/

// root.go defines the root command and CLI execution entry point.
//
// Separated from init_extensions.go to isolate cobra setup from extension
// initialisation logic.
//
// Design: PersistentPreRunE loads config, builds the logger and opens the
// audit log before any command runs. Errors are printed here rather than by
// cobra so the exit status can tell failed checks (1) from usage errors (2).

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/CasperAntonPoulsen/TargetsOfAbuse/internal/log"
	"github.com/CasperAntonPoulsen/TargetsOfAbuse/internal/validate"
)

// Exit statuses.
const (
	ExitOK     = 0
	ExitFailed = 1 // checks failed or the command errored
	ExitUsage  = 2 // bad arguments or flags
)

var rootCmd = &cobra.Command{
	Use:   "dagw",
	Short: "Validate and build Danish Gigaword corpus sections",
	Long: `Checks corpus sections for structural and metadata problems, builds
sections from hydrated tweets and keeps a ledger of validation runs.

Run 'dagw guide' for the section format and workflow.`,
	Args:          Args(cobra.NoArgs),
	SilenceErrors: true,
	SilenceUsage:  true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if format != "" && !slices.Contains(validFormats, format) {
			return Usagef("invalid output format: %s (valid: %v)", format, validFormats)
		}
		return initExtensions(topLevelCmdName(cmd))
	},
}

// topLevelCmdName returns the name of the top-level command (direct child of root).
// For "dagw validate corpus/foo", returns "validate".
func topLevelCmdName(cmd *cobra.Command) string {
	// Walk up until we find a command whose parent has no parent (the root)
	for cmd.HasParent() && cmd.Parent().HasParent() {
		cmd = cmd.Parent()
	}
	return cmd.Name()
}

// Execute runs the root command and exits the process with the status the
// outcome maps to.
func Execute() {
	registerExtensions()
	c, err := rootCmd.ExecuteC()
	log.Close()
	os.Exit(handleError(os.Stderr, c, err))
}

// handleError prints err to w and returns the exit status for it.
//
// Failed checks were already logged one message per line, so they only set
// the status. Usage errors print the failing command's usage.
func handleError(w io.Writer, c *cobra.Command, err error) int {
	if err == nil {
		return ExitOK
	}
	if errors.Is(err, validate.ErrChecksFailed) {
		return ExitFailed
	}

	var ue *UsageError
	if errors.As(err, &ue) {
		if c == nil {
			c = rootCmd
		}
		fmt.Fprintf(w, "error: %s\n", ue.Err)
		fmt.Fprint(w, c.UsageString())
		return ExitUsage
	}

	fmt.Fprintf(w, "Error: %v\n", err)
	return ExitFailed
}

func init() {
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})
}
