/*
Copyright © 2026 Casper Anton Poulsen
*/

// usage.go marks errors caused by how a command was invoked.

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// UsageError is a bad invocation: unknown flags, wrong argument counts or
// missing required flags. It exits with ExitUsage.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }
func (e *UsageError) Unwrap() error { return e.Err }

// Usagef returns a UsageError with a formatted message.
func Usagef(format string, args ...any) error {
	return &UsageError{Err: fmt.Errorf(format, args...)}
}

// Args wraps a cobra argument validator so its errors are usage errors.
func Args(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(c *cobra.Command, args []string) error {
		if err := fn(c, args); err != nil {
			return &UsageError{Err: err}
		}
		return nil
	}
}

// RequireFlags returns a usage error naming every listed flag that was not
// set on c.
func RequireFlags(c *cobra.Command, names ...string) error {
	var missing []string
	for _, name := range names {
		if !c.Flags().Changed(name) {
			missing = append(missing, "--"+name)
		}
	}
	if len(missing) > 0 {
		return Usagef("required flag(s) %s not set", strings.Join(missing, ", "))
	}
	return nil
}
