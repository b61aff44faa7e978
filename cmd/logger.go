/*
Copyright © 2026 Casper Anton Poulsen
*/

// logger.go builds the leveled stderr logger every command logs through.

package cmd

import (
	"io"
	"log/slog"
)

// timeLayout formats log timestamps, e.g. 03/07/2022 10:30:00.
const timeLayout = "01/02/2006 15:04:05"

// newLogger returns a text logger writing to w at level lvl.
func newLogger(w io.Writer, lvl slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.String(slog.TimeKey, a.Value.Time().Format(timeLayout))
			}
			return a
		},
	}))
}
