// Package format provides output formatting utilities for CLI display.
//
// Centralises formatting logic so that command implementations focus on
// business logic while this package handles presentation concerns like
// column alignment and colourised output.
package format

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/CasperAntonPoulsen/TargetsOfAbuse/internal/diff"
	"github.com/CasperAntonPoulsen/TargetsOfAbuse/internal/log"
)

// Run results shown in the RESULT column.
const (
	ResultOK    = "OK"
	ResultFail  = "FAIL"
	ResultSkip  = "SKIP"
	ResultError = "ERROR"
)

// timeLayout is used for the TIME column.
const timeLayout = "2006-01-02 15:04"

// ShortID returns the first eight characters of a run id.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Result classifies an entry for display.
func Result(e log.Entry) string {
	switch {
	case e.Action == "skip":
		return ResultSkip
	case e.Success:
		return ResultOK
	case len(e.Strings("failed")) > 0:
		return ResultFail
	default:
		return ResultError
	}
}

// Runs prints ledger entries, one per line, newest first as given.
//
// Column order is TIME, RUN, RESULT, SOURCE, SECTION, DETAIL. Variable-length
// fields are placed last so they do not disrupt alignment.
func Runs(w io.Writer, entries []log.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	maxSource := 6 // minimum "SOURCE"
	for _, e := range entries {
		if len(e.Source) > maxSource {
			maxSource = len(e.Source)
		}
	}

	fmt.Fprintf(w, "%-16s  %-8s  %-6s  %-*s  %s\n", "TIME", "RUN", "RESULT", maxSource, "SOURCE", "SECTION")

	for _, e := range entries {
		section := e.Section
		if section == "" {
			section = "-"
		}
		fmt.Fprintf(w, "%s  %-8s  %-6s  %-*s  %s%s\n",
			time.Unix(e.Start, 0).Format(timeLayout),
			ShortID(e.RunID),
			Result(e),
			maxSource, e.Source,
			section,
			detail(e),
		)
	}
	return nil
}

// detail returns the trailing annotation of a run line.
func detail(e log.Entry) string {
	if failed := e.Strings("failed"); len(failed) > 0 {
		return "  failed: " + strings.Join(failed, ", ")
	}
	if !e.Success && e.Error != "" {
		return "  error: " + e.Error
	}
	return ""
}

// RunDiff prints the difference between the failure messages of two
// validation runs.
func RunDiff(w io.Writer, older, newer log.Entry, colour bool) error {
	fmt.Fprintf(w, "=== run %s -> run %s (%s -> %s) ===\n",
		ShortID(older.RunID), ShortID(newer.RunID),
		time.Unix(older.Start, 0).Format(timeLayout),
		time.Unix(newer.Start, 0).Format(timeLayout),
	)

	r := diff.Messages(older.Strings("messages"), newer.Strings("messages"),
		"run "+ShortID(older.RunID), "run "+ShortID(newer.RunID))
	if !r.Changed {
		fmt.Fprintln(w, "No changes in failure messages")
		return nil
	}
	fmt.Fprint(w, r.Format(colour))
	return nil
}
