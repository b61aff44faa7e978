// Package history lists recorded runs and compares two validation runs of a
// section.
//
// Every validation run is recorded in the audit log with its failure
// messages, so fixing a section can be followed run by run and the effect of
// an edit shown as a diff of messages.
package history

import (
	"errors"
	"fmt"
	"io"

	"github.com/CasperAntonPoulsen/TargetsOfAbuse/internal/format"
	"github.com/CasperAntonPoulsen/TargetsOfAbuse/internal/log"
)

// SourceValidate is the ledger source of validation runs.
const SourceValidate = "section:validate"

var (
	// ErrSectionRequired is returned when a diff is requested without a section.
	ErrSectionRequired = errors.New("a section is required to compare runs")
	// ErrNotEnoughRuns is returned when a run position exceeds the recorded runs.
	ErrNotEnoughRuns = errors.New("not enough runs recorded")
)

// Lister reads ledger entries, newest first. log.Recent satisfies it.
type Lister func(log.Query) ([]log.Entry, error)

// Options configures a history operation.
type Options struct {
	Section  string // section path (empty = all sections)
	Source   string // ledger source filter (empty = all)
	Since    int64  // unix time lower bound (0 = no bound)
	Limit    int    // maximum runs listed (0 = all)
	ShowDiff bool   // compare two validation runs instead of listing
	Older    int    // position of the older run, 1 = newest
	Newer    int    // position of the newer run
	Colour   bool   // colourise diff output
}

// Result contains the outcome of a history operation.
type Result struct {
	Entries []log.Entry // listed runs, or the two compared runs (older first)
}

// Run lists runs, or diffs two of them, and writes output to w.
func Run(w io.Writer, list Lister, opts Options) (Result, error) {
	if opts.ShowDiff {
		return compare(w, list, opts)
	}

	entries, err := list(log.Query{
		Section: opts.Section,
		Source:  opts.Source,
		Since:   opts.Since,
		Limit:   opts.Limit,
	})
	if err != nil {
		return Result{}, err
	}
	return Result{Entries: entries}, format.Runs(w, entries)
}

func compare(w io.Writer, list Lister, opts Options) (Result, error) {
	if opts.Section == "" {
		return Result{}, ErrSectionRequired
	}
	if opts.Older < 1 || opts.Newer < 1 {
		return Result{}, fmt.Errorf("run positions must be >= 1, got %d:%d", opts.Older, opts.Newer)
	}

	all, err := list(log.Query{Section: opts.Section, Source: SourceValidate, Since: opts.Since})
	if err != nil {
		return Result{}, err
	}

	// Skipped runs carry no messages.
	var runs []log.Entry
	for _, e := range all {
		if e.Action == "validate" {
			runs = append(runs, e)
		}
	}

	need := max(opts.Older, opts.Newer)
	if len(runs) < need {
		return Result{}, fmt.Errorf("%w: %s has %d validation runs, need %d",
			ErrNotEnoughRuns, opts.Section, len(runs), need)
	}

	older, newer := runs[opts.Older-1], runs[opts.Newer-1]
	return Result{Entries: []log.Entry{older, newer}}, format.RunDiff(w, older, newer, opts.Colour)
}
