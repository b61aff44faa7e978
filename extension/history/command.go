// command.go implements the "dagw history" command.
//
// Separated from history.go to isolate flag handling and output selection
// from ledger recording.

package history

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/CasperAntonPoulsen/TargetsOfAbuse/cmd"
	"github.com/CasperAntonPoulsen/TargetsOfAbuse/extension"
	"github.com/CasperAntonPoulsen/TargetsOfAbuse/internal/diff"
	"github.com/CasperAntonPoulsen/TargetsOfAbuse/internal/duration"
	"github.com/CasperAntonPoulsen/TargetsOfAbuse/internal/history"
	"github.com/CasperAntonPoulsen/TargetsOfAbuse/internal/log"
)

func newHistoryCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "history [section]",
		Short: "Show recorded runs",
		Long: `Lists recorded runs, newest first, optionally for one section.

  dagw history                          # all runs
  dagw history corpus/twfv19 -n 5       # last five runs of a section
  dagw history corpus/twfv19 --since 7d
  dagw history corpus/twfv19 --diff     # previous vs latest validation
  dagw history corpus/twfv19 --diff --runs 3:1

Run positions count back from the newest validation run, which is 1.`,
		Args: cmd.Args(cobra.MaximumNArgs(1)),
		RunE: runHistory,
	}
	c.Flags().IntP(extension.FlagLimit, "n", 0, "Limit number of runs shown")
	c.Flags().BoolP(extension.FlagDiff, "d", false, "Compare the failure messages of two validation runs")
	c.Flags().String(extension.FlagRuns, "2:1", "Runs to compare with --diff (older:newer)")
	c.Flags().String(extension.FlagSince, "", "Only runs newer than this age (12h, 7d, 4w, 3m)")
	c.Flags().String(extension.FlagSource, "", "Only runs from this source (e.g., section:validate)")
	return c
}

// entryJSON is the --format json form of a ledger entry.
type entryJSON struct {
	RunID   string         `json:"run_id"`
	Source  string         `json:"source"`
	Action  string         `json:"action"`
	Section string         `json:"section,omitempty"`
	Start   string         `json:"start"`
	Success bool           `json:"success"`
	Error   string         `json:"error,omitempty"`
	Detail  map[string]any `json:"detail,omitempty"`
}

func toJSON(entries []log.Entry) []entryJSON {
	out := make([]entryJSON, len(entries))
	for i, e := range entries {
		out[i] = entryJSON{
			RunID:   e.RunID,
			Source:  e.Source,
			Action:  e.Action,
			Section: e.Section,
			Start:   time.Unix(e.Start, 0).Format(time.RFC3339),
			Success: e.Success,
			Error:   e.Error,
			Detail:  e.Detail,
		}
	}
	return out
}

func runHistory(c *cobra.Command, args []string) error {
	limit, _ := c.Flags().GetInt(extension.FlagLimit)
	showDiff, _ := c.Flags().GetBool(extension.FlagDiff)
	runs, _ := c.Flags().GetString(extension.FlagRuns)
	since, _ := c.Flags().GetString(extension.FlagSince)
	source, _ := c.Flags().GetString(extension.FlagSource)

	if limit < 0 {
		return cmd.Usagef("limit must be >= 0, got %d", limit)
	}

	opts := history.Options{
		Limit:    limit,
		Source:   source,
		ShowDiff: showDiff,
		Colour:   term.IsTerminal(int(os.Stdout.Fd())),
	}
	if len(args) > 0 {
		opts.Section = args[0]
	}
	if since != "" {
		d, err := duration.Parse(since)
		if err != nil {
			return cmd.Usagef("--%s: %v", extension.FlagSince, err)
		}
		opts.Since = duration.Since(time.Now(), d)
	}
	if showDiff {
		older, newer, err := diff.ParseRunRange(runs)
		if err != nil {
			return cmd.Usagef("--%s: %v", extension.FlagRuns, err)
		}
		opts.Older, opts.Newer = older, newer
		if opts.Section == "" {
			return &cmd.UsageError{Err: history.ErrSectionRequired}
		}
	}

	if !cmd.Config().Audit() {
		cmd.Logger().Warn("audit log is disabled (log.audit = false); new runs are not recorded")
	}
	// Reading works even when recording is disabled.
	if err := log.Open(); err != nil {
		return fmt.Errorf("history: audit log unavailable: %w", err)
	}

	w := cmd.Out()
	if cmd.JSON() {
		w = io.Discard
	}

	res, err := history.Run(w, log.Recent, opts)
	if err != nil {
		return fmt.Errorf("history: %w", err)
	}

	if cmd.JSON() {
		return cmd.PrintJSON(toJSON(res.Entries))
	}
	if !showDiff && len(res.Entries) == 0 {
		fmt.Fprintln(cmd.Out(), "No runs recorded")
	}
	return nil
}
