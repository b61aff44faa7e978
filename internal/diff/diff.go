// Package diff computes and formats line diffs between the failure messages
// of two validation runs.
package diff

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// contextLines is the number of unchanged lines shown before/after changes.
// When equal sections exceed 2*contextLines, they're collapsed with "...".
const contextLines = 3

// Result holds diff output.
type Result struct {
	Old     string // old label
	New     string // new label
	Diff    string // plain diff text
	Changed bool   // whether any line was added or removed
}

// Compute returns a line diff between old and new content.
func Compute(oldContent, newContent, oldLabel, newLabel string) Result {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(oldContent, newContent)
	d := dmp.DiffMain(a, b, false)
	d = dmp.DiffCharsToLines(d, lines)

	changed := false
	for _, x := range d {
		if x.Type != diffmatchpatch.DiffEqual {
			changed = true
			break
		}
	}

	return Result{
		Old:     oldLabel,
		New:     newLabel,
		Diff:    format(d),
		Changed: changed,
	}
}

// Messages diffs two lists of failure messages, one message per line.
func Messages(oldMsgs, newMsgs []string, oldLabel, newLabel string) Result {
	return Compute(joinLines(oldMsgs), joinLines(newMsgs), oldLabel, newLabel)
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// format converts diffs to unified-style text.
func format(diffs []diffmatchpatch.Diff) string {
	var b strings.Builder
	for _, d := range diffs {
		// Trim trailing newline to avoid artefact empty string from Split
		text := strings.TrimSuffix(d.Text, "\n")
		if text == "" {
			continue
		}
		lines := strings.Split(text, "\n")
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			for _, l := range lines {
				b.WriteString("- " + l + "\n")
			}
		case diffmatchpatch.DiffInsert:
			for _, l := range lines {
				b.WriteString("+ " + l + "\n")
			}
		case diffmatchpatch.DiffEqual:
			if len(lines) > 2*contextLines {
				for i := range contextLines {
					b.WriteString("  " + lines[i] + "\n")
				}
				b.WriteString("  ...\n")
				for i := len(lines) - contextLines; i < len(lines); i++ {
					b.WriteString("  " + lines[i] + "\n")
				}
			} else {
				for _, l := range lines {
					b.WriteString("  " + l + "\n")
				}
			}
		}
	}
	return b.String()
}

// Colourise adds ANSI colours to diff output.
func Colourise(d string) string {
	const (
		red   = "\033[31m"
		green = "\033[32m"
		reset = "\033[0m"
	)

	var b strings.Builder
	for _, line := range strings.Split(d, "\n") {
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "- "):
			b.WriteString(red + line + reset + "\n")
		case strings.HasPrefix(line, "+ "):
			b.WriteString(green + line + reset + "\n")
		default:
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}

// Format returns the full diff with header.
func (r Result) Format(colour bool) string {
	header := fmt.Sprintf("--- %s\n+++ %s\n", r.Old, r.New)
	if colour {
		return header + Colourise(r.Diff)
	}
	return header + r.Diff
}

// ParseRunRange parses a run range like "2:1" into two run positions.
// Positions count back from the newest run, which is 1.
func ParseRunRange(s string) (older, newer int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid run range %q (expected a:b)", s)
	}
	if parts[0] == "" || parts[1] == "" {
		return 0, 0, fmt.Errorf("invalid run range %q: both runs required", s)
	}
	older, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid first run: %w", err)
	}
	newer, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid second run: %w", err)
	}
	if older < 1 {
		return 0, 0, fmt.Errorf("first run must be >= 1, got %d", older)
	}
	if newer < 1 {
		return 0, 0, fmt.Errorf("second run must be >= 1, got %d", newer)
	}
	return older, newer, nil
}
