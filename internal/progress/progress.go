// Package progress provides CLI progress indicators. Output goes to stderr
// to keep stdout clean for piping, and TTY detection ensures proper formatting
// in both interactive and scripted usage.
package progress

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// DefaultEvery is how many items pass between two progress reports.
const DefaultEvery = 1000

// Progress reports how many items of an open-ended stream have been
// processed. On a TTY the line is updated in place; otherwise one line is
// written every Every items.
type Progress struct {
	w       io.Writer
	label   string
	every   int
	current int
	isTTY   bool
}

// New creates a progress reporter writing to w. A nil w discards output.
// every <= 0 uses DefaultEvery.
func New(w io.Writer, label string, every int) *Progress {
	if w == nil {
		w = io.Discard
	}
	if every <= 0 {
		every = DefaultEvery
	}
	return &Progress{
		w:     w,
		label: label,
		every: every,
		isTTY: isTerminal(w),
	}
}

// Stderr creates a progress reporter on os.Stderr.
func Stderr(label string, every int) *Progress {
	return New(os.Stderr, label, every)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Step reports the item about to be processed. Items are counted from zero,
// so the first item is always reported.
func (p *Progress) Step() {
	if p.current%p.every == 0 {
		p.Print()
	}
	p.current++
}

// Count returns the number of items stepped so far.
func (p *Progress) Count() int {
	return p.current
}

// Print writes the current position.
func (p *Progress) Print() {
	if p.isTTY {
		// Overwrite line on TTY
		fmt.Fprintf(p.w, "\r%s: %d", p.label, p.current)
		return
	}
	fmt.Fprintf(p.w, "%s: %d\n", p.label, p.current)
}

// Done clears the progress line (on TTY) to make way for final output.
func (p *Progress) Done() {
	if p.isTTY {
		fmt.Fprintf(p.w, "\r%s\r", "                                        ")
	}
}
