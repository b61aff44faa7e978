// report.go defines check reports and how they combine.
//
// Design: Report is a value type. Fail and Combine return new reports and
// never touch the receiver's message slice, so a report handed to a caller
// cannot change underneath it.

package validate

import (
	"fmt"
	"log/slog"
	"slices"
)

// Report is the outcome of a single check.
type Report struct {
	Name     string
	Passed   bool
	Messages []string
}

// NewReport returns a passing report with no messages.
func NewReport(name string) Report {
	return Report{Name: name, Passed: true}
}

// Fail returns a copy of r marked as failed with msg appended.
func (r Report) Fail(msg string) Report {
	r.Passed = false
	r.Messages = append(slices.Clip(r.Messages), msg)
	return r
}

// Combine folds b into a. The result passes only if both pass. Messages of b
// are appended only when b failed. The name of a is kept.
func Combine(a, b Report) Report {
	out := Report{
		Name:     a.Name,
		Passed:   a.Passed && b.Passed,
		Messages: slices.Clone(a.Messages),
	}
	if !b.Passed && len(b.Messages) > 0 {
		out.Messages = append(out.Messages, b.Messages...)
	}
	return out
}

// checkSet returns a report that fails with one message per item, each
// formatted with format. An empty set passes.
func checkSet(items []string, format string) Report {
	r := NewReport("")
	for _, item := range items {
		r = r.Fail(fmt.Sprintf(format, item))
	}
	return r
}

// Summary holds the reports of one validation run in check order.
type Summary struct {
	Reports []Report
}

// Passed returns the reports that passed.
func (s Summary) Passed() []Report {
	var out []Report
	for _, r := range s.Reports {
		if r.Passed {
			out = append(out, r)
		}
	}
	return out
}

// Failed returns the reports that failed.
func (s Summary) Failed() []Report {
	var out []Report
	for _, r := range s.Reports {
		if !r.Passed {
			out = append(out, r)
		}
	}
	return out
}

// OK reports whether every check passed.
func (s Summary) OK() bool {
	return len(s.Failed()) == 0
}

// Messages returns all failure messages in check order.
func (s Summary) Messages() []string {
	var out []string
	for _, r := range s.Reports {
		out = append(out, r.Messages...)
	}
	return out
}

// Names returns the check names of reports.
func Names(reports []Report) []string {
	names := make([]string, len(reports))
	for i, r := range reports {
		names[i] = r.Name
	}
	return names
}

// Log writes the run summary: pass and fail counts at INFO, then every
// failure message at ERROR.
func (s Summary) Log(l *slog.Logger) {
	passed, failed := s.Passed(), s.Failed()
	total := len(s.Reports)
	l.Info(fmt.Sprintf("Passed %d of %d tests: %q", len(passed), total, Names(passed)))
	l.Info(fmt.Sprintf("Failed %d of %d tests: %q", len(failed), total, Names(failed)))
	for _, m := range s.Messages() {
		l.Error(m)
	}
}
