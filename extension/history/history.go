// Package history provides the history extension for dagw. It records
// finished runs in the audit log and registers the history command that
// lists and compares them.
package history

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/CasperAntonPoulsen/TargetsOfAbuse/extension"
	"github.com/CasperAntonPoulsen/TargetsOfAbuse/internal/history"
	"github.com/CasperAntonPoulsen/TargetsOfAbuse/internal/log"
	"github.com/CasperAntonPoulsen/TargetsOfAbuse/internal/validate"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the history extension.
type Extension struct{}

var (
	_ extension.Extension    = (*Extension)(nil)
	_ extension.EventHandler = (*Extension)(nil)
)

// Name returns "history".
func (e *Extension) Name() string { return "history" }

// Commands returns the history command.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{newHistoryCmd()}
}

// HandleEvent records finished runs in the ledger. Writes are best-effort
// and a no-op when the audit log is disabled.
func (e *Extension) HandleEvent(_ extension.Context, evt extension.Event) error {
	switch ev := evt.(type) {
	case extension.SectionValidatedEvent:
		b := log.Event(history.SourceValidate, "validate").
			Section(ev.Path).
			Detail("namespace", ev.Namespace).
			Detail("check_enc", ev.Encoding)
		if len(ev.Summary.Reports) > 0 {
			b.Detail("passed", validate.Names(ev.Summary.Passed())).
				Detail("failed", validate.Names(ev.Summary.Failed())).
				Detail("messages", ev.Summary.Messages())
		}
		b.Write(ev.Err)

	case extension.SectionSkippedEvent:
		log.Event(history.SourceValidate, "skip").
			Section(ev.Path).
			Detail("namespace", ev.Namespace).
			Write(nil)

	case extension.SectionExpandedEvent:
		input := ev.Input
		if abs, err := filepath.Abs(input); err == nil {
			input = abs
		}
		log.Event("tweets:expand", "expand").
			Section(ev.Path).
			Detail("namespace", ev.Namespace).
			Detail("input", input).
			Detail("tweets", ev.Tweets).
			Detail("written", ev.Written).
			Write(ev.Err)
	}
	return nil
}
