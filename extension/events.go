// events.go defines the event types for extension notifications.
//
// Separated from extension.go to isolate the event system. Events let
// extensions react to finished runs without the producing command knowing
// about them; the history extension records them in the run ledger.
//
// Design: Events are fire-and-forget notifications, not approval requests.
// Extensions cannot block or veto operations via events - they observe
// after the fact.

package extension

import "github.com/CasperAntonPoulsen/TargetsOfAbuse/internal/validate"

// EventType identifies the kind of event.
type EventType string

const (
	EventSectionValidated EventType = "section:validated"
	EventSectionSkipped   EventType = "section:skipped"
	EventSectionExpanded  EventType = "section:expanded"
)

// Event is the base interface for all events.
type Event interface {
	EventType() EventType
	EventPath() string
}

// SectionValidatedEvent is fired after a validation run, including runs
// that stopped on an error. Summary is empty when Err is not a check failure.
type SectionValidatedEvent struct {
	Path      string
	Namespace string
	Encoding  bool // encoding check was enabled
	Summary   validate.Summary
	Err       error
}

func (e SectionValidatedEvent) EventType() EventType { return EventSectionValidated }
func (e SectionValidatedEvent) EventPath() string    { return e.Path }

// SectionSkippedEvent is fired when a section is not yet expanded and
// validation was skipped.
type SectionSkippedEvent struct {
	Path      string
	Namespace string
}

func (e SectionSkippedEvent) EventType() EventType { return EventSectionSkipped }
func (e SectionSkippedEvent) EventPath() string    { return e.Path }

// SectionExpandedEvent is fired after a tweet file was expanded into a
// section.
type SectionExpandedEvent struct {
	Path      string
	Namespace string
	Input     string
	Tweets    int
	Written   int
	Err       error
}

func (e SectionExpandedEvent) EventType() EventType { return EventSectionExpanded }
func (e SectionExpandedEvent) EventPath() string    { return e.Path }

// EventHandler is implemented by extensions that want to receive events.
type EventHandler interface {
	HandleEvent(ctx Context, e Event) error
}

// Fire notifies all registered event handlers.
//
// Handler errors are logged but not propagated: events are notifications,
// not veto points.
func Fire(ctx Context, e Event) {
	if ctx == nil {
		return
	}
	for _, ext := range All() {
		if h, ok := ext.(EventHandler); ok {
			if err := h.HandleEvent(ctx, e); err != nil {
				ctx.Logger().Warn("event handler failed",
					"extension", ext.Name(),
					"event", string(e.EventType()),
					"error", err)
			}
		}
	}
}
