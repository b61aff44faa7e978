package extension

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CasperAntonPoulsen/TargetsOfAbuse/internal/config"
)

// testExtension is a minimal Extension implementation for testing.
type testExtension struct {
	name string
}

func (e testExtension) Name() string               { return e.name }
func (e testExtension) Commands() []*cobra.Command { return nil }

// configlessExtension declares commands that run without config.
type configlessExtension struct {
	testExtension
	cmds []string
}

func (e configlessExtension) NoConfigCommands() []string { return e.cmds }

// recordingExtension collects events and fails on request.
type recordingExtension struct {
	testExtension
	events []Event
	err    error
}

func (e *recordingExtension) HandleEvent(_ Context, evt Event) error {
	e.events = append(e.events, evt)
	return e.err
}

func TestRegister_PanicOnDuplicate(t *testing.T) {
	// Register with a unique name for this test
	name := "test-duplicate-panic"
	Register(testExtension{name: name})

	// Registering the same name again should panic
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic on duplicate registration, got none")
		}
	}()

	Register(testExtension{name: name})
}

func TestRegister_Order(t *testing.T) {
	Register(testExtension{name: "test-order-a"})
	Register(testExtension{name: "test-order-b"})

	names := Names()
	ia, ib := -1, -1
	for i, n := range names {
		switch n {
		case "test-order-a":
			ia = i
		case "test-order-b":
			ib = i
		}
	}
	require.NotEqual(t, -1, ia)
	assert.Less(t, ia, ib)
	assert.NotNil(t, Get("test-order-a"))
	assert.Nil(t, Get("test-order-missing"))
}

func TestNoConfigCommands(t *testing.T) {
	Register(configlessExtension{testExtension: testExtension{name: "test-configless"}, cmds: []string{"test-guide"}})

	cmds := NoConfigCommands()
	assert.True(t, cmds["test-guide"])
	assert.False(t, cmds["test-validate"])
}

func TestFire(t *testing.T) {
	rec := &recordingExtension{testExtension: testExtension{name: "test-events"}, err: errors.New("ledger unavailable")}
	Register(rec)

	var buf bytes.Buffer
	ctx := NewContext(&config.Config{}, slog.New(slog.NewTextHandler(&buf, nil)))

	Fire(ctx, SectionSkippedEvent{Path: "/corpus/foo", Namespace: "foo"})

	require.Len(t, rec.events, 1)
	assert.Equal(t, EventSectionSkipped, rec.events[0].EventType())
	assert.Equal(t, "/corpus/foo", rec.events[0].EventPath())
	assert.Contains(t, buf.String(), "event handler failed")
	assert.Contains(t, buf.String(), "extension=test-events")

	// A nil context is ignored.
	Fire(nil, SectionSkippedEvent{})
	assert.Len(t, rec.events, 1)
}
