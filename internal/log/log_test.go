package log

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useTempDB points the logger at a fresh database for the test.
func useTempDB(t *testing.T) {
	t.Helper()
	tmpDir := t.TempDir()
	origDBPath := dbPathFunc
	dbPathFunc = func() string {
		return filepath.Join(tmpDir, "log", "test.db")
	}
	t.Cleanup(func() {
		Close()
		dbPathFunc = origDBPath
	})
	Close()
}

func TestLogger(t *testing.T) {
	useTempDB(t)

	t.Run("open and close", func(t *testing.T) {
		err := Open()
		require.NoError(t, err)
		defer Close()

		assert.FileExists(t, DBPath())
	})

	t.Run("log entry", func(t *testing.T) {
		err := Open()
		require.NoError(t, err)
		defer Close()

		Log(Entry{
			RunID:   "run-1",
			Source:  "section:validate",
			Action:  "validate",
			Section: "/corpus/foo",
			Success: true,
		})

		db, err := sql.Open("sqlite", DBPath())
		require.NoError(t, err)
		defer db.Close()

		var source, action, section, project string
		var success int
		err = db.QueryRow("SELECT source, action, section, project, success FROM log WHERE run_id = 'run-1'").
			Scan(&source, &action, &section, &project, &success)
		require.NoError(t, err)
		assert.Equal(t, "section:validate", source)
		assert.Equal(t, "validate", action)
		assert.Equal(t, "/corpus/foo", section)
		assert.Equal(t, hash("/corpus/foo"), project)
		assert.Equal(t, 1, success)
	})

	t.Run("log error entry", func(t *testing.T) {
		err := Open()
		require.NoError(t, err)
		defer Close()

		Log(Entry{
			RunID:   "run-2",
			Source:  "section:validate",
			Action:  "validate",
			Success: false,
			Error:   "checks failed",
		})

		db, err := sql.Open("sqlite", DBPath())
		require.NoError(t, err)
		defer db.Close()

		var success int
		var errMsg string
		err = db.QueryRow("SELECT success, error FROM log ORDER BY id DESC LIMIT 1").
			Scan(&success, &errMsg)
		require.NoError(t, err)
		assert.Equal(t, 0, success)
		assert.Equal(t, "checks failed", errMsg)
	})

	t.Run("log without logger is noop", func(t *testing.T) {
		Close()

		// Should not panic
		Log(Entry{
			Source:  "test:cmd",
			Action:  "test",
			Success: true,
		})
	})

	t.Run("open is idempotent", func(t *testing.T) {
		err := Open()
		require.NoError(t, err)

		err = Open() // second call should succeed
		require.NoError(t, err)

		Close()
	})
}

func TestHash(t *testing.T) {
	h1 := hash("/corpus/foo")
	h2 := hash("/corpus/foo")
	h3 := hash("/corpus/bar")

	assert.Equal(t, h1, h2, "same input should produce same hash")
	assert.NotEqual(t, h1, h3, "different input should produce different hash")
	assert.Len(t, h1, 16, "BLAKE2b-64 should produce 16 hex chars")
}

func TestDBPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	expected := filepath.Join(home, ".dagw", "log", "dagw-log.db")

	origDBPath := dbPathFunc
	dbPathFunc = defaultDBPath
	defer func() { dbPathFunc = origDBPath }()

	assert.Equal(t, expected, DBPath())
}

func TestBuilder(t *testing.T) {
	useTempDB(t)
	require.NoError(t, Open())

	b := Event("section:validate", "validate").
		Section("/corpus/foo").
		Detail("failed", []string{"Auxiliary files"}).
		Detail("messages", []string{"File LICENSE does not exist"})
	runID := b.RunID()
	b.Write(errors.New("checks failed"))

	entries, err := Recent(Query{Section: "/corpus/foo"})
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, runID, e.RunID)
	assert.Equal(t, "/corpus/foo", e.Section)
	assert.False(t, e.Success)
	assert.Equal(t, "checks failed", e.Error)
	assert.Equal(t, []string{"Auxiliary files"}, e.Strings("failed"))
	assert.Equal(t, []string{"File LICENSE does not exist"}, e.Strings("messages"))
	assert.GreaterOrEqual(t, e.End, e.Start)
}

func TestRecent(t *testing.T) {
	useTempDB(t)
	require.NoError(t, Open())

	Event("section:validate", "validate").Section("/corpus/foo").Write(nil)
	Event("section:validate", "validate").Section("/corpus/bar").Write(nil)
	Event("tweets:expand", "expand").Section("/corpus/foo").Write(nil)
	Event("section:validate", "validate").Section("/corpus/foo").Detail("n", 2).Write(nil)

	t.Run("filter by section and source newest first", func(t *testing.T) {
		entries, err := Recent(Query{Section: "/corpus/foo", Source: "section:validate"})
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Greater(t, entries[0].ID, entries[1].ID)
		assert.EqualValues(t, 2, entries[0].Detail["n"])
	})

	t.Run("limit", func(t *testing.T) {
		entries, err := Recent(Query{Limit: 3})
		require.NoError(t, err)
		assert.Len(t, entries, 3)
	})

	t.Run("since", func(t *testing.T) {
		Log(Entry{RunID: "old", Source: "section:validate", Action: "validate", Start: 1000, End: 1000, Success: true})

		entries, err := Recent(Query{Source: "section:validate", Since: time.Now().Add(-time.Hour).Unix()})
		require.NoError(t, err)
		assert.Len(t, entries, 3)
		for _, e := range entries {
			assert.NotEqual(t, "old", e.RunID)
		}
	})

	t.Run("closed", func(t *testing.T) {
		Close()
		_, err := Recent(Query{})
		assert.ErrorIs(t, err, ErrClosed)
	})
}

func TestEntryStrings(t *testing.T) {
	e := Entry{Detail: map[string]any{"list": []any{"a", 1, "b"}, "scalar": "x"}}

	assert.Equal(t, []string{"a", "b"}, e.Strings("list"))
	assert.Nil(t, e.Strings("scalar"))
	assert.Nil(t, e.Strings("missing"))
}
