package format

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CasperAntonPoulsen/TargetsOfAbuse/internal/log"
)

func entry(id, action string, success bool, detail map[string]any) log.Entry {
	return log.Entry{
		RunID:   id,
		Source:  "section:validate",
		Action:  action,
		Section: "/corpus/foo",
		Start:   time.Date(2022, 3, 7, 10, 0, 0, 0, time.Local).Unix(),
		Success: success,
		Detail:  detail,
	}
}

func TestResult(t *testing.T) {
	failed := map[string]any{"failed": []any{"Auxiliary files"}}

	assert.Equal(t, ResultOK, Result(entry("a", "validate", true, nil)))
	assert.Equal(t, ResultSkip, Result(entry("a", "skip", true, nil)))
	assert.Equal(t, ResultFail, Result(entry("a", "validate", false, failed)))
	assert.Equal(t, ResultError, Result(entry("a", "validate", false, nil)))
}

func TestRuns(t *testing.T) {
	var buf bytes.Buffer
	bad := entry("0123456789abcdef", "validate", false, map[string]any{"failed": []any{"Auxiliary files", "Fields in metadata"}})
	broken := entry("fedcba9876543210", "validate", false, nil)
	broken.Error = "malformed manifest"

	require.NoError(t, Runs(&buf, []log.Entry{bad, broken}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "TIME"))
	assert.Contains(t, lines[1], "2022-03-07 10:00  01234567  FAIL")
	assert.Contains(t, lines[1], "failed: Auxiliary files, Fields in metadata")
	assert.Contains(t, lines[2], "ERROR")
	assert.Contains(t, lines[2], "error: malformed manifest")
}

func TestRuns_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Runs(&buf, nil))
	assert.Empty(t, buf.String())
}

func TestRunDiff(t *testing.T) {
	older := entry("aaaaaaaa-1", "validate", false, map[string]any{
		"messages": []any{"File LICENSE does not exist"},
	})

	t.Run("unchanged", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, RunDiff(&buf, older, older, false))
		assert.Contains(t, buf.String(), "=== run aaaaaaaa -> run aaaaaaaa")
		assert.Contains(t, buf.String(), "No changes in failure messages")
	})

	t.Run("fixed", func(t *testing.T) {
		var buf bytes.Buffer
		newer := entry("bbbbbbbb-2", "validate", true, nil)
		require.NoError(t, RunDiff(&buf, older, newer, false))
		assert.Contains(t, buf.String(), "--- run aaaaaaaa\n+++ run bbbbbbbb\n")
		assert.Contains(t, buf.String(), "- File LICENSE does not exist\n")
	})
}
