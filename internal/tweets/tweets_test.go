package tweets

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CasperAntonPoulsen/TargetsOfAbuse/internal/path"
	"github.com/CasperAntonPoulsen/TargetsOfAbuse/internal/progress"
	"github.com/CasperAntonPoulsen/TargetsOfAbuse/internal/validate"
)

var fixedNow = time.Date(2022, time.March, 7, 9, 30, 0, 0, time.UTC)

func writeInput(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hydrated.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644))
	return path
}

func options(t *testing.T, input string) Options {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Copenhagen")
	require.NoError(t, err)
	return Options{
		Input:     input,
		Output:    filepath.Join(t.TempDir(), "twfv19"),
		Namespace: "twfv19",
		License:   "tweets license",
		Location:  loc,
		Now:       func() time.Time { return fixedNow },
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestExpand(t *testing.T) {
	input := writeInput(t,
		`{"id": 1, "full_text": "first tweet  \n"}`,
		`{"id": 2, "full_text": "line one\nline two"}`,
		`{"id": 3, "full_text": "   "}`,
		``,
		`{"id": 4, "full_text": "æøå"}`,
	)
	opts := options(t, input)

	res, err := Expand(opts)
	require.NoError(t, err)

	assert.Equal(t, "twfv19_0", res.DocID)
	assert.Equal(t, 4, res.Tweets)
	assert.Equal(t, 3, res.Written)
	assert.Equal(t, "Mon Mar  7 10:30:00 2022 CET +0100", res.Built)

	assert.Equal(t, "first tweet\nline one line two\næøå\n",
		readFile(t, filepath.Join(opts.Output, "twfv19_0")))
	assert.Equal(t, "tweets license", readFile(t, filepath.Join(opts.Output, "LICENSE")))

	var rec map[string]any
	manifest := readFile(t, filepath.Join(opts.Output, "twfv19.jsonl"))
	require.True(t, strings.HasSuffix(manifest, "\n"))
	require.NoError(t, json.Unmarshal([]byte(manifest), &rec))
	assert.Equal(t, map[string]any{
		"doc_id":     "twfv19_0",
		"uri":        "https://twitter.com",
		"date_built": "Mon Mar  7 10:30:00 2022 CET +0100",
	}, rec)
}

func TestExpand_SectionValidates(t *testing.T) {
	input := writeInput(t, `{"full_text": "hej med dig"}`, `{"full_text": "endnu et tweet"}`)
	opts := options(t, input)

	_, err := Expand(opts)
	require.NoError(t, err)

	s, err := validate.Open(opts.Output)
	require.NoError(t, err)

	sum, err := validate.New(validate.Options{
		CheckEncoding: true,
		Now:           func() time.Time { return fixedNow },
	}).Run(s)
	require.NoError(t, err)
	assert.True(t, sum.OK(), "messages: %v", sum.Messages())
	assert.Len(t, sum.Reports, 5)
}

func TestExpand_OutputExists(t *testing.T) {
	input := writeInput(t, `{"full_text": "new"}`)
	opts := options(t, input)
	require.NoError(t, os.MkdirAll(opts.Output, 0755))
	stale := filepath.Join(opts.Output, "stale")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0644))

	_, err := Expand(opts)
	assert.ErrorIs(t, err, ErrOutputExists)
	assert.FileExists(t, stale)

	opts.Force = true
	_, err = Expand(opts)
	require.NoError(t, err)
	assert.NoFileExists(t, stale)
	assert.Equal(t, "new\n", readFile(t, filepath.Join(opts.Output, "twfv19_0")))
}

func TestExpand_Malformed(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"not json", `{"full_text": `, "line 2"},
		{"missing full_text", `{"text": "short"}`, "missing full_text"},
		{"full_text not a string", `{"full_text": 3}`, "line 2"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			input := writeInput(t, `{"full_text": "ok"}`, tc.line)
			_, err := Expand(options(t, input))
			assert.ErrorIs(t, err, ErrMalformedTweet)
			assert.ErrorContains(t, err, tc.want)
		})
	}
}

func TestExpand_InvalidNamespace(t *testing.T) {
	input := writeInput(t, `{"full_text": "x"}`)
	for _, ns := range []string{"", "a/b", "..", `a\b`} {
		opts := options(t, input)
		opts.Namespace = ns
		_, err := Expand(opts)
		assert.ErrorIs(t, err, path.ErrInvalid, ns)
	}
}

func TestExpand_MissingInput(t *testing.T) {
	opts := options(t, filepath.Join(t.TempDir(), "absent.jsonl"))
	_, err := Expand(opts)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.NoDirExists(t, opts.Output)
}

func TestExpand_Progress(t *testing.T) {
	lines := make([]string, 5)
	for i := range lines {
		lines[i] = `{"full_text": "t"}`
	}
	opts := options(t, writeInput(t, lines...))

	var buf bytes.Buffer
	opts.Progress = progress.New(&buf, "Processing tweet", 2)

	_, err := Expand(opts)
	require.NoError(t, err)
	assert.Equal(t, "Processing tweet: 0\nProcessing tweet: 2\nProcessing tweet: 4\n", buf.String())
}

func TestExpand_DefaultLocation(t *testing.T) {
	opts := options(t, writeInput(t, `{"full_text": "x"}`))
	opts.Location = nil

	res, err := Expand(opts)
	require.NoError(t, err)
	assert.Equal(t, "Mon Mar  7 09:30:00 2022 UTC +0000", res.Built)
}
