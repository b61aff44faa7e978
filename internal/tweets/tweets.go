// Package tweets turns a file of hydrated tweets into a corpus section.
//
// The input is newline-delimited JSON as produced by tweet hydration tools;
// only the full_text of each tweet is used. The section holds one content
// file with a tweet per line, a LICENSE and a single-record manifest.
package tweets

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/CasperAntonPoulsen/TargetsOfAbuse/internal/path"
	"github.com/CasperAntonPoulsen/TargetsOfAbuse/internal/progress"
	"github.com/CasperAntonPoulsen/TargetsOfAbuse/internal/validate"
)

var (
	// ErrOutputExists is returned when the output directory exists and
	// overwriting was not requested.
	ErrOutputExists = errors.New("output directory already exists")
	// ErrMalformedTweet is returned for an input line that is not a tweet.
	ErrMalformedTweet = errors.New("malformed tweet")
)

// URI is the uri recorded in the manifest of every tweet section.
const URI = "https://twitter.com"

// DateLayout formats date_built: C locale date and time, zone name and
// numeric offset, e.g. "Mon Mar  7 10:00:00 2022 CET +0100".
const DateLayout = "Mon Jan _2 15:04:05 2006 MST -0700"

// Options configures Expand.
type Options struct {
	Input     string           // hydrated tweets, one JSON object per line
	Output    string           // section directory to create
	Namespace string           // section name; content file is <Namespace>_0
	License   string           // LICENSE text
	Location  *time.Location   // zone of date_built (nil = UTC)
	Force     bool             // remove an existing Output first
	Now       func() time.Time // clock for date_built (nil = time.Now)
	Progress  *progress.Progress
}

// Result describes a written section.
type Result struct {
	Path    string // section directory
	DocID   string // the single content file
	Tweets  int    // tweets read
	Written int    // non-empty texts written
	Built   string // date_built value
}

// record is the manifest line of a tweet section.
type record struct {
	DocID     string `json:"doc_id"`
	URI       string `json:"uri"`
	DateBuilt string `json:"date_built"`
}

type tweet struct {
	FullText *string `json:"full_text"`
}

// DocID returns the content file name for namespace.
func DocID(namespace string) string {
	return namespace + "_0"
}

// Expand converts opts.Input into a section at opts.Output.
func Expand(opts Options) (*Result, error) {
	if _, err := path.Namespace(opts.Namespace); err != nil {
		return nil, err
	}

	in, err := os.Open(opts.Input)
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}
	defer in.Close()

	if err := prepareOutput(opts.Output, opts.Force); err != nil {
		return nil, err
	}

	res := &Result{
		Path:  opts.Output,
		DocID: DocID(opts.Namespace),
		Built: builtAt(opts),
	}

	license := filepath.Join(opts.Output, validate.LicenseFile)
	if err := os.WriteFile(license, []byte(opts.License), 0644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", validate.LicenseFile, err)
	}

	if err := writeContent(in, filepath.Join(opts.Output, res.DocID), opts.Progress, res); err != nil {
		return nil, err
	}

	if err := writeManifest(filepath.Join(opts.Output, opts.Namespace+".jsonl"), record{
		DocID:     res.DocID,
		URI:       URI,
		DateBuilt: res.Built,
	}); err != nil {
		return nil, err
	}
	return res, nil
}

// prepareOutput creates dir, removing an existing one only when force is set.
func prepareOutput(dir string, force bool) error {
	_, err := os.Stat(dir)
	switch {
	case err == nil && !force:
		return fmt.Errorf("%w: %s (use --force to overwrite)", ErrOutputExists, dir)
	case err == nil:
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("removing %s: %w", dir, err)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("checking output: %w", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	return nil
}

func builtAt(opts Options) string {
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	return now().In(loc).Format(DateLayout)
}

// writeContent copies the text of each tweet in r to path, one per line.
func writeContent(r io.Reader, path string, p *progress.Progress, res *Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating content file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	br := bufio.NewReader(r)
	line := 0
	for {
		raw, readErr := br.ReadBytes('\n')
		if len(raw) > 0 {
			line++
		}
		if len(bytes.TrimSpace(raw)) > 0 {
			if p != nil {
				p.Step()
			}
			text, err := parseTweet(raw)
			if err != nil {
				return fmt.Errorf("line %d: %w", line, err)
			}
			res.Tweets++
			if text != "" {
				w.WriteString(text)
				w.WriteByte('\n')
				res.Written++
			}
		}
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return fmt.Errorf("reading input: %w", readErr)
		}
	}
	if p != nil {
		p.Done()
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing content file: %w", err)
	}
	return f.Close()
}

// parseTweet returns the right-trimmed full text of a tweet with its
// newlines replaced by spaces.
func parseTweet(raw []byte) (string, error) {
	var t tweet
	if err := json.Unmarshal(raw, &t); err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedTweet, err)
	}
	if t.FullText == nil {
		return "", fmt.Errorf("%w: missing full_text", ErrMalformedTweet)
	}
	text := strings.TrimRightFunc(*t.FullText, unicode.IsSpace)
	return strings.ReplaceAll(text, "\n", " "), nil
}

func writeManifest(path string, rec record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}
