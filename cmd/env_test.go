// Testing Strategy Design Decision:
//
// The cmd/ package contains CLI integration tests that exercise the full
// stack: flag parsing -> extensions -> validator/expander -> audit ledger.
// Each test builds a scratch corpus in a temp dir and runs the real binary
// with HOME pointed at another temp dir, so config and the ledger database
// never touch the user's files.
//
// The internal packages carry their own unit tests; these tests pin the
// behaviour only visible from outside: exit statuses, log lines and the
// interplay between commands.

package cmd

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// buildBinary compiles the dagw binary once for all tests.
func buildBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		// Build to a temp location
		tmpDir, err := os.MkdirTemp("", "dagw-test-bin-*")
		if err != nil {
			buildErr = err
			return
		}

		binaryName := "dagw"
		if os.PathSeparator == '\\' {
			binaryName = "dagw.exe"
		}
		binaryPath = filepath.Join(tmpDir, binaryName)

		// Find project root (parent of cmd/)
		wd := mustGetwd()
		projectRoot := filepath.Dir(wd)

		cmd := exec.Command("go", "build", "-o", binaryPath, ".")
		cmd.Dir = projectRoot
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = &buildError{err: err, output: string(out)}
			return
		}
	})

	if buildErr != nil {
		t.Fatalf("failed to build binary: %v", buildErr)
	}
	return binaryPath
}

type buildError struct {
	err    error
	output string
}

func (e *buildError) Error() string {
	return e.err.Error() + "\n" + e.output
}

func mustGetwd() string {
	dir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return dir
}

// testEnv holds test environment state.
type testEnv struct {
	t      *testing.T
	dir    string // working directory; sections are created here
	home   string // HOME for the binary
	binary string
}

// result is the outcome of one dagw invocation.
type result struct {
	stdout string
	stderr string
	code   int
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return &testEnv{
		t:      t,
		dir:    t.TempDir(),
		home:   t.TempDir(),
		binary: buildBinary(t),
	}
}

// exec runs dagw with args and returns its output and exit status.
func (e *testEnv) exec(args ...string) result {
	e.t.Helper()

	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.dir
	cmd.Env = append(os.Environ(), "HOME="+e.home, "USERPROFILE="+e.home)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	code := 0
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.ExitCode()
	} else if err != nil {
		e.t.Fatalf("dagw %v: %v", args, err)
	}
	return result{stdout: stdout.String(), stderr: stderr.String(), code: code}
}

// run executes dagw and fails the test unless it exits 0.
func (e *testEnv) run(args ...string) result {
	e.t.Helper()
	r := e.exec(args...)
	if r.code != 0 {
		e.t.Fatalf("dagw %v exited %d\nstdout: %s\nstderr: %s", args, r.code, r.stdout, r.stderr)
	}
	return r
}

// section writes a section named name under the working directory.
// Keys ending in "/" create directories.
func (e *testEnv) section(name string, files map[string]string) string {
	e.t.Helper()
	root := filepath.Join(e.dir, name)
	require.NoError(e.t, os.MkdirAll(root, 0755))
	for rel, content := range files {
		p := filepath.Join(root, rel)
		if strings.HasSuffix(rel, "/") {
			require.NoError(e.t, os.MkdirAll(p, 0755))
			continue
		}
		require.NoError(e.t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(e.t, os.WriteFile(p, []byte(content), 0644))
	}
	return root
}

// validSection writes a section that passes every check.
func (e *testEnv) validSection(name string) string {
	e.t.Helper()
	manifest := `{"doc_id": "` + name + `_1", "date_built": "Mon Mar  7 10:30:00 2022 CET +0100"}` + "\n" +
		`{"doc_id": "` + name + `_2", "year_published": 2020, "uri": "https://example.org"}` + "\n"
	return e.section(name, map[string]string{
		"LICENSE":       "CC0",
		name + "_1":     "første dokument\n",
		name + "_2":     "andet dokument\n",
		name + ".jsonl": manifest,
	})
}

// contains checks if output contains expected string.
func (e *testEnv) contains(output, expected string) {
	e.t.Helper()
	assert.Contains(e.t, output, expected)
}
