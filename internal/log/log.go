// Package log provides the audit log of dagw runs. Entries are stored in
// ~/.dagw/log/dagw-log.db and record every validation run, tweet expansion
// and config change, so runs of a section can be listed and compared.
//
// # Fluent API
//
// Use the fluent builder API to construct and write log entries:
//
//	log.Event("section:validate", "validate").
//		Section(s.Path).
//		Detail("failed", validate.Names(sum.Failed())).
//		Write(err)
//
// The source parameter follows the format "{extension}:{command}".
// Examples: "section:validate", "tweets:expand", "core:config".
package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry represents a single log entry.
type Entry struct {
	ID      int64  // row id, set when read back
	RunID   string // unique per run
	Source  string // e.g., "section:validate"
	Action  string // verb: validate, expand, set, ...
	Section string // absolute path of the section the run targeted

	// Timing
	Start int64 // unix timestamp when Event() called
	End   int64 // unix timestamp when Write() called

	Success bool           // whether the run succeeded
	Error   string         // error message if failed
	Detail  map[string]any // additional run-specific data
}

// Builder constructs a log entry using a fluent API.
// Create with [Event], chain methods to set fields, then call [Builder.Write]
// to write the entry.
type Builder struct {
	entry Entry
}

// Event creates a new log entry builder for a run.
//
// The source identifies the command: "{extension}:{command}".
// The action describes what was done: "validate", "skip", "expand", "set".
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			RunID:  uuid.NewString(),
			Source: source,
			Action: action,
			Start:  time.Now().Unix(),
		},
	}
}

// Section sets the section directory the run targeted. Relative paths are
// made absolute so runs from different working directories line up.
func (b *Builder) Section(path string) *Builder {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	b.entry.Section = path
	return b
}

// Detail adds a key-value pair to the log entry's detail map.
//
// Use for run-specific data that doesn't fit standard fields: check names,
// failure messages, tweet counts.
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// RunID returns the id the entry will be written with.
func (b *Builder) RunID() string {
	return b.entry.RunID
}

// Write writes the log entry to the database, deriving success/failure from err.
//
// If err is nil, the entry is logged as successful.
// If err is non-nil, the entry is logged as failed with the error message.
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().Unix()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call multiple times.
// Errors are returned but callers may choose to ignore them (best-effort logging).
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := dbPath()
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db}
	if wd, err := os.Getwd(); err == nil {
		global.project = hash(wd)
	}
	return nil
}

// Log writes an entry. Safe to call if logger not initialised (no-op).
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
