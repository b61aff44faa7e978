// log_query.go reads entries back for the history command.

package log

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrClosed is returned when querying before Open.
var ErrClosed = errors.New("audit log not open")

// Query selects entries for Recent. Zero fields do not filter.
type Query struct {
	Section string // section path; matched through its project hash
	Source  string // e.g., "section:validate"
	Since   int64  // unix time; entries started earlier are skipped
	Limit   int    // 0 = no limit
}

// Recent returns matching entries, newest first.
func Recent(q Query) ([]Entry, error) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return nil, ErrClosed
	}
	return l.recent(q)
}

func (l *Logger) recent(q Query) ([]Entry, error) {
	var where []string
	var args []any
	if q.Section != "" {
		p := q.Section
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
		where = append(where, "project = ?")
		args = append(args, hash(p))
	}
	if q.Source != "" {
		where = append(where, "source = ?")
		args = append(args, q.Source)
	}

	if q.Since > 0 {
		where = append(where, "start >= ?")
		args = append(args, q.Since)
	}

	query := `SELECT id, run_id, start, end, source, action, section, success, error, detail FROM log`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id DESC"
	if q.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, q.Limit)
	}

	rows, err := l.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query audit log: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e                       Entry
			success                 int
			section, errMsg, detail sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.RunID, &e.Start, &e.End, &e.Source, &e.Action,
			&section, &success, &errMsg, &detail); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		e.Section = section.String
		e.Success = success == 1
		e.Error = errMsg.String
		if detail.Valid {
			if err := json.Unmarshal([]byte(detail.String), &e.Detail); err != nil {
				return nil, fmt.Errorf("decode detail of entry %d: %w", e.ID, err)
			}
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Strings returns a detail value that was written as a list of strings.
// JSON round-tripping turns it into []any; non-string items are skipped.
func (e Entry) Strings(key string) []string {
	var raw []any
	switch v := e.Detail[key].(type) {
	case []string:
		return v
	case []any:
		raw = v
	default:
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
