// errors.go defines sentinel errors for validation runs.
//
// Separated to centralise error definitions. Rule violations are reported
// through Report messages; these errors cover the cases where a run cannot
// produce a report at all, plus the overall "checks failed" outcome the CLI
// maps to its exit status.

package validate

import "errors"

var (
	ErrNotSection        = errors.New("not a section directory")
	ErrMalformedManifest = errors.New("malformed manifest")
	ErrChecksFailed      = errors.New("checks failed")
)
