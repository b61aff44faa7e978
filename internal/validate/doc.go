// Package validate checks a corpus section directory against the DAGW
// format rules.
//
// A section is a directory named after its namespace. It holds content
// files whose names start with the namespace, a manifest
// (<namespace>.jsonl) with one metadata record per content file, a LICENSE,
// and optionally a raw_data directory and a talere.json file.
//
// # Checks
//
// Validation runs a fixed, ordered list of independent checks. Each check
// returns a [Report]; reports never stop the run, so every rule gets a
// chance to speak:
//
//   - Content files prefix: content file names start with the namespace.
//   - Auxiliary files: the manifest and LICENSE exist.
//   - Test files manifest: every file is declared and every declaration exists.
//   - Fields in metadata: records only use documented keys, dates are sane.
//   - UTF-8 encoding: files are ASCII or UTF-8 (opt-in, slow).
//
// # Error Handling
//
// Rule violations are report messages, not errors. Errors are reserved for
// conditions that make a report meaningless (unreadable directory,
// malformed manifest JSON) and wrap one of the sentinels in errors.go:
//
//	if errors.Is(err, validate.ErrMalformedManifest) {
//	    // fix the manifest before validating again
//	}
package validate
