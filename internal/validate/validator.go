// validator.go builds the ordered check list and runs it.
//
// Design: The check list is constructed per Validator from its Options
// rather than kept in a package-level registry, so enabling the encoding
// check for one run cannot leak into another.

package validate

import (
	"fmt"
	"time"
)

// DefaultEncodingLines is how many lines of each file the encoding check
// samples by default.
const DefaultEncodingLines = 51

// Options configures a Validator.
type Options struct {
	CheckEncoding bool             // run the slow UTF-8 encoding check
	EncodingLines int              // lines sampled per file (0 = DefaultEncodingLines)
	Now           func() time.Time // clock for the "current year" rules (nil = time.Now)
}

// Check is one named step of a validation run.
type Check struct {
	Name string
	Run  func(*Section) (Report, error)
}

// Validator runs the section checks.
type Validator struct {
	opts Options
}

// New returns a Validator for opts.
func New(opts Options) *Validator {
	return &Validator{opts: opts}
}

// Checks returns the checks in run order. The encoding check is present
// only when enabled.
func (v *Validator) Checks() []Check {
	checks := []Check{
		{Name: CheckPrefix, Run: v.checkPrefix},
		{Name: CheckAuxiliary, Run: v.checkAuxiliary},
		{Name: CheckManifest, Run: v.checkManifest},
		{Name: CheckFields, Run: v.checkFields},
	}
	if v.opts.CheckEncoding {
		checks = append(checks, Check{Name: CheckEncoding, Run: v.checkEncoding})
	}
	return checks
}

// Run executes every check against s in order. Failed checks do not stop
// the run; an error from any check does, and no summary is returned.
func (v *Validator) Run(s *Section) (Summary, error) {
	var sum Summary
	for _, c := range v.Checks() {
		r, err := c.Run(s)
		if err != nil {
			return Summary{}, fmt.Errorf("%s: %w", c.Name, err)
		}
		r.Name = c.Name
		sum.Reports = append(sum.Reports, r)
	}
	return sum, nil
}

func (v *Validator) now() time.Time {
	if v.opts.Now != nil {
		return v.opts.Now()
	}
	return time.Now()
}

func (v *Validator) encodingLines() int {
	if v.opts.EncodingLines > 0 {
		return v.opts.EncodingLines
	}
	return DefaultEncodingLines
}
