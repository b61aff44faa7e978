// datetime.go checks the free-form date strings in manifest records.
//
// Dates are matched by pattern instead of parsed: the corpus sources render
// them with the platform's locale ("%c %Z %z"), which differs between Linux
// and macOS. Only the parts the corpus relies on are required.

package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var (
	offsetPattern = regexp.MustCompile(`[+-]\d{4}`)
	yearPattern   = regexp.MustCompile(`\s(\d{4})`)
)

// Zone abbreviations (CET, CEST) are accepted but never required; only the
// numeric offset is.

// CheckDatetime checks that s carries a numeric UTC offset and a four digit
// year preceded by whitespace, and that the year is not after now's year.
func CheckDatetime(s string, now time.Time) Report {
	r := NewReport("")
	if !offsetPattern.MatchString(s) {
		r = r.Fail("Missing timezone as offset from meta date: " + s)
	}

	m := yearPattern.FindStringSubmatch(s)
	if m == nil {
		return r.Fail("Missing year in meta date: " + s)
	}
	year, _ := strconv.Atoi(m[1])
	if current := now.Year(); year > current {
		r = r.Fail(fmt.Sprintf("Year %d is higher than current year %d in meta date: %s", year, current, s))
	}
	return r
}
