// Package duration parses the short age strings accepted by history --since.
//
// Users specify ages as "12h" (hours), "7d" (days), "4w" (weeks) or "3m"
// (months) rather than Go's time.Duration format.
package duration

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var pattern = regexp.MustCompile(`^(\d+)([hdwm])$`)

// Parse parses duration strings in the format: Nh, Nd, Nw, Nm.
// Examples: "7d" = 7 days, "4w" = 4 weeks, "3m" = 3 months (30 days).
func Parse(s string) (time.Duration, error) {
	matches := pattern.FindStringSubmatch(s)
	if matches == nil {
		return 0, fmt.Errorf("invalid duration format: %s (use 12h, 7d, 4w, or 3m)", s)
	}

	num, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0, fmt.Errorf("invalid number: %w", err)
	}

	day := 24 * time.Hour
	switch matches[2] {
	case "h":
		return time.Duration(num) * time.Hour, nil
	case "d":
		return time.Duration(num) * day, nil
	case "w":
		return time.Duration(num) * 7 * day, nil
	default:
		return time.Duration(num) * 30 * day, nil
	}
}

// Since returns the unix time d before now.
func Since(now time.Time, d time.Duration) int64 {
	return now.Add(-d).Unix()
}
