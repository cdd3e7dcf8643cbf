package reminder

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// MaxOffset is the furthest in the future a reminder can be set.
const MaxOffset = 366 * 24 * time.Hour

var durationRegex = regexp.MustCompile(
	`^(?:([0-9]+)(?:days|day|d))?` +
		`(?:([0-9]+)(?:hours|hour|h))?` +
		`(?:([0-9]+)(?:minutes|minute|mins|min|m))?` +
		`(?:([0-9]+)(?:seconds|second|secs|sec|s))?$`,
)

var durationUnits = [...]time.Duration{24 * time.Hour, time.Hour, time.Minute, time.Second}

// ParseDuration parses durations such as "1d", "2hours" or "1hour30min".
// Units must appear in the days, hours, minutes, seconds order.
func ParseDuration(s string) (time.Duration, error) {
	input := strings.ToLower(strings.TrimSpace(s))

	matches := durationRegex.FindStringSubmatch(input)
	if matches == nil {
		return 0, &InvalidDurationError{Input: s, Reason: "unknown format"}
	}

	var (
		total time.Duration
		found bool
	)

	for i, unit := range durationUnits {
		part := matches[i+1]
		if part == "" {
			continue
		}

		found = true

		n, err := strconv.ParseInt(part, 10, 64)
		if err != nil || n > int64(math.MaxInt64/unit) {
			return 0, &InvalidDurationError{Input: s, Reason: "number too large"}
		}

		d := time.Duration(n) * unit
		if total > math.MaxInt64-d {
			return 0, &InvalidDurationError{Input: s, Reason: "number too large"}
		}

		total += d
	}

	if !found {
		return 0, &InvalidDurationError{Input: s, Reason: "unknown format"}
	}

	return total, nil
}
