package utils

import (
	"errors"
	"regexp"
	"strconv"
	"time"
)

// ErrInvalidFormat is returned for duration tokens that do not match
// the <number><unit> grammar.
var ErrInvalidFormat = errors.New("invalid duration format")

var durationRegex = regexp.MustCompile(`(?i)^(\d+)([smhd])$`)

// ParseDuration converts a human token like "10m", "2h" or "1d" into a
// time.Duration. Units are s, m, h and d, case-insensitive. Range
// limits are the caller's concern.
func ParseDuration(token string) (time.Duration, error) {
	match := durationRegex.FindStringSubmatch(token)
	if match == nil {
		return 0, ErrInvalidFormat
	}

	amount, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return 0, ErrInvalidFormat
	}

	var unit time.Duration
	switch match[2] {
	case "s", "S":
		unit = time.Second
	case "m", "M":
		unit = time.Minute
	case "h", "H":
		unit = time.Hour
	default:
		unit = 24 * time.Hour
	}
	return time.Duration(amount) * unit, nil
}
