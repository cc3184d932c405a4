package util

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const durationHelp = "Valid formats:\n" +
	"• Minutes as a number: 90\n" +
	"• Go duration: 1h30m, 45m, 2h"

// ParseDuration accepts either a bare number of minutes or a Go duration
// string. Negative values are rejected.
func ParseDuration(input string) (time.Duration, error) {
	input = strings.TrimSpace(input)

	if minutes, err := strconv.Atoi(input); err == nil {
		if minutes < 0 {
			return 0, fmt.Errorf("invalid duration format: %s\n\n%s", input, durationHelp)
		}
		return time.Duration(minutes) * time.Minute, nil
	}

	d, err := time.ParseDuration(input)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid duration format: %q\n\n%s", input, durationHelp)
	}
	return d, nil
}
