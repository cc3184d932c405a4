package util

import (
	"fmt"
	"strings"
	"time"
)

var clockLayouts = []string{"15:04", "3:04PM", "3:04 PM", "03:04PM", "03:04 PM"}

// ParseClock parses a wall-clock time in 24-hour ("23:30") or 12-hour
// ("11:30PM", "9:45 AM") form and returns its next occurrence after now.
// A time that has already passed today resolves to tomorrow.
func ParseClock(input string, now time.Time) (time.Time, error) {
	input = strings.TrimSpace(strings.ToUpper(input))

	for _, layout := range clockLayouts {
		t, err := time.Parse(layout, input)
		if err != nil {
			continue
		}
		target := time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location())
		if !target.After(now) {
			target = target.AddDate(0, 0, 1)
		}
		return target, nil
	}

	return time.Time{}, fmt.Errorf("invalid time format: %s\n\nValid formats:\n"+
		"• 24-hour format: HH:MM (e.g., '23:30', '09:45')\n"+
		"• 12-hour format: HH:MM[AM|PM] (e.g., '11:30PM', '9:45 AM')", input)
}

// UntilClock returns how long from now until the next occurrence of input.
func UntilClock(input string, now time.Time) (time.Duration, error) {
	target, err := ParseClock(input, now)
	if err != nil {
		return 0, err
	}
	return target.Sub(now), nil
}
