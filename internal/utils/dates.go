package utils

import (
	"regexp"
	"strconv"
	"time"
)

var yearRegex = regexp.MustCompile(`\b(\d{4})\b`)

// ReleaseYear extracts the year from a release or first-air date.
// Accepts ISO dates ("2009-12-18"), full timestamps and bare years.
// Returns 0 if no year is found.
func ReleaseYear(date string) int {
	if date == "" {
		return 0
	}

	if t, err := time.Parse("2006-01-02", date); err == nil {
		return t.Year()
	}
	if t, err := time.Parse(time.RFC3339, date); err == nil {
		return t.Year()
	}

	matches := yearRegex.FindStringSubmatch(date)
	if len(matches) > 1 {
		year, err := strconv.Atoi(matches[1])
		if err == nil {
			return year
		}
	}
	return 0
}
