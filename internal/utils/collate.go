package utils

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// NewCollator returns a case-insensitive English collator used to order
// genre and language names alphabetically.
func NewCollator() *collate.Collator {
	return collate.New(language.English, collate.IgnoreCase)
}

// CompareNames compares two display names using locale-aware ordering
func CompareNames(c *collate.Collator, a, b string) int {
	return c.CompareString(a, b)
}
