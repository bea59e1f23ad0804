package utils

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxSuggestionDistance bounds how far a suggestion may be from the input
const maxSuggestionDistance = 3

// ClosestMatches returns up to limit candidates ordered by edit distance to
// input (case-insensitive). Candidates further than maxSuggestionDistance
// are ignored.
func ClosestMatches(input string, candidates []string, limit int) []string {
	needle := strings.ToLower(strings.TrimSpace(input))
	if needle == "" || limit <= 0 {
		return nil
	}

	type scored struct {
		name     string
		distance int
	}

	var matches []scored
	for _, candidate := range candidates {
		d := levenshtein.ComputeDistance(needle, strings.ToLower(candidate))
		if d <= maxSuggestionDistance {
			matches = append(matches, scored{name: candidate, distance: d})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].distance != matches[j].distance {
			return matches[i].distance < matches[j].distance
		}
		return matches[i].name < matches[j].name
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	result := make([]string, len(matches))
	for i, m := range matches {
		result[i] = m.name
	}
	return result
}
