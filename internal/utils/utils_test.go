package utils

import "testing"

func TestReleaseYear(t *testing.T) {
	cases := map[string]int{
		"2009-12-18":           2009,
		"1999-03-31T00:00:00Z": 1999,
		"2015":                 2015,
		"":                     0,
		"unknown":              0,
	}

	for input, expected := range cases {
		if got := ReleaseYear(input); got != expected {
			t.Errorf("ReleaseYear(%q) = %d, expected %d", input, got, expected)
		}
	}
}

func TestClosestMatches(t *testing.T) {
	genres := []string{"Action", "Adventure", "Animation", "Comedy", "Crime", "Drama"}

	matches := ClosestMatches("acton", genres, 3)
	if len(matches) == 0 || matches[0] != "Action" {
		t.Fatalf("Expected 'Action' as best match, got %v", matches)
	}

	if got := ClosestMatches("zzzzzzzzzz", genres, 3); len(got) != 0 {
		t.Errorf("Expected no matches for distant input, got %v", got)
	}

	if got := ClosestMatches("", genres, 3); got != nil {
		t.Errorf("Expected nil for empty input, got %v", got)
	}
}

func TestCompareNames(t *testing.T) {
	c := NewCollator()
	if CompareNames(c, "action", "Drama") >= 0 {
		t.Error("Expected 'action' to sort before 'Drama' ignoring case")
	}
	if CompareNames(c, "Comedy", "comedy") != 0 {
		t.Error("Expected case-insensitive equality")
	}
}
