package ui

import (
	"strconv"

	"github.com/amaumene/cinescout/internal/models"
	"github.com/amaumene/cinescout/internal/state"
)

// ratingStep is how far one key press moves the minimum rating
const ratingStep = 0.5

type filterField int

const (
	fieldType filterField = iota
	fieldGenres
	fieldLanguage
	fieldAdult
	fieldRating
	fieldSort
	fieldCount
)

var fieldLabels = [fieldCount]string{
	fieldType:     "Type",
	fieldGenres:   "Genres",
	fieldLanguage: "Language",
	fieldAdult:    "Adult",
	fieldRating:   "Min rating",
	fieldSort:     "Sort by",
}

func otherType(t models.ContentType) models.ContentType {
	if t == models.ContentTypeTV {
		return models.ContentTypeMovie
	}
	return models.ContentTypeTV
}

func stepRating(f state.FilterSet, delta float64) state.FilterSet {
	v := f.RatingValue() + delta
	if v < 0 {
		v = 0
	}
	if v > 10 {
		v = 10
	}
	f.Rating = strconv.FormatFloat(v, 'f', -1, 64)
	return f
}

func toggleAdult(f state.FilterSet) state.FilterSet {
	if f.AdultEnabled() {
		f.Adult = "False"
	} else {
		f.Adult = "True"
	}
	return f
}

func toggleGenre(f state.FilterSet, id string) state.FilterSet {
	ids := make([]string, 0, len(f.GenreIDs)+1)
	found := false
	for _, g := range f.GenreIDs {
		if g == id {
			found = true
			continue
		}
		ids = append(ids, g)
	}
	if !found {
		ids = append(ids, id)
	}
	f.GenreIDs = ids
	return f
}

func cycleLanguage(f state.FilterSet, languages []state.LanguageOption, delta int) state.FilterSet {
	if len(languages) == 0 {
		return f
	}
	current := f.Resolved().Language
	idx := 0
	for i, l := range languages {
		if l.Code == current {
			idx = i
			break
		}
	}
	f.Language = languages[wrap(idx+delta, len(languages))].Code
	return f
}

func cycleSort(f state.FilterSet, delta int) state.FilterSet {
	current := models.SortKey(f.Resolved().SortBy)
	idx := 0
	for i, k := range models.SortKeys {
		if k == current {
			idx = i
			break
		}
	}
	f.SortBy = string(models.SortKeys[wrap(idx+delta, len(models.SortKeys))])
	return f
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}
