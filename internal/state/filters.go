package state

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/amaumene/cinescout/internal/models"
)

// Filter defaults applied when a control is empty
const (
	DefaultLanguage = "en"
	DefaultAdult    = "False"
	DefaultRating   = "5"
	DefaultSortBy   = string(models.SortPopularityDesc)
)

// FilterSet holds the raw values of the filter form controls
type FilterSet struct {
	Type     models.ContentType
	GenreIDs []string
	Language string
	Adult    string
	Rating   string
	SortBy   string
}

// Resolved returns a copy with defaults applied to empty controls
func (f FilterSet) Resolved() FilterSet {
	r := f
	r.GenreIDs = append([]string(nil), f.GenreIDs...)
	if r.Type == "" {
		r.Type = models.ContentTypeMovie
	}
	if r.Language == "" {
		r.Language = DefaultLanguage
	}
	if r.Adult == "" {
		r.Adult = DefaultAdult
	}
	if r.Rating == "" {
		r.Rating = DefaultRating
	}
	if r.SortBy == "" {
		r.SortBy = DefaultSortBy
	}
	return r
}

// Query builds the discovery query for page
func (f FilterSet) Query(page int) url.Values {
	r := f.Resolved()
	return url.Values{
		"type":     {string(r.Type)},
		"genres":   {strings.Join(r.GenreIDs, ",")},
		"language": {r.Language},
		"adult":    {r.Adult},
		"rating":   {r.Rating},
		"sortBy":   {r.SortBy},
		"page":     {strconv.Itoa(page)},
	}
}

// RatingValue parses the minimum rating, clamped to 0..10
func (f FilterSet) RatingValue() float64 {
	v, err := strconv.ParseFloat(f.Resolved().Rating, 64)
	if err != nil {
		v, _ = strconv.ParseFloat(DefaultRating, 64)
	}
	if v < 0 {
		return 0
	}
	if v > 10 {
		return 10
	}
	return v
}

// AdultEnabled reports whether adult titles are requested
func (f FilterSet) AdultEnabled() bool {
	return strings.EqualFold(f.Resolved().Adult, "true")
}

// HasGenre reports whether id is selected
func (f FilterSet) HasGenre(id string) bool {
	for _, g := range f.GenreIDs {
		if g == id {
			return true
		}
	}
	return false
}

// Preferences converts the filter set for storage
func (f FilterSet) Preferences() *models.Preferences {
	return &models.Preferences{
		Type:     f.Type,
		GenreIDs: append([]string(nil), f.GenreIDs...),
		Language: f.Language,
		Adult:    f.Adult,
		Rating:   f.Rating,
		SortBy:   f.SortBy,
	}
}

// FilterSetFromPreferences restores a stored filter set
func FilterSetFromPreferences(p *models.Preferences) FilterSet {
	if p == nil {
		return FilterSet{}
	}
	return FilterSet{
		Type:     p.Type,
		GenreIDs: append([]string(nil), p.GenreIDs...),
		Language: p.Language,
		Adult:    p.Adult,
		Rating:   p.Rating,
		SortBy:   p.SortBy,
	}
}
