package models

// ContentType represents the kind of title being discovered (movie or tv show)
type ContentType string

const (
	ContentTypeMovie ContentType = "movie"
	ContentTypeTV    ContentType = "tv"
)

// ParseContentType maps user input to a content type. "show" is accepted as
// an alias for tv; anything else falls back to movie.
func ParseContentType(s string) ContentType {
	switch s {
	case "tv", "show", "shows":
		return ContentTypeTV
	default:
		return ContentTypeMovie
	}
}

// Label returns the plural display label ("Movies" or "TV Shows")
func (t ContentType) Label() string {
	if t == ContentTypeTV {
		return "TV Shows"
	}
	return "Movies"
}

// SortKey represents a discovery ordering understood by the backend
type SortKey string

const (
	SortPopularityDesc  SortKey = "popularity.desc"
	SortPopularityAsc   SortKey = "popularity.asc"
	SortRatingDesc      SortKey = "vote_average.desc"
	SortRatingAsc       SortKey = "vote_average.asc"
	SortReleaseDateDesc SortKey = "primary_release_date.desc"
	SortReleaseDateAsc  SortKey = "primary_release_date.asc"
)

// SortKeys lists the orderings offered by the filter form
var SortKeys = []SortKey{
	SortPopularityDesc,
	SortPopularityAsc,
	SortRatingDesc,
	SortRatingAsc,
	SortReleaseDateDesc,
	SortReleaseDateAsc,
}

// OAuthSuccess is the message type signalling a completed federated login
const OAuthSuccess = "oauth_success"

// OAuthMessage is a cross-window message delivered at the end of federated login
type OAuthMessage struct {
	Type string `json:"type"`
}
