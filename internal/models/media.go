package models

// Genre is one entry of the genre name -> id mapping
type Genre struct {
	Name string
	ID   int
}

// Language represents a language offered by the backend
type Language struct {
	Code        string `json:"iso_639_1"`
	EnglishName string `json:"english_name"`
	Name        string `json:"name,omitempty"`
}

// ResultItem represents one discovered title. Movies carry Title and
// ReleaseDate, shows carry Name and FirstAirDate.
type ResultItem struct {
	ID           int      `json:"id"`
	Title        string   `json:"title,omitempty"`
	Name         string   `json:"name,omitempty"`
	VoteAverage  *float64 `json:"vote_average,omitempty"`
	ReleaseDate  string   `json:"release_date,omitempty"`
	FirstAirDate string   `json:"first_air_date,omitempty"`
	PosterPath   string   `json:"poster_path,omitempty"`
	BackdropPath string   `json:"backdrop_path,omitempty"`
	Overview     string   `json:"overview,omitempty"`
}

// DisplayTitle prefers the movie title, then the show name
func (r ResultItem) DisplayTitle() string {
	if r.Title != "" {
		return r.Title
	}
	if r.Name != "" {
		return r.Name
	}
	return "Untitled"
}

// Date returns the date field that applies to the content type
func (r ResultItem) Date(t ContentType) string {
	if t == ContentTypeMovie {
		return r.ReleaseDate
	}
	return r.FirstAirDate
}

// ResultPage is one page of discovery results
type ResultPage struct {
	Page       int          `json:"page"`
	TotalPages int          `json:"totalPages"`
	Results    []ResultItem `json:"results"`
}

// Trailer is the video selected by the backend for a title
type Trailer struct {
	Key  string `json:"key"`
	Name string `json:"name,omitempty"`
	Site string `json:"site,omitempty"`
	Type string `json:"type,omitempty"`
}
