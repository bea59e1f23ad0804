package models

// WatchlistEntry is a saved title as listed by the backend
type WatchlistEntry struct {
	MovieID     int         `json:"movie_id"`
	MovieType   ContentType `json:"movie_type"`
	Title       string      `json:"title"`
	PosterPath  string      `json:"poster_path,omitempty"`
	VoteAverage *float64    `json:"vote_average,omitempty"`
	ReleaseDate string      `json:"release_date,omitempty"`
}

// AsResultItem rebuilds a minimal detail record from the saved fields.
// The poster doubles as the backdrop and the overview is a placeholder.
func (e WatchlistEntry) AsResultItem() ResultItem {
	return ResultItem{
		ID:           e.MovieID,
		Title:        e.Title,
		Name:         e.Title,
		VoteAverage:  e.VoteAverage,
		ReleaseDate:  e.ReleaseDate,
		FirstAirDate: e.ReleaseDate,
		PosterPath:   e.PosterPath,
		BackdropPath: e.PosterPath,
		Overview:     "Click to see full details",
	}
}

// WatchlistRecord is the payload sent when adding a title
type WatchlistRecord struct {
	MovieID     int         `json:"movieId"`
	MovieType   ContentType `json:"movieType"`
	Title       string      `json:"title"`
	PosterPath  string      `json:"posterPath"`
	VoteAverage *float64    `json:"voteAverage"`
	ReleaseDate string      `json:"releaseDate"`
}

// NewWatchlistRecord builds the add payload for an item shown as type t
func NewWatchlistRecord(item ResultItem, t ContentType) WatchlistRecord {
	title := item.Title
	if title == "" {
		title = item.Name
	}
	return WatchlistRecord{
		MovieID:     item.ID,
		MovieType:   t,
		Title:       title,
		PosterPath:  item.PosterPath,
		VoteAverage: item.VoteAverage,
		ReleaseDate: item.Date(t),
	}
}

// WatchlistKey identifies a saved title
type WatchlistKey struct {
	MovieID   int         `json:"movieId"`
	MovieType ContentType `json:"movieType"`
}
