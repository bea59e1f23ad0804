// Package render projects application state into view models. Nothing here
// performs I/O or changes state; the terminal UI and the CLI both draw from
// the same projection.
package render

import (
	"fmt"
	"strings"

	"github.com/amaumene/cinescout/internal/models"
	"github.com/amaumene/cinescout/internal/state"
	"github.com/amaumene/cinescout/internal/utils"
)

// Image widths served by the image host
const (
	PosterWidth   = "w342"
	BackdropWidth = "w1280"
)

// Fixed texts of the projection
const (
	NoImage         = "No Image"
	NotRated        = "N/A"
	NoDescription   = "No description available."
	LoadingTrailer  = "Loading trailer..."
	NoTrailer       = "No trailer available"
	InWatchlist     = "✓ In Watchlist"
	AddToWatchlist  = "Add to Watchlist"
	WaitingForOAuth = "Waiting for Google sign-in to complete in your browser..."
)

// Projector builds view models. It only needs the media host URLs.
type Projector struct {
	imageBaseURL  string
	videoEmbedURL string
}

// NewProjector creates a projector for the given image and video hosts
func NewProjector(imageBaseURL, videoEmbedURL string) Projector {
	return Projector{
		imageBaseURL:  strings.TrimRight(imageBaseURL, "/"),
		videoEmbedURL: videoEmbedURL,
	}
}

// Card is one entry of a result or watchlist grid
type Card struct {
	Title       string
	Rating      string
	PosterURL   string // empty when Placeholder is set
	Placeholder string
	Type        models.ContentType
	Item        models.ResultItem // record handed to the details overlay
}

// Nav is the navigation bar
type Nav struct {
	Greeting      string
	ShowLogin     bool
	ShowLogout    bool
	ShowWatchlist bool
}

// LoadMore is the load-more control
type LoadMore struct {
	Visible bool
	Enabled bool
}

// Results is the discovery grid
type Results struct {
	Title    string
	Status   string
	Cards    []Card
	LoadMore LoadMore
}

// Modal is the details overlay
type Modal struct {
	Title          string
	Rating         string
	Year           string
	Overview       string
	BackdropURL    string
	ToggleLabel    string
	InWatchlist    bool
	TrailerMessage string // shown instead of a player
	TrailerURL     string // embed URL when a trailer exists
}

// Watchlist is the saved-titles grid
type Watchlist struct {
	Cards []Card
	Count string
	Empty string // empty-state text, blank when there are entries
}

// Auth is the auth overlay
type Auth struct {
	Open        bool
	Tab         state.AuthTab
	LoginError  string
	SignupError string
	Waiting     string
}

// Option is a selectable form value
type Option struct {
	Label    string
	Value    string
	Selected bool
}

// Filters is the filter form
type Filters struct {
	Type      models.ContentType
	Genres    []Option
	Languages []Option
	Adult     bool
	Rating    string
	SortBy    string
}

// Screen is the full projection of the state
type Screen struct {
	View      state.View
	Nav       Nav
	Filters   Filters
	Results   Results
	Modal     *Modal
	Auth      Auth
	Watchlist Watchlist
	Notice    string
}

// Screen projects s
func (p Projector) Screen(s state.State) Screen {
	screen := Screen{
		View:      s.View,
		Nav:       NavFor(s.Session),
		Filters:   FiltersFor(s),
		Results:   p.ResultsFor(s.Results),
		Auth:      AuthFor(s.Auth),
		Watchlist: p.WatchlistFor(s.Watchlist),
		Notice:    s.Notice,
	}
	if s.Modal != nil {
		m := p.ModalFor(*s.Modal)
		screen.Modal = &m
	}
	return screen
}

// NavFor shows login when anonymous, logout and watchlist otherwise
func NavFor(session *state.Session) Nav {
	if session == nil {
		return Nav{ShowLogin: true}
	}
	return Nav{
		Greeting:      fmt.Sprintf("Hi, %s", session.Email),
		ShowLogout:    true,
		ShowWatchlist: true,
	}
}

// Rating formats an optional rating with one decimal
func Rating(v *float64) string {
	if v == nil {
		return NotRated
	}
	return fmt.Sprintf("%.1f", *v)
}

// Year returns the year of a date, or "" when absent or unparsable
func Year(date string) string {
	if y := utils.ReleaseYear(date); y > 0 {
		return fmt.Sprintf("%d", y)
	}
	return ""
}

// ImageURL builds an image host URL, or "" when path is empty
func (p Projector) ImageURL(width, path string) string {
	if path == "" {
		return ""
	}
	return p.imageBaseURL + "/" + width + path
}

// TrailerURL builds the embed URL for a trailer key
func (p Projector) TrailerURL(key string) string {
	return p.videoEmbedURL + key
}

// Card projects a result item shown as type t
func (p Projector) Card(item models.ResultItem, t models.ContentType) Card {
	c := Card{
		Title:  item.DisplayTitle(),
		Rating: Rating(item.VoteAverage),
		Type:   t,
		Item:   item,
	}
	if url := p.ImageURL(PosterWidth, item.PosterPath); url != "" {
		c.PosterURL = url
	} else {
		c.Placeholder = NoImage
	}
	return c
}

// Cards projects items shown as type t
func (p Projector) Cards(items []models.ResultItem, t models.ContentType) []Card {
	cards := make([]Card, len(items))
	for i, item := range items {
		cards[i] = p.Card(item, t)
	}
	return cards
}

// ResultsFor projects the discovery grid
func (p Projector) ResultsFor(r state.Results) Results {
	return Results{
		Title:  r.Title,
		Status: r.Status,
		Cards:  p.Cards(r.Items, r.Type),
		LoadMore: LoadMore{
			Visible: r.LoadMore,
			Enabled: r.LoadMore,
		},
	}
}

// ModalFor projects the details overlay
func (p Projector) ModalFor(m state.ModalContext) Modal {
	item := m.Item
	view := Modal{
		Title:       item.DisplayTitle(),
		Rating:      Rating(item.VoteAverage),
		Year:        Year(item.Date(m.Type)),
		Overview:    item.Overview,
		InWatchlist: m.InWatchlist,
		ToggleLabel: AddToWatchlist,
	}
	if view.Overview == "" {
		view.Overview = NoDescription
	}
	if m.InWatchlist {
		view.ToggleLabel = InWatchlist
	}

	switch {
	case item.BackdropPath != "":
		view.BackdropURL = p.ImageURL(BackdropWidth, item.BackdropPath)
	case item.PosterPath != "":
		view.BackdropURL = p.ImageURL(BackdropWidth, item.PosterPath)
	}

	switch {
	case m.Trailer.Loading:
		view.TrailerMessage = LoadingTrailer
	case m.Trailer.Key == "":
		view.TrailerMessage = NoTrailer
	default:
		view.TrailerURL = p.TrailerURL(m.Trailer.Key)
	}
	return view
}

// WatchlistFor projects the saved-titles grid. Each card carries the
// minimal detail record rebuilt from the saved fields.
func (p Projector) WatchlistFor(w state.Watchlist) Watchlist {
	view := Watchlist{
		Cards: make([]Card, len(w.Entries)),
		Count: fmt.Sprintf("%d items saved", len(w.Entries)),
	}
	for i, e := range w.Entries {
		view.Cards[i] = p.Card(e.AsResultItem(), e.MovieType)
	}
	if w.Loaded && len(w.Entries) == 0 {
		view.Empty = state.MsgWatchlistEmpty
	}
	return view
}

// AuthFor projects the auth overlay
func AuthFor(a state.AuthOverlay) Auth {
	view := Auth{
		Open:        a.Open,
		Tab:         a.Tab,
		LoginError:  a.LoginError,
		SignupError: a.SignupError,
	}
	if a.Federated {
		view.Waiting = WaitingForOAuth
	}
	return view
}

// FiltersFor projects the filter form
func FiltersFor(s state.State) Filters {
	f := s.Filters.Resolved()
	view := Filters{
		Type:   f.Type,
		Adult:  s.Filters.AdultEnabled(),
		Rating: fmt.Sprintf("%.1f", s.Filters.RatingValue()),
		SortBy: f.SortBy,
	}
	for _, g := range s.Genres {
		view.Genres = append(view.Genres, Option{Label: g.Name, Value: g.ID, Selected: s.Filters.HasGenre(g.ID)})
	}
	for _, l := range s.Languages {
		view.Languages = append(view.Languages, Option{Label: l.Name, Value: l.Code, Selected: l.Code == f.Language})
	}
	return view
}
