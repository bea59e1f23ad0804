// Package state holds the application state and the reducer that is the
// only code allowed to change it.
package state

import (
	"github.com/amaumene/cinescout/internal/models"
)

// View is the top-level screen being shown
type View int

const (
	ViewHome View = iota
	ViewFilters
	ViewResults
	ViewWatchlist
)

// AuthTab selects the form shown in the auth overlay
type AuthTab int

const (
	TabLogin AuthTab = iota
	TabSignup
)

// Session is the authenticated identity. It lives in memory only and is
// re-derived from the backend on every start.
type Session struct {
	Email string
}

// GenreOption is a selectable genre, ID kept as the string form used in queries
type GenreOption struct {
	ID   string
	Name string
}

// LanguageOption is a selectable language
type LanguageOption struct {
	Code string
	Name string
}

// Results is the discovery result grid
type Results struct {
	Type       models.ContentType
	Items      []models.ResultItem
	Page       int
	TotalPages int
	Status     string
	Title      string
	LoadMore   bool
	Loading    bool
	Failed     bool
	Token      uint64 // outstanding fetch, 0 when idle
}

// Trailer is the trailer area of the details overlay
type Trailer struct {
	Loading bool
	Key     string
}

// ModalContext is the item shown in the details overlay. It exists only
// while the overlay is open.
type ModalContext struct {
	Item        models.ResultItem
	Type        models.ContentType
	InWatchlist bool
	Trailer     Trailer
	Token       uint64
}

// Key identifies the modal item in the watchlist
func (m *ModalContext) Key() models.WatchlistKey {
	return models.WatchlistKey{MovieID: m.Item.ID, MovieType: m.Type}
}

// AuthOverlay is the login/signup overlay
type AuthOverlay struct {
	Open        bool
	Tab         AuthTab
	LoginError  string
	SignupError string
	Federated   bool // waiting for the federated login completion message
}

// Watchlist is the saved-titles listing
type Watchlist struct {
	Entries []models.WatchlistEntry
	Loaded  bool
}

// State is the whole application state
type State struct {
	View      View
	Session   *Session
	Filters   FilterSet
	Genres    []GenreOption
	Languages []LanguageOption
	Results   Results
	Modal     *ModalContext
	Auth      AuthOverlay
	Watchlist Watchlist
	Notice    string
}

// Authenticated reports whether a session exists
func (s State) Authenticated() bool {
	return s.Session != nil
}

// New returns the initial state with the given filters restored
func New(filters FilterSet) State {
	if filters.Type == "" {
		filters.Type = models.ContentTypeMovie
	}
	return State{
		View:    ViewHome,
		Filters: filters,
		Results: Results{Type: filters.Type},
	}
}
