package state

import (
	"fmt"

	"github.com/amaumene/cinescout/internal/models"
)

// Action describes a state transition
type Action interface {
	isAction()
}

// SessionResolved records the outcome of an identity probe. nil clears the session.
type SessionResolved struct{ Session *Session }

// AuthOpened opens the auth overlay on a tab
type AuthOpened struct{ Tab AuthTab }

// AuthTabSelected switches the auth overlay tab and clears its error
type AuthTabSelected struct{ Tab AuthTab }

// AuthClosed closes the auth overlay and clears its errors
type AuthClosed struct{}

// AuthFailed shows an inline error on a tab
type AuthFailed struct {
	Tab     AuthTab
	Message string
}

// FederatedWaiting toggles the federated login wait indicator
type FederatedWaiting struct{ Waiting bool }

// ViewChanged navigates to a screen
type ViewChanged struct{ View View }

// FiltersChanged replaces the filter form values
type FiltersChanged struct{ Filters FilterSet }

// GenresLoaded replaces the genre options for a content type. Selected ids
// that still exist are kept.
type GenresLoaded struct {
	Type        models.ContentType
	Genres      []GenreOption
	Preselected []string
}

// LanguagesLoaded replaces the language options
type LanguagesLoaded struct {
	Languages   []LanguageOption
	Preselected string
}

// DiscoveryStarted marks a discovery fetch as outstanding
type DiscoveryStarted struct {
	Token  uint64
	Page   int
	Append bool
	Type   models.ContentType
}

// DiscoveryLoaded applies a discovery response. Ignored unless Token is the
// outstanding fetch.
type DiscoveryLoaded struct {
	Token    uint64
	Page     int
	Append   bool
	Response models.ResultPage
}

// DiscoveryFailed reports a failed fetch. Ignored unless Token is outstanding.
type DiscoveryFailed struct{ Token uint64 }

// DiscoveryCancelled clears an outstanding fetch without touching results
type DiscoveryCancelled struct{ Token uint64 }

// ModalOpened shows the details overlay with the trailer loading
type ModalOpened struct {
	Token       uint64
	Item        models.ResultItem
	Type        models.ContentType
	InWatchlist bool
}

// TrailerLoaded fills the trailer area. Ignored unless Token is the open overlay.
type TrailerLoaded struct {
	Token uint64
	Key   string
}

// ModalClosed hides the details overlay and discards its context
type ModalClosed struct{}

// MembershipChanged updates the watchlist toggle for a title
type MembershipChanged struct {
	Key         models.WatchlistKey
	InWatchlist bool
}

// WatchlistLoaded replaces the watchlist listing and shows it
type WatchlistLoaded struct{ Entries []models.WatchlistEntry }

// NoticePosted shows a confirmation or error to the user
type NoticePosted struct{ Text string }

// NoticeCleared dismisses the current notice
type NoticeCleared struct{}

func (SessionResolved) isAction() {}
func (AuthOpened) isAction() {}
func (AuthTabSelected) isAction() {}
func (AuthClosed) isAction() {}
func (AuthFailed) isAction() {}
func (FederatedWaiting) isAction() {}
func (ViewChanged) isAction() {}
func (FiltersChanged) isAction() {}
func (GenresLoaded) isAction() {}
func (LanguagesLoaded) isAction() {}
func (DiscoveryStarted) isAction() {}
func (DiscoveryLoaded) isAction() {}
func (DiscoveryFailed) isAction() {}
func (DiscoveryCancelled) isAction() {}
func (ModalOpened) isAction() {}
func (TrailerLoaded) isAction() {}
func (ModalClosed) isAction() {}
func (MembershipChanged) isAction() {}
func (WatchlistLoaded) isAction() {}
func (NoticePosted) isAction() {}
func (NoticeCleared) isAction() {}

// Reduce returns the state after applying a. It never mutates s: slices
// are replaced, not appended to in place.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case SessionResolved:
		s.Session = a.Session

	case AuthOpened:
		s.Auth = AuthOverlay{Open: true, Tab: a.Tab}

	case AuthTabSelected:
		s.Auth.Tab = a.Tab
		s.Auth.LoginError = ""
		s.Auth.SignupError = ""

	case AuthClosed:
		s.Auth = AuthOverlay{Tab: s.Auth.Tab}

	case AuthFailed:
		if a.Tab == TabSignup {
			s.Auth.SignupError = a.Message
		} else {
			s.Auth.LoginError = a.Message
		}

	case FederatedWaiting:
		s.Auth.Federated = a.Waiting

	case ViewChanged:
		s.View = a.View

	case FiltersChanged:
		s.Filters = a.Filters
		s.Filters.GenreIDs = append([]string(nil), a.Filters.GenreIDs...)

	case GenresLoaded:
		s.Genres = append([]GenreOption(nil), a.Genres...)
		s.Filters.Type = a.Type
		var kept []string
		for _, g := range a.Genres {
			for _, id := range a.Preselected {
				if g.ID == id {
					kept = append(kept, id)
					break
				}
			}
		}
		s.Filters.GenreIDs = kept

	case LanguagesLoaded:
		s.Languages = append([]LanguageOption(nil), a.Languages...)
		for _, l := range a.Languages {
			if l.Code == a.Preselected {
				s.Filters.Language = l.Code
				break
			}
		}

	case DiscoveryStarted:
		s.Results.Token = a.Token
		s.Results.Loading = true
		s.Results.Failed = false
		s.Results.LoadMore = false
		s.Results.Status = MsgLoading
		if !a.Append {
			s.Results.Type = a.Type
			s.View = ViewResults
		}

	case DiscoveryLoaded:
		if a.Token != s.Results.Token {
			return s
		}
		s.Results = loadPage(s.Results, a)

	case DiscoveryFailed:
		if a.Token != s.Results.Token {
			return s
		}
		s.Results.Token = 0
		s.Results.Loading = false
		s.Results.Failed = true
		s.Results.LoadMore = false
		s.Results.Status = MsgDiscoveryFailed

	case DiscoveryCancelled:
		if a.Token != s.Results.Token {
			return s
		}
		s.Results.Token = 0
		s.Results.Loading = false
		s.Results.LoadMore = s.Results.Page < s.Results.TotalPages
		s.Results.Status = ""

	case ModalOpened:
		s.Modal = &ModalContext{
			Item:        a.Item,
			Type:        a.Type,
			InWatchlist: a.InWatchlist,
			Trailer:     Trailer{Loading: true},
			Token:       a.Token,
		}

	case TrailerLoaded:
		if s.Modal == nil || s.Modal.Token != a.Token {
			return s
		}
		m := *s.Modal
		m.Trailer = Trailer{Key: a.Key}
		s.Modal = &m

	case ModalClosed:
		s.Modal = nil

	case MembershipChanged:
		if s.Modal == nil || s.Modal.Key() != a.Key {
			return s
		}
		m := *s.Modal
		m.InWatchlist = a.InWatchlist
		s.Modal = &m

	case WatchlistLoaded:
		s.Watchlist = Watchlist{
			Entries: append([]models.WatchlistEntry(nil), a.Entries...),
			Loaded:  true,
		}
		s.View = ViewWatchlist

	case NoticePosted:
		s.Notice = a.Text

	case NoticeCleared:
		s.Notice = ""

	default:
		panic(fmt.Sprintf("state: unhandled action %T", a))
	}

	return s
}

func loadPage(r Results, a DiscoveryLoaded) Results {
	page := a.Response.Page
	if page == 0 {
		page = a.Page
	}
	total := a.Response.TotalPages
	if total == 0 {
		total = 1
	}

	var items []models.ResultItem
	if a.Append {
		items = make([]models.ResultItem, 0, len(r.Items)+len(a.Response.Results))
		items = append(items, r.Items...)
	}
	items = append(items, a.Response.Results...)

	count := len(a.Response.Results)
	r.Items = items
	r.Page = page
	r.TotalPages = total
	r.Token = 0
	r.Loading = false
	r.Failed = false
	r.Status = PageStatus(page, total, count)
	r.Title = fmt.Sprintf("Recommended %s (%d found)", r.Type.Label(), count)
	// an empty first page means nothing matched, whatever totalPages says
	r.LoadMore = page < total && !(count == 0 && page == 1)
	return r
}
