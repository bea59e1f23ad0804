package state

import (
	"net/url"
	"testing"

	"github.com/amaumene/cinescout/internal/models"
)

func rating(v float64) *float64 { return &v }

func TestFilterQueryDefaults(t *testing.T) {
	q := FilterSet{}.Query(1)

	expected := url.Values{
		"type":     {"movie"},
		"genres":   {""},
		"language": {"en"},
		"adult":    {"False"},
		"rating":   {"5"},
		"sortBy":   {"popularity.desc"},
		"page":     {"1"},
	}
	if len(q) != len(expected) {
		t.Fatalf("Expected %d keys, got %d: %v", len(expected), len(q), q)
	}
	for k, v := range expected {
		if q.Get(k) != v[0] {
			t.Errorf("Key %s: expected %q, got %q", k, v[0], q.Get(k))
		}
	}
}

func TestFilterQueryValues(t *testing.T) {
	f := FilterSet{
		Type:     models.ContentTypeTV,
		GenreIDs: []string{"18", "9648"},
		Language: "de",
		Adult:    "True",
		Rating:   "7.5",
		SortBy:   string(models.SortRatingDesc),
	}
	q := f.Query(3)

	if q.Get("genres") != "18,9648" {
		t.Errorf("Expected comma-joined genres, got %q", q.Get("genres"))
	}
	if q.Get("type") != "tv" || q.Get("language") != "de" || q.Get("page") != "3" {
		t.Errorf("Unexpected query: %v", q)
	}
	if !f.AdultEnabled() || f.RatingValue() != 7.5 {
		t.Errorf("Unexpected parsed values: adult=%v rating=%v", f.AdultEnabled(), f.RatingValue())
	}
}

func TestFreshSearchReplacesResults(t *testing.T) {
	s := New(FilterSet{})
	s.Results.Items = []models.ResultItem{{ID: 1}, {ID: 2}}

	s = Reduce(s, DiscoveryStarted{Token: 7, Page: 1, Type: models.ContentTypeMovie})
	if s.Results.Status != MsgLoading || s.Results.LoadMore {
		t.Errorf("Expected loading status with load-more hidden, got %+v", s.Results)
	}

	s = Reduce(s, DiscoveryLoaded{Token: 7, Page: 1, Response: models.ResultPage{
		Page: 1, TotalPages: 4, Results: []models.ResultItem{{ID: 10}},
	}})
	if len(s.Results.Items) != 1 || s.Results.Items[0].ID != 10 {
		t.Errorf("Expected results to be replaced, got %+v", s.Results.Items)
	}
	if !s.Results.LoadMore {
		t.Error("Expected load-more when page < total")
	}
	if s.Results.Title != "Recommended Movies (1 found)" {
		t.Errorf("Unexpected title %q", s.Results.Title)
	}
}

func TestLoadMoreAppends(t *testing.T) {
	s := New(FilterSet{})
	s = Reduce(s, DiscoveryStarted{Token: 1, Page: 1})
	s = Reduce(s, DiscoveryLoaded{Token: 1, Page: 1, Response: models.ResultPage{
		Page: 1, TotalPages: 2, Results: []models.ResultItem{{ID: 1}, {ID: 2}},
	}})
	first := s.Results.Items

	s = Reduce(s, DiscoveryStarted{Token: 2, Page: 2, Append: true})
	if len(s.Results.Items) != 2 {
		t.Fatal("Starting a load-more must not clear results")
	}
	s = Reduce(s, DiscoveryLoaded{Token: 2, Page: 2, Append: true, Response: models.ResultPage{
		Page: 2, TotalPages: 2, Results: []models.ResultItem{{ID: 3}},
	}})

	if len(s.Results.Items) != 3 {
		t.Fatalf("Expected 3 accumulated items, got %d", len(s.Results.Items))
	}
	if s.Results.Status != "Showing page 2 of 2 (1 results)" {
		t.Errorf("Unexpected status %q", s.Results.Status)
	}
	if s.Results.LoadMore {
		t.Error("Expected load-more disabled on last page")
	}
	if len(first) != 2 {
		t.Error("Previous snapshot was mutated")
	}
}

func TestEmptyFirstPage(t *testing.T) {
	s := New(FilterSet{})
	s = Reduce(s, DiscoveryStarted{Token: 1, Page: 1})
	s = Reduce(s, DiscoveryLoaded{Token: 1, Page: 1, Response: models.ResultPage{Page: 1, TotalPages: 3}})

	if s.Results.Status != MsgNoMatches {
		t.Errorf("Unexpected status %q", s.Results.Status)
	}
	if s.Results.LoadMore {
		t.Error("Expected load-more disabled when nothing matched")
	}
}

func TestMissingTotalPagesDefaultsToOne(t *testing.T) {
	s := New(FilterSet{})
	s = Reduce(s, DiscoveryStarted{Token: 1, Page: 1})
	s = Reduce(s, DiscoveryLoaded{Token: 1, Page: 1, Response: models.ResultPage{
		Results: []models.ResultItem{{ID: 5}},
	}})

	if s.Results.Page != 1 || s.Results.TotalPages != 1 {
		t.Errorf("Expected page 1 of 1, got %d of %d", s.Results.Page, s.Results.TotalPages)
	}
}

func TestStaleResponsesAreDropped(t *testing.T) {
	s := New(FilterSet{})
	s = Reduce(s, DiscoveryStarted{Token: 1, Page: 1})
	s = Reduce(s, DiscoveryStarted{Token: 2, Page: 1})

	s = Reduce(s, DiscoveryLoaded{Token: 1, Page: 1, Response: models.ResultPage{
		Page: 1, TotalPages: 1, Results: []models.ResultItem{{ID: 99}},
	}})
	if len(s.Results.Items) != 0 || !s.Results.Loading {
		t.Errorf("Stale response was applied: %+v", s.Results)
	}

	s = Reduce(s, DiscoveryFailed{Token: 1})
	if s.Results.Failed {
		t.Error("Stale failure was applied")
	}

	s = Reduce(s, DiscoveryFailed{Token: 2})
	if !s.Results.Failed || s.Results.Status != MsgDiscoveryFailed || s.Results.LoadMore {
		t.Errorf("Expected failure state, got %+v", s.Results)
	}
}

func TestGenresLoadedKeepsCompatibleSelection(t *testing.T) {
	s := New(FilterSet{GenreIDs: []string{"28", "18"}})
	s = Reduce(s, GenresLoaded{
		Type:        models.ContentTypeTV,
		Genres:      []GenreOption{{ID: "18", Name: "Drama"}, {ID: "10759", Name: "Action & Adventure"}},
		Preselected: s.Filters.GenreIDs,
	})

	if s.Filters.Type != models.ContentTypeTV {
		t.Errorf("Expected tv type, got %s", s.Filters.Type)
	}
	if len(s.Filters.GenreIDs) != 1 || s.Filters.GenreIDs[0] != "18" {
		t.Errorf("Expected only Drama to stay selected, got %v", s.Filters.GenreIDs)
	}
}

func TestModalLifecycle(t *testing.T) {
	item := models.ResultItem{ID: 603, Title: "The Matrix", VoteAverage: rating(8.2)}
	s := New(FilterSet{})

	s = Reduce(s, ModalOpened{Token: 5, Item: item, Type: models.ContentTypeMovie})
	if s.Modal == nil || !s.Modal.Trailer.Loading {
		t.Fatal("Expected open modal with trailer loading")
	}

	// Trailer for an older overlay is ignored
	s = Reduce(s, TrailerLoaded{Token: 4, Key: "old"})
	if s.Modal.Trailer.Key != "" || !s.Modal.Trailer.Loading {
		t.Error("Stale trailer was applied")
	}

	s = Reduce(s, TrailerLoaded{Token: 5, Key: "m8e-FF8MsqU"})
	if s.Modal.Trailer.Key != "m8e-FF8MsqU" || s.Modal.Trailer.Loading {
		t.Errorf("Unexpected trailer %+v", s.Modal.Trailer)
	}

	s = Reduce(s, MembershipChanged{Key: models.WatchlistKey{MovieID: 603, MovieType: models.ContentTypeMovie}, InWatchlist: true})
	if !s.Modal.InWatchlist {
		t.Error("Expected toggle to be marked in watchlist")
	}

	s = Reduce(s, MembershipChanged{Key: models.WatchlistKey{MovieID: 1, MovieType: models.ContentTypeMovie}, InWatchlist: false})
	if !s.Modal.InWatchlist {
		t.Error("Membership change for another title leaked into the modal")
	}

	s = Reduce(s, ModalClosed{})
	if s.Modal != nil {
		t.Error("Expected modal context to be discarded")
	}
	s = Reduce(s, TrailerLoaded{Token: 5, Key: "late"})
	if s.Modal != nil {
		t.Error("Trailer reopened a closed modal")
	}
}

func TestAuthOverlay(t *testing.T) {
	s := New(FilterSet{})
	s = Reduce(s, AuthOpened{Tab: TabSignup})
	s = Reduce(s, AuthFailed{Tab: TabSignup, Message: MsgPasswordMismatch})
	if !s.Auth.Open || s.Auth.SignupError != MsgPasswordMismatch {
		t.Errorf("Unexpected auth overlay %+v", s.Auth)
	}

	s = Reduce(s, AuthTabSelected{Tab: TabLogin})
	if s.Auth.SignupError != "" || s.Auth.Tab != TabLogin {
		t.Errorf("Expected errors cleared on tab switch, got %+v", s.Auth)
	}

	s = Reduce(s, AuthClosed{})
	if s.Auth.Open {
		t.Error("Expected overlay closed")
	}
}

func TestStoreNotifiesSubscribers(t *testing.T) {
	store := NewStore(New(FilterSet{}))
	ch, unsubscribe := store.Subscribe()
	defer unsubscribe()

	store.Dispatch(NoticePosted{Text: "hello"}, NoticePosted{Text: "world"})

	select {
	case <-ch:
	default:
		t.Fatal("Expected a change notification")
	}
	if store.Snapshot().Notice != "world" {
		t.Errorf("Expected actions applied in order, got %q", store.Snapshot().Notice)
	}

	if a, b := store.NextToken(), store.NextToken(); a == 0 || a == b {
		t.Errorf("Expected distinct non-zero tokens, got %d and %d", a, b)
	}
}
