package models

import (
	"net/http"
	"path/filepath"
	"testing"
)

func openTestDatabase(t *testing.T) *Database {
	t.Helper()
	db, err := NewDatabase(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestCookiesRoundTrip(t *testing.T) {
	db := openTestDatabase(t)

	err := db.SaveCookies("api.local", []*http.Cookie{{Name: "session", Value: "abc"}})
	if err != nil {
		t.Fatalf("SaveCookies failed: %v", err)
	}
	if err := db.SaveCookies("other.local", []*http.Cookie{{Name: "session", Value: "xyz"}}); err != nil {
		t.Fatalf("SaveCookies failed: %v", err)
	}

	cookies, err := db.LoadCookies("api.local")
	if err != nil {
		t.Fatalf("LoadCookies failed: %v", err)
	}
	if len(cookies) != 1 || cookies[0].Name != "session" || cookies[0].Value != "abc" {
		t.Fatalf("Expected the api.local session cookie, got %+v", cookies)
	}

	// Saving again replaces the previous set
	if err := db.SaveCookies("api.local", nil); err != nil {
		t.Fatalf("SaveCookies failed: %v", err)
	}
	cookies, _ = db.LoadCookies("api.local")
	if len(cookies) != 0 {
		t.Errorf("Expected cookies to be cleared, got %d", len(cookies))
	}
}

func TestPreferences(t *testing.T) {
	db := openTestDatabase(t)

	p, err := db.LoadPreferences()
	if err != nil || p != nil {
		t.Fatalf("Expected no preferences, got %+v (err %v)", p, err)
	}

	err = db.SavePreferences(&Preferences{Type: ContentTypeTV, GenreIDs: []string{"18", "35"}, Rating: "7.5"})
	if err != nil {
		t.Fatalf("SavePreferences failed: %v", err)
	}

	p, err = db.LoadPreferences()
	if err != nil || p == nil {
		t.Fatalf("LoadPreferences failed: %v", err)
	}
	if p.Type != ContentTypeTV || len(p.GenreIDs) != 2 || p.Rating != "7.5" {
		t.Errorf("Unexpected preferences: %+v", p)
	}
}

func TestResultItemHelpers(t *testing.T) {
	show := ResultItem{Name: "Dark", FirstAirDate: "2017-12-01", ReleaseDate: ""}
	if show.DisplayTitle() != "Dark" {
		t.Errorf("Expected name fallback, got %s", show.DisplayTitle())
	}
	if show.Date(ContentTypeTV) != "2017-12-01" {
		t.Errorf("Expected first air date for tv")
	}
	if (ResultItem{}).DisplayTitle() != "Untitled" {
		t.Errorf("Expected Untitled for empty item")
	}
}

func TestWatchlistEntryAsResultItem(t *testing.T) {
	rating := 8.1
	entry := WatchlistEntry{MovieID: 42, MovieType: ContentTypeMovie, Title: "Heat", PosterPath: "/heat.jpg", VoteAverage: &rating, ReleaseDate: "1995-12-15"}

	item := entry.AsResultItem()
	if item.ID != 42 || item.BackdropPath != "/heat.jpg" || item.PosterPath != "/heat.jpg" {
		t.Errorf("Unexpected item: %+v", item)
	}
	if item.Overview != "Click to see full details" {
		t.Errorf("Unexpected overview: %s", item.Overview)
	}
	if item.Date(ContentTypeTV) != "1995-12-15" {
		t.Errorf("Expected saved date to serve as first air date")
	}

	record := NewWatchlistRecord(ResultItem{ID: 7, Name: "Dark", FirstAirDate: "2017-12-01"}, ContentTypeTV)
	if record.Title != "Dark" || record.ReleaseDate != "2017-12-01" || record.MovieType != ContentTypeTV {
		t.Errorf("Unexpected record: %+v", record)
	}
}

func TestParseContentType(t *testing.T) {
	if ParseContentType("show") != ContentTypeTV || ParseContentType("tv") != ContentTypeTV {
		t.Error("Expected show/tv to map to tv")
	}
	if ParseContentType("") != ContentTypeMovie || ParseContentType("bogus") != ContentTypeMovie {
		t.Error("Expected movie fallback")
	}
}
