package backend

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"sync"
	"testing"

	"github.com/amaumene/cinescout/internal/config"
	"github.com/amaumene/cinescout/internal/models"
	"github.com/amaumene/cinescout/internal/services/backend/backendtest"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

type memoryCookies struct {
	mu    sync.Mutex
	saved map[string][]*http.Cookie
}

func (m *memoryCookies) LoadCookies(host string) ([]*http.Cookie, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saved[host], nil
}

func (m *memoryCookies) SaveCookies(host string, cookies []*http.Cookie) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saved == nil {
		m.saved = make(map[string][]*http.Cookie)
	}
	m.saved[host] = cookies
	return nil
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestClient(t *testing.T, baseURL string, cookies CookieStore) *Client {
	t.Helper()
	cfg := &config.Config{APIBaseURL: baseURL}
	client, err := NewClient(cfg, cookies, NewMetrics(prometheus.NewRegistry()), quietLogger())
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	return client
}

func TestLoginPersistsSessionCookie(t *testing.T) {
	srv := backendtest.NewServer()
	defer srv.Close()
	srv.AddUser("ana@example.com", "secret")

	store := &memoryCookies{}
	client := newTestClient(t, srv.URL, store)
	ctx := context.Background()

	identity, err := client.Me(ctx)
	if err != nil {
		t.Fatalf("Me failed: %v", err)
	}
	if identity.Authenticated {
		t.Fatal("Expected anonymous session before login")
	}

	if err := client.Login(ctx, Credentials{Email: "ana@example.com", Password: "secret"}); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	// A second client restored from the same store shares the session
	restored := newTestClient(t, srv.URL, store)
	identity, err = restored.Me(ctx)
	if err != nil {
		t.Fatalf("Me failed: %v", err)
	}
	if !identity.Authenticated || identity.Email != "ana@example.com" {
		t.Errorf("Expected restored session for ana, got %+v", identity)
	}
}

func TestLoginErrorCarriesServerMessage(t *testing.T) {
	srv := backendtest.NewServer()
	defer srv.Close()

	client := newTestClient(t, srv.URL, nil)
	err := client.Login(context.Background(), Credentials{Email: "nobody@example.com", Password: "x"})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", apiErr.Status)
	}
	if ErrorMessage(err, "Login failed") != "Invalid email or password" {
		t.Errorf("Unexpected message: %s", ErrorMessage(err, "Login failed"))
	}
}

func TestTransportFailure(t *testing.T) {
	srv := backendtest.NewServer()
	client := newTestClient(t, srv.URL, nil)
	srv.Close()

	_, err := client.Discover(context.Background(), url.Values{"page": {"1"}})
	if !errors.Is(err, ErrTransport) {
		t.Errorf("Expected ErrTransport, got %v", err)
	}
	if ErrorMessage(err, "fallback") != "fallback" {
		t.Errorf("Expected fallback message for transport failure")
	}
}

func TestLookupsAreCached(t *testing.T) {
	srv := backendtest.NewServer()
	defer srv.Close()
	srv.Genres[models.ContentTypeMovie] = map[string]int{"Drama": 18, "Action": 28}
	srv.Languages = []models.Language{{Code: "en", EnglishName: "English"}}

	client := newTestClient(t, srv.URL, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		genres, err := client.Genres(ctx, models.ContentTypeMovie)
		if err != nil {
			t.Fatalf("Genres failed: %v", err)
		}
		if genres["Action"] != 28 {
			t.Errorf("Unexpected genres: %v", genres)
		}
		// Mutating the returned map must not poison the cache
		delete(genres, "Action")

		if _, err := client.Languages(ctx); err != nil {
			t.Fatalf("Languages failed: %v", err)
		}
	}

	if srv.Hits("/genres") != 1 {
		t.Errorf("Expected 1 genres request, got %d", srv.Hits("/genres"))
	}
	if srv.Hits("/languages") != 1 {
		t.Errorf("Expected 1 languages request, got %d", srv.Hits("/languages"))
	}
}

func TestWatchlistConflict(t *testing.T) {
	srv := backendtest.NewServer()
	defer srv.Close()
	srv.AddUser("ana@example.com", "secret")

	client := newTestClient(t, srv.URL, nil)
	ctx := context.Background()
	if err := client.Login(ctx, Credentials{Email: "ana@example.com", Password: "secret"}); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	record := models.WatchlistRecord{MovieID: 550, MovieType: models.ContentTypeMovie, Title: "Fight Club"}
	if err := client.AddToWatchlist(ctx, record); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	err := client.AddToWatchlist(ctx, record)
	if !IsConflict(err) {
		t.Errorf("Expected conflict on duplicate add, got %v", err)
	}

	in, err := client.CheckWatchlist(ctx, models.WatchlistKey{MovieID: 550, MovieType: models.ContentTypeMovie})
	if err != nil || !in {
		t.Errorf("Expected title to be saved (in=%v, err=%v)", in, err)
	}

	if err := client.RemoveFromWatchlist(ctx, models.WatchlistKey{MovieID: 550, MovieType: models.ContentTypeMovie}); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	entries, err := client.Watchlist(ctx)
	if err != nil {
		t.Fatalf("Watchlist failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected empty watchlist, got %d entries", len(entries))
	}
}

func TestTrailer(t *testing.T) {
	srv := backendtest.NewServer()
	defer srv.Close()
	srv.Trailers[603] = &models.Trailer{Key: "vKQi3bBA1y8", Site: "YouTube", Type: "Trailer"}

	client := newTestClient(t, srv.URL, nil)
	ctx := context.Background()

	trailer, err := client.Trailer(ctx, 603, models.ContentTypeMovie)
	if err != nil || trailer == nil || trailer.Key != "vKQi3bBA1y8" {
		t.Errorf("Unexpected trailer %+v (err %v)", trailer, err)
	}

	trailer, err = client.Trailer(ctx, 1, models.ContentTypeMovie)
	if err != nil || trailer != nil {
		t.Errorf("Expected nil trailer, got %+v (err %v)", trailer, err)
	}
}

func TestURLKeepsBasePathPrefix(t *testing.T) {
	for base, expected := range map[string]string{
		"http://api.local":      "http://api.local/discover?page=2",
		"http://api.local/":     "http://api.local/discover?page=2",
		"http://api.local/api":  "http://api.local/api/discover?page=2",
		"http://api.local/api/": "http://api.local/api/discover?page=2",
	} {
		client, err := NewClient(&config.Config{APIBaseURL: base}, nil, nil, quietLogger())
		if err != nil {
			t.Fatalf("NewClient(%q) failed: %v", base, err)
		}
		if got := client.URL("/discover", url.Values{"page": {"2"}}); got != expected {
			t.Errorf("URL with base %q = %q, expected %q", base, got, expected)
		}
	}
}
