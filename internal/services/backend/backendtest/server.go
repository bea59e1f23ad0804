// Package backendtest provides an in-memory movie-discovery backend for tests.
package backendtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"

	"github.com/amaumene/cinescout/internal/models"
)

const sessionCookie = "session"

// Server is a fake backend speaking the same JSON contract as the real one
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	users     map[string]string // email -> password
	sessions  map[string]string // token -> email
	watchlist map[string][]models.WatchlistEntry
	hits      map[string]int
	lastQuery map[string]string
	gates     map[string]chan struct{}
	nextToken int

	// Fixtures, set before issuing requests
	Genres    map[models.ContentType]map[string]int
	Languages []models.Language
	Pages     map[int]models.ResultPage // discovery responses by page number
	Trailers  map[int]*models.Trailer
	// Status forces a status code for a path (e.g. "/discover": 502)
	Status map[string]int
}

// NewServer starts a fake backend
func NewServer() *Server {
	s := &Server{
		users:     make(map[string]string),
		sessions:  make(map[string]string),
		watchlist: make(map[string][]models.WatchlistEntry),
		hits:      make(map[string]int),
		Genres:    make(map[models.ContentType]map[string]int),
		Pages:     make(map[int]models.ResultPage),
		Trailers:  make(map[int]*models.Trailer),
		Status:    make(map[string]int),
		lastQuery: make(map[string]string),
		gates:     make(map[string]chan struct{}),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/me", s.handleMe)
	mux.HandleFunc("/auth/login", s.handleLogin)
	mux.HandleFunc("/auth/signup", s.handleSignup)
	mux.HandleFunc("/auth/logout", s.handleLogout)
	mux.HandleFunc("/genres", s.handleGenres)
	mux.HandleFunc("/languages", s.handleLanguages)
	mux.HandleFunc("/discover", s.handleDiscover)
	mux.HandleFunc("/videos", s.handleVideos)
	mux.HandleFunc("/watchlist", s.handleWatchlist)
	mux.HandleFunc("/watchlist/check", s.handleCheck)
	mux.HandleFunc("/watchlist/add", s.handleAdd)
	mux.HandleFunc("/watchlist/remove", s.handleRemove)

	s.Server = httptest.NewServer(s.record(mux))
	return s
}

// AddUser registers an account
func (s *Server) AddUser(email, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[email] = password
}

// Hits returns how many requests reached path
func (s *Server) Hits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

// LastQuery returns the raw query of the last request to path
func (s *Server) LastQuery(path string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastQuery[path]
}

// Hold makes requests to path wait until the returned function is called
// or the client goes away
func (s *Server) Hold(path string) func() {
	gate := make(chan struct{})
	s.mu.Lock()
	s.gates[path] = gate
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.gates, path)
			s.mu.Unlock()
			close(gate)
		})
	}
}

// Saved returns the watchlist of a user
func (s *Server) Saved(email string) []models.WatchlistEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.WatchlistEntry(nil), s.watchlist[email]...)
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.hits[r.URL.Path]++
		s.lastQuery[r.URL.Path] = r.URL.RawQuery
		status, forced := s.Status[r.URL.Path]
		gate := s.gates[r.URL.Path]
		s.mu.Unlock()

		if gate != nil {
			select {
			case <-gate:
			case <-r.Context().Done():
				return
			}
		}

		if forced {
			writeJSON(w, status, map[string]string{"error": http.StatusText(status)})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) currentUser(r *http.Request) string {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[c.Value]
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	email := s.currentUser(r)
	if email == "" {
		writeJSON(w, http.StatusOK, map[string]bool{"authenticated": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"authenticated": true, "email": email})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds struct{ Email, Password string }
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request"})
		return
	}

	s.mu.Lock()
	password, ok := s.users[creds.Email]
	if !ok || password != creds.Password {
		s.mu.Unlock()
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid email or password"})
		return
	}
	s.nextToken++
	token := "tok-" + strconv.Itoa(s.nextToken)
	s.sessions[token] = creds.Email
	s.mu.Unlock()

	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: token, Path: "/"})
	writeJSON(w, http.StatusOK, map[string]string{"email": creds.Email})
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var creds struct{ Email, Password string }
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[creds.Email]; exists {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "Email already registered"})
		return
	}
	s.users[creds.Email] = creds.Password
	writeJSON(w, http.StatusCreated, map[string]string{"email": creds.Email})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(sessionCookie); err == nil {
		s.mu.Lock()
		delete(s.sessions, c.Value)
		s.mu.Unlock()
	}
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "", Path: "/", MaxAge: -1})
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGenres(w http.ResponseWriter, r *http.Request) {
	t := models.ParseContentType(r.URL.Query().Get("type"))
	s.mu.Lock()
	genres := s.Genres[t]
	s.mu.Unlock()
	if genres == nil {
		genres = map[string]int{}
	}
	writeJSON(w, http.StatusOK, genres)
}

func (s *Server) handleLanguages(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	languages := s.Languages
	s.mu.Unlock()
	if languages == nil {
		languages = []models.Language{}
	}
	writeJSON(w, http.StatusOK, languages)
}

func (s *Server) handleDiscover(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	s.mu.Lock()
	resp, ok := s.Pages[page]
	s.mu.Unlock()
	if !ok {
		resp = models.ResultPage{Page: page, TotalPages: 1}
	}
	if resp.Results == nil {
		resp.Results = []models.ResultItem{}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleVideos(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Missing id parameter"})
		return
	}
	s.mu.Lock()
	trailer := s.Trailers[id]
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]*models.Trailer{"trailer": trailer})
}

func (s *Server) handleWatchlist(w http.ResponseWriter, r *http.Request) {
	email := s.currentUser(r)
	if email == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Not authenticated"})
		return
	}
	entries := s.Saved(email)
	if entries == nil {
		entries = []models.WatchlistEntry{}
	}
	writeJSON(w, http.StatusOK, map[string][]models.WatchlistEntry{"watchlist": entries})
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	email := s.currentUser(r)
	if email == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Not authenticated"})
		return
	}
	id, _ := strconv.Atoi(r.URL.Query().Get("movieId"))
	t := models.ContentType(r.URL.Query().Get("movieType"))
	writeJSON(w, http.StatusOK, map[string]bool{"inWatchlist": s.indexOf(email, id, t) >= 0})
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	email := s.currentUser(r)
	if email == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Not authenticated"})
		return
	}
	var record models.WatchlistRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request"})
		return
	}
	if s.indexOf(email, record.MovieID, record.MovieType) >= 0 {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "Already in watchlist"})
		return
	}

	s.mu.Lock()
	s.watchlist[email] = append(s.watchlist[email], models.WatchlistEntry{
		MovieID:     record.MovieID,
		MovieType:   record.MovieType,
		Title:       record.Title,
		PosterPath:  record.PosterPath,
		VoteAverage: record.VoteAverage,
		ReleaseDate: record.ReleaseDate,
	})
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, map[string]string{"status": "added"})
}

func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	email := s.currentUser(r)
	if email == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Not authenticated"})
		return
	}
	var key models.WatchlistKey
	if err := json.NewDecoder(r.Body).Decode(&key); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request"})
		return
	}
	idx := s.indexOf(email, key.MovieID, key.MovieType)
	if idx < 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Not in watchlist"})
		return
	}

	s.mu.Lock()
	entries := s.watchlist[email]
	s.watchlist[email] = append(entries[:idx], entries[idx+1:]...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

func (s *Server) indexOf(email string, id int, t models.ContentType) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.watchlist[email] {
		if e.MovieID == id && e.MovieType == t {
			return i
		}
	}
	return -1
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
