package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/amaumene/cinescout/internal/state"
	"github.com/sirupsen/logrus"
)

// StatusHandler reports the client session and result state
type StatusHandler struct {
	store  *state.Store
	logger *logrus.Logger
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(store *state.Store, logger *logrus.Logger) *StatusHandler {
	return &StatusHandler{
		store:  store,
		logger: logger,
	}
}

// StatusResponse represents the status response
type StatusResponse struct {
	Authenticated  bool   `json:"authenticated"`
	Email          string `json:"email,omitempty"`
	AwaitingOAuth  bool   `json:"awaiting_oauth"`
	ContentType    string `json:"content_type"`
	Page           int    `json:"page"`
	TotalPages     int    `json:"total_pages"`
	Results        int    `json:"results"`
	WatchlistItems int    `json:"watchlist_items"`
}

// ServeHTTP handles the status endpoint
func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s := h.store.Snapshot()
	response := StatusResponse{
		Authenticated:  s.Authenticated(),
		AwaitingOAuth:  s.Auth.Federated,
		ContentType:    string(s.Filters.Resolved().Type),
		Page:           s.Results.Page,
		TotalPages:     s.Results.TotalPages,
		Results:        len(s.Results.Items),
		WatchlistItems: len(s.Watchlist.Entries),
	}
	if s.Session != nil {
		response.Email = s.Session.Email
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
