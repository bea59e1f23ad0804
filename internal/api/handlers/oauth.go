package handlers

import (
	"encoding/json"
	"fmt"
	"html"
	"net/http"

	"github.com/amaumene/cinescout/internal/models"
	"github.com/amaumene/cinescout/internal/state"
	"github.com/sirupsen/logrus"
)

const completionPage = `<!DOCTYPE html>
<html><head><title>cinescout</title></head>
<body><p>%s</p></body></html>`

// OAuthHandler delivers federated login completion messages to the
// waiting login
type OAuthHandler struct {
	store    *state.Store
	messages chan<- models.OAuthMessage
	logger   *logrus.Logger
}

// NewOAuthHandler creates a new oauth handler
func NewOAuthHandler(store *state.Store, messages chan<- models.OAuthMessage, logger *logrus.Logger) *OAuthHandler {
	return &OAuthHandler{
		store:    store,
		messages: messages,
		logger:   logger,
	}
}

// ServeMessage handles POST /oauth/message with a {"type": ...} body
func (h *OAuthHandler) ServeMessage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var msg models.OAuthMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		h.logger.WithError(err).Warn("Failed to decode oauth message")
		http.Error(w, "Invalid payload", http.StatusBadRequest)
		return
	}

	status := http.StatusAccepted
	if !h.deliver(msg) {
		status = http.StatusConflict
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]bool{"delivered": status == http.StatusAccepted})
}

// ServeComplete handles GET /oauth/complete, the browser redirect target.
// The message type defaults to a successful login.
func (h *OAuthHandler) ServeComplete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	msg := models.OAuthMessage{Type: r.URL.Query().Get("type")}
	if msg.Type == "" {
		msg.Type = models.OAuthSuccess
	}

	text := "Sign-in complete. You can close this window and return to cinescout."
	status := http.StatusOK
	if !h.deliver(msg) {
		text = "No sign-in is in progress."
		status = http.StatusConflict
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprintf(w, completionPage, html.EscapeString(text))
}

// deliver hands msg to the waiting login. Messages are dropped when no
// login is waiting.
func (h *OAuthHandler) deliver(msg models.OAuthMessage) bool {
	if !h.store.Snapshot().Auth.Federated {
		h.logger.WithField("type", msg.Type).Info("Dropping oauth message, no login in progress")
		return false
	}

	select {
	case h.messages <- msg:
		h.logger.WithField("type", msg.Type).Info("Delivered oauth message")
		return true
	default:
		h.logger.WithField("type", msg.Type).Warn("Dropping oauth message, login is busy")
		return false
	}
}
