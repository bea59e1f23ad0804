package api

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/amaumene/cinescout/internal/api/middleware"
	"github.com/amaumene/cinescout/internal/config"
	"github.com/amaumene/cinescout/internal/models"
	"github.com/amaumene/cinescout/internal/state"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

func newTestServer(t *testing.T, store *state.Store, messages chan models.OAuthMessage) *httptest.Server {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	reg := prometheus.NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "cinescout_test_total", Help: "test"})
	reg.MustRegister(counter)
	counter.Inc()

	cfg := &config.Config{CallbackAddr: "127.0.0.1:0"}
	srv := httptest.NewServer(NewServer(cfg, store, messages, reg, logger).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, state.NewStore(state.New(state.FilterSet{})), nil)

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode body: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("Unexpected body %v", body)
	}
	if resp.Header.Get(middleware.RequestIDHeader) == "" {
		t.Error("Expected a generated request id")
	}
}

func TestOAuthMessageDeliveredOnlyWhileWaiting(t *testing.T) {
	store := state.NewStore(state.New(state.FilterSet{}))
	messages := make(chan models.OAuthMessage, 1)
	srv := newTestServer(t, store, messages)

	post := func() int {
		resp, err := http.Post(srv.URL+"/oauth/message", "application/json", strings.NewReader(`{"type":"oauth_success"}`))
		if err != nil {
			t.Fatalf("Request failed: %v", err)
		}
		resp.Body.Close()
		return resp.StatusCode
	}

	if status := post(); status != http.StatusConflict {
		t.Errorf("Expected 409 without a login in progress, got %d", status)
	}
	if len(messages) != 0 {
		t.Fatal("Message delivered without a login in progress")
	}

	store.Dispatch(state.FederatedWaiting{Waiting: true})
	if status := post(); status != http.StatusAccepted {
		t.Errorf("Expected 202, got %d", status)
	}
	if msg := <-messages; msg.Type != models.OAuthSuccess {
		t.Errorf("Unexpected message %+v", msg)
	}
}

func TestOAuthCompleteRedirect(t *testing.T) {
	store := state.NewStore(state.New(state.FilterSet{}))
	store.Dispatch(state.FederatedWaiting{Waiting: true})
	messages := make(chan models.OAuthMessage, 1)
	srv := newTestServer(t, store, messages)

	resp, err := http.Get(srv.URL + "/oauth/complete")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "Sign-in complete") {
		t.Errorf("Unexpected response %d %s", resp.StatusCode, body)
	}
	if msg := <-messages; msg.Type != models.OAuthSuccess {
		t.Errorf("Expected default success message, got %+v", msg)
	}
}

func TestStatusAndMetrics(t *testing.T) {
	store := state.NewStore(state.New(state.FilterSet{}))
	store.Dispatch(state.SessionResolved{Session: &state.Session{Email: "ana@example.com"}})
	srv := newTestServer(t, store, nil)

	resp, err := http.Get(srv.URL + "/status")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	var status map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&status)
	resp.Body.Close()
	if status["authenticated"] != true || status["email"] != "ana@example.com" || status["content_type"] != "movie" {
		t.Errorf("Unexpected status %v", status)
	}

	resp, err = http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), "cinescout_test_total 1") {
		t.Errorf("Expected registered metric in exposition, got %s", body)
	}
}

func TestStartFailsOnBusyAddress(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to listen: %v", err)
	}
	defer busy.Close()

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	cfg := &config.Config{CallbackAddr: busy.Addr().String()}
	server := NewServer(cfg, state.NewStore(state.New(state.FilterSet{})), nil, nil, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	if err := server.Start(ctx); err == nil {
		t.Fatal("Expected bind error on a busy address")
	}
}

func TestOAuthRoutesNeedMessageChannel(t *testing.T) {
	srv := newTestServer(t, state.NewStore(state.New(state.FilterSet{})), nil)

	resp, err := http.Post(srv.URL+"/oauth/message", "application/json", strings.NewReader(`{"type":"oauth_success"}`))
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("Expected 404 without a message channel, got %d", resp.StatusCode)
	}
}

func TestCompletionURL(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	cfg := &config.Config{CallbackAddr: "127.0.0.1:8765"}
	server := NewServer(cfg, state.NewStore(state.New(state.FilterSet{})), nil, nil, logger)

	if got := server.CompletionURL(); got != "http://127.0.0.1:8765/oauth/complete" {
		t.Errorf("Unexpected completion URL %q", got)
	}
}
