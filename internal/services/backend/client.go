package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/amaumene/cinescout/internal/config"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const userAgent = "cinescout/1.0"

// CookieStore persists the backend session cookies between runs
type CookieStore interface {
	LoadCookies(host string) ([]*http.Cookie, error)
	SaveCookies(host string, cookies []*http.Cookie) error
}

// Client handles communication with the movie-discovery backend
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	jar        http.CookieJar
	cookies    CookieStore
	lookups    *gocache.Cache
	metrics    *Metrics
	logger     *logrus.Logger
}

// NewClient creates a new backend client. cookies and metrics may be nil.
func NewClient(cfg *config.Config, cookies CookieStore, metrics *Metrics, logger *logrus.Logger) (*Client, error) {
	baseURL, err := url.Parse(cfg.APIBaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid backend URL: %w", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	if cookies != nil {
		saved, err := cookies.LoadCookies(baseURL.Host)
		if err != nil {
			logger.WithError(err).Warn("Failed to load saved cookies, starting without a session")
		} else if len(saved) > 0 {
			jar.SetCookies(baseURL, saved)
			logger.WithField("count", len(saved)).Debug("Restored backend cookies")
		}
	}

	ttl := cfg.LookupCacheTTL
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   cfg.RequestTimeout,
			Jar:       jar,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		jar:     jar,
		cookies: cookies,
		lookups: gocache.New(ttl, 2*ttl),
		metrics: metrics,
		logger:  logger,
	}, nil
}

// URL appends path to the backend base URL, keeping any path prefix
func (c *Client) URL(path string, query url.Values) string {
	u := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// doRequest performs an HTTP request against the backend. body and result
// may be nil. Non-2xx responses are returned as *APIError; failures without
// a response wrap ErrTransport.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	fullURL := c.URL(path, query)
	requestID := uuid.NewString()
	c.logger.WithFields(logrus.Fields{
		"method":     method,
		"url":        fullURL,
		"request_id": requestID,
	}).Debug("Making backend request")

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.observe(method, path, 0, time.Since(start))
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()
	c.metrics.observe(method, path, resp.StatusCode, time.Since(start))

	c.persistCookies()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		var payload struct {
			Error string `json:"error"`
		}
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
		if json.Unmarshal(bodyBytes, &payload) == nil {
			apiErr.Message = payload.Error
		}
		c.logger.WithFields(logrus.Fields{
			"status_code": resp.StatusCode,
			"path":        path,
			"request_id":  requestID,
		}).Debug("Backend returned non-success status")
		return apiErr
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// persistCookies saves the jar contents for the backend host
func (c *Client) persistCookies() {
	if c.cookies == nil {
		return
	}
	if err := c.cookies.SaveCookies(c.baseURL.Host, c.jar.Cookies(c.baseURL)); err != nil {
		c.logger.WithError(err).Warn("Failed to persist backend cookies")
	}
}
