package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/amaumene/cinescout/internal/models"
)

// Watchlist lists the saved titles of the current session
func (c *Client) Watchlist(ctx context.Context) ([]models.WatchlistEntry, error) {
	var resp struct {
		Watchlist []models.WatchlistEntry `json:"watchlist"`
	}
	if err := c.doRequest(ctx, http.MethodGet, "/watchlist", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Watchlist, nil
}

// CheckWatchlist reports whether a title is saved
func (c *Client) CheckWatchlist(ctx context.Context, key models.WatchlistKey) (bool, error) {
	var resp struct {
		InWatchlist bool `json:"inWatchlist"`
	}
	query := url.Values{
		"movieId":   {itoa(key.MovieID)},
		"movieType": {string(key.MovieType)},
	}
	if err := c.doRequest(ctx, http.MethodGet, "/watchlist/check", query, nil, &resp); err != nil {
		return false, err
	}
	return resp.InWatchlist, nil
}

// AddToWatchlist saves a title. A duplicate is reported as a 409 APIError.
func (c *Client) AddToWatchlist(ctx context.Context, record models.WatchlistRecord) error {
	return c.doRequest(ctx, http.MethodPost, "/watchlist/add", nil, record, nil)
}

// RemoveFromWatchlist deletes a saved title
func (c *Client) RemoveFromWatchlist(ctx context.Context, key models.WatchlistKey) error {
	return c.doRequest(ctx, http.MethodDelete, "/watchlist/remove", nil, key, nil)
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
