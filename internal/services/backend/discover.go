package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/amaumene/cinescout/internal/models"
)

// Discover fetches one page of results for the given filter query
func (c *Client) Discover(ctx context.Context, query url.Values) (*models.ResultPage, error) {
	var page models.ResultPage
	if err := c.doRequest(ctx, http.MethodGet, "/discover", query, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Trailer returns the trailer selected for a title, or nil when there is none
func (c *Client) Trailer(ctx context.Context, id int, t models.ContentType) (*models.Trailer, error) {
	var resp struct {
		Trailer *models.Trailer `json:"trailer"`
	}
	query := url.Values{"id": {itoa(id)}, "type": {string(t)}}
	if err := c.doRequest(ctx, http.MethodGet, "/videos", query, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Trailer, nil
}
