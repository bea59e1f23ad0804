package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/amaumene/cinescout/internal/models"
)

const languagesCacheKey = "languages"

// Genres returns the genre name -> id mapping for a content type.
// Responses are cached for the configured lookup TTL.
func (c *Client) Genres(ctx context.Context, t models.ContentType) (map[string]int, error) {
	cacheKey := "genres:" + string(t)
	if cached, ok := c.lookups.Get(cacheKey); ok {
		return copyGenres(cached.(map[string]int)), nil
	}

	var genres map[string]int
	query := url.Values{"type": {string(t)}}
	if err := c.doRequest(ctx, http.MethodGet, "/genres", query, nil, &genres); err != nil {
		return nil, fmt.Errorf("failed to get genres: %w", err)
	}

	c.lookups.SetDefault(cacheKey, genres)
	return copyGenres(genres), nil
}

// Languages returns the languages known to the backend, cached like Genres
func (c *Client) Languages(ctx context.Context) ([]models.Language, error) {
	if cached, ok := c.lookups.Get(languagesCacheKey); ok {
		return append([]models.Language(nil), cached.([]models.Language)...), nil
	}

	var languages []models.Language
	if err := c.doRequest(ctx, http.MethodGet, "/languages", nil, nil, &languages); err != nil {
		return nil, fmt.Errorf("failed to get languages: %w", err)
	}

	c.lookups.SetDefault(languagesCacheKey, languages)
	return append([]models.Language(nil), languages...), nil
}

func copyGenres(src map[string]int) map[string]int {
	dst := make(map[string]int, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
