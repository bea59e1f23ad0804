package controllers

import (
	"context"
	"errors"

	"github.com/amaumene/cinescout/internal/services/backend"
	"github.com/amaumene/cinescout/internal/state"
	"github.com/sirupsen/logrus"
)

// DiscoveryController fetches pages of discovery results
type DiscoveryController struct {
	store  *state.Store
	client *backend.Client
	logger *logrus.Logger
}

// NewDiscoveryController creates a new discovery controller
func NewDiscoveryController(store *state.Store, client *backend.Client, logger *logrus.Logger) *DiscoveryController {
	return &DiscoveryController{
		store:  store,
		client: client,
		logger: logger,
	}
}

// Search fetches the first page for the current filters, replacing results
func (c *DiscoveryController) Search(ctx context.Context) error {
	return c.FetchPage(ctx, 1, false)
}

// LoadMore fetches the page after the current one and appends it
func (c *DiscoveryController) LoadMore(ctx context.Context) error {
	results := c.store.Snapshot().Results
	if !results.LoadMore || results.Page >= results.TotalPages {
		return ErrNoMorePages
	}
	return c.FetchPage(ctx, results.Page+1, true)
}

// FetchPage fetches one page of results for the current filters. The
// response is applied only if no newer fetch started meanwhile.
func (c *DiscoveryController) FetchPage(ctx context.Context, page int, appendResults bool) (err error) {
	ctx, span := startSpan(ctx, "discovery.fetch_page")
	defer func() { endSpan(span, err) }()

	snapshot := c.store.Snapshot()
	filters := snapshot.Filters.Resolved()
	token := c.store.NextToken()

	c.store.Dispatch(state.DiscoveryStarted{
		Token:  token,
		Page:   page,
		Append: appendResults,
		Type:   filters.Type,
	})

	log := c.logger.WithFields(logrus.Fields{
		"page":   page,
		"type":   filters.Type,
		"append": appendResults,
	})
	log.Debug("Fetching discovery page")

	resp, err := c.client.Discover(ctx, filters.Query(page))
	if err != nil {
		if errors.Is(err, context.Canceled) {
			c.store.Dispatch(state.DiscoveryCancelled{Token: token})
			log.Debug("Discovery fetch cancelled")
			return err
		}
		c.store.Dispatch(state.DiscoveryFailed{Token: token})
		log.WithError(err).Error("Discovery fetch failed")
		return err
	}

	c.store.Dispatch(state.DiscoveryLoaded{
		Token:    token,
		Page:     page,
		Append:   appendResults,
		Response: *resp,
	})
	log.WithFields(logrus.Fields{
		"total_pages": resp.TotalPages,
		"count":       len(resp.Results),
	}).Info("Discovery page loaded")
	return nil
}
