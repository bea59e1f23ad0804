package controllers

import (
	"context"

	"github.com/amaumene/cinescout/internal/models"
	"github.com/amaumene/cinescout/internal/services/backend"
	"github.com/amaumene/cinescout/internal/state"
	"github.com/sirupsen/logrus"
)

// ModalController manages the details overlay
type ModalController struct {
	store     *state.Store
	client    *backend.Client
	watchlist *WatchlistController
	logger    *logrus.Logger
}

// NewModalController creates a new modal controller
func NewModalController(store *state.Store, client *backend.Client, watchlist *WatchlistController, logger *logrus.Logger) *ModalController {
	return &ModalController{
		store:     store,
		client:    client,
		watchlist: watchlist,
		logger:    logger,
	}
}

// Open shows the details of item as type t, then loads its trailer. A
// trailer that arrives after the overlay was closed or replaced is dropped.
func (c *ModalController) Open(ctx context.Context, item models.ResultItem, t models.ContentType) (err error) {
	ctx, span := startSpan(ctx, "modal.open")
	defer func() { endSpan(span, err) }()

	token := c.store.NextToken()
	inWatchlist := c.watchlist.CheckMembership(ctx, models.WatchlistKey{MovieID: item.ID, MovieType: t})

	c.store.Dispatch(state.ModalOpened{
		Token:       token,
		Item:        item,
		Type:        t,
		InWatchlist: inWatchlist,
	})

	log := c.logger.WithFields(logrus.Fields{
		"id":   item.ID,
		"type": t,
	})

	trailer, err := c.client.Trailer(ctx, item.ID, t)
	if err != nil {
		// The overlay shows "no trailer" rather than an error
		log.WithError(err).Warn("Failed to load trailer")
		c.store.Dispatch(state.TrailerLoaded{Token: token})
		return nil
	}

	var key string
	if trailer != nil {
		key = trailer.Key
	}
	c.store.Dispatch(state.TrailerLoaded{Token: token, Key: key})
	log.WithField("has_trailer", key != "").Debug("Trailer loaded")
	return nil
}

// Close hides the overlay and discards its context
func (c *ModalController) Close() {
	c.store.Dispatch(state.ModalClosed{})
}
