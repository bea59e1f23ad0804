package controllers

import (
	"context"
	"errors"

	"github.com/amaumene/cinescout/internal/models"
	"github.com/amaumene/cinescout/internal/services/backend"
	"github.com/amaumene/cinescout/internal/state"
	"github.com/sirupsen/logrus"
)

// WatchlistController manages the saved titles of the session
type WatchlistController struct {
	store  *state.Store
	client *backend.Client
	logger *logrus.Logger
}

// NewWatchlistController creates a new watchlist controller
func NewWatchlistController(store *state.Store, client *backend.Client, logger *logrus.Logger) *WatchlistController {
	return &WatchlistController{
		store:  store,
		client: client,
		logger: logger,
	}
}

// CheckMembership reports whether a title is saved. It is false without a
// session, and false when the check fails.
func (c *WatchlistController) CheckMembership(ctx context.Context, key models.WatchlistKey) bool {
	if !c.store.Snapshot().Authenticated() {
		return false
	}

	ctx, span := startSpan(ctx, "watchlist.check")
	saved, err := c.client.CheckWatchlist(ctx, key)
	endSpan(span, err)
	if err != nil {
		c.logger.WithError(err).WithFields(logrus.Fields{
			"id":   key.MovieID,
			"type": key.MovieType,
		}).Warn("Watchlist check failed, assuming not saved")
		return false
	}
	return saved
}

// Add saves item as type t. Without a session the auth overlay opens and
// nothing is sent.
func (c *WatchlistController) Add(ctx context.Context, item models.ResultItem, t models.ContentType) (err error) {
	if !c.requireSession() {
		return ErrAuthRequired
	}

	ctx, span := startSpan(ctx, "watchlist.add")
	defer func() { endSpan(span, err) }()

	record := models.NewWatchlistRecord(item, t)
	key := models.WatchlistKey{MovieID: record.MovieID, MovieType: record.MovieType}
	log := c.logger.WithFields(logrus.Fields{
		"id":    record.MovieID,
		"type":  record.MovieType,
		"title": record.Title,
	})

	if err := c.client.AddToWatchlist(ctx, record); err != nil {
		switch {
		case backend.IsConflict(err):
			c.store.Dispatch(state.NoticePosted{Text: state.MsgAlreadySaved})
		case errors.Is(err, backend.ErrTransport):
			c.store.Dispatch(state.NoticePosted{Text: state.MsgConnectionError})
		default:
			c.store.Dispatch(state.NoticePosted{Text: backend.ErrorMessage(err, state.MsgAddFailed)})
		}
		log.WithError(err).Warn("Failed to add to watchlist")
		return err
	}

	c.store.Dispatch(
		state.MembershipChanged{Key: key, InWatchlist: true},
		state.NoticePosted{Text: state.MsgAdded},
	)
	log.Info("Added to watchlist")
	return nil
}

// Remove deletes a saved title
func (c *WatchlistController) Remove(ctx context.Context, key models.WatchlistKey) (err error) {
	if !c.requireSession() {
		return ErrAuthRequired
	}

	ctx, span := startSpan(ctx, "watchlist.remove")
	defer func() { endSpan(span, err) }()

	log := c.logger.WithFields(logrus.Fields{
		"id":   key.MovieID,
		"type": key.MovieType,
	})

	if err := c.client.RemoveFromWatchlist(ctx, key); err != nil {
		c.store.Dispatch(state.NoticePosted{Text: failureText(err, state.MsgRemoveFailed)})
		log.WithError(err).Warn("Failed to remove from watchlist")
		return err
	}

	c.store.Dispatch(
		state.MembershipChanged{Key: key, InWatchlist: false},
		state.NoticePosted{Text: state.MsgRemoved},
	)
	log.Info("Removed from watchlist")
	return nil
}

// Toggle re-checks whether the open overlay's title is saved, then removes
// or adds it
func (c *WatchlistController) Toggle(ctx context.Context) error {
	if !c.requireSession() {
		return ErrAuthRequired
	}

	modal := c.store.Snapshot().Modal
	if modal == nil {
		return ErrNoModal
	}

	key := modal.Key()
	if c.CheckMembership(ctx, key) {
		return c.Remove(ctx, key)
	}
	return c.Add(ctx, modal.Item, modal.Type)
}

// List loads the saved titles and shows the watchlist
func (c *WatchlistController) List(ctx context.Context) (err error) {
	if !c.requireSession() {
		return ErrAuthRequired
	}

	ctx, span := startSpan(ctx, "watchlist.list")
	defer func() { endSpan(span, err) }()

	entries, err := c.client.Watchlist(ctx)
	if err != nil {
		c.store.Dispatch(state.NoticePosted{Text: failureText(err, state.MsgListFailed)})
		c.logger.WithError(err).Error("Failed to load watchlist")
		return err
	}

	c.store.Dispatch(state.WatchlistLoaded{Entries: entries})
	c.logger.WithField("count", len(entries)).Debug("Watchlist loaded")
	return nil
}

// requireSession opens the login overlay when there is no session
func (c *WatchlistController) requireSession() bool {
	if c.store.Snapshot().Authenticated() {
		return true
	}
	c.store.Dispatch(state.AuthOpened{Tab: state.TabLogin})
	return false
}
