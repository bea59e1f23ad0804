// Package app dispatches user commands to the controllers. It guards each
// kind of operation so that at most one runs at a time.
package app

import (
	"context"
	"errors"

	"github.com/amaumene/cinescout/internal/controllers"
	"github.com/amaumene/cinescout/internal/models"
	"github.com/amaumene/cinescout/internal/state"
	"github.com/sirupsen/logrus"
)

var (
	// ErrBusy is returned when the same kind of operation is already running
	ErrBusy = errors.New("operation already in progress")
	// ErrOverlayOpen is returned when details are requested over the auth overlay
	ErrOverlayOpen = errors.New("auth overlay is open")
	// ErrAuthRequired is returned when a session-only command runs anonymously
	ErrAuthRequired = controllers.ErrAuthRequired
)

// Controllers groups the controllers the dispatcher drives
type Controllers struct {
	Session   *controllers.SessionController
	Filters   *controllers.FilterController
	Discovery *controllers.DiscoveryController
	Modal     *controllers.ModalController
	Watchlist *controllers.WatchlistController
}

// App is the command dispatcher
type App struct {
	store  *state.Store
	ctrl   Controllers
	open   controllers.BrowserOpener
	oauth  <-chan models.OAuthMessage
	logger *logrus.Logger

	discover  flight
	details   flight
	watchlist flight
	auth      flight
}

// New creates a dispatcher. oauth delivers federated login completion
// messages; open launches the system browser.
func New(store *state.Store, ctrl Controllers, open controllers.BrowserOpener, oauth <-chan models.OAuthMessage, logger *logrus.Logger) *App {
	return &App{
		store:  store,
		ctrl:   ctrl,
		open:   open,
		oauth:  oauth,
		logger: logger,
	}
}

// Store returns the state store
func (a *App) Store() *state.Store {
	return a.store
}

// Start resolves the session and loads the filter options. Failures are
// logged and leave the affected part empty.
func (a *App) Start(ctx context.Context) {
	if err := a.ctrl.Session.Check(ctx); err != nil {
		a.logger.WithError(err).Warn("Initial session check failed")
	}

	filters := a.store.Snapshot().Filters
	if err := a.ctrl.Filters.LoadLanguages(ctx, filters.Language); err != nil {
		a.logger.WithError(err).Warn("Failed to load languages")
	}
	if err := a.ctrl.Filters.LoadGenres(ctx, filters.Resolved().Type, filters.GenreIDs); err != nil {
		a.logger.WithError(err).Warn("Failed to load genres")
	}
}

// Navigate switches the top-level screen
func (a *App) Navigate(v state.View) {
	a.store.Dispatch(state.ViewChanged{View: v})
}

// DismissNotice clears the current notice
func (a *App) DismissNotice() {
	a.store.Dispatch(state.NoticeCleared{})
}

// SetContentType switches between movies and shows
func (a *App) SetContentType(ctx context.Context, t models.ContentType) error {
	return a.ctrl.Filters.SetType(ctx, t)
}

// UpdateFilters replaces the filter form values
func (a *App) UpdateFilters(f state.FilterSet) {
	a.ctrl.Filters.Update(f)
}

// SubmitFilters stores the filter values and starts a fresh search
func (a *App) SubmitFilters(ctx context.Context) error {
	if err := a.ctrl.Filters.SavePreferences(); err != nil {
		a.logger.WithError(err).Warn("Failed to save filter preferences")
	}
	return a.Search(ctx)
}

// Search starts a fresh search. A search or load-more in flight is cancelled.
func (a *App) Search(ctx context.Context) error {
	ctx, done := a.discover.replace(ctx)
	defer done()
	return a.ctrl.Discovery.Search(ctx)
}

// LoadMore appends the next page. It is rejected while a fetch is pending.
func (a *App) LoadMore(ctx context.Context) error {
	ctx, done, ok := a.discover.tryStart(ctx)
	if !ok {
		return ErrBusy
	}
	defer done()
	return a.ctrl.Discovery.LoadMore(ctx)
}

// OpenDetails shows the details overlay for item. An overlay still loading
// is replaced.
func (a *App) OpenDetails(ctx context.Context, item models.ResultItem, t models.ContentType) error {
	if a.store.Snapshot().Auth.Open {
		return ErrOverlayOpen
	}
	ctx, done := a.details.replace(ctx)
	defer done()
	return a.ctrl.Modal.Open(ctx, item, t)
}

// CloseDetails hides the details overlay and stops its trailer lookup
func (a *App) CloseDetails() {
	a.details.stop()
	a.ctrl.Modal.Close()
}

// ToggleWatchlist adds or removes the title shown in the details overlay
func (a *App) ToggleWatchlist(ctx context.Context) error {
	return a.withWatchlist(ctx, a.ctrl.Watchlist.Toggle)
}

// AddToWatchlist saves a title
func (a *App) AddToWatchlist(ctx context.Context, item models.ResultItem, t models.ContentType) error {
	return a.withWatchlist(ctx, func(ctx context.Context) error {
		return a.ctrl.Watchlist.Add(ctx, item, t)
	})
}

// RemoveFromWatchlist deletes a saved title
func (a *App) RemoveFromWatchlist(ctx context.Context, key models.WatchlistKey) error {
	return a.withWatchlist(ctx, func(ctx context.Context) error {
		return a.ctrl.Watchlist.Remove(ctx, key)
	})
}

// ShowWatchlist loads and shows the saved titles
func (a *App) ShowWatchlist(ctx context.Context) error {
	return a.withWatchlist(ctx, a.ctrl.Watchlist.List)
}

// OpenAuth opens the auth overlay on tab
func (a *App) OpenAuth(tab state.AuthTab) {
	a.store.Dispatch(state.AuthOpened{Tab: tab})
}

// SelectAuthTab switches the auth overlay tab
func (a *App) SelectAuthTab(tab state.AuthTab) {
	a.store.Dispatch(state.AuthTabSelected{Tab: tab})
}

// CloseAuth closes the auth overlay and stops waiting for federated login
func (a *App) CloseAuth() {
	a.auth.stop()
	a.store.Dispatch(state.AuthClosed{})
}

// Login authenticates with email and password
func (a *App) Login(ctx context.Context, email, password string) error {
	return a.withAuth(ctx, func(ctx context.Context) error {
		return a.ctrl.Session.Login(ctx, email, password)
	})
}

// Signup creates an account and logs into it
func (a *App) Signup(ctx context.Context, email, password, confirmation string) error {
	return a.withAuth(ctx, func(ctx context.Context) error {
		return a.ctrl.Session.Signup(ctx, email, password, confirmation)
	})
}

// Logout ends the session
func (a *App) Logout(ctx context.Context) error {
	return a.withAuth(ctx, a.ctrl.Session.Logout)
}

// FederatedLogin opens the browser and waits for the completion message
// until it arrives, ctx is cancelled or the auth overlay is closed
func (a *App) FederatedLogin(ctx context.Context) error {
	return a.withAuth(ctx, func(ctx context.Context) error {
		return a.ctrl.Session.FederatedLogin(ctx, a.open, a.oauth)
	})
}

// RefreshSession re-checks the session unless an auth command is running
func (a *App) RefreshSession(ctx context.Context) error {
	if a.auth.running() {
		return ErrBusy
	}
	return a.ctrl.Session.Check(ctx)
}

func (a *App) withWatchlist(ctx context.Context, fn func(context.Context) error) error {
	ctx, done, ok := a.watchlist.tryStart(ctx)
	if !ok {
		return ErrBusy
	}
	defer done()
	return fn(ctx)
}

func (a *App) withAuth(ctx context.Context, fn func(context.Context) error) error {
	ctx, done, ok := a.auth.tryStart(ctx)
	if !ok {
		return ErrBusy
	}
	defer done()
	return fn(ctx)
}
