package controllers

import (
	"context"
	"errors"
	"fmt"

	"github.com/amaumene/cinescout/internal/models"
	"github.com/amaumene/cinescout/internal/services/backend"
	"github.com/amaumene/cinescout/internal/state"
	"github.com/sirupsen/logrus"
)

// BrowserOpener opens a URL in the user's browser
type BrowserOpener func(url string) error

// SessionController tracks whether the user is authenticated
type SessionController struct {
	store  *state.Store
	client *backend.Client
	logger *logrus.Logger
}

// NewSessionController creates a new session controller
func NewSessionController(store *state.Store, client *backend.Client, logger *logrus.Logger) *SessionController {
	return &SessionController{
		store:  store,
		client: client,
		logger: logger,
	}
}

// Check probes the backend identity endpoint and updates the session.
// A transport failure leaves the session as it was; any backend response
// without an authenticated identity clears it.
func (c *SessionController) Check(ctx context.Context) (err error) {
	ctx, span := startSpan(ctx, "session.check")
	defer func() { endSpan(span, err) }()

	identity, err := c.client.Me(ctx)
	var apiErr *backend.APIError
	switch {
	case errors.As(err, &apiErr):
		c.logger.WithField("status_code", apiErr.Status).Debug("Identity probe rejected, treating session as anonymous")
		identity = &backend.Identity{}
	case err != nil:
		c.logger.WithError(err).Warn("Session check failed")
		return fmt.Errorf("failed to check session: %w", err)
	}

	if identity.Authenticated {
		c.store.Dispatch(state.SessionResolved{Session: &state.Session{Email: identity.Email}})
		c.logger.WithField("email", identity.Email).Debug("Session authenticated")
	} else {
		c.store.Dispatch(state.SessionResolved{Session: nil})
		c.logger.Debug("Session anonymous")
	}
	return nil
}

// Login authenticates with email and password. Errors are shown inline on
// the login tab; success closes the auth overlay and refreshes the session.
func (c *SessionController) Login(ctx context.Context, email, password string) (err error) {
	ctx, span := startSpan(ctx, "session.login")
	defer func() { endSpan(span, err) }()

	if err := c.client.Login(ctx, backend.Credentials{Email: email, Password: password}); err != nil {
		c.store.Dispatch(state.AuthFailed{Tab: state.TabLogin, Message: failureText(err, state.MsgLoginFailed)})
		c.logger.WithError(err).WithField("email", email).Info("Login failed")
		return err
	}

	c.store.Dispatch(state.AuthClosed{})
	return c.Check(ctx)
}

// Signup creates an account and logs into it. Mismatching passwords fail
// before any request is made.
func (c *SessionController) Signup(ctx context.Context, email, password, confirmation string) (err error) {
	ctx, span := startSpan(ctx, "session.signup")
	defer func() { endSpan(span, err) }()

	if password != confirmation {
		c.store.Dispatch(state.AuthFailed{Tab: state.TabSignup, Message: state.MsgPasswordMismatch})
		return ErrPasswordMismatch
	}

	creds := backend.Credentials{Email: email, Password: password}
	if err := c.client.Signup(ctx, creds); err != nil {
		c.store.Dispatch(state.AuthFailed{Tab: state.TabSignup, Message: failureText(err, state.MsgSignupFailed)})
		c.logger.WithError(err).WithField("email", email).Info("Signup failed")
		return err
	}

	// Signup does not authenticate the session by itself
	if err := c.client.Login(ctx, creds); err != nil {
		c.store.Dispatch(state.AuthFailed{Tab: state.TabSignup, Message: failureText(err, state.MsgLoginFailed)})
		c.logger.WithError(err).WithField("email", email).Warn("Login after signup failed")
		return err
	}

	c.store.Dispatch(state.AuthClosed{})
	return c.Check(ctx)
}

// Logout ends the session and re-checks it whatever the response was
func (c *SessionController) Logout(ctx context.Context) (err error) {
	ctx, span := startSpan(ctx, "session.logout")
	defer func() { endSpan(span, err) }()

	logoutErr := c.client.Logout(ctx)
	if logoutErr != nil {
		c.logger.WithError(logoutErr).Warn("Logout request failed")
	}

	if err := c.Check(ctx); err != nil {
		return err
	}
	return logoutErr
}

// FederatedLogin opens the federated login entry point in the browser and
// waits for the completion message. There is no timeout: cancel ctx to
// stop waiting. The session is left unchanged if no message arrives.
func (c *SessionController) FederatedLogin(ctx context.Context, open BrowserOpener, messages <-chan models.OAuthMessage) (err error) {
	ctx, span := startSpan(ctx, "session.federated_login")
	defer func() { endSpan(span, err) }()

	authURL := c.client.GoogleAuthURL()
	c.logger.WithField("url", authURL).Info("Opening federated login")
	if err := open(authURL); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}

	c.store.Dispatch(state.FederatedWaiting{Waiting: true})
	defer c.store.Dispatch(state.FederatedWaiting{Waiting: false})

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				return errors.New("federated login message channel closed")
			}
			if msg.Type != models.OAuthSuccess {
				c.logger.WithField("type", msg.Type).Debug("Ignoring unrelated message")
				continue
			}

			c.logger.Info("Federated login completed")
			if err := c.Check(ctx); err != nil {
				return err
			}
			c.store.Dispatch(state.AuthClosed{})
			return nil
		}
	}
}

// failureText picks the text shown for a failed request
func failureText(err error, fallback string) string {
	if errors.Is(err, backend.ErrTransport) {
		return state.MsgConnectionError
	}
	return backend.ErrorMessage(err, fallback)
}
