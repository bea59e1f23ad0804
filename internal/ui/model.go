// Package ui is the terminal front-end. Every frame is drawn from the
// render projection of the current state; key presses become app commands.
package ui

import (
	"context"
	"errors"

	"github.com/amaumene/cinescout/internal/app"
	"github.com/amaumene/cinescout/internal/controllers"
	"github.com/amaumene/cinescout/internal/render"
	"github.com/amaumene/cinescout/internal/state"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
)

// gridColumns is the number of cards per row in result grids
const gridColumns = 4

// Messages
type msgStateChanged struct{}

type msgCommandDone struct {
	Name string
	Err  error
}

// Model is the bubbletea model of the application
type Model struct {
	ctx       context.Context
	app       *app.App
	store     *state.Store
	projector render.Projector
	changes   <-chan struct{}
	logger    *logrus.Logger

	width  int
	height int

	// Cursors
	resultCursor    int
	watchlistCursor int
	field           filterField
	genreCursor     int

	// Auth form
	email        textinput.Model
	password     textinput.Model
	confirmation textinput.Model
	authFocus    int
}

// NewModel creates the UI model. changes is a store subscription; ctx
// bounds every command started from the UI.
func NewModel(ctx context.Context, a *app.App, projector render.Projector, changes <-chan struct{}, logger *logrus.Logger) Model {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 254
	email.Width = 40

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.Width = 40

	confirmation := textinput.New()
	confirmation.Placeholder = "confirm password"
	confirmation.EchoMode = textinput.EchoPassword
	confirmation.Width = 40

	return Model{
		ctx:          ctx,
		app:          a,
		store:        a.Store(),
		projector:    projector,
		changes:      changes,
		logger:       logger,
		email:        email,
		password:     password,
		confirmation: confirmation,
	}
}

// Init loads the session and filter options
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		waitForChange(m.changes),
		m.command("start", func(ctx context.Context) error {
			m.app.Start(ctx)
			return nil
		}),
	)
}

// waitForChange turns the next store notification into a message
func waitForChange(changes <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-changes
		return msgStateChanged{}
	}
}

// command runs fn off the UI loop
func (m Model) command(name string, fn func(ctx context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return msgCommandDone{Name: name, Err: fn(ctx)}
	}
}

func (m Model) handleDone(msg msgCommandDone) {
	if msg.Err == nil {
		return
	}

	log := m.logger.WithField("command", msg.Name).WithError(msg.Err)
	switch {
	case errors.Is(msg.Err, context.Canceled),
		errors.Is(msg.Err, app.ErrBusy),
		errors.Is(msg.Err, app.ErrAuthRequired),
		errors.Is(msg.Err, controllers.ErrNoMorePages):
		log.Debug("Command not completed")
	default:
		// The state already carries the user-facing message
		log.Info("Command failed")
	}
}

func (m *Model) resetAuthForm() {
	m.email.Reset()
	m.password.Reset()
	m.confirmation.Reset()
	m.authFocus = 0
	m.focusAuthInput()
}

func (m *Model) authInputs(tab state.AuthTab) []*textinput.Model {
	if tab == state.TabSignup {
		return []*textinput.Model{&m.email, &m.password, &m.confirmation}
	}
	return []*textinput.Model{&m.email, &m.password}
}

func (m *Model) focusAuthInput() {
	inputs := m.authInputs(state.TabSignup)
	tab := m.store.Snapshot().Auth.Tab
	active := m.authInputs(tab)
	for _, in := range inputs {
		in.Blur()
	}
	if m.authFocus >= len(active) {
		m.authFocus = 0
	}
	active[m.authFocus].Focus()
}

func clampCursor(cursor, n int) int {
	if n == 0 || cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}
