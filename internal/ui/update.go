package ui

import (
	"context"

	"github.com/amaumene/cinescout/internal/models"
	"github.com/amaumene/cinescout/internal/state"
	tea "github.com/charmbracelet/bubbletea"
)

// authCommands clear the auth form once they succeed
var authCommands = map[string]bool{
	"login":           true,
	"signup":          true,
	"federated_login": true,
}

// Update handles messages and key presses
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case msgStateChanged:
		s := m.store.Snapshot()
		m.resultCursor = clampCursor(m.resultCursor, len(s.Results.Items))
		m.watchlistCursor = clampCursor(m.watchlistCursor, len(s.Watchlist.Entries))
		m.genreCursor = clampCursor(m.genreCursor, len(s.Genres))
		return m, waitForChange(m.changes)

	case msgCommandDone:
		m.handleDone(msg)
		if msg.Err == nil && authCommands[msg.Name] {
			m.resetAuthForm()
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		s := m.store.Snapshot()
		switch {
		case s.Auth.Open:
			return m.updateAuth(msg, s)
		case s.Modal != nil:
			return m.updateModal(msg, s)
		}
		return m.updateScreen(msg, s)
	}

	return m, nil
}

func (m Model) updateAuth(msg tea.KeyMsg, s state.State) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.app.CloseAuth()
		m.resetAuthForm()
		return m, nil

	case "ctrl+t":
		tab := state.TabSignup
		if s.Auth.Tab == state.TabSignup {
			tab = state.TabLogin
		}
		m.app.SelectAuthTab(tab)
		m.authFocus = 0
		m.focusAuthInput()
		return m, nil

	case "ctrl+g":
		return m, m.command("federated_login", m.app.FederatedLogin)

	case "tab", "down", "shift+tab", "up":
		n := len(m.authInputs(s.Auth.Tab))
		if msg.String() == "tab" || msg.String() == "down" {
			m.authFocus = wrap(m.authFocus+1, n)
		} else {
			m.authFocus = wrap(m.authFocus-1, n)
		}
		m.focusAuthInput()
		return m, nil

	case "enter":
		email, password, confirmation := m.email.Value(), m.password.Value(), m.confirmation.Value()
		if s.Auth.Tab == state.TabSignup {
			return m, m.command("signup", func(ctx context.Context) error {
				return m.app.Signup(ctx, email, password, confirmation)
			})
		}
		return m, m.command("login", func(ctx context.Context) error {
			return m.app.Login(ctx, email, password)
		})
	}

	var cmd tea.Cmd
	inputs := m.authInputs(s.Auth.Tab)
	focused := inputs[clampCursor(m.authFocus, len(inputs))]
	*focused, cmd = focused.Update(msg)
	return m, cmd
}

func (m Model) updateModal(msg tea.KeyMsg, s state.State) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "backspace":
		m.app.CloseDetails()
	case "w", "enter":
		return m, m.command("toggle_watchlist", m.app.ToggleWatchlist)
	}
	return m, nil
}

func (m Model) updateScreen(msg tea.KeyMsg, s state.State) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Global keys
	switch key {
	case "q":
		return m, tea.Quit
	case "x":
		m.app.DismissNotice()
		return m, nil
	case "h":
		m.app.Navigate(state.ViewHome)
		return m, nil
	case "f":
		m.app.Navigate(state.ViewFilters)
		return m, nil
	case "r":
		m.app.Navigate(state.ViewResults)
		return m, nil
	case "s":
		return m, m.command("search", m.app.SubmitFilters)
	case "l":
		if !s.Authenticated() {
			m.app.OpenAuth(state.TabLogin)
			m.resetAuthForm()
		}
		return m, nil
	case "o":
		if s.Authenticated() {
			return m, m.command("logout", m.app.Logout)
		}
		return m, nil
	case "W":
		m.watchlistCursor = 0
		return m, m.command("watchlist", m.app.ShowWatchlist)
	}

	switch s.View {
	case state.ViewFilters:
		return m.updateFilters(key, s)
	case state.ViewResults:
		return m.updateResults(key, s)
	case state.ViewWatchlist:
		return m.updateWatchlist(key, s)
	case state.ViewHome:
		if key == "enter" {
			m.app.Navigate(state.ViewFilters)
		}
	}
	return m, nil
}

func (m Model) updateFilters(key string, s state.State) (tea.Model, tea.Cmd) {
	f := s.Filters
	delta := 0

	switch key {
	case "up", "k":
		m.field = filterField(wrap(int(m.field)-1, int(fieldCount)))
		return m, nil
	case "down", "j":
		m.field = filterField(wrap(int(m.field)+1, int(fieldCount)))
		return m, nil
	case "enter":
		return m, m.command("search", m.app.SubmitFilters)
	case "left":
		delta = -1
	case "right":
		delta = 1
	case " ":
	default:
		return m, nil
	}

	switch m.field {
	case fieldType:
		if delta != 0 || key == " " {
			t := otherType(f.Resolved().Type)
			m.genreCursor = 0
			return m, m.command("set_type", func(ctx context.Context) error {
				return m.app.SetContentType(ctx, t)
			})
		}
	case fieldGenres:
		if delta != 0 {
			m.genreCursor = clampCursor(m.genreCursor+delta, len(s.Genres))
			return m, nil
		}
		if len(s.Genres) > 0 {
			m.app.UpdateFilters(toggleGenre(f, s.Genres[m.genreCursor].ID))
		}
	case fieldLanguage:
		if delta != 0 {
			m.app.UpdateFilters(cycleLanguage(f, s.Languages, delta))
		}
	case fieldAdult:
		m.app.UpdateFilters(toggleAdult(f))
	case fieldRating:
		if delta != 0 {
			m.app.UpdateFilters(stepRating(f, float64(delta)*ratingStep))
		}
	case fieldSort:
		if delta != 0 {
			m.app.UpdateFilters(cycleSort(f, delta))
		}
	}
	return m, nil
}

func (m Model) updateResults(key string, s state.State) (tea.Model, tea.Cmd) {
	n := len(s.Results.Items)
	switch key {
	case "left":
		m.resultCursor = clampCursor(m.resultCursor-1, n)
	case "right":
		m.resultCursor = clampCursor(m.resultCursor+1, n)
	case "up", "k":
		m.resultCursor = clampCursor(m.resultCursor-gridColumns, n)
	case "down", "j":
		m.resultCursor = clampCursor(m.resultCursor+gridColumns, n)
	case "m":
		return m, m.command("load_more", m.app.LoadMore)
	case "enter":
		if n == 0 {
			return m, nil
		}
		item, t := s.Results.Items[m.resultCursor], s.Results.Type
		return m, m.openDetails(item, t)
	}
	return m, nil
}

func (m Model) updateWatchlist(key string, s state.State) (tea.Model, tea.Cmd) {
	entries := s.Watchlist.Entries
	switch key {
	case "up", "k", "left":
		m.watchlistCursor = clampCursor(m.watchlistCursor-1, len(entries))
	case "down", "j", "right":
		m.watchlistCursor = clampCursor(m.watchlistCursor+1, len(entries))
	case "enter":
		if len(entries) == 0 {
			return m, nil
		}
		e := entries[m.watchlistCursor]
		return m, m.openDetails(e.AsResultItem(), e.MovieType)
	case "d":
		if len(entries) == 0 {
			return m, nil
		}
		e := entries[m.watchlistCursor]
		saved := models.WatchlistKey{MovieID: e.MovieID, MovieType: e.MovieType}
		return m, m.command("remove", func(ctx context.Context) error {
			if err := m.app.RemoveFromWatchlist(ctx, saved); err != nil {
				return err
			}
			return m.app.ShowWatchlist(ctx)
		})
	}
	return m, nil
}

func (m Model) openDetails(item models.ResultItem, t models.ContentType) tea.Cmd {
	return m.command("details", func(ctx context.Context) error {
		return m.app.OpenDetails(ctx, item, t)
	})
}
