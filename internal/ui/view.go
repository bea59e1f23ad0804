package ui

import (
	"fmt"
	"strings"

	"github.com/amaumene/cinescout/internal/render"
	"github.com/amaumene/cinescout/internal/state"
	"github.com/charmbracelet/lipgloss"
)

// View draws the current state
func (m Model) View() string {
	screen := m.projector.Screen(m.store.Snapshot())

	var body string
	switch {
	case screen.Auth.Open:
		body = m.viewAuth(screen.Auth)
	case screen.Modal != nil:
		body = viewModal(*screen.Modal)
	default:
		switch screen.View {
		case state.ViewFilters:
			body = m.viewFilters(screen.Filters)
		case state.ViewResults:
			body = viewResults(screen.Results, m.resultCursor)
		case state.ViewWatchlist:
			body = viewWatchlist(screen.Watchlist, m.watchlistCursor)
		default:
			body = viewHome()
		}
	}

	parts := []string{viewHeader(screen.Nav), body}
	if screen.Notice != "" {
		parts = append(parts, noticeStyle.Render(screen.Notice))
	}
	parts = append(parts, footerStyle.Render(helpText(screen)))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func viewHeader(nav render.Nav) string {
	left := titleStyle.Render("cinescout")
	var right string
	switch {
	case nav.ShowLogout:
		right = nav.Greeting + mutedStyle.Render("  [W]atchlist  l[o]gout")
	case nav.ShowLogin:
		right = mutedStyle.Render("[l]ogin")
	}
	return headerStyle.Render(left + "  " + right)
}

func viewHome() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Find your next movie or show"),
		"",
		"Press enter to pick filters, then s to search.",
	)
}

func (m Model) viewFilters(f render.Filters) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Filters") + "\n\n")

	for i := fieldType; i < fieldCount; i++ {
		label := fmt.Sprintf("%-11s", fieldLabels[i])
		if i == m.field {
			label = selectedStyle.Render(label)
		}
		b.WriteString(label + "  " + m.filterValue(i, f) + "\n")
	}
	return b.String()
}

func (m Model) filterValue(field filterField, f render.Filters) string {
	switch field {
	case fieldType:
		return f.Type.Label()
	case fieldGenres:
		if len(f.Genres) == 0 {
			return mutedStyle.Render("(none loaded)")
		}
		names := make([]string, len(f.Genres))
		for i, g := range f.Genres {
			name := g.Label
			if g.Selected {
				name = "[x] " + name
			} else {
				name = "[ ] " + name
			}
			if field == m.field && i == m.genreCursor {
				name = selectedStyle.Render(name)
			}
			names[i] = name
		}
		return strings.Join(names, "  ")
	case fieldLanguage:
		for _, l := range f.Languages {
			if l.Selected {
				return l.Label
			}
		}
		return mutedStyle.Render("(default)")
	case fieldAdult:
		if f.Adult {
			return "yes"
		}
		return "no"
	case fieldRating:
		return f.Rating
	case fieldSort:
		return f.SortBy
	}
	return ""
}

func viewCard(c render.Card, selected bool) string {
	poster := c.PosterURL
	if poster == "" {
		poster = c.Placeholder
	}
	line := fmt.Sprintf("%s  ★ %s  %s", c.Title, c.Rating, mutedStyle.Render(poster))
	if selected {
		return selectedStyle.Render("> " + c.Title + "  ★ " + c.Rating)
	}
	return "  " + line
}

func viewResults(r render.Results, cursor int) string {
	lines := []string{titleStyle.Render(r.Title), mutedStyle.Render(r.Status), ""}
	for i, c := range r.Cards {
		lines = append(lines, viewCard(c, i == cursor))
	}
	if r.LoadMore.Visible {
		lines = append(lines, "", mutedStyle.Render("[m] Load more"))
	}
	return strings.Join(lines, "\n")
}

func viewWatchlist(w render.Watchlist, cursor int) string {
	lines := []string{titleStyle.Render("My Watchlist"), mutedStyle.Render(w.Count), ""}
	if w.Empty != "" {
		lines = append(lines, w.Empty)
	}
	for i, c := range w.Cards {
		lines = append(lines, viewCard(c, i == cursor))
	}
	return strings.Join(lines, "\n")
}

func viewModal(md render.Modal) string {
	header := titleStyle.Render(md.Title)
	meta := "★ " + md.Rating
	if md.Year != "" {
		meta += "  " + md.Year
	}

	trailer := md.TrailerMessage
	if md.TrailerURL != "" {
		trailer = "Trailer: " + md.TrailerURL
	}

	lines := []string{header, mutedStyle.Render(meta), "", md.Overview, ""}
	if md.BackdropURL != "" {
		lines = append(lines, mutedStyle.Render(md.BackdropURL))
	}
	lines = append(lines, trailer, "", selectedStyle.Render(" "+md.ToggleLabel+" "))
	return overlayStyle.Render(strings.Join(lines, "\n"))
}

func (m Model) viewAuth(a render.Auth) string {
	var lines []string
	if a.Tab == state.TabSignup {
		lines = append(lines, mutedStyle.Render("Login")+" | "+titleStyle.Render("Sign up"), "")
		lines = append(lines, m.email.View(), m.password.View(), m.confirmation.View())
		if a.SignupError != "" {
			lines = append(lines, errorStyle.Render(a.SignupError))
		}
	} else {
		lines = append(lines, titleStyle.Render("Login")+" | "+mutedStyle.Render("Sign up"), "")
		lines = append(lines, m.email.View(), m.password.View())
		if a.LoginError != "" {
			lines = append(lines, errorStyle.Render(a.LoginError))
		}
	}
	if a.Waiting != "" {
		lines = append(lines, "", mutedStyle.Render(a.Waiting))
	}
	return overlayStyle.Render(strings.Join(lines, "\n"))
}

func helpText(screen render.Screen) string {
	switch {
	case screen.Auth.Open:
		return "enter submit • tab next field • ctrl+t switch tab • ctrl+g Google • esc close"
	case screen.Modal != nil:
		return "w toggle watchlist • esc close"
	}
	switch screen.View {
	case state.ViewFilters:
		return "↑/↓ field • ←/→ change • space toggle • enter search • q quit"
	case state.ViewResults:
		return "arrows move • enter details • m more • f filters • q quit"
	case state.ViewWatchlist:
		return "↑/↓ move • enter details • d remove • f filters • q quit"
	}
	return "enter filters • s search • q quit"
}
