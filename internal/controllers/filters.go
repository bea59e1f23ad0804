package controllers

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/amaumene/cinescout/internal/models"
	"github.com/amaumene/cinescout/internal/services/backend"
	"github.com/amaumene/cinescout/internal/state"
	"github.com/amaumene/cinescout/internal/utils"
	"github.com/sirupsen/logrus"
)

// maxSuggestions bounds the suggestions attached to a resolution error
const maxSuggestions = 3

// PreferenceStore persists the last submitted filter set
type PreferenceStore interface {
	LoadPreferences() (*models.Preferences, error)
	SavePreferences(p *models.Preferences) error
}

// UnknownNameError is returned when user text matches no genre or language
type UnknownNameError struct {
	Kind        string
	Name        string
	Suggestions []string
}

func (e *UnknownNameError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("unknown %s %q", e.Kind, e.Name)
	}
	return fmt.Sprintf("unknown %s %q, did you mean %s?", e.Kind, e.Name, strings.Join(e.Suggestions, ", "))
}

// FilterController loads the filter form options and holds its values
type FilterController struct {
	store  *state.Store
	client *backend.Client
	prefs  PreferenceStore
	logger *logrus.Logger
}

// NewFilterController creates a new filter controller. prefs may be nil.
func NewFilterController(store *state.Store, client *backend.Client, prefs PreferenceStore, logger *logrus.Logger) *FilterController {
	return &FilterController{
		store:  store,
		client: client,
		prefs:  prefs,
		logger: logger,
	}
}

// Filters returns the current filter values with defaults applied
func (c *FilterController) Filters() state.FilterSet {
	return c.store.Snapshot().Filters.Resolved()
}

// LoadGenres fetches the genres of a content type sorted by name. Ids in
// preselected stay selected when the new list contains them.
func (c *FilterController) LoadGenres(ctx context.Context, t models.ContentType, preselected []string) (err error) {
	ctx, span := startSpan(ctx, "filters.load_genres")
	defer func() { endSpan(span, err) }()

	genres, err := c.genreOptions(ctx, t)
	if err != nil {
		c.logger.WithError(err).WithField("type", t).Error("Failed to load genres")
		return err
	}

	c.store.Dispatch(state.GenresLoaded{Type: t, Genres: genres, Preselected: preselected})
	c.logger.WithFields(logrus.Fields{
		"type":  t,
		"count": len(genres),
	}).Debug("Genres loaded")
	return nil
}

// LoadLanguages fetches the languages sorted by English name and selects
// preselected when present
func (c *FilterController) LoadLanguages(ctx context.Context, preselected string) (err error) {
	ctx, span := startSpan(ctx, "filters.load_languages")
	defer func() { endSpan(span, err) }()

	languages, err := c.languageOptions(ctx)
	if err != nil {
		c.logger.WithError(err).Error("Failed to load languages")
		return err
	}

	if preselected == "" {
		preselected = state.DefaultLanguage
	}
	c.store.Dispatch(state.LanguagesLoaded{Languages: languages, Preselected: preselected})
	return nil
}

// SetType switches the content type and reloads its genres, keeping the
// selected genres the new type also has
func (c *FilterController) SetType(ctx context.Context, t models.ContentType) error {
	current := c.store.Snapshot().Filters
	return c.LoadGenres(ctx, t, current.GenreIDs)
}

// Update replaces the filter values
func (c *FilterController) Update(f state.FilterSet) {
	c.store.Dispatch(state.FiltersChanged{Filters: f})
}

// SavePreferences stores the current filter values for the next run
func (c *FilterController) SavePreferences() error {
	if c.prefs == nil {
		return nil
	}
	if err := c.prefs.SavePreferences(c.store.Snapshot().Filters.Preferences()); err != nil {
		return fmt.Errorf("failed to save filter preferences: %w", err)
	}
	return nil
}

// RestorePreferences loads the stored filter values, if any
func (c *FilterController) RestorePreferences() (state.FilterSet, error) {
	if c.prefs == nil {
		return state.FilterSet{}, nil
	}
	p, err := c.prefs.LoadPreferences()
	if err != nil {
		return state.FilterSet{}, fmt.Errorf("failed to load filter preferences: %w", err)
	}
	return state.FilterSetFromPreferences(p), nil
}

// ResolveGenres maps genre names (case-insensitive) or ids to ids
func (c *FilterController) ResolveGenres(ctx context.Context, t models.ContentType, names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}

	genres, err := c.genreOptions(ctx, t)
	if err != nil {
		return nil, err
	}

	candidates := make([]string, len(genres))
	for i, g := range genres {
		candidates[i] = g.Name
	}

	ids := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		id, ok := findGenre(genres, name)
		if !ok {
			return nil, &UnknownNameError{
				Kind:        "genre",
				Name:        name,
				Suggestions: utils.ClosestMatches(name, candidates, maxSuggestions),
			}
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// ResolveLanguage maps a language code or English name to its code
func (c *FilterController) ResolveLanguage(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil
	}

	languages, err := c.languageOptions(ctx)
	if err != nil {
		return "", err
	}

	candidates := make([]string, len(languages))
	for i, l := range languages {
		if strings.EqualFold(l.Code, name) || strings.EqualFold(l.Name, name) {
			return l.Code, nil
		}
		candidates[i] = l.Name
	}

	return "", &UnknownNameError{
		Kind:        "language",
		Name:        name,
		Suggestions: utils.ClosestMatches(name, candidates, maxSuggestions),
	}
}

func (c *FilterController) genreOptions(ctx context.Context, t models.ContentType) ([]state.GenreOption, error) {
	mapping, err := c.client.Genres(ctx, t)
	if err != nil {
		return nil, err
	}

	genres := make([]state.GenreOption, 0, len(mapping))
	for name, id := range mapping {
		genres = append(genres, state.GenreOption{ID: strconv.Itoa(id), Name: name})
	}

	collator := utils.NewCollator()
	sort.SliceStable(genres, func(i, j int) bool {
		return utils.CompareNames(collator, genres[i].Name, genres[j].Name) < 0
	})
	return genres, nil
}

func (c *FilterController) languageOptions(ctx context.Context) ([]state.LanguageOption, error) {
	list, err := c.client.Languages(ctx)
	if err != nil {
		return nil, err
	}

	languages := make([]state.LanguageOption, len(list))
	for i, l := range list {
		languages[i] = state.LanguageOption{Code: l.Code, Name: l.EnglishName}
	}

	collator := utils.NewCollator()
	sort.SliceStable(languages, func(i, j int) bool {
		return utils.CompareNames(collator, languages[i].Name, languages[j].Name) < 0
	})
	return languages, nil
}

func findGenre(genres []state.GenreOption, name string) (string, bool) {
	for _, g := range genres {
		if strings.EqualFold(g.Name, name) || g.ID == name {
			return g.ID, true
		}
	}
	return "", false
}
