package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/amaumene/cinescout/internal/models"
	"github.com/amaumene/cinescout/internal/render"
	"github.com/amaumene/cinescout/internal/state"
	"github.com/spf13/cobra"
)

func newDiscoverCommand() *cobra.Command {
	var (
		contentType string
		genres      []string
		language    string
		adult       bool
		rating      float64
		sortBy      string
		page        int
		save        bool
	)
	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Discover titles matching filters",
		Args:  cobra.NoArgs,
	}
	flags := cmd.Flags()
	flags.StringVar(&contentType, "type", "movie", "content type (movie or tv)")
	flags.StringSliceVar(&genres, "genre", nil, "genre name or id, repeatable")
	flags.StringVar(&language, "language", "", "language code or English name (default from config)")
	flags.BoolVar(&adult, "adult", false, "include adult titles")
	flags.Float64Var(&rating, "rating", 5, "minimum rating (0-10)")
	flags.StringVar(&sortBy, "sort", state.DefaultSortBy, "sort order")
	flags.IntVar(&page, "page", 1, "page to fetch")
	flags.BoolVar(&save, "save", false, "store these filters for the next run")

	cmd.RunE = withRuntime(func(ctx context.Context, rt *runtime, args []string) error {
		if page < 1 {
			return fmt.Errorf("page must be at least 1")
		}
		if rating < 0 || rating > 10 {
			return fmt.Errorf("rating must be between 0 and 10")
		}

		t := models.ParseContentType(contentType)
		genreIDs, err := rt.ctrl.Filters.ResolveGenres(ctx, t, genres)
		if err != nil {
			return err
		}
		if language == "" {
			language = rt.cfg.DefaultLanguage
		}
		code, err := rt.ctrl.Filters.ResolveLanguage(ctx, language)
		if err != nil {
			return err
		}

		filters := state.FilterSet{
			Type:     t,
			GenreIDs: genreIDs,
			Language: code,
			Adult:    "False",
			Rating:   strconv.FormatFloat(rating, 'f', -1, 64),
			SortBy:   sortBy,
		}
		if adult {
			filters.Adult = "True"
		}
		rt.app.UpdateFilters(filters)
		if save {
			if err := rt.ctrl.Filters.SavePreferences(); err != nil {
				return err
			}
		}

		if err := rt.ctrl.Discovery.FetchPage(ctx, page, false); err != nil {
			return fmt.Errorf("%s: %w", rt.store.Snapshot().Results.Status, err)
		}

		printResults(cmd.OutOrStdout(), rt.projector.ResultsFor(rt.store.Snapshot().Results))
		return nil
	})
	return cmd
}

func printResults(w io.Writer, r render.Results) {
	fmt.Fprintln(w, r.Title)
	fmt.Fprintln(w, r.Status)
	printCards(w, r.Cards)
	if r.LoadMore.Visible {
		fmt.Fprintln(w, "More results available with --page")
	}
}

func printCards(w io.Writer, cards []render.Card) {
	if len(cards) == 0 {
		return
	}
	rows := make([][]string, len(cards))
	for i, c := range cards {
		poster := c.PosterURL
		if poster == "" {
			poster = c.Placeholder
		}
		rows[i] = []string{strconv.Itoa(c.Item.ID), string(c.Type), c.Title, c.Rating, poster}
	}
	printTable(w, []string{"ID", "TYPE", "TITLE", "RATING", "POSTER"}, rows)
}
