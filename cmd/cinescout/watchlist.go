package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/amaumene/cinescout/internal/app"
	"github.com/amaumene/cinescout/internal/models"
	"github.com/spf13/cobra"
)

func newWatchlistCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watchlist",
		Short: "Manage saved titles",
	}
	cmd.AddCommand(
		newWatchlistListCommand(),
		newWatchlistAddCommand(),
		newWatchlistRemoveCommand(),
	)
	return cmd
}

// requireLogin re-derives the session before a session-only command
func requireLogin(ctx context.Context, rt *runtime) error {
	if err := rt.app.RefreshSession(ctx); err != nil {
		return err
	}
	if !rt.store.Snapshot().Authenticated() {
		return fmt.Errorf("%w: run cinescout login first", app.ErrAuthRequired)
	}
	return nil
}

// noticeError prefers the notice the UI would show
func noticeError(rt *runtime, err error) error {
	if notice := rt.store.Snapshot().Notice; notice != "" {
		return fmt.Errorf("%s: %w", notice, err)
	}
	return err
}

func newWatchlistListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved titles",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = withRuntime(func(ctx context.Context, rt *runtime, args []string) error {
		if err := requireLogin(ctx, rt); err != nil {
			return err
		}
		if err := rt.app.ShowWatchlist(ctx); err != nil {
			return noticeError(rt, err)
		}

		view := rt.projector.WatchlistFor(rt.store.Snapshot().Watchlist)
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, view.Count)
		if view.Empty != "" {
			fmt.Fprintln(out, view.Empty)
		}
		printCards(out, view.Cards)
		return nil
	})
	return cmd
}

func newWatchlistAddCommand() *cobra.Command {
	var contentType, title, poster, date string
	var rating float64
	cmd := &cobra.Command{
		Use:   "add <id>",
		Short: "Save a title",
		Args:  cobra.ExactArgs(1),
	}
	flags := cmd.Flags()
	flags.StringVar(&contentType, "type", "movie", "content type (movie or tv)")
	flags.StringVar(&title, "title", "", "title")
	flags.StringVar(&poster, "poster", "", "poster path")
	flags.StringVar(&date, "date", "", "release or first air date (YYYY-MM-DD)")
	flags.Float64Var(&rating, "rating", 0, "average rating")
	cmd.MarkFlagRequired("title")

	cmd.RunE = withRuntime(func(ctx context.Context, rt *runtime, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid id %q", args[0])
		}
		if err := requireLogin(ctx, rt); err != nil {
			return err
		}

		t := models.ParseContentType(contentType)
		item := models.ResultItem{ID: id, Title: title, PosterPath: poster}
		if t == models.ContentTypeMovie {
			item.ReleaseDate = date
		} else {
			item.FirstAirDate = date
		}
		if cmd.Flags().Changed("rating") {
			item.VoteAverage = &rating
		}

		if err := rt.app.AddToWatchlist(ctx, item, t); err != nil {
			return noticeError(rt, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), rt.store.Snapshot().Notice)
		return nil
	})
	return cmd
}

func newWatchlistRemoveCommand() *cobra.Command {
	var contentType string
	cmd := &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a saved title",
		Args:  cobra.ExactArgs(1),
	}
	cmd.Flags().StringVar(&contentType, "type", "movie", "content type (movie or tv)")

	cmd.RunE = withRuntime(func(ctx context.Context, rt *runtime, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid id %q", args[0])
		}
		if err := requireLogin(ctx, rt); err != nil {
			return err
		}

		key := models.WatchlistKey{MovieID: id, MovieType: models.ParseContentType(contentType)}
		if err := rt.app.RemoveFromWatchlist(ctx, key); err != nil {
			return noticeError(rt, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), rt.store.Snapshot().Notice)
		return nil
	})
	return cmd
}
