package main

import (
	"context"

	"github.com/amaumene/cinescout/internal/models"
	"github.com/spf13/cobra"
)

func newGenresCommand() *cobra.Command {
	var contentType string
	cmd := &cobra.Command{
		Use:   "genres",
		Short: "List the genres of a content type",
		Args:  cobra.NoArgs,
	}
	cmd.Flags().StringVar(&contentType, "type", "movie", "content type (movie or tv)")

	cmd.RunE = withRuntime(func(ctx context.Context, rt *runtime, args []string) error {
		t := models.ParseContentType(contentType)
		if err := rt.ctrl.Filters.LoadGenres(ctx, t, nil); err != nil {
			return err
		}

		var rows [][]string
		for _, g := range rt.store.Snapshot().Genres {
			rows = append(rows, []string{g.ID, g.Name})
		}
		printTable(cmd.OutOrStdout(), []string{"ID", "NAME"}, rows)
		return nil
	})
	return cmd
}

func newLanguagesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "languages",
		Short: "List the languages discovery can filter by",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = withRuntime(func(ctx context.Context, rt *runtime, args []string) error {
		if err := rt.ctrl.Filters.LoadLanguages(ctx, rt.cfg.DefaultLanguage); err != nil {
			return err
		}

		var rows [][]string
		for _, l := range rt.store.Snapshot().Languages {
			rows = append(rows, []string{l.Code, l.Name})
		}
		printTable(cmd.OutOrStdout(), []string{"CODE", "NAME"}, rows)
		return nil
	})
	return cmd
}
