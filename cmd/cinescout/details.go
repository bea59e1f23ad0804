package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/amaumene/cinescout/internal/models"
	"github.com/amaumene/cinescout/internal/render"
	"github.com/spf13/cobra"
)

func newDetailsCommand() *cobra.Command {
	var contentType, title string
	cmd := &cobra.Command{
		Use:   "details <id>",
		Short: "Show the trailer and watchlist status of a title",
		Args:  cobra.ExactArgs(1),
	}
	cmd.Flags().StringVar(&contentType, "type", "movie", "content type (movie or tv)")
	cmd.Flags().StringVar(&title, "title", "", "title to display")

	cmd.RunE = withRuntime(func(ctx context.Context, rt *runtime, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid id %q", args[0])
		}

		if err := rt.app.RefreshSession(ctx); err != nil {
			rt.logger.WithError(err).Warn("Session check failed, continuing anonymously")
		}

		item := models.ResultItem{ID: id, Title: title}
		if err := rt.app.OpenDetails(ctx, item, models.ParseContentType(contentType)); err != nil {
			return err
		}

		modal := rt.store.Snapshot().Modal
		if modal == nil {
			return fmt.Errorf("details were closed")
		}
		printModal(cmd.OutOrStdout(), rt.projector.ModalFor(*modal))
		return nil
	})
	return cmd
}

func printModal(w io.Writer, m render.Modal) {
	fmt.Fprintln(w, m.Title)
	fmt.Fprintf(w, "Rating: %s", m.Rating)
	if m.Year != "" {
		fmt.Fprintf(w, "  Year: %s", m.Year)
	}
	fmt.Fprintln(w)
	if m.TrailerURL != "" {
		fmt.Fprintf(w, "Trailer: %s\n", m.TrailerURL)
	} else {
		fmt.Fprintln(w, m.TrailerMessage)
	}
	fmt.Fprintln(w, m.ToggleLabel)
}
