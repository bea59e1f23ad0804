package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/amaumene/cinescout/internal/models"
	"github.com/amaumene/cinescout/internal/render"
)

func TestPrintCards(t *testing.T) {
	p := render.NewProjector("https://image.tmdb.org/t/p", "https://www.youtube.com/embed/")
	cards := p.Cards([]models.ResultItem{
		{ID: 949, Title: "Heat", PosterPath: "/heat.jpg"},
		{ID: 2},
	}, models.ContentTypeMovie)

	var out bytes.Buffer
	printCards(&out, cards)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected a header and 2 rows, got %q", out.String())
	}
	if !strings.HasPrefix(lines[0], "ID") || !strings.Contains(lines[0], "POSTER") {
		t.Errorf("Unexpected header %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "949") || !strings.Contains(lines[1], "https://image.tmdb.org/t/p/w342/heat.jpg") {
		t.Errorf("Unexpected row %q", lines[1])
	}
	if !strings.Contains(lines[2], "Untitled") || !strings.Contains(lines[2], render.NoImage) {
		t.Errorf("Expected placeholder row, got %q", lines[2])
	}
}

func TestPrintCardsEmpty(t *testing.T) {
	var out bytes.Buffer
	printCards(&out, nil)
	if out.Len() != 0 {
		t.Errorf("Expected no output for an empty grid, got %q", out.String())
	}
}
