package viz

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/san-kum/glyphfield/internal/config"
)

func TestPageLayout(t *testing.T) {
	p := NewPage(config.DefaultPage())
	lines := p.Layout(40, 10, ThemePortfolio)

	if len(lines) <= 10 {
		t.Fatalf("got %d lines, want sections below the first viewport", len(lines))
	}
	found := false
	for _, l := range lines[:10] {
		if l.Text == "GLYPHFIELD" {
			found = true
		}
	}
	if !found {
		t.Error("title not in the first viewport")
	}
	for i, l := range lines {
		if l.Col < 0 || l.Col+runewidth.StringWidth(l.Text) > 40 {
			t.Errorf("line %d %q overflows at col %d", i, l.Text, l.Col)
		}
	}
	if !strings.HasPrefix(lines[11].Text, "//") {
		t.Errorf("first section label = %q", lines[11].Text)
	}
}

func TestPageLayoutEmpty(t *testing.T) {
	if lines := NewPage(config.DefaultPage()).Layout(0, 0, ThemePortfolio); lines != nil {
		t.Errorf("got %d lines for an empty terminal", len(lines))
	}
}

func TestMaxScroll(t *testing.T) {
	tests := []struct {
		lines, rows int
		want        float64
	}{
		{5, 10, 0},
		{10, 10, 0},
		{15, 10, 5 * PxPerRow},
	}
	for _, tt := range tests {
		if got := MaxScroll(tt.lines, tt.rows); got != tt.want {
			t.Errorf("MaxScroll(%d, %d) = %g, want %g", tt.lines, tt.rows, got, tt.want)
		}
	}
}
