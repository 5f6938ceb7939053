package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/glyphfield/internal/field"
)

// Theme pairs a glyph palette with HUD colours.
type Theme struct {
	Name       string
	Palette    field.Palette
	Background field.RGB
	Accent     lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
}

// Available themes
var (
	ThemePortfolio = Theme{
		Name:       "portfolio",
		Palette:    field.DefaultPalette,
		Background: field.RGB{R: 6, G: 6, B: 11},
		Accent:     lipgloss.Color("#00e5ff"),
		Text:       lipgloss.Color("#e4e4e7"),
		Muted:      lipgloss.Color("#71717a"),
	}

	ThemeCyberpunk = Theme{
		Name:       "cyberpunk",
		Palette:    field.Palette{From: field.RGB{R: 255, G: 0, B: 255}, To: field.RGB{R: 0, G: 255, B: 255}},
		Background: field.RGB{R: 10, G: 10, B: 10},
		Accent:     lipgloss.Color("#ffff00"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#666666"),
	}

	ThemeRetroGreen = Theme{
		Name:       "retro",
		Palette:    field.Palette{From: field.RGB{R: 0, G: 255, B: 0}, To: field.RGB{R: 0, G: 136, B: 0}},
		Background: field.RGB{R: 0, G: 17, B: 0},
		Accent:     lipgloss.Color("#88ff88"),
		Text:       lipgloss.Color("#00ff00"),
		Muted:      lipgloss.Color("#005500"),
	}

	ThemeOcean = Theme{
		Name:       "ocean",
		Palette:    field.Palette{From: field.RGB{R: 0, G: 119, B: 190}, To: field.RGB{R: 0, G: 255, B: 136}},
		Background: field.RGB{R: 0, G: 26, B: 51},
		Accent:     lipgloss.Color("#ffd700"),
		Text:       lipgloss.Color("#e0f0ff"),
		Muted:      lipgloss.Color("#4488aa"),
	}

	ThemeSunset = Theme{
		Name:       "sunset",
		Palette:    field.Palette{From: field.RGB{R: 255, G: 107, B: 107}, To: field.RGB{R: 254, G: 202, B: 87}},
		Background: field.RGB{R: 45, G: 27, B: 46},
		Accent:     lipgloss.Color("#ff9ff3"),
		Text:       lipgloss.Color("#fff5f5"),
		Muted:      lipgloss.Color("#8b6b8c"),
	}

	Themes = []Theme{
		ThemePortfolio,
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, defaulting to portfolio.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemePortfolio
}

// NextTheme returns the theme after name, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
