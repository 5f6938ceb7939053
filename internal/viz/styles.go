package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/glyphfield/internal/field"
)

// Styles are the HUD styles derived from a theme.
type Styles struct {
	Panel lipgloss.Style
	Title lipgloss.Style
	Label lipgloss.Style
	Value lipgloss.Style
	Key   lipgloss.Style
	Graph lipgloss.Style
	Error lipgloss.Style
}

func NewStyles(t Theme) Styles {
	bg := lipgloss.Color(toColorful(t.Background).Hex())
	return Styles{
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Background(bg).
			Padding(0, 1),
		Title: lipgloss.NewStyle().Bold(true).Foreground(t.Accent).Background(bg),
		Label: lipgloss.NewStyle().Foreground(t.Muted).Background(bg).Width(10),
		Value: lipgloss.NewStyle().Foreground(t.Text).Background(bg),
		Key:   lipgloss.NewStyle().Foreground(t.Accent).Background(bg).Bold(true),
		Graph: lipgloss.NewStyle().Foreground(t.Accent).Background(bg),
		Error: lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444")).Background(bg).Bold(true),
	}
}

// GradientText colours each rune of text along the palette.
func GradientText(text string, p field.Palette) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	from, to := toColorful(p.From), toColorful(p.To)
	var b strings.Builder
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		c := from.BlendLuv(to, t).Clamped()
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render(string(r)))
	}
	return b.String()
}

// ProgressBar renders a bar of width cells filled to percent.
func ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
