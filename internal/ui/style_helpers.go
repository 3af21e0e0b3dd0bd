package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// BgStyle paints every cell of a line with one background color. lipgloss
// resets attributes between styled segments, so spaces rendered between them
// would otherwise show the terminal background.
type BgStyle struct {
	bg   lipgloss.Color
	fill lipgloss.Style
}

// NewBgStyle returns a painter for the given background color.
func NewBgStyle(bgColor string) BgStyle {
	bg := lipgloss.Color(bgColor)
	return BgStyle{bg: bg, fill: lipgloss.NewStyle().Background(bg)}
}

// Render styles text on the background. Runs of spaces are painted
// separately so they keep the background too.
func (b BgStyle) Render(text string, style lipgloss.Style) string {
	if text == "" {
		return ""
	}
	style = style.Background(b.bg)

	var out strings.Builder
	for text != "" {
		i := strings.IndexByte(text, ' ')
		switch {
		case i < 0:
			out.WriteString(style.Render(text))
			text = ""
		case i == 0:
			n := len(text) - len(strings.TrimLeft(text, " "))
			out.WriteString(b.Spaces(n))
			text = text[n:]
		default:
			out.WriteString(style.Render(text[:i]))
			text = text[i:]
		}
	}
	return out.String()
}

func (b BgStyle) Space() string { return b.Spaces(1) }

func (b BgStyle) Spaces(n int) string {
	return b.fill.Render(strings.Repeat(" ", n))
}

// Sep renders a plain separator on the background.
func (b BgStyle) Sep(sep string) string {
	return b.fill.Render(sep)
}

// Join joins already rendered parts with a painted separator.
func (b BgStyle) Join(parts []string, sep string) string {
	return strings.Join(parts, b.Sep(sep))
}

func (b BgStyle) Color() lipgloss.Color { return b.bg }
