package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// canvas paints text segments onto one panel color. Each lipgloss render
// ends in an ANSI reset, so unstyled spaces between segments would show the
// terminal background; canvas paints those too.
type canvas struct {
	bg    lipgloss.Color
	space string
}

func newCanvas(color string) canvas {
	bg := lipgloss.Color(color)
	return canvas{
		bg:    bg,
		space: lipgloss.NewStyle().Background(bg).Render(" "),
	}
}

// Text renders s in style on the canvas color, word by word.
func (c canvas) Text(s string, style lipgloss.Style) string {
	if s == "" {
		return ""
	}
	style = style.Background(c.bg)
	var b strings.Builder
	for s != "" {
		word, rest, found := strings.Cut(s, " ")
		if word != "" {
			b.WriteString(style.Render(word))
		}
		if found {
			b.WriteString(c.space)
		}
		s = rest
	}
	return b.String()
}

// Gap returns n painted spaces.
func (c canvas) Gap(n int) string {
	if n <= 0 {
		return ""
	}
	if n == 1 {
		return c.space
	}
	return lipgloss.NewStyle().Background(c.bg).Render(strings.Repeat(" ", n))
}

// Field renders "label value", as in "Recipes: 12" or "Tags: pasta, quick".
func (c canvas) Field(label, value string, labelStyle, valueStyle lipgloss.Style) string {
	return c.Text(label, labelStyle) + c.space + c.Text(value, valueStyle)
}

// Dot returns the " · " separator used between recipe attributes.
func (c canvas) Dot(style lipgloss.Style) string {
	return c.Text(" · ", style)
}

// Join joins recipe attributes with Dot.
func (c canvas) Join(parts []string, style lipgloss.Style) string {
	return strings.Join(parts, c.Dot(style))
}

// Color returns the canvas color.
func (c canvas) Color() lipgloss.Color {
	return c.bg
}
