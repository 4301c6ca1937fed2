package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-pong/internal/view"
)

// colorStyles maps view.Color to lipgloss styles.
var colorStyles = map[view.Color]lipgloss.Style{
	view.ColorDefault: lipgloss.NewStyle(),
	view.ColorPaddle:  lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	view.ColorBall:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	view.ColorNet:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	view.ColorScore:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
	view.ColorBanner:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
}

// RenderCanvas converts a canvas to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderCanvas(c *view.Canvas) string {
	var sb strings.Builder
	sb.Grow(c.Width()*c.Height()*2 + c.Height())

	for y := range c.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < c.Width() {
			startColor := c.Get(x, y).Color

			var run strings.Builder
			for x < c.Width() {
				cell := c.Get(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[view.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
