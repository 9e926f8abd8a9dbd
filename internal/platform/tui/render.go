package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-rhythm/internal/core"
)

// Palette maps core colors to lipgloss styles for one output.
// SSH sessions need their own palette so color detection follows the
// client terminal rather than the server's.
type Palette struct {
	styles map[core.Color]lipgloss.Style
	status lipgloss.Style
	help   lipgloss.Style
}

// NewPalette creates a palette for the renderer. A nil renderer uses the
// default one bound to stdout.
func NewPalette(r *lipgloss.Renderer) *Palette {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	p := &Palette{
		styles: map[core.Color]lipgloss.Style{core.ColorDefault: r.NewStyle()},
		status: r.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
		help:   r.NewStyle().Foreground(lipgloss.Color("241")),
	}
	for _, c := range core.Colors() {
		p.styles[c] = r.NewStyle().Foreground(lipgloss.Color(c.ANSI()))
	}
	return p
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func (p *Palette) RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := p.styles[color]
			if !ok {
				style = p.styles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
