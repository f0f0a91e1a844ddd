package home

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/tooley/tooley/internal/ui/theme"
)

const titleFull = `████████╗ ██████╗  ██████╗ ██╗     ███████╗██╗   ██╗
╚══██╔══╝██╔═══██╗██╔═══██╗██║     ██╔════╝╚██╗ ██╔╝
   ██║   ██║   ██║██║   ██║██║     █████╗   ╚████╔╝
   ██║   ██║   ██║██║   ██║██║     ██╔══╝    ╚██╔╝
   ██║   ╚██████╔╝╚██████╔╝███████╗███████╗   ██║
   ╚═╝    ╚═════╝  ╚═════╝ ╚══════╝╚══════╝   ╚═╝`

const titleCompact = "T · O · O · L · E · Y"

const tagline = "Lesson plans for any classroom"

// contentWidth returns the uniform inner width shared by every section.
func contentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 60)
}

func renderTitle(cw int, compact bool) string {
	art := titleFull
	if compact {
		art = titleCompact
	}
	title := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(art)
	sub := theme.Hint.Render(tagline)
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(title + "\n\n" + sub)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 24

// renderButtons renders each menu item as a fixed-width button, or as plain
// lines when there is no room for borders.
func renderButtons(items []string, selected, cw int, compact bool) string {
	var out []string
	for i, label := range items {
		switch {
		case compact && i == selected:
			out = append(out, lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.Accent).
				Bold(true).
				Render(" ▸ "+label+" "))
		case compact:
			out = append(out, theme.Unselected.Render("   "+label))
		case i == selected:
			out = append(out, button(theme.Accent).
				Bold(true).
				Foreground(theme.BgDark).
				Background(theme.Accent).
				Render("▸ "+label))
		default:
			out = append(out, button(theme.Border).Foreground(theme.Text).Render(label))
		}
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(out, "\n"))
}

func button(border color.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)
}

func renderNotice(text string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ " + text)
}

// renderBoard wraps content in a double-border frame, centered both ways.
func renderBoard(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Border).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
