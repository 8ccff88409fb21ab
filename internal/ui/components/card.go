package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/academy/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for stacked cards so
// they line up.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 76)
}

// Card wraps content in a rounded-border box with an optional title line.
func Card(title, content string, cw int) string {
	if title != "" {
		content = theme.Title.Render(title) + "\n" + content
	}
	return theme.Card.
		Width(cw).
		Render(content)
}

// Center places content in the middle of the given area.
func Center(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// Tag renders a short inline label such as a difficulty or status.
func Tag(label string, color lipgloss.Style) string {
	return color.Padding(0, 1).Render(label)
}

// ErrorLine renders a one-line error under a form.
func ErrorLine(msg string) string {
	if msg == "" {
		return ""
	}
	return theme.ErrorText.Render("✗ " + msg)
}
