package player

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/academy/internal/ui/theme"
)

var strong = lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true)

// renderArticle styles the light markdown used in lesson articles:
// "###" headings and **bold** spans. Everything else is wrapped as body
// text.
func renderArticle(text string, width int) string {
	body := theme.Body.Width(width)
	var out []string
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		if h, ok := strings.CutPrefix(line, "### "); ok {
			out = append(out, theme.Title.Render(h))
			continue
		}
		out = append(out, body.Render(emphasize(line)))
	}
	return strings.Join(out, "\n")
}

func emphasize(line string) string {
	parts := strings.Split(line, "**")
	if len(parts) < 3 {
		return line
	}
	var b strings.Builder
	for i, part := range parts {
		// Odd segments sit between a pair of markers. A trailing unpaired
		// marker leaves an even count; its text stays plain.
		if i%2 == 1 && i < len(parts)-1 {
			b.WriteString(strong.Render(part))
		} else {
			b.WriteString(part)
		}
	}
	return b.String()
}
